//go:build e2e

package parking_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"smartpark/internal/domain/user"
	"smartpark/internal/handler/dto/request"
	"smartpark/internal/handler/dto/response"
	"smartpark/internal/usecase/queries"
	"smartpark/tests/common/authtest"
	"smartpark/tests/common/dbtest"
	"smartpark/tests/common/httptest"
	"smartpark/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	sessionsURL       = "/api/sessions"
	chargeRequestsURL = "/api/sessions/%s/charge-requests"
	acceptURL         = "/api/charge-requests/%s/accept"
	rejectURL         = "/api/charge-requests/%s/reject"
	startNextURL      = "/api/bot/jobs/start-next"
	startJobURL       = "/api/bot/jobs/%s/start"
	finishJobURL      = "/api/bot/jobs/%s/finish"
	abortJobURL       = "/api/bot/jobs/%s/abort"
	botURL            = "/api/bot"
	botQueueURL       = "/api/bot/queue"
	checkoutURL       = "/api/sessions/%s/checkout"
	paymentsURL       = "/api/payments"
	freeSpotsURL      = "/api/spots/free"
)

type ParkingSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *ParkingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func TestParkingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ParkingSuite))
}

type fixture struct {
	driverID    uuid.UUID
	driverToken string
	adminToken  string
	carID       uuid.UUID
	spotID      uuid.UUID
}

func (s *ParkingSuite) seedLot(parkingPerHour, energyPerKWh float64) fixture {
	t := s.T()

	driverID := dbtest.CreateTestUser(t, s.DB, "driver@example.com", string(user.RoleDriver))
	adminID := dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))
	modelID := dbtest.CreateTestCarModel(t, s.DB, "Model S", 75)
	carID := dbtest.CreateTestCar(t, s.DB, driverID, modelID, "AB-123-CD")
	spotID := dbtest.CreateTestSpot(t, s.DB, "A1")
	dbtest.CreateTestTariff(t, s.DB, parkingPerHour, energyPerKWh, time.Now().Add(-24*time.Hour))

	return fixture{
		driverID:    driverID,
		driverToken: s.jwt.GenerateToken(t, driverID, user.RoleDriver),
		adminToken:  s.jwt.GenerateToken(t, adminID, user.RoleAdmin),
		carID:       carID,
		spotID:      spotID,
	}
}

func (s *ParkingSuite) openSession(f fixture) uuid.UUID {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL,
		request.OpenSessionRequest{SpotID: f.spotID, CarID: f.carID}, f.driverToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.SessionCreatedResponse
	httptest.DecodeResponseBody(t, w.Body, &created)
	require.NotEqual(t, uuid.Nil, created.SessionID)
	return created.SessionID
}

func (s *ParkingSuite) propose(token string, sessionID uuid.UUID, target int) uuid.UUID {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(chargeRequestsURL, sessionID),
		request.ProposeChargeRequest{TargetSoC: target}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var proposed response.ChargeRequestCreatedResponse
	httptest.DecodeResponseBody(t, w.Body, &proposed)
	return proposed.RequestID
}

func (s *ParkingSuite) accept(token string, requestID uuid.UUID) uuid.UUID {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, requestID), nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var job response.JobCreatedResponse
	httptest.DecodeResponseBody(t, w.Body, &job)
	return job.JobID
}

// openSecondLot seeds an unrelated driver with their own car and spot
// and opens a session for them, so queue tests have two competitors.
func (s *ParkingSuite) openSecondLot() (string, uuid.UUID, uuid.UUID) {
	t := s.T()

	driverID := dbtest.CreateTestUser(t, s.DB, "second@example.com", string(user.RoleDriver))
	token := s.jwt.GenerateToken(t, driverID, user.RoleDriver)
	modelID := dbtest.CreateTestCarModel(t, s.DB, "Leaf", 40)
	carID := dbtest.CreateTestCar(t, s.DB, driverID, modelID, "EF-456-GH")
	spotID := dbtest.CreateTestSpot(t, s.DB, "A2")

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL,
		request.OpenSessionRequest{SpotID: spotID, CarID: carID}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.SessionCreatedResponse
	httptest.DecodeResponseBody(t, w.Body, &created)
	return token, created.SessionID, spotID
}

func (s *ParkingSuite) TestFullChargingFlow() {
	s.Run("drive in, charge and check out", func() {
		t := s.T()
		f := s.seedLot(2.0, 0.5)

		sessionID := s.openSession(f)

		// Spot no longer free
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, freeSpotsURL, nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code)
		var spots []queries.SpotView
		httptest.DecodeResponseBody(t, w.Body, &spots)
		for _, sp := range spots {
			require.NotEqual(t, f.spotID, sp.ID, "occupied spot should not be listed as free")
		}

		// Propose a charge request; queue empty and bot idle
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(chargeRequestsURL, sessionID),
			request.ProposeChargeRequest{TargetSoC: 80}, f.driverToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var proposed response.ChargeRequestCreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &proposed)
		require.Equal(t, 0, proposed.EstWaitMinutes)
		require.Equal(t, 60, proposed.EstCompletionMinutes)

		// A second active request on the same session is rejected
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(chargeRequestsURL, sessionID),
			request.ProposeChargeRequest{TargetSoC: 90}, f.driverToken)
		require.Equal(t, http.StatusConflict, w.Code)

		// The session holder confirms, which queues a job
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, proposed.RequestID), nil, f.driverToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var job response.JobCreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &job)

		// Bot picks up the queue head
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, startNextURL, nil, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var started response.JobStartedResponse
		httptest.DecodeResponseBody(t, w.Body, &started)
		require.Equal(t, job.JobID, started.JobID)
		require.Equal(t, f.spotID, started.SpotID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, botURL, nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code)
		var bot queries.BotStatusView
		httptest.DecodeResponseBody(t, w.Body, &bot)
		require.True(t, bot.Busy)
		require.NotNil(t, bot.RunningJob)

		// Nothing else to start while the bot is occupied
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, startNextURL, nil, f.adminToken)
		require.Equal(t, http.StatusConflict, w.Code)

		// Finish with measured energy
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(finishJobURL, job.JobID),
			request.FinishChargeJobRequest{EnergyKWh: 10, FinalSoC: 80}, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, botURL, nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code)
		httptest.DecodeResponseBody(t, w.Body, &bot)
		require.False(t, bot.Busy)

		// Preview bills energy at the list price
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(checkoutURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var preview queries.InvoiceView
		httptest.DecodeResponseBody(t, w.Body, &preview)
		require.InDelta(t, 10.0, preview.EnergyKWh, 1e-9)
		require.InDelta(t, 5.0, preview.EnergyCost, 1e-9)

		// Checkout closes the session and records the payment
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkoutURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var checkout response.CheckoutResponse
		httptest.DecodeResponseBody(t, w.Body, &checkout)
		require.InDelta(t, 5.0, checkout.EnergyCost, 1e-9)

		var chargingLine *response.InvoiceLineResponse
		for i := range checkout.Lines {
			if checkout.Lines[i].Type == "Charging" {
				chargingLine = &checkout.Lines[i]
			}
		}
		require.NotNil(t, chargingLine)
		wantLine := response.InvoiceLineResponse{Type: "Charging", Quantity: 10, UnitPrice: 0.5, Total: 5}
		if diff := cmp.Diff(wantLine, *chargingLine); diff != "" {
			t.Errorf("charging line mismatch (-want +got):\n%s", diff)
		}

		// Second checkout is rejected
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkoutURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusConflict, w.Code)

		// Payment appears in the range listing
		from := time.Now().Add(-1 * time.Hour).UTC().Format(time.RFC3339)
		to := time.Now().Add(1 * time.Hour).UTC().Format(time.RFC3339)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			paymentsURL+"?from="+from+"&to="+to, nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var payments []queries.PaymentView
		httptest.DecodeResponseBody(t, w.Body, &payments)
		require.Len(t, payments, 1)
		require.Equal(t, checkout.PaymentID, payments[0].ID)
	})
}

func (s *ParkingSuite) TestCheckoutCancelsPendingCharges() {
	s.Run("open request is cancelled and running job aborted", func() {
		t := s.T()
		f := s.seedLot(2.0, 0.5)

		sessionID := s.openSession(f)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(chargeRequestsURL, sessionID),
			request.ProposeChargeRequest{TargetSoC: 80}, f.driverToken)
		require.Equal(t, http.StatusCreated, w.Code)
		var proposed response.ChargeRequestCreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &proposed)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, proposed.RequestID), nil, f.driverToken)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, startNextURL, nil, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		// Checkout while the job is running
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkoutURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Bot is released again
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, botURL, nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code)
		var bot queries.BotStatusView
		httptest.DecodeResponseBody(t, w.Body, &bot)
		require.False(t, bot.Busy)
		require.Nil(t, bot.RunningJob)

		// The request ended up cancelled
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(chargeRequestsURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code)
		var reqs []queries.ChargeRequestView
		httptest.DecodeResponseBody(t, w.Body, &reqs)
		require.Len(t, reqs, 1)
		require.Equal(t, "cancelled", reqs[0].Status)
	})
}

func (s *ParkingSuite) TestAccessControl() {
	s.Run("authentication and role checks", func() {
		t := s.T()
		f := s.seedLot(2.0, 0.5)

		// No token
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, sessionsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		// Expired token
		expired := s.jwt.CreateExpiredToken(t, f.driverID, user.RoleDriver)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, sessionsURL, nil, expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)

		// Driver hitting an admin endpoint
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, startNextURL, nil, f.driverToken)
		require.Equal(t, http.StatusForbidden, w.Code)

		// Drivers cannot see someone else's session
		sessionID := s.openSession(f)
		otherID := dbtest.CreateTestUser(t, s.DB, "other@example.com", string(user.RoleDriver))
		otherToken := s.jwt.GenerateToken(t, otherID, user.RoleDriver)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, sessionsURL+"/"+sessionID.String(), nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code)

		// Admins can
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, sessionsURL+"/"+sessionID.String(), nil, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		// Nor confirm or decline someone else's proposal
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(chargeRequestsURL, sessionID),
			request.ProposeChargeRequest{TargetSoC: 80}, f.driverToken)
		require.Equal(t, http.StatusCreated, w.Code)
		var proposed response.ChargeRequestCreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &proposed)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, proposed.RequestID), nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rejectURL, proposed.RequestID), nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code)

		// The owner declines their own
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rejectURL, proposed.RequestID), nil, f.driverToken)
		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

func (s *ParkingSuite) TestPremiumDiscountAppliesAtCheckoutOnly() {
	s.Run("preview is list price, checkout is discounted", func() {
		t := s.T()
		f := s.seedLot(2.0, 0.5)

		half := 0.5
		dbtest.SetTestUserTier(t, s.DB, f.driverID, "premium", nil, &half)

		sessionID := s.openSession(f)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(chargeRequestsURL, sessionID),
			request.ProposeChargeRequest{TargetSoC: 80}, f.driverToken)
		require.Equal(t, http.StatusCreated, w.Code)
		var proposed response.ChargeRequestCreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &proposed)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, proposed.RequestID), nil, f.driverToken)
		require.Equal(t, http.StatusCreated, w.Code)
		var job response.JobCreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &job)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, startNextURL, nil, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(finishJobURL, job.JobID),
			request.FinishChargeJobRequest{EnergyKWh: 10, FinalSoC: 80}, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		// Preview ignores the discount
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(checkoutURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code)
		var preview queries.InvoiceView
		httptest.DecodeResponseBody(t, w.Body, &preview)
		require.InDelta(t, 5.0, preview.EnergyCost, 1e-9)

		// Checkout applies it
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkoutURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var checkout response.CheckoutResponse
		httptest.DecodeResponseBody(t, w.Body, &checkout)
		require.InDelta(t, 2.5, checkout.EnergyCost, 1e-9)
	})
}

func (s *ParkingSuite) TestQueueOrder() {
	s.Run("dispatch follows proposal order, not job creation order", func() {
		t := s.T()
		f := s.seedLot(2.0, 0.5)
		sessionID := s.openSession(f)
		otherToken, otherSession, otherSpot := s.openSecondLot()

		firstRequest := s.propose(f.driverToken, sessionID, 80)
		secondRequest := s.propose(otherToken, otherSession, 70)

		// Confirm in reverse order so the later request's job row is
		// created first
		secondJob := s.accept(otherToken, secondRequest)
		firstJob := s.accept(f.driverToken, firstRequest)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, startNextURL, nil, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var started response.JobStartedResponse
		httptest.DecodeResponseBody(t, w.Body, &started)
		require.Equal(t, firstJob, started.JobID)
		require.Equal(t, f.spotID, started.SpotID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(finishJobURL, firstJob),
			request.FinishChargeJobRequest{EnergyKWh: 5, FinalSoC: 80}, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, startNextURL, nil, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.DecodeResponseBody(t, w.Body, &started)
		require.Equal(t, secondJob, started.JobID)
		require.Equal(t, otherSpot, started.SpotID)
	})

	s.Run("same-instant proposals tie-break on job id", func() {
		t := s.T()
		f := s.seedLot(2.0, 0.5)
		sessionID := s.openSession(f)
		otherToken, otherSession, _ := s.openSecondLot()

		jobA := s.accept(f.driverToken, s.propose(f.driverToken, sessionID, 80))
		jobB := s.accept(otherToken, s.propose(otherToken, otherSession, 70))

		// Collapse both proposals onto one instant so only the job id
		// can order them
		_, err := s.DB.Exec(context.Background(),
			`UPDATE charge_requests SET requested_at = $1`, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		lower, higher := jobA, jobB
		if higher.String() < lower.String() {
			lower, higher = higher, lower
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, botQueueURL, nil, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var queue []queries.ChargeJobView
		httptest.DecodeResponseBody(t, w.Body, &queue)
		require.Len(t, queue, 2)
		require.Equal(t, lower, queue[0].ID)
		require.Equal(t, higher, queue[1].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, startNextURL, nil, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var started response.JobStartedResponse
		httptest.DecodeResponseBody(t, w.Body, &started)
		require.Equal(t, lower, started.JobID)
	})
}

func (s *ParkingSuite) TestOperatorAbort() {
	s.Run("aborting a running job cancels the request and frees the bot", func() {
		t := s.T()
		f := s.seedLot(2.0, 0.5)
		sessionID := s.openSession(f)

		requestID := s.propose(f.driverToken, sessionID, 80)
		jobID := s.accept(f.driverToken, requestID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(startJobURL, jobID), nil, f.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(abortJobURL, jobID), nil, f.adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		var (
			status string
			endUtc *time.Time
		)
		err := s.DB.QueryRow(context.Background(),
			`SELECT status, end_utc FROM charge_jobs WHERE id = $1`, jobID).Scan(&status, &endUtc)
		require.NoError(t, err)
		require.Equal(t, "aborted", status)
		require.NotNil(t, endUtc, "aborting a running job must stamp its end time")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, botURL, nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code)
		var bot queries.BotStatusView
		httptest.DecodeResponseBody(t, w.Body, &bot)
		require.False(t, bot.Busy)
		require.Nil(t, bot.RunningJob)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(chargeRequestsURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code)
		var reqs []queries.ChargeRequestView
		httptest.DecodeResponseBody(t, w.Body, &reqs)
		require.Len(t, reqs, 1)
		require.Equal(t, "cancelled", reqs[0].Status)
	})
}

func (s *ParkingSuite) TestUnconfirmedProposalAtCheckout() {
	s.Run("proposal stays proposed but can no longer be confirmed", func() {
		t := s.T()
		f := s.seedLot(2.0, 0.5)
		sessionID := s.openSession(f)

		requestID := s.propose(f.driverToken, sessionID, 80)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkoutURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(chargeRequestsURL, sessionID), nil, f.driverToken)
		require.Equal(t, http.StatusOK, w.Code)
		var reqs []queries.ChargeRequestView
		httptest.DecodeResponseBody(t, w.Body, &reqs)
		require.Len(t, reqs, 1)
		require.Equal(t, "proposed", reqs[0].Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, requestID), nil, f.driverToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})
}
