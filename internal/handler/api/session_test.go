//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"smartpark/internal/domain/billing"
	"smartpark/internal/domain/user"
	"smartpark/internal/handler/api"
	reqdto "smartpark/internal/handler/dto/request"
	resdto "smartpark/internal/handler/dto/response"
	"smartpark/internal/usecase/commands"
	"smartpark/internal/usecase/queries"
	"smartpark/tests/common/httptest"
	"smartpark/tests/common/testutil"
	commandsmock "smartpark/tests/mock/commands"
	queriesmock "smartpark/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSessionCommands
	mockQueries  *queriesmock.MockSessionQueries
	handler      *api.SessionHandler

	actorID uuid.UUID
}

func (s *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSessionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSessionQueries(s.mockCtrl)
	s.handler = api.NewSessionHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.RoleDriver)
		c.Next()
	}

	s.router.POST("/sessions", authMiddleware, s.handler.Create)
	s.router.GET("/sessions", authMiddleware, s.handler.List)
	s.router.GET("/sessions/:id", authMiddleware, s.handler.Get)
	s.router.GET("/sessions/:id/checkout", authMiddleware, s.handler.PreviewCheckout)
	s.router.POST("/sessions/:id/checkout", authMiddleware, s.handler.Checkout)
}

func (s *SessionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *SessionHandlerTestSuite) TestCreate() {
	url := "/sessions"
	reqBody := reqdto.OpenSessionRequest{SpotID: uuid.New(), CarID: uuid.New()}

	s.Run("success: returns 201 Created for valid request", func() {
		sessionID := uuid.New()
		s.mockCommands.EXPECT().
			OpenSession(gomock.Any(), reqBody.ToCommand(), s.actorID, string(user.RoleDriver)).
			Return(sessionID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp resdto.SessionCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(sessionID, resp.SessionID)
	})

	s.Run("failure: returns 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("failure: returns 400 for missing fields", func() {
		for _, field := range []string{"spot_id", "car_id"} {
			body := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
			s.Equal(http.StatusBadRequest, rec.Code, "missing %s should be rejected", field)
		}
	})

	s.Run("failure: maps usecase errors to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "spot not found", err: commands.ErrSpotNotFound, expectCode: http.StatusNotFound},
			{name: "car not found", err: commands.ErrCarNotFound, expectCode: http.StatusNotFound},
			{name: "spot occupied", err: commands.ErrSpotOccupied, expectCode: http.StatusConflict},
			{name: "car already parked", err: commands.ErrCarAlreadyParked, expectCode: http.StatusConflict},
		}
		for _, tc := range cases {
			s.mockCommands.EXPECT().
				OpenSession(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(uuid.Nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
			s.Equal(tc.expectCode, rec.Code, tc.name)
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *SessionHandlerTestSuite) TestGet() {
	sessionID := uuid.New()
	view := &queries.SessionView{
		ID:       sessionID,
		SpotID:   uuid.New(),
		CarID:    uuid.New(),
		UserID:   s.actorID,
		StartUtc: time.Now().UTC(),
		Status:   "open",
	}

	s.Run("success: returns the session view", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), sessionID, s.actorID, string(user.RoleDriver)).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+sessionID.String(), nil, "bearer-token")

		var resp queries.SessionView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(sessionID, resp.ID)
	})

	s.Run("failure: returns 404 when unknown or foreign", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), sessionID, s.actorID, string(user.RoleDriver)).
			Return(nil, queries.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+sessionID.String(), nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("failure: returns 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/not-a-uuid", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestCheckout
// ================================================================================

func (s *SessionHandlerTestSuite) TestCheckout() {
	sessionID := uuid.New()
	url := "/sessions/" + sessionID.String() + "/checkout"

	result := &commands.CheckoutResult{
		PaymentID: uuid.New(),
		SessionID: sessionID,
		Invoice: billing.Invoice{
			TotalMinutes: 90,
			EnergyKWh:    10,
			ParkingCost:  3.00,
			EnergyCost:   4.00,
			Total:        7.00,
		},
		Lines: []billing.Line{
			{Type: billing.LineParking, Quantity: 1.5, UnitPrice: 2.0, Total: 3.00},
			{Type: billing.LineCharging, Quantity: 10, UnitPrice: 0.4, Total: 4.00},
		},
	}

	s.Run("success: returns the payment with invoice lines", func() {
		s.mockCommands.EXPECT().
			Checkout(gomock.Any(), sessionID, s.actorID, string(user.RoleDriver)).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var resp resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(result.PaymentID, resp.PaymentID)
		s.InDelta(7.00, resp.Total, 1e-9)
		s.Len(resp.Lines, 2)
	})

	s.Run("failure: maps usecase errors to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "not found", err: commands.ErrSessionNotFound, expectCode: http.StatusNotFound},
			{name: "already closed", err: commands.ErrSessionAlreadyClosed, expectCode: http.StatusConflict},
			{name: "no tariff", err: commands.ErrNoActiveTariff, expectCode: http.StatusUnprocessableEntity},
		}
		for _, tc := range cases {
			s.mockCommands.EXPECT().
				Checkout(gomock.Any(), sessionID, s.actorID, string(user.RoleDriver)).
				Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
			s.Equal(tc.expectCode, rec.Code, tc.name)
		}
	})
}

// ================================================================================
// TestPreviewCheckout
// ================================================================================

func (s *SessionHandlerTestSuite) TestPreviewCheckout() {
	sessionID := uuid.New()
	url := "/sessions/" + sessionID.String() + "/checkout"

	invoice := &queries.InvoiceView{
		SessionID:    sessionID,
		TotalMinutes: 30,
		EnergyKWh:    5,
		EnergyCost:   2.50,
		Total:        3.50,
	}

	s.Run("success: returns the invoice without closing", func() {
		s.mockQueries.EXPECT().
			PreviewCheckout(gomock.Any(), sessionID, s.actorID, string(user.RoleDriver)).
			Return(invoice, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp queries.InvoiceView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.InDelta(3.50, resp.Total, 1e-9)
	})

	s.Run("failure: returns 409 for a closed session", func() {
		s.mockQueries.EXPECT().
			PreviewCheckout(gomock.Any(), sessionID, s.actorID, string(user.RoleDriver)).
			Return(nil, queries.ErrSessionNotOpen).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})
}
