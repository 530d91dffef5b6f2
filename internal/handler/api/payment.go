package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartpark/internal/handler/httperr"
	"smartpark/internal/usecase/queries"
)

type PaymentHandler struct {
	q queries.PaymentQueries
}

func NewPaymentHandler(q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{q: q}
}

// @Summary List payments
// @Description List payments within a date range. Drivers see their own, admins see all.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (RFC 3339)"
// @Param to query string true "Range end (RFC 3339)"
// @Success 200 {array} queries.PaymentView
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	userID, role, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid 'from' date", nil)
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid 'to' date", nil)
		return
	}

	views, err := h.q.ListByRange(c.Request.Context(), from, to, userID, role)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidDateRange) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list payments", nil)
		return
	}
	c.JSON(http.StatusOK, views)
}
