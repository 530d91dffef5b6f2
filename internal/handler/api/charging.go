package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartpark/internal/domain/charging"
	reqdto "smartpark/internal/handler/dto/request"
	resdto "smartpark/internal/handler/dto/response"
	"smartpark/internal/handler/httperr"
	"smartpark/internal/usecase/commands"
	"smartpark/internal/usecase/queries"
)

type ChargingHandler struct {
	cmds commands.ChargingCommands
	q    queries.ChargingQueries
}

func NewChargingHandler(cmds commands.ChargingCommands, q queries.ChargingQueries) *ChargingHandler {
	return &ChargingHandler{cmds: cmds, q: q}
}

// @Summary Propose charge request
// @Description Request charging for the car of an open session
// @Tags charging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.ProposeChargeRequest true "Charge request"
// @Success 201 {object} resdto.ChargeRequestCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/{id}/charge-requests [post]
func (h *ChargingHandler) Propose(c *gin.Context) {
	userID, role, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session id", nil)
		return
	}
	var req reqdto.ProposeChargeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Propose(c.Request.Context(), sessionID, req.ToCommand(), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSessionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Session not found", nil)
		case errors.Is(err, commands.ErrSessionAlreadyClosed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Session is already closed", nil)
		case errors.Is(err, commands.ErrDuplicateActiveRequest):
			httperr.AbortWithError(c, http.StatusConflict, err, "Session already has an active charge request", nil)
		case errors.Is(err, charging.ErrInvalidTargetSoC), errors.Is(err, charging.ErrInvalidInitialSoC):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid state of charge", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create charge request", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromProposeResult(result))
}

// @Summary List charge requests
// @Description List charge requests of a session
// @Tags charging
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {array} queries.ChargeRequestView
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /sessions/{id}/charge-requests [get]
func (h *ChargingHandler) ListRequests(c *gin.Context) {
	userID, role, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session id", nil)
		return
	}
	views, err := h.q.RequestsBySession(c.Request.Context(), sessionID, userID, role)
	if err != nil {
		if errors.Is(err, queries.ErrSessionNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Session not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list charge requests", nil)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Accept charge request
// @Description Confirm one's own proposed charge request and queue a job for the bot
// @Tags charging
// @Produce json
// @Security BearerAuth
// @Param id path string true "Charge request ID"
// @Success 201 {object} resdto.JobCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /charge-requests/{id}/accept [post]
func (h *ChargingHandler) Accept(c *gin.Context) {
	userID, role, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request id", nil)
		return
	}
	jobID, err := h.cmds.Accept(c.Request.Context(), requestID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRequestNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Charge request not found", nil)
		case errors.Is(err, commands.ErrSessionAlreadyClosed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Session is already closed", nil)
		case errors.Is(err, charging.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Charge request is not pending acceptance", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to accept charge request", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.JobCreatedResponse{JobID: jobID})
}

// @Summary Reject charge request
// @Description Decline one's own proposed charge request
// @Tags charging
// @Security BearerAuth
// @Param id path string true "Charge request ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /charge-requests/{id}/reject [post]
func (h *ChargingHandler) Reject(c *gin.Context) {
	userID, role, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request id", nil)
		return
	}
	if err := h.cmds.Reject(c.Request.Context(), requestID, userID, role); err != nil {
		switch {
		case errors.Is(err, commands.ErrRequestNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Charge request not found", nil)
		case errors.Is(err, charging.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Charge request is not pending acceptance", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to reject charge request", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
