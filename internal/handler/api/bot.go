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

type BotHandler struct {
	cmds commands.ChargingCommands
	q    queries.ChargingQueries
}

func NewBotHandler(cmds commands.ChargingCommands, q queries.ChargingQueries) *BotHandler {
	return &BotHandler{cmds: cmds, q: q}
}

// @Summary Bot status
// @Description Current bot state with queue length and the running job, if any
// @Tags bot
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.BotStatusView
// @Failure 401 {object} httperr.Response
// @Router /bot [get]
func (h *BotHandler) Status(c *gin.Context) {
	view, err := h.q.BotStatus(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load bot status", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Queued jobs
// @Description List queued charge jobs in service order
// @Tags bot
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.ChargeJobView
// @Failure 401 {object} httperr.Response
// @Router /bot/queue [get]
func (h *BotHandler) Queue(c *gin.Context) {
	views, err := h.q.QueuedJobs(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list queued jobs", nil)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Start next job
// @Description Dispatch the bot to the oldest queued charge job
// @Tags bot
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.JobStartedResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bot/jobs/start-next [post]
func (h *BotHandler) StartNext(c *gin.Context) {
	result, err := h.cmds.StartNext(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoQueuedJobs):
			httperr.AbortWithError(c, http.StatusConflict, err, "No queued charge jobs", nil)
		case errors.Is(err, commands.ErrBotBusy):
			httperr.AbortWithError(c, http.StatusConflict, err, "Bot is busy", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to start job", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromStartedJob(result))
}

// @Summary Start job
// @Description Dispatch the bot to a specific queued charge job
// @Tags bot
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} resdto.JobStartedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bot/jobs/{id}/start [post]
func (h *BotHandler) Start(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job id", nil)
		return
	}
	result, err := h.cmds.Start(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrJobNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Charge job not found", nil)
		case errors.Is(err, commands.ErrBotBusy):
			httperr.AbortWithError(c, http.StatusConflict, err, "Bot is busy", nil)
		case errors.Is(err, charging.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Charge job is not queued", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to start job", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromStartedJob(result))
}

// @Summary Finish job
// @Description Record the measured energy and final state of charge for a running job
// @Tags bot
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body reqdto.FinishChargeJobRequest true "Finish job request"
// @Success 200 {object} queries.ChargeJobView
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bot/jobs/{id}/finish [post]
func (h *BotHandler) Finish(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job id", nil)
		return
	}
	var req reqdto.FinishChargeJobRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.Finish(c.Request.Context(), jobID, req.ToCommand()); err != nil {
		switch {
		case errors.Is(err, commands.ErrJobNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Charge job not found", nil)
		case errors.Is(err, charging.ErrInvalidMeasurement):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid charge measurement", nil)
		case errors.Is(err, charging.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Charge job is not running", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to finish job", nil)
		}
		return
	}
	view, err := h.q.JobByID(c.Request.Context(), jobID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load job", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Abort job
// @Description Abort a queued or running charge job and free the bot
// @Tags bot
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bot/jobs/{id}/abort [post]
func (h *BotHandler) Abort(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job id", nil)
		return
	}
	if err := h.cmds.Abort(c.Request.Context(), jobID); err != nil {
		switch {
		case errors.Is(err, commands.ErrJobNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Charge job not found", nil)
		case errors.Is(err, charging.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Charge job already ended", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to abort job", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
