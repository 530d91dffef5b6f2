package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartpark/internal/domain/billing"
	reqdto "smartpark/internal/handler/dto/request"
	resdto "smartpark/internal/handler/dto/response"
	"smartpark/internal/handler/httperr"
	"smartpark/internal/usecase/commands"
	"smartpark/internal/usecase/queries"
)

type TariffHandler struct {
	cmds commands.TariffCommands
	q    queries.TariffQueries
}

func NewTariffHandler(cmds commands.TariffCommands, q queries.TariffQueries) *TariffHandler {
	return &TariffHandler{cmds: cmds, q: q}
}

// @Summary List tariffs
// @Description List all published tariffs, newest first
// @Tags tariffs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.TariffView
// @Failure 401 {object} httperr.Response
// @Router /tariffs [get]
func (h *TariffHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list tariffs", nil)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Current tariff
// @Description Get the tariff in effect right now
// @Tags tariffs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.TariffView
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /tariffs/current [get]
func (h *TariffHandler) Current(c *gin.Context) {
	view, err := h.q.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, queries.ErrNoActiveTariff) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "No tariff in effect", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load tariff", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Publish tariff
// @Description Publish a new tariff, closing the current one at the effective date
// @Tags tariffs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PublishTariffRequest true "Publish tariff request"
// @Success 201 {object} resdto.TariffCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /tariffs [post]
func (h *TariffHandler) Publish(c *gin.Context) {
	var req reqdto.PublishTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	tariffID, err := h.cmds.Publish(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEffectiveFromInPast):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Effective date is in the past", nil)
		case errors.Is(err, billing.ErrNegativeRate):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Rates cannot be negative", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to publish tariff", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.TariffCreatedResponse{TariffID: tariffID})
}
