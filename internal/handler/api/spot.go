package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartpark/internal/handler/httperr"
	"smartpark/internal/usecase/queries"
)

type SpotHandler struct {
	q queries.SpotQueries
}

func NewSpotHandler(q queries.SpotQueries) *SpotHandler {
	return &SpotHandler{q: q}
}

// @Summary List free spots
// @Description List parking spots without an open session
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.SpotView
// @Failure 401 {object} httperr.Response
// @Router /spots/free [get]
func (h *SpotHandler) ListFree(c *gin.Context) {
	views, err := h.q.ListFree(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list free spots", nil)
		return
	}
	c.JSON(http.StatusOK, views)
}
