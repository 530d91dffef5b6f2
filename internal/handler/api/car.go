package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartpark/internal/handler/httperr"
	"smartpark/internal/handler/middleware"
	"smartpark/internal/usecase/queries"
)

type CarHandler struct {
	q queries.CarQueries
}

func NewCarHandler(q queries.CarQueries) *CarHandler {
	return &CarHandler{q: q}
}

// @Summary List my cars
// @Description List cars registered to the authenticated user
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.CarView
// @Failure 401 {object} httperr.Response
// @Router /cars [get]
func (h *CarHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	views, err := h.q.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list cars", nil)
		return
	}
	c.JSON(http.StatusOK, views)
}
