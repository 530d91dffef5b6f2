package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartpark/internal/domain/user"
	reqdto "smartpark/internal/handler/dto/request"
	"smartpark/internal/handler/httperr"
	"smartpark/internal/usecase/commands"
)

type UserHandler struct {
	cmds commands.UserCommands
}

func NewUserHandler(cmds commands.UserCommands) *UserHandler {
	return &UserHandler{cmds: cmds}
}

// @Summary Update user rates
// @Description Set a user's tier and premium discount fractions
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body reqdto.UpdateUserRatesRequest true "Update rates request"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id}/rates [put]
func (h *UserHandler) UpdateRates(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user id", nil)
		return
	}
	var req reqdto.UpdateUserRatesRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateRates(c.Request.Context(), userID, req.ToCommand()); err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, user.ErrInvalidTier):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid tier", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update user rates", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
