package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "smartpark/internal/handler/dto/request"
	resdto "smartpark/internal/handler/dto/response"
	"smartpark/internal/handler/httperr"
	"smartpark/internal/handler/middleware"
	"smartpark/internal/usecase/commands"
	"smartpark/internal/usecase/queries"
)

var errMissingUserContext = errors.New("missing user context")

type SessionHandler struct {
	cmds commands.SessionCommands
	q    queries.SessionQueries
}

func NewSessionHandler(cmds commands.SessionCommands, q queries.SessionQueries) *SessionHandler {
	return &SessionHandler{cmds: cmds, q: q}
}

// @Summary Open parking session
// @Description Park a car on a free spot and open a session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.OpenSessionRequest true "Open session request"
// @Success 201 {object} resdto.SessionCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	userID, role, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	var req reqdto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	sessionID, err := h.cmds.OpenSession(c.Request.Context(), req.ToCommand(), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCarNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
		case errors.Is(err, commands.ErrSpotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Parking spot not found", nil)
		case errors.Is(err, commands.ErrSpotOccupied):
			httperr.AbortWithError(c, http.StatusConflict, err, "Parking spot is occupied", nil)
		case errors.Is(err, commands.ErrCarAlreadyParked):
			httperr.AbortWithError(c, http.StatusConflict, err, "Car already has an open session", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to open session", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.SessionCreatedResponse{SessionID: sessionID})
}

// @Summary List my sessions
// @Description List parking sessions of the authenticated user
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.SessionListItem
// @Failure 401 {object} httperr.Response
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	items, err := h.q.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list sessions", nil)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get session
// @Description Get a parking session by ID
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} queries.SessionView
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	userID, role, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		if errors.Is(err, queries.ErrSessionNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Session not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load session", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Preview checkout
// @Description Compute the current invoice for an open session without closing it
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} queries.InvoiceView
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /sessions/{id}/checkout [get]
func (h *SessionHandler) PreviewCheckout(c *gin.Context) {
	userID, role, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session id", nil)
		return
	}
	invoice, err := h.q.PreviewCheckout(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrSessionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Session not found", nil)
		case errors.Is(err, queries.ErrSessionNotOpen):
			httperr.AbortWithError(c, http.StatusConflict, err, "Session is not open", nil)
		case errors.Is(err, queries.ErrNoActiveTariff):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "No tariff in effect", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to preview checkout", nil)
		}
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// @Summary Checkout
// @Description Close a session, cancel pending charges and produce a payment
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /sessions/{id}/checkout [post]
func (h *SessionHandler) Checkout(c *gin.Context) {
	userID, role, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserContext, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session id", nil)
		return
	}
	result, err := h.cmds.Checkout(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSessionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Session not found", nil)
		case errors.Is(err, commands.ErrSessionAlreadyClosed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Session is already closed", nil)
		case errors.Is(err, commands.ErrNoActiveTariff):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "No tariff in effect", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout failed", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

func currentActor(c *gin.Context) (uuid.UUID, string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, string(role), true
}
