package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smartpark/internal/domain/user"
	"smartpark/internal/handler/api"
	"smartpark/internal/handler/middleware"
	"smartpark/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Session  *api.SessionHandler
	Charging *api.ChargingHandler
	Bot      *api.BotHandler
	Tariff   *api.TariffHandler
	Payment  *api.PaymentHandler
	Spot     *api.SpotHandler
	Car      *api.CarHandler
	User     *api.UserHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		sessions := apiGroup.Group("/sessions")
		{
			addRoutes(sessions, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Session.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Session.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Session.Get},
				{Method: http.MethodGet, Path: "/:id/checkout", Handler: h.Session.PreviewCheckout},
				{Method: http.MethodPost, Path: "/:id/checkout", Handler: h.Session.Checkout},
				{Method: http.MethodPost, Path: "/:id/charge-requests", Handler: h.Charging.Propose},
				{Method: http.MethodGet, Path: "/:id/charge-requests", Handler: h.Charging.ListRequests},
			})
		}

		chargeRequests := apiGroup.Group("/charge-requests")
		{
			addRoutes(chargeRequests, []route{
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Charging.Accept},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Charging.Reject},
			})
		}

		bot := apiGroup.Group("/bot")
		{
			addRoutes(bot, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Bot.Status},
				{Method: http.MethodGet, Path: "/queue", Handler: h.Bot.Queue},
				{Method: http.MethodPost, Path: "/jobs/start-next", Handler: h.Bot.StartNext, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPost, Path: "/jobs/:id/start", Handler: h.Bot.Start, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPost, Path: "/jobs/:id/finish", Handler: h.Bot.Finish, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPost, Path: "/jobs/:id/abort", Handler: h.Bot.Abort, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		tariffs := apiGroup.Group("/tariffs")
		{
			addRoutes(tariffs, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Tariff.List},
				{Method: http.MethodGet, Path: "/current", Handler: h.Tariff.Current},
				{Method: http.MethodPost, Path: "", Handler: h.Tariff.Publish, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/payments", Handler: h.Payment.List},
			{Method: http.MethodGet, Path: "/spots/free", Handler: h.Spot.ListFree},
			{Method: http.MethodGet, Path: "/cars", Handler: h.Car.List},
			{Method: http.MethodPut, Path: "/users/:id/rates", Handler: h.User.UpdateRates, Mw: []gin.HandlerFunc{adminOnly}},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
