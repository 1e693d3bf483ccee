package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-hunter/internal/handler/api"
	"rental-hunter/internal/handler/middleware"
	"rental-hunter/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	listingHandler *api.ListingHandler,
	jobsHandler *api.JobsHandler,
	webhookHandler *api.WebhookHandler,
	webhookAuth *middleware.WebhookAuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, listingHandler, jobsHandler, webhookHandler, webhookAuth)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	listingHandler *api.ListingHandler,
	jobsHandler *api.JobsHandler,
	webhookHandler *api.WebhookHandler,
	webhookAuth *middleware.WebhookAuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/listings", Handler: listingHandler.List},
			{Method: http.MethodGet, Path: "/jobs", Handler: jobsHandler.Status},
		})

		webhooks := apiGroup.Group("/webhooks")
		webhooks.Use(webhookAuth.RequireToken())
		{
			addRoutes(webhooks, []route{
				{Method: http.MethodPost, Path: "/response", Handler: webhookHandler.Response},
				{Method: http.MethodPost, Path: "/delivery", Handler: webhookHandler.Delivery},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
