package components

import (
	"rental-hunter/internal/handler"
	"rental-hunter/internal/handler/api"
	"rental-hunter/internal/handler/middleware"
	"rental-hunter/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewListingHandler,
		api.NewJobsHandler,
		api.NewWebhookHandler,
		NewWebhookAuth,
	),
	fx.Invoke(handler.NewRouter),
)

func NewWebhookAuth(cfg config.Config) *middleware.WebhookAuthMiddleware {
	return middleware.NewWebhookAuthMiddleware(cfg.Server)
}
