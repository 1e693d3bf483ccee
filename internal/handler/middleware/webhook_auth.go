package middleware

import (
	"crypto/subtle"
	"net/http"

	"rental-hunter/internal/handler/httperr"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const webhookTokenHeader = "X-Webhook-Token"

var errInvalidWebhookToken = errs.New("invalid webhook token")

// WebhookAuthMiddleware guards the inbound provider callbacks with a shared
// secret header.
type WebhookAuthMiddleware struct {
	token string
}

func NewWebhookAuthMiddleware(cfg config.ServerConfig) *WebhookAuthMiddleware {
	return &WebhookAuthMiddleware{token: cfg.WebhookToken}
}

func (m *WebhookAuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(webhookTokenHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(m.token)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errInvalidWebhookToken, "Unauthorized", nil)
			return
		}
		c.Next()
	}
}
