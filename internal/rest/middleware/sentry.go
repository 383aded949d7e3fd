package middleware

import (
	"time"

	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/types"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware opens a sentry transaction per request, tagged with the
// request id. Health checks are not traced.
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	handler := sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetTag("request_id", types.GetRequestID(ctx))
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(ctx, hub))

		handler(c)
	}
}
