package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentryMiddlewareTagsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	cfg.Sentry.Enabled = true

	var hub *sentry.Hub
	router := gin.New()
	router.Use(RequestIDMiddleware, SentryMiddleware(cfg))
	router.GET("/v1/assets", func(c *gin.Context) {
		hub = sentry.GetHubFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) {
		hub = sentry.GetHubFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/assets", nil)
	req.Header.Set(types.HeaderRequestID, "req_1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, hub)
	assert.NotSame(t, sentry.CurrentHub(), hub)

	hub = nil
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, hub)
}
