package postgres

import (
	"context"

	"github.com/flexprice/assignments/internal/logger"
	sentryService "github.com/flexprice/assignments/internal/sentry"
)

// SentryClient wraps the postgres client with Sentry span tracking
type SentryClient struct {
	client IClient
	sentry *sentryService.Service
	logger *logger.Logger
}

// NewClient returns the transaction client used by services, instrumented
// with Sentry spans when Sentry is enabled
func NewClient(db *DB, sentry *sentryService.Service, logger *logger.Logger) IClient {
	if !sentry.Enabled() {
		return db
	}
	return &SentryClient{
		client: db,
		sentry: sentry,
		logger: logger,
	}
}

// WithTx wraps the given function in a transaction with Sentry span tracking
func (c *SentryClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"operation": "transaction",
	})
	if span != nil {
		defer span.Finish()
	}

	return c.client.WithTx(spanCtx, fn)
}
