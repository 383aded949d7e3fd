package testutil

import (
	"context"
	"sync/atomic"

	"github.com/flexprice/assignments/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient runs transactional functions without a database. Work
// done by a failed function is not rolled back.
type MockPostgresClient struct {
	txCount int64
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient() *MockPostgresClient {
	return &MockPostgresClient{}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	atomic.AddInt64(&c.txCount, 1)
	return fn(ctx)
}

// TxCount is the number of transactions started
func (c *MockPostgresClient) TxCount() int {
	return int(atomic.LoadInt64(&c.txCount))
}
