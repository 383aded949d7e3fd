package cache

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/stretchr/testify/assert"
)

func newTestCache(enabled bool) *InMemoryCache {
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = enabled
	return NewInMemoryCache(cfg, logger.NewNoopLogger())
}

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(true)

	key := GenerateKey(PrefixPublicCustomer, "tenant_1")
	assert.Equal(t, "public_customer:v1::tenant_1", key)

	c.Set(ctx, key, "cust_1", 0)
	got, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, "cust_1", got)

	c.Delete(ctx, key)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}

func TestInMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(true)

	c.Set(ctx, "k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestInMemoryCache_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(true)

	c.Set(ctx, GenerateKey(PrefixCustomer, "a"), 1, 0)
	c.Set(ctx, GenerateKey(PrefixCustomer, "b"), 2, 0)
	c.Set(ctx, GenerateKey(PrefixPublicCustomer, "t"), 3, 0)

	c.DeleteByPrefix(ctx, PrefixCustomer)

	_, ok := c.Get(ctx, GenerateKey(PrefixCustomer, "a"))
	assert.False(t, ok)
	_, ok = c.Get(ctx, GenerateKey(PrefixPublicCustomer, "t"))
	assert.True(t, ok)

	c.Flush(ctx)
	_, ok = c.Get(ctx, GenerateKey(PrefixPublicCustomer, "t"))
	assert.False(t, ok)
}

func TestInMemoryCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(false)

	c.Set(ctx, "k", "v", 0)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}
