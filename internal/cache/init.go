package cache

import (
	"go.uber.org/fx"
)

// Module provides the process wide cache
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewInMemoryCache,
			func(c *InMemoryCache) Cache { return c },
		),
	)
}
