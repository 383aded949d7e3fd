package webhook

import (
	"context"

	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/httpclient"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/pubsub"
	"github.com/flexprice/assignments/internal/pubsub/memory"
	pubsubRouter "github.com/flexprice/assignments/internal/pubsub/router"
	"github.com/flexprice/assignments/internal/sentry"
	"github.com/flexprice/assignments/internal/types"
	"github.com/flexprice/assignments/internal/webhook/handler"
	"github.com/flexprice/assignments/internal/webhook/publisher"
	"go.uber.org/fx"
)

// Module provides all webhook-related dependencies
var Module = fx.Options(
	fx.Provide(
		providePubSub,
		provideRouter,
		provideDeliveryClient,
	),

	fx.Provide(
		publisher.NewPublisher,
		handler.NewHandler,
		NewWebhookService,
	),

	fx.Invoke(registerHooks),
)

func providePubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
) pubsub.PubSub {
	switch cfg.Webhook.PubSub {
	case types.PubSubTypeMemory, "":
		return memory.NewPubSub(logger)
	}
	panic("unsupported pubsub type: " + string(cfg.Webhook.PubSub))
}

func provideRouter(cfg *config.Configuration, logger *logger.Logger, sentry *sentry.Service) (*pubsubRouter.Router, error) {
	return pubsubRouter.NewRouter(cfg, logger, sentry)
}

// provideDeliveryClient does not retry on its own, the router retry
// middleware owns redelivery
func provideDeliveryClient(logger *logger.Logger) httpclient.Client {
	return httpclient.NewDefaultClient(httpclient.DefaultClientConfig(), logger)
}

func registerHooks(lc fx.Lifecycle, svc *WebhookService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return svc.Stop(ctx)
		},
	})
}
