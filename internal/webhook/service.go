package webhook

import (
	"context"
	"fmt"

	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/logger"
	pubsubRouter "github.com/flexprice/assignments/internal/pubsub/router"
	"github.com/flexprice/assignments/internal/webhook/handler"
	"github.com/flexprice/assignments/internal/webhook/publisher"
)

// WebhookService orchestrates webhook operations
type WebhookService struct {
	config    *config.Configuration
	publisher publisher.WebhookPublisher
	handler   handler.Handler
	router    *pubsubRouter.Router
	logger    *logger.Logger
	cancel    context.CancelFunc
	stopped   chan struct{}
}

// NewWebhookService creates a new webhook service
func NewWebhookService(
	cfg *config.Configuration,
	publisher publisher.WebhookPublisher,
	h handler.Handler,
	router *pubsubRouter.Router,
	l *logger.Logger,
) *WebhookService {
	return &WebhookService{
		config:    cfg,
		publisher: publisher,
		handler:   h,
		router:    router,
		logger:    l,
	}
}

// Start registers the delivery handler and runs the router in the background.
// It returns once the router is running.
func (s *WebhookService) Start(ctx context.Context) error {
	if !s.config.Webhook.Enabled {
		s.logger.Info("webhook service disabled")
		return nil
	}

	s.logger.Debug("starting webhook service")
	s.handler.RegisterHandler(s.router)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.stopped = make(chan struct{})

	errCh := make(chan error, 1)
	go func() {
		defer close(s.stopped)
		if err := s.router.Run(runCtx); err != nil {
			s.logger.Errorw("webhook router stopped", "error", err)
			errCh <- err
		}
	}()

	select {
	case <-s.router.Running():
	case err := <-errCh:
		cancel()
		return fmt.Errorf("failed to start webhook router: %w", err)
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}

	s.logger.Info("webhook service started successfully")
	return nil
}

// Stop stops the webhook service
func (s *WebhookService) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.logger.Debug("stopping webhook service")

	if err := s.router.Close(); err != nil {
		s.logger.Errorw("failed to close webhook router", "error", err)
		return fmt.Errorf("failed to close webhook router: %w", err)
	}
	s.cancel()

	select {
	case <-s.stopped:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := s.publisher.Close(); err != nil {
		s.logger.Errorw("failed to close webhook publisher", "error", err)
		return fmt.Errorf("failed to close webhook publisher: %w", err)
	}

	s.logger.Info("webhook service stopped successfully")
	return nil
}
