package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/httpclient"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/pubsub"
	pubsubRouter "github.com/flexprice/assignments/internal/pubsub/router"
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
)

const (
	HeaderWebhookEvent = "X-Webhook-Event"
	HeaderWebhookID    = "X-Webhook-ID"
)

// Handler delivers published webhook events to the tenant endpoints
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
}

type handler struct {
	pubSub pubsub.PubSub
	config *config.Webhook
	client httpclient.Client
	logger *logger.Logger
}

func NewHandler(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	client httpclient.Client,
	logger *logger.Logger,
) (Handler, error) {
	return &handler{
		pubSub: pubSub,
		config: &cfg.Webhook,
		client: client,
		logger: logger,
	}, nil
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"webhook_handler",
		h.config.Topic,
		h.pubSub,
		h.processMessage,
	)
}

// processMessage processes a single webhook message
func (h *handler) processMessage(msg *message.Message) error {
	var event types.WebhookEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("failed to unmarshal webhook event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		return nil // Don't retry on unmarshal errors
	}

	ctx := context.WithValue(msg.Context(), types.CtxTenantID, event.TenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, event.UserID)

	return h.deliver(ctx, &event, msg.UUID, msg.Payload)
}

func (h *handler) deliver(ctx context.Context, event *types.WebhookEvent, messageUUID string, body []byte) error {
	tenantCfg, ok := h.config.Tenants[event.TenantID]
	if !ok {
		h.logger.Debugw("tenant config not found",
			"tenant_id", event.TenantID,
			"message_uuid", messageUUID,
		)
		// Don't retry if tenant not found
		return nil
	}

	if !tenantCfg.Enabled {
		h.logger.Debugw("webhooks disabled for tenant",
			"tenant_id", event.TenantID,
			"message_uuid", messageUUID,
		)
		return nil
	}

	if lo.Contains(tenantCfg.ExcludedEvents, event.EventName) {
		h.logger.Debugw("event excluded for tenant",
			"tenant_id", event.TenantID,
			"event", event.EventName,
		)
		return nil
	}

	headers := lo.Assign(tenantCfg.Headers, map[string]string{
		HeaderWebhookEvent: event.EventName,
		HeaderWebhookID:    event.ID,
	})

	resp, err := h.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     tenantCfg.Endpoint,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		h.logger.Errorw("failed to send webhook",
			"error", err,
			"message_uuid", messageUUID,
			"tenant_id", event.TenantID,
			"event", event.EventName,
		)
		return err
	}

	h.logger.Infow("webhook sent successfully",
		"message_uuid", messageUUID,
		"tenant_id", event.TenantID,
		"event", event.EventName,
		"status_code", resp.StatusCode,
	)

	return nil
}
