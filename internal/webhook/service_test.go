package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/httpclient"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/pubsub/memory"
	pubsubRouter "github.com/flexprice/assignments/internal/pubsub/router"
	"github.com/flexprice/assignments/internal/types"
	"github.com/flexprice/assignments/internal/webhook/handler"
	"github.com/flexprice/assignments/internal/webhook/publisher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type delivery struct {
	event   types.WebhookEvent
	headers http.Header
}

func newTestService(t *testing.T, endpoint string, excluded ...string) (*WebhookService, publisher.WebhookPublisher) {
	t.Helper()

	cfg := config.GetDefaultConfig()
	cfg.Webhook.Enabled = true
	cfg.Webhook.MaxRetries = 0
	cfg.Webhook.InitialInterval = time.Millisecond
	cfg.Webhook.MaxInterval = time.Millisecond
	cfg.Webhook.Tenants = map[string]config.TenantWebhookConfig{
		"tenant_1": {
			Endpoint:       endpoint,
			Enabled:        true,
			Headers:        map[string]string{"X-Source": "test"},
			ExcludedEvents: excluded,
		},
	}

	log := logger.NewNoopLogger()
	ps := memory.NewPubSub(log)

	router, err := pubsubRouter.NewRouter(cfg, log, nil)
	require.NoError(t, err)

	pub, err := publisher.NewPublisher(ps, cfg, log)
	require.NoError(t, err)

	h, err := handler.NewHandler(ps, cfg, httpclient.NewDefaultClient(httpclient.DefaultClientConfig(), log), log)
	require.NoError(t, err)

	svc := NewWebhookService(cfg, pub, h, router, log)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = svc.Stop(ctx)
	})
	return svc, pub
}

func newEvent(id, name string) *types.WebhookEvent {
	return &types.WebhookEvent{
		ID:        id,
		EventName: name,
		TenantID:  "tenant_1",
		UserID:    "user_1",
		Timestamp: time.Now().UTC(),
		Payload:   json.RawMessage(`{"entity_id":"asset_1"}`),
	}
}

func TestWebhookService_DeliversToTenantEndpoint(t *testing.T) {
	received := make(chan delivery, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var event types.WebhookEvent
		_ = json.Unmarshal(body, &event)
		received <- delivery{event: event, headers: r.Header.Clone()}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, pub := newTestService(t, srv.URL)
	require.NoError(t, pub.PublishWebhook(context.Background(), newEvent("webhook_1", types.WebhookEventEntityCustomersUpdated)))

	select {
	case d := <-received:
		assert.Equal(t, "webhook_1", d.event.ID)
		assert.Equal(t, types.WebhookEventEntityCustomersUpdated, d.event.EventName)
		assert.JSONEq(t, `{"entity_id":"asset_1"}`, string(d.event.Payload))
		assert.Equal(t, types.WebhookEventEntityCustomersUpdated, d.headers.Get(handler.HeaderWebhookEvent))
		assert.Equal(t, "test", d.headers.Get("X-Source"))
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was not delivered")
	}
}

func TestWebhookService_SkipsExcludedEvents(t *testing.T) {
	received := make(chan string, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Get(handler.HeaderWebhookID)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, pub := newTestService(t, srv.URL, types.WebhookEventCustomerCreated)
	ctx := context.Background()
	require.NoError(t, pub.PublishWebhook(ctx, newEvent("webhook_excluded", types.WebhookEventCustomerCreated)))
	require.NoError(t, pub.PublishWebhook(ctx, newEvent("webhook_kept", types.WebhookEventEntityCreated)))

	select {
	case id := <-received:
		assert.Equal(t, "webhook_kept", id)
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was not delivered")
	}
}

func TestWebhookService_DisabledDoesNotStart(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Webhook.Enabled = false
	log := logger.NewNoopLogger()

	svc := NewWebhookService(cfg, nil, nil, nil, log)
	require.NoError(t, svc.Start(context.Background()))
	require.NoError(t, svc.Stop(context.Background()))
}
