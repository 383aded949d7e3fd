package types

import (
	"encoding/json"
	"time"
)

// WebhookEvent represents a webhook event to be delivered
type WebhookEvent struct {
	ID        string          `json:"id"`
	EventName string          `json:"event_name"`
	TenantID  string          `json:"tenant_id"`
	UserID    string          `json:"user_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// customer event names
const (
	WebhookEventCustomerCreated = "customer.created"
	WebhookEventCustomerUpdated = "customer.updated"
	WebhookEventCustomerDeleted = "customer.deleted"
)

// entity event names
const (
	WebhookEventEntityCreated          = "entity.created"
	WebhookEventEntityUpdated          = "entity.updated"
	WebhookEventEntityDeleted          = "entity.deleted"
	WebhookEventEntityCustomersUpdated = "entity.customers.updated"
)
