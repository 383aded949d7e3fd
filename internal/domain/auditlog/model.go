package auditlog

import (
	"context"
	"time"

	"github.com/flexprice/assignments/internal/types"
)

// Entry records one customer assignment change made to an entity
type Entry struct {
	ID           string                  `db:"id" json:"id"`
	TenantID     string                  `db:"tenant_id" json:"tenant_id"`
	EntityType   types.EntityType        `db:"entity_type" json:"entity_type"`
	EntityID     string                  `db:"entity_id" json:"entity_id"`
	EntityName   string                  `db:"entity_name" json:"entity_name"`
	CustomerID   string                  `db:"customer_id" json:"customer_id"`
	ActionType   types.AuditActionType   `db:"action_type" json:"action_type"`
	ActionStatus types.AuditActionStatus `db:"action_status" json:"action_status"`
	UserID       string                  `db:"user_id" json:"user_id"`

	// Details carries the customer title and whatever else describes the change
	Details        types.Metadata `db:"details" json:"details"`
	FailureDetails string         `db:"failure_details" json:"failure_details,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// NewEntry stamps a new entry with the tenant and user of ctx
func NewEntry(ctx context.Context, entityType types.EntityType, entityID, entityName, customerID string, action types.AuditActionType) *Entry {
	return &Entry{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AUDIT_LOG),
		TenantID:     types.GetTenantID(ctx),
		EntityType:   entityType,
		EntityID:     entityID,
		EntityName:   entityName,
		CustomerID:   customerID,
		ActionType:   action,
		ActionStatus: types.AuditActionStatusSuccess,
		UserID:       types.GetUserID(ctx),
		Details:      types.Metadata{},
		CreatedAt:    time.Now().UTC(),
	}
}

// Failed marks the entry as a failed attempt
func (e *Entry) Failed(err error) *Entry {
	e.ActionStatus = types.AuditActionStatusFailure
	if err != nil {
		e.FailureDetails = err.Error()
	}
	return e
}
