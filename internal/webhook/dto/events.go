package dto

import "github.com/flexprice/assignments/internal/types"

type InternalCustomerEvent struct {
	CustomerID string `json:"customer_id"`
	TenantID   string `json:"tenant_id"`
}

type InternalEntityEvent struct {
	EntityID   string           `json:"entity_id"`
	EntityType types.EntityType `json:"entity_type"`
	TenantID   string           `json:"tenant_id"`
}

// InternalEntityCustomersEvent describes a change of the customers an entity
// is assigned to
type InternalEntityCustomersEvent struct {
	EntityID    string           `json:"entity_id"`
	EntityType  types.EntityType `json:"entity_type"`
	TenantID    string           `json:"tenant_id"`
	Assigned    []string         `json:"assigned_customer_ids"`
	Unassigned  []string         `json:"unassigned_customer_ids"`
	CustomerIDs []string         `json:"customer_ids"`
}
