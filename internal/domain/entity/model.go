package entity

import (
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
)

// CustomerInfo is the short form of a customer an entity is assigned to
type CustomerInfo struct {
	CustomerID string `db:"customer_id" json:"customer_id"`
	Title      string `db:"title" json:"title"`
	// Public marks the tenant public pseudo-customer
	Public bool `db:"is_public" json:"public"`
}

// Entity is an assignable entity, an asset or a device
type Entity struct {
	// ID is the unique identifier for the entity
	ID string `db:"id" json:"id"`

	// EntityType is the kind of the entity
	EntityType types.EntityType `db:"entity_type" json:"entity_type"`

	// Name is the name of the entity, unique per tenant and kind
	Name string `db:"name" json:"name"`

	// Type is the free form type of the entity, ex "building" or "thermostat"
	Type string `db:"type" json:"type"`

	// Label is an optional display label
	Label string `db:"label" json:"label"`

	// Metadata
	Metadata types.Metadata `db:"metadata" json:"metadata"`

	// AssignedCustomers lists the customers the entity is assigned to, in
	// assignment order. Nil and empty mean the same thing.
	AssignedCustomers []CustomerInfo `db:"-" json:"assigned_customers"`

	types.BaseModel
}

// AssignedCustomerIDs returns the ids of the assigned customers
func (e *Entity) AssignedCustomerIDs() []string {
	if e == nil {
		return []string{}
	}
	return lo.Map(e.AssignedCustomers, func(c CustomerInfo, _ int) string { return c.CustomerID })
}

// IsAssignedToCustomer reports whether the entity is assigned to customerID
func (e *Entity) IsAssignedToCustomer(customerID string) bool {
	_, ok := e.GetAssignedCustomerInfo(customerID)
	return ok
}

// GetAssignedCustomerInfo returns the assignment for customerID if present
func (e *Entity) GetAssignedCustomerInfo(customerID string) (CustomerInfo, bool) {
	if e == nil || customerID == "" {
		return CustomerInfo{}, false
	}
	return lo.Find(e.AssignedCustomers, func(c CustomerInfo) bool {
		return c.CustomerID == customerID
	})
}

// AddAssignedCustomer records the assignment, returns false if it already exists
func (e *Entity) AddAssignedCustomer(info CustomerInfo) bool {
	if e.IsAssignedToCustomer(info.CustomerID) {
		return false
	}
	e.AssignedCustomers = append(e.AssignedCustomers, info)
	return true
}

// RemoveAssignedCustomer drops the assignment, returns false if it did not exist
func (e *Entity) RemoveAssignedCustomer(customerID string) bool {
	if !e.IsAssignedToCustomer(customerID) {
		return false
	}
	e.AssignedCustomers = lo.Reject(e.AssignedCustomers, func(c CustomerInfo, _ int) bool {
		return c.CustomerID == customerID
	})
	return true
}
