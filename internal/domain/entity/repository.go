package entity

import (
	"context"

	"github.com/flexprice/assignments/internal/types"
)

// Repository defines the interface for entity data access. Returned entities
// carry their assigned customers.
type Repository interface {
	Create(ctx context.Context, entity *Entity) error
	Get(ctx context.Context, id string) (*Entity, error)
	List(ctx context.Context, filter *types.EntityFilter) ([]*Entity, error)
	Count(ctx context.Context, filter *types.EntityFilter) (int, error)
	// Update writes the name, type, label and metadata of the entity
	Update(ctx context.Context, entity *Entity) error
	Delete(ctx context.Context, id string) error

	// AssignCustomer is a no-op when the assignment already exists
	AssignCustomer(ctx context.Context, entityID string, customerID string) error
	// UnassignCustomer is a no-op when the assignment does not exist
	UnassignCustomer(ctx context.Context, entityID string, customerID string) error
}
