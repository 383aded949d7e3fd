package assignment

import (
	"context"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
)

// CustomerOperations is the per entity kind capability the orchestrator fans
// out to. Implementations must be idempotent, a failed workflow resubmits
// every entity including the ones that already succeeded.
type CustomerOperations interface {
	// AddCustomers assigns the entity to every given customer it is not yet assigned to
	AddCustomers(ctx context.Context, entityID string, customerIDs []string) error
	// ReplaceCustomers makes the given customers the complete assignment of the entity
	ReplaceCustomers(ctx context.Context, entityID string, customerIDs []string) error
	// RemoveCustomers unassigns the entity from every given customer it is assigned to
	RemoveCustomers(ctx context.Context, entityID string, customerIDs []string) error
}

// Operation is a single entity scoped customer operation
type Operation func(ctx context.Context, entityID string, customerIDs []string) error

// SelectOperation picks the operation applied to every target for mode
func SelectOperation(mode types.ActionMode, ops CustomerOperations) (Operation, error) {
	if ops == nil {
		return nil, ierr.NewError("customer operations not provided").
			WithHint("Assignment workflow requires customer operations").
			Mark(ierr.ErrConfiguration)
	}

	switch mode {
	case types.ActionModeAssign:
		return ops.AddCustomers, nil
	case types.ActionModeManage:
		return ops.ReplaceCustomers, nil
	case types.ActionModeUnassign:
		return ops.RemoveCustomers, nil
	}

	return nil, ierr.NewErrorf("unrecognized action mode %q", string(mode)).
		WithHint("Action mode must be one of assign, manage, unassign").
		Mark(ierr.ErrConfiguration)
}
