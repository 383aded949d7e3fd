package service

import (
	"context"

	"github.com/flexprice/assignments/internal/domain/assignment"
)

// entityCustomerOperations exposes an entity service as the capability a bulk
// assignment workflow fans out to
type entityCustomerOperations struct {
	svc EntityService
}

// NewEntityCustomerOperations adapts svc to assignment.CustomerOperations
func NewEntityCustomerOperations(svc EntityService) assignment.CustomerOperations {
	return &entityCustomerOperations{svc: svc}
}

func (o *entityCustomerOperations) AddCustomers(ctx context.Context, entityID string, customerIDs []string) error {
	_, err := o.svc.AddCustomers(ctx, entityID, customerIDs)
	return err
}

func (o *entityCustomerOperations) ReplaceCustomers(ctx context.Context, entityID string, customerIDs []string) error {
	_, err := o.svc.UpdateCustomers(ctx, entityID, customerIDs)
	return err
}

func (o *entityCustomerOperations) RemoveCustomers(ctx context.Context, entityID string, customerIDs []string) error {
	_, err := o.svc.RemoveCustomers(ctx, entityID, customerIDs)
	return err
}
