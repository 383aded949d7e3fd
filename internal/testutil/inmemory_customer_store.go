package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/flexprice/assignments/internal/domain/customer"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

// Helper to copy customer
func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}

	cp := *c
	cp.Metadata = lo.Assign(types.Metadata{}, c.Metadata)
	return &cp
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	// title is unique per tenant, and so is the public customer
	existing, _ := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, other *customer.Customer, _ interface{}) bool {
		return other.TenantID == c.TenantID &&
			other.Status != types.StatusDeleted &&
			(other.Title == c.Title || (c.IsPublic && other.IsPublic))
	}, nil)
	if len(existing) > 0 {
		return ierr.NewError("customer already exists").
			WithHint("Customer with this title already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	return s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c.Status == types.StatusDeleted || !CheckTenant(ctx, c.TenantID) {
		return nil, ierr.NewErrorf("customer %s not found", id).
			WithHint("Customer not found").
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) GetPublic(ctx context.Context) (*customer.Customer, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, c *customer.Customer, _ interface{}) bool {
		return c.IsPublic && c.Status != types.StatusDeleted && CheckTenant(ctx, c.TenantID)
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("public customer not found").
			WithHint("Public customer not found").
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(items[0]), nil
}

func (s *InMemoryCustomerStore) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	items, err := s.InMemoryStore.List(ctx, filter, customerFilterFn, customerSortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(c *customer.Customer, _ int) *customer.Customer {
		return copyCustomer(c)
	}), nil
}

func (s *InMemoryCustomerStore) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, customerFilterFn)
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Status = types.StatusDeleted
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)
	return s.InMemoryStore.Update(ctx, id, c)
}

// customerFilterFn implements filtering logic for customers
func customerFilterFn(ctx context.Context, c *customer.Customer, filter interface{}) bool {
	if !CheckTenant(ctx, c.TenantID) {
		return false
	}

	f, ok := filter.(*types.CustomerFilter)
	if !ok || f == nil {
		return c.Status == types.StatusPublished
	}

	if string(c.Status) != f.GetStatus() {
		return false
	}

	if len(f.CustomerIDs) > 0 && !lo.Contains(f.CustomerIDs, c.ID) {
		return false
	}

	if f.Title != "" && c.Title != f.Title {
		return false
	}

	if f.Email != "" && !strings.EqualFold(c.Email, f.Email) {
		return false
	}

	if f.IsPublic != nil && c.IsPublic != *f.IsPublic {
		return false
	}

	if f.TimeRangeFilter != nil && !f.TimeRangeFilter.Contains(c.CreatedAt) {
		return false
	}

	return true
}

// customerSortFn implements sorting logic for customers
func customerSortFn(i, j *customer.Customer) bool {
	// Default sort by created_at desc
	return i.CreatedAt.After(j.CreatedAt)
}
