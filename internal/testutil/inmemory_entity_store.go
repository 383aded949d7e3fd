package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/flexprice/assignments/internal/domain/entity"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
)

// InMemoryEntityStore implements entity.Repository. Assigned customers are
// resolved against the customer store on read.
type InMemoryEntityStore struct {
	*InMemoryStore[*entity.Entity]

	customers *InMemoryCustomerStore

	mu          sync.Mutex
	assignments map[string][]string
	failures    map[string]error
}

// NewInMemoryEntityStore creates a new in-memory entity store
func NewInMemoryEntityStore(customers *InMemoryCustomerStore) *InMemoryEntityStore {
	return &InMemoryEntityStore{
		InMemoryStore: NewInMemoryStore[*entity.Entity](),
		customers:     customers,
		assignments:   make(map[string][]string),
		failures:      make(map[string]error),
	}
}

// FailAssignmentsFor makes every assignment change of entityID return err
func (s *InMemoryEntityStore) FailAssignmentsFor(entityID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[entityID] = err
}

func copyEntity(e *entity.Entity) *entity.Entity {
	if e == nil {
		return nil
	}

	cp := *e
	cp.Metadata = lo.Assign(types.Metadata{}, e.Metadata)
	cp.AssignedCustomers = nil
	return &cp
}

// checkNameFree mirrors the unique name index of the entities table
func (s *InMemoryEntityStore) checkNameFree(ctx context.Context, e *entity.Entity) error {
	existing, _ := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, other *entity.Entity, _ interface{}) bool {
		return other.ID != e.ID &&
			other.TenantID == e.TenantID &&
			other.EntityType == e.EntityType &&
			other.Name == e.Name &&
			other.Status != types.StatusDeleted
	}, nil)
	if len(existing) > 0 {
		return ierr.NewError("entity already exists").
			WithHintf("%s with this name already exists", e.EntityType).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryEntityStore) Create(ctx context.Context, e *entity.Entity) error {
	if err := s.checkNameFree(ctx, e); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, e.ID, copyEntity(e))
}

func (s *InMemoryEntityStore) Update(ctx context.Context, e *entity.Entity) error {
	existing, err := s.InMemoryStore.Get(ctx, e.ID)
	if err != nil || existing.Status == types.StatusDeleted ||
		existing.EntityType != e.EntityType || !CheckTenant(ctx, existing.TenantID) {
		return ierr.NewErrorf("entity %s not found", e.ID).
			WithHint("Entity not found").
			Mark(ierr.ErrNotFound)
	}
	if err := s.checkNameFree(ctx, e); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, e.ID, copyEntity(e))
}

func (s *InMemoryEntityStore) Get(ctx context.Context, id string) (*entity.Entity, error) {
	e, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || e.Status == types.StatusDeleted || !CheckTenant(ctx, e.TenantID) {
		return nil, ierr.NewErrorf("entity %s not found", id).
			WithHint("Entity not found").
			Mark(ierr.ErrNotFound)
	}
	return s.withAssignments(ctx, e), nil
}

func (s *InMemoryEntityStore) List(ctx context.Context, filter *types.EntityFilter) ([]*entity.Entity, error) {
	items, err := s.InMemoryStore.List(ctx, filter, s.filterFn, entitySortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(e *entity.Entity, _ int) *entity.Entity {
		return s.withAssignments(ctx, e)
	}), nil
}

func (s *InMemoryEntityStore) Count(ctx context.Context, filter *types.EntityFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, s.filterFn)
}

func (s *InMemoryEntityStore) Delete(ctx context.Context, id string) error {
	e, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || e.Status == types.StatusDeleted || !CheckTenant(ctx, e.TenantID) {
		return ierr.NewErrorf("entity %s not found", id).
			WithHint("Entity not found").
			Mark(ierr.ErrNotFound)
	}

	deleted := copyEntity(e)
	deleted.Status = types.StatusDeleted
	deleted.UpdatedAt = time.Now().UTC()
	deleted.UpdatedBy = types.GetUserID(ctx)

	s.mu.Lock()
	delete(s.assignments, id)
	s.mu.Unlock()

	return s.InMemoryStore.Update(ctx, id, deleted)
}

func (s *InMemoryEntityStore) AssignCustomer(ctx context.Context, entityID string, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[entityID]; err != nil {
		return err
	}
	if !lo.Contains(s.assignments[entityID], customerID) {
		s.assignments[entityID] = append(s.assignments[entityID], customerID)
	}
	return nil
}

func (s *InMemoryEntityStore) UnassignCustomer(ctx context.Context, entityID string, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[entityID]; err != nil {
		return err
	}
	s.assignments[entityID] = lo.Without(s.assignments[entityID], customerID)
	return nil
}

// AssignedCustomerIDs returns the raw assignment of entityID, including
// deleted customers
func (s *InMemoryEntityStore) AssignedCustomerIDs(entityID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.assignments[entityID]...)
}

// Clear removes all entities and assignments
func (s *InMemoryEntityStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = make(map[string][]string)
	s.failures = make(map[string]error)
}

func (s *InMemoryEntityStore) withAssignments(ctx context.Context, e *entity.Entity) *entity.Entity {
	cp := copyEntity(e)
	cp.AssignedCustomers = lo.FilterMap(s.AssignedCustomerIDs(e.ID), func(customerID string, _ int) (entity.CustomerInfo, bool) {
		c, err := s.customers.Get(ctx, customerID)
		if err != nil {
			return entity.CustomerInfo{}, false
		}
		return entity.CustomerInfo{CustomerID: c.ID, Title: c.Title, Public: c.IsPublic}, true
	})
	return cp
}

func (s *InMemoryEntityStore) filterFn(ctx context.Context, e *entity.Entity, filter interface{}) bool {
	if !CheckTenant(ctx, e.TenantID) {
		return false
	}

	f, ok := filter.(*types.EntityFilter)
	if !ok || f == nil {
		return e.Status == types.StatusPublished
	}

	if e.EntityType != f.EntityType || string(e.Status) != f.GetStatus() {
		return false
	}

	if len(f.EntityIDs) > 0 && !lo.Contains(f.EntityIDs, e.ID) {
		return false
	}

	if f.CustomerID != "" && !lo.Contains(s.AssignedCustomerIDs(e.ID), f.CustomerID) {
		return false
	}

	if f.Type != "" && e.Type != f.Type {
		return false
	}

	if f.Name != "" && e.Name != f.Name {
		return false
	}

	if f.TimeRangeFilter != nil && !f.TimeRangeFilter.Contains(e.CreatedAt) {
		return false
	}

	return true
}

func entitySortFn(i, j *entity.Entity) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
