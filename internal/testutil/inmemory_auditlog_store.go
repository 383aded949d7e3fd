package testutil

import (
	"context"

	"github.com/flexprice/assignments/internal/domain/auditlog"
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
)

// InMemoryAuditLogStore implements auditlog.Repository
type InMemoryAuditLogStore struct {
	*InMemoryStore[*auditlog.Entry]
}

func NewInMemoryAuditLogStore() *InMemoryAuditLogStore {
	return &InMemoryAuditLogStore{
		InMemoryStore: NewInMemoryStore[*auditlog.Entry](),
	}
}

func (s *InMemoryAuditLogStore) Create(ctx context.Context, entry *auditlog.Entry) error {
	cp := *entry
	cp.Details = lo.Assign(types.Metadata{}, entry.Details)
	return s.InMemoryStore.Create(ctx, entry.ID, &cp)
}

func (s *InMemoryAuditLogStore) List(ctx context.Context, filter *types.AuditLogFilter) ([]*auditlog.Entry, error) {
	return s.InMemoryStore.List(ctx, filter, auditLogFilterFn, auditLogSortFn)
}

func (s *InMemoryAuditLogStore) Count(ctx context.Context, filter *types.AuditLogFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, auditLogFilterFn)
}

// All returns every entry oldest first, regardless of tenant
func (s *InMemoryAuditLogStore) All() []*auditlog.Entry {
	items, _ := s.InMemoryStore.List(context.Background(), nil, nil, func(i, j *auditlog.Entry) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
	return items
}

func auditLogFilterFn(ctx context.Context, e *auditlog.Entry, filter interface{}) bool {
	if !CheckTenant(ctx, e.TenantID) {
		return false
	}

	f, ok := filter.(*types.AuditLogFilter)
	if !ok || f == nil {
		return true
	}

	if f.EntityType != "" && e.EntityType != f.EntityType {
		return false
	}
	if f.EntityID != "" && e.EntityID != f.EntityID {
		return false
	}
	if f.CustomerID != "" && e.CustomerID != f.CustomerID {
		return false
	}
	if f.ActionType != "" && e.ActionType != f.ActionType {
		return false
	}
	if f.ActionStatus != "" && e.ActionStatus != f.ActionStatus {
		return false
	}
	if f.TimeRangeFilter != nil && !f.TimeRangeFilter.Contains(e.CreatedAt) {
		return false
	}
	return true
}

func auditLogSortFn(i, j *auditlog.Entry) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
