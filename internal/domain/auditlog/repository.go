package auditlog

import (
	"context"

	"github.com/flexprice/assignments/internal/types"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter *types.AuditLogFilter) ([]*Entry, error)
	Count(ctx context.Context, filter *types.AuditLogFilter) (int, error)
}
