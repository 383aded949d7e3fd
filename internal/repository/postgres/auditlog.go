package postgres

import (
	"context"

	"github.com/flexprice/assignments/internal/domain/auditlog"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/postgres"
	"github.com/flexprice/assignments/internal/types"
)

const auditLogColumns = `id, tenant_id, entity_type, entity_id, entity_name, customer_id, action_type, action_status, user_id, details, failure_details, created_at`

type auditLogRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAuditLogRepository(db *postgres.DB, logger *logger.Logger) auditlog.Repository {
	return &auditLogRepository{db: db, logger: logger}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *auditlog.Entry) error {
	query := `
		INSERT INTO audit_logs (` + auditLogColumns + `) VALUES (
			:id, :tenant_id, :entity_type, :entity_id, :entity_name, :customer_id, :action_type,
			:action_status, :user_id, :details, :failure_details, :created_at
		)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, entry)
	return translateError(err, "Audit log")
}

func (r *auditLogRepository) where(ctx context.Context, filter *types.AuditLogFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("tenant_id = ?", types.GetTenantID(ctx))
	if filter == nil {
		return w
	}
	if filter.EntityType != "" {
		w.add("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		w.add("entity_id = ?", filter.EntityID)
	}
	if filter.CustomerID != "" {
		w.add("customer_id = ?", filter.CustomerID)
	}
	if filter.ActionType != "" {
		w.add("action_type = ?", filter.ActionType)
	}
	if filter.ActionStatus != "" {
		w.add("action_status = ?", filter.ActionStatus)
	}
	if filter.TimeRangeFilter != nil {
		if filter.StartTime != nil {
			w.add("created_at >= ?", *filter.StartTime)
		}
		if filter.EndTime != nil {
			w.add("created_at <= ?", *filter.EndTime)
		}
	}
	return w
}

func (r *auditLogRepository) List(ctx context.Context, filter *types.AuditLogFilter) ([]*auditlog.Entry, error) {
	if filter == nil {
		filter = types.NewAuditLogFilter()
	}

	query, args, err := r.where(ctx, filter).build(
		`SELECT `+auditLogColumns+` FROM audit_logs`,
		orderAndPage("", []string{"created_at"}, filter),
	)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	q := r.db.GetQuerier(ctx)
	entries := []*auditlog.Entry{}
	if err := q.SelectContext(ctx, &entries, q.Rebind(query), args...); err != nil {
		return nil, translateError(err, "Audit log")
	}
	return entries, nil
}

func (r *auditLogRepository) Count(ctx context.Context, filter *types.AuditLogFilter) (int, error) {
	query, args, err := r.where(ctx, filter).build(`SELECT COUNT(*) FROM audit_logs`, "")
	if err != nil {
		return 0, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	q := r.db.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(query), args...); err != nil {
		return 0, translateError(err, "Audit log")
	}
	return count, nil
}
