package postgres

import (
	"context"
	"time"

	"github.com/flexprice/assignments/internal/domain/customer"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/postgres"
	"github.com/flexprice/assignments/internal/types"
)

const customerColumns = `id, tenant_id, title, email, is_public, metadata, status, created_at, updated_at, created_by, updated_by`

var customerSortColumns = []string{"created_at", "updated_at", "title"}

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			id, tenant_id, title, email, is_public, metadata, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :title, :email, :is_public, :metadata, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating customer",
		"customer_id", c.ID,
		"tenant_id", c.TenantID,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	return translateError(err, "Customer")
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND tenant_id = $2 AND status <> $3`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		return nil, translateError(err, "Customer")
	}
	return &c, nil
}

func (r *customerRepository) GetPublic(ctx context.Context) (*customer.Customer, error) {
	var c customer.Customer
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1 AND is_public AND status <> $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		return nil, translateError(err, "Public customer")
	}
	return &c, nil
}

func (r *customerRepository) where(ctx context.Context, filter *types.CustomerFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("tenant_id = ?", types.GetTenantID(ctx))
	if filter == nil {
		w.add("status = ?", types.StatusPublished)
		return w
	}
	w.add("status = ?", filter.GetStatus())
	if len(filter.CustomerIDs) > 0 {
		w.add("id IN (?)", filter.CustomerIDs)
	}
	if filter.Title != "" {
		w.add("title = ?", filter.Title)
	}
	if filter.Email != "" {
		w.add("email = ?", filter.Email)
	}
	if filter.IsPublic != nil {
		w.add("is_public = ?", *filter.IsPublic)
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

func (r *customerRepository) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	if filter == nil {
		filter = types.NewCustomerFilter()
	}

	query, args, err := r.where(ctx, filter).build(
		`SELECT `+customerColumns+` FROM customers`,
		orderAndPage("", customerSortColumns, filter),
	)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	q := r.db.GetQuerier(ctx)
	customers := []*customer.Customer{}
	if err := q.SelectContext(ctx, &customers, q.Rebind(query), args...); err != nil {
		return nil, translateError(err, "Customer")
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	query, args, err := r.where(ctx, filter).build(`SELECT COUNT(*) FROM customers`, "")
	if err != nil {
		return 0, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	q := r.db.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(query), args...); err != nil {
		return 0, translateError(err, "Customer")
	}
	return count, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers SET
			title = :title,
			email = :email,
			metadata = :metadata,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status <> 'deleted'`

	r.logger.Debugw("updating customer",
		"customer_id", c.ID,
		"tenant_id", c.TenantID,
	)

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return translateError(err, "Customer")
	}
	return requireAffected(result, "Customer")
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE customers SET
			status = $1,
			updated_at = $2,
			updated_by = $3
		WHERE id = $4 AND tenant_id = $5 AND status <> $1`

	r.logger.Debugw("deleting customer",
		"customer_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		types.StatusDeleted,
		time.Now().UTC(),
		types.GetUserID(ctx),
		id,
		types.GetTenantID(ctx),
	)
	if err != nil {
		return translateError(err, "Customer")
	}
	return requireAffected(result, "Customer")
}
