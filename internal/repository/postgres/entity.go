package postgres

import (
	"context"
	"time"

	"github.com/flexprice/assignments/internal/domain/entity"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/postgres"
	"github.com/flexprice/assignments/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

const entityColumns = `id, tenant_id, entity_type, name, type, label, metadata, status, created_at, updated_at, created_by, updated_by`

var entitySortColumns = []string{"created_at", "updated_at", "name"}

type entityRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewEntityRepository(db *postgres.DB, logger *logger.Logger) entity.Repository {
	return &entityRepository{db: db, logger: logger}
}

// assignmentRow is one row of the entity_customers join
type assignmentRow struct {
	EntityID string `db:"entity_id"`
	entity.CustomerInfo
}

func (r *entityRepository) Create(ctx context.Context, e *entity.Entity) error {
	query := `
		INSERT INTO entities (
			id, tenant_id, entity_type, name, type, label, metadata, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :entity_type, :name, :type, :label, :metadata, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating entity",
		"entity_id", e.ID,
		"entity_type", e.EntityType,
		"tenant_id", e.TenantID,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, e)
	return translateError(err, "Entity")
}

func (r *entityRepository) Get(ctx context.Context, id string) (*entity.Entity, error) {
	var e entity.Entity
	query := `SELECT ` + entityColumns + ` FROM entities WHERE id = $1 AND tenant_id = $2 AND status <> $3`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &e, query, id, types.GetTenantID(ctx), types.StatusDeleted); err != nil {
		return nil, translateError(err, "Entity")
	}

	if err := r.attachAssignments(ctx, []*entity.Entity{&e}); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entityRepository) where(ctx context.Context, filter *types.EntityFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("tenant_id = ?", types.GetTenantID(ctx))
	w.add("entity_type = ?", filter.EntityType)
	w.add("status = ?", filter.GetStatus())
	if len(filter.EntityIDs) > 0 {
		w.add("id IN (?)", filter.EntityIDs)
	}
	if filter.CustomerID != "" {
		w.add("id IN (SELECT entity_id FROM entity_customers WHERE tenant_id = ? AND customer_id = ?)",
			types.GetTenantID(ctx), filter.CustomerID)
	}
	if filter.Type != "" {
		w.add("type = ?", filter.Type)
	}
	if filter.Name != "" {
		w.add("name = ?", filter.Name)
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

func (r *entityRepository) List(ctx context.Context, filter *types.EntityFilter) ([]*entity.Entity, error) {
	query, args, err := r.where(ctx, filter).build(
		`SELECT `+entityColumns+` FROM entities`,
		orderAndPage("", entitySortColumns, filter),
	)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	q := r.db.GetQuerier(ctx)
	entities := []*entity.Entity{}
	if err := q.SelectContext(ctx, &entities, q.Rebind(query), args...); err != nil {
		return nil, translateError(err, "Entity")
	}

	if err := r.attachAssignments(ctx, entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *entityRepository) Count(ctx context.Context, filter *types.EntityFilter) (int, error) {
	query, args, err := r.where(ctx, filter).build(`SELECT COUNT(*) FROM entities`, "")
	if err != nil {
		return 0, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	q := r.db.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(query), args...); err != nil {
		return 0, translateError(err, "Entity")
	}
	return count, nil
}

func (r *entityRepository) Update(ctx context.Context, e *entity.Entity) error {
	query := `
		UPDATE entities SET
			name = :name,
			type = :type,
			label = :label,
			metadata = :metadata,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND entity_type = :entity_type AND status <> 'deleted'`

	r.logger.Debugw("updating entity",
		"entity_id", e.ID,
		"entity_type", e.EntityType,
		"tenant_id", e.TenantID,
	)

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, e)
	if err != nil {
		return translateError(err, "Entity")
	}
	return requireAffected(result, "Entity")
}

func (r *entityRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting entity",
		"entity_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)
		result, err := q.ExecContext(ctx, `
			UPDATE entities SET
				status = $1,
				updated_at = $2,
				updated_by = $3
			WHERE id = $4 AND tenant_id = $5 AND status <> $1`,
			types.StatusDeleted,
			time.Now().UTC(),
			types.GetUserID(ctx),
			id,
			types.GetTenantID(ctx),
		)
		if err != nil {
			return translateError(err, "Entity")
		}
		if err := requireAffected(result, "Entity"); err != nil {
			return err
		}

		_, err = q.ExecContext(ctx,
			`DELETE FROM entity_customers WHERE entity_id = $1 AND tenant_id = $2`,
			id, types.GetTenantID(ctx),
		)
		return translateError(err, "Entity assignment")
	})
}

func (r *entityRepository) AssignCustomer(ctx context.Context, entityID string, customerID string) error {
	r.logger.Debugw("assigning entity to customer",
		"entity_id", entityID,
		"customer_id", customerID,
	)

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `
		INSERT INTO entity_customers (tenant_id, entity_id, customer_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entity_id, customer_id) DO NOTHING`,
		types.GetTenantID(ctx),
		entityID,
		customerID,
		time.Now().UTC(),
		types.GetUserID(ctx),
	)
	return translateError(err, "Entity assignment")
}

func (r *entityRepository) UnassignCustomer(ctx context.Context, entityID string, customerID string) error {
	r.logger.Debugw("unassigning entity from customer",
		"entity_id", entityID,
		"customer_id", customerID,
	)

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`DELETE FROM entity_customers WHERE entity_id = $1 AND customer_id = $2 AND tenant_id = $3`,
		entityID, customerID, types.GetTenantID(ctx),
	)
	return translateError(err, "Entity assignment")
}

// attachAssignments loads the assigned customers of entities in one query,
// in assignment order
func (r *entityRepository) attachAssignments(ctx context.Context, entities []*entity.Entity) error {
	if len(entities) == 0 {
		return nil
	}

	ids := lo.Map(entities, func(e *entity.Entity, _ int) string { return e.ID })
	query, args, err := sqlx.In(`
		SELECT ec.entity_id, c.id AS customer_id, c.title, c.is_public
		FROM entity_customers ec
		JOIN customers c ON c.id = ec.customer_id
		WHERE ec.tenant_id = ? AND ec.entity_id IN (?) AND c.status <> ?
		ORDER BY ec.created_at, c.id`,
		types.GetTenantID(ctx), ids, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	q := r.db.GetQuerier(ctx)
	var rows []assignmentRow
	if err := q.SelectContext(ctx, &rows, q.Rebind(query), args...); err != nil {
		return translateError(err, "Entity assignment")
	}

	byEntity := lo.GroupBy(rows, func(row assignmentRow) string { return row.EntityID })
	for _, e := range entities {
		e.AssignedCustomers = lo.Map(byEntity[e.ID], func(row assignmentRow, _ int) entity.CustomerInfo {
			return row.CustomerInfo
		})
	}
	return nil
}
