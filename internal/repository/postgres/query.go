package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/lib/pq"

	"github.com/flexprice/assignments/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

// whereBuilder collects AND-ed conditions written with ? placeholders.
// build expands slice arguments with sqlx.In; callers rebind the result.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *whereBuilder) build(base, suffix string) (string, []interface{}, error) {
	query := base + w.sql() + suffix
	if len(w.args) == 0 {
		return query, nil, nil
	}
	return sqlx.In(query, w.args...)
}

// pageable is the subset of types.BaseFilter needed for ordering and paging
type pageable interface {
	GetLimit() int
	GetOffset() int
	GetSort() string
	GetOrder() string
	IsUnlimited() bool
}

// orderAndPage renders ORDER BY and LIMIT. Sort columns outside sortable
// fall back to created_at.
func orderAndPage(alias string, sortable []string, f pageable) string {
	col := f.GetSort()
	if !lo.Contains(sortable, col) {
		col = types.FILTER_DEFAULT_SORT
	}
	order := "DESC"
	if f.GetOrder() == types.OrderAsc {
		order = "ASC"
	}
	if alias != "" {
		col = alias + "." + col
	}

	clause := fmt.Sprintf(" ORDER BY %s %s", col, order)
	if !f.IsUnlimited() {
		clause += fmt.Sprintf(" LIMIT %d OFFSET %d", f.GetLimit(), f.GetOffset())
	}
	return clause
}

const pqUniqueViolation = "23505"

// translateError maps driver errors onto the application sentinels
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s not found", resource).
			Mark(ierr.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ierr.WithError(err).
			WithHintf("%s already exists", resource).
			WithReportableDetails(map[string]any{
				"constraint": pqErr.Constraint,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return ierr.WithError(err).
		WithHintf("Failed to access %s", strings.ToLower(resource)).
		Mark(ierr.ErrDatabase)
}

// requireAffected turns an update that matched no row into a not found error
func requireAffected(result sql.Result, resource string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if n == 0 {
		return ierr.NewErrorf("%s not found", strings.ToLower(resource)).
			WithHintf("%s not found", resource).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
