package assignment

import (
	"fmt"
	"strings"

	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
)

// TaskError is the failure of the operation for a single target entity
type TaskError struct {
	EntityID string
	// Index is the position of the entity in the submitted targets
	Index int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("entity %s: %v", e.EntityID, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// JointError reports that at least one entity task failed. Tasks that
// succeeded are not rolled back. Failures are kept in target order.
type JointError struct {
	Mode     types.ActionMode
	Total    int
	Failures []*TaskError
}

func (e *JointError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("%s failed", e.Mode)
	}
	msgs := lo.Map(e.Failures, func(f *TaskError, _ int) string { return f.Error() })
	return fmt.Sprintf("%s failed for %d of %d entities: %s",
		e.Mode, len(e.Failures), e.Total, strings.Join(msgs, "; "))
}

// Unwrap exposes the first failure so sentinel matching follows its cause
func (e *JointError) Unwrap() error {
	if len(e.Failures) == 0 {
		return nil
	}
	return e.Failures[0]
}

// FailedEntityIDs returns the ids of the failed entities in target order
func (e *JointError) FailedEntityIDs() []string {
	return lo.Map(e.Failures, func(f *TaskError, _ int) string { return f.EntityID })
}

// Succeeded returns how many entity tasks completed without error
func (e *JointError) Succeeded() int {
	return e.Total - len(e.Failures)
}

// Details is the reportable summary of the failure
func (e *JointError) Details() map[string]any {
	return map[string]any{
		"failed_entity_ids": e.FailedEntityIDs(),
		"succeeded":         e.Succeeded(),
		"total":             e.Total,
	}
}
