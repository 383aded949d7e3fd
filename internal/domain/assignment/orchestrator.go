package assignment

import (
	"context"
	"time"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

// Options tunes the fan-out
type Options struct {
	// MaxConcurrency caps in-flight tasks, 0 launches every task at once
	MaxConcurrency int
	// TaskTimeout bounds each entity task, 0 means no timeout
	TaskTimeout time.Duration
}

// Orchestrator applies one operation uniformly across a set of entities as a
// single operation that succeeds only if every entity task succeeds.
type Orchestrator struct {
	ops  CustomerOperations
	opts Options
}

func NewOrchestrator(ops CustomerOperations, opts Options) *Orchestrator {
	return &Orchestrator{ops: ops, opts: opts}
}

// Run issues one task per target, in target order, and waits for every task
// to settle. A failure never cancels its siblings, and tasks keep running if
// ctx is cancelled; only TaskTimeout bounds them. The returned error is a
// *JointError when any task failed.
func (o *Orchestrator) Run(ctx context.Context, mode types.ActionMode, targets []string, customerIDs []string) error {
	op, err := SelectOperation(mode, o.ops)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		return ierr.NewError("no target entities").
			WithHint("At least one entity must be selected").
			Mark(ierr.ErrValidation)
	}

	taskCtx := context.WithoutCancel(ctx)
	errs := make([]error, len(targets))

	p := pool.New()
	if o.opts.MaxConcurrency > 0 {
		p = p.WithMaxGoroutines(o.opts.MaxConcurrency)
	}

	for i, entityID := range targets {
		i, entityID := i, entityID
		ids := cloneIDs(customerIDs)
		p.Go(func() {
			errs[i] = o.runTask(taskCtx, op, entityID, ids)
		})
	}
	p.Wait()

	var failures []*TaskError
	for i, err := range errs {
		if err != nil {
			failures = append(failures, &TaskError{EntityID: targets[i], Index: i, Err: err})
		}
	}
	if len(failures) > 0 {
		return &JointError{Mode: mode, Total: len(targets), Failures: failures}
	}
	return nil
}

// runTask invokes op for one entity. A panic inside op is reported as that
// entity's failure instead of tearing down the whole fan-out.
func (o *Orchestrator) runTask(ctx context.Context, op Operation, entityID string, customerIDs []string) (err error) {
	if o.opts.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.TaskTimeout)
		defer cancel()
	}

	var pc panics.Catcher
	pc.Try(func() {
		err = op(ctx, entityID, customerIDs)
	})
	if r := pc.Recovered(); r != nil {
		err = ierr.WithError(r.AsError()).
			WithHintf("Assignment of entity %s panicked", entityID).
			Mark(ierr.ErrSystem)
	}
	return err
}
