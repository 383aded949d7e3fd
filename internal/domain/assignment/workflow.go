package assignment

import (
	"context"
	"sync"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
)

// State is the lifecycle state of a Workflow
type State string

const (
	StateIdle             State = "idle"
	StateSubmitting       State = "submitting"
	StateClosedSuccess    State = "closed_success"
	StateOpenAfterFailure State = "open_after_failure"
	StateClosedCancelled  State = "closed_cancelled"
)

// Closed reports whether the state is terminal
func (s State) Closed() bool {
	return s == StateClosedSuccess || s == StateClosedCancelled
}

// Config opens a workflow
type Config struct {
	EntityType         types.EntityType
	Mode               types.ActionMode
	TargetEntityIDs    []string
	InitialCustomerIDs []string
	Operations         CustomerOperations
	Options            Options
}

// Workflow is one bulk assignment invocation:
//
//	idle -> submitting -> closed_success
//	                   -> open_after_failure -> submitting ...
//
// Cancel closes an open workflow with a negative result. The workflow closes
// exactly once and Done is closed at that point.
type Workflow struct {
	descriptor   Descriptor
	targets      []string
	selection    *Selection
	orchestrator *Orchestrator

	mu        sync.Mutex
	state     State
	submitted bool
	lastErr   error
	result    bool
	done      chan struct{}
}

// Open validates cfg and returns an idle workflow. The selection starts as a
// copy of the initial customer ids.
func Open(cfg Config) (*Workflow, error) {
	descriptor, err := ResolveMode(cfg.EntityType, cfg.Mode)
	if err != nil {
		return nil, err
	}

	if cfg.Operations == nil {
		return nil, ierr.NewError("customer operations not provided").
			WithHint("Assignment workflow requires customer operations").
			Mark(ierr.ErrConfiguration)
	}

	if len(cfg.TargetEntityIDs) == 0 {
		return nil, ierr.NewError("no target entities").
			WithHint("At least one entity must be selected").
			Mark(ierr.ErrValidation)
	}

	return &Workflow{
		descriptor:   descriptor,
		targets:      cloneIDs(cfg.TargetEntityIDs),
		selection:    NewSelection(cfg.InitialCustomerIDs),
		orchestrator: NewOrchestrator(cfg.Operations, cfg.Options),
		state:        StateIdle,
		done:         make(chan struct{}),
	}, nil
}

func (w *Workflow) Descriptor() Descriptor {
	return w.descriptor
}

// Targets returns a copy of the target entity ids
func (w *Workflow) Targets() []string {
	return cloneIDs(w.targets)
}

// Selection is the editable customer selection
func (w *Workflow) Selection() *Selection {
	return w.selection
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submitted reports whether Submit was ever invoked. It never resets.
func (w *Workflow) Submitted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitted
}

// LastError is the error of the most recent failed submit
func (w *Workflow) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Done is closed when the workflow closes, by success or cancel
func (w *Workflow) Done() <-chan struct{} {
	return w.done
}

// Result is true only when the workflow closed after joint success
func (w *Workflow) Result() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// Submit runs the operation selected by the mode against every target with
// the current selection. On joint success the workflow closes with a positive
// result; on failure it reopens and can be submitted again, which reissues
// every task.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	switch w.state {
	case StateSubmitting:
		w.mu.Unlock()
		return ierr.NewError("submit already in progress").
			WithHint("The assignment is already being submitted").
			Mark(ierr.ErrInvalidOperation)
	case StateClosedSuccess, StateClosedCancelled:
		state := w.state
		w.mu.Unlock()
		return ierr.NewErrorf("workflow is closed (%s)", state).
			WithHint("The assignment workflow is already closed").
			Mark(ierr.ErrInvalidOperation)
	}
	w.state = StateSubmitting
	w.submitted = true
	customerIDs := w.selection.snapshot()
	w.mu.Unlock()

	err := w.orchestrator.Run(ctx, w.descriptor.Mode, w.targets, customerIDs)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection.unfreeze()

	// cancelled while in flight, the outcome is discarded
	if w.state == StateClosedCancelled {
		return err
	}

	if err != nil {
		w.state = StateOpenAfterFailure
		w.lastErr = err
		return err
	}

	w.lastErr = nil
	w.closeLocked(StateClosedSuccess, true)
	return nil
}

// Cancel closes the workflow with a negative result. In-flight tasks are not
// aborted, their outcome is discarded. Cancelling a closed workflow is a no-op.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Closed() {
		return
	}
	w.closeLocked(StateClosedCancelled, false)
}

func (w *Workflow) closeLocked(state State, result bool) {
	w.state = state
	w.result = result
	close(w.done)
}
