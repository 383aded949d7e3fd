package assignment

import (
	"context"
	"testing"
	"time"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openWorkflow(t *testing.T, mode types.ActionMode, targets, initial []string, ops CustomerOperations) *Workflow {
	t.Helper()
	w, err := Open(Config{
		EntityType:         types.EntityTypeAsset,
		Mode:               mode,
		TargetEntityIDs:    targets,
		InitialCustomerIDs: initial,
		Operations:         ops,
	})
	require.NoError(t, err)
	return w
}

func isClosed(w *Workflow) bool {
	select {
	case <-w.Done():
		return true
	default:
		return false
	}
}

func TestWorkflow_ManageScenario(t *testing.T) {
	ops := newRecordingOperations()
	w := openWorkflow(t, types.ActionModeManage, []string{"e1", "e2"}, []string{"c1"}, ops)

	assert.Equal(t, StateIdle, w.State())
	assert.False(t, w.Submitted())
	assert.Equal(t, "asset.manage-assigned-customers", w.Descriptor().TitleKey)
	assert.Equal(t, []string{"c1"}, w.Selection().Current())

	require.NoError(t, w.Selection().Set([]string{"c1", "c2"}))
	require.NoError(t, w.Submit(context.Background()))

	byEntity := ops.callsByEntity()
	require.Len(t, ops.Calls(), 2)
	for _, id := range []string{"e1", "e2"} {
		require.Len(t, byEntity[id], 1)
		assert.Equal(t, call{op: "replace", entityID: id, customerIDs: []string{"c1", "c2"}}, byEntity[id][0])
	}

	assert.Equal(t, StateClosedSuccess, w.State())
	assert.True(t, w.Submitted())
	assert.True(t, isClosed(w))
	assert.True(t, w.Result())
	assert.NoError(t, w.LastError())
}

func TestWorkflow_UnassignWithEmptySelection(t *testing.T) {
	ops := newRecordingOperations()
	w := openWorkflow(t, types.ActionModeUnassign, []string{"e1"}, nil, ops)

	require.NoError(t, w.Submit(context.Background()))

	require.Len(t, ops.Calls(), 1)
	assert.Equal(t, call{op: "remove", entityID: "e1", customerIDs: []string{}}, ops.Calls()[0])
	assert.True(t, w.Result())
}

func TestWorkflow_AllSuccessClosesOnce(t *testing.T) {
	for _, n := range []int{1, 2, 10} {
		ops := newRecordingOperations()
		w := openWorkflow(t, types.ActionModeAssign, entityIDs(n), []string{"c1"}, ops)

		require.NoError(t, w.Submit(context.Background()))
		assert.True(t, isClosed(w))
		assert.True(t, w.Result())

		err := w.Submit(context.Background())
		require.Error(t, err)
		assert.True(t, ierr.IsInvalidOperation(err))
		assert.Len(t, ops.Calls(), n, "closed workflow must not reissue tasks")

		w.Cancel()
		assert.Equal(t, StateClosedSuccess, w.State())
		assert.True(t, w.Result())
	}
}

func TestWorkflow_FailureStaysOpenAndResubmits(t *testing.T) {
	ops := newRecordingOperations()
	ops.failFor["e2"] = errBoom
	w := openWorkflow(t, types.ActionModeAssign, []string{"e1", "e2", "e3"}, []string{"c1"}, ops)

	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateOpenAfterFailure, w.State())
	assert.False(t, isClosed(w))
	assert.False(t, w.Result())
	assert.True(t, w.Submitted())

	var joint *JointError
	require.ErrorAs(t, w.LastError(), &joint)
	assert.Equal(t, []string{"e2"}, joint.FailedEntityIDs())

	// selection is editable again after a failed submit
	require.NoError(t, w.Selection().Add("c2"))

	delete(ops.failFor, "e2")
	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, StateClosedSuccess, w.State())
	assert.True(t, w.Result())
	assert.True(t, w.Submitted())

	// resubmit reissues every entity, including the ones that succeeded before
	byEntity := ops.callsByEntity()
	for _, id := range []string{"e1", "e2", "e3"} {
		require.Len(t, byEntity[id], 2, id)
		assert.Equal(t, []string{"c1"}, byEntity[id][0].customerIDs)
		assert.Equal(t, []string{"c1", "c2"}, byEntity[id][1].customerIDs)
	}
}

func TestWorkflow_ConcurrentSubmitRefused(t *testing.T) {
	ops := newRecordingOperations()
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	ops.hook = func(ctx context.Context, entityID string) {
		entered <- struct{}{}
		<-release
	}
	w := openWorkflow(t, types.ActionModeAssign, []string{"e1"}, []string{"c1"}, ops)

	result := make(chan error, 1)
	go func() { result <- w.Submit(context.Background()) }()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("task never started")
	}

	assert.Equal(t, StateSubmitting, w.State())
	assert.True(t, w.Selection().Frozen())

	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))

	err = w.Selection().Add("c2")
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))

	close(release)
	require.NoError(t, <-result)
	assert.Len(t, ops.Calls(), 1)
	assert.Equal(t, []string{"c1"}, ops.Calls()[0].customerIDs)
}

func TestWorkflow_Cancel(t *testing.T) {
	ops := newRecordingOperations()
	w := openWorkflow(t, types.ActionModeAssign, []string{"e1"}, []string{"c1"}, ops)

	w.Cancel()
	assert.Equal(t, StateClosedCancelled, w.State())
	assert.True(t, isClosed(w))
	assert.False(t, w.Result())

	w.Cancel()
	assert.Equal(t, StateClosedCancelled, w.State())

	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))
	assert.Empty(t, ops.Calls())
}

func TestWorkflow_CancelAfterFailure(t *testing.T) {
	ops := newRecordingOperations()
	ops.failFor["e1"] = errBoom
	w := openWorkflow(t, types.ActionModeUnassign, []string{"e1"}, []string{"c1"}, ops)

	require.Error(t, w.Submit(context.Background()))
	w.Cancel()
	assert.Equal(t, StateClosedCancelled, w.State())
	assert.False(t, w.Result())
}

func TestWorkflow_CancelWhileSubmittingDiscardsOutcome(t *testing.T) {
	ops := newRecordingOperations()
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	ops.hook = func(ctx context.Context, entityID string) {
		entered <- struct{}{}
		<-release
	}
	w := openWorkflow(t, types.ActionModeAssign, []string{"e1"}, []string{"c1"}, ops)

	result := make(chan error, 1)
	go func() { result <- w.Submit(context.Background()) }()
	<-entered

	w.Cancel()
	assert.True(t, isClosed(w))

	close(release)
	require.NoError(t, <-result)
	assert.Equal(t, StateClosedCancelled, w.State())
	assert.False(t, w.Result())
	assert.Len(t, ops.Calls(), 1, "in-flight task is not aborted")
}

func TestOpen_Validation(t *testing.T) {
	ops := newRecordingOperations()

	_, err := Open(Config{EntityType: types.EntityTypeAsset, Mode: "bogus", TargetEntityIDs: []string{"e1"}, Operations: ops})
	assert.True(t, ierr.IsConfiguration(err))

	_, err = Open(Config{EntityType: types.EntityTypeDevice, Mode: types.ActionModeAssign, Operations: ops})
	assert.True(t, ierr.IsValidation(err))

	_, err = Open(Config{EntityType: types.EntityTypeDevice, Mode: types.ActionModeAssign, TargetEntityIDs: []string{"e1"}})
	assert.True(t, ierr.IsConfiguration(err))
}

func TestOpen_TargetsAreCopied(t *testing.T) {
	targets := []string{"e1", "e2"}
	w := openWorkflow(t, types.ActionModeAssign, targets, nil, newRecordingOperations())
	targets[0] = "mutated"
	assert.Equal(t, []string{"e1", "e2"}, w.Targets())
}
