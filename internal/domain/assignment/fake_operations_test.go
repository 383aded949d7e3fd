package assignment

import (
	"context"
	"errors"
	"sync"
)

type call struct {
	op          string
	entityID    string
	customerIDs []string
}

// recordingOperations records every call and fails the entities listed in failFor
type recordingOperations struct {
	mu      sync.Mutex
	calls   []call
	failFor map[string]error
	// hook, when set, runs inside every call before it returns
	hook func(ctx context.Context, entityID string)
}

var errBoom = errors.New("boom")

func newRecordingOperations() *recordingOperations {
	return &recordingOperations{failFor: map[string]error{}}
}

func (r *recordingOperations) record(ctx context.Context, op, entityID string, customerIDs []string) error {
	if r.hook != nil {
		r.hook(ctx, entityID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{op: op, entityID: entityID, customerIDs: customerIDs})
	return r.failFor[entityID]
}

func (r *recordingOperations) AddCustomers(ctx context.Context, entityID string, customerIDs []string) error {
	return r.record(ctx, "add", entityID, customerIDs)
}

func (r *recordingOperations) ReplaceCustomers(ctx context.Context, entityID string, customerIDs []string) error {
	return r.record(ctx, "replace", entityID, customerIDs)
}

func (r *recordingOperations) RemoveCustomers(ctx context.Context, entityID string, customerIDs []string) error {
	return r.record(ctx, "remove", entityID, customerIDs)
}

func (r *recordingOperations) Calls() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

// callsByEntity indexes calls by entity id, completion order is not fixed
func (r *recordingOperations) callsByEntity() map[string][]call {
	out := map[string][]call{}
	for _, c := range r.Calls() {
		out[c.entityID] = append(out[c.entityID], c)
	}
	return out
}
