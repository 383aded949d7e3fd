package assignment

import (
	"sync"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/samber/lo"
)

// Selection holds the editable customer ids of one workflow. Reads and writes
// always copy, callers never share the backing slice. While a submit is in
// flight the selection is frozen and edits are refused.
type Selection struct {
	mu     sync.RWMutex
	ids    []string
	frozen bool
}

// NewSelection returns a selection seeded with a copy of initial
func NewSelection(initial []string) *Selection {
	return &Selection{ids: cloneIDs(initial)}
}

// Current returns a copy of the selected customer ids
func (s *Selection) Current() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIDs(s.ids)
}

func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func (s *Selection) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Contains(s.ids, id)
}

// Frozen reports whether a submit currently holds the selection
func (s *Selection) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozen
}

// Set replaces the selection with a copy of ids. An empty selection is legal.
func (s *Selection) Set(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkEditable(); err != nil {
		return err
	}
	s.ids = cloneIDs(ids)
	return nil
}

// Add appends the ids that are not selected yet, keeping their order
func (s *Selection) Add(ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkEditable(); err != nil {
		return err
	}
	for _, id := range ids {
		if !lo.Contains(s.ids, id) {
			s.ids = append(s.ids, id)
		}
	}
	return nil
}

// Remove drops every occurrence of the given ids
func (s *Selection) Remove(ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkEditable(); err != nil {
		return err
	}
	s.ids = lo.Without(s.ids, ids...)
	return nil
}

// snapshot freezes the selection and returns what the submit will send
func (s *Selection) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
	return cloneIDs(s.ids)
}

func (s *Selection) unfreeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = false
}

func (s *Selection) checkEditable() error {
	if s.frozen {
		return ierr.NewError("selection is frozen while a submit is in progress").
			WithHint("Customer selection cannot be changed while the assignment is being submitted").
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

// cloneIDs copies ids, never returning nil
func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
