package assignment

import (
	"testing"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_CopyIndependence(t *testing.T) {
	initial := []string{"c1", "c2"}
	s := NewSelection(initial)

	assert.Equal(t, []string{"c1", "c2"}, s.Current())

	initial[0] = "mutated"
	assert.Equal(t, []string{"c1", "c2"}, s.Current())

	current := s.Current()
	current[1] = "mutated"
	assert.Equal(t, []string{"c1", "c2"}, s.Current())

	replacement := []string{"c3"}
	require.NoError(t, s.Set(replacement))
	replacement[0] = "mutated"
	assert.Equal(t, []string{"c3"}, s.Current())
}

func TestSelection_EmptyIsLegal(t *testing.T) {
	s := NewSelection(nil)
	assert.NotNil(t, s.Current())
	assert.Empty(t, s.Current())
	assert.Equal(t, 0, s.Len())

	s = NewSelection([]string{"c1"})
	require.NoError(t, s.Set(nil))
	assert.Empty(t, s.Current())
}

func TestSelection_AddRemove(t *testing.T) {
	s := NewSelection([]string{"c1"})

	require.NoError(t, s.Add("c2", "c1", "c3"))
	assert.Equal(t, []string{"c1", "c2", "c3"}, s.Current())
	assert.True(t, s.Contains("c2"))

	require.NoError(t, s.Remove("c1", "missing"))
	assert.Equal(t, []string{"c2", "c3"}, s.Current())
	assert.False(t, s.Contains("c1"))
}

func TestSelection_FrozenRefusesEdits(t *testing.T) {
	s := NewSelection([]string{"c1"})
	snapshot := s.snapshot()
	assert.True(t, s.Frozen())

	for name, edit := range map[string]func() error{
		"set":    func() error { return s.Set([]string{"c9"}) },
		"add":    func() error { return s.Add("c9") },
		"remove": func() error { return s.Remove("c1") },
	} {
		err := edit()
		require.Error(t, err, name)
		assert.True(t, ierr.IsInvalidOperation(err), name)
	}
	assert.Equal(t, []string{"c1"}, s.Current())
	assert.Equal(t, []string{"c1"}, snapshot)

	s.unfreeze()
	require.NoError(t, s.Add("c2"))
	assert.Equal(t, []string{"c1", "c2"}, s.Current())
	assert.Equal(t, []string{"c1"}, snapshot)
}
