package types

import (
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/samber/lo"
)

// ActionMode selects which bulk customer operation a workflow performs
type ActionMode string

const (
	ActionModeAssign   ActionMode = "assign"
	ActionModeManage   ActionMode = "manage"
	ActionModeUnassign ActionMode = "unassign"
)

var actionModes = []ActionMode{ActionModeAssign, ActionModeManage, ActionModeUnassign}

// ActionModes returns every supported action mode
func ActionModes() []ActionMode {
	return append([]ActionMode(nil), actionModes...)
}

func (m ActionMode) String() string {
	return string(m)
}

// Validate is used on request input; an unknown mode reaching the workflow
// itself is reported as a configuration error instead
func (m ActionMode) Validate() error {
	if !lo.Contains(actionModes, m) {
		return ierr.NewErrorf("invalid action mode %q", string(m)).
			WithHint("Action mode must be one of assign, manage, unassign").
			WithReportableDetails(map[string]any{
				"action_mode":   m,
				"allowed_modes": actionModes,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
