package assignment

import (
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
)

// Descriptor is the presentation metadata of a workflow, expressed as
// translation keys. Resolving them to text is left to the caller.
type Descriptor struct {
	EntityType types.EntityType `json:"entity_type"`
	Mode       types.ActionMode `json:"action_mode"`
	TitleKey   string           `json:"title_key"`
	LabelKey   string           `json:"label_key"`
	ActionKey  string           `json:"action_key"`
}

type modeKeys struct {
	title  string
	label  string
	action string
}

// modeTable is total over the supported action modes. There is no fallback
// entry, an unknown mode is rejected by ResolveMode.
var modeTable = map[types.ActionMode]modeKeys{
	types.ActionModeAssign: {
		title:  "assign-to-customers",
		label:  "assign-to-customers-text",
		action: "action.assign",
	},
	types.ActionModeManage: {
		title:  "manage-assigned-customers",
		label:  "assigned-customers",
		action: "action.update",
	},
	types.ActionModeUnassign: {
		title:  "unassign-from-customers",
		label:  "unassign-from-customers-text",
		action: "action.unassign",
	},
}

// ResolveMode maps an action mode to its descriptor for the given entity type.
// It has no side effects.
func ResolveMode(entityType types.EntityType, mode types.ActionMode) (Descriptor, error) {
	if err := entityType.Validate(); err != nil {
		return Descriptor{}, ierr.WithError(err).
			WithHintf("Unsupported entity type %q", string(entityType)).
			Mark(ierr.ErrConfiguration)
	}

	keys, ok := modeTable[mode]
	if !ok {
		return Descriptor{}, ierr.NewErrorf("unrecognized action mode %q", string(mode)).
			WithHint("Action mode must be one of assign, manage, unassign").
			WithReportableDetails(map[string]any{
				"action_mode": mode,
			}).
			Mark(ierr.ErrConfiguration)
	}

	prefix := string(entityType) + "."
	return Descriptor{
		EntityType: entityType,
		Mode:       mode,
		TitleKey:   prefix + keys.title,
		LabelKey:   prefix + keys.label,
		ActionKey:  keys.action,
	}, nil
}
