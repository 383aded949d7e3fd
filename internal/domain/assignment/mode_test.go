package assignment

import (
	"testing"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name       string
		entityType types.EntityType
		mode       types.ActionMode
		want       Descriptor
	}{
		{
			name:       "asset_assign",
			entityType: types.EntityTypeAsset,
			mode:       types.ActionModeAssign,
			want: Descriptor{
				EntityType: types.EntityTypeAsset,
				Mode:       types.ActionModeAssign,
				TitleKey:   "asset.assign-to-customers",
				LabelKey:   "asset.assign-to-customers-text",
				ActionKey:  "action.assign",
			},
		},
		{
			name:       "asset_manage",
			entityType: types.EntityTypeAsset,
			mode:       types.ActionModeManage,
			want: Descriptor{
				EntityType: types.EntityTypeAsset,
				Mode:       types.ActionModeManage,
				TitleKey:   "asset.manage-assigned-customers",
				LabelKey:   "asset.assigned-customers",
				ActionKey:  "action.update",
			},
		},
		{
			name:       "device_unassign",
			entityType: types.EntityTypeDevice,
			mode:       types.ActionModeUnassign,
			want: Descriptor{
				EntityType: types.EntityTypeDevice,
				Mode:       types.ActionModeUnassign,
				TitleKey:   "device.unassign-from-customers",
				LabelKey:   "device.unassign-from-customers-text",
				ActionKey:  "action.unassign",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveMode(tt.entityType, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMode_DistinctTriples(t *testing.T) {
	for _, entityType := range types.EntityTypes() {
		seen := map[[3]string]types.ActionMode{}
		for _, mode := range types.ActionModes() {
			d, err := ResolveMode(entityType, mode)
			require.NoError(t, err)
			assert.NotEmpty(t, d.TitleKey)
			assert.NotEmpty(t, d.LabelKey)
			assert.NotEmpty(t, d.ActionKey)

			key := [3]string{d.TitleKey, d.LabelKey, d.ActionKey}
			prev, dup := seen[key]
			assert.False(t, dup, "%s and %s share descriptor %v", prev, mode, key)
			seen[key] = mode
		}
	}
}

func TestResolveMode_UnknownModeIsConfigurationError(t *testing.T) {
	for _, mode := range []types.ActionMode{"", "reassign", "ASSIGN"} {
		d, err := ResolveMode(types.EntityTypeAsset, mode)
		require.Error(t, err)
		assert.True(t, ierr.IsConfiguration(err), "mode %q", mode)
		assert.Equal(t, Descriptor{}, d, "no assign defaults for %q", mode)
	}
}

func TestResolveMode_UnknownEntityType(t *testing.T) {
	_, err := ResolveMode("dashboard", types.ActionModeAssign)
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))
}
