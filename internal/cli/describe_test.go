package cli

import (
	"testing"

	"github.com/flexprice/assignments/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeModeCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "asset assign",
			args: []string{"describe-mode", "assign"},
			want: []string{"asset.assign-to-customers", "asset.assign-to-customers-text", "action.assign"},
		},
		{
			name: "device manage",
			args: []string{"--kind", "devices", "describe-mode", "manage"},
			want: []string{"device.manage-assigned-customers", "device.assigned-customers", "action.update"},
		},
		{
			name: "singular kind",
			args: []string{"--kind", "device", "describe-mode", "unassign"},
			want: []string{"device.unassign-from-customers", "action.unassign"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testutil.NewMockHTTPClient()
			out, err := execute(t, client, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			// descriptors are resolved locally
			assert.Empty(t, client.Requests())
		})
	}
}

func TestDescribeModeInvalid(t *testing.T) {
	out, err := execute(t, testutil.NewMockHTTPClient(), "describe-mode", "reassign")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [validation_error]")
}
