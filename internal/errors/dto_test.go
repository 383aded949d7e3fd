package errors

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorResponse(t *testing.T) {
	err := NewError("entity ast_1 missing from tenant").
		WithHint("Asset not found").
		WithReportableDetails(map[string]any{"entity_id": "ast_1"}).
		Mark(ErrNotFound)

	resp := NewErrorResponse(fmt.Errorf("get asset: %w", err))

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Asset not found", resp.Error.Display)
	assert.Equal(t, map[string]any{"entity_id": "ast_1"}, resp.Error.Details)
	assert.Empty(t, resp.Error.InternalError)
}

func TestNewErrorResponse_PlainError(t *testing.T) {
	resp := NewErrorResponse(fmt.Errorf("boom"))

	assert.Equal(t, ErrCodeSystemError, resp.Error.Code)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Display)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "details")
	assert.NotContains(t, string(body), "boom")
}
