package cli

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/flexprice/assignments/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const publicAssetJSON = `{
	"id": "asset_1",
	"entity_type": "asset",
	"name": "Building 7",
	"assigned_customers": [
		{"customer_id": "cust_1", "title": "Acme"},
		{"customer_id": "cust_public", "title": "Public", "public": true},
		{"customer_id": "cust_2", "title": "Globex"}
	]
}`

func TestShowCommand(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterJSONResponse(http.MethodGet, "/v1/assets/asset_1", publicAssetJSON)

	out, err := execute(t, client, "show", "asset_1")
	require.NoError(t, err)

	assert.Contains(t, out, "Building 7 (asset_1)")
	assert.Contains(t, out, "public:    true")
	assert.Contains(t, out, "customers: Acme, Globex")
	assert.NotContains(t, out, "current public customer")
}

func TestShowCommandWithCustomer(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterJSONResponse(http.MethodGet, "/v1/assets/asset_1", publicAssetJSON)

	tests := []struct {
		name       string
		customerID string
		want       bool
	}{
		{name: "public customer", customerID: "cust_public", want: true},
		{name: "regular customer", customerID: "cust_1", want: false},
		{name: "unassigned customer", customerID: "cust_9", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, client, "--format", "json", "show", "asset_1", "--customer", tt.customerID)
			require.NoError(t, err)

			var resp struct {
				Data EntityVisibility `json:"data"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.True(t, resp.Data.IsPublic)
			assert.Equal(t, []string{"cust_1", "cust_public", "cust_2"}, resp.Data.CustomerIDs)
			require.NotNil(t, resp.Data.IsCurrentPublicCustomer)
			assert.Equal(t, tt.want, *resp.Data.IsCurrentPublicCustomer)
		})
	}
}

func TestShowCommandRequiresEntity(t *testing.T) {
	_, err := execute(t, testutil.NewMockHTTPClient(), "show")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
