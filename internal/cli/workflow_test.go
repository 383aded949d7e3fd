package cli

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/flexprice/assignments/internal/api/dto"
	"github.com/flexprice/assignments/internal/httpclient"
	"github.com/flexprice/assignments/internal/testutil"
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestURLs(requests []*httpclient.Request) []string {
	return lo.Map(requests, func(r *httpclient.Request, _ int) string { return r.Method + " " + r.URL })
}

func requestCustomerIDs(t *testing.T, req *httpclient.Request) []string {
	t.Helper()
	var body dto.UpdateEntityCustomersRequest
	require.NoError(t, json.Unmarshal(req.Body, &body))
	return body.CustomerIDs
}

func TestAssignCommand(t *testing.T) {
	client := testutil.NewMockHTTPClient()

	out, err := execute(t, client, "assign",
		"--entity", "asset_1", "--entity", "asset_2",
		"--customer", "cust_1", "--customer", "cust_2")
	require.NoError(t, err)

	assert.Contains(t, out, "asset.assign-to-customers: 2 assets updated")
	assert.Contains(t, out, "customers: cust_1, cust_2")

	requests := client.Requests()
	assert.ElementsMatch(t, []string{
		"POST http://api.test/v1/assets/asset_1/customers",
		"POST http://api.test/v1/assets/asset_2/customers",
	}, requestURLs(requests))
	for _, req := range requests {
		assert.Equal(t, []string{"cust_1", "cust_2"}, requestCustomerIDs(t, req))
		assert.Equal(t, "key_1", req.Headers[types.HeaderAPIKey])
		assert.NotEmpty(t, req.Headers[types.HeaderRequestID])
	}
	// one invocation shares a single request id
	assert.Equal(t, requests[0].Headers[types.HeaderRequestID], requests[1].Headers[types.HeaderRequestID])
}

func TestUnassignDevices(t *testing.T) {
	client := testutil.NewMockHTTPClient()

	out, err := execute(t, client, "--kind", "devices", "--format", "json", "unassign",
		"-e", "dev_1", "-c", "cust_1")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   WorkflowResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, types.EntityTypeDevice, resp.Data.Descriptor.EntityType)
	assert.Equal(t, "device.unassign-from-customers", resp.Data.Descriptor.TitleKey)
	assert.Equal(t, "closed_success", string(resp.Data.State))
	assert.Equal(t, []string{"dev_1"}, resp.Data.EntityIDs)

	requests := client.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "POST http://api.test/v1/devices/dev_1/customers/remove", requestURLs(requests)[0])
}

func TestManageSeedsSelectionFromFirstEntity(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterJSONResponse(http.MethodGet, "/v1/assets/asset_1", `{
		"id": "asset_1",
		"entity_type": "asset",
		"name": "Building 7",
		"assigned_customers": [
			{"customer_id": "cust_1", "title": "Acme"},
			{"customer_id": "cust_2", "title": "Globex"}
		]
	}`)

	_, err := execute(t, client, "manage",
		"-e", "asset_1", "-e", "asset_2",
		"--add", "cust_3", "--remove", "cust_1")
	require.NoError(t, err)

	requests := client.Requests()
	require.Len(t, requests, 3)
	assert.Equal(t, "GET http://api.test/v1/assets/asset_1", requestURLs(requests)[0])

	puts := requests[1:]
	assert.ElementsMatch(t, []string{
		"PUT http://api.test/v1/assets/asset_1/customers",
		"PUT http://api.test/v1/assets/asset_2/customers",
	}, requestURLs(puts))
	for _, req := range puts {
		assert.Equal(t, []string{"cust_2", "cust_3"}, requestCustomerIDs(t, req))
	}
}

func TestManageWithCustomerReplacesSeed(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterJSONResponse(http.MethodGet, "/v1/assets/asset_1", `{
		"id": "asset_1",
		"assigned_customers": [{"customer_id": "cust_1", "title": "Acme"}]
	}`)

	_, err := execute(t, client, "manage", "-e", "asset_1", "-c", "cust_9")
	require.NoError(t, err)

	requests := client.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, []string{"cust_9"}, requestCustomerIDs(t, requests[1]))
}

func TestManageUnknownFirstEntity(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterResponse(http.MethodGet, "/v1/assets/asset_404", testutil.MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`{"success":false,"error":{"message":"Asset not found"}}`),
	})

	out, err := execute(t, client, "manage", "-e", "asset_404", "--add", "cust_1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [not_found]: Asset not found")

	// nothing is submitted without a seed
	assert.Len(t, client.Requests(), 1)
}

func TestAssignPartialFailure(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterResponse(http.MethodPost, "/v1/assets/asset_2/customers", testutil.MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`{"success":false,"error":{"message":"Customer not found"}}`),
	})

	out, err := execute(t, client, "--format", "json", "assign",
		"-e", "asset_1", "-e", "asset_2", "-c", "cust_1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, Reported(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not_found", resp.Error.Code)
	assert.Equal(t, []any{"asset_2"}, resp.Error.Details["failed_entity_ids"])
	assert.Equal(t, float64(1), resp.Error.Details["succeeded"])
	assert.Equal(t, float64(2), resp.Error.Details["total"])

	// the succeeded entity was still called, there is no rollback
	assert.Len(t, client.Requests(), 2)
}

func TestAssignServerSide(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterJSONResponse(http.MethodPost, "/v1/assets/bulk/customers", `{
		"success": true,
		"descriptor": {"entity_type": "asset", "action_mode": "assign", "title_key": "asset.assign-to-customers"},
		"entity_ids": ["asset_1", "asset_2"],
		"customer_ids": ["cust_1"]
	}`)

	out, err := execute(t, client, "assign", "--server-side",
		"-e", "asset_1", "-e", "asset_2", "-c", "cust_1")
	require.NoError(t, err)
	assert.Contains(t, out, "asset.assign-to-customers: 2 assets updated")

	requests := client.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "POST http://api.test/v1/assets/bulk/customers", requestURLs(requests)[0])

	var body dto.BulkAssignmentRequest
	require.NoError(t, json.Unmarshal(requests[0].Body, &body))
	assert.Equal(t, types.ActionModeAssign, body.ActionMode)
	assert.Equal(t, []string{"asset_1", "asset_2"}, body.EntityIDs)
	assert.Equal(t, []string{"cust_1"}, body.CustomerIDs)
}

func TestManageServerSideSendsEditedSelection(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterJSONResponse(http.MethodGet, "/v1/assets/asset_1", `{
		"id": "asset_1",
		"entity_type": "asset",
		"assigned_customers": [{"customer_id": "cust_1", "title": "Acme"}]
	}`)
	client.RegisterResponse(http.MethodPost, "/v1/assets/bulk/customers", testutil.MockResponse{
		StatusCode: http.StatusNotFound,
		Body: []byte(`{"success":false,"error":{"message":"Asset not found",` +
			`"details":{"failed_entity_ids":["asset_2"],"succeeded":1,"total":2}}}`),
	})

	out, err := execute(t, client, "--format", "json", "manage", "--server-side",
		"-e", "asset_1", "-e", "asset_2", "--add", "cust_2")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not_found", resp.Error.Code)
	assert.Equal(t, []any{"asset_2"}, resp.Error.Details["failed_entity_ids"])

	requests := client.Requests()
	require.Len(t, requests, 2)
	var body dto.BulkAssignmentRequest
	require.NoError(t, json.Unmarshal(requests[1].Body, &body))
	assert.Equal(t, types.ActionModeManage, body.ActionMode)
	assert.Equal(t, []string{"cust_1", "cust_2"}, body.CustomerIDs)
}

func TestWorkflowRequiresEntity(t *testing.T) {
	client := testutil.NewMockHTTPClient()

	_, err := execute(t, client, "assign", "-c", "cust_1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, client.Requests())
}
