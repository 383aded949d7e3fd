package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/flexprice/assignments/internal/api/dto"
	"github.com/flexprice/assignments/internal/domain/entity"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(retryMax int) Client {
	return NewDefaultClient(ClientConfig{
		Timeout:      5 * time.Second,
		RetryMax:     retryMax,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}, logger.NewNoopLogger())
}

func TestAssignmentClient_CustomerCalls(t *testing.T) {
	type call struct {
		method string
		path   string
		apiKey string
		ids    []string
	}
	var (
		mu    sync.Mutex
		calls []call
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req dto.UpdateEntityCustomersRequest
		assert.NoError(t, json.Unmarshal(body, &req))
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, call{r.Method, r.URL.Path, r.Header.Get(types.HeaderAPIKey), req.CustomerIDs})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewAssignmentClient(newTestClient(0), srv.URL+"/", "secret", types.EntityTypeDevice)
	ctx := context.Background()

	require.NoError(t, c.AddCustomers(ctx, "dev_1", []string{"c1"}))
	require.NoError(t, c.ReplaceCustomers(ctx, "dev_1", []string{"c1", "c2"}))
	require.NoError(t, c.RemoveCustomers(ctx, "dev_1", nil))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 3)
	assert.Equal(t, call{http.MethodPost, "/v1/devices/dev_1/customers", "secret", []string{"c1"}}, calls[0])
	assert.Equal(t, call{http.MethodPut, "/v1/devices/dev_1/customers", "secret", []string{"c1", "c2"}}, calls[1])
	assert.Equal(t, call{http.MethodPost, "/v1/devices/dev_1/customers/remove", "secret", []string{}}, calls[2])
}

func TestAssignmentClient_ErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ierr.ErrorResponse{
			Error: ierr.ErrorDetail{Code: ierr.ErrCodeNotFound, Display: "Customer not found"},
		})
	}))
	defer srv.Close()

	c := NewAssignmentClient(newTestClient(0), srv.URL, "", types.EntityTypeAsset)
	err := c.AddCustomers(context.Background(), "asset_1", []string{"missing"})
	require.Error(t, err)

	assert.True(t, ierr.IsNotFound(err))
	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "Customer not found", httpErr.Message)
	assert.Equal(t, ierr.ErrCodeNotFound, httpErr.Code)
}

func TestDefaultClient_RetriesServerErrors(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := newTestClient(3).Send(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestDefaultClient_ReturnsLastResponseWhenRetriesExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(1).Send(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})
	require.Error(t, err)

	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.True(t, ierr.IsHTTPClient(err))
}

func TestAssignmentClient_GetEntity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/assets/asset_1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(dto.NewEntityResponse(&entity.Entity{
			ID:         "asset_1",
			EntityType: types.EntityTypeAsset,
			Name:       "Boiler",
			AssignedCustomers: []entity.CustomerInfo{
				{CustomerID: "c1", Title: "Acme"},
				{CustomerID: "pub", Title: "Public", Public: true},
			},
		}))
	}))
	defer srv.Close()

	c := NewAssignmentClient(newTestClient(0), srv.URL, "", types.EntityTypeAsset)
	got, err := c.GetEntity(context.Background(), "asset_1")
	require.NoError(t, err)

	assert.Equal(t, "Boiler", got.Name)
	assert.Equal(t, []string{"c1", "pub"}, got.AssignedCustomerIDs())
	assert.True(t, got.IsPublic)
	assert.Equal(t, "Acme", got.AssignedCustomersText)
}

func TestAssignmentClient_BulkAssign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/assets/bulk/customers", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get(types.HeaderAPIKey))

		var req dto.BulkAssignmentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if lo.Contains(req.EntityIDs, "asset_missing") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"message":"Asset not found",` +
				`"details":{"failed_entity_ids":["asset_missing"],"succeeded":1,"total":2}}}`))
			return
		}

		_ = json.NewEncoder(w).Encode(dto.BulkAssignmentResponse{
			Success:     true,
			EntityIDs:   req.EntityIDs,
			CustomerIDs: req.CustomerIDs,
		})
	}))
	defer srv.Close()

	c := NewAssignmentClient(newTestClient(0), srv.URL, "secret", types.EntityTypeAsset)
	ctx := context.Background()

	resp, err := c.BulkAssign(ctx, &dto.BulkAssignmentRequest{
		ActionMode:  types.ActionModeAssign,
		EntityIDs:   []string{"asset_1", "asset_2"},
		CustomerIDs: []string{"c1"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"asset_1", "asset_2"}, resp.EntityIDs)
	assert.Equal(t, []string{"c1"}, resp.CustomerIDs)

	_, err = c.BulkAssign(ctx, &dto.BulkAssignmentRequest{
		ActionMode: types.ActionModeUnassign,
		EntityIDs:  []string{"asset_1", "asset_missing"},
	})
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
	assert.Equal(t, "Asset not found", ierr.DisplayMessage(err))
	assert.Equal(t, []any{"asset_missing"}, ierr.ReportableDetails(err)["failed_entity_ids"])

	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, float64(2), httpErr.Details["total"])
}
