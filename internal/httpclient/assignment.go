package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/flexprice/assignments/internal/api/dto"
	"github.com/flexprice/assignments/internal/domain/assignment"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
)

// AssignmentClient calls the per entity customer endpoints of one entity
// type. It implements assignment.CustomerOperations so a workflow can fan
// out over HTTP, one request per entity.
type AssignmentClient struct {
	client     Client
	baseURL    string
	apiKey     string
	entityType types.EntityType
}

var _ assignment.CustomerOperations = (*AssignmentClient)(nil)

func NewAssignmentClient(client Client, baseURL, apiKey string, entityType types.EntityType) *AssignmentClient {
	return &AssignmentClient{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		entityType: entityType,
	}
}

func (c *AssignmentClient) EntityType() types.EntityType {
	return c.entityType
}

// AddCustomers calls POST /v1/{kind}/{id}/customers
func (c *AssignmentClient) AddCustomers(ctx context.Context, entityID string, customerIDs []string) error {
	return c.sendCustomers(ctx, http.MethodPost, entityID, "customers", customerIDs)
}

// ReplaceCustomers calls PUT /v1/{kind}/{id}/customers
func (c *AssignmentClient) ReplaceCustomers(ctx context.Context, entityID string, customerIDs []string) error {
	return c.sendCustomers(ctx, http.MethodPut, entityID, "customers", customerIDs)
}

// RemoveCustomers calls POST /v1/{kind}/{id}/customers/remove
func (c *AssignmentClient) RemoveCustomers(ctx context.Context, entityID string, customerIDs []string) error {
	return c.sendCustomers(ctx, http.MethodPost, entityID, "customers/remove", customerIDs)
}

// GetEntity fetches a single entity with its assigned customers
func (c *AssignmentClient) GetEntity(ctx context.Context, entityID string) (*dto.EntityResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, c.entityURL(entityID, ""), nil)
	if err != nil {
		return nil, err
	}

	var entity dto.EntityResponse
	if err := json.Unmarshal(resp.Body, &entity); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected entity response").
			Mark(ierr.ErrHTTPClient)
	}
	return &entity, nil
}

// BulkAssign runs the workflow server side with a single request
func (c *AssignmentClient) BulkAssign(ctx context.Context, req *dto.BulkAssignmentRequest) (*dto.BulkAssignmentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode the request").
			Mark(ierr.ErrValidation)
	}

	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/v1/%s/bulk/customers", c.baseURL, c.entityType.Plural()), body)
	if err != nil {
		return nil, err
	}

	var out dto.BulkAssignmentResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected bulk assignment response").
			Mark(ierr.ErrHTTPClient)
	}
	return &out, nil
}

func (c *AssignmentClient) sendCustomers(ctx context.Context, method, entityID, path string, customerIDs []string) error {
	if customerIDs == nil {
		customerIDs = []string{}
	}

	body, err := json.Marshal(dto.UpdateEntityCustomersRequest{CustomerIDs: customerIDs})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode the request").
			Mark(ierr.ErrValidation)
	}

	_, err = c.do(ctx, method, c.entityURL(entityID, path), body)
	return err
}

func (c *AssignmentClient) entityURL(entityID, path string) string {
	u := fmt.Sprintf("%s/v1/%s/%s", c.baseURL, c.entityType.Plural(), url.PathEscape(entityID))
	if path != "" {
		u += "/" + path
	}
	return u
}

func (c *AssignmentClient) do(ctx context.Context, method, u string, body []byte) (*Response, error) {
	headers := map[string]string{
		"Accept": "application/json",
	}
	if c.apiKey != "" {
		headers[types.HeaderAPIKey] = c.apiKey
	}
	if requestID := types.GetRequestID(ctx); requestID != "" {
		headers[types.HeaderRequestID] = requestID
	}

	return c.client.Send(ctx, &Request{
		Method:  method,
		URL:     u,
		Headers: headers,
		Body:    body,
	})
}
