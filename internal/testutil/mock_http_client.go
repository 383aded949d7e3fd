package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/flexprice/assignments/internal/httpclient"
)

var _ httpclient.Client = (*MockHTTPClient)(nil)

// MockHTTPClient implements a mock HTTP client for testing. Routes are keyed by
// method and URL suffix, ex "POST /v1/assets/asset_1/customers".
type MockHTTPClient struct {
	mu       sync.RWMutex
	routes   map[string]MockResponse
	requests []*httpclient.Request
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for a method and URL suffix
func (m *MockHTTPClient) RegisterResponse(method, urlSuffix string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[method+" "+urlSuffix] = resp
}

// RegisterJSONResponse is a helper to register a 200 response with a json body
func (m *MockHTTPClient) RegisterJSONResponse(method, urlSuffix string, body string) {
	m.RegisterResponse(method, urlSuffix, MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
}

// Send implements the httpclient.Client interface. Unregistered routes answer
// 204 so that tests only describe the calls they care about.
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched *MockResponse
	for route, resp := range m.routes {
		method, suffix, _ := strings.Cut(route, " ")
		if method == req.Method && strings.HasSuffix(req.URL, suffix) {
			matched = &resp
			break
		}
	}

	if matched == nil {
		return &httpclient.Response{
			StatusCode: http.StatusNoContent,
			Headers:    map[string]string{},
		}, nil
	}

	if matched.StatusCode >= http.StatusBadRequest {
		return nil, httpclient.NewError(matched.StatusCode, matched.Body)
	}

	return &httpclient.Response{
		StatusCode: matched.StatusCode,
		Body:       matched.Body,
		Headers:    matched.Headers,
	}, nil
}

// Requests returns the requests sent so far, in order
func (m *MockHTTPClient) Requests() []*httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*httpclient.Request{}, m.requests...)
}

// Clear removes all registered responses and recorded requests
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]MockResponse)
	m.requests = nil
}
