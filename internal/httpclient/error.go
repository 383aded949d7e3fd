package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	ierr "github.com/flexprice/assignments/internal/errors"
)

// Error is a non-2xx response. It is marked with the sentinel matching the
// status so callers can keep using ierr.IsNotFound and friends.
type Error struct {
	StatusCode int
	Response   []byte
	// Code and Message come from a standard error body, if any
	Code       string
	Message    string
	// Details are the reportable details of a standard error body, if any
	Details    map[string]any
	err        error
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Error() string {
	return e.err.Error()
}

// NewError creates a new HTTP client error
func NewError(statusCode int, response []byte) *Error {
	body := parseErrorBody(response)
	hint := body.Display
	if hint == "" {
		hint = fmt.Sprintf("Request failed with status %d", statusCode)
	}

	builder := ierr.NewErrorf("http %d: %s", statusCode, strings.TrimSpace(string(response))).
		WithHint(hint)
	if len(body.Details) > 0 {
		builder = builder.WithReportableDetails(body.Details)
	}

	return &Error{
		StatusCode: statusCode,
		Response:   response,
		Code:       body.Code,
		Message:    body.Display,
		Details:    body.Details,
		err:        builder.Mark(sentinelForStatus(statusCode)),
	}
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if ierr.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

func sentinelForStatus(statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ierr.ErrValidation
	case http.StatusNotFound:
		return ierr.ErrNotFound
	case http.StatusConflict:
		return ierr.ErrAlreadyExists
	case http.StatusUnauthorized, http.StatusForbidden:
		return ierr.ErrPermissionDenied
	}
	return ierr.ErrHTTPClient
}

func parseErrorBody(body []byte) ierr.ErrorDetail {
	var resp ierr.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ierr.ErrorDetail{}
	}
	return resp.Error
}
