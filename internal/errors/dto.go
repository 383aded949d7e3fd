package errors

// ErrorResponse is the body written for every failed request
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	// Code is the machine readable class of the error, e.g. not_found
	Code          string         `json:"code,omitempty"`
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// NewErrorResponse renders err for the wire. The internal message is left
// out, only hints and reportable details reach the caller.
func NewErrorResponse(err error) ErrorResponse {
	details := ReportableDetails(err)
	if len(details) == 0 {
		details = nil
	}

	return ErrorResponse{
		Error: ErrorDetail{
			Code:    Code(err),
			Display: DisplayMessage(err),
			Details: details,
		},
	}
}
