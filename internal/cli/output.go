package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	ierr "github.com/flexprice/assignments/internal/errors"
)

// Exit codes for assignctl
const (
	ExitSuccess      = 0 // every entity was updated
	ExitFailure      = 1 // the server rejected at least one entity task
	ExitCommandError = 2 // bad flags or configuration
)

// ExitError carries the process exit code of a failed command. An ExitError
// that wraps a cause has already been written by the OutputFormatter.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns ExitCommandError for errors that are not an ExitError,
// those come from cobra flag and argument parsing
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// Reported reports whether err was already written to the output
func Reported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Err != nil
}

// OutputFormatter writes command results as text or json
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose output, defaults to Writer
	Verbose   bool
}

// CLIResponse is the json envelope of every command
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error renders err with its code, hint and reportable details
func (f *OutputFormatter) Error(err error) error {
	cliErr := &CLIError{
		Code:    ierr.Code(err),
		Message: ierr.DisplayMessage(err),
		Details: ierr.ReportableDetails(err),
	}
	if len(cliErr.Details) == 0 {
		cliErr.Details = nil
	}

	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  cliErr,
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", cliErr.Code, cliErr.Message)
	if f.Verbose {
		for k, v := range cliErr.Details {
			fmt.Fprintf(f.Writer, "  %s: %v\n", k, v)
		}
		fmt.Fprintf(f.Writer, "Cause: %v\n", err)
	}
	return nil
}

// VerboseLog writes to ErrWriter so json output stays parseable
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
