package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Validation or query failure
	ExitCommandError = 2 // Command error (bad flags, missing dataset dir, ...)
)

// ExitError pairs a command error with the process exit code it should
// produce. Commands return it from RunE; main translates it through
// GetExitCode.
type ExitError struct {
	Code int
	Msg  string
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError builds an ExitError. err may be nil when the message
// stands on its own.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Msg: message, Err: err}
}

// GetExitCode returns the code carried by err, or ExitFailure when the
// error carries no explicit code.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostic output, kept off stdout so JSON stays parseable
	Verbose   bool
}

// Response is the standard JSON envelope for CLI output.
type Response struct {
	Status string   `json:"status"` // "ok" or "error"
	Data   any      `json:"data,omitempty"`
	Error  *RespErr `json:"error,omitempty"`
}

// RespErr is the error structure inside a Response.
type RespErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// SuccessJSON emits data inside the JSON envelope; text format callers
// render their own layout and should not use this.
func (f *OutputFormatter) SuccessJSON(data any) error {
	return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "error",
			Error:  &RespErr{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog emits a diagnostic line when verbose mode is enabled.
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
