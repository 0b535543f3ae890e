package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool       `json:"ok"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty"`
	Warnings []Warning  `json:"warnings,omitempty"`
	Meta     *Meta      `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count       int   `json:"count,omitempty"`
	Total       int   `json:"total,omitempty"`
	QueryTimeMs int64 `json:"query_time_ms,omitempty"`
}

// outputJSON outputs the response as JSON to stdout.
func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess outputs a successful JSON response.
func outputSuccess(data any, meta *Meta) {
	outputJSON(Response{
		OK:   true,
		Data: data,
		Meta: meta,
	})
}

// outputSuccessWithWarnings outputs a successful JSON response with warnings.
func outputSuccessWithWarnings(data any, warnings []Warning, meta *Meta) {
	outputJSON(Response{
		OK:       true,
		Data:     data,
		Warnings: warnings,
		Meta:     meta,
	})
}

// outputError outputs an error JSON response.
func outputError(code, message string, details any, suggestion string) {
	outputJSON(Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    message,
			Details:    details,
			Suggestion: suggestion,
		},
	})
}

// isJSONOutput returns true if JSON output is enabled.
func isJSONOutput() bool {
	return jsonOutput
}

// errReported is returned after a JSON error envelope has been written, so
// the process still exits non-zero without Cobra printing the error again.
var errReported = silentError{}

type silentError struct{}

func (silentError) Error() string { return "" }

// handleError handles an error appropriately based on output mode.
// In JSON mode, outputs a JSON error. In text mode, returns the error for Cobra.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), nil, suggestion)
		return errReported
	}
	if suggestion != "" {
		return fmt.Errorf("%w\n\n%s", err, suggestion)
	}
	return err
}

// handleErrorMsg handles an error message appropriately based on output mode.
func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, fmt.Errorf("%s", message), suggestion)
}

// handleErrorWithDetails handles an error with structured details.
func handleErrorWithDetails(code, message, suggestion string, details any) error {
	if jsonOutput {
		outputError(code, message, details, suggestion)
		return errReported
	}
	return handleErrorMsg(code, message, suggestion)
}
