package output

import (
	"errors"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// Exit codes:
// 0 = Success
// 1 = User error (bad args, missing fields, not found)
// 2 = System error (API failure, I/O error)
// 3 = Auth error (missing or rejected credentials)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitAuthError   = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, missing required fields, unknown IDs.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: API call failures, I/O errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewAuthError creates an error for credential problems (exit code 3).
// Use for: missing credentials, 401/403 API responses.
func NewAuthError(message string) *ExitError {
	return &ExitError{
		Code:    ExitAuthError,
		Message: message,
	}
}

// FromAPIError classifies an API call failure. 401 and 403 become
// auth errors, 404 a user error, everything else a system error. The
// original error is kept as the cause.
func FromAPIError(err error) *ExitError {
	code := ExitSystemError
	switch {
	case harvest.IsAuth(err):
		code = ExitAuthError
	case harvest.IsNotFound(err):
		code = ExitUserError
	}
	return &ExitError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
