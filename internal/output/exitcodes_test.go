package output

import (
	"errors"
	"fmt"
	"testing"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil is success", err: nil, want: ExitSuccess},
		{name: "user error", err: NewUserError("bad flag"), want: ExitUserError},
		{name: "system error", err: NewSystemError("request failed"), want: ExitSystemError},
		{name: "auth error", err: NewAuthError("token rejected"), want: ExitAuthError},
		{name: "untyped defaults to user error", err: errors.New("plain"), want: ExitUserError},
		{name: "wrapped exit error", err: fmt.Errorf("context: %w", NewAuthError("nope")), want: ExitAuthError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   int
	}{
		{name: "401 is auth", status: 401, want: ExitAuthError},
		{name: "403 is auth", status: 403, want: ExitAuthError},
		{name: "404 is user", status: 404, want: ExitUserError},
		{name: "422 is system", status: 422, want: ExitSystemError},
		{name: "500 is system", status: 500, want: ExitSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := &harvest.APIError{StatusCode: tt.status, Message: "nope"}
			wrapped := fmt.Errorf("calling API: %w", apiErr)
			exitErr := FromAPIError(wrapped)
			if exitErr.Code != tt.want {
				t.Errorf("FromAPIError().Code = %d, want %d", exitErr.Code, tt.want)
			}
			if !errors.Is(exitErr, apiErr) {
				t.Error("FromAPIError() should keep the cause chain")
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewSystemErrorWithCause("wrapper", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Error() != "wrapper" {
		t.Errorf("Error() = %q, want %q", err.Error(), "wrapper")
	}
}
