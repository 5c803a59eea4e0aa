package model

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "without wrapped error",
			err: &APIError{
				Code:    "MISSING_CART",
				Message: "no active cart",
			},
			want: "MISSING_CART: no active cart",
		},
		{
			name: "with wrapped error",
			err: &APIError{
				Code:    "UPSTREAM_ERROR",
				Message: "Magento request failed",
				Err:     errors.New("dial tcp: connection refused"),
			},
			want: "UPSTREAM_ERROR: Magento request failed (dial tcp: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError_ErrorsAs(t *testing.T) {
	var wrapped error = NewMissingCartError()
	wrapped = errors.Join(errors.New("context"), wrapped)

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As should find APIError")
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if !errors.Is(wrapped, ErrMissingCart) {
		t.Error("errors.Is should match ErrMissingCart")
	}
}

func TestErrorConstructors(t *testing.T) {
	cause := errors.New("Could not find a cart with ID \"abc\"")

	tests := []struct {
		name     string
		err      *APIError
		code     string
		status   int
		sentinel error
	}{
		{"not found", NewNotFoundError("product"), "NOT_FOUND", 404, ErrNotFound},
		{"validation", NewValidationError("quantity", "must be positive"), "VALIDATION_ERROR", 400, ErrInvalidRequest},
		{"reason", NewReasonError("invalid-quantity", nil), "REJECTED", 400, ErrInvalidRequest},
		{"missing cart", NewMissingCartError(), "MISSING_CART", 404, ErrMissingCart},
		{"unauthorized", NewUnauthorizedError("token expired"), "UNAUTHORIZED", 401, ErrUnauthorized},
		{"upstream", NewUpstreamError("Magento", cause), "UPSTREAM_ERROR", 502, ErrUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", tt.err.StatusCode, tt.status)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v) = false", tt.sentinel)
			}
		})
	}
}

func TestNewUpstreamError_HidesBackendMessage(t *testing.T) {
	err := NewUpstreamError("Magento", errors.New("SQLSTATE[HY000]: secret detail"))
	if strings.Contains(err.Message, "SQLSTATE") {
		t.Errorf("Message leaks backend detail: %q", err.Message)
	}
	if !strings.Contains(err.Error(), "SQLSTATE") {
		t.Error("Error() should retain the cause for logging")
	}
}

func TestNewInternalError(t *testing.T) {
	cause := errors.New("nil pointer")
	err := NewInternalError(cause)
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", err.StatusCode)
	}
	if !errors.Is(err, cause) {
		t.Error("should unwrap to cause")
	}
}
