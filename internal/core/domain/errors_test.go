package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
		{"ErrUnauthorized", ErrUnauthorized, "unauthorized"},
		{"ErrTokenExpired", ErrTokenExpired, "token expired"},
		{"ErrTokenInvalid", ErrTokenInvalid, "token invalid"},
		{"ErrInvalidProvider", ErrInvalidProvider, "invalid provider"},
		{"ErrServiceUnavailable", ErrServiceUnavailable, "service unavailable"},
		{"ErrCompletionFailed", ErrCompletionFailed, "completion failed"},
		{"ErrUnknownDomain", ErrUnknownDomain, "unknown domain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, tt.err.Error())
			}
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrTokenExpired,
		ErrTokenInvalid,
		ErrInvalidProvider,
		ErrServiceUnavailable,
		ErrCompletionFailed,
		ErrUnknownDomain,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestErrorsIs_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("anthropic: %w", ErrCompletionFailed)
	if !errors.Is(wrapped, ErrCompletionFailed) {
		t.Error("wrapped error should match ErrCompletionFailed")
	}
	if errors.Is(wrapped, ErrServiceUnavailable) {
		t.Error("wrapped error should not match ErrServiceUnavailable")
	}
}
