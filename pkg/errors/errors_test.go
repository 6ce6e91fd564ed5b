package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]interface{}{
		"command": "nvidia-smi",
		"node":    "node-1",
	}

	err := WrapWithContext(ErrCodeTimeout, "GPU collection failed", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["backend"] != "simplex" {
		t.Errorf("expected backend to be simplex")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
		ErrCodeUnknownProduct,
		ErrCodeInfeasible,
		ErrCodeUnbounded,
		ErrCodeSolverUnavailable,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"structured", New(ErrCodeInfeasible, "no feasible plan"), ErrCodeInfeasible},
		{"wrapped structured", fmt.Errorf("solve: %w", New(ErrCodeUnbounded, "unbounded")), ErrCodeUnbounded},
		{"plain error defaults to internal", errors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	joined := errors.Join(
		New(ErrCodeUnknownProduct, "unknown product \"Iron Plate\""),
		New(ErrCodeUnknownProduct, "unknown product \"Steel\""),
	)

	if !IsCode(joined, ErrCodeUnknownProduct) {
		t.Error("expected joined error to match UNKNOWN_PRODUCT")
	}
	if IsCode(joined, ErrCodeInfeasible) {
		t.Error("joined error should not match INFEASIBLE")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("nil error should not match any code")
	}
	wrapped := fmt.Errorf("run: %w", Wrap(ErrCodeSolverUnavailable, "no backend", errors.New("missing")))
	if !IsCode(wrapped, ErrCodeSolverUnavailable) {
		t.Error("expected wrapped error to match SOLVER_UNAVAILABLE")
	}
}
