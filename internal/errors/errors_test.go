package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("preserves sentinel matching", func(t *testing.T) {
		t.Parallel()
		wrapped := WrapError(ErrDimensionMismatch, "pair %d", 3)
		if !errors.Is(wrapped, ErrDimensionMismatch) {
			t.Error("wrapped error should match its sentinel")
		}
		if got := wrapped.Error(); got != "pair 3: matrix dimensions disagree" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("nil passthrough", func(t *testing.T) {
		t.Parallel()
		if WrapError(nil, "context") != nil {
			t.Error("wrapping nil should return nil")
		}
	})

	t.Run("double wrapping", func(t *testing.T) {
		t.Parallel()
		inner := WrapError(ErrInvalidSize, "inner")
		outer := WrapError(inner, "outer")
		if !errors.Is(outer, ErrInvalidSize) {
			t.Error("sentinel should survive double wrapping")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("bad value %d", 42)
	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatal("NewConfigError should produce a ConfigError")
	}
	if cfgErr.Message != "bad value 42" {
		t.Errorf("Message = %q", cfgErr.Message)
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()

	t.Run("with cause", func(t *testing.T) {
		t.Parallel()
		cause := fmt.Errorf("listen failed")
		err := NewServerError("startup", cause)
		if !errors.Is(err, cause) {
			t.Error("ServerError should unwrap to its cause")
		}
		if got := err.Error(); got != "startup: listen failed" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("without cause", func(t *testing.T) {
		t.Parallel()
		err := NewServerError("shutdown", nil)
		if got := err.Error(); got != "shutdown" {
			t.Errorf("Error() = %q", got)
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()

	if !IsContextError(context.Canceled) {
		t.Error("context.Canceled should be a context error")
	}
	if !IsContextError(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)) {
		t.Error("wrapped DeadlineExceeded should be a context error")
	}
	if IsContextError(ErrInvalidSize) {
		t.Error("ErrInvalidSize is not a context error")
	}
	if IsContextError(nil) {
		t.Error("nil is not a context error")
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()

	// The codes are part of the CLI contract; pin them.
	codes := map[string]struct{ got, want int }{
		"success":  {ExitSuccess, 0},
		"generic":  {ExitErrorGeneric, 1},
		"timeout":  {ExitErrorTimeout, 2},
		"mismatch": {ExitErrorMismatch, 3},
		"config":   {ExitErrorConfig, 4},
		"canceled": {ExitErrorCanceled, 130},
	}
	for name, c := range codes {
		if c.got != c.want {
			t.Errorf("%s exit code = %d, want %d", name, c.got, c.want)
		}
	}
}
