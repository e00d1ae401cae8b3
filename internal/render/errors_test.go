package render

import (
	"errors"
	"testing"
)

func TestUnsupportedFeatureError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      UnsupportedFeatureError
		expected string
	}{
		{
			name: "without hint",
			err: UnsupportedFeatureError{
				Feature: "FULL JOIN",
				Dialect: "mysql",
			},
			expected: "mysql: FULL JOIN is not supported",
		},
		{
			name: "with hint",
			err: UnsupportedFeatureError{
				Feature: "RETURNING",
				Dialect: "mssql",
				Hint:    "use Renderer.LastInsertID after a single-row insert",
			},
			expected: "mssql: RETURNING is not supported: use Renderer.LastInsertID after a single-row insert",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewUnsupportedFeatureError(t *testing.T) {
	t.Run("without hint", func(t *testing.T) {
		err := NewUnsupportedFeatureError("mysql", "FULL JOIN")
		var ufErr UnsupportedFeatureError
		if !errors.As(err, &ufErr) {
			t.Fatal("expected UnsupportedFeatureError")
		}
		if ufErr.Dialect != "mysql" {
			t.Errorf("Dialect = %q, want %q", ufErr.Dialect, "mysql")
		}
		if ufErr.Hint != "" {
			t.Errorf("Hint = %q, want empty", ufErr.Hint)
		}
	})

	t.Run("with hint", func(t *testing.T) {
		err := NewUnsupportedFeatureError("sqlite", "MATERIALIZED VIEW", "use a table")
		var ufErr UnsupportedFeatureError
		if !errors.As(err, &ufErr) {
			t.Fatal("expected UnsupportedFeatureError")
		}
		if ufErr.Hint != "use a table" {
			t.Errorf("Hint = %q, want %q", ufErr.Hint, "use a table")
		}
	})
}

func TestUnhandledWrapsSentinel(t *testing.T) {
	err := unhandled("probe", "function ln")
	if !errors.Is(err, ErrUnhandledVariant) {
		t.Errorf("errors.Is(%v, ErrUnhandledVariant) = false", err)
	}
}
