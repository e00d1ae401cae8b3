package render

import (
	"errors"
	"fmt"
)

// UnsupportedFeatureError indicates a feature not supported by the dialect.
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Feature)
}

// NewUnsupportedFeatureError creates a new unsupported feature error.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// ErrUnhandledVariant marks a node the renderer or a dialect table has no
// case for. It indicates a programming error and is caught at startup by
// CheckExhaustive.
var ErrUnhandledVariant = errors.New("unhandled variant")

func unhandled(dialect, what string) error {
	return fmt.Errorf("%s: %w: %s", dialect, ErrUnhandledVariant, what)
}
