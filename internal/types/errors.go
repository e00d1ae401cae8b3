package types

import "fmt"

// ConstructionError reports a malformed statement tree.
type ConstructionError struct {
	Reason string
}

func (e ConstructionError) Error() string {
	return "invalid statement: " + e.Reason
}

func constructionErrorf(format string, args ...any) error {
	return ConstructionError{Reason: fmt.Sprintf(format, args...)}
}
