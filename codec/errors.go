package codec

import (
	"fmt"
)

// ErrorKind classifies a decode failure.
type ErrorKind int

const (
	// UnexpectedNull is a NULL cell read into a non-optional type.
	UnexpectedNull ErrorKind = iota
	// Unparsable is a text cell that does not parse as the target type.
	Unparsable
	// Mistyped is a native cell of an incompatible Go type.
	Mistyped
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedNull:
		return "unexpected null"
	case Unparsable:
		return "unparsable"
	case Mistyped:
		return "mistyped"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error reports a raw cell that could not be decoded.
type Error struct {
	Kind ErrorKind
	// Type names the Go type being decoded.
	Type string
	Raw  any
	Err  error
}

func (e Error) Error() string {
	msg := fmt.Sprintf("codec: %s value for %s", e.Kind, e.Type)
	if e.Kind != UnexpectedNull {
		msg += fmt.Sprintf(": %#v", e.Raw)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e Error) Unwrap() error {
	return e.Err
}

func nullError(typ string) error {
	return Error{Kind: UnexpectedNull, Type: typ}
}

func parseError(typ string, raw any, err error) error {
	return Error{Kind: Unparsable, Type: typ, Raw: raw, Err: err}
}

func mistyped(typ string, raw any) error {
	return Error{Kind: Mistyped, Type: typ, Raw: raw}
}
