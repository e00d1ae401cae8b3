// Package codec converts between Go values and the raw cells exchanged with
// database backends.
//
// Every codec knows the column type and properties it maps to, so the same
// descriptor drives both CREATE TABLE rendering and row marshalling. Text
// protocol backends exchange strings; the columnar backend exchanges native
// Go values. A nil raw cell is SQL NULL.
package codec

import (
	"database/sql/driver"

	"github.com/zoobzio/sqlgen/internal/types"
)

// Target selects the raw representation a backend exchanges.
type Target int

const (
	// Text backends bind and read cells as strings.
	Text Target = iota
	// Native backends bind and read typed Go values.
	Native
)

func (t Target) String() string {
	if t == Native {
		return "native"
	}
	return "text"
}

// Codec maps a Go type to a column.
type Codec[T any] interface {
	// Type is the column type.
	Type() types.Type
	// Properties are the column constraints implied by the codec.
	Properties() types.Properties
	// Encode converts v to a raw cell for target.
	Encode(target Target, v T) any
	// Decode converts a raw cell to T. raw may be a string, a byte slice, a
	// native driver value or nil.
	Decode(target Target, raw any) (T, error)
}

// Row is one ordered list of raw cells.
type Row []any

// normalize unwraps driver values and byte slices so decoders only see
// strings, native scalars and nil.
func normalize(raw any) (any, error) {
	if v, ok := raw.(driver.Valuer); ok {
		val, err := v.Value()
		if err != nil {
			return nil, err
		}
		raw = val
	}
	if b, ok := raw.([]byte); ok {
		return string(b), nil
	}
	return raw, nil
}
