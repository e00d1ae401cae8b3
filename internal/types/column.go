package types

import "fmt"

// TypeKind is the closed set of column types understood by every dialect.
type TypeKind int

const (
	// Unknown is a placeholder used before type inference completes. It must
	// never reach a renderer.
	Unknown TypeKind = iota
	Boolean
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	Text
	VarChar
	Date
	Timestamp
	TimestampWithTZ
	typeKindEnd
)

var typeKindNames = [...]string{
	Unknown:         "Unknown",
	Boolean:         "Boolean",
	Int8:            "Int8",
	Int16:           "Int16",
	Int32:           "Int32",
	Int64:           "Int64",
	UInt8:           "UInt8",
	UInt16:          "UInt16",
	UInt32:          "UInt32",
	UInt64:          "UInt64",
	Float32:         "Float32",
	Float64:         "Float64",
	Text:            "Text",
	VarChar:         "VarChar",
	Date:            "Date",
	Timestamp:       "Timestamp",
	TimestampWithTZ: "TimestampWithTZ",
}

func (k TypeKind) String() string {
	if k < 0 || k >= typeKindEnd {
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
	return typeKindNames[k]
}

// IsInteger reports whether k is one of the signed or unsigned integer kinds.
func (k TypeKind) IsInteger() bool {
	return k >= Int8 && k <= UInt64
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k TypeKind) IsUnsigned() bool {
	return k >= UInt8 && k <= UInt64
}

// TypeKinds returns every concrete kind, in declaration order, excluding
// Unknown.
func TypeKinds() []TypeKind {
	kinds := make([]TypeKind, 0, int(typeKindEnd)-1)
	for k := Boolean; k < typeKindEnd; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Type is a column type. Length is only meaningful for VarChar.
type Type struct {
	Kind   TypeKind
	Length int
}

func (t Type) String() string {
	if t.Kind == VarChar {
		return fmt.Sprintf("VarChar(%d)", t.Length)
	}
	return t.Kind.String()
}

// Properties are the column constraints carried alongside a type.
type Properties struct {
	Primary  bool
	Nullable bool
	Unique   bool
	AutoIncr bool
	Length   int
}

// Column is both a schema column definition and a column reference inside
// an expression. Table qualifies the reference with a table alias.
type Column struct {
	Name       string
	Table      string
	Type       Type
	Properties Properties
}

// Qualified returns a copy of c referenced through the given table alias.
func (c Column) Qualified(alias string) Column {
	c.Table = alias
	return c
}
