// Package sqlgen builds typed SQL statement trees and renders them for
// several database dialects.
//
// Statements are plain values assembled from builder functions, validated
// once, and rendered by a dialect renderer:
//
//	import "github.com/zoobzio/sqlgen/postgres"
//
//	person := sqlgen.T("Person", "t1")
//	stmt := sqlgen.Select(sqlgen.C(person, "first_name")).
//		From(person).
//		Where(sqlgen.GreaterEqual(sqlgen.C(person, "age"), sqlgen.Int(18))).
//		OrderBy(sqlgen.C(person, "id")).
//		Limit(10)
//
//	sql, err := stmt.Render(postgres.New())
//	// SELECT t1."first_name" FROM "Person" t1 WHERE t1."age" >= 18 ORDER BY t1."id" LIMIT 10;
//
// # Dialects
//
// Available dialects: duckdb, postgres, sqlite, mysql, mssql. A feature a
// dialect cannot express fails with UnsupportedFeatureError; Capabilities
// reports the optional features ahead of time.
//
// # Execution
//
// Package db runs rendered statements against a backend connection with
// batched reads, a bulk write protocol, transactions and a fixed-size pool.
// Package schema binds Go structs to tables through package codec.
package sqlgen

import (
	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Statement is the root of one SQL operation.
type Statement = types.Statement

// Query is a statement producing rows: SelectFrom or Union.
type Query = types.Query

// Source is a FROM or JOIN source: Table or Subquery.
type Source = types.Source

// Operation is a value-producing expression.
type Operation = types.Operation

// Condition is a boolean predicate.
type Condition = types.Condition

// Value is a literal constant.
type Value = types.Value

// Table identifies a relation.
type Table = types.Table

// Subquery wraps a query used as a source.
type Subquery = types.Subquery

// Column is a column definition or reference.
type Column = types.Column

// Type is a column type.
type Type = types.Type

// TypeKind enumerates column types.
type TypeKind = types.TypeKind

// Properties are column constraints.
type Properties = types.Properties

// Field is one SELECT output.
type Field = types.Field

// Statement variants.
type (
	SelectFrom  = types.SelectFrom
	Union       = types.Union
	Insert      = types.Insert
	Write       = types.Write
	Update      = types.Update
	CreateTable = types.CreateTable
	CreateIndex = types.CreateIndex
	CreateAs    = types.CreateAs
	Drop        = types.Drop
)

// ConflictPolicy selects INSERT behavior on a key violation.
type ConflictPolicy = types.ConflictPolicy

// ObjectKind names the object created by CreateAs or removed by Drop.
type ObjectKind = types.ObjectKind

// DatePart selects the component read by Extract.
type DatePart = types.DatePart

// DurationUnit is the unit of a Duration literal.
type DurationUnit = types.DurationUnit

// Renderer renders statements for one dialect.
type Renderer = render.Renderer

// Capabilities lists the optional SQL features of a dialect.
type Capabilities = render.Capabilities

// Column types.
const (
	Unknown         = types.Unknown
	Boolean         = types.Boolean
	Int8            = types.Int8
	Int16           = types.Int16
	Int32           = types.Int32
	Int64           = types.Int64
	UInt8           = types.UInt8
	UInt16          = types.UInt16
	UInt32          = types.UInt32
	UInt64          = types.UInt64
	Float32         = types.Float32
	Float64         = types.Float64
	Text            = types.Text
	VarChar         = types.VarChar
	Date            = types.Date
	Timestamp       = types.Timestamp
	TimestampWithTZ = types.TimestampWithTZ
)

// Conflict policies.
const (
	ConflictNone    = types.ConflictNone
	ConflictIgnore  = types.ConflictIgnore
	ConflictReplace = types.ConflictReplace
)

// Object kinds.
const (
	ObjectTable            = types.ObjectTable
	ObjectView             = types.ObjectView
	ObjectMaterializedView = types.ObjectMaterializedView
	ObjectIndex            = types.ObjectIndex
)

// Date parts.
const (
	Year    = types.Year
	Month   = types.Month
	Day     = types.Day
	Hour    = types.Hour
	Minute  = types.Minute
	Second  = types.Second
	Weekday = types.Weekday
)

// Duration units.
const (
	Milliseconds = types.Milliseconds
	Seconds      = types.Seconds
	Minutes      = types.Minutes
	Hours        = types.Hours
	Days         = types.Days
	Weeks        = types.Weeks
	Months       = types.Months
	Years        = types.Years
)

// Error taxonomy.
type (
	// ConstructionError reports a malformed statement.
	ConstructionError = types.ConstructionError
	// UnsupportedFeatureError reports a feature the dialect cannot express.
	UnsupportedFeatureError = render.UnsupportedFeatureError
	// CodecError reports a value that could not be decoded.
	CodecError = codec.Error
	// BackendError carries a native driver error verbatim.
	BackendError = db.BackendError
	// ProtocolError reports write or transaction state misuse.
	ProtocolError = db.ProtocolError
)

var (
	// ErrPoolExhausted is returned when every pool slot is claimed.
	ErrPoolExhausted = db.ErrPoolExhausted
	// ErrUnhandledVariant marks a renderer missing a case for a variant.
	ErrUnhandledVariant = render.ErrUnhandledVariant
)

// Validate checks stmt against the statement invariants. Rendering runs
// it implicitly.
func Validate(stmt Statement) (Statement, error) {
	return types.Validate(stmt)
}

// Dialects lists the dialects registered by imported dialect packages.
func Dialects() []string {
	return render.Dialects()
}

// Lookup returns the renderer of a registered dialect.
func Lookup(name string) (*Renderer, bool) {
	return render.Lookup(name)
}
