// Package sqlite provides the SQLite dialect for sqlgen.
package sqlite

import (
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Name is the dialect name used in configuration.
const Name = "sqlite"

// dialect is the SQLite lookup table. SQLite stores dates as ISO-8601 text.
var dialect = &render.Dialect{
	Name:        Name,
	QuoteOpen:   `"`,
	QuoteClose:  `"`,
	Placeholder: render.PlaceholderQuestion,
	Types: map[types.TypeKind]string{
		types.Boolean:         "INTEGER",
		types.Int8:            "INTEGER",
		types.Int16:           "INTEGER",
		types.Int32:           "INTEGER",
		types.Int64:           "INTEGER",
		types.UInt8:           "INTEGER",
		types.UInt16:          "INTEGER",
		types.UInt32:          "INTEGER",
		types.UInt64:          "INTEGER",
		types.Float32:         "REAL",
		types.Float64:         "REAL",
		types.Text:            "TEXT",
		types.VarChar:         "TEXT",
		types.Date:            "TEXT",
		types.Timestamp:       "TEXT",
		types.TimestampWithTZ: "TEXT",
	},
	True:  "TRUE",
	False: "FALSE",
	Unary: map[types.UnaryFunc]string{
		types.Abs:    "abs({x})",
		types.Ceil:   "ceil({x})",
		types.Floor:  "floor({x})",
		types.Sqrt:   "sqrt({x})",
		types.Exp:    "exp({x})",
		types.Ln:     "ln({x})",
		types.Log2:   "log2({x})",
		types.Lower:  "lower({x})",
		types.Upper:  "upper({x})",
		types.Length: "length({x})",
		types.LTrim:  "ltrim({x})",
		types.RTrim:  "rtrim({x})",
		types.Trim:   "trim({x})",
	},
	Extract: map[types.DatePart]string{
		types.Year:    "cast(strftime('%Y', {x}) as INTEGER)",
		types.Month:   "cast(strftime('%m', {x}) as INTEGER)",
		types.Day:     "cast(strftime('%d', {x}) as INTEGER)",
		types.Hour:    "cast(strftime('%H', {x}) as INTEGER)",
		types.Minute:  "cast(strftime('%M', {x}) as INTEGER)",
		types.Second:  "cast(strftime('%S', {x}) as INTEGER)",
		types.Weekday: "cast(strftime('%w', {x}) as INTEGER)",
	},
	DaysBetween:        "CAST(julianday(date({to})) - julianday(date({from})) AS INTEGER)",
	Unixepoch:          "unixepoch({x})",
	Concat:             render.ConcatOperator,
	DateMath:           render.DateModifier,
	Upsert:             render.UpsertOnConflict,
	AutoIncrement:      render.AutoIncrementRowid,
	Pagination:         render.PaginationLimitOffset,
	OffsetWithoutLimit: "-1",
	CreateGuard:        render.CreateGuardInline,
	Write:              render.WriteInsert,
	LastInsertID:       "SELECT last_insert_rowid()",
	Capabilities: render.Capabilities{
		Returning:        true,
		Upsert:           true,
		RightJoin:        true,
		FullJoin:         true,
		ViewIfNotExists:  true,
		DropIndex:        true,
		IndexIfNotExists: true,
		PartialIndex:     true,
		CreateAsTable:    true,
	},
}

var renderer = render.Register(dialect)

// New returns the SQLite renderer.
func New() *render.Renderer {
	return renderer
}

// Capabilities returns the SQL features SQLite supports.
func Capabilities() render.Capabilities {
	return renderer.Capabilities()
}
