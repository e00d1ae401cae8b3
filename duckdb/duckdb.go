// Package duckdb provides the DuckDB dialect for sqlgen.
package duckdb

import (
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Name is the dialect name used in configuration.
const Name = "duckdb"

// dialect is the DuckDB lookup table. Auto-incrementing keys are backed by
// a sequence named seq_<table>_<column>.
var dialect = &render.Dialect{
	Name:        Name,
	QuoteOpen:   `"`,
	QuoteClose:  `"`,
	Placeholder: render.PlaceholderQuestion,
	Types: map[types.TypeKind]string{
		types.Boolean:         "BOOLEAN",
		types.Int8:            "TINYINT",
		types.Int16:           "SMALLINT",
		types.Int32:           "INTEGER",
		types.Int64:           "BIGINT",
		types.UInt8:           "UTINYINT",
		types.UInt16:          "USMALLINT",
		types.UInt32:          "UINTEGER",
		types.UInt64:          "UBIGINT",
		types.Float32:         "FLOAT",
		types.Float64:         "DOUBLE",
		types.Text:            "VARCHAR",
		types.VarChar:         "VARCHAR(%d)",
		types.Date:            "DATE",
		types.Timestamp:       "TIMESTAMP",
		types.TimestampWithTZ: "TIMESTAMPTZ",
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
		types.Year:    "extract(YEAR FROM {x})",
		types.Month:   "extract(MONTH FROM {x})",
		types.Day:     "extract(DAY FROM {x})",
		types.Hour:    "extract(HOUR FROM {x})",
		types.Minute:  "extract(MINUTE FROM {x})",
		types.Second:  "extract(SECOND FROM {x})",
		types.Weekday: "extract(DOW FROM {x})",
	},
	DaysBetween:   "date_diff('day', CAST({from} AS DATE), CAST({to} AS DATE))",
	Unixepoch:     "CAST(epoch({x}) AS BIGINT)",
	Concat:        render.ConcatOperator,
	DateMath:      render.DateInterval,
	Upsert:        render.UpsertOnConflict,
	AutoIncrement: render.AutoIncrementSequence,
	Pagination:    render.PaginationLimitOffset,
	CreateGuard:   render.CreateGuardInline,
	Write:         render.WriteInsert,
	LastInsertID:  "SELECT currval({sequence})",
	Capabilities: render.Capabilities{
		Returning:        true,
		Upsert:           true,
		RightJoin:        true,
		FullJoin:         true,
		ReplaceView:      true,
		ReplaceTable:     true,
		ViewIfNotExists:  true,
		DropCascade:      true,
		DropIndex:        true,
		IndexIfNotExists: true,
		IntervalLiterals: true,
		CreateAsTable:    true,
	},
}

var renderer = render.Register(dialect)

// New returns the DuckDB renderer.
func New() *render.Renderer {
	return renderer
}

// Capabilities returns the SQL features DuckDB supports.
func Capabilities() render.Capabilities {
	return renderer.Capabilities()
}
