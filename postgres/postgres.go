// Package postgres provides the PostgreSQL dialect for sqlgen.
package postgres

import (
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Name is the dialect name used in configuration.
const Name = "postgres"

// dialect is the PostgreSQL lookup table.
var dialect = &render.Dialect{
	Name:        Name,
	QuoteOpen:   `"`,
	QuoteClose:  `"`,
	Placeholder: render.PlaceholderDollar,
	Types: map[types.TypeKind]string{
		types.Boolean:         "BOOLEAN",
		types.Int8:            "SMALLINT",
		types.Int16:           "SMALLINT",
		types.Int32:           "INTEGER",
		types.Int64:           "BIGINT",
		types.UInt8:           "SMALLINT",
		types.UInt16:          "INTEGER",
		types.UInt32:          "BIGINT",
		types.UInt64:          "NUMERIC(20)",
		types.Float32:         "REAL",
		types.Float64:         "DOUBLE PRECISION",
		types.Text:            "TEXT",
		types.VarChar:         "VARCHAR(%d)",
		types.Date:            "DATE",
		types.Timestamp:       "TIMESTAMP",
		types.TimestampWithTZ: "TIMESTAMP WITH TIME ZONE",
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
		types.Log2:   "log(2.0, {x})",
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
	DaysBetween:   "(CAST({to} AS DATE) - CAST({from} AS DATE))",
	Unixepoch:     "CAST(extract(EPOCH FROM {x}) AS BIGINT)",
	Concat:        render.ConcatOperator,
	DateMath:      render.DateInterval,
	Upsert:        render.UpsertOnConflict,
	AutoIncrement: render.AutoIncrementIdentity,
	Pagination:    render.PaginationLimitOffset,
	CreateGuard:   render.CreateGuardInline,
	Write:         render.WriteCopy,
	DefaultSchema: "public",
	LastInsertID:  "SELECT currval(pg_get_serial_sequence({table}, {column}))",
	Capabilities: render.Capabilities{
		Returning:         true,
		Upsert:            true,
		RightJoin:         true,
		FullJoin:          true,
		MaterializedViews: true,
		ReplaceView:       true,
		DropCascade:       true,
		DropIndex:         true,
		IndexIfNotExists:  true,
		PartialIndex:      true,
		IntervalLiterals:  true,
		CreateAsTable:     true,
	},
}

var renderer = render.Register(dialect)

// New returns the PostgreSQL renderer.
func New() *render.Renderer {
	return renderer
}

// Capabilities returns the SQL features PostgreSQL supports.
func Capabilities() render.Capabilities {
	return renderer.Capabilities()
}
