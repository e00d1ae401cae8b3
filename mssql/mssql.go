// Package mssql provides the SQL Server dialect for sqlgen.
package mssql

import (
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Name is the dialect name used in configuration.
const Name = "mssql"

// dialect is the SQL Server lookup table. Booleans are BIT columns and need
// an explicit comparison when used as a predicate.
var dialect = &render.Dialect{
	Name:        Name,
	QuoteOpen:   "[",
	QuoteClose:  "]",
	Placeholder: render.PlaceholderAtP,
	Types: map[types.TypeKind]string{
		types.Boolean:         "BIT",
		types.Int8:            "SMALLINT",
		types.Int16:           "SMALLINT",
		types.Int32:           "INT",
		types.Int64:           "BIGINT",
		types.UInt8:           "TINYINT",
		types.UInt16:          "INT",
		types.UInt32:          "BIGINT",
		types.UInt64:          "DECIMAL(20,0)",
		types.Float32:         "REAL",
		types.Float64:         "FLOAT",
		types.Text:            "NVARCHAR(MAX)",
		types.VarChar:         "NVARCHAR(%d)",
		types.Date:            "DATE",
		types.Timestamp:       "DATETIME2",
		types.TimestampWithTZ: "DATETIMEOFFSET",
	},
	True:          "1",
	False:         "0",
	BoolPredicate: " = 1",
	Unary: map[types.UnaryFunc]string{
		types.Abs:    "ABS({x})",
		types.Ceil:   "CEILING({x})",
		types.Floor:  "FLOOR({x})",
		types.Sqrt:   "SQRT({x})",
		types.Exp:    "EXP({x})",
		types.Ln:     "LOG({x})",
		types.Log2:   "LOG({x}, 2)",
		types.Lower:  "LOWER({x})",
		types.Upper:  "UPPER({x})",
		types.Length: "LEN({x})",
		types.LTrim:  "LTRIM({x})",
		types.RTrim:  "RTRIM({x})",
		types.Trim:   "TRIM({x})",
	},
	Extract: map[types.DatePart]string{
		types.Year:    "DATEPART(year, {x})",
		types.Month:   "DATEPART(month, {x})",
		types.Day:     "DATEPART(day, {x})",
		types.Hour:    "DATEPART(hour, {x})",
		types.Minute:  "DATEPART(minute, {x})",
		types.Second:  "DATEPART(second, {x})",
		types.Weekday: "((DATEPART(weekday, {x}) + @@DATEFIRST - 1) % 7)",
	},
	DaysBetween:   "DATEDIFF(day, {from}, {to})",
	Unixepoch:     "DATEDIFF_BIG(second, '1970-01-01', {x})",
	Concat:        render.ConcatFunction,
	DateMath:      render.DateAddFunction,
	Upsert:        render.UpsertNone,
	AutoIncrement: render.AutoIncrementIdentityFunc,
	Pagination:    render.PaginationOffsetFetch,
	CreateGuard:   render.CreateGuardObjectID,
	Write:         render.WriteInsert,
	LastInsertID:  "SELECT CAST(@@IDENTITY AS BIGINT)",
	Capabilities: render.Capabilities{
		RightJoin:    true,
		FullJoin:     true,
		PartialIndex: true,
	},
}

var renderer = render.Register(dialect)

// New returns the SQL Server renderer.
func New() *render.Renderer {
	return renderer
}

// Capabilities returns the SQL features SQL Server supports.
func Capabilities() render.Capabilities {
	return renderer.Capabilities()
}
