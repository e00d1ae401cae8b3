// Package mysql provides the MySQL and MariaDB dialect for sqlgen.
package mysql

import (
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Name is the dialect name used in configuration.
const Name = "mysql"

// dialect is the MySQL lookup table.
var dialect = &render.Dialect{
	Name:        Name,
	QuoteOpen:   "`",
	QuoteClose:  "`",
	Placeholder: render.PlaceholderQuestion,
	Types: map[types.TypeKind]string{
		types.Boolean:         "BOOLEAN",
		types.Int8:            "TINYINT",
		types.Int16:           "SMALLINT",
		types.Int32:           "INT",
		types.Int64:           "BIGINT",
		types.UInt8:           "TINYINT UNSIGNED",
		types.UInt16:          "SMALLINT UNSIGNED",
		types.UInt32:          "INT UNSIGNED",
		types.UInt64:          "BIGINT UNSIGNED",
		types.Float32:         "FLOAT",
		types.Float64:         "DOUBLE",
		types.Text:            "TEXT",
		types.VarChar:         "VARCHAR(%d)",
		types.Date:            "DATE",
		types.Timestamp:       "DATETIME(6)",
		types.TimestampWithTZ: "TIMESTAMP(6)",
	},
	// CAST only accepts a narrow set of targets.
	CastTypes: map[types.TypeKind]string{
		types.Boolean:         "UNSIGNED",
		types.Int8:            "SIGNED",
		types.Int16:           "SIGNED",
		types.Int32:           "SIGNED",
		types.Int64:           "SIGNED",
		types.UInt8:           "UNSIGNED",
		types.UInt16:          "UNSIGNED",
		types.UInt32:          "UNSIGNED",
		types.UInt64:          "UNSIGNED",
		types.Text:            "CHAR",
		types.VarChar:         "CHAR(%d)",
		types.TimestampWithTZ: "DATETIME(6)",
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
		types.Length: "char_length({x})",
		types.LTrim:  "ltrim({x})",
		types.RTrim:  "rtrim({x})",
		types.Trim:   "trim({x})",
	},
	Extract: map[types.DatePart]string{
		types.Year:    "year({x})",
		types.Month:   "month({x})",
		types.Day:     "dayofmonth({x})",
		types.Hour:    "hour({x})",
		types.Minute:  "minute({x})",
		types.Second:  "second({x})",
		types.Weekday: "(dayofweek({x}) - 1)",
	},
	DaysBetween:        "datediff({to}, {from})",
	Unixepoch:          "unix_timestamp({x})",
	Concat:             render.ConcatFunction,
	DateMath:           render.DateAddInterval,
	Upsert:             render.UpsertDuplicate,
	AutoIncrement:      render.AutoIncrementKeyword,
	Pagination:         render.PaginationLimitOffset,
	OffsetWithoutLimit: "18446744073709551615",
	CreateGuard:        render.CreateGuardInline,
	Write:              render.WriteInsert,
	LastInsertID:       "SELECT LAST_INSERT_ID()",
	Capabilities: render.Capabilities{
		Upsert:        true,
		RightJoin:     true,
		ReplaceView:   true,
		DropCascade:   true,
		CreateAsTable: true,
	},
}

var renderer = render.Register(dialect)

// New returns the MySQL renderer.
func New() *render.Renderer {
	return renderer
}

// Capabilities returns the SQL features MySQL supports.
func Capabilities() render.Capabilities {
	return renderer.Capabilities()
}
