package schema

import (
	"fmt"

	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlgen/internal/types"
)

// Table is any model, seen through its table definition.
type Table interface {
	Table() types.Table
	Columns() []types.Column
}

// ToDBML exports the tables of models as a DBML project, so they can back a
// sqlgen.Catalog or be published as documentation.
func ToDBML(name string, models ...Table) *dbml.Project {
	project := dbml.NewProject(name)
	for _, m := range models {
		table := dbml.NewTable(m.Table().Name)
		for _, col := range m.Columns() {
			table.AddColumn(dbml.NewColumn(col.Name, dbmlType(col.Type)))
		}
		project.AddTable(table)
	}
	return project
}

func dbmlType(t types.Type) string {
	switch t.Kind {
	case types.Boolean:
		return "boolean"
	case types.Int8:
		return "tinyint"
	case types.Int16:
		return "smallint"
	case types.Int32:
		return "int"
	case types.Int64:
		return "bigint"
	case types.UInt8:
		return "utinyint"
	case types.UInt16:
		return "usmallint"
	case types.UInt32:
		return "uint"
	case types.UInt64:
		return "ubigint"
	case types.Float32:
		return "real"
	case types.Float64:
		return "double"
	case types.Text:
		return "text"
	case types.VarChar:
		return fmt.Sprintf("varchar(%d)", t.Length)
	case types.Date:
		return "date"
	case types.Timestamp:
		return "timestamp"
	case types.TimestampWithTZ:
		return "timestamptz"
	default:
		return "unknown"
	}
}
