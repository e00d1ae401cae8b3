package sqlgen

import (
	"fmt"

	"github.com/zoobzio/sqlgen/internal/types"
)

// TryT creates a table reference, returning an error if the alias is not a
// plain identifier.
func TryT(name string, alias ...string) (Table, error) {
	if name == "" {
		return Table{}, fmt.Errorf("table name cannot be empty")
	}
	var tableAlias string
	if len(alias) > 0 {
		if len(alias) > 1 {
			return Table{}, fmt.Errorf("only one alias allowed")
		}
		tableAlias = alias[0]
		if !types.IsIdentifier(tableAlias) {
			return Table{}, fmt.Errorf("alias must be a plain identifier, got: %q", tableAlias)
		}
	}
	return Table{Name: name, Alias: tableAlias}, nil
}

// T creates a table reference.
func T(name string, alias ...string) Table {
	t, err := TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// InSchema returns t placed in schema.
func InSchema(schema string, t Table) Table {
	t.Schema = schema
	return t
}

// As wraps q as a source named alias.
func As(q Query, alias string) Subquery {
	return Subquery{Query: q, Alias: alias}
}

// C references column name of t, qualified by t's alias when it has one.
func C(t Table, name string) Column {
	return Column{Name: name, Table: t.Alias}
}

// Col defines a column of the given type.
func Col(name string, kind TypeKind) Column {
	return Column{Name: name, Type: Type{Kind: kind}}
}

// VarCharCol defines a VARCHAR(n) column.
func VarCharCol(name string, n int) Column {
	return Column{Name: name, Type: Type{Kind: types.VarChar, Length: n}, Properties: Properties{Length: n}}
}

// PrimaryKey marks c as (part of) the primary key.
func PrimaryKey(c Column) Column {
	c.Properties.Primary = true
	return c
}

// AutoIncrement marks c as an auto-incrementing primary key.
func AutoIncrement(c Column) Column {
	c.Properties.Primary = true
	c.Properties.AutoIncr = true
	return c
}

// Nullable marks c as accepting NULL.
func Nullable(c Column) Column {
	c.Properties.Nullable = true
	return c
}

// Unique marks c as unique.
func Unique(c Column) Column {
	c.Properties.Unique = true
	return c
}
