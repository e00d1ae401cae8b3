// Package schema binds Go structs to tables.
//
// A Model lists the fields of a struct together with the codec that maps
// each one to a column. The same description produces the table DDL, the
// statements that read and write the table, and the row conversion used by
// package db:
//
//	type Person struct {
//		ID        int64
//		FirstName string
//		Age       *int32
//	}
//
//	var people = schema.New("Person",
//		schema.Field("id", codec.PrimaryKey(codec.Int64(), true), func(p *Person) *int64 { return &p.ID }),
//		schema.Field("first_name", codec.String(), func(p *Person) *string { return &p.FirstName }),
//		schema.Field("age", codec.Optional(codec.Int32()), func(p *Person) **int32 { return &p.Age }),
//	)
package schema

import (
	"fmt"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Binding is one field of T stored in one column.
type Binding[T any] interface {
	column() types.Column
	encode(target codec.Target, v *T) any
	decode(target codec.Target, raw any, v *T) error
}

type binding[T, V any] struct {
	name  string
	codec codec.Codec[V]
	field func(*T) *V
}

// Field binds the value addressed by field to the column name through c.
func Field[T, V any](name string, c codec.Codec[V], field func(*T) *V) Binding[T] {
	return binding[T, V]{name: name, codec: c, field: field}
}

func (b binding[T, V]) column() types.Column {
	return types.Column{Name: b.name, Type: b.codec.Type(), Properties: b.codec.Properties()}
}

func (b binding[T, V]) encode(target codec.Target, v *T) any {
	return b.codec.Encode(target, *b.field(v))
}

func (b binding[T, V]) decode(target codec.Target, raw any, v *T) error {
	val, err := b.codec.Decode(target, raw)
	if err != nil {
		return err
	}
	*b.field(v) = val
	return nil
}

// Model maps values of T to rows of one table. It is immutable and safe for
// concurrent use.
type Model[T any] struct {
	table    types.Table
	bindings []Binding[T]
	columns  []types.Column
	index    map[string]int
}

// TryNew creates a model of table from its field bindings, in column order.
func TryNew[T any](table string, fields ...Binding[T]) (*Model[T], error) {
	if table == "" {
		return nil, fmt.Errorf("schema: table name cannot be empty")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema: table %q has no fields", table)
	}
	m := &Model[T]{
		table:    types.Table{Name: table},
		bindings: fields,
		columns:  make([]types.Column, len(fields)),
		index:    make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		col := f.column()
		if col.Name == "" {
			return nil, fmt.Errorf("schema: table %q field %d has no column name", table, i)
		}
		if _, dup := m.index[col.Name]; dup {
			return nil, fmt.Errorf("schema: table %q binds column %q twice", table, col.Name)
		}
		m.index[col.Name] = i
		m.columns[i] = col
	}
	return m, nil
}

// New is TryNew that panics on an invalid model.
func New[T any](table string, fields ...Binding[T]) *Model[T] {
	m, err := TryNew(table, fields...)
	if err != nil {
		panic(err)
	}
	return m
}

// Table returns the table reference.
func (m *Model[T]) Table() types.Table {
	return m.table
}

// Columns returns the column definitions in field order.
func (m *Model[T]) Columns() []types.Column {
	return append([]types.Column(nil), m.columns...)
}

// Column returns the definition of the named column.
func (m *Model[T]) Column(name string) (types.Column, bool) {
	i, ok := m.index[name]
	if !ok {
		return types.Column{}, false
	}
	return m.columns[i], true
}

// Encode converts v to a row in column order.
func (m *Model[T]) Encode(target codec.Target, v *T) codec.Row {
	row := make(codec.Row, len(m.bindings))
	for i, b := range m.bindings {
		row[i] = b.encode(target, v)
	}
	return row
}

// Decode converts a row in column order to a T.
func (m *Model[T]) Decode(target codec.Target, row codec.Row) (T, error) {
	var v T
	if len(row) != len(m.bindings) {
		return v, fmt.Errorf("schema: %s row has %d cells, expected %d", m.table.Name, len(row), len(m.bindings))
	}
	for i, b := range m.bindings {
		if err := b.decode(target, row[i], &v); err != nil {
			return v, fmt.Errorf("schema: %s.%s: %w", m.table.Name, m.columns[i].Name, err)
		}
	}
	return v, nil
}
