package schema

import (
	"fmt"
	"slices"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/internal/types"
)

// CreateTable declares the model's table.
func (m *Model[T]) CreateTable() types.CreateTable {
	return types.CreateTable{Table: m.table, Columns: m.Columns()}
}

// Insert inserts one row. Auto-increment primary keys are left to the
// database and returned. A replace targets the remaining primary key
// columns, or the unique columns when the key is generated, and overwrites
// every other bound column.
func (m *Model[T]) Insert(policy types.ConflictPolicy) types.Insert {
	stmt := types.Insert{Table: m.table, Conflict: policy}
	var primary, unique []string
	for _, col := range m.columns {
		if generated(col) {
			stmt.Returning = append(stmt.Returning, col)
			continue
		}
		stmt.Columns = append(stmt.Columns, col)
		switch {
		case col.Properties.Primary:
			primary = append(primary, col.Name)
		case col.Properties.Unique:
			unique = append(unique, col.Name)
		}
	}
	if policy != types.ConflictReplace {
		return stmt
	}
	stmt.Constraints = primary
	if len(stmt.Constraints) == 0 {
		stmt.Constraints = unique
	}
	for _, col := range stmt.Columns {
		if !col.Properties.Primary && !slices.Contains(stmt.Constraints, col.Name) {
			stmt.NonPrimaryKeys = append(stmt.NonPrimaryKeys, col.Name)
		}
	}
	return stmt
}

// EncodeInsert converts v to the row bound by Insert, skipping generated
// keys.
func (m *Model[T]) EncodeInsert(target codec.Target, v *T) codec.Row {
	row := make(codec.Row, 0, len(m.bindings))
	for i, b := range m.bindings {
		if !generated(m.columns[i]) {
			row = append(row, b.encode(target, v))
		}
	}
	return row
}

// DecodeGenerated stores the keys returned by Insert into v, in the order
// of Insert's Returning columns.
func (m *Model[T]) DecodeGenerated(target codec.Target, keys codec.Row, v *T) error {
	var idx []int
	for j, col := range m.columns {
		if generated(col) {
			idx = append(idx, j)
		}
	}
	if len(keys) != len(idx) {
		return fmt.Errorf("schema: %s returned %d keys, expected %d", m.table.Name, len(keys), len(idx))
	}
	for i, j := range idx {
		if err := m.bindings[j].decode(target, keys[i], v); err != nil {
			return fmt.Errorf("schema: %s.%s: %w", m.table.Name, m.columns[j].Name, err)
		}
	}
	return nil
}

func generated(col types.Column) bool {
	return col.Properties.Primary && col.Properties.AutoIncr
}

// Write opens a bulk load of every column.
func (m *Model[T]) Write() types.Write {
	return types.Write{Table: m.table, Columns: m.Columns()}
}

// SelectAll reads every column of every row.
func (m *Model[T]) SelectAll() types.SelectFrom {
	fields := make([]types.Field, len(m.columns))
	for i, col := range m.columns {
		fields[i] = types.Field{Operation: col}
	}
	return types.SelectFrom{From: m.table, Fields: fields}
}

// Drop removes the model's table if it exists.
func (m *Model[T]) Drop() types.Drop {
	return types.Drop{What: types.ObjectTable, IfExists: true, Table: m.table}
}
