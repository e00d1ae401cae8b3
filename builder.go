package sqlgen

import (
	"fmt"
	"slices"

	"github.com/zoobzio/sqlgen/internal/types"
)

// SelectBuilder provides a fluent API for constructing SELECT statements.
// The first error recorded short-circuits every later call and is returned
// by Build.
type SelectBuilder struct {
	stmt types.SelectFrom
	err  error
}

// Select starts a SELECT of the given operations.
func Select(ops ...Operation) *SelectBuilder {
	b := &SelectBuilder{}
	for _, op := range ops {
		b.stmt.Fields = append(b.stmt.Fields, types.Field{Operation: op})
	}
	return b
}

// Err returns the recorded error, if any.
func (b *SelectBuilder) Err() error {
	return b.err
}

// Field adds op to the output list under alias.
func (b *SelectBuilder) Field(op Operation, alias string) *SelectBuilder {
	if b.err != nil {
		return b
	}
	if alias != "" && !types.IsIdentifier(alias) {
		b.err = fmt.Errorf("field alias must be a plain identifier, got: %q", alias)
		return b
	}
	b.stmt.Fields = append(b.stmt.Fields, types.Field{Operation: op, Alias: alias})
	return b
}

// From sets the source.
func (b *SelectBuilder) From(src Source) *SelectBuilder {
	if b.err != nil {
		return b
	}
	if b.stmt.From != nil {
		b.err = fmt.Errorf("From() called twice")
		return b
	}
	b.stmt.From = src
	return b
}

// Distinct makes the SELECT return distinct rows.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.stmt.Distinct = true
	return b
}

// InnerJoin adds an INNER JOIN.
func (b *SelectBuilder) InnerJoin(src Source, on Condition) *SelectBuilder {
	return b.addJoin(types.InnerJoin, src, on)
}

// LeftJoin adds a LEFT JOIN.
func (b *SelectBuilder) LeftJoin(src Source, on Condition) *SelectBuilder {
	return b.addJoin(types.LeftJoin, src, on)
}

// RightJoin adds a RIGHT JOIN.
func (b *SelectBuilder) RightJoin(src Source, on Condition) *SelectBuilder {
	return b.addJoin(types.RightJoin, src, on)
}

// FullJoin adds a FULL JOIN.
func (b *SelectBuilder) FullJoin(src Source, on Condition) *SelectBuilder {
	return b.addJoin(types.FullJoin, src, on)
}

func (b *SelectBuilder) addJoin(how types.JoinKind, src Source, on Condition) *SelectBuilder {
	if b.err != nil {
		return b
	}
	if on == nil {
		b.err = fmt.Errorf("%s requires an ON condition", how)
		return b
	}
	b.stmt.Joins = append(b.stmt.Joins, types.Join{How: how, Source: src, On: on})
	return b
}

// Where sets the condition; repeated calls are combined with AND.
func (b *SelectBuilder) Where(c Condition) *SelectBuilder {
	if b.err != nil {
		return b
	}
	b.stmt.Where = andWhere(b.stmt.Where, c)
	return b
}

// GroupBy sets the grouping columns.
func (b *SelectBuilder) GroupBy(cols ...Column) *SelectBuilder {
	if b.err != nil {
		return b
	}
	b.stmt.GroupBy = append(b.stmt.GroupBy, cols...)
	return b
}

// OrderBy adds ascending sort keys.
func (b *SelectBuilder) OrderBy(ops ...Operation) *SelectBuilder {
	for _, op := range ops {
		b.stmt.OrderBy = append(b.stmt.OrderBy, types.OrderBy{Operation: op})
	}
	return b
}

// OrderByDesc adds descending sort keys.
func (b *SelectBuilder) OrderByDesc(ops ...Operation) *SelectBuilder {
	for _, op := range ops {
		b.stmt.OrderBy = append(b.stmt.OrderBy, types.OrderBy{Operation: op, Desc: true})
	}
	return b
}

// Limit caps the number of rows.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		b.err = fmt.Errorf("limit must be non-negative, got %d", n)
		return b
	}
	b.stmt.Limit = &n
	return b
}

// Offset skips rows.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		b.err = fmt.Errorf("offset must be non-negative, got %d", n)
		return b
	}
	b.stmt.Offset = &n
	return b
}

// Build returns the validated statement.
func (b *SelectBuilder) Build() (SelectFrom, error) {
	if b.err != nil {
		return SelectFrom{}, b.err
	}
	if _, err := types.Validate(b.stmt); err != nil {
		return SelectFrom{}, err
	}
	return b.snapshot(), nil
}

// MustBuild returns the statement or panics on error.
func (b *SelectBuilder) MustBuild() SelectFrom {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Render builds the statement and renders it with r.
func (b *SelectBuilder) Render(r *Renderer) (string, error) {
	s, err := b.Build()
	if err != nil {
		return "", err
	}
	return r.Render(s)
}

// As builds the statement and wraps it as a named sub-query source.
func (b *SelectBuilder) As(alias string) (Subquery, error) {
	s, err := b.Build()
	if err != nil {
		return Subquery{}, err
	}
	return Subquery{Query: s, Alias: alias}, nil
}

// snapshot copies the builder's slices so later builder calls cannot reach
// a statement that was already handed out.
func (b *SelectBuilder) snapshot() SelectFrom {
	s := b.stmt
	s.Fields = slices.Clone(s.Fields)
	s.Joins = slices.Clone(s.Joins)
	s.GroupBy = slices.Clone(s.GroupBy)
	s.OrderBy = slices.Clone(s.OrderBy)
	return s
}

func andWhere(existing, c Condition) Condition {
	if existing == nil {
		return c
	}
	if and, ok := existing.(types.And); ok {
		return types.And{Conditions: append(slices.Clone(and.Conditions), c)}
	}
	return types.And{Conditions: []Condition{existing, c}}
}

// UnionOf combines queries with UNION, removing duplicate rows.
func UnionOf(branches ...SelectFrom) Union {
	return Union{Branches: branches}
}

// UnionAllOf combines queries with UNION ALL.
func UnionAllOf(branches ...SelectFrom) Union {
	return Union{Branches: branches, All: true}
}

// InsertBuilder constructs INSERT statements.
type InsertBuilder struct {
	stmt types.Insert
	err  error
}

// InsertInto starts an INSERT of cols into t. Values are bound as
// parameters at execution time.
func InsertInto(t Table, cols ...Column) *InsertBuilder {
	return &InsertBuilder{stmt: types.Insert{Table: t, Columns: cols}}
}

// OnConflictIgnore skips rows that violate a key.
func (b *InsertBuilder) OnConflictIgnore() *InsertBuilder {
	if b.err != nil {
		return b
	}
	b.stmt.Conflict = types.ConflictIgnore
	return b
}

// OnConflictReplace updates every non-key column of a conflicting row.
// Without explicit constraints the primary key columns are used.
func (b *InsertBuilder) OnConflictReplace(constraints ...string) *InsertBuilder {
	if b.err != nil {
		return b
	}
	if len(constraints) == 0 {
		for _, c := range b.stmt.Columns {
			if c.Properties.Primary {
				constraints = append(constraints, c.Name)
			}
		}
	}
	if len(constraints) == 0 {
		b.err = fmt.Errorf("replace policy on %q needs a primary key or unique constraint", b.stmt.Table.Name)
		return b
	}
	b.stmt.Conflict = types.ConflictReplace
	b.stmt.Constraints = constraints
	b.stmt.NonPrimaryKeys = nil
	for _, c := range b.stmt.Columns {
		if !c.Properties.Primary && !slices.Contains(constraints, c.Name) {
			b.stmt.NonPrimaryKeys = append(b.stmt.NonPrimaryKeys, c.Name)
		}
	}
	return b
}

// Returning requests generated values of auto-incrementing primary keys.
func (b *InsertBuilder) Returning(cols ...Column) *InsertBuilder {
	b.stmt.Returning = append(b.stmt.Returning, cols...)
	return b
}

// ReturningAny requests arbitrary columns, bypassing the auto-increment
// check.
func (b *InsertBuilder) ReturningAny(cols ...Column) *InsertBuilder {
	b.stmt.Returning = append(b.stmt.Returning, cols...)
	b.stmt.ExplicitReturning = true
	return b
}

// Build returns the validated statement.
func (b *InsertBuilder) Build() (Insert, error) {
	if b.err != nil {
		return Insert{}, b.err
	}
	if _, err := types.Validate(b.stmt); err != nil {
		return Insert{}, err
	}
	s := b.stmt
	s.Columns = slices.Clone(s.Columns)
	s.Returning = slices.Clone(s.Returning)
	return s, nil
}

// MustBuild returns the statement or panics on error.
func (b *InsertBuilder) MustBuild() Insert {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Render builds the statement and renders it with r.
func (b *InsertBuilder) Render(r *Renderer) (string, error) {
	s, err := b.Build()
	if err != nil {
		return "", err
	}
	return r.Render(s)
}

// WriteInto opens a bulk write of cols into t.
func WriteInto(t Table, cols ...Column) Write {
	return Write{Table: t, Columns: cols}
}

// UpdateBuilder constructs UPDATE statements.
type UpdateBuilder struct {
	stmt types.Update
	err  error
}

// UpdateTable starts an UPDATE of t.
func UpdateTable(t Table) *UpdateBuilder {
	return &UpdateBuilder{stmt: types.Update{Table: t}}
}

// Set assigns value to col.
func (b *UpdateBuilder) Set(col Column, value Operation) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	for _, s := range b.stmt.Sets {
		if s.Column.Name == col.Name {
			b.err = fmt.Errorf("column %q assigned twice", col.Name)
			return b
		}
	}
	b.stmt.Sets = append(b.stmt.Sets, types.Set{Column: col, Value: value})
	return b
}

// Where sets the condition; repeated calls are combined with AND.
func (b *UpdateBuilder) Where(c Condition) *UpdateBuilder {
	b.stmt.Where = andWhere(b.stmt.Where, c)
	return b
}

// Build returns the validated statement.
func (b *UpdateBuilder) Build() (Update, error) {
	if b.err != nil {
		return Update{}, b.err
	}
	if _, err := types.Validate(b.stmt); err != nil {
		return Update{}, err
	}
	s := b.stmt
	s.Sets = slices.Clone(s.Sets)
	return s, nil
}

// Render builds the statement and renders it with r.
func (b *UpdateBuilder) Render(r *Renderer) (string, error) {
	s, err := b.Build()
	if err != nil {
		return "", err
	}
	return r.Render(s)
}

// DeleteBuilder constructs DELETE statements.
type DeleteBuilder struct {
	stmt types.DeleteFrom
}

// DeleteFrom starts a DELETE from t. Without Where every row is removed.
func DeleteFrom(t Table) *DeleteBuilder {
	return &DeleteBuilder{stmt: types.DeleteFrom{Table: t}}
}

// Where sets the condition; repeated calls are combined with AND.
func (b *DeleteBuilder) Where(c Condition) *DeleteBuilder {
	b.stmt.Where = andWhere(b.stmt.Where, c)
	return b
}

// Build returns the validated statement.
func (b *DeleteBuilder) Build() (Statement, error) {
	return types.Validate(b.stmt)
}

// Render builds the statement and renders it with r.
func (b *DeleteBuilder) Render(r *Renderer) (string, error) {
	return r.Render(b.stmt)
}
