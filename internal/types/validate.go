package types

import (
	"fmt"
	"slices"
)

// MaxQueryDepth bounds the nesting of sub-queries inside one statement.
const MaxQueryDepth = 16

// Validate checks stmt against the construction invariants and returns it
// unchanged when it is well formed. Renderers only accept validated trees.
func Validate(stmt Statement) (Statement, error) {
	v := validator{}
	if err := v.statement(stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

type validator struct {
	depth int
}

func (v *validator) statement(stmt Statement) error {
	switch s := stmt.(type) {
	case SelectFrom:
		return v.selectFrom(s)
	case Union:
		return v.union(s)
	case Insert:
		return v.insert(s)
	case Write:
		if err := tableName(s.Table); err != nil {
			return err
		}
		return columnNames("WRITE", s.Columns)
	case Update:
		if err := tableName(s.Table); err != nil {
			return err
		}
		if len(s.Sets) == 0 {
			return constructionErrorf("UPDATE %q has no SET assignments", s.Table.Name)
		}
		for _, set := range s.Sets {
			if set.Column.Name == "" {
				return constructionErrorf("UPDATE %q assigns an unnamed column", s.Table.Name)
			}
			if err := v.operation(set.Value); err != nil {
				return err
			}
		}
		return v.optionalCondition(s.Where)
	case DeleteFrom:
		if err := tableName(s.Table); err != nil {
			return err
		}
		return v.optionalCondition(s.Where)
	case CreateTable:
		return createTable(s)
	case CreateIndex:
		if s.Name == "" {
			return constructionErrorf("CREATE INDEX requires a name")
		}
		if err := tableName(s.Table); err != nil {
			return err
		}
		if len(s.Columns) == 0 {
			return constructionErrorf("index %q has no columns", s.Name)
		}
		return v.optionalCondition(s.Where)
	case CreateAs:
		if s.Kind == ObjectIndex || s.Kind < 0 || s.Kind >= objectKindEnd {
			return constructionErrorf("CREATE AS cannot create %s", s.Kind)
		}
		if err := tableName(s.Table); err != nil {
			return err
		}
		if s.Query == nil {
			return constructionErrorf("CREATE %s %q has no query", s.Kind, s.Table.Name)
		}
		return v.nested(s.Query)
	case Drop:
		if s.What < 0 || s.What >= objectKindEnd {
			return constructionErrorf("cannot drop %s", s.What)
		}
		return tableName(s.Table)
	case *SelectFrom, *Union:
		return constructionErrorf("query %T is a pointer; statements are held by value", stmt)
	case nil:
		return constructionErrorf("nil statement")
	default:
		return constructionErrorf("unknown statement type %T", stmt)
	}
}

func (v *validator) nested(q Query) error {
	v.depth++
	defer func() { v.depth-- }()
	if v.depth > MaxQueryDepth {
		return constructionErrorf("sub-queries nested deeper than %d", MaxQueryDepth)
	}
	return v.statement(q)
}

func (v *validator) selectFrom(s SelectFrom) error {
	if s.From == nil {
		return constructionErrorf("SELECT has no FROM source")
	}
	if len(s.Fields) == 0 {
		return constructionErrorf("SELECT has no fields")
	}

	refs := make([]string, 0, 1+len(s.Joins))
	ref, err := v.source(s.From)
	if err != nil {
		return err
	}
	refs = append(refs, ref)
	for _, j := range s.Joins {
		if j.How < 0 || j.How >= joinKindEnd {
			return constructionErrorf("unknown join kind %d", int(j.How))
		}
		if j.Source == nil {
			return constructionErrorf("%s has no source", j.How)
		}
		if j.On == nil {
			return constructionErrorf("%s has no ON condition", j.How)
		}
		ref, err := v.source(j.Source)
		if err != nil {
			return err
		}
		if ref != "" && slices.Contains(refs, ref) {
			return constructionErrorf("relation %q is referenced more than once; give each reference a distinct alias", ref)
		}
		refs = append(refs, ref)
		if err := v.condition(j.On); err != nil {
			return err
		}
	}

	for _, f := range s.Fields {
		if err := v.operation(f.Operation); err != nil {
			return err
		}
	}
	if err := v.optionalCondition(s.Where); err != nil {
		return err
	}
	for _, o := range s.OrderBy {
		if err := v.operation(o.Operation); err != nil {
			return err
		}
	}
	if s.Limit != nil && *s.Limit < 0 {
		return constructionErrorf("negative LIMIT %d", *s.Limit)
	}
	if s.Offset != nil && *s.Offset < 0 {
		return constructionErrorf("negative OFFSET %d", *s.Offset)
	}

	if len(s.GroupBy) == 0 {
		return nil
	}
	for i, f := range s.Fields {
		for _, c := range ungrouped(f.Operation) {
			if !slices.ContainsFunc(s.GroupBy, func(g Column) bool { return sameColumn(g, c) }) {
				return constructionErrorf("field %d references column %q outside an aggregation but it is not in GROUP BY", i, c.Name)
			}
		}
	}
	return nil
}

func (v *validator) source(src Source) (string, error) {
	switch s := src.(type) {
	case Table:
		if err := tableName(s); err != nil {
			return "", err
		}
		if err := alias("table alias", s.Alias); err != nil {
			return "", err
		}
		return s.Ref(), nil
	case Subquery:
		if err := alias("sub-query alias", s.Alias); err != nil {
			return "", err
		}
		if s.Query == nil {
			return "", constructionErrorf("sub-query %q has no query", s.Alias)
		}
		return s.Alias, v.nested(s.Query)
	default:
		return "", constructionErrorf("unknown source type %T", src)
	}
}

func (v *validator) union(u Union) error {
	if len(u.Branches) == 0 {
		return constructionErrorf("UNION has no branches")
	}
	width := len(u.Branches[0].Fields)
	for i, b := range u.Branches {
		if len(b.Fields) != width {
			return constructionErrorf("UNION branch %d has %d fields, branch 0 has %d", i, len(b.Fields), width)
		}
		if err := v.selectFrom(b); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) insert(s Insert) error {
	if err := tableName(s.Table); err != nil {
		return err
	}
	if err := columnNames("INSERT", s.Columns); err != nil {
		return err
	}
	switch s.Conflict {
	case ConflictNone, ConflictIgnore:
	case ConflictReplace:
		if len(s.Constraints) == 0 {
			return constructionErrorf("INSERT into %q with replace policy requires at least one primary key or unique constraint", s.Table.Name)
		}
	default:
		return constructionErrorf("unknown conflict policy %d", int(s.Conflict))
	}
	if s.ExplicitReturning {
		return nil
	}
	for _, c := range s.Returning {
		if !c.Properties.Primary || !c.Properties.AutoIncr {
			return constructionErrorf("RETURNING column %q is not an auto-incrementing primary key", c.Name)
		}
	}
	return nil
}

func createTable(s CreateTable) error {
	if err := tableName(s.Table); err != nil {
		return err
	}
	if err := columnNames("CREATE TABLE", s.Columns); err != nil {
		return err
	}
	for _, c := range s.Columns {
		if c.Type.Kind == Unknown {
			return constructionErrorf("column %q of %q has no inferred type", c.Name, s.Table.Name)
		}
		if c.Type.Kind < 0 || c.Type.Kind >= typeKindEnd {
			return constructionErrorf("column %q has unknown type %s", c.Name, c.Type.Kind)
		}
	}
	return nil
}

func (v *validator) optionalCondition(c Condition) error {
	if c == nil {
		return nil
	}
	return v.condition(c)
}

func (v *validator) condition(cond Condition) error {
	switch c := cond.(type) {
	case And:
		return v.conditions("AND", c.Conditions)
	case Or:
		return v.conditions("OR", c.Conditions)
	case Not:
		if c.Condition == nil {
			return constructionErrorf("NOT has no operand")
		}
		return v.condition(c.Condition)
	case Compare:
		if c.Op < 0 || c.Op >= compareOpEnd {
			return constructionErrorf("unknown comparison %d", int(c.Op))
		}
		if err := v.operation(c.Left); err != nil {
			return err
		}
		return v.operation(c.Right)
	case Like:
		return v.operation(c.Operand)
	case In:
		if len(c.Values) == 0 {
			return constructionErrorf("IN has an empty value list")
		}
		for _, val := range c.Values {
			if err := value(val); err != nil {
				return err
			}
		}
		return v.operation(c.Operand)
	case IsNull:
		return v.operation(c.Operand)
	case BooleanColumnOrValue:
		return v.operation(c.Operand)
	case nil:
		return constructionErrorf("nil condition")
	default:
		return constructionErrorf("unknown condition type %T", cond)
	}
}

func (v *validator) conditions(kind string, conds []Condition) error {
	if len(conds) == 0 {
		return constructionErrorf("%s has no operands", kind)
	}
	for _, c := range conds {
		if err := v.condition(c); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) operation(op Operation) error {
	switch o := op.(type) {
	case Column:
		if o.Name == "" {
			return constructionErrorf("column reference without a name")
		}
		return alias("column qualifier", o.Table)
	case Literal:
		return value(o.Value)
	case Aggregation:
		if o.Kind < 0 || o.Kind >= aggregationKindEnd {
			return constructionErrorf("unknown aggregation %d", int(o.Kind))
		}
		if o.Operand == nil {
			if o.Kind != Count {
				return constructionErrorf("%s requires an operand", o.Kind)
			}
			return nil
		}
		return v.operation(o.Operand)
	case Unary:
		if o.Func < 0 || o.Func >= unaryFuncEnd {
			return constructionErrorf("unknown function %d", int(o.Func))
		}
		return v.operation(o.Operand)
	case Binary:
		if o.Op < 0 || o.Op >= binaryOpEnd {
			return constructionErrorf("unknown operator %d", int(o.Op))
		}
		if err := v.operation(o.Left); err != nil {
			return err
		}
		return v.operation(o.Right)
	case Concat:
		return v.operations("concat", o.Operands)
	case Coalesce:
		return v.operations("coalesce", o.Operands)
	case Cast:
		if o.Target.Kind == Unknown || o.Target.Kind < 0 || o.Target.Kind >= typeKindEnd {
			return constructionErrorf("cast to unresolved type %s", o.Target.Kind)
		}
		return v.operation(o.Operand)
	case Round:
		return v.operation(o.Operand)
	case Extract:
		if o.Part < 0 || o.Part >= datePartEnd {
			return constructionErrorf("unknown date part %d", int(o.Part))
		}
		return v.operation(o.Operand)
	case Replace:
		return v.operation(o.Operand)
	case DatePlusDuration:
		if len(o.Durations) == 0 {
			return constructionErrorf("date arithmetic without a duration")
		}
		for _, d := range o.Durations {
			if err := value(d); err != nil {
				return err
			}
		}
		return v.operation(o.Operand)
	case DaysBetween:
		if err := v.operation(o.From); err != nil {
			return err
		}
		return v.operation(o.To)
	case Unixepoch:
		return v.operation(o.Operand)
	case nil:
		return constructionErrorf("nil operation")
	default:
		return constructionErrorf("unknown operation type %T", op)
	}
}

func (v *validator) operations(kind string, ops []Operation) error {
	if len(ops) == 0 {
		return constructionErrorf("%s has no operands", kind)
	}
	for _, op := range ops {
		if err := v.operation(op); err != nil {
			return err
		}
	}
	return nil
}

func value(val Value) error {
	switch x := val.(type) {
	case Integer, Float, String, Bool:
		return nil
	case Duration:
		if x.Unit < 0 || x.Unit >= durationUnitEnd {
			return constructionErrorf("unknown duration unit %d", int(x.Unit))
		}
		return nil
	case nil:
		return constructionErrorf("nil value")
	default:
		return constructionErrorf("unknown value type %T", val)
	}
}

func tableName(t Table) error {
	if t.Name == "" {
		return constructionErrorf("table without a name")
	}
	return nil
}

// IsIdentifier reports whether s is a plain SQL identifier: a letter or
// underscore followed by letters, digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch == '_':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// alias checks a name that renders unquoted. Empty means no alias.
func alias(what, name string) error {
	if name != "" && !IsIdentifier(name) {
		return constructionErrorf("%s %q is not a plain identifier", what, name)
	}
	return nil
}

func columnNames(stmt string, cols []Column) error {
	if len(cols) == 0 {
		return constructionErrorf("%s has no columns", stmt)
	}
	for i, c := range cols {
		if c.Name == "" {
			return constructionErrorf("%s column %d has no name", stmt, i)
		}
	}
	return nil
}

// ungrouped returns the column references of op that are not beneath an
// aggregation.
func ungrouped(op Operation) []Column {
	var cols []Column
	Walk(op, func(o Operation) bool {
		switch x := o.(type) {
		case Aggregation:
			return false
		case Column:
			cols = append(cols, x)
		}
		return true
	})
	return cols
}

func sameColumn(a, b Column) bool {
	return a.Name == b.Name && (a.Table == b.Table || a.Table == "" || b.Table == "")
}

// Walk visits op and its children depth first. Returning false from fn
// skips the children of the node just visited.
func Walk(op Operation, fn func(Operation) bool) {
	if op == nil || !fn(op) {
		return
	}
	switch o := op.(type) {
	case Aggregation:
		Walk(o.Operand, fn)
	case Unary:
		Walk(o.Operand, fn)
	case Binary:
		Walk(o.Left, fn)
		Walk(o.Right, fn)
	case Concat:
		for _, c := range o.Operands {
			Walk(c, fn)
		}
	case Coalesce:
		for _, c := range o.Operands {
			Walk(c, fn)
		}
	case Cast:
		Walk(o.Operand, fn)
	case Round:
		Walk(o.Operand, fn)
	case Extract:
		Walk(o.Operand, fn)
	case Replace:
		Walk(o.Operand, fn)
	case DatePlusDuration:
		Walk(o.Operand, fn)
	case DaysBetween:
		Walk(o.From, fn)
		Walk(o.To, fn)
	case Unixepoch:
		Walk(o.Operand, fn)
	case Column, Literal:
	default:
		panic(fmt.Sprintf("types.Walk: unhandled operation %T", op))
	}
}
