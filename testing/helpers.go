// Package testing provides shared statement fixtures and assertions for
// sqlgen tests.
package testing

import (
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Person is the Person table addressed through alias t1.
var Person = types.Table{Name: "Person", Alias: "t1"}

// Pet is the Pet table addressed through alias t2.
var Pet = types.Table{Name: "Pet", Alias: "t2"}

// PersonColumns returns the Person schema: an auto-incrementing id, two
// names, an optional age and an optional birth timestamp.
func PersonColumns() []types.Column {
	return []types.Column{
		{Name: "id", Type: types.Type{Kind: types.Int64}, Properties: types.Properties{Primary: true, AutoIncr: true}},
		{Name: "first_name", Type: types.Type{Kind: types.Text}},
		{Name: "last_name", Type: types.Type{Kind: types.Text}},
		{Name: "age", Type: types.Type{Kind: types.Int32}, Properties: types.Properties{Nullable: true}},
		{Name: "born", Type: types.Type{Kind: types.Timestamp}, Properties: types.Properties{Nullable: true}},
	}
}

// PetColumns returns the Pet schema.
func PetColumns() []types.Column {
	return []types.Column{
		{Name: "id", Type: types.Type{Kind: types.Int64}, Properties: types.Properties{Primary: true}},
		{Name: "owner_id", Type: types.Type{Kind: types.Int64}},
		{Name: "name", Type: types.Type{Kind: types.VarChar, Length: 64}, Properties: types.Properties{Unique: true}},
	}
}

// P references a Person column through t1.
func P(name string) types.Column {
	for _, c := range PersonColumns() {
		if c.Name == name {
			return c.Qualified("t1")
		}
	}
	panic("unknown Person column " + name)
}

// Named pairs a fixture statement with a stable name.
type Named struct {
	Name      string
	Statement types.Statement
}

func lit(v types.Value) types.Literal { return types.Literal{Value: v} }

// Statements returns the fixture set rendered by every dialect's golden test.
func Statements() []Named {
	limit, offset := 10, 20
	skip := 5
	inserted := PersonColumns()[1:4]
	return []Named{
		{"create_person", types.CreateTable{Table: types.Table{Name: "Person"}, Columns: PersonColumns(), IfNotExists: true}},
		{"create_pet", types.CreateTable{Table: types.Table{Name: "Pet"}, Columns: PetColumns()}},
		{"select_join", types.SelectFrom{
			From:    Person,
			Joins:   []types.Join{{How: types.LeftJoin, Source: Pet, On: types.Compare{Op: types.Equal, Left: P("id"), Right: types.Column{Name: "owner_id", Table: "t2"}}}},
			Fields:  []types.Field{{Operation: P("first_name"), Alias: "first_name"}},
			OrderBy: []types.OrderBy{{Operation: P("id")}},
		}},
		{"select_group", types.SelectFrom{
			From: Person,
			Fields: []types.Field{
				{Operation: P("last_name")},
				{Operation: types.Aggregation{Kind: types.Count}, Alias: "n"},
				{Operation: types.Aggregation{Kind: types.Avg, Operand: P("age"), Alias: "avg_age"}},
			},
			Where: types.And{Conditions: []types.Condition{
				types.Compare{Op: types.GreaterEqual, Left: P("age"), Right: lit(types.Integer(18))},
				types.Like{Operand: P("first_name"), Pattern: "A%"},
			}},
			GroupBy: []types.Column{P("last_name")},
			OrderBy: []types.OrderBy{{Operation: P("last_name"), Desc: true}},
			Limit:   &limit,
			Offset:  &offset,
		}},
		{"select_offset", types.SelectFrom{
			From:   Person,
			Fields: []types.Field{{Operation: P("id")}},
			Offset: &skip,
		}},
		{"select_expr", types.SelectFrom{
			From: Person,
			Fields: []types.Field{
				{Operation: types.Binary{Op: types.Minus, Left: types.Binary{Op: types.Minus, Left: P("age"), Right: lit(types.Integer(1))}, Right: lit(types.Integer(2))}, Alias: "a"},
				{Operation: types.Unary{Func: types.Log2, Operand: P("age")}},
				{Operation: types.Extract{Part: types.Weekday, Operand: P("born")}},
				{Operation: types.Concat{Operands: []types.Operation{P("first_name"), lit(types.String(" ")), P("last_name")}}},
				{Operation: types.Cast{Operand: P("age"), Target: types.Type{Kind: types.Text}}},
			},
			Where: types.Or{Conditions: []types.Condition{
				types.IsNull{Operand: P("born"), Negated: true},
				types.In{Operand: P("age"), Values: []types.Value{types.Integer(1), types.Integer(2)}},
			}},
		}},
		{"select_dates", types.SelectFrom{
			From: Person,
			Fields: []types.Field{
				{Operation: types.DatePlusDuration{Operand: P("born"), Durations: []types.Duration{{Unit: types.Days, N: 3}, {Unit: types.Hours, N: 2}}}},
				{Operation: types.DaysBetween{From: P("born"), To: P("born")}},
				{Operation: types.Unixepoch{Operand: P("born")}},
			},
		}},
		{"insert_ignore", types.Insert{Table: types.Table{Name: "Person"}, Columns: inserted, Conflict: types.ConflictIgnore}},
		{"insert_replace", types.Insert{
			Table:          types.Table{Name: "Pet"},
			Columns:        PetColumns(),
			Conflict:       types.ConflictReplace,
			NonPrimaryKeys: []string{"owner_id", "name"},
			Constraints:    []string{"id"},
		}},
		{"insert_returning", types.Insert{Table: types.Table{Name: "Person"}, Columns: inserted, Returning: PersonColumns()[:1]}},
		{"update", types.Update{
			Table: types.Table{Name: "Person"},
			Sets:  []types.Set{{Column: PersonColumns()[3], Value: types.Binary{Op: types.Plus, Left: PersonColumns()[3], Right: lit(types.Integer(1))}}},
			Where: types.Compare{Op: types.Equal, Left: PersonColumns()[2], Right: lit(types.String("O'Brien"))},
		}},
		{"delete", types.DeleteFrom{
			Table: types.Table{Name: "Pet"},
			Where: types.Not{Condition: types.IsNull{Operand: types.Column{Name: "owner_id"}}},
		}},
		{"union", types.Union{Branches: []types.SelectFrom{
			{From: types.Table{Name: "User1"}, Fields: []types.Field{{Operation: types.Column{Name: "name"}}, {Operation: types.Column{Name: "age"}}}},
			{From: types.Table{Name: "User2"}, Fields: []types.Field{{Operation: types.Column{Name: "name"}}, {Operation: types.Column{Name: "age"}}}},
		}}},
		{"create_view", types.CreateAs{
			Kind:  types.ObjectView,
			Table: types.Table{Name: "adults"},
			Query: types.SelectFrom{
				From:   Person,
				Fields: []types.Field{{Operation: P("id")}},
				Where:  types.Compare{Op: types.GreaterThan, Left: P("age"), Right: lit(types.Integer(17))},
			},
		}},
		{"drop_pet", types.Drop{What: types.ObjectTable, IfExists: true, Table: types.Table{Name: "Pet"}}},
	}
}

// RenderAll renders every fixture with r into one document. Unsupported
// features are recorded in place of SQL so the golden file documents them.
func RenderAll(t testing.TB, r *render.Renderer) []byte {
	t.Helper()
	var out strings.Builder
	for _, n := range Statements() {
		out.WriteString("-- ")
		out.WriteString(n.Name)
		out.WriteString("\n")
		sql, err := r.Render(n.Statement)
		var unsupported render.UnsupportedFeatureError
		switch {
		case err == nil:
			out.WriteString(sql)
		case errors.As(err, &unsupported):
			out.WriteString("-- unsupported: ")
			out.WriteString(unsupported.Feature)
		default:
			t.Fatalf("%s: %v", n.Name, err)
		}
		out.WriteString("\n")
	}
	return []byte(out.String())
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t testing.TB, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertRender renders stmt and compares the result with expected.
func AssertRender(t testing.TB, r *render.Renderer, stmt types.Statement, expected string) {
	t.Helper()
	sql, err := r.Render(stmt)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	AssertSQL(t, expected, sql)
}

// AssertUnsupported checks that rendering stmt fails with an
// UnsupportedFeatureError naming feature.
func AssertUnsupported(t testing.TB, r *render.Renderer, stmt types.Statement, feature string) {
	t.Helper()
	_, err := r.Render(stmt)
	var unsupported render.UnsupportedFeatureError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Render() error = %v, want UnsupportedFeatureError", err)
	}
	if !strings.Contains(unsupported.Feature, feature) {
		t.Errorf("Feature = %q, want it to contain %q", unsupported.Feature, feature)
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t testing.TB, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}
