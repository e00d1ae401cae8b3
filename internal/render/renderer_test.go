package render

import (
	"errors"
	"fmt"
	"maps"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/zoobzio/sqlgen/internal/types"
)

// probe is a minimal complete dialect used to exercise the renderer without
// importing a real dialect package.
func probe() *Dialect {
	unary := map[types.UnaryFunc]string{}
	for _, op := range types.OperationVariants() {
		if u, ok := op.(types.Unary); ok {
			unary[u.Func] = u.Func.String() + "({x})"
		}
	}
	extract := map[types.DatePart]string{}
	for _, op := range types.OperationVariants() {
		if e, ok := op.(types.Extract); ok {
			extract[e.Part] = "extract(" + e.Part.String() + " FROM {x})"
		}
	}
	typeNames := map[types.TypeKind]string{}
	for _, k := range types.TypeKinds() {
		typeNames[k] = k.String()
	}
	typeNames[types.VarChar] = "VARCHAR(%d)"
	return &Dialect{
		Name:          "probe",
		QuoteOpen:     `"`,
		QuoteClose:    `"`,
		Placeholder:   PlaceholderDollar,
		Types:         typeNames,
		True:          "TRUE",
		False:         "FALSE",
		Unary:         unary,
		Extract:       extract,
		DaysBetween:   "days({from}, {to})",
		Unixepoch:     "epoch({x})",
		Upsert:        UpsertOnConflict,
		Write:         WriteCopy,
		DefaultSchema: "main",
		Capabilities: Capabilities{
			Returning: true,
			Upsert:    true,
		},
	}
}

func TestCheckExhaustive(t *testing.T) {
	if err := CheckExhaustive(probe()); err != nil {
		t.Fatalf("CheckExhaustive() error = %v", err)
	}
}

func TestCheckExhaustive_MissingEntries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Dialect)
	}{
		{"unary", func(d *Dialect) {
			d.Unary = maps.Clone(d.Unary)
			delete(d.Unary, types.Ln)
		}},
		{"extract", func(d *Dialect) {
			d.Extract = maps.Clone(d.Extract)
			delete(d.Extract, types.Weekday)
		}},
		{"type", func(d *Dialect) {
			d.Types = maps.Clone(d.Types)
			delete(d.Types, types.TimestampWithTZ)
		}},
		{"days between", func(d *Dialect) { d.DaysBetween = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := probe()
			tt.mutate(d)
			err := CheckExhaustive(d)
			if !errors.Is(err, ErrUnhandledVariant) {
				t.Errorf("CheckExhaustive() error = %v, want ErrUnhandledVariant", err)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	d := probe()
	d.Name = "probe-register"
	r := Register(d)
	got, ok := Lookup("probe-register")
	if !ok || got != r {
		t.Fatal("Lookup() did not return the registered renderer")
	}

	defer func() {
		if recover() == nil {
			t.Error("registering twice should panic")
		}
	}()
	Register(d)
}

func TestRegister_PanicsOnGap(t *testing.T) {
	d := probe()
	d.Name = "probe-gap"
	d.Unixepoch = ""
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an incomplete dialect")
		}
	}()
	Register(d)
}

func TestNew_CopiesDialect(t *testing.T) {
	d := probe()
	r := New(d)
	d.Name = "changed"
	d.QuoteOpen, d.QuoteClose = "[", "]"
	d.Unary[types.Abs] = "changed({x})"
	d.Capabilities.Returning = false

	if r.Dialect() != "probe" {
		t.Errorf("Dialect() = %q, want %q", r.Dialect(), "probe")
	}
	if !r.Capabilities().Returning {
		t.Error("Capabilities() follows the mutated table")
	}
	stmt := types.SelectFrom{
		From:   types.Table{Name: "T"},
		Fields: []types.Field{{Operation: types.Unary{Func: types.Abs, Operand: types.Column{Name: "a"}}}},
	}
	got, err := r.Render(stmt)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := `SELECT abs("a") FROM "T";`; got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}

func TestRender_ValidatesFirst(t *testing.T) {
	_, err := New(probe()).Render(types.Union{})
	var ce types.ConstructionError
	if !errors.As(err, &ce) {
		t.Errorf("Render() error = %v, want ConstructionError", err)
	}
}

func TestRender_Literals(t *testing.T) {
	tests := []struct {
		value types.Value
		want  string
	}{
		{types.Integer(-7), "-7"},
		{types.Float(2), "2.0"},
		{types.Float(0.25), "0.25"},
		{types.String("it's"), "'it''s'"},
		{types.Bool(false), "FALSE"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			stmt := types.SelectFrom{
				From:   types.Table{Name: "T"},
				Fields: []types.Field{{Operation: types.Literal{Value: tt.value}}},
			}
			got, err := New(probe()).Render(stmt)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			want := "SELECT " + tt.want + ` FROM "T";`
			if got != want {
				t.Errorf("SQL = %q, want %q", got, want)
			}
		})
	}
}

func TestRender_LeftNestedChain(t *testing.T) {
	a, b, c := types.Column{Name: "a"}, types.Column{Name: "b"}, types.Column{Name: "c"}
	stmt := types.SelectFrom{
		From: types.Table{Name: "T"},
		Fields: []types.Field{
			{Operation: types.Binary{Op: types.Minus, Left: types.Binary{Op: types.Minus, Left: a, Right: b}, Right: c}},
			{Operation: types.Binary{Op: types.Plus, Left: a, Right: types.Binary{Op: types.Multiplies, Left: b, Right: c}}},
		},
	}
	got, err := New(probe()).Render(stmt)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `SELECT (("a") - ("b")) - ("c"),("a") + (("b") * ("c")) FROM "T";`
	if got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}

func TestRender_Subquery(t *testing.T) {
	inner := types.SelectFrom{From: types.Table{Name: "T"}, Fields: []types.Field{{Operation: types.Column{Name: "a"}}}}
	stmt := types.SelectFrom{
		From:   types.Subquery{Query: inner, Alias: "q"},
		Fields: []types.Field{{Operation: types.Column{Name: "a", Table: "q"}}},
	}
	got, err := New(probe()).Render(stmt)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `SELECT q."a" FROM (SELECT "a" FROM "T") q;`
	if got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}

func TestRender_UnsupportedReturning(t *testing.T) {
	d := probe()
	d.Capabilities.Returning = false
	stmt := types.Insert{
		Table:     types.Table{Name: "T"},
		Columns:   []types.Column{{Name: "a"}},
		Returning: []types.Column{{Name: "id", Properties: types.Properties{Primary: true, AutoIncr: true}}},
	}
	_, err := New(d).Render(stmt)
	var ufErr UnsupportedFeatureError
	if !errors.As(err, &ufErr) || ufErr.Feature != "RETURNING" {
		t.Errorf("Render() error = %v, want unsupported RETURNING", err)
	}
}

func TestLastInsertID_Unsupported(t *testing.T) {
	_, err := New(probe()).LastInsertID(types.Table{Name: "T"}, types.Column{Name: "id"})
	var ufErr UnsupportedFeatureError
	if !errors.As(err, &ufErr) {
		t.Errorf("LastInsertID() error = %v, want UnsupportedFeatureError", err)
	}
}

func TestRender_Concurrent(t *testing.T) {
	r := New(probe())
	stmts := types.StatementVariants()
	want := make([]string, len(stmts))
	for i, s := range stmts {
		want[i], _ = r.Render(s)
	}

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i, s := range stmts {
				got, _ := r.Render(s)
				if got != want[i] {
					return fmt.Errorf("statement %d rendered %q, want %q", i, got, want[i])
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Error(err)
	}
}
