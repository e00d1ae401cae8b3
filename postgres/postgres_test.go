package postgres

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
	sqltest "github.com/zoobzio/sqlgen/testing"
)

func TestNew(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New() returned nil")
	}
	if r.Dialect() != Name {
		t.Errorf("Dialect() = %q, want %q", r.Dialect(), Name)
	}
	if got, ok := render.Lookup(Name); !ok || got != r {
		t.Error("renderer not registered")
	}
}

func TestRender_Golden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "statements", sqltest.RenderAll(t, New()))
}

func TestRender_CreateTable(t *testing.T) {
	stmt := types.CreateTable{
		Table: types.Table{Name: "Person"},
		Columns: []types.Column{
			{Name: "id", Type: types.Type{Kind: types.Int32}, Properties: types.Properties{Primary: true}},
			{Name: "first_name", Type: types.Type{Kind: types.Text}},
		},
		IfNotExists: true,
	}
	sqltest.AssertRender(t, New(), stmt,
		`CREATE TABLE IF NOT EXISTS "Person" ("id" INTEGER NOT NULL, "first_name" TEXT NOT NULL, PRIMARY KEY ("id"));`)
}

func TestRender_Upsert(t *testing.T) {
	stmt := types.Insert{
		Table:          types.Table{Name: "T"},
		Columns:        []types.Column{{Name: "a"}, {Name: "id"}},
		Conflict:       types.ConflictReplace,
		NonPrimaryKeys: []string{"a"},
		Constraints:    []string{"id"},
	}
	sqltest.AssertRender(t, New(), stmt,
		`INSERT INTO "T" ("a","id") VALUES ($1,$2) ON CONFLICT (id) DO UPDATE SET a=excluded.a;`)
}

func TestRender_UpsertQuotesMixedCase(t *testing.T) {
	stmt := types.Insert{
		Table:          types.Table{Name: "T"},
		Columns:        []types.Column{{Name: "Name"}, {Name: "ID"}},
		Conflict:       types.ConflictReplace,
		NonPrimaryKeys: []string{"Name"},
		Constraints:    []string{"ID"},
	}
	sqltest.AssertRender(t, New(), stmt,
		`INSERT INTO "T" ("Name","ID") VALUES ($1,$2) ON CONFLICT ("ID") DO UPDATE SET "Name"=excluded."Name";`)
}

func TestRender_Copy(t *testing.T) {
	stmt := types.Write{
		Table:   types.Table{Name: "T"},
		Columns: []types.Column{{Name: "a"}, {Name: "b"}},
	}
	want := `COPY "public"."T"("a","b") FROM STDIN WITH DELIMITER '` + render.CopyDelimiter +
		`' NULL '` + render.CopyNull + `' CSV QUOTE '` + render.CopyQuote + `';`
	sqltest.AssertRender(t, New(), stmt, want)
}

func TestRender_CopyKeepsSchema(t *testing.T) {
	stmt := types.Write{
		Table:   types.Table{Name: "T", Schema: "staging"},
		Columns: []types.Column{{Name: "a"}},
	}
	sql, err := New().Render(stmt)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `COPY "staging"."T"("a") FROM STDIN`
	if sql[:len(want)] != want {
		t.Errorf("SQL = %q, want prefix %q", sql, want)
	}
}

func TestRender_MaterializedView(t *testing.T) {
	stmt := types.CreateAs{
		Kind:  types.ObjectMaterializedView,
		Table: types.Table{Name: "mv"},
		Query: types.SelectFrom{
			From:   types.Table{Name: "T"},
			Fields: []types.Field{{Operation: types.Aggregation{Kind: types.Count}}},
		},
		IfNotExists: true,
	}
	sqltest.AssertRender(t, New(), stmt, `CREATE MATERIALIZED VIEW IF NOT EXISTS "mv" AS SELECT COUNT(*) FROM "T";`)
}

func TestRender_DropCascade(t *testing.T) {
	stmt := types.Drop{What: types.ObjectView, IfExists: true, Cascade: true, Table: types.Table{Name: "v"}}
	sqltest.AssertRender(t, New(), stmt, `DROP VIEW IF EXISTS "v" CASCADE;`)
}

func TestRender_IntervalLiteral(t *testing.T) {
	stmt := types.SelectFrom{
		From:   types.Table{Name: "T"},
		Fields: []types.Field{{Operation: types.Literal{Value: types.Duration{Unit: types.Weeks, N: 2}}}},
	}
	sqltest.AssertRender(t, New(), stmt, `SELECT INTERVAL '2 weeks' FROM "T";`)
}

func TestLastInsertID(t *testing.T) {
	sql, err := New().LastInsertID(types.Table{Name: "Person"}, types.Column{Name: "id"})
	if err != nil {
		t.Fatalf("LastInsertID() error = %v", err)
	}
	sqltest.AssertSQL(t, `SELECT currval(pg_get_serial_sequence('"Person"', 'id'));`, sql)

	sql, err = New().LastInsertID(types.Table{Name: "O'Brien", Schema: "app"}, types.Column{Name: "i'd"})
	if err != nil {
		t.Fatalf("LastInsertID() error = %v", err)
	}
	sqltest.AssertSQL(t, `SELECT currval(pg_get_serial_sequence('"app"."O''Brien"', 'i''d'));`, sql)
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities()
	if !caps.Returning || !caps.Upsert || !caps.MaterializedViews {
		t.Errorf("Capabilities() = %+v, want RETURNING, upsert and materialized views", caps)
	}
}
