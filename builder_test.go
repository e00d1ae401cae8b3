package sqlgen_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/sqlgen"
	"github.com/zoobzio/sqlgen/mysql"
	"github.com/zoobzio/sqlgen/postgres"
	"github.com/zoobzio/sqlgen/sqlite"
	sqltest "github.com/zoobzio/sqlgen/testing"
)

var (
	person = sqlgen.T("Person", "t1")
	pet    = sqlgen.T("Pet", "t2")
)

func TestSelect_JoinAndOrder(t *testing.T) {
	sql, err := sqlgen.Select().
		Field(sqlgen.C(person, "first_name"), "first_name").
		From(person).
		LeftJoin(pet, sqlgen.Equal(sqlgen.C(person, "id"), sqlgen.C(pet, "owner_id"))).
		OrderBy(sqlgen.C(person, "id")).
		Render(postgres.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	sqltest.AssertSQL(t, `SELECT t1."first_name" AS "first_name" FROM "Person" t1 LEFT JOIN "Pet" t2 ON t1."id" = t2."owner_id" ORDER BY t1."id";`, sql)
}

func TestSelect_WhereCombinesWithAnd(t *testing.T) {
	age := sqlgen.C(person, "age")
	sql, err := sqlgen.Select(sqlgen.C(person, "id")).
		From(person).
		Where(sqlgen.GreaterEqual(age, sqlgen.Int(18))).
		Where(sqlgen.LesserThan(age, sqlgen.Int(65))).
		Where(sqlgen.IsNotNull(age)).
		Render(postgres.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	sqltest.AssertSQL(t, `SELECT t1."id" FROM "Person" t1 WHERE (t1."age" >= 18) AND (t1."age" < 65) AND (t1."age" IS NOT NULL);`, sql)
}

func TestSelect_GroupBy(t *testing.T) {
	last := sqlgen.C(person, "last_name")
	b := sqlgen.Select(last).
		Field(sqlgen.CountAll(), "n").
		From(person).
		GroupBy(last).
		OrderByDesc(last).
		Limit(5).
		Offset(10)
	sql, err := b.Render(sqlite.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	sqltest.AssertSQL(t, `SELECT t1."last_name",COUNT(*) AS "n" FROM "Person" t1 GROUP BY t1."last_name" ORDER BY t1."last_name" DESC LIMIT 5 OFFSET 10;`, sql)
}

func TestSelect_UngroupedFieldRejected(t *testing.T) {
	_, err := sqlgen.Select(sqlgen.C(person, "first_name")).
		Field(sqlgen.CountAll(), "n").
		From(person).
		GroupBy(sqlgen.C(person, "last_name")).
		Build()
	var ce sqlgen.ConstructionError
	if !errors.As(err, &ce) {
		t.Fatalf("Build() error = %v, want ConstructionError", err)
	}
}

func TestSelect_BuilderErrors(t *testing.T) {
	tests := []struct {
		name string
		b    *sqlgen.SelectBuilder
		want string
	}{
		{"negative limit", sqlgen.Select(sqlgen.Int(1)).From(person).Limit(-1), "limit must be non-negative"},
		{"negative offset", sqlgen.Select(sqlgen.Int(1)).From(person).Offset(-3), "offset must be non-negative"},
		{"from twice", sqlgen.Select(sqlgen.Int(1)).From(person).From(pet), "From() called twice"},
		{"join without on", sqlgen.Select(sqlgen.Int(1)).From(person).InnerJoin(pet, nil), "requires an ON condition"},
		{"bad alias", sqlgen.Select().Field(sqlgen.Int(1), "x y").From(person), "plain identifier"},
		{"no from", sqlgen.Select(sqlgen.Int(1)), "no FROM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			sqltest.AssertErrorContains(t, err, tt.want)
		})
	}
}

func TestSelect_ErrorShortCircuits(t *testing.T) {
	b := sqlgen.Select(sqlgen.Int(1)).From(person).Limit(-1).Where(sqlgen.IsTrue(sqlgen.Bool(true)))
	if b.Err() == nil {
		t.Fatal("expected recorded error")
	}
	defer func() {
		if recover() == nil {
			t.Error("MustBuild should panic")
		}
	}()
	b.MustBuild()
}

func TestSelect_BuildSnapshots(t *testing.T) {
	b := sqlgen.Select(sqlgen.C(person, "id")).From(person)
	first := b.MustBuild()
	b.Field(sqlgen.C(person, "age"), "")
	if len(first.Fields) != 1 {
		t.Errorf("built statement changed after builder reuse: %d fields", len(first.Fields))
	}
}

func TestSelect_Subquery(t *testing.T) {
	inner, err := sqlgen.Select(sqlgen.C(person, "id")).From(person).As("q")
	if err != nil {
		t.Fatal(err)
	}
	q := sqlgen.T("q", "q")
	sql, err := sqlgen.Select(sqlgen.C(q, "id")).From(inner).Render(postgres.New())
	if err != nil {
		t.Fatal(err)
	}
	sqltest.AssertSQL(t, `SELECT q."id" FROM (SELECT t1."id" FROM "Person" t1) q;`, sql)
}

func TestUnion(t *testing.T) {
	branch := func(name string) sqlgen.SelectFrom {
		tbl := sqlgen.T(name)
		return sqlgen.Select(sqlgen.C(tbl, "name"), sqlgen.C(tbl, "age")).From(tbl).MustBuild()
	}

	sql, err := postgres.New().Render(sqlgen.UnionOf(branch("User1"), branch("User2")))
	if err != nil {
		t.Fatal(err)
	}
	sqltest.AssertSQL(t, `SELECT "name","age" FROM "User1" UNION SELECT "name","age" FROM "User2";`, sql)

	sql, err = postgres.New().Render(sqlgen.UnionAllOf(branch("A"), branch("B"), branch("C")))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(sql, " UNION ALL ") != 2 {
		t.Errorf("expected two UNION ALL separators: %s", sql)
	}
}

func TestUnion_ArityMismatch(t *testing.T) {
	a := sqlgen.Select(sqlgen.Int(1)).From(sqlgen.T("A")).MustBuild()
	b := sqlgen.Select(sqlgen.Int(1), sqlgen.Int(2)).From(sqlgen.T("B")).MustBuild()
	_, err := sqlgen.Validate(sqlgen.UnionOf(a, b))
	sqltest.AssertErrorContains(t, err, "UNION branch 1 has 2 fields")
}

func TestInsert_Upsert(t *testing.T) {
	tbl := sqlgen.T("T")
	sql, err := sqlgen.InsertInto(tbl, sqlgen.Col("a", sqlgen.Text), sqlgen.PrimaryKey(sqlgen.Col("id", sqlgen.Int64))).
		OnConflictReplace().
		Render(postgres.New())
	if err != nil {
		t.Fatal(err)
	}
	sqltest.AssertSQL(t, `INSERT INTO "T" ("a","id") VALUES ($1,$2) ON CONFLICT (id) DO UPDATE SET a=excluded.a;`, sql)

	sql, err = sqlgen.InsertInto(tbl, sqlgen.Col("a", sqlgen.Text), sqlgen.PrimaryKey(sqlgen.Col("id", sqlgen.Int64))).
		OnConflictReplace().
		Render(mysql.New())
	if err != nil {
		t.Fatal(err)
	}
	sqltest.AssertSQL(t, "INSERT INTO `T` (`a`,`id`) VALUES (?,?) ON DUPLICATE KEY UPDATE `a`=VALUES(`a`);", sql)
}

func TestInsert_ReplaceNeedsKey(t *testing.T) {
	_, err := sqlgen.InsertInto(sqlgen.T("T"), sqlgen.Col("a", sqlgen.Text)).OnConflictReplace().Build()
	sqltest.AssertErrorContains(t, err, "needs a primary key")
}

func TestInsert_Returning(t *testing.T) {
	id := sqlgen.AutoIncrement(sqlgen.Col("id", sqlgen.Int64))
	name := sqlgen.Col("name", sqlgen.Text)

	sql, err := sqlgen.InsertInto(sqlgen.T("T"), name).Returning(id).Render(sqlite.New())
	if err != nil {
		t.Fatal(err)
	}
	sqltest.AssertSQL(t, `INSERT INTO "T" ("name") VALUES (?) RETURNING "id";`, sql)

	_, err = sqlgen.InsertInto(sqlgen.T("T"), name).Returning(name).Build()
	sqltest.AssertErrorContains(t, err, "not an auto-incrementing primary key")

	if _, err := sqlgen.InsertInto(sqlgen.T("T"), name).ReturningAny(name).Build(); err != nil {
		t.Errorf("ReturningAny() error = %v", err)
	}

	_, err = sqlgen.InsertInto(sqlgen.T("T"), name).Returning(id).Render(mysql.New())
	var unsupported sqlgen.UnsupportedFeatureError
	if !errors.As(err, &unsupported) {
		t.Errorf("mysql RETURNING error = %v, want UnsupportedFeatureError", err)
	}
}

func TestUpdate(t *testing.T) {
	tbl := sqlgen.T("Person")
	age := sqlgen.Col("age", sqlgen.Int32)
	sql, err := sqlgen.UpdateTable(tbl).
		Set(age, sqlgen.Plus(age, sqlgen.Int(1))).
		Where(sqlgen.Equal(sqlgen.Col("last_name", sqlgen.Text), sqlgen.Str("O'Brien"))).
		Render(postgres.New())
	if err != nil {
		t.Fatal(err)
	}
	sqltest.AssertSQL(t, `UPDATE "Person" SET "age" = ("age") + (1) WHERE "last_name" = 'O''Brien';`, sql)

	_, err = sqlgen.UpdateTable(tbl).Set(age, sqlgen.Int(1)).Set(age, sqlgen.Int(2)).Build()
	sqltest.AssertErrorContains(t, err, "assigned twice")
}

func TestDelete(t *testing.T) {
	sql, err := sqlgen.DeleteFrom(sqlgen.T("Pet")).
		Where(sqlgen.InInts(sqlgen.Col("id", sqlgen.Int64), 1, 2, 3)).
		Where(sqlgen.NotLike(sqlgen.Col("name", sqlgen.Text), "x%")).
		Render(postgres.New())
	if err != nil {
		t.Fatal(err)
	}
	sqltest.AssertSQL(t, `DELETE FROM "Pet" WHERE ("id" IN (1, 2, 3)) AND ("name" NOT LIKE 'x%');`, sql)
}

func TestCreateTable(t *testing.T) {
	stmt := sqlgen.CreateTableIfNotExists(sqlgen.T("Person"),
		sqlgen.PrimaryKey(sqlgen.Col("id", sqlgen.Int32)),
		sqlgen.Col("first_name", sqlgen.Text),
	)
	sqltest.AssertRender(t, postgres.New(), stmt,
		`CREATE TABLE IF NOT EXISTS "Person" ("id" INTEGER NOT NULL, "first_name" TEXT NOT NULL, PRIMARY KEY ("id"));`)
}

func TestCreateIndexAndDrop(t *testing.T) {
	tbl := sqlgen.T("Pet")
	sqltest.AssertRender(t, sqlite.New(), sqlgen.CreateUniqueIndexOn("pet_name", tbl, "owner_id", "name"),
		`CREATE UNIQUE INDEX "pet_name" ON "Pet" ("owner_id", "name");`)
	sqltest.AssertRender(t, sqlite.New(), sqlgen.DropTable(tbl), `DROP TABLE IF EXISTS "Pet";`)
	sqltest.AssertRender(t, postgres.New(), sqlgen.DropObject(sqlgen.ObjectView, sqlgen.T("v"), false, true), `DROP VIEW "v" CASCADE;`)
}

func TestCreateAsSelect(t *testing.T) {
	q := sqlgen.Select(sqlgen.C(person, "id")).From(person).MustBuild()
	sqltest.AssertRender(t, postgres.New(), sqlgen.CreateAsSelect(sqlgen.ObjectMaterializedView, sqlgen.T("ids"), q),
		`CREATE MATERIALIZED VIEW "ids" AS SELECT t1."id" FROM "Person" t1;`)
	sqltest.AssertUnsupported(t, sqlite.New(), sqlgen.CreateAsSelect(sqlgen.ObjectMaterializedView, sqlgen.T("ids"), q), "MATERIALIZED VIEW")
}

func TestWriteInto(t *testing.T) {
	w := sqlgen.WriteInto(sqlgen.T("T"), sqlgen.Col("a", sqlgen.Text), sqlgen.Col("b", sqlgen.Int64))
	sqltest.AssertRender(t, postgres.New(), w,
		"COPY \"public\".\"T\"(\"a\",\"b\") FROM STDIN WITH DELIMITER '\t' NULL '\a' CSV QUOTE '\b';")
	sqltest.AssertRender(t, sqlite.New(), w, `INSERT INTO "T" ("a","b") VALUES (?,?);`)
}

func TestRenderDeterministic(t *testing.T) {
	build := func() sqlgen.SelectFrom {
		return sqlgen.Select(sqlgen.Minus(sqlgen.C(person, "age"), sqlgen.Int(1), sqlgen.Int(2))).From(person).MustBuild()
	}
	r := postgres.New()
	a, err := r.Render(build())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := r.Render(build())
	if a != b {
		t.Errorf("structurally equal statements rendered differently:\n%s\n%s", a, b)
	}
	sqltest.AssertSQL(t, `SELECT ((t1."age") - (1)) - (2) FROM "Person" t1;`, a)
}
