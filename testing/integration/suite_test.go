//go:build integration

package integration

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/zoobzio/sqlgen"
	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/schema"
)

type Person struct {
	ID        int64
	FirstName string
	LastName  string
	Age       *int32
	Born      *time.Time
}

var people = schema.New("Person",
	schema.Field("id", codec.PrimaryKey(codec.Int64(), true), func(p *Person) *int64 { return &p.ID }),
	schema.Field("first_name", codec.VarChar(codec.String(), 64), func(p *Person) *string { return &p.FirstName }),
	schema.Field("last_name", codec.VarChar(codec.String(), 64), func(p *Person) *string { return &p.LastName }),
	schema.Field("age", codec.Optional(codec.Int32()), func(p *Person) **int32 { return &p.Age }),
	schema.Field("born", codec.Optional(codec.Timestamp("%Y-%m-%d %H:%M:%S")), func(p *Person) **time.Time { return &p.Born }),
)

type Pet struct {
	ID      int64
	OwnerID int64
	Name    string
}

var pets = schema.New("Pet",
	schema.Field("id", codec.PrimaryKey(codec.Int64(), false), func(p *Pet) *int64 { return &p.ID }),
	schema.Field("owner_id", codec.Int64(), func(p *Pet) *int64 { return &p.OwnerID }),
	schema.Field("name", codec.Unique(codec.VarChar(codec.String(), 64)), func(p *Pet) *string { return &p.Name }),
)

func ptr[T any](v T) *T { return &v }

// openWithRetry keeps trying while the server finishes starting.
func openWithRetry(t *testing.T, open func() (db.Driver, error)) *db.Conn {
	t.Helper()
	var err error
	for range 30 {
		var d db.Driver
		if d, err = open(); err == nil {
			conn := db.New(d, db.WithBatchSize(2))
			t.Cleanup(func() { _ = conn.Close() })
			return conn
		}
		time.Sleep(time.Second)
	}
	t.Fatalf("Failed to connect: %v", err)
	return nil
}

func resetTables(ctx context.Context, t *testing.T, conn *db.Conn) {
	t.Helper()
	for _, stmt := range []sqlgen.Statement{pets.Drop(), people.Drop(), people.CreateTable(), pets.CreateTable()} {
		if err := conn.Exec(ctx, stmt); err != nil {
			sql, _ := conn.Render(stmt)
			t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
		}
	}
}

// runSuite exercises one backend end to end. Conflict policies are only
// checked where the dialect supports them.
func runSuite(t *testing.T, conn *db.Conn, policies bool) {
	ctx := context.Background()

	t.Run("empty read", func(t *testing.T) {
		resetTables(ctx, t, conn)
		got, err := db.ReadAll(ctx, conn, people)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("ReadAll() = %#v, want empty slice", got)
		}
	})

	t.Run("generated keys", func(t *testing.T) {
		resetTables(ctx, t, conn)
		born := time.Date(1990, time.May, 17, 8, 30, 0, 0, time.UTC)
		in := []Person{
			{FirstName: "Ann", LastName: "Lee", Age: ptr(int32(34)), Born: &born},
			{FirstName: "Bob", LastName: "Ray"},
			{FirstName: "Cy", LastName: "Oh", Age: ptr(int32(7))},
		}
		if err := db.InsertAll(ctx, conn, people, sqlgen.ConflictNone, in); err != nil {
			t.Fatalf("InsertAll() error = %v", err)
		}
		ids := []int64{in[0].ID, in[1].ID, in[2].ID}
		if !slices.Equal(ids, []int64{1, 2, 3}) {
			t.Errorf("ids = %v, want [1 2 3]", ids)
		}
		got, err := db.ReadAll(ctx, conn, people)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		slices.SortFunc(got, func(a, b Person) int { return int(a.ID - b.ID) })
		if len(got) != 3 || !got[0].Born.Equal(born) || *got[0].Age != 34 || got[1].Age != nil || got[2].LastName != "Oh" {
			t.Errorf("ReadAll() = %+v", got)
		}
	})

	if policies {
		t.Run("conflict policies", func(t *testing.T) {
			resetTables(ctx, t, conn)
			in := []Pet{{1, 1, "Rex"}, {2, 1, "Tom"}}
			for range 2 {
				if err := db.InsertAll(ctx, conn, pets, sqlgen.ConflictIgnore, in); err != nil {
					t.Fatalf("InsertAll(ignore) error = %v", err)
				}
			}
			for range 2 {
				if err := db.InsertAll(ctx, conn, pets, sqlgen.ConflictReplace, []Pet{{2, 3, "Tim"}}); err != nil {
					t.Fatalf("InsertAll(replace) error = %v", err)
				}
			}
			got, err := db.ReadAll(ctx, conn, pets)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			slices.SortFunc(got, func(a, b Pet) int { return int(a.ID - b.ID) })
			want := []Pet{{1, 1, "Rex"}, {2, 3, "Tim"}}
			if !slices.Equal(got, want) {
				t.Errorf("pets = %v, want %v", got, want)
			}
		})
	}

	t.Run("union", func(t *testing.T) {
		resetTables(ctx, t, conn)
		in := []Person{{FirstName: "Ann", LastName: "Lee"}, {FirstName: "Bob", LastName: "Ray"}, {FirstName: "Cy", LastName: "Oh"}}
		if err := db.InsertAll(ctx, conn, people, sqlgen.ConflictNone, in); err != nil {
			t.Fatalf("InsertAll() error = %v", err)
		}
		person := sqlgen.T("Person")
		first := sqlgen.C(person, "first_name")
		branch := func(name string) sqlgen.SelectFrom {
			return sqlgen.Select(first).From(person).Where(sqlgen.Equal(first, sqlgen.Str(name))).MustBuild()
		}
		rows, err := conn.Read(ctx, sqlgen.UnionOf(branch("Ann"), branch("Bob"), branch("Cy")))
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		got, err := rows.Collect()
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		names := make([]string, len(got))
		for i, row := range got {
			names[i], err = codec.String().Decode(conn.Target(), row[0])
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
		}
		slices.Sort(names)
		if !slices.Equal(names, []string{"Ann", "Bob", "Cy"}) {
			t.Errorf("union = %v", names)
		}
	})

	t.Run("bulk write", func(t *testing.T) {
		resetTables(ctx, t, conn)
		in := []Pet{{1, 1, "Rex"}, {2, 1, "Tom"}, {3, 2, "Ada"}, {4, 2, "Kit"}, {5, 3, "Max"}}
		if err := db.WriteAll(ctx, conn, pets, in); err != nil {
			t.Fatalf("WriteAll() error = %v", err)
		}
		got, err := db.ReadAll(ctx, conn, pets)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(got) != len(in) {
			t.Errorf("read %d pets, want %d", len(got), len(in))
		}
	})

	t.Run("aborted bulk write", func(t *testing.T) {
		resetTables(ctx, t, conn)
		if err := conn.StartWrite(ctx, pets.Write()); err != nil {
			t.Fatalf("StartWrite() error = %v", err)
		}
		row := pets.Encode(conn.Target(), &Pet{1, 1, "Rex"})
		if err := conn.Write(ctx, []codec.Row{row, {"short"}}); err == nil {
			t.Fatal("Write() with a short row succeeded")
		}
		if conn.WriteState() != db.Idle {
			t.Errorf("WriteState() = %v, want Idle", conn.WriteState())
		}
		got, err := db.ReadAll(ctx, conn, pets)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("aborted load left %v", got)
		}
	})

	t.Run("transaction rollback", func(t *testing.T) {
		resetTables(ctx, t, conn)
		tx, err := conn.Begin(ctx)
		if err != nil {
			t.Fatalf("Begin() error = %v", err)
		}
		if err := db.InsertAll(ctx, conn, pets, sqlgen.ConflictNone, []Pet{{1, 1, "Rex"}}); err != nil {
			t.Fatalf("InsertAll() error = %v", err)
		}
		if err := tx.Rollback(ctx); err != nil {
			t.Fatalf("Rollback() error = %v", err)
		}
		got, err := db.ReadAll(ctx, conn, pets)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("rolled back insert left %v", got)
		}
	})
}
