package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/internal/types"
	sqltest "github.com/zoobzio/sqlgen/testing"
)

func TestBackendError(t *testing.T) {
	err := db.Backend("postgres", "execute", errBoom)
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, errBoom)

	assert.NoError(t, db.Backend("postgres", "execute", nil))

	again := db.Backend("postgres", "read", err)
	var be db.BackendError
	require.ErrorAs(t, again, &be)
	assert.Equal(t, "execute", be.Op)
}

func TestConn_Execute(t *testing.T) {
	fake := newFake()
	fake.execErr = errBoom
	conn := db.New(fake)
	assert.Equal(t, "sqlite", conn.Dialect())

	err := conn.Exec(context.Background(), types.Drop{What: types.ObjectTable, IfExists: true, Table: types.Table{Name: "Pet"}})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{`exec DROP TABLE IF EXISTS "Pet";`}, fake.events)

	stats := conn.Stats()
	assert.Equal(t, int64(1), stats.Execs)
	assert.Equal(t, int64(1), stats.Errors)
}

func TestConn_ExecRenderError(t *testing.T) {
	fake := newFake()
	err := db.New(fake).Exec(context.Background(), types.Union{})
	var ce types.ConstructionError
	assert.True(t, errors.As(err, &ce))
	assert.Empty(t, fake.events)
}

func TestConn_Insert(t *testing.T) {
	ctx := context.Background()
	person := sqltest.PersonColumns()
	stmt := types.Insert{Table: types.Table{Name: "Person"}, Columns: person[1:3], Returning: person[:1]}

	fake := newFake()
	fake.rows = []codec.Row{{int64(1)}}
	conn := db.New(fake)

	keys, err := conn.Insert(ctx, stmt, codec.Row{"Ann", "Lee"})
	require.NoError(t, err)
	assert.Equal(t, codec.Row{int64(1)}, keys)
	assert.Equal(t, []string{`query INSERT INTO "Person" ("first_name","last_name") VALUES (?,?) RETURNING "id";`}, fake.events)
	assert.Equal(t, 1, fake.cursors[0].closed)

	_, err = conn.Insert(ctx, stmt, codec.Row{"Ann"})
	assert.ErrorContains(t, err, "binds 1 cells for 2 columns")

	stmt.Returning = nil
	keys, err = conn.Insert(ctx, stmt, codec.Row{"Ann", "Lee"})
	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestConn_InsertSkipped(t *testing.T) {
	person := sqltest.PersonColumns()
	stmt := types.Insert{Table: types.Table{Name: "Person"}, Columns: person[1:3], Returning: person[:1], Conflict: types.ConflictIgnore}

	keys, err := db.New(newFake()).Insert(context.Background(), stmt, codec.Row{"Ann", "Lee"})
	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestConn_LastInsertID(t *testing.T) {
	fake := newFake()
	fake.rows = []codec.Row{{int64(42)}}
	conn := db.New(fake)

	id, err := conn.LastInsertID(context.Background(), types.Table{Name: "Person"}, sqltest.PersonColumns()[0])
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, []string{"query SELECT last_insert_rowid();"}, fake.events)

	fake.rows = nil
	_, err = conn.LastInsertID(context.Background(), types.Table{Name: "Person"}, sqltest.PersonColumns()[0])
	assert.ErrorContains(t, err, "returned no row")
}
