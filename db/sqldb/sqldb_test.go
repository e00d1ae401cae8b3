package sqldb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/db/sqldb"
	"github.com/zoobzio/sqlgen/internal/types"
	"github.com/zoobzio/sqlgen/sqlite"
	sqltest "github.com/zoobzio/sqlgen/testing"
)

var errBoom = errors.New("boom")

func open(t *testing.T, opts ...sqldb.Option) (*db.Conn, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	d, err := sqldb.Open(context.Background(), sqlDB, sqlite.New(), opts...)
	require.NoError(t, err)
	return db.New(d, db.WithBatchSize(2)), mock
}

func petWrite() types.Write {
	return types.Write{Table: types.Table{Name: "Pet"}, Columns: sqltest.PetColumns()}
}

const petInsert = `INSERT INTO "Pet" ("id","owner_id","name") VALUES (?,?,?);`

func TestDriver_Query(t *testing.T) {
	conn, mock := open(t)
	mock.ExpectQuery(`SELECT "id","name" FROM "Pet";`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Rex").
			AddRow(int64(2), "Tom").
			AddRow(int64(3), []byte("Ada")))

	rows, err := conn.Query(context.Background(), `SELECT "id","name" FROM "Pet";`)
	require.NoError(t, err)
	got, err := rows.Collect()
	require.NoError(t, err)
	assert.Equal(t, []codec.Row{
		{int64(1), "Rex"},
		{int64(2), "Tom"},
		{int64(3), []byte("Ada")},
	}, got)
	assert.Equal(t, int64(3), conn.Stats().RowsRead)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_QueryError(t *testing.T) {
	conn, mock := open(t)
	mock.ExpectQuery(`SELECT 1;`).WillReturnError(errBoom)

	_, err := conn.Query(context.Background(), `SELECT 1;`)
	var be db.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "sqlite", be.Dialect)
	assert.ErrorIs(t, err, errBoom)
}

func TestDriver_Transaction(t *testing.T) {
	conn, mock := open(t)
	ctx := context.Background()
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "Pet";`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := conn.Transact(ctx, func(ctx context.Context) error {
		return conn.Execute(ctx, `DELETE FROM "Pet";`)
	})
	require.NoError(t, err)

	err = conn.Transact(ctx, func(context.Context) error { return errBoom })
	assert.Equal(t, errBoom, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_Write(t *testing.T) {
	conn, mock := open(t)
	ctx := context.Background()
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(petInsert)
	prep.ExpectExec().WithArgs("1", "1", "Rex").WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("2", "1", "Tom").WillReturnResult(sqlmock.NewResult(2, 1))
	prep.ExpectExec().WithArgs("3", "2", "Ada").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	require.NoError(t, conn.StartWrite(ctx, petWrite()))
	require.NoError(t, conn.Write(ctx, []codec.Row{{"1", "1", "Rex"}, {"2", "1", "Tom"}, {"3", "2", "Ada"}}))
	require.NoError(t, conn.EndWrite(ctx))
	assert.Equal(t, int64(3), conn.Stats().RowsWritten)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_WriteFailureRollsBack(t *testing.T) {
	conn, mock := open(t)
	ctx := context.Background()
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(petInsert)
	prep.ExpectExec().WithArgs("1", "1", "Rex").WillReturnError(errBoom)
	mock.ExpectRollback()

	require.NoError(t, conn.StartWrite(ctx, petWrite()))
	err := conn.Write(ctx, []codec.Row{{"1", "1", "Rex"}})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, db.Idle, conn.WriteState())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_WriteInsideTransaction(t *testing.T) {
	conn, mock := open(t)
	ctx := context.Background()
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(petInsert)
	prep.ExpectExec().WithArgs("1", "1", "Rex").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := conn.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, conn.StartWrite(ctx, petWrite()))
	require.NoError(t, conn.Write(ctx, []codec.Row{{"1", "1", "Rex"}}))
	require.NoError(t, conn.EndWrite(ctx))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_StatementBulk(t *testing.T) {
	bulk := sqldb.StatementBulk{
		Query: func(w types.Write, _ string) string { return "BULK " + w.Table.Name },
		Row: func(_ types.Write, row codec.Row) ([]any, error) {
			return []any{row[2]}, nil
		},
		Flush: true,
	}
	conn, mock := open(t, sqldb.WithStatementBulk(bulk))
	ctx := context.Background()
	mock.ExpectBegin()
	prep := mock.ExpectPrepare("BULK Pet")
	prep.ExpectExec().WithArgs("Rex").WillReturnResult(sqlmock.NewResult(0, 0))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, conn.StartWrite(ctx, petWrite()))
	require.NoError(t, conn.Write(ctx, []codec.Row{{"1", "1", "Rex"}}))
	require.NoError(t, conn.EndWrite(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_Close(t *testing.T) {
	conn, mock := open(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectClose()

	_, err := conn.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, conn.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenN_NeedsConnections(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	_, err = sqldb.OpenN(context.Background(), sqlDB, sqlite.New(), 0)
	assert.ErrorContains(t, err, "need at least one connection")
	require.NoError(t, mock.ExpectationsWereMet())
}
