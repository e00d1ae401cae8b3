package postgres

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/internal/types"
	dialect "github.com/zoobzio/sqlgen/postgres"
	sqltest "github.com/zoobzio/sqlgen/testing"
)

func TestEncodeRow(t *testing.T) {
	tests := []struct {
		name string
		row  codec.Row
		want string
	}{
		{"plain", codec.Row{"1", "Rex"}, "\b1\b\t\bRex\b\n"},
		{"null", codec.Row{"1", nil}, "\b1\b\t\a\n"},
		{"empty string is not null", codec.Row{""}, "\b\b\n"},
		{"separators inside values", codec.Row{"a\tb\nc"}, "\ba\tb\nc\b\n"},
		{"quote doubled", codec.Row{"x\by"}, "\bx\b\by\b\n"},
		{"bytes", codec.Row{[]byte("raw")}, "\braw\b\n"},
		{"other values", codec.Row{int64(7), true}, "\b7\b\t\btrue\b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			EncodeRow(&buf, tt.row)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

var petWrite = types.Write{Table: types.Table{Name: "Pet"}, Columns: sqltest.PetColumns()}

// drainThen reads the whole COPY stream and then returns err, the way the
// server reports a constraint violation at CopyDone.
func drainThen(err error, got *bytes.Buffer) copyFunc {
	return func(_ context.Context, r io.Reader, _ string) (pgconn.CommandTag, error) {
		if _, rerr := io.Copy(got, r); rerr != nil {
			return pgconn.CommandTag{}, rerr
		}
		return pgconn.CommandTag{}, err
	}
}

func endWrite(t *testing.T, conn *db.Conn) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- conn.EndWrite(context.Background()) }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("EndWrite did not return")
		return nil
	}
}

func TestCopy_Commit(t *testing.T) {
	var got bytes.Buffer
	conn := db.New(&Driver{renderer: dialect.New(), copyFrom: drainThen(nil, &got)})
	ctx := context.Background()

	require.NoError(t, conn.StartWrite(ctx, petWrite))
	require.NoError(t, conn.Write(ctx, []codec.Row{{"1", "2", "rex"}}))
	require.NoError(t, endWrite(t, conn))
	assert.Equal(t, db.Idle, conn.WriteState())
	assert.Equal(t, "\b1\b\t\b2\b\t\brex\b\n", got.String())
}

func TestCopy_FailureAtCommit(t *testing.T) {
	violation := errors.New(`duplicate key value violates unique constraint "Pet_pkey"`)
	var got bytes.Buffer
	conn := db.New(&Driver{renderer: dialect.New(), copyFrom: drainThen(violation, &got)})
	ctx := context.Background()

	require.NoError(t, conn.StartWrite(ctx, petWrite))
	require.NoError(t, conn.Write(ctx, []codec.Row{{"1", "2", "rex"}}))

	err := endWrite(t, conn)
	require.ErrorIs(t, err, violation)
	var be db.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "end write", be.Op)
	assert.Equal(t, db.Idle, conn.WriteState())
}

func TestCopy_Abort(t *testing.T) {
	var got bytes.Buffer
	ch := openCopy(context.Background(), drainThen(nil, &got), "COPY")
	require.NoError(t, ch.Send(context.Background(), []codec.Row{{"1"}}))
	require.NoError(t, ch.Abort(context.Background()))
	require.ErrorIs(t, ch.err, errAborted)
	require.NoError(t, ch.Abort(context.Background()), "a second abort returns at once")
}
