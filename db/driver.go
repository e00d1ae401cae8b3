package db

import (
	"context"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Driver is the native client behind a Conn. The backend packages implement
// it; Conn adds the statement rendering, the write protocol and the
// transaction bookkeeping on top. A Driver is used by one caller at a time.
type Driver interface {
	// Renderer renders statements for the driver's dialect.
	Renderer() *render.Renderer
	// Target is the cell representation the driver exchanges.
	Target() codec.Target
	// Exec runs sql without reading rows.
	Exec(ctx context.Context, sql string, args ...any) error
	// Query runs sql and returns a cursor over its rows.
	Query(ctx context.Context, sql string, args ...any) (Cursor, error)
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	// OpenBulk opens the bulk-load channel for w. sql is w rendered for the
	// dialect: a COPY statement or a prepared INSERT template.
	OpenBulk(ctx context.Context, w types.Write, sql string) (BulkChannel, error)
	Close() error
}

// Cursor fetches query results in batches.
type Cursor interface {
	// Fetch returns up to n rows. An empty batch means the cursor is done.
	Fetch(n int) ([]codec.Row, error)
	Close() error
}

// BulkChannel streams rows into one table.
type BulkChannel interface {
	Send(ctx context.Context, rows []codec.Row) error
	// Commit finalizes the load.
	Commit(ctx context.Context) error
	// Abort discards whatever the channel has not committed.
	Abort(ctx context.Context) error
}
