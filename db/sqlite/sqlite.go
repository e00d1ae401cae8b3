// Package sqlite connects to SQLite through the pure Go modernc.org/sqlite
// driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/zoobzio/sqlgen/db/sqldb"
	"github.com/zoobzio/sqlgen/sqlite"
)

// DriverName is the database/sql name of the driver.
const DriverName = "sqlite"

// Open connects to the database at dsn, a file path or ":memory:".
func Open(ctx context.Context, dsn string, opts ...sqldb.Option) (*sqldb.Driver, error) {
	sqlDB, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	return sqldb.Open(ctx, sqlDB, sqlite.New(), opts...)
}

// OpenN opens n connections to the database at dsn. Every connection to
// ":memory:" is a database of its own; use "file::memory:?cache=shared" to
// share one.
func OpenN(ctx context.Context, dsn string, n int, opts ...sqldb.Option) ([]*sqldb.Driver, error) {
	sqlDB, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	return sqldb.OpenN(ctx, sqlDB, sqlite.New(), n, opts...)
}
