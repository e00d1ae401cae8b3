// Package duckdb connects to an embedded DuckDB database. Cells are
// exchanged as native Go values and bulk writes go through the appender.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/duckdb/duckdb-go/v2"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/db/sqldb"
	dialect "github.com/zoobzio/sqlgen/duckdb"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Open opens the database file at dsn, or an in-memory database when dsn is
// empty.
func Open(ctx context.Context, dsn string, opts ...sqldb.Option) (*sqldb.Driver, error) {
	ds, err := OpenN(ctx, dsn, 1, opts...)
	if err != nil {
		return nil, err
	}
	return ds[0], nil
}

// OpenN opens n connections to one database instance, so an in-memory
// database is shared between them.
func OpenN(ctx context.Context, dsn string, n int, opts ...sqldb.Option) ([]*sqldb.Driver, error) {
	connector, err := duckdb.NewConnector(dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("duckdb: %w", err)
	}
	opts = append([]sqldb.Option{sqldb.WithTarget(codec.Native), sqldb.WithBulk(openAppender)}, opts...)
	return sqldb.OpenN(ctx, sql.OpenDB(connector), dialect.New(), n, opts...)
}

// appender loads rows through the DuckDB appender. Outside a transaction it
// opens one, so an abort discards the rows already flushed.
type appender struct {
	d     *sqldb.Driver
	app   *duckdb.Appender
	owned bool
}

func openAppender(ctx context.Context, d *sqldb.Driver, w types.Write, _ string) (db.BulkChannel, error) {
	a := &appender{d: d}
	if !d.InTx() {
		if err := d.Begin(ctx); err != nil {
			return nil, err
		}
		a.owned = true
	}
	err := d.Conn().Raw(func(raw any) error {
		conn, ok := raw.(driver.Conn)
		if !ok {
			return fmt.Errorf("duckdb: unexpected connection type %T", raw)
		}
		app, err := duckdb.NewAppenderFromConn(conn, w.Table.Schema, w.Table.Name)
		a.app = app
		return err
	})
	if err != nil {
		return nil, errors.Join(err, a.rollback(ctx))
	}
	return a, nil
}

func (a *appender) Send(_ context.Context, rows []codec.Row) error {
	for _, row := range rows {
		values := make([]driver.Value, len(row))
		for i, cell := range row {
			values[i] = cell
		}
		if err := a.app.AppendRow(values...); err != nil {
			return err
		}
	}
	return nil
}

func (a *appender) Commit(ctx context.Context) error {
	if err := a.app.Close(); err != nil {
		return err
	}
	if a.owned {
		a.owned = false
		return a.d.Commit(ctx)
	}
	return nil
}

func (a *appender) Abort(ctx context.Context) error {
	return errors.Join(a.app.Close(), a.rollback(ctx))
}

func (a *appender) rollback(ctx context.Context) error {
	if !a.owned {
		return nil
	}
	a.owned = false
	return a.d.Rollback(ctx)
}
