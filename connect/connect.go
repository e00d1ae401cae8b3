// Package connect opens a connection pool from a configuration.
package connect

import (
	"context"
	"errors"
	"fmt"

	"github.com/zoobzio/sqlgen/config"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/db/duckdb"
	"github.com/zoobzio/sqlgen/db/mssql"
	"github.com/zoobzio/sqlgen/db/mysql"
	"github.com/zoobzio/sqlgen/db/postgres"
	"github.com/zoobzio/sqlgen/db/sqldb"
	"github.com/zoobzio/sqlgen/db/sqlite"
)

type openFunc func(ctx context.Context, dsn string, n int) ([]db.Driver, error)

var openers = map[string]openFunc{
	"postgres": openPostgres,
	"mysql":    sqlOpener(mysql.OpenN),
	"sqlite":   sqlOpener(sqlite.OpenN),
	"mssql":    sqlOpener(mssql.OpenN),
	"duckdb":   sqlOpener(duckdb.OpenN),
}

// Open validates cfg and opens PoolSize connections of the configured
// backend. Either every connection opens or none stays open.
func Open(ctx context.Context, cfg config.Config) (*db.Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	open, ok := openers[cfg.Dialect]
	if !ok {
		return nil, fmt.Errorf("connect: no backend for %s", cfg.Dialect)
	}
	log := cfg.Logger()
	drivers, err := open(ctx, cfg.DSN, cfg.PoolSize)
	if err != nil {
		return nil, err
	}
	conns := make([]*db.Conn, len(drivers))
	for i, d := range drivers {
		conns[i] = db.New(d, db.WithLogger(log), db.WithBatchSize(cfg.BatchSize))
	}
	log.Info("pool opened", "dialect", cfg.Dialect, "size", len(conns))
	return db.NewPool(conns, db.WithLogger(log)), nil
}

func sqlOpener(f func(ctx context.Context, dsn string, n int, opts ...sqldb.Option) ([]*sqldb.Driver, error)) openFunc {
	return func(ctx context.Context, dsn string, n int) ([]db.Driver, error) {
		ds, err := f(ctx, dsn, n)
		if err != nil {
			return nil, err
		}
		out := make([]db.Driver, len(ds))
		for i, d := range ds {
			out[i] = d
		}
		return out, nil
	}
}

func openPostgres(ctx context.Context, dsn string, n int) ([]db.Driver, error) {
	out := make([]db.Driver, 0, n)
	for range n {
		d, err := postgres.Open(ctx, dsn)
		if err != nil {
			errs := []error{err}
			for _, opened := range out {
				errs = append(errs, opened.Close())
			}
			return nil, errors.Join(errs...)
		}
		out = append(out, d)
	}
	return out, nil
}
