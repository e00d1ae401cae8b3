// Package sqldb implements db.Driver on top of database/sql. The mysql,
// sqlite, mssql and duckdb backends are thin configurations of it.
//
// A Driver pins one *sql.Conn for its whole life: session state such as the
// last generated key or an open transaction belongs to that connection, not
// to the database/sql pool.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// ExecQuerier is what *sql.Conn and *sql.Tx have in common.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// BulkFunc opens a bulk channel for w on d, replacing the prepared INSERT
// path.
type BulkFunc func(ctx context.Context, d *Driver, w types.Write, sql string) (db.BulkChannel, error)

// Driver is a db.Driver over a dedicated database/sql connection.
type Driver struct {
	db       *shared
	conn     *sql.Conn
	tx       *sql.Tx
	renderer *render.Renderer
	target   codec.Target
	bulk     BulkFunc
	stmt     StatementBulk
}

// Option configures a Driver.
type Option func(*Driver)

// WithTarget sets the cell representation. The default is codec.Text.
func WithTarget(t codec.Target) Option {
	return func(d *Driver) { d.target = t }
}

// WithBulk replaces the bulk path.
func WithBulk(f BulkFunc) Option {
	return func(d *Driver) { d.bulk = f }
}

// WithStatementBulk customizes the prepared statement bulk path.
func WithStatementBulk(s StatementBulk) Option {
	return func(d *Driver) { d.stmt = s }
}

// shared closes the database handle with the last Driver pinned to it.
type shared struct {
	*sql.DB
	refs atomic.Int32
}

func (s *shared) release() error {
	if s.refs.Add(-1) == 0 {
		return s.Close()
	}
	return nil
}

// Open pins a connection of sqlDB. The Driver owns sqlDB and closes it.
func Open(ctx context.Context, sqlDB *sql.DB, r *render.Renderer, opts ...Option) (*Driver, error) {
	ds, err := OpenN(ctx, sqlDB, r, 1, opts...)
	if err != nil {
		return nil, err
	}
	return ds[0], nil
}

// OpenN pins n connections of sqlDB. The drivers share sqlDB and the last
// one closed closes it. On error nothing stays open.
func OpenN(ctx context.Context, sqlDB *sql.DB, r *render.Renderer, n int, opts ...Option) ([]*Driver, error) {
	if n <= 0 {
		return nil, errors.Join(fmt.Errorf("%s: need at least one connection, got %d", r.Dialect(), n), sqlDB.Close())
	}
	sqlDB.SetMaxIdleConns(n)
	handle := &shared{DB: sqlDB}
	handle.refs.Store(int32(n))
	drivers := make([]*Driver, 0, n)
	for range n {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			errs := []error{fmt.Errorf("%s: connect: %w", r.Dialect(), err)}
			for _, d := range drivers {
				errs = append(errs, d.conn.Close())
			}
			return nil, errors.Join(append(errs, sqlDB.Close())...)
		}
		d := &Driver{db: handle, conn: conn, renderer: r, target: codec.Text}
		for _, opt := range opts {
			opt(d)
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

// Conn returns the pinned connection.
func (d *Driver) Conn() *sql.Conn { return d.conn }

// InTx reports whether a transaction is open on the connection.
func (d *Driver) InTx() bool { return d.tx != nil }

// ExecQuerier returns the open transaction, or the connection outside one.
func (d *Driver) ExecQuerier() ExecQuerier {
	if d.tx != nil {
		return d.tx
	}
	return d.conn
}

func (d *Driver) Renderer() *render.Renderer { return d.renderer }
func (d *Driver) Target() codec.Target       { return d.target }

func (d *Driver) Exec(ctx context.Context, query string, args ...any) error {
	_, err := d.ExecQuerier().ExecContext(ctx, query, args...)
	return err
}

func (d *Driver) Query(ctx context.Context, query string, args ...any) (db.Cursor, error) {
	rows, err := d.ExecQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Join(err, rows.Close())
	}
	return &cursor{rows: rows, width: len(cols)}, nil
}

func (d *Driver) Begin(ctx context.Context) error {
	if d.tx != nil {
		return fmt.Errorf("%s: transaction already open", d.renderer.Dialect())
	}
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	d.tx = tx
	return nil
}

func (d *Driver) Commit(context.Context) error {
	if d.tx == nil {
		return fmt.Errorf("%s: no transaction to commit", d.renderer.Dialect())
	}
	tx := d.tx
	d.tx = nil
	return tx.Commit()
}

func (d *Driver) Rollback(context.Context) error {
	if d.tx == nil {
		return fmt.Errorf("%s: no transaction to roll back", d.renderer.Dialect())
	}
	tx := d.tx
	d.tx = nil
	return tx.Rollback()
}

func (d *Driver) OpenBulk(ctx context.Context, w types.Write, query string) (db.BulkChannel, error) {
	if d.bulk != nil {
		return d.bulk(ctx, d, w, query)
	}
	return openStatementBulk(ctx, d, w, query)
}

// Close releases the connection, and the database handle with the last
// driver sharing it.
func (d *Driver) Close() error {
	var errs []error
	if d.tx != nil {
		errs = append(errs, d.tx.Rollback())
		d.tx = nil
	}
	errs = append(errs, d.conn.Close(), d.db.release())
	return errors.Join(errs...)
}

var _ db.Driver = (*Driver)(nil)
