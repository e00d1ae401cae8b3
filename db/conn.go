// Package db runs statements against a database backend.
//
// A Conn wraps one native client connection (a Driver from one of the
// backend packages) and adds statement rendering, batched reads, the bulk
// write protocol and explicit transactions. A Conn serves one caller at a
// time; share connections through a Pool:
//
//	pool := db.NewPool(conns)
//	err := pool.With(func(c *db.Conn) error {
//		people, err := db.ReadAll(ctx, c, personModel)
//		...
//	})
package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
)

// Conn is one session with a database. It is not safe for concurrent use.
type Conn struct {
	driver   Driver
	renderer *render.Renderer
	log      *slog.Logger
	batch    int
	writer   writer
	tx       TxState
	stats    Stats
}

// New wraps d.
func New(d Driver, opts ...Option) *Conn {
	o := buildOptions(opts)
	r := d.Renderer()
	return &Conn{
		driver:   d,
		renderer: r,
		log:      o.logger.With("dialect", r.Dialect()),
		batch:    o.batchSize,
	}
}

// Dialect returns the dialect name.
func (c *Conn) Dialect() string {
	return c.renderer.Dialect()
}

// Renderer returns the dialect renderer.
func (c *Conn) Renderer() *render.Renderer {
	return c.renderer
}

// Capabilities returns the SQL features of the dialect.
func (c *Conn) Capabilities() render.Capabilities {
	return c.renderer.Capabilities()
}

// Target returns the cell representation the backend exchanges.
func (c *Conn) Target() codec.Target {
	return c.driver.Target()
}

// BatchSize returns the rows fetched or sent per round trip.
func (c *Conn) BatchSize() int {
	return c.batch
}

// Stats returns the connection counters.
func (c *Conn) Stats() StatsSnapshot {
	return c.stats.Snapshot()
}

// InTransaction reports whether an explicit transaction is open.
func (c *Conn) InTransaction() bool {
	return c.tx.Active()
}

// Render renders stmt for the connection's dialect.
func (c *Conn) Render(stmt types.Statement) (string, error) {
	return c.renderer.Render(stmt)
}

// Execute runs raw SQL that returns no rows.
func (c *Conn) Execute(ctx context.Context, sql string, args ...any) error {
	if err := c.idle("execute"); err != nil {
		return err
	}
	c.log.Debug("execute", "sql", sql, "args", len(args))
	c.stats.Execs.Add(1)
	return c.fail(Backend(c.Dialect(), "execute", c.driver.Exec(ctx, sql, args...)))
}

// Exec renders and runs a statement that returns no rows.
func (c *Conn) Exec(ctx context.Context, stmt types.Statement, args ...any) error {
	sql, err := c.Render(stmt)
	if err != nil {
		return err
	}
	return c.Execute(ctx, sql, args...)
}

// Query runs raw SQL and returns its rows. The rows must be drained or
// closed before the connection is used again.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) (*Rows, error) {
	if err := c.idle("read"); err != nil {
		return nil, err
	}
	c.log.Debug("read", "sql", sql, "args", len(args))
	c.stats.Queries.Add(1)
	cursor, err := c.driver.Query(ctx, sql, args...)
	if err != nil {
		return nil, c.fail(Backend(c.Dialect(), "read", err))
	}
	return newRows(c, cursor), nil
}

// Read renders q and returns its rows.
func (c *Conn) Read(ctx context.Context, q types.Query, args ...any) (*Rows, error) {
	sql, err := c.Render(q)
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, sql, args...)
}

// Insert runs a single-row insert with row bound to stmt's columns. It
// returns the RETURNING cells, or nil when stmt returns nothing or the
// conflict policy skipped the row.
func (c *Conn) Insert(ctx context.Context, stmt types.Insert, row codec.Row) (codec.Row, error) {
	if len(row) != len(stmt.Columns) {
		return nil, fmt.Errorf("db: insert into %s binds %d cells for %d columns", stmt.Table.Name, len(row), len(stmt.Columns))
	}
	sql, err := c.Render(stmt)
	if err != nil {
		return nil, err
	}
	if len(stmt.Returning) == 0 {
		return nil, c.Execute(ctx, sql, row...)
	}
	rows, err := c.Query(ctx, sql, row...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if rows.AtEnd() {
		return nil, nil
	}
	return rows.Next()
}

// LastInsertID reads the key generated by the previous single-row insert
// into t on this connection. It is the fallback for dialects whose
// Capabilities report no RETURNING.
func (c *Conn) LastInsertID(ctx context.Context, t types.Table, col types.Column) (any, error) {
	sql, err := c.renderer.LastInsertID(t, col)
	if err != nil {
		return nil, err
	}
	rows, err := c.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	row, err := rows.Next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("db: last insert id returned no row")
	}
	if err != nil {
		return nil, err
	}
	if len(row) != 1 {
		return nil, fmt.Errorf("db: last insert id returned %d cells", len(row))
	}
	return row[0], nil
}

// Close ends the session, aborting an unfinished write and rolling back an
// open transaction first.
func (c *Conn) Close() error {
	c.reset(context.Background())
	return Backend(c.Dialect(), "close", c.driver.Close())
}

// reset returns the connection to a clean state for the next user.
func (c *Conn) reset(ctx context.Context) {
	if c.writer.state == Writing {
		c.log.Warn("aborting unfinished write", "table", c.writer.table)
		c.writer.abort(ctx, c)
	}
	if c.tx.Active() {
		c.log.Warn("rolling back abandoned transaction")
		c.tx.active = false
		if err := c.driver.Rollback(ctx); err != nil {
			c.log.Warn("rollback failed", "error", err)
		}
	}
}

// idle rejects op while a bulk write owns the connection.
func (c *Conn) idle(op string) error {
	if c.writer.state == Writing {
		return ProtocolError{Op: op, State: "writing"}
	}
	return nil
}

func (c *Conn) fail(err error) error {
	if err != nil {
		c.stats.Errors.Add(1)
	}
	return err
}
