// Package postgres connects to PostgreSQL through pgx. Bulk writes stream
// rows over COPY FROM STDIN.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
	dialect "github.com/zoobzio/sqlgen/postgres"
)

// Driver is a db.Driver over one pgx connection.
type Driver struct {
	conn     *pgx.Conn
	tx       pgx.Tx
	renderer *render.Renderer
	copyFrom copyFunc
}

// Open connects with a libpq style DSN or URL.
func Open(ctx context.Context, dsn string) (*Driver, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	return New(conn), nil
}

// New wraps an established connection. The Driver owns conn.
func New(conn *pgx.Conn) *Driver {
	return &Driver{conn: conn, renderer: dialect.New(), copyFrom: conn.PgConn().CopyFrom}
}

// PgxConn returns the underlying connection.
func (d *Driver) PgxConn() *pgx.Conn { return d.conn }

func (d *Driver) Renderer() *render.Renderer { return d.renderer }

// Target is Text: string parameters are sent in text format for any column
// type and the server parses them.
func (d *Driver) Target() codec.Target { return codec.Text }

func (d *Driver) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := d.conn.Exec(ctx, sql, args...)
	return err
}

func (d *Driver) Query(ctx context.Context, sql string, args ...any) (db.Cursor, error) {
	rows, err := d.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &cursor{rows: rows}, nil
}

func (d *Driver) Begin(ctx context.Context) error {
	if d.tx != nil {
		return fmt.Errorf("postgres: transaction already open")
	}
	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return err
	}
	d.tx = tx
	return nil
}

func (d *Driver) Commit(ctx context.Context) error {
	if d.tx == nil {
		return fmt.Errorf("postgres: no transaction to commit")
	}
	tx := d.tx
	d.tx = nil
	return tx.Commit(ctx)
}

func (d *Driver) Rollback(ctx context.Context) error {
	if d.tx == nil {
		return fmt.Errorf("postgres: no transaction to roll back")
	}
	tx := d.tx
	d.tx = nil
	return tx.Rollback(ctx)
}

// OpenBulk starts COPY FROM STDIN. ctx bounds the whole load, not just the
// call.
func (d *Driver) OpenBulk(ctx context.Context, _ types.Write, sql string) (db.BulkChannel, error) {
	return openCopy(ctx, d.copyFrom, sql), nil
}

func (d *Driver) Close() error {
	return d.conn.Close(context.Background())
}

var _ db.Driver = (*Driver)(nil)

type cursor struct {
	rows pgx.Rows
}

func (c *cursor) Fetch(n int) ([]codec.Row, error) {
	var out []codec.Row
	for len(out) < n {
		if !c.rows.Next() {
			return out, c.rows.Err()
		}
		values, err := c.rows.Values()
		if err != nil {
			return nil, err
		}
		out = append(out, codec.Row(values))
	}
	return out, nil
}

func (c *cursor) Close() error {
	c.rows.Close()
	return c.rows.Err()
}
