package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/internal/types"
)

// StatementBulk adapts the prepared statement bulk path to a driver whose
// bulk API is a special prepared statement.
type StatementBulk struct {
	// Query replaces the rendered INSERT template.
	Query func(w types.Write, sql string) string
	// Row converts the cells of one row before they are bound.
	Row func(w types.Write, row codec.Row) ([]any, error)
	// Flush executes the statement once with no arguments before it is
	// closed on commit.
	Flush bool
}

// statementBulk executes one prepared statement per row. Without an outer
// transaction the load runs in its own, so an abort discards every row.
type statementBulk struct {
	d     *Driver
	w     types.Write
	conf  StatementBulk
	stmt  *sql.Stmt
	owned bool
}

func openStatementBulk(ctx context.Context, d *Driver, w types.Write, query string) (db.BulkChannel, error) {
	b := &statementBulk{d: d, w: w, conf: d.stmt}
	if b.conf.Query != nil {
		query = b.conf.Query(w, query)
	}
	if d.tx == nil {
		if err := d.Begin(ctx); err != nil {
			return nil, err
		}
		b.owned = true
	}
	stmt, err := d.tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, errors.Join(err, b.rollback(ctx))
	}
	b.stmt = stmt
	return b, nil
}

func (b *statementBulk) Send(ctx context.Context, rows []codec.Row) error {
	for _, row := range rows {
		args := []any(row)
		if b.conf.Row != nil {
			var err error
			if args, err = b.conf.Row(b.w, row); err != nil {
				return err
			}
		}
		if _, err := b.stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func (b *statementBulk) Commit(ctx context.Context) error {
	if b.conf.Flush {
		if _, err := b.stmt.ExecContext(ctx); err != nil {
			return err
		}
	}
	if err := b.stmt.Close(); err != nil {
		return err
	}
	if b.owned {
		b.owned = false
		return b.d.Commit(ctx)
	}
	return nil
}

func (b *statementBulk) Abort(ctx context.Context) error {
	return errors.Join(b.stmt.Close(), b.rollback(ctx))
}

func (b *statementBulk) rollback(ctx context.Context) error {
	if !b.owned {
		return nil
	}
	b.owned = false
	return b.d.Rollback(ctx)
}
