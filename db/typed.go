package db

import (
	"context"
	"fmt"
	"iter"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/internal/types"
	"github.com/zoobzio/sqlgen/schema"
)

// Each runs q and decodes every row with m. Errors are yielded once and end
// the sequence.
func Each[T any](ctx context.Context, c *Conn, m *schema.Model[T], q types.Query, args ...any) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		rows, err := c.Read(ctx, q, args...)
		if err != nil {
			yield(zero, err)
			return
		}
		for row, err := range rows.All() {
			if err != nil {
				yield(zero, err)
				return
			}
			v, err := m.Decode(c.Target(), row)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Collect gathers a sequence into a slice, stopping at the first error. An
// empty sequence gives an empty, non-nil slice.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	out := make([]T, 0)
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadAll reads every row of m's table.
func ReadAll[T any](ctx context.Context, c *Conn, m *schema.Model[T]) ([]T, error) {
	return Collect(Each(ctx, c, m, m.SelectAll()))
}

// InsertAll inserts values one row at a time under policy and stores the
// generated keys back into values. Without an open transaction the rows are
// inserted in one, so a failure leaves the table unchanged.
//
// When the dialect has no RETURNING, the key of each row inserted with
// ConflictNone is read with Conn.LastInsertID; other policies leave keys
// unset there.
func InsertAll[T any](ctx context.Context, c *Conn, m *schema.Model[T], policy types.ConflictPolicy, values []T) error {
	if c.InTransaction() {
		return insertAll(ctx, c, m, policy, values)
	}
	return c.Transact(ctx, func(ctx context.Context) error {
		return insertAll(ctx, c, m, policy, values)
	})
}

func insertAll[T any](ctx context.Context, c *Conn, m *schema.Model[T], policy types.ConflictPolicy, values []T) error {
	stmt := m.Insert(policy)
	var fallback []types.Column
	if len(stmt.Returning) > 0 && !c.Capabilities().Returning {
		fallback, stmt.Returning = stmt.Returning, nil
		if len(fallback) > 1 || policy != types.ConflictNone {
			fallback = nil
		}
	}
	for i := range values {
		keys, err := c.Insert(ctx, stmt, m.EncodeInsert(c.Target(), &values[i]))
		if err != nil {
			return fmt.Errorf("db: insert row %d: %w", i, err)
		}
		if len(fallback) == 1 {
			id, err := c.LastInsertID(ctx, m.Table(), fallback[0])
			if err != nil {
				return fmt.Errorf("db: insert row %d: %w", i, err)
			}
			keys = codec.Row{id}
		}
		if keys == nil {
			continue
		}
		if err := m.DecodeGenerated(c.Target(), keys, &values[i]); err != nil {
			return fmt.Errorf("db: insert row %d: %w", i, err)
		}
	}
	return nil
}

// WriteAll bulk-loads values through the write protocol.
func WriteAll[T any](ctx context.Context, c *Conn, m *schema.Model[T], values []T) error {
	if err := c.StartWrite(ctx, m.Write()); err != nil {
		return err
	}
	for batch := range codec.Chunk(values, c.BatchSize()) {
		rows := make([]codec.Row, len(batch))
		for i := range batch {
			rows[i] = m.Encode(c.Target(), &batch[i])
		}
		if err := c.Write(ctx, rows); err != nil {
			return err
		}
	}
	return c.EndWrite(ctx)
}
