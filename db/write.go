package db

import (
	"context"
	"fmt"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/internal/types"
)

// WriteState is the state of a connection's bulk write protocol.
type WriteState int

const (
	Idle WriteState = iota
	Writing
)

func (s WriteState) String() string {
	if s == Writing {
		return "writing"
	}
	return "idle"
}

type writer struct {
	state   WriteState
	channel BulkChannel
	table   string
	columns int
	written int64
}

// WriteState returns the bulk write protocol state.
func (c *Conn) WriteState() WriteState {
	return c.writer.state
}

// StartWrite opens a bulk load into w's table: Idle to Writing.
func (c *Conn) StartWrite(ctx context.Context, w types.Write) error {
	if c.writer.state == Writing {
		return ProtocolError{Op: "start write", State: "writing"}
	}
	sql, err := c.Render(w)
	if err != nil {
		return err
	}
	c.log.Debug("start write", "table", w.Table.Name, "sql", sql)
	ch, err := c.driver.OpenBulk(ctx, w, sql)
	if err != nil {
		return c.fail(Backend(c.Dialect(), "start write", err))
	}
	c.writer = writer{state: Writing, channel: ch, table: w.Table.Name, columns: len(w.Columns)}
	return nil
}

// Write sends rows in batches of BatchSize. Any failure aborts the load,
// returns the protocol to Idle and is returned as is.
func (c *Conn) Write(ctx context.Context, rows []codec.Row) error {
	w := &c.writer
	if w.state != Writing {
		return ProtocolError{Op: "write", State: "idle"}
	}
	for batch := range codec.Chunk(rows, c.batch) {
		for i, row := range batch {
			if len(row) != w.columns {
				w.abort(ctx, c)
				return c.fail(fmt.Errorf("db: write into %s: row %d has %d cells, expected %d", w.table, i, len(row), w.columns))
			}
		}
		if err := w.channel.Send(ctx, batch); err != nil {
			w.abort(ctx, c)
			return c.fail(Backend(c.Dialect(), "write", err))
		}
		w.written += int64(len(batch))
		c.stats.RowsWritten.Add(int64(len(batch)))
		c.log.Debug("write batch", "table", w.table, "rows", len(batch))
	}
	return nil
}

// EndWrite commits the load: Writing to Idle.
func (c *Conn) EndWrite(ctx context.Context) error {
	w := &c.writer
	if w.state != Writing {
		return ProtocolError{Op: "end write", State: "idle"}
	}
	if err := w.channel.Commit(ctx); err != nil {
		w.abort(ctx, c)
		return c.fail(Backend(c.Dialect(), "end write", err))
	}
	c.log.Debug("end write", "table", w.table, "rows", w.written)
	*w = writer{}
	return nil
}

// abort rolls the channel back and returns to Idle. The abort error is only
// logged so the caller sees the failure that caused it.
func (w *writer) abort(ctx context.Context, c *Conn) {
	if err := w.channel.Abort(ctx); err != nil {
		c.log.Warn("abort write failed", "table", w.table, "error", err)
	} else {
		c.log.Warn("write aborted", "table", w.table)
	}
	*w = writer{}
}
