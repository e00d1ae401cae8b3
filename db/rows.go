package db

import (
	"io"
	"iter"

	"github.com/zoobzio/sqlgen/codec"
)

// Rows is a forward-only, single-pass sequence of result rows. Only the
// current batch is held in memory. A backend error is delivered once, after
// which the sequence is at its end.
type Rows struct {
	conn   *Conn
	cursor Cursor
	buf    []codec.Row
	pos    int
	err    error // delivered by the next call to Next
	done   bool  // the cursor has nothing more to give
	closed bool
}

func newRows(c *Conn, cursor Cursor) *Rows {
	return &Rows{conn: c, cursor: cursor}
}

// fill fetches the next batch when the current one is used up. Rows that
// arrive together with an error are delivered before it.
func (r *Rows) fill() {
	if r.pos < len(r.buf) || r.done || r.err != nil {
		return
	}
	batch, err := r.cursor.Fetch(r.conn.batch)
	r.buf, r.pos = batch, 0
	r.conn.stats.RowsRead.Add(int64(len(batch)))
	if err != nil {
		r.err = r.conn.fail(Backend(r.conn.Dialect(), "read", err))
		r.finish()
		return
	}
	if len(batch) == 0 {
		r.finish()
	}
}

func (r *Rows) finish() {
	r.done = true
	if err := r.release(); err != nil && r.err == nil {
		r.err = r.conn.fail(Backend(r.conn.Dialect(), "read", err))
	}
}

func (r *Rows) release() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.cursor.Close()
}

// AtEnd reports whether the sequence is exhausted without consuming a row.
// A pending error counts as one more element, after any buffered rows.
func (r *Rows) AtEnd() bool {
	r.fill()
	return r.pos >= len(r.buf) && r.err == nil
}

// Next returns the next row. It returns io.EOF at the end of the sequence.
func (r *Rows) Next() (codec.Row, error) {
	r.fill()
	if r.pos < len(r.buf) {
		row := r.buf[r.pos]
		r.buf[r.pos] = nil
		r.pos++
		return row, nil
	}
	if r.err != nil {
		err := r.err
		r.err = nil
		return nil, err
	}
	return nil, io.EOF
}

// All iterates the remaining rows. An error is yielded once and ends the
// iteration. The rows are closed when the loop exits.
func (r *Rows) All() iter.Seq2[codec.Row, error] {
	return func(yield func(codec.Row, error) bool) {
		defer r.Close()
		for {
			row, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// Collect reads every remaining row.
func (r *Rows) Collect() ([]codec.Row, error) {
	out := make([]codec.Row, 0)
	for row, err := range r.All() {
		if err != nil {
			return out, err
		}
		out = append(out, row)
	}
	return out, nil
}

// Close discards the remaining rows. It is safe to call more than once.
func (r *Rows) Close() error {
	r.done = true
	r.buf, r.pos = nil, 0
	return Backend(r.conn.Dialect(), "read", r.release())
}
