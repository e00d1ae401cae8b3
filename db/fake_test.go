package db_test

import (
	"context"
	"errors"

	"github.com/zoobzio/sqlgen/codec"
	"github.com/zoobzio/sqlgen/db"
	"github.com/zoobzio/sqlgen/internal/render"
	"github.com/zoobzio/sqlgen/internal/types"
	"github.com/zoobzio/sqlgen/sqlite"
)

var errBoom = errors.New("boom")

// fakeDriver records calls and serves canned rows.
type fakeDriver struct {
	renderer *render.Renderer
	events   []string
	execErr  error
	rows     []codec.Row
	rowsErr  error
	cursors  []*fakeCursor
	bulk     *fakeBulk
	closed   bool

	// errWithRows returns rowsErr together with the last batch.
	errWithRows bool
}

func newFake() *fakeDriver {
	return &fakeDriver{renderer: sqlite.New()}
}

func (d *fakeDriver) Renderer() *render.Renderer { return d.renderer }
func (d *fakeDriver) Target() codec.Target       { return codec.Text }

func (d *fakeDriver) Exec(_ context.Context, sql string, _ ...any) error {
	d.events = append(d.events, "exec "+sql)
	return d.execErr
}

func (d *fakeDriver) Query(_ context.Context, sql string, _ ...any) (db.Cursor, error) {
	d.events = append(d.events, "query "+sql)
	c := &fakeCursor{rows: d.rows, err: d.rowsErr, withRows: d.errWithRows}
	d.cursors = append(d.cursors, c)
	return c, nil
}

func (d *fakeDriver) Begin(context.Context) error {
	d.events = append(d.events, "begin")
	return nil
}

func (d *fakeDriver) Commit(context.Context) error {
	d.events = append(d.events, "commit")
	return nil
}

func (d *fakeDriver) Rollback(context.Context) error {
	d.events = append(d.events, "rollback")
	return nil
}

func (d *fakeDriver) OpenBulk(_ context.Context, _ types.Write, sql string) (db.BulkChannel, error) {
	d.events = append(d.events, "bulk "+sql)
	if d.bulk == nil {
		d.bulk = &fakeBulk{}
	}
	return d.bulk, nil
}

func (d *fakeDriver) Close() error {
	d.closed = true
	return nil
}

type fakeCursor struct {
	rows     []codec.Row
	err      error
	withRows bool
	fetches  []int
	closed   int
}

func (c *fakeCursor) Fetch(n int) ([]codec.Row, error) {
	if len(c.rows) == 0 {
		c.fetches = append(c.fetches, 0)
		return nil, c.err
	}
	n = min(n, len(c.rows))
	batch := c.rows[:n]
	c.rows = c.rows[n:]
	c.fetches = append(c.fetches, n)
	if c.withRows && len(c.rows) == 0 {
		return batch, c.err
	}
	return batch, nil
}

func (c *fakeCursor) Close() error {
	c.closed++
	return nil
}

type fakeBulk struct {
	batches   []int
	failOn    int // 1-based batch number that fails; 0 never fails
	committed bool
	aborted   bool
}

func (b *fakeBulk) Send(_ context.Context, rows []codec.Row) error {
	b.batches = append(b.batches, len(rows))
	if b.failOn == len(b.batches) {
		return errBoom
	}
	return nil
}

func (b *fakeBulk) Commit(context.Context) error {
	b.committed = true
	return nil
}

func (b *fakeBulk) Abort(context.Context) error {
	b.aborted = true
	return nil
}
