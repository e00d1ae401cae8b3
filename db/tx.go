package db

import (
	"context"
	"fmt"
)

// TxState tracks whether a connection has an explicit transaction open.
type TxState struct {
	active bool
	gen    uint64
}

// Active reports whether a transaction is open.
func (s *TxState) Active() bool {
	return s.active
}

// Tx is an explicit transaction. Close rolls it back unless it was
// committed or rolled back already, so it can be deferred right after
// Begin.
type Tx struct {
	conn  *Conn
	gen   uint64
	ended bool
}

// Begin opens a transaction. Only one may be open per connection.
func (c *Conn) Begin(ctx context.Context) (*Tx, error) {
	if err := c.idle("begin"); err != nil {
		return nil, err
	}
	if c.tx.active {
		return nil, ProtocolError{Op: "begin", State: "a transaction is active"}
	}
	if err := c.driver.Begin(ctx); err != nil {
		return nil, c.fail(Backend(c.Dialect(), "begin", err))
	}
	c.log.Debug("begin")
	c.tx.active = true
	c.tx.gen++
	return &Tx{conn: c, gen: c.tx.gen}, nil
}

// Commit commits the transaction. Ending an ended transaction is a
// ProtocolError.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.end("commit"); err != nil {
		return err
	}
	c := t.conn
	c.log.Debug("commit")
	return c.fail(Backend(c.Dialect(), "commit", c.driver.Commit(ctx)))
}

// Rollback rolls the transaction back. Ending an ended transaction is a
// ProtocolError.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.end("rollback"); err != nil {
		return err
	}
	c := t.conn
	c.log.Debug("rollback")
	return c.fail(Backend(c.Dialect(), "rollback", c.driver.Rollback(ctx)))
}

// Active reports whether the transaction is still open.
func (t *Tx) Active() bool {
	return !t.ended && t.conn.tx.active && t.conn.tx.gen == t.gen
}

// Close rolls back an open transaction and does nothing otherwise.
func (t *Tx) Close() error {
	if !t.Active() {
		return nil
	}
	t.conn.log.Warn("rolling back transaction closed without commit")
	return t.Rollback(context.Background())
}

func (t *Tx) end(op string) error {
	if !t.Active() {
		return ProtocolError{Op: op, State: "the transaction has ended"}
	}
	if t.conn.writer.state == Writing {
		return ProtocolError{Op: op, State: "writing"}
	}
	t.ended = true
	t.conn.tx.active = false
	return nil
}

// Transact runs fn in a transaction, committing when fn returns nil and
// rolling back otherwise, including when fn panics.
func (c *Conn) Transact(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := c.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tx.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("db: rollback: %w", cerr)
		}
	}()
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
