package db

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

// SlotState is the claim state of one pool slot.
type SlotState int32

const (
	Free SlotState = iota
	Claimed
)

func (s SlotState) String() string {
	if s == Claimed {
		return "claimed"
	}
	return "free"
}

type slot struct {
	state atomic.Int32
	conn  *Conn
}

func (s *slot) claim() bool {
	return s.state.CompareAndSwap(int32(Free), int32(Claimed))
}

// Pool holds a fixed set of connections. Acquire never blocks: it claims
// the first free slot or fails with ErrPoolExhausted.
type Pool struct {
	slots []*slot
	log   *slog.Logger
}

// NewPool pools conns. The pool owns them and closes them in Close.
func NewPool(conns []*Conn, opts ...Option) *Pool {
	o := buildOptions(opts)
	p := &Pool{slots: make([]*slot, len(conns)), log: o.logger}
	for i, c := range conns {
		p.slots[i] = &slot{conn: c}
	}
	return p
}

// Size returns the number of slots.
func (p *Pool) Size() int {
	return len(p.slots)
}

// Available returns the number of free slots at the time of the call.
func (p *Pool) Available() int {
	n := 0
	for _, s := range p.slots {
		if SlotState(s.state.Load()) == Free {
			n++
		}
	}
	return n
}

// Acquire claims a free connection.
func (p *Pool) Acquire() (*Handle, error) {
	for _, s := range p.slots {
		if s.claim() {
			return &Handle{slot: s}, nil
		}
	}
	p.log.Warn("pool exhausted", "size", len(p.slots))
	return nil, ErrPoolExhausted
}

// With runs fn on a claimed connection and releases it on every exit
// path, including a panic in fn.
func (p *Pool) With(fn func(*Conn) error) error {
	h, err := p.Acquire()
	if err != nil {
		return err
	}
	defer h.Release()
	return fn(h.Conn())
}

// Stats sums the counters of every connection.
func (p *Pool) Stats() StatsSnapshot {
	var total StatsSnapshot
	for _, s := range p.slots {
		total = total.Add(s.conn.Stats())
	}
	return total
}

// Close closes every connection. Connections still claimed are closed too;
// their handles must not be used afterwards.
func (p *Pool) Close() error {
	var errs []error
	for _, s := range p.slots {
		s.state.Store(int32(Claimed))
		if err := s.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Handle is a claimed pool slot.
type Handle struct {
	slot     *slot
	released atomic.Bool
}

// Conn returns the claimed connection.
func (h *Handle) Conn() *Conn {
	return h.slot.conn
}

// Release resets the connection and frees the slot. Calls after the first
// do nothing.
func (h *Handle) Release() {
	if !h.released.CompareAndSwap(false, true) {
		return
	}
	h.slot.conn.reset(context.Background())
	h.slot.state.Store(int32(Free))
}
