package db

import (
	"fmt"
	"sync/atomic"
)

// Stats counts the work done on a connection.
type Stats struct {
	Queries     atomic.Int64
	Execs       atomic.Int64
	RowsRead    atomic.Int64
	RowsWritten atomic.Int64
	Errors      atomic.Int64
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Queries:     s.Queries.Load(),
		Execs:       s.Execs.Load(),
		RowsRead:    s.RowsRead.Load(),
		RowsWritten: s.RowsWritten.Load(),
		Errors:      s.Errors.Load(),
	}
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Queries     int64
	Execs       int64
	RowsRead    int64
	RowsWritten int64
	Errors      int64
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d execs=%d read=%d written=%d errors=%d",
		s.Queries, s.Execs, s.RowsRead, s.RowsWritten, s.Errors)
}

// Add returns the sum of two snapshots.
func (s StatsSnapshot) Add(o StatsSnapshot) StatsSnapshot {
	return StatsSnapshot{
		Queries:     s.Queries + o.Queries,
		Execs:       s.Execs + o.Execs,
		RowsRead:    s.RowsRead + o.RowsRead,
		RowsWritten: s.RowsWritten + o.RowsWritten,
		Errors:      s.Errors + o.Errors,
	}
}
