package db

import "log/slog"

// DefaultBatchSize is the number of rows fetched or sent per backend round
// trip unless configured otherwise.
const DefaultBatchSize = 1000

type options struct {
	logger    *slog.Logger
	batchSize int
}

// Option configures a Conn or Pool.
type Option func(*options)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBatchSize sets the read and write batch size. Non-positive sizes are
// ignored.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default(), batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
