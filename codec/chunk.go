package codec

import (
	"iter"
	"slices"
)

// Chunk splits rows into consecutive batches of at most size elements. A
// non-positive size yields all rows as one batch; empty input yields nothing.
func Chunk[T any](rows []T, size int) iter.Seq[[]T] {
	if size <= 0 {
		size = max(len(rows), 1)
	}
	if len(rows) == 0 {
		return func(func([]T) bool) {}
	}
	return slices.Chunk(rows, size)
}
