package codec

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Registry resolves codecs by Go type at runtime. It is safe for concurrent
// use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[reflect.Type]any
}

// NewRegistry returns a registry holding the primitive codecs, UUID and a
// timestamp codec for time.Time.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[reflect.Type]any)}
	Register(r, Bool())
	Register(r, Int8())
	Register(r, Int16())
	Register(r, Int32())
	Register(r, Int64())
	Register(r, Int())
	Register(r, Uint8())
	Register(r, Uint16())
	Register(r, Uint32())
	Register(r, Uint64())
	Register(r, Float32())
	Register(r, Float64())
	Register(r, String())
	Register(r, UUID())
	Register[time.Time](r, Timestamp("%Y-%m-%d %H:%M:%S.%f"))
	return r
}

// Register stores c as the codec for T, replacing any previous entry.
func Register[T any](r *Registry, c Codec[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[reflect.TypeFor[T]()] = c
}

// Lookup returns the codec registered for T.
func Lookup[T any](r *Registry) (Codec[T], error) {
	t := reflect.TypeFor[T]()
	r.mu.RLock()
	c, ok := r.codecs[t]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("codec: no codec registered for %s", t)
	}
	return c.(Codec[T]), nil
}
