package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/zoobzio/sqlgen/internal/types"
)

// CheckExhaustive renders every statement, operation and condition variant
// against d. Unsupported features are expected; an unhandled variant or a
// missing table entry is reported.
func CheckExhaustive(d *Dialect) error {
	r := New(d)
	var errs []error
	for _, stmt := range types.StatementVariants() {
		_, err := r.Render(stmt)
		if err == nil {
			continue
		}
		var unsupported UnsupportedFeatureError
		if errors.As(err, &unsupported) {
			continue
		}
		errs = append(errs, fmt.Errorf("%T: %w", stmt, err))
	}
	return errors.Join(errs...)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Renderer{}
)

// Register checks d for exhaustiveness and makes its renderer available by
// name. It panics on a gap so a missing case fails at program start.
func Register(d *Dialect) *Renderer {
	if err := CheckExhaustive(d); err != nil {
		panic(fmt.Sprintf("render: dialect %s is incomplete: %v", d.Name, err))
	}
	r := New(d)
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[d.Name]; dup {
		panic("render: dialect registered twice: " + d.Name)
	}
	registry[d.Name] = r
	return r
}

// Lookup returns the renderer registered under name.
func Lookup(name string) (*Renderer, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[name]
	return r, ok
}

// Dialects lists the registered dialect names in sorted order.
func Dialects() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
