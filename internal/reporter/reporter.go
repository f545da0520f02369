// Package reporter consumes assembled benchmark records and delivers them
// to a sink: the console, or files in a pluggable serialization format with
// optional compression.
//
// Reporters, file drivers, and compression codecs all live in name-keyed,
// process-wide registries with register/deregister/lookup operations. The
// registries are mutex-guarded because plugin registration may race with
// lookups during startup.
package reporter

import (
	"fmt"
	"sync"

	"github.com/aai-institute/mlbench/internal/benchmark"
)

// Reporter is the capability interface for anything that can deliver a
// benchmark record.
type Reporter interface {
	Report(record *benchmark.Record) error
}

// UnsupportedError reports a lookup of an unregistered name in one of the
// package's registries.
type UnsupportedError struct {
	Kind string
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.Kind, e.Name)
}

// registry is a minimal name-keyed store shared by the reporter, driver,
// and compression registries.
type registry[T any] struct {
	kind    string
	mu      sync.RWMutex
	entries map[string]T
}

func newRegistry[T any](kind string) *registry[T] {
	return &registry[T]{kind: kind, entries: make(map[string]T)}
}

func (r *registry[T]) register(name string, entry T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%s %q is already registered", r.kind, name)
	}
	r.entries[name] = entry
	return nil
}

func (r *registry[T]) deregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

func (r *registry[T]) lookup(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[name]
	if !ok {
		var zero T
		return zero, &UnsupportedError{Kind: r.kind, Name: name}
	}
	return entry, nil
}

// Factory constructs a reporter instance for a registered name.
type Factory func() (Reporter, error)

var reporters = newRegistry[Factory]("reporter")

// Register adds a reporter factory under the given name. Registering a name
// twice is an error.
func Register(name string, factory Factory) error {
	return reporters.register(name, factory)
}

// Deregister removes a reporter factory by name.
func Deregister(name string) {
	reporters.deregister(name)
}

// Resolve turns a reporter selector into an instance: a string prompts a
// registry lookup, an existing Reporter passes through unchanged.
func Resolve(selector any) (Reporter, error) {
	switch s := selector.(type) {
	case Reporter:
		return s, nil
	case string:
		factory, err := reporters.lookup(s)
		if err != nil {
			return nil, err
		}
		return factory()
	}
	return nil, fmt.Errorf("reporter selector must be a name or an instance, got %T", selector)
}
