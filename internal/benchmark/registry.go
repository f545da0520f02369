package benchmark

import "sync"

// The suite registry is the explicit-registration replacement for namespace
// scanning: packages append their benchmarks into a named suite at load
// time, and a runner later collects from it. Registration may race with
// lookups during startup, hence the lock.
type suiteRegistry struct {
	mu     sync.RWMutex
	suites map[string][]Benchmark
}

var registry = &suiteRegistry{suites: make(map[string][]Benchmark)}

// Register appends benchmarks to the named suite, preserving registration
// order. It is safe for concurrent use.
func Register(suite string, benchmarks ...Benchmark) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.suites[suite] = append(registry.suites[suite], benchmarks...)
}

// Collect returns the benchmarks of the named suite whose tag sets contain
// every given tag, in registration order. An unknown suite yields an empty
// collection.
func Collect(suite string, tags ...string) []Benchmark {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	var out []Benchmark
	for _, bm := range registry.suites[suite] {
		if bm.matchesTags(tags) {
			out = append(out, bm)
		}
	}
	return out
}

// Suites returns the names of all registered suites.
func Suites() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.suites))
	for name := range registry.suites {
		names = append(names, name)
	}
	return names
}

// Deregister removes the named suite and returns its benchmarks, or nil if
// the suite was not registered. Mainly useful for test isolation.
func Deregister(suite string) []Benchmark {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	bms := registry.suites[suite]
	delete(registry.suites, suite)
	return bms
}
