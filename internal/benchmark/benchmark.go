package benchmark

import (
	"context"
	"reflect"
)

// Params carries the runtime parameter values a benchmark sees during a run.
type Params map[string]any

// Func is the measurable body of a benchmark. The returned value becomes the
// outcome's value on success.
type Func func(ctx context.Context, params Params) (any, error)

// Hook is an optional setup or teardown function. Hooks receive the same
// parameter subset as the benchmark body.
type Hook func(ctx context.Context, params Params) error

// Param declares a single named input of a benchmark.
type Param struct {
	// Name of the parameter as supplied by the caller.
	Name string

	// Type is the declared parameter type. A nil Type means the parameter
	// is untyped and accepts any value.
	Type reflect.Type

	// Default is the value used when the caller omits the parameter.
	// It is only meaningful when HasDefault is true; a parameter without a
	// default is required.
	Default    any
	HasDefault bool
}

// TypeOf returns the reflect.Type for T. Unlike reflect.TypeOf on a value,
// it also works for interface types, e.g. TypeOf[io.Reader]().
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Benchmark is a named, callable unit of measurable work with a declared
// parameter interface and optional lifecycle hooks. A Benchmark is created
// by explicit registration and must not be mutated once collected for a run.
type Benchmark struct {
	// Name identifies the benchmark in outcomes and reports.
	Name string

	// Fn is the benchmark body.
	Fn Func

	// Params are the benchmark's parameter declarations, in declaration
	// order. A benchmark only ever sees the parameters it declares here.
	Params []Param

	// SetUp runs before Fn, TearDown after it. TearDown is invoked on every
	// exit path, including setup or body failure. Either may be nil.
	SetUp    Hook
	TearDown Hook

	// Tags allow selective collection. A benchmark matches a tag filter if
	// its tag set is a superset of the filter.
	Tags []string
}

// matchesTags reports whether the benchmark's tag set contains every
// requested tag.
func (b Benchmark) matchesTags(tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range b.Tags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
