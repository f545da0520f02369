// Package runner orchestrates benchmark runs: it collects benchmarks from
// the suite registry, fails fast on interface or parameter errors, gathers
// run context, executes each benchmark under isolated failure handling, and
// assembles the final record.
package runner

import (
	"context"
	"fmt"

	"github.com/aai-institute/mlbench/internal/benchmark"
	"github.com/aai-institute/mlbench/internal/ctxlog"
	"github.com/aai-institute/mlbench/internal/runctx"
)

// Runner owns a collection of benchmarks for the duration of a run.
// Execution is strictly sequential; no shared mutable state crosses
// benchmark boundaries except the unified interface and the merged context,
// both computed before execution begins.
type Runner struct {
	benchmarks []benchmark.Benchmark
}

// New returns an empty Runner.
func New() *Runner {
	return &Runner{}
}

// Collect appends the registered benchmarks of the named suite matching all
// given tags. Repeated calls accumulate.
func (r *Runner) Collect(suite string, tags ...string) {
	r.benchmarks = append(r.benchmarks, benchmark.Collect(suite, tags...)...)
}

// Append adds benchmarks directly, bypassing the suite registry.
func (r *Runner) Append(bms ...benchmark.Benchmark) {
	r.benchmarks = append(r.benchmarks, bms...)
}

// Clear drops all collected benchmarks.
func (r *Runner) Clear() {
	r.benchmarks = nil
}

// Benchmarks returns the current collection, in collection order.
func (r *Runner) Benchmarks() []benchmark.Benchmark {
	return r.benchmarks
}

// Run executes the collected benchmarks with the supplied parameters and
// context providers, and assembles their outcomes into a single record.
//
// The pipeline fails fast: interface resolution and parameter validation
// run before any provider or benchmark side effect, and a context provider
// failure aborts the run before execution begins. Per-benchmark failures
// are recovered locally and recorded on the benchmark's outcome; they never
// propagate, so sibling benchmarks always run.
//
// An empty collection returns ErrNoBenchmarks and no record.
func (r *Runner) Run(ctx context.Context, params benchmark.Params, providers []runctx.Provider) (*benchmark.Record, error) {
	logger := ctxlog.FromContext(ctx)

	if len(r.benchmarks) == 0 {
		return nil, benchmark.ErrNoBenchmarks
	}

	unified, err := benchmark.ResolveInterface(r.benchmarks)
	if err != nil {
		return nil, err
	}
	if err := benchmark.Validate(params, unified); err != nil {
		return nil, err
	}

	runContext, err := runctx.Aggregate(providers)
	if err != nil {
		return nil, err
	}

	outcomes := make([]benchmark.Outcome, 0, len(r.benchmarks))
	for _, bm := range r.benchmarks {
		logger.Debug("Running benchmark.", "benchmark", bm.Name)
		outcome := runOne(ctx, bm, params)
		if outcome.ErrorOccurred {
			logger.Warn("Benchmark failed.", "benchmark", bm.Name, "error", outcome.ErrorMessage)
		}
		outcomes = append(outcomes, outcome)
	}

	return &benchmark.Record{Context: runContext, Benchmarks: outcomes}, nil
}

// project narrows the supplied parameters onto exactly the names a
// benchmark declares, injecting declared defaults for omitted ones. Each
// benchmark only ever sees the parameters it asked for.
func project(supplied benchmark.Params, declared []benchmark.Param) benchmark.Params {
	subset := make(benchmark.Params, len(declared))
	for _, p := range declared {
		if v, ok := supplied[p.Name]; ok {
			subset[p.Name] = v
		} else if p.HasDefault {
			subset[p.Name] = p.Default
		}
	}
	return subset
}

// runOne executes a single benchmark's setup/body/teardown lifecycle and
// converts any failure into the outcome, isolating it from siblings.
// Teardown runs on every exit path; a teardown failure is recorded on the
// outcome unless an earlier error already claimed it.
func runOne(ctx context.Context, bm benchmark.Benchmark, supplied benchmark.Params) benchmark.Outcome {
	params := project(supplied, bm.Params)

	var value any
	runErr := func() (err error) {
		defer recoverToError(&err)
		if bm.SetUp != nil {
			if err := bm.SetUp(ctx, params); err != nil {
				return fmt.Errorf("setup: %w", err)
			}
		}
		v, err := bm.Fn(ctx, params)
		if err != nil {
			return err
		}
		value = v
		return nil
	}()

	teardownErr := func() (err error) {
		defer recoverToError(&err)
		if bm.TearDown != nil {
			return bm.TearDown(ctx, params)
		}
		return nil
	}()
	if teardownErr != nil {
		if runErr == nil {
			runErr = fmt.Errorf("teardown: %w", teardownErr)
		} else {
			ctxlog.FromContext(ctx).Warn("Teardown failed after earlier error.",
				"benchmark", bm.Name, "error", teardownErr)
		}
	}

	if runErr != nil {
		return benchmark.Outcome{
			Name:          bm.Name,
			ErrorOccurred: true,
			ErrorMessage:  runErr.Error(),
		}
	}
	return benchmark.Outcome{Name: bm.Name, Value: value}
}

// recoverToError converts a panic into an error on *err, so a panicking
// hook or body is handled exactly like one returning an error.
func recoverToError(err *error) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("panic: %v", p)
	}
}
