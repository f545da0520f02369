// Package app wires the run pipeline together: it resolves the effective
// run configuration from the manifest and CLI flags, collects the suite,
// executes it, and hands the record to the configured reporters.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aai-institute/mlbench/internal/benchmark"
	"github.com/aai-institute/mlbench/internal/ctxlog"
	"github.com/aai-institute/mlbench/internal/manifest"
	"github.com/aai-institute/mlbench/internal/reporter"
	"github.com/aai-institute/mlbench/internal/runctx"
	"github.com/aai-institute/mlbench/internal/runner"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application, with its own isolated
// logger writing to errW.
func NewApp(outW, errW io.Writer, config *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(config.LogLevel, config.LogFormat, errW),
		config: config,
	}
}

// effectiveRun merges the manifest (if any) with the CLI configuration.
// Flags win over manifest fields.
func (a *App) effectiveRun(ctx context.Context) (*manifest.Run, error) {
	run := &manifest.Run{
		Params:      benchmark.Params{},
		ContextMode: benchmark.ModeInline,
	}
	if a.config.ManifestPath != "" {
		loaded, err := manifest.Load(ctx, a.config.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load run manifest: %w", err)
		}
		run = loaded
	}

	if a.config.Suite != "" {
		run.Suite = a.config.Suite
	}
	if len(a.config.Tags) > 0 {
		run.Tags = a.config.Tags
	}
	if a.config.Output != "" {
		run.Output = a.config.Output
	}
	if a.config.ContextMode != "" {
		mode, err := benchmark.ParseContextMode(a.config.ContextMode)
		if err != nil {
			return nil, err
		}
		run.ContextMode = mode
	}
	return run, nil
}

// providers resolves the manifest's named context providers and appends one
// for the CLI's literal context values.
func (a *App) providers(run *manifest.Run) ([]runctx.Provider, error) {
	var providers []runctx.Provider
	for _, name := range run.Providers {
		p, ok := runctx.Builtin(name)
		if !ok {
			return nil, fmt.Errorf("unknown context provider %q", name)
		}
		providers = append(providers, p)
	}

	if len(a.config.ContextVals) > 0 {
		literals := make(map[string]any, len(a.config.ContextVals))
		for k, v := range a.config.ContextVals {
			literals[k] = v
		}
		providers = append(providers, runctx.Literal(literals))
	}
	return providers, nil
}

// Run executes the configured benchmark run end to end.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	run, err := a.effectiveRun(ctx)
	if err != nil {
		return err
	}

	providers, err := a.providers(run)
	if err != nil {
		return err
	}

	r := runner.New()
	r.Collect(run.Suite, run.Tags...)
	a.logger.Debug("Benchmarks collected.", "suite", run.Suite, "count", len(r.Benchmarks()))

	record, err := r.Run(ctx, run.Params, providers)
	if errors.Is(err, benchmark.ErrNoBenchmarks) {
		a.logger.Warn("No benchmarks found for suite.", "suite", run.Suite, "tags", run.Tags)
		return nil
	}
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	console := &reporter.ConsoleReporter{Out: a.outW}
	if err := console.Report(record); err != nil {
		return err
	}

	if run.Output != "" {
		file := reporter.NewFileReporter(run.Output)
		file.ContextMode = run.ContextMode
		if err := file.Report(record); err != nil {
			return fmt.Errorf("failed to write results to %q: %w", run.Output, err)
		}
		a.logger.Info("Results written.", "destination", run.Output)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
