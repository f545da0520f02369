package app

import (
	"errors"

	"github.com/aai-institute/mlbench/internal/benchmark"
)

// Config holds all the necessary configuration for an App instance to run.
// Flag values override the corresponding run manifest fields.
type Config struct {
	ManifestPath string
	Suite        string
	Tags         []string
	ContextVals  map[string]string
	Output       string
	ContextMode  string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" && cfg.Suite == "" {
		return nil, errors.New("either a manifest path or a suite name is required")
	}
	if cfg.ContextMode != "" {
		if _, err := benchmark.ParseContextMode(cfg.ContextMode); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
