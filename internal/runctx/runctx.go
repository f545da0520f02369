// Package runctx collects auxiliary run metadata from independent context
// providers and merges it into the single context map attached to a run's
// record.
package runctx

import (
	"fmt"
	"sort"

	"github.com/aai-institute/mlbench/internal/benchmark"
)

// Provider contributes one key-value mapping of run metadata. Providers may
// have observable side effects (environment probing, subprocess calls), so
// aggregation invokes each exactly once, with no caching and no retry.
type Provider func() (map[string]any, error)

// Aggregate invokes every provider once, in sequence order, and unions the
// results into one mapping.
//
// Key sets of all providers must be pairwise disjoint: every key seen in
// more than one provider's output is collected into a single
// DuplicateContextKeyError. A provider's own failure propagates immediately
// and aborts the run before execution begins.
func Aggregate(providers []Provider) (map[string]any, error) {
	merged := make(map[string]any)
	var duplicates []string

	for i, provide := range providers {
		contribution, err := provide()
		if err != nil {
			return nil, fmt.Errorf("context provider %d failed: %w", i, err)
		}
		for k, v := range contribution {
			if _, exists := merged[k]; exists {
				duplicates = append(duplicates, k)
				continue
			}
			merged[k] = v
		}
	}

	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return nil, &benchmark.DuplicateContextKeyError{Keys: duplicates}
	}
	return merged, nil
}

// Literal wraps fixed key-value pairs as a provider, e.g. for context values
// passed on the command line.
func Literal(values map[string]any) Provider {
	return func() (map[string]any, error) {
		out := make(map[string]any, len(values))
		for k, v := range values {
			out[k] = v
		}
		return out, nil
	}
}
