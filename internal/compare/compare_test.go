package compare

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aai-institute/mlbench/internal/benchmark"
)

func TestCompare(t *testing.T) {
	baseline := benchmark.Record{
		Context: map[string]any{"git": map[string]any{"commit": "abc123"}},
		Benchmarks: []benchmark.Outcome{
			{Name: "accuracy", Value: 0.92},
			{Name: "latency", Value: 12},
		},
	}
	candidate := benchmark.Record{
		Context: map[string]any{"git": map[string]any{"commit": "def456"}},
		Benchmarks: []benchmark.Outcome{
			{Name: "accuracy", Value: 0.95},
			{Name: "throughput", ErrorOccurred: true, ErrorMessage: "out of memory"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Compare(&buf, []benchmark.Record{baseline, candidate}, []string{"git.commit"}))
	out := buf.String()

	// Union of benchmark names in first-seen order.
	assert.Contains(t, out, "accuracy")
	assert.Contains(t, out, "latency")
	assert.Contains(t, out, "throughput")

	// Values, errors, and missing cells.
	assert.Contains(t, out, "0.92")
	assert.Contains(t, out, "0.95")
	assert.Contains(t, out, "ERROR:")
	assert.Contains(t, out, "out of memory")
	assert.Contains(t, out, "-----")

	// Dotted context access.
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "def456")
}

func TestCompareMissingContext(t *testing.T) {
	record := benchmark.Record{
		Benchmarks: []benchmark.Outcome{{Name: "add", Value: 5}},
	}

	var buf bytes.Buffer
	require.NoError(t, Compare(&buf, []benchmark.Record{record}, []string{"git.commit"}))
	assert.Contains(t, buf.String(), "-----")
}

func TestDiff(t *testing.T) {
	a := benchmark.Record{Benchmarks: []benchmark.Outcome{{Name: "add", Value: 5}}}
	b := benchmark.Record{Benchmarks: []benchmark.Outcome{{Name: "add", Value: 6}}}

	assert.Empty(t, Diff(a, a))
	assert.NotEmpty(t, Diff(a, b))
}
