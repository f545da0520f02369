package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() Record {
	return Record{
		Context: map[string]any{
			"system": "linux",
			"git":    map[string]any{"commit": "abc123", "dirty": false},
		},
		Benchmarks: []Outcome{
			{Name: "add", Value: 5},
			{Name: "div", ErrorOccurred: true, ErrorMessage: "division by zero"},
		},
	}
}

func TestParseContextMode(t *testing.T) {
	for _, valid := range []string{"flatten", "inline", "omit"} {
		mode, err := ParseContextMode(valid)
		require.NoError(t, err)
		assert.Equal(t, ContextMode(valid), mode)
	}

	_, err := ParseContextMode("nested")
	assert.ErrorContains(t, err, "invalid context mode")
}

func TestRecordCompact(t *testing.T) {
	t.Run("omit drops the context", func(t *testing.T) {
		rows := sampleRecord().Compact(ModeOmit, ".")
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.NotContains(t, row, "context")
			assert.NotContains(t, row, "system")
		}
		assert.Equal(t, 5, rows[0]["value"])
		assert.Equal(t, true, rows[1]["error_occurred"])
		assert.Equal(t, "division by zero", rows[1]["error_message"])
		assert.NotContains(t, rows[1], "value")
	})

	t.Run("inline nests the context in each row", func(t *testing.T) {
		rows := sampleRecord().Compact(ModeInline, ".")
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, sampleRecord().Context, row["context"])
		}
	})

	t.Run("flatten merges dotted context values", func(t *testing.T) {
		rows := sampleRecord().Compact(ModeFlatten, ".")
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, "linux", row["system"])
			assert.Equal(t, "abc123", row["git.commit"])
			assert.ElementsMatch(t, []string{"git", "system"}, row["_contextkeys"])
		}
	})
}

func TestExpand(t *testing.T) {
	t.Run("roundtrip inline", func(t *testing.T) {
		record := sampleRecord()
		got := Expand(record.Compact(ModeInline, "."))
		assert.Equal(t, record.Context, got.Context)
		assert.Equal(t, record.Benchmarks, got.Benchmarks)
	})

	t.Run("roundtrip flatten", func(t *testing.T) {
		record := sampleRecord()
		got := Expand(record.Compact(ModeFlatten, "."))
		assert.Equal(t, record.Context, got.Context)
		assert.Equal(t, record.Benchmarks, got.Benchmarks)
	})

	t.Run("roundtrip omit loses only the context", func(t *testing.T) {
		record := sampleRecord()
		got := Expand(record.Compact(ModeOmit, "."))
		assert.Empty(t, got.Context)
		assert.Equal(t, record.Benchmarks, got.Benchmarks)
	})
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{"a": 1, "b": map[string]any{"c": 2, "d": map[string]any{"e": 3}}}

	flat := FlattenMap(nested, "", ".")
	assert.Equal(t, map[string]any{"a": 1, "b.c": 2, "b.d.e": 3}, flat)

	prefixed := FlattenMap(nested, "prefix", ".")
	assert.Equal(t, map[string]any{"prefix.a": 1, "prefix.b.c": 2, "prefix.b.d.e": 3}, prefixed)
}

func TestUnflattenMap(t *testing.T) {
	flat := map[string]any{"a": 1, "b.c": 2, "b.d.e": 3}
	nested := UnflattenMap(flat, ".")
	assert.Equal(t, map[string]any{"a": 1, "b": map[string]any{"c": 2, "d": map[string]any{"e": 3}}}, nested)
}
