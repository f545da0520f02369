package benchmark

import (
	"fmt"
	"sort"
	"strings"
)

// ContextMode controls how a record's context is handled when the record is
// compacted into per-benchmark rows for serialization.
type ContextMode string

const (
	// ModeFlatten merges flattened context values into each row, recording
	// the original top-level keys under "_contextkeys".
	ModeFlatten ContextMode = "flatten"
	// ModeInline nests the whole context into each row under "context".
	ModeInline ContextMode = "inline"
	// ModeOmit drops the context on write.
	ModeOmit ContextMode = "omit"
)

// ParseContextMode validates a context mode name.
func ParseContextMode(s string) (ContextMode, error) {
	switch ContextMode(s) {
	case ModeFlatten, ModeInline, ModeOmit:
		return ContextMode(s), nil
	}
	return "", fmt.Errorf("invalid context mode %q: must be 'flatten', 'inline', or 'omit'", s)
}

// Outcome is the result of one execution attempt for one benchmark: a value
// or a captured failure, never both.
type Outcome struct {
	Name          string `json:"name" yaml:"name"`
	Value         any    `json:"value,omitempty" yaml:"value,omitempty"`
	ErrorOccurred bool   `json:"error_occurred,omitempty" yaml:"error_occurred,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// Record is the assembled result of one run: the merged context and one
// outcome per executed benchmark, in collection order. A record is created
// once per run and read-only thereafter.
type Record struct {
	Context    map[string]any `json:"context" yaml:"context"`
	Benchmarks []Outcome      `json:"benchmarks" yaml:"benchmarks"`
}

// row converts an outcome into a serializable key-value row.
func (o Outcome) row() map[string]any {
	row := map[string]any{"name": o.Name}
	if o.ErrorOccurred {
		row["error_occurred"] = true
		row["error_message"] = o.ErrorMessage
	} else {
		row["value"] = o.Value
	}
	return row
}

// Compact prepares the record's outcomes as flat rows for serialization,
// handling the context according to mode. Flattened context keys are joined
// on sep.
func (r Record) Compact(mode ContextMode, sep string) []map[string]any {
	rows := make([]map[string]any, 0, len(r.Benchmarks))
	for _, o := range r.Benchmarks {
		row := o.row()
		switch mode {
		case ModeInline:
			row["context"] = r.Context
		case ModeFlatten:
			for k, v := range FlattenMap(r.Context, "", sep) {
				row[k] = v
			}
			keys := make([]string, 0, len(r.Context))
			for k := range r.Context {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			row["_contextkeys"] = keys
		}
		rows = append(rows, row)
	}
	return rows
}

// Expand reconstructs a record from deserialized rows, extracting the
// context by whichever mode it was written with. The remaining row fields
// are mapped back onto outcomes in row order.
func Expand(rows []map[string]any) Record {
	ctx := make(map[string]any)
	outcomes := make([]Outcome, 0, len(rows))

	for _, row := range rows {
		if c, ok := row["context"].(map[string]any); ok {
			for k, v := range c {
				ctx[k] = v
			}
			delete(row, "context")
		} else if rawKeys, ok := row["_contextkeys"]; ok {
			delete(row, "_contextkeys")
			flat := make(map[string]any)
			for _, key := range anySlice(rawKeys) {
				prefix := fmt.Sprint(key)
				for k, v := range row {
					if k == prefix || strings.HasPrefix(k, prefix+".") {
						flat[k] = v
						delete(row, k)
					}
				}
			}
			for k, v := range UnflattenMap(flat, ".") {
				ctx[k] = v
			}
		}

		o := Outcome{Name: fmt.Sprint(row["name"])}
		// Stringly-typed formats (csv) deserialize the error flag as text.
		occurred := false
		switch v := row["error_occurred"].(type) {
		case bool:
			occurred = v
		case string:
			occurred = v == "true"
		}
		if occurred {
			o.ErrorOccurred = true
			o.ErrorMessage, _ = row["error_message"].(string)
		} else {
			o.Value = row["value"]
		}
		outcomes = append(outcomes, o)
	}

	return Record{Context: ctx, Benchmarks: outcomes}
}

// anySlice normalizes the decoded form of a string list, which differs
// between serializers ([]any from JSON, []string from YAML).
func anySlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	}
	return nil
}

// FlattenMap turns a nested string-keyed map into a flat one, joining
// nesting levels on sep. An optional prefix is applied at the top level.
func FlattenMap(m map[string]any, prefix, sep string) map[string]any {
	flat := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + sep + k
		}
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range FlattenMap(nested, key, sep) {
				flat[nk] = nv
			}
		} else {
			flat[key] = v
		}
	}
	return flat
}

// UnflattenMap expands keys joined on sep back into nested maps. It is the
// inverse of FlattenMap for string-keyed values.
func UnflattenMap(m map[string]any, sep string) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		parts := strings.Split(k, sep)
		cur := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = v
	}
	return out
}
