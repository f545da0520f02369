// Package compare renders several benchmark records side by side, one row
// per record, so runs can be checked against each other (e.g. a candidate
// model against a baseline).
package compare

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/go-cmp/cmp"
	"github.com/gookit/color"

	"github.com/aai-institute/mlbench/internal/benchmark"
)

const missingCell = "-----"

// valueByName extracts the rendered cell for the named benchmark from a
// record, or the missing marker if the record lacks it.
func valueByName(record benchmark.Record, name string) string {
	for _, o := range record.Benchmarks {
		if o.Name != name {
			continue
		}
		if o.ErrorOccurred {
			msg := o.ErrorMessage
			if msg == "" {
				msg = "<unknown>"
			}
			return color.Red.Sprint("ERROR: ") + msg
		}
		return fmt.Sprint(o.Value)
	}
	return missingCell
}

// Compare writes a comparison table of the given records. Columns are the
// union of all benchmark names in first-seen order, followed by the
// requested context values; context names support dotted access into nested
// values (e.g. "git.commit").
func Compare(w io.Writer, records []benchmark.Record, contextvals []string) error {
	var names []string
	seen := make(map[string]struct{})
	for _, record := range records {
		for _, o := range record.Benchmarks {
			if _, ok := seen[o.Name]; !ok {
				seen[o.Name] = struct{}{}
				names = append(names, o.Name)
			}
		}
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	header := "Run"
	for _, name := range names {
		header += "\t" + name
	}
	for _, cval := range contextvals {
		header += "\t" + cval
	}
	fmt.Fprintln(tw, header)

	for i, record := range records {
		row := fmt.Sprintf("#%d", i+1)
		for _, name := range names {
			row += "\t" + valueByName(record, name)
		}
		flat := benchmark.FlattenMap(record.Context, "", ".")
		for _, cval := range contextvals {
			if v, ok := flat[cval]; ok {
				row += "\t" + fmt.Sprint(v)
			} else {
				row += "\t" + missingCell
			}
		}
		fmt.Fprintln(tw, row)
	}

	return tw.Flush()
}

// Diff returns a human-readable diff between two records, or the empty
// string if they are equal.
func Diff(a, b benchmark.Record) string {
	return cmp.Diff(a, b)
}
