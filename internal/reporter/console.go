package reporter

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/gookit/color"

	"github.com/aai-institute/mlbench/internal/benchmark"
)

const missingCell = "-----"

// ConsoleReporter renders a benchmark record as an aligned table, with the
// context printed above it. Failed benchmarks show their captured error
// message instead of a value.
type ConsoleReporter struct {
	Out io.Writer
}

// NewConsoleReporter returns a ConsoleReporter writing to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{Out: os.Stdout}
}

// outcomeCell renders an outcome's value column.
func outcomeCell(o benchmark.Outcome) string {
	if o.ErrorOccurred {
		msg := o.ErrorMessage
		if msg == "" {
			msg = "<unknown>"
		}
		return color.Red.Sprint("ERROR: ") + msg
	}
	if o.Value == nil {
		return missingCell
	}
	return fmt.Sprint(o.Value)
}

// Report implements Reporter.
func (c *ConsoleReporter) Report(record *benchmark.Record) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	ctxKeys := make([]string, 0, len(record.Context))
	for k := range record.Context {
		ctxKeys = append(ctxKeys, k)
	}
	sort.Strings(ctxKeys)
	for _, k := range ctxKeys {
		if _, err := fmt.Fprintf(out, "%s: %v\n", k, record.Context[k]); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Benchmark\tValue")
	for _, o := range record.Benchmarks {
		fmt.Fprintf(tw, "%s\t%s\n", o.Name, outcomeCell(o))
	}
	return tw.Flush()
}

func init() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(Register("console", func() (Reporter, error) {
		return NewConsoleReporter(), nil
	}))
	must(Register("file", func() (Reporter, error) {
		return &FileReporter{ContextMode: benchmark.ModeInline}, nil
	}))
}
