package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aai-institute/mlbench/internal/benchmark"
)

// FileReporter writes and reads benchmark records to files. The serializer
// and optional decompressor are selected from the destination name by the
// `<driver>.<compression>` extension convention, e.g. "results.json.gz"
// selects the json driver composed with gzip.
type FileReporter struct {
	// Destination used by Report. Write and Read take an explicit one.
	Destination string

	// ContextMode controls context handling on write; defaults to inline.
	ContextMode benchmark.ContextMode

	// Sep joins flattened context keys; defaults to ".".
	Sep string
}

// NewFileReporter returns a FileReporter writing to the given destination
// with the context inlined into each record.
func NewFileReporter(destination string) *FileReporter {
	return &FileReporter{Destination: destination, ContextMode: benchmark.ModeInline}
}

// splitDestination picks the driver and optional compression names from the
// trailing extensions of a destination.
func splitDestination(dest string) (driver, compression string, err error) {
	name := dest
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("destination %q has no file extension", dest)
	}

	// Prefer <driver>.<compression> when the last extension names a
	// registered codec; otherwise the last extension is the driver.
	last := parts[len(parts)-1]
	if len(parts) >= 3 {
		if _, cerr := LookupCompression(last); cerr == nil {
			return parts[len(parts)-2], last, nil
		}
	}
	return last, "", nil
}

// Report writes the record to the reporter's configured destination.
func (f *FileReporter) Report(record *benchmark.Record) error {
	if f.Destination == "" {
		return fmt.Errorf("file reporter has no destination configured")
	}
	return f.Write([]benchmark.Record{*record}, f.Destination)
}

// Write serializes records to the destination, one compacted row per
// benchmark outcome.
func (f *FileReporter) Write(records []benchmark.Record, destination string) error {
	driverName, compressionName, err := splitDestination(destination)
	if err != nil {
		return err
	}
	driver, err := LookupDriver(driverName)
	if err != nil {
		return err
	}

	mode := f.ContextMode
	if mode == "" {
		mode = benchmark.ModeInline
	}
	sep := f.Sep
	if sep == "" {
		sep = "."
	}

	var rows []map[string]any
	for _, record := range records {
		rows = append(rows, record.Compact(mode, sep)...)
	}

	file, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer file.Close()

	var w io.Writer = file
	if compressionName != "" {
		compression, err := LookupCompression(compressionName)
		if err != nil {
			return err
		}
		wc, err := compression.WrapWriter(file)
		if err != nil {
			return err
		}
		defer wc.Close()
		w = wc
	}

	return driver.Encode(w, rows)
}

// Read deserializes the records stored at the destination, reassembling the
// context from whichever mode it was written with.
func (f *FileReporter) Read(destination string) ([]benchmark.Record, error) {
	driverName, compressionName, err := splitDestination(destination)
	if err != nil {
		return nil, err
	}
	driver, err := LookupDriver(driverName)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(destination)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if compressionName != "" {
		compression, err := LookupCompression(compressionName)
		if err != nil {
			return nil, err
		}
		rc, err := compression.WrapReader(file)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		r = rc
	}

	rows, err := driver.Decode(r)
	if err != nil {
		return nil, err
	}
	return []benchmark.Record{benchmark.Expand(rows)}, nil
}
