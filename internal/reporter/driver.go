package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Driver is a named serialization implementation bound to a file format. It
// encodes and decodes the compacted row form of benchmark records.
type Driver interface {
	Encode(w io.Writer, rows []map[string]any) error
	Decode(r io.Reader) ([]map[string]any, error)
}

var drivers = newRegistry[Driver]("file format")

// RegisterDriver adds a file driver under the given name.
func RegisterDriver(name string, d Driver) error {
	return drivers.register(name, d)
}

// DeregisterDriver removes a file driver by name.
func DeregisterDriver(name string) {
	drivers.deregister(name)
}

// LookupDriver returns the driver registered under name.
func LookupDriver(name string) (Driver, error) {
	return drivers.lookup(name)
}

type jsonDriver struct {
	// newline switches to newline-delimited output, one row per line.
	newline bool
}

func (d jsonDriver) Encode(w io.Writer, rows []map[string]any) error {
	enc := json.NewEncoder(w)
	if !d.newline {
		return enc.Encode(rows)
	}
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

func (d jsonDriver) Decode(r io.Reader) ([]map[string]any, error) {
	dec := json.NewDecoder(r)
	if !d.newline {
		var rows []map[string]any
		if err := dec.Decode(&rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	var rows []map[string]any
	for {
		var row map[string]any
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type yamlDriver struct{}

func (yamlDriver) Encode(w io.Writer, rows []map[string]any) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

func (yamlDriver) Decode(r io.Reader) ([]map[string]any, error) {
	var rows []map[string]any
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// csvDriver writes rows against the union of all row keys, sorted for a
// stable header. Non-scalar cells are embedded as JSON; decoded cells come
// back as strings, matching the format's untyped nature.
type csvDriver struct{}

func (csvDriver) Encode(w io.Writer, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}

	headerSet := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			headerSet[k] = struct{}{}
		}
	}
	header := make([]string, 0, len(headerSet))
	for k := range headerSet {
		header = append(header, k)
	}
	sort.Strings(header)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, k := range header {
			v, ok := row[k]
			if !ok || v == nil {
				continue
			}
			switch v.(type) {
			case map[string]any, []any, []string:
				b, err := json.Marshal(v)
				if err != nil {
					return fmt.Errorf("csv: cannot encode column %q: %w", k, err)
				}
				cells[i] = string(b)
			default:
				cells[i] = fmt.Sprint(v)
			}
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (csvDriver) Decode(r io.Reader) ([]map[string]any, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]any, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]any, len(header))
		for i, k := range header {
			if i < len(record) && record[i] != "" {
				row[k] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func init() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(RegisterDriver("json", jsonDriver{}))
	must(RegisterDriver("jsonl", jsonDriver{newline: true}))
	must(RegisterDriver("ndjson", jsonDriver{newline: true}))
	must(RegisterDriver("yaml", yamlDriver{}))
	must(RegisterDriver("csv", csvDriver{}))
}
