package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// table is a parsed delimited file: one header row plus data rows.
type table struct {
	header []string
	rows   [][]string
}

// readTable reads a CSV/TSV file with a header row.
func readTable(path string, sep rune) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header row", path)
	}
	return &table{header: records[0], rows: records[1:]}, nil
}

// column extracts the named column's values, one per data row.
func (t *table) column(name string) ([]string, error) {
	idx := -1
	for i, h := range t.header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in header %v", name, t.header)
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		if idx >= len(row) {
			return nil, fmt.Errorf("row %d has %d fields, column %q is field %d", i+1, len(row), name, idx+1)
		}
		out[i] = row[idx]
	}
	return out, nil
}

// writeDense writes a dense descriptor table: an optional ID column followed
// by one column per feature, header names taken from colNames.
func writeDense(path string, sep rune, idHeader string, ids []string, colNames []string, dense [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = sep

	header := make([]string, 0, len(colNames)+1)
	if idHeader != "" {
		header = append(header, idHeader)
	}
	header = append(header, colNames...)
	if err = w.Write(header); err != nil {
		return err
	}

	for i, row := range dense {
		rec := make([]string, 0, len(row)+1)
		if idHeader != "" {
			rec = append(rec, ids[i])
		}
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err = w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// featureNames labels descriptor columns frag_1..frag_n, optionally prefixed
// with the source column for composed output.
func featureNames(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		if prefix != "" {
			out[i] = fmt.Sprintf("%s_frag_%d", prefix, i+1)
		} else {
			out[i] = fmt.Sprintf("frag_%d", i+1)
		}
	}
	return out
}

// parseSep converts a separator flag value ("," "\t" ";") to a rune.
func parseSep(s string) (rune, error) {
	switch s {
	case ",":
		return ',', nil
	case "\t", "\\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		if len([]rune(s)) == 1 {
			return []rune(s)[0], nil
		}
		return 0, fmt.Errorf("invalid separator %q", s)
	}
}

// exitWithError prints a formatted message to stderr and exits.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(code)
}
