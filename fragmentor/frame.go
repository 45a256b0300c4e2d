package fragmentor

import (
	"fmt"

	"github.com/katalvlaran/circus/chem"
)

// ParseFunc converts one raw structure string (e.g. SMILES) into a molecule.
type ParseFunc func(string) (*chem.Molecule, error)

// Frame is an ordered set of equal-length dataset columns of molecules.
// Rows align 1:1 across columns. Conversion failures are recorded per row
// rather than failing the whole frame; the Composer's RowPolicy decides
// their fate.
type Frame struct {
	rows  int
	names []string
	cols  map[string]*column
}

// column holds one structural column: a molecule (or nil) and an optional
// conversion error per row.
type column struct {
	mols []chem.MoleculeView
	errs []*RowError
}

// NewFrame returns an empty frame. The first column added fixes the row
// count. Complexity: O(1).
func NewFrame() *Frame {
	return &Frame{cols: make(map[string]*column)}
}

// Rows reports the row count.
func (f *Frame) Rows() int { return f.rows }

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// AddColumn adds a column of already-built molecules. A nil entry marks a
// missing structure for that row. Returns ErrColumnLength when the length
// disagrees with previously added columns.
func (f *Frame) AddColumn(name string, mols []chem.MoleculeView) error {
	if err := f.checkLen(name, len(mols)); err != nil {
		return err
	}
	col := &column{mols: mols, errs: make([]*RowError, len(mols))}
	for i, m := range mols {
		if m == nil {
			col.errs[i] = &RowError{Row: i, Column: name, Err: fmt.Errorf("missing structure")}
		}
	}
	f.put(name, col)
	return nil
}

// AddStringColumn adds a column of raw structure strings, converting each
// row with parse. Failed rows are recorded as RowErrors, not returned here.
func (f *Frame) AddStringColumn(name string, raw []string, parse ParseFunc) error {
	if err := f.checkLen(name, len(raw)); err != nil {
		return err
	}
	col := &column{mols: make([]chem.MoleculeView, len(raw)), errs: make([]*RowError, len(raw))}
	for i, s := range raw {
		m, err := parse(s)
		if err != nil {
			col.errs[i] = &RowError{Row: i, Column: name, Err: err}
			continue
		}
		col.mols[i] = m
	}
	f.put(name, col)
	return nil
}

func (f *Frame) checkLen(name string, n int) error {
	if len(f.names) > 0 && n != f.rows {
		return fmt.Errorf("%w: column %q has %d rows, frame has %d", ErrColumnLength, name, n, f.rows)
	}
	return nil
}

func (f *Frame) put(name string, col *column) {
	if _, exists := f.cols[name]; !exists {
		f.names = append(f.names, name)
	}
	f.cols[name] = col
	f.rows = len(col.mols)
}
