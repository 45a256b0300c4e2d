package fragmentor

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/circus"
)

// Composer applies one or more independently configured descriptor
// generators to designated structural columns of a dataset and concatenates
// their outputs column-wise, in association order, into one feature matrix
// with explicit block provenance.
type Composer struct {
	assocs []Association
	policy RowPolicy
	fitted bool
	blocks []Block
}

// Composed is the output of one Transform: the concatenated matrix, the
// per-association block provenance, the original indices of the rows that
// survived the row policy, and the failures that were skipped.
type Composed struct {
	// Matrix holds one row per kept dataset row; width is the sum of all
	// block widths.
	Matrix *circus.Matrix

	// Blocks records, in association order, which composed columns belong
	// to which association.
	Blocks []Block

	// Kept maps matrix row → original dataset row index.
	Kept []int

	// Skipped lists the row failures dropped under SkipRows; empty under
	// FailFast (which aborts instead).
	Skipped []*RowError
}

// Slice extracts one provenance block as a standalone matrix: the sub-block
// equals that generator's own transform of the same kept rows.
func (c *Composed) Slice(b Block) *circus.Matrix {
	rows := make([]circus.Vector, c.Matrix.Rows())
	for i := 0; i < c.Matrix.Rows(); i++ {
		row := make(circus.Vector)
		for col, n := range c.Matrix.Row(i) {
			if col >= b.Offset && col < b.Offset+b.Width {
				row[col-b.Offset] = n
			}
		}
		rows[i] = row
	}
	return circus.NewMatrix(b.Width, rows)
}

// NewComposer builds a Composer over the ordered associations. The same
// column may appear in several associations (e.g. with different radius
// ranges). Returns ErrNoAssociations for an empty list.
func NewComposer(assocs []Association, opts ...Option) (*Composer, error) {
	if len(assocs) == 0 {
		return nil, ErrNoAssociations
	}
	o := composerOptions{policy: SkipRows}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	cp := make([]Association, len(assocs))
	copy(cp, assocs)
	return &Composer{assocs: cp, policy: o.policy}, nil
}

// Associations returns a copy of the column/generator associations in order.
func (c *Composer) Associations() []Association {
	out := make([]Association, len(c.assocs))
	copy(out, c.assocs)
	return out
}

// Blocks returns the block provenance established by Fit.
func (c *Composer) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Width reports the total composed width. Zero before Fit.
func (c *Composer) Width() int {
	w := 0
	for _, b := range c.blocks {
		w += b.Width
	}
	return w
}

// Fit fits each association's generator independently on its designated
// column, using only the rows that survive the row policy, then records
// block provenance. Returns ErrAlreadyFitted on a second call; under
// FailFast the first RowError aborts the fit.
func (c *Composer) Fit(ctx context.Context, f *Frame) error {
	if c.fitted {
		return ErrAlreadyFitted
	}
	kept, _, err := c.partition(f)
	if err != nil {
		return err
	}
	offset := 0
	for i, a := range c.assocs {
		mols := pick(f.cols[a.Column].mols, kept)
		if err = a.Gen.Fit(ctx, mols); err != nil {
			return fmt.Errorf("fragmentor: fit association %d (%q): %w", i, a.Column, err)
		}
		c.blocks = append(c.blocks, Block{Column: a.Column, Offset: offset, Width: a.Gen.Width()})
		offset += a.Gen.Width()
	}
	c.fitted = true
	return nil
}

// Transform transforms each associated column with its generator and
// concatenates the blocks column-wise in association order. Rows across
// blocks align 1:1 by dataset row. Requires a prior Fit.
func (c *Composer) Transform(ctx context.Context, f *Frame) (*Composed, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}
	kept, skipped, err := c.partition(f)
	if err != nil {
		return nil, err
	}
	width := c.Width()
	rows := make([]circus.Vector, len(kept))
	for i := range rows {
		rows[i] = make(circus.Vector)
	}
	for i, a := range c.assocs {
		mat, err := a.Gen.Transform(ctx, pick(f.cols[a.Column].mols, kept))
		if err != nil {
			return nil, fmt.Errorf("fragmentor: transform association %d (%q): %w", i, a.Column, err)
		}
		off := c.blocks[i].Offset
		for r := 0; r < mat.Rows(); r++ {
			for col, n := range mat.Row(r) {
				rows[r][off+col] = n
			}
		}
	}
	return &Composed{
		Matrix:  circus.NewMatrix(width, rows),
		Blocks:  c.Blocks(),
		Kept:    kept,
		Skipped: skipped,
	}, nil
}

// partition validates the frame against the associations and splits its
// rows into kept and skipped according to the row policy. A row failing in
// any associated column fails as a whole.
func (c *Composer) partition(f *Frame) (kept []int, skipped []*RowError, err error) {
	for _, a := range c.assocs {
		if _, ok := f.cols[a.Column]; !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrColumnMissing, a.Column)
		}
	}
	bad := make(map[int]*RowError)
	for _, a := range c.assocs {
		for _, re := range f.cols[a.Column].errs {
			if re == nil {
				continue
			}
			if prev, dup := bad[re.Row]; !dup || re.Column < prev.Column {
				bad[re.Row] = re
			}
		}
	}
	if c.policy == FailFast && len(bad) > 0 {
		first := -1
		for row := range bad {
			if first < 0 || row < first {
				first = row
			}
		}
		return nil, nil, bad[first]
	}
	for row := 0; row < f.Rows(); row++ {
		if re, isBad := bad[row]; isBad {
			skipped = append(skipped, re)
			continue
		}
		kept = append(kept, row)
	}
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].Row < skipped[j].Row })
	return kept, skipped, nil
}

// pick projects the rows at the kept indices.
func pick[T any](xs []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = xs[j]
	}
	return out
}
