package coloratom

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/circus"
	"github.com/katalvlaran/circus/chem"
)

// ColorAtom attributes an external model's prediction back to individual
// atoms by perturb-and-rescore: for each atom it derives a new molecule with
// that atom (or its surrounding fragment) removed, reruns the full
// descriptor+score pipeline, and records the score delta.
//
// The generator must already be fitted; ColorAtom itself holds no mutable
// state, so one instance may explain many molecules concurrently.
type ColorAtom struct {
	gen     circus.Transformer
	score   ScoreFunc
	workers int
	radius  int
}

// New builds a ColorAtom over a fitted generator and an opaque scoring
// function.
func New(gen circus.Transformer, score ScoreFunc, opts ...Option) (*ColorAtom, error) {
	if gen == nil {
		return nil, ErrNilTransformer
	}
	if score == nil {
		return nil, ErrNilScore
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return &ColorAtom{gen: gen, score: score, workers: o.workers, radius: o.radius}, nil
}

// Explain computes the attribution map of one molecule: for every atom a,
// score(m) minus score(m with a's perturbation removed). Removing atoms also
// removes their incident bonds; disconnected remainders are kept. A
// perturbed molecule whose fragment set is empty scores against the zero
// feature vector rather than failing, so even a total removal is defined.
//
// Atoms are independent, so with WithWorkers(n>1) perturbations run in
// parallel. Scoring failures carry the perturbed atom via *AtomError.
func (c *ColorAtom) Explain(ctx context.Context, m *chem.Molecule) (Attribution, error) {
	if m == nil {
		return nil, circus.ErrNilMolecule
	}
	if m.AtomCount() == 0 {
		return Attribution{}, nil
	}
	base, err := c.pipeline(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("coloratom: original molecule: %w", err)
	}

	deltas := make([]float64, m.AtomCount())
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)
	for i := 0; i < m.AtomCount(); i++ {
		eg.Go(func() error {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			default:
			}
			drop, dErr := c.dropSet(m, i)
			if dErr != nil {
				return &AtomError{AtomIdx: i, Err: dErr}
			}
			perturbed, _ := chem.RemoveAtoms(m, drop)
			s, pErr := c.pipeline(egCtx, perturbed)
			if pErr != nil {
				return &AtomError{AtomIdx: i, Err: pErr}
			}
			deltas[i] = base - s
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	out := make(Attribution, len(deltas))
	for i, d := range deltas {
		out[i] = d
	}
	return out, nil
}

// dropSet selects the atoms removed when perturbing root: the root alone by
// default, or its whole radius-r circular fragment under WithFragmentRadius.
func (c *ColorAtom) dropSet(m *chem.Molecule, root int) (map[int]bool, error) {
	if c.radius < 0 {
		return map[int]bool{root: true}, nil
	}
	frags, err := circus.AtomFragments(m, root, c.radius, c.radius)
	if err != nil {
		return nil, err
	}
	drop := make(map[int]bool)
	for _, f := range frags {
		for _, a := range f.Atoms {
			drop[a] = true
		}
	}
	return drop, nil
}

// pipeline runs descriptor generation and scoring for one molecule.
func (c *ColorAtom) pipeline(ctx context.Context, m chem.MoleculeView) (float64, error) {
	mat, err := c.gen.Transform(ctx, []chem.MoleculeView{m})
	if err != nil {
		return 0, err
	}
	return c.score(mat.Row(0).Dense(mat.Width()))
}
