package circus

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/circus/chem"
)

// Generator is the CircuS descriptor generator: it orchestrates fragment
// enumeration, canonicalization, and the vocabulary across every root and
// radius of each molecule, producing one sparse count vector per molecule.
//
// Configuration is fixed at construction. Fit builds and freezes the
// vocabulary; Transform is then safe for concurrent use.
type Generator struct {
	cfg     Config
	policy  UnknownPolicy
	workers int
	vocab   *Vocabulary
}

// compile-time check: *Generator satisfies the shared contract.
var _ Transformer = (*Generator)(nil)

// NewGenerator constructs a Generator enumerating radii [lower, upper].
// Returns ErrInvalidRadiusRange for a malformed range and ErrOptionViolation
// for an invalid option.
func NewGenerator(lower, upper int, opts ...Option) (*Generator, error) {
	o := defaultGenOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	cfg := Config{Lower: lower, Upper: upper, OnBond: o.onBond}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg:     cfg,
		policy:  o.policy,
		workers: o.workers,
		vocab:   NewVocabulary(),
	}, nil
}

// Restore reconstructs a fitted Generator from a persisted configuration and
// frozen vocabulary. Returns ErrNotFitted if the vocabulary is not frozen.
func Restore(cfg Config, vocab *Vocabulary, opts ...Option) (*Generator, error) {
	o := defaultGenOptions()
	o.onBond = cfg.OnBond
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if vocab == nil || !vocab.Frozen() {
		return nil, fmt.Errorf("%w: restore requires a frozen vocabulary", ErrNotFitted)
	}
	cfg.OnBond = o.onBond
	return &Generator{cfg: cfg, policy: o.policy, workers: o.workers, vocab: vocab}, nil
}

// Config returns the generator's immutable configuration.
func (g *Generator) Config() Config { return g.cfg }

// Vocabulary exposes the generator's vocabulary (frozen after Fit), e.g. for
// persistence.
func (g *Generator) Vocabulary() *Vocabulary { return g.vocab }

// Width reports the frozen vocabulary size. Zero before Fit.
func (g *Generator) Width() int { return g.vocab.Len() }

// ColumnKeys returns the canonical key of every output column in order.
func (g *Generator) ColumnKeys() []string { return g.vocab.Keys() }

// Fit enumerates every fragment of every molecule, observes the resulting
// canonical keys into the vocabulary in traversal order, and freezes it.
// Molecules are processed sequentially so index assignment is deterministic:
// it equals first-observed order. Returns ErrAlreadyFitted on a second call.
func (g *Generator) Fit(ctx context.Context, mols []chem.MoleculeView) error {
	if g.vocab.Frozen() {
		return ErrAlreadyFitted
	}
	for i, m := range mols {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		keys, err := g.moleculeKeys(m)
		if err != nil {
			return fmt.Errorf("circus: fit molecule %d: %w", i, err)
		}
		for _, k := range keys {
			if _, err = g.vocab.Observe(k); err != nil {
				return err
			}
		}
	}
	g.vocab.Freeze()
	return nil
}

// Transform produces one feature vector per molecule, rows aligned to input
// order. Fragments are counted with multiplicity. Unseen keys follow the
// configured UnknownPolicy. Requires a prior Fit; repeat transforms of the
// same input yield bit-identical matrices.
//
// Post-freeze rows are independent, so with WithWorkers(n>1) molecules are
// transformed in parallel.
func (g *Generator) Transform(ctx context.Context, mols []chem.MoleculeView) (*Matrix, error) {
	if !g.vocab.Frozen() {
		return nil, ErrNotFitted
	}
	rows := make([]Vector, len(mols))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, m := range mols {
		eg.Go(func() error {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			default:
			}
			row, err := g.transformOne(m)
			if err != nil {
				return fmt.Errorf("circus: transform molecule %d: %w", i, err)
			}
			rows[i] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return NewMatrix(g.vocab.Len(), rows), nil
}

// FitTransform fits on mols and returns their feature matrix, sharing one
// enumeration pass instead of re-enumerating fragments.
func (g *Generator) FitTransform(ctx context.Context, mols []chem.MoleculeView) (*Matrix, error) {
	if g.vocab.Frozen() {
		return nil, ErrAlreadyFitted
	}
	perMol := make([][]string, len(mols))
	for i, m := range mols {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		keys, err := g.moleculeKeys(m)
		if err != nil {
			return nil, fmt.Errorf("circus: fit molecule %d: %w", i, err)
		}
		for _, k := range keys {
			if _, err = g.vocab.Observe(k); err != nil {
				return nil, err
			}
		}
		perMol[i] = keys
	}
	g.vocab.Freeze()

	rows := make([]Vector, len(mols))
	for i, keys := range perMol {
		row := make(Vector, len(keys))
		for _, k := range keys {
			idx, _ := g.vocab.Lookup(k)
			row[idx]++
		}
		rows[i] = row
	}
	return NewMatrix(g.vocab.Len(), rows), nil
}

// transformOne builds the sparse count vector of one molecule. An empty
// fragment set (e.g. an empty molecule) yields the zero vector.
func (g *Generator) transformOne(m chem.MoleculeView) (Vector, error) {
	keys, err := g.moleculeKeys(m)
	if err != nil {
		return nil, err
	}
	row := make(Vector, len(keys))
	for _, k := range keys {
		idx, ok := g.vocab.Lookup(k)
		if !ok {
			if g.policy == ErrorUnknown {
				return nil, fmt.Errorf("%w: %q", ErrUnknownFragmentKey, k)
			}
			continue // DropUnknown
		}
		row[idx]++
	}
	return row, nil
}

// moleculeKeys enumerates every root and radius of m and returns the
// canonical keys in deterministic traversal order, with multiplicity.
func (g *Generator) moleculeKeys(m chem.MoleculeView) ([]string, error) {
	if m == nil {
		return nil, ErrNilMolecule
	}
	roots := m.AtomCount()
	enumerate := AtomFragments
	if g.cfg.OnBond {
		roots = m.BondCount()
		enumerate = BondFragments
	}
	keys := make([]string, 0, roots*(g.cfg.Upper-g.cfg.Lower+1))
	for root := 0; root < roots; root++ {
		frags, err := enumerate(m, root, g.cfg.Lower, g.cfg.Upper)
		if err != nil {
			return nil, err
		}
		for _, f := range frags {
			keys = append(keys, CanonicalKey(m, f))
		}
	}
	return keys, nil
}
