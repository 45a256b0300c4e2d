package coloratom_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circus"
	"github.com/katalvlaran/circus/chem"
	"github.com/katalvlaran/circus/coloratom"
	"github.com/katalvlaran/circus/smiles"
)

func mol(t *testing.T, s string) *chem.Molecule {
	t.Helper()
	m, err := smiles.Parse(s)
	require.NoError(t, err)
	return m
}

func fitted(t *testing.T, lower, upper int, mols ...*chem.Molecule) *circus.Generator {
	t.Helper()
	g, err := circus.NewGenerator(lower, upper)
	require.NoError(t, err)
	views := make([]chem.MoleculeView, len(mols))
	for i, m := range mols {
		views[i] = m
	}
	require.NoError(t, g.Fit(context.Background(), views))
	return g
}

func sum(vec []float64) (float64, error) {
	s := 0.0
	for _, v := range vec {
		s += v
	}
	return s, nil
}

// TestExplain_EthaneRemovalIsDefined: removing one of ethane's two atoms
// leaves a lone carbon whose fragments were never seen during fit. The
// perturbed vector is the zero vector, not an error, and the delta is the
// full original score.
func TestExplain_EthaneRemovalIsDefined(t *testing.T) {
	ethane := mol(t, "CC")
	g := fitted(t, 0, 1, ethane)

	ca, err := coloratom.New(g, sum)
	require.NoError(t, err)

	attr, err := ca.Explain(context.Background(), ethane)
	require.NoError(t, err)

	// Base vector is [2, 2]: both radius-0 and radius-1 keys counted twice.
	require.Equal(t, coloratom.Attribution{0: 4, 1: 4}, attr)
}

// TestExplain_ButaneMiddleCount attributes a "middle carbon count" model
// over butane: removing an inner atom destroys both middle environments,
// removing a terminal atom only one.
func TestExplain_ButaneMiddleCount(t *testing.T) {
	butane := mol(t, "CCCC")
	g := fitted(t, 0, 0, butane)
	require.Equal(t, 2, g.Width())

	// Column 1 is the two-neighbor carbon: butane fits terminal first.
	middles := func(vec []float64) (float64, error) { return vec[1], nil }
	ca, err := coloratom.New(g, middles)
	require.NoError(t, err)

	attr, err := ca.Explain(context.Background(), butane)
	require.NoError(t, err)
	require.Equal(t, coloratom.Attribution{0: 1, 1: 2, 2: 2, 3: 1}, attr)
}

// TestExplain_FragmentRadius removes the whole radius-1 neighborhood around
// each root instead of the single atom.
func TestExplain_FragmentRadius(t *testing.T) {
	butane := mol(t, "CCCC")
	g := fitted(t, 0, 0, butane)
	middles := func(vec []float64) (float64, error) { return vec[1], nil }

	ca, err := coloratom.New(g, middles, coloratom.WithFragmentRadius(1))
	require.NoError(t, err)

	attr, err := ca.Explain(context.Background(), butane)
	require.NoError(t, err)

	// Every radius-1 neighborhood of butane covers at least one inner atom
	// and leaves no adjacent pair behind, so each delta is the full base
	// score of 2.
	require.Len(t, attr, 4)
	for i := 0; i < 4; i++ {
		require.Equal(t, 2.0, attr[i], "atom %d", i)
	}
}

// TestExplain_ParallelMatchesSequential: worker count must not change the
// attribution.
func TestExplain_ParallelMatchesSequential(t *testing.T) {
	butane := mol(t, "CCCC")
	g := fitted(t, 0, 1, butane)

	seq, err := coloratom.New(g, sum)
	require.NoError(t, err)
	par, err := coloratom.New(g, sum, coloratom.WithWorkers(4))
	require.NoError(t, err)

	want, err := seq.Explain(context.Background(), butane)
	require.NoError(t, err)
	got, err := par.Explain(context.Background(), butane)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestExplain_ScoreErrorCarriesAtom: a scoring failure on a perturbed
// molecule surfaces as an AtomError naming the removed atom.
func TestExplain_ScoreErrorCarriesAtom(t *testing.T) {
	ethane := mol(t, "CC")
	g := fitted(t, 0, 1, ethane)

	modelErr := errors.New("model rejected input")
	score := func(vec []float64) (float64, error) {
		s, _ := sum(vec)
		if s == 0 {
			// Only the perturbed lone-carbon vector is all zero.
			return 0, modelErr
		}
		return s, nil
	}
	ca, err := coloratom.New(g, score)
	require.NoError(t, err)

	_, err = ca.Explain(context.Background(), ethane)
	require.ErrorIs(t, err, modelErr)
	var ae *coloratom.AtomError
	require.ErrorAs(t, err, &ae)
	require.Contains(t, []int{0, 1}, ae.AtomIdx)
}

// TestExplain_InputErrors covers nil molecules and an unfitted generator.
func TestExplain_InputErrors(t *testing.T) {
	g, err := circus.NewGenerator(0, 1)
	require.NoError(t, err)

	ca, err := coloratom.New(g, sum)
	require.NoError(t, err)

	_, err = ca.Explain(context.Background(), nil)
	require.ErrorIs(t, err, circus.ErrNilMolecule)

	_, err = ca.Explain(context.Background(), mol(t, "CC"))
	require.ErrorIs(t, err, circus.ErrNotFitted)
}

// TestNew_Validation rejects nil collaborators and bad options.
func TestNew_Validation(t *testing.T) {
	g, err := circus.NewGenerator(0, 1)
	require.NoError(t, err)

	_, err = coloratom.New(nil, sum)
	require.ErrorIs(t, err, coloratom.ErrNilTransformer)

	_, err = coloratom.New(g, nil)
	require.ErrorIs(t, err, coloratom.ErrNilScore)

	_, err = coloratom.New(g, sum, coloratom.WithWorkers(0))
	require.ErrorIs(t, err, coloratom.ErrOptionViolation)

	_, err = coloratom.New(g, sum, coloratom.WithFragmentRadius(-1))
	require.ErrorIs(t, err, coloratom.ErrOptionViolation)
}

// TestExplain_EmptyMolecule yields an empty attribution without error.
func TestExplain_EmptyMolecule(t *testing.T) {
	empty, err := chem.NewBuilder().Build()
	require.NoError(t, err)
	g := fitted(t, 0, 1, mol(t, "CC"))

	ca, err := coloratom.New(g, sum)
	require.NoError(t, err)

	attr, err := ca.Explain(context.Background(), empty)
	require.NoError(t, err)
	require.Empty(t, attr)
}
