package circus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circus"
	"github.com/katalvlaran/circus/chem"
)

func views(ms ...*chem.Molecule) []chem.MoleculeView {
	out := make([]chem.MoleculeView, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

func TestNewGenerator_Errors(t *testing.T) {
	_, err := circus.NewGenerator(2, 1)
	require.ErrorIs(t, err, circus.ErrInvalidRadiusRange)
	_, err = circus.NewGenerator(-1, 1)
	require.ErrorIs(t, err, circus.ErrInvalidRadiusRange)
	_, err = circus.NewGenerator(0, 1, circus.WithWorkers(0))
	require.ErrorIs(t, err, circus.ErrOptionViolation)
	_, err = circus.NewGenerator(0, 1, circus.WithUnknownPolicy(circus.UnknownPolicy(9)))
	require.ErrorIs(t, err, circus.ErrOptionViolation)
}

// TestGenerator_EthaneScenario: ethane with lower=0 upper=1 yields exactly
// two vocabulary keys and the count vector [2, 2].
func TestGenerator_EthaneScenario(t *testing.T) {
	ctx := context.Background()
	ethane := mkChain(t, 2)
	gen, err := circus.NewGenerator(0, 1)
	require.NoError(t, err)

	mat, err := gen.FitTransform(ctx, views(ethane))
	require.NoError(t, err)
	require.Equal(t, 2, gen.Width())
	require.Equal(t, 1, mat.Rows())
	require.Equal(t, []float64{2, 2}, mat.Row(0).Dense(mat.Width()))
}

// TestGenerator_PropaneScenario: propane's radius-0 fragments split into
// terminal (count 2) and middle (count 1) carbon keys.
func TestGenerator_PropaneScenario(t *testing.T) {
	ctx := context.Background()
	propane := mkChain(t, 3)
	gen, err := circus.NewGenerator(0, 0)
	require.NoError(t, err)

	mat, err := gen.FitTransform(ctx, views(propane))
	require.NoError(t, err)
	require.Equal(t, 2, gen.Width())
	// terminal carbon observed first (root 0), then middle (root 1)
	require.Equal(t, []float64{2, 1}, mat.Row(0).Dense(mat.Width()))

	// ethane's carbons have degree 1, same as propane's terminals, so the
	// existing terminal-carbon column is reused and no new column appears.
	ethane := mkChain(t, 2)
	emat, err := gen.Transform(ctx, views(ethane))
	require.NoError(t, err)
	require.Equal(t, []float64{2, 0}, emat.Row(0).Dense(emat.Width()))
}

// TestGenerator_Determinism: transforming twice yields bit-identical rows,
// sequentially and in parallel.
func TestGenerator_Determinism(t *testing.T) {
	ctx := context.Background()
	mols := views(mkChain(t, 2), mkChain(t, 3), mkBenzene(t), mkChain(t, 5))

	gen, err := circus.NewGenerator(0, 2)
	require.NoError(t, err)
	require.NoError(t, gen.Fit(ctx, mols))

	first, err := gen.Transform(ctx, mols)
	require.NoError(t, err)
	second, err := gen.Transform(ctx, mols)
	require.NoError(t, err)
	require.Equal(t, first.Dense(), second.Dense())

	par, err := circus.Restore(gen.Config(), gen.Vocabulary(), circus.WithWorkers(4))
	require.NoError(t, err)
	third, err := par.Transform(ctx, mols)
	require.NoError(t, err)
	require.Equal(t, first.Dense(), third.Dense())
}

// TestGenerator_Lifecycle: transform before fit and double fit are rejected.
func TestGenerator_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mols := views(mkChain(t, 2))
	gen, err := circus.NewGenerator(0, 1)
	require.NoError(t, err)

	_, err = gen.Transform(ctx, mols)
	require.ErrorIs(t, err, circus.ErrNotFitted)

	require.NoError(t, gen.Fit(ctx, mols))
	require.ErrorIs(t, gen.Fit(ctx, mols), circus.ErrAlreadyFitted)
	_, err = gen.FitTransform(ctx, mols)
	require.ErrorIs(t, err, circus.ErrAlreadyFitted)
}

// TestGenerator_UnknownPolicy: fitting on ethane then transforming propane
// meets unseen keys; drop ignores them, error surfaces them.
func TestGenerator_UnknownPolicy(t *testing.T) {
	ctx := context.Background()
	ethane := views(mkChain(t, 2))
	propane := views(mkChain(t, 3))

	drop, err := circus.NewGenerator(0, 1)
	require.NoError(t, err)
	require.NoError(t, drop.Fit(ctx, ethane))
	mat, err := drop.Transform(ctx, propane)
	require.NoError(t, err)
	// only the terminal-carbon radius-0 key is shared with ethane's vocabulary
	require.Equal(t, []float64{2, 0}, mat.Row(0).Dense(mat.Width()))

	strict, err := circus.NewGenerator(0, 1, circus.WithUnknownPolicy(circus.ErrorUnknown))
	require.NoError(t, err)
	require.NoError(t, strict.Fit(ctx, ethane))
	_, err = strict.Transform(ctx, propane)
	require.ErrorIs(t, err, circus.ErrUnknownFragmentKey)
}

// TestGenerator_OnBond: bond-rooted enumeration over ethane has a single
// root, the C-C bond.
func TestGenerator_OnBond(t *testing.T) {
	ctx := context.Background()
	ethane := mkChain(t, 2)
	gen, err := circus.NewGenerator(0, 0, circus.WithOnBond())
	require.NoError(t, err)
	require.True(t, gen.Config().OnBond)

	mat, err := gen.FitTransform(ctx, views(ethane))
	require.NoError(t, err)
	require.Equal(t, 1, gen.Width())
	require.Equal(t, []float64{1}, mat.Row(0).Dense(mat.Width()))
}

// TestGenerator_EmptyMolecule: an empty fragment set yields the zero
// vector, not an error.
func TestGenerator_EmptyMolecule(t *testing.T) {
	ctx := context.Background()
	empty, err := chem.NewBuilder().Build()
	require.NoError(t, err)
	gen, err := circus.NewGenerator(0, 1)
	require.NoError(t, err)
	require.NoError(t, gen.Fit(ctx, views(mkChain(t, 2))))

	mat, err := gen.Transform(ctx, []chem.MoleculeView{empty})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, mat.Row(0).Dense(mat.Width()))
}

// TestGenerator_FitTransformMatchesSeparate: FitTransform equals Fit then
// Transform on the same input.
func TestGenerator_FitTransformMatchesSeparate(t *testing.T) {
	ctx := context.Background()
	mols := views(mkChain(t, 3), mkBenzene(t))

	a, err := circus.NewGenerator(0, 2)
	require.NoError(t, err)
	combined, err := a.FitTransform(ctx, mols)
	require.NoError(t, err)

	b, err := circus.NewGenerator(0, 2)
	require.NoError(t, err)
	require.NoError(t, b.Fit(ctx, mols))
	separate, err := b.Transform(ctx, mols)
	require.NoError(t, err)

	require.Equal(t, a.ColumnKeys(), b.ColumnKeys())
	require.Equal(t, separate.Dense(), combined.Dense())
}

// TestGenerator_Triples: sparse interchange stream is sorted and complete.
func TestGenerator_Triples(t *testing.T) {
	ctx := context.Background()
	gen, err := circus.NewGenerator(0, 1)
	require.NoError(t, err)
	mat, err := gen.FitTransform(ctx, views(mkChain(t, 2)))
	require.NoError(t, err)
	require.Equal(t, []circus.Triple{
		{Row: 0, Col: 0, Count: 2},
		{Row: 0, Col: 1, Count: 2},
	}, mat.Triples())
}

// TestRestore_RequiresFrozen: restoring from an unfrozen vocabulary fails.
func TestRestore_RequiresFrozen(t *testing.T) {
	_, err := circus.Restore(circus.Config{Lower: 0, Upper: 1}, circus.NewVocabulary())
	require.ErrorIs(t, err, circus.ErrNotFitted)
	_, err = circus.Restore(circus.Config{Lower: 3, Upper: 1}, nil)
	require.ErrorIs(t, err, circus.ErrInvalidRadiusRange)
}
