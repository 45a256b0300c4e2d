package circus_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/circus"
	"github.com/katalvlaran/circus/chem"
	"github.com/katalvlaran/circus/smiles"
)

// ExampleGenerator fits on ethane with radii 0..1. Both carbons share one
// radius-0 environment and one radius-1 environment, so the vocabulary holds
// two keys and each is counted twice.
func ExampleGenerator() {
	ethane, _ := smiles.Parse("CC")

	gen, _ := circus.NewGenerator(0, 1)
	mat, _ := gen.FitTransform(context.Background(), []chem.MoleculeView{ethane})

	fmt.Println(gen.Width())
	fmt.Println(mat.Row(0).Dense(mat.Width()))
	// Output:
	// 2
	// [2 2]
}

// ExampleGenerator_transform shows column stability: propane's terminal
// carbons reuse ethane's radius-0 column, while its middle-carbon
// environment was never fitted and is dropped.
func ExampleGenerator_transform() {
	ctx := context.Background()
	ethane, _ := smiles.Parse("CC")
	propane, _ := smiles.Parse("CCC")

	gen, _ := circus.NewGenerator(0, 0)
	_ = gen.Fit(ctx, []chem.MoleculeView{ethane})

	mat, _ := gen.Transform(ctx, []chem.MoleculeView{propane})
	fmt.Println(mat.Row(0).Dense(mat.Width()))
	// Output:
	// [2]
}
