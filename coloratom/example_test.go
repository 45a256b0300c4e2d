package coloratom_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/circus"
	"github.com/katalvlaran/circus/chem"
	"github.com/katalvlaran/circus/coloratom"
	"github.com/katalvlaran/circus/smiles"
)

// ExampleColorAtom attributes a "count the two-neighbor carbons" model over
// butane. Removing a terminal atom destroys one middle environment, removing
// an inner atom destroys both.
func ExampleColorAtom() {
	ctx := context.Background()
	butane, _ := smiles.Parse("CCCC")

	gen, _ := circus.NewGenerator(0, 0)
	_ = gen.Fit(ctx, []chem.MoleculeView{butane})

	middles := func(vec []float64) (float64, error) { return vec[1], nil }
	ca, _ := coloratom.New(gen, middles)

	attr, _ := ca.Explain(ctx, butane)
	fmt.Println(attr[0], attr[1], attr[2], attr[3])
	// Output:
	// 1 2 2 1
}
