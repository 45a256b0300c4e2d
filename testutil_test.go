package circus_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/circus/chem"
)

// mkChain builds a linear carbon chain of n atoms (ethane for n=2, propane
// for n=3).
func mkChain(t *testing.T, n int) *chem.Molecule {
	t.Helper()
	b := chem.NewBuilder()
	prev := -1
	for i := 0; i < n; i++ {
		h := 3
		if i > 0 && i < n-1 {
			h = 2
		}
		cur := b.AddAtom(chem.Atom{Element: "C", Hydrogens: h})
		if prev >= 0 {
			b.AddBond(prev, cur, chem.Single)
		}
		prev = cur
	}
	m, err := b.Build()
	if err != nil {
		t.Fatalf("mkChain(%d): %v", n, err)
	}
	return m
}

// mkBenzene builds the six-membered aromatic carbon ring.
func mkBenzene(t *testing.T) *chem.Molecule {
	t.Helper()
	b := chem.NewBuilder()
	for i := 0; i < 6; i++ {
		b.AddAtom(chem.Atom{Element: "C", Aromatic: true, Hydrogens: 1})
	}
	for i := 0; i < 6; i++ {
		b.AddBond(i, (i+1)%6, chem.AromaticBond)
	}
	m, err := b.Build()
	if err != nil {
		t.Fatalf("mkBenzene: %v", err)
	}
	return m
}

// randomMolecule builds a connected random molecule of up to 12 atoms:
// a random spanning tree plus a few extra edges.
func randomMolecule(t *testing.T, rng *rand.Rand) *chem.Molecule {
	t.Helper()
	elements := []string{"C", "N", "O", "S"}
	orders := []chem.BondOrder{chem.Single, chem.Single, chem.Double, chem.Triple}
	n := 1 + rng.Intn(12)
	b := chem.NewBuilder()
	for i := 0; i < n; i++ {
		b.AddAtom(chem.Atom{Element: elements[rng.Intn(len(elements))]})
	}
	type pair struct{ u, v int }
	used := make(map[pair]bool)
	for i := 1; i < n; i++ {
		u, v := rng.Intn(i), i
		b.AddBond(u, v, orders[rng.Intn(len(orders))])
		used[pair{u, v}] = true
	}
	for k := 0; k < n/3; k++ {
		u, v := rng.Intn(n), rng.Intn(n)
		if u == v {
			continue
		}
		if u > v {
			u, v = v, u
		}
		if used[pair{u, v}] {
			continue
		}
		used[pair{u, v}] = true
		b.AddBond(u, v, orders[rng.Intn(len(orders))])
	}
	m, err := b.Build()
	if err != nil {
		t.Fatalf("randomMolecule: %v", err)
	}
	return m
}

// permuted rebuilds m with its atoms relabeled by perm: atom perm[i] of m
// becomes atom i of the result. Returns the rebuilt molecule and the inverse
// mapping (old index → new index).
func permuted(t *testing.T, m *chem.Molecule, perm []int) (*chem.Molecule, []int) {
	t.Helper()
	inv := make([]int, len(perm))
	for newIdx, oldIdx := range perm {
		inv[oldIdx] = newIdx
	}
	b := chem.NewBuilder()
	for _, oldIdx := range perm {
		b.AddAtom(m.Atom(oldIdx))
	}
	for i := 0; i < m.BondCount(); i++ {
		bd := m.Bond(i)
		b.AddBond(inv[bd.From], inv[bd.To], bd.Order)
	}
	out, err := b.Build()
	if err != nil {
		t.Fatalf("permuted: %v", err)
	}
	return out, inv
}
