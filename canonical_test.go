package circus_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/circus"
	"github.com/katalvlaran/circus/chem"
)

// keyOf enumerates the single radius-r fragment at root and canonicalizes it.
func keyOf(t *testing.T, m *chem.Molecule, root, r int) string {
	t.Helper()
	frags, err := circus.AtomFragments(m, root, r, r)
	if err != nil {
		t.Fatal(err)
	}
	return circus.CanonicalKey(m, frags[0])
}

// TestCanonicalKey_Idempotent: canonicalizing the same fragment twice yields
// the same key.
func TestCanonicalKey_Idempotent(t *testing.T) {
	m := mkBenzene(t)
	frags, err := circus.AtomFragments(m, 0, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	k1 := circus.CanonicalKey(m, frags[0])
	k2 := circus.CanonicalKey(m, frags[0])
	if k1 == "" || k1 != k2 {
		t.Errorf("idempotence: %q vs %q", k1, k2)
	}
}

// TestCanonicalKey_SymmetricRoots: structurally equivalent roots of a
// symmetric molecule produce identical keys.
func TestCanonicalKey_SymmetricRoots(t *testing.T) {
	m := mkBenzene(t)
	want := keyOf(t, m, 0, 2)
	for root := 1; root < 6; root++ {
		if got := keyOf(t, m, root, 2); got != want {
			t.Errorf("benzene root %d: key %q; want %q", root, got, want)
		}
	}
	// ethane: both carbons symmetric at every radius
	e := mkChain(t, 2)
	for r := 0; r <= 1; r++ {
		if keyOf(t, e, 0, r) != keyOf(t, e, 1, r) {
			t.Errorf("ethane radius %d: terminal keys differ", r)
		}
	}
}

// TestCanonicalKey_DegreeDistinguishes: propane's terminal and middle
// carbons differ in degree, so their radius-0 keys differ.
func TestCanonicalKey_DegreeDistinguishes(t *testing.T) {
	m := mkChain(t, 3)
	terminal := keyOf(t, m, 0, 0)
	middle := keyOf(t, m, 1, 0)
	if terminal == middle {
		t.Errorf("terminal and middle carbon share key %q", terminal)
	}
	if other := keyOf(t, m, 2, 0); other != terminal {
		t.Errorf("two terminal carbons differ: %q vs %q", other, terminal)
	}
}

// TestCanonicalKey_LabelsDistinguish: differing element, charge, or bond
// order must change the key.
func TestCanonicalKey_LabelsDistinguish(t *testing.T) {
	mk := func(el string, charge int, order chem.BondOrder) *chem.Molecule {
		b := chem.NewBuilder()
		b.AddAtom(chem.Atom{Element: "C"})
		b.AddAtom(chem.Atom{Element: el, Charge: charge})
		b.AddBond(0, 1, order)
		m, err := b.Build()
		if err != nil {
			t.Fatal(err)
		}
		return m
	}
	base := keyOf(t, mk("C", 0, chem.Single), 0, 1)
	if k := keyOf(t, mk("N", 0, chem.Single), 0, 1); k == base {
		t.Error("element change did not change key")
	}
	if k := keyOf(t, mk("C", 1, chem.Single), 0, 1); k == base {
		t.Error("charge change did not change key")
	}
	if k := keyOf(t, mk("C", 0, chem.Double), 0, 1); k == base {
		t.Error("bond order change did not change key")
	}
}

// TestCanonicalKey_RelabelingInvariance property-tests the core contract:
// rebuilding a random molecule under a random atom permutation never changes
// any fragment key.
func TestCanonicalKey_RelabelingInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		m := randomMolecule(t, rng)
		perm := rng.Perm(m.AtomCount())
		pm, inv := permuted(t, m, perm)
		for root := 0; root < m.AtomCount(); root++ {
			for r := 0; r <= 3; r++ {
				orig := keyOf(t, m, root, r)
				rel := keyOf(t, pm, inv[root], r)
				if orig != rel {
					t.Fatalf("trial %d root %d radius %d: key changed under relabeling\n  orig: %q\n  perm: %q",
						trial, root, r, orig, rel)
				}
			}
		}
	}
}

// TestCanonicalKey_EmptyFragment: the empty fragment canonicalizes to the
// empty key.
func TestCanonicalKey_EmptyFragment(t *testing.T) {
	m := mkChain(t, 2)
	if k := circus.CanonicalKey(m, circus.Fragment{RootAtom: -1, RootBond: -1}); k != "" {
		t.Errorf("empty fragment key = %q; want empty", k)
	}
}
