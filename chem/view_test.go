package chem_test

import (
	"reflect"
	"testing"

	"github.com/katalvlaran/circus/chem"
)

// TestInduced_Middle removes the middle carbon of propane, leaving two
// disconnected terminal atoms. Components must be kept, not pruned.
func TestInduced_Middle(t *testing.T) {
	m := propane(t)
	out, prov := chem.Induced(m, map[int]bool{0: true, 2: true})
	if got, want := out.AtomCount(), 2; got != want {
		t.Fatalf("AtomCount = %d; want %d", got, want)
	}
	if got, want := out.BondCount(), 0; got != want {
		t.Fatalf("BondCount = %d; want %d", got, want)
	}
	if want := []int{0, 2}; !reflect.DeepEqual(prov, want) {
		t.Errorf("provenance = %v; want %v", prov, want)
	}
}

// TestRemoveAtoms_Terminal drops one terminal carbon; the surviving bond and
// its endpoints must be reindexed while provenance points back at m.
func TestRemoveAtoms_Terminal(t *testing.T) {
	m := propane(t)
	out, prov := chem.RemoveAtoms(m, map[int]bool{0: true})
	if got, want := out.AtomCount(), 2; got != want {
		t.Fatalf("AtomCount = %d; want %d", got, want)
	}
	if got, want := out.BondCount(), 1; got != want {
		t.Fatalf("BondCount = %d; want %d", got, want)
	}
	if want := []int{1, 2}; !reflect.DeepEqual(prov, want) {
		t.Errorf("provenance = %v; want %v", prov, want)
	}
	bd := out.Bond(0)
	if bd.From != 0 || bd.To != 1 {
		t.Errorf("surviving bond = (%d,%d); want (0,1)", bd.From, bd.To)
	}
	// source untouched
	if got, want := m.AtomCount(), 3; got != want {
		t.Errorf("source mutated: AtomCount = %d; want %d", got, want)
	}
}

// TestRemoveAtoms_All yields a valid empty molecule.
func TestRemoveAtoms_All(t *testing.T) {
	m := propane(t)
	out, prov := chem.RemoveAtoms(m, map[int]bool{0: true, 1: true, 2: true})
	if out.AtomCount() != 0 || out.BondCount() != 0 {
		t.Errorf("want empty molecule, got %d atoms %d bonds", out.AtomCount(), out.BondCount())
	}
	if len(prov) != 0 {
		t.Errorf("provenance = %v; want empty", prov)
	}
}
