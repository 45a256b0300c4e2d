package chem

import (
	"fmt"
	"sort"
	"strings"
)

// Molecule is an immutable molecular graph: an ordered sequence of Atoms, an
// ordered sequence of Bonds, and adjacency derived from the bonds.
//
// A Molecule is created once via a Builder and never mutated afterwards;
// perturbations produce new Molecules (see Induced). All accessors are
// therefore safe for unlimited concurrent readers.
type Molecule struct {
	atoms    []Atom
	bonds    []Bond
	incident [][]int // atom index → ascending incident bond indices
}

// compile-time check: *Molecule satisfies the engine's capability interface.
var _ MoleculeView = (*Molecule)(nil)

// AtomCount reports the number of atoms. Complexity: O(1).
func (m *Molecule) AtomCount() int { return len(m.atoms) }

// BondCount reports the number of bonds. Complexity: O(1).
func (m *Molecule) BondCount() int { return len(m.bonds) }

// Atom returns the atom at index i.
func (m *Molecule) Atom(i int) Atom { return m.atoms[i] }

// Bond returns the bond at index i.
func (m *Molecule) Bond(i int) Bond { return m.bonds[i] }

// IncidentBonds returns a copy of the bond indices incident to atom i,
// in ascending order. Complexity: O(deg(i)).
func (m *Molecule) IncidentBonds(i int) []int {
	out := make([]int, len(m.incident[i]))
	copy(out, m.incident[i])
	return out
}

// Neighbors returns the atom indices adjacent to atom i, ordered by incident
// bond index. Complexity: O(deg(i)).
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, 0, len(m.incident[i]))
	for _, bi := range m.incident[i] {
		out = append(out, m.bonds[bi].Other(i))
	}
	return out
}

// Formula returns a Hill-ordered molecular formula of the explicit atoms
// (carbon first, then hydrogen, then the rest alphabetically). Implicit
// hydrogens are included in the H count.
func (m *Molecule) Formula() string {
	counts := make(map[string]int, 8)
	for _, a := range m.atoms {
		counts[a.Element]++
		counts["H"] += a.Hydrogens
	}
	var sb strings.Builder
	write := func(el string) {
		n := counts[el]
		if n == 0 {
			return
		}
		sb.WriteString(el)
		if n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
		delete(counts, el)
	}
	write("C")
	write("H")
	rest := make([]string, 0, len(counts))
	for el := range counts {
		rest = append(rest, el)
	}
	sort.Strings(rest)
	for _, el := range rest {
		write(el)
	}
	return sb.String()
}

// Builder assembles a Molecule incrementally. Zero value is not usable;
// construct with NewBuilder.
type Builder struct {
	atoms []Atom
	bonds []Bond
	pairs map[[2]int]bool
	err   error
}

// NewBuilder returns an empty Builder. Complexity: O(1).
func NewBuilder() *Builder {
	return &Builder{pairs: make(map[[2]int]bool)}
}

// AddAtom appends an atom and returns its index. The Idx field of the
// argument is ignored and reassigned. Invalid atoms are recorded and
// surfaced by Build.
func (b *Builder) AddAtom(a Atom) int {
	idx := len(b.atoms)
	if a.Element == "" && b.err == nil {
		b.err = fmt.Errorf("%w: atom %d", ErrEmptyElement, idx)
	}
	a.Idx = idx
	b.atoms = append(b.atoms, a)
	return idx
}

// AddBond appends a bond between atoms u and v with the given order and
// returns its index. Endpoints are normalized so From < To. Invalid bonds
// (out-of-range endpoint, self-bond, duplicate pair) are recorded and
// surfaced by Build.
func (b *Builder) AddBond(u, v int, order BondOrder) int {
	idx := len(b.bonds)
	if u > v {
		u, v = v, u
	}
	switch {
	case u < 0 || v >= len(b.atoms):
		if b.err == nil {
			b.err = fmt.Errorf("%w: bond %d (%d,%d)", ErrAtomOutOfRange, idx, u, v)
		}
	case u == v:
		if b.err == nil {
			b.err = fmt.Errorf("%w: bond %d at atom %d", ErrSelfBond, idx, u)
		}
	case b.pairs[[2]int{u, v}]:
		if b.err == nil {
			b.err = fmt.Errorf("%w: bond %d (%d,%d)", ErrDuplicateBond, idx, u, v)
		}
	default:
		b.pairs[[2]int{u, v}] = true
	}
	b.bonds = append(b.bonds, Bond{Idx: idx, From: u, To: v, Order: order})
	return idx
}

// Build validates the accumulated atoms and bonds and returns the finished
// Molecule. Returns the first recorded construction error, if any.
// Complexity: O(V + E).
func (b *Builder) Build() (*Molecule, error) {
	if b.err != nil {
		return nil, b.err
	}
	m := &Molecule{
		atoms:    make([]Atom, len(b.atoms)),
		bonds:    make([]Bond, len(b.bonds)),
		incident: make([][]int, len(b.atoms)),
	}
	copy(m.atoms, b.atoms)
	copy(m.bonds, b.bonds)
	for _, bd := range m.bonds {
		m.incident[bd.From] = append(m.incident[bd.From], bd.Idx)
		m.incident[bd.To] = append(m.incident[bd.To], bd.Idx)
	}
	return m, nil
}
