// Value types, the view interface, and the sentinel errors raised while
// assembling a Molecule.

package chem

import "errors"

// Sentinel errors for molecule construction.
var (
	// ErrEmptyElement indicates an atom was added without an element label.
	ErrEmptyElement = errors.New("chem: atom element is empty")

	// ErrAtomOutOfRange indicates a bond endpoint references a non-existent atom.
	ErrAtomOutOfRange = errors.New("chem: bond endpoint out of range")

	// ErrSelfBond indicates a bond from an atom to itself.
	ErrSelfBond = errors.New("chem: self-bond not allowed")

	// ErrDuplicateBond indicates a second bond between the same atom pair.
	ErrDuplicateBond = errors.New("chem: duplicate bond between atoms")
)

// BondOrder labels the type of a Bond.
type BondOrder int

const (
	// Single is an ordinary single bond.
	Single BondOrder = iota + 1

	// Double is a double bond.
	Double

	// Triple is a triple bond.
	Triple

	// AromaticBond is a delocalized aromatic bond.
	AromaticBond
)

// String returns the conventional one-character SMILES symbol for the order.
func (o BondOrder) String() string {
	switch o {
	case Single:
		return "-"
	case Double:
		return "="
	case Triple:
		return "#"
	case AromaticBond:
		return ":"
	default:
		return "?"
	}
}

// Atom is one node of a molecular graph.
//
// Idx is the atom's position in its Molecule and is assigned by the Builder.
// All other fields are immutable labels set by the caller.
type Atom struct {
	// Idx is the zero-based index of this atom within its Molecule.
	Idx int

	// Element is the element symbol ("C", "N", "Cl", ...).
	Element string

	// Charge is the formal charge.
	Charge int

	// Aromatic marks the atom as part of an aromatic system.
	Aromatic bool

	// Hydrogens is the count of implicit hydrogens attached to the atom.
	Hydrogens int
}

// Bond is one edge of a molecular graph, connecting Atoms From and To.
type Bond struct {
	// Idx is the zero-based index of this bond within its Molecule.
	Idx int

	// From and To are the endpoint atom indices, From < To after Build.
	From, To int

	// Order is the bond-order label.
	Order BondOrder
}

// Other returns the endpoint of b that is not atom i.
func (b Bond) Other(i int) int {
	if b.From == i {
		return b.To
	}
	return b.From
}

// MoleculeView is the narrow, read-only capability set the descriptor engine
// requires from a molecule representation. Any chemistry library's object
// model can participate by satisfying this interface; the engine never
// mutates a view.
type MoleculeView interface {
	// AtomCount reports the number of atoms.
	AtomCount() int

	// BondCount reports the number of bonds.
	BondCount() int

	// Atom returns the atom at index i. Panics if i is out of range.
	Atom(i int) Atom

	// Bond returns the bond at index i. Panics if i is out of range.
	Bond(i int) Bond

	// IncidentBonds returns the bond indices incident to atom i,
	// in ascending order.
	IncidentBonds(i int) []int

	// Neighbors returns the atom indices adjacent to atom i,
	// ordered by the incident bond index.
	Neighbors(i int) []int
}
