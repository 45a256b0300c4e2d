package smiles

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/circus/chem"
)

// Write renders m as a SMILES string. The output is syntactically valid and
// round-trips through Parse, but is not canonical: use the descriptor
// engine's canonical keys to compare structures.
func Write(m *chem.Molecule) string {
	w := &writer{
		m:        m,
		visited:  make([]bool, m.AtomCount()),
		tree:     make([][]int, m.AtomCount()),
		closures: make([][]closure, m.AtomCount()),
	}
	var parts []string
	for i := 0; i < m.AtomCount(); i++ {
		if !w.visited[i] {
			w.classify(i, -1)
			parts = append(parts, w.emit(i, -1))
		}
	}
	return strings.Join(parts, ".")
}

// closure is one ring-closure digit attached to an atom.
type closure struct {
	num   int
	order chem.BondOrder
}

type writer struct {
	m        *chem.Molecule
	visited  []bool
	tree     [][]int // atom → descending spanning-tree bond indices, discovery order
	closures [][]closure
	nextRing int
}

// classify walks a spanning tree from atom, recording tree bonds per atom
// and attaching a ring-closure number to both endpoints of each back edge.
func (w *writer) classify(atom, fromBond int) {
	w.visited[atom] = true
	for _, bi := range w.m.IncidentBonds(atom) {
		if bi == fromBond {
			continue
		}
		bd := w.m.Bond(bi)
		other := bd.Other(atom)
		if w.visited[other] {
			if !w.alreadyClosed(atom, other, bi) {
				w.nextRing++
				c := closure{num: w.nextRing, order: bd.Order}
				w.closures[atom] = append(w.closures[atom], c)
				w.closures[other] = append(w.closures[other], c)
			}
			continue
		}
		w.tree[atom] = append(w.tree[atom], bi)
		w.classify(other, bi)
	}
}

// alreadyClosed reports whether the back edge bi was recorded when first
// seen from its other endpoint.
func (w *writer) alreadyClosed(atom, other, bi int) bool {
	for _, ca := range w.closures[atom] {
		for _, co := range w.closures[other] {
			if ca.num == co.num && ca.order == w.m.Bond(bi).Order {
				return true
			}
		}
	}
	return false
}

// emit renders the subtree rooted at atom, reached over fromBond.
func (w *writer) emit(atom, fromBond int) string {
	var sb strings.Builder
	if fromBond >= 0 {
		sb.WriteString(w.bondSymbol(w.m.Bond(fromBond)))
	}
	sb.WriteString(w.atomToken(atom))
	for _, c := range w.closures[atom] {
		sb.WriteString(ringToken(c))
	}
	children := w.tree[atom]
	for i, bi := range children {
		sub := w.emit(w.m.Bond(bi).Other(atom), bi)
		if i < len(children)-1 {
			sb.WriteString("(" + sub + ")")
		} else {
			sb.WriteString(sub)
		}
	}
	return sb.String()
}

// atomToken renders one atom, bracketed when it carries a charge or a
// non-organic-subset element.
func (w *writer) atomToken(i int) string {
	a := w.m.Atom(i)
	sym := a.Element
	if a.Aromatic && strings.Contains("BCNOPS", sym) {
		sym = strings.ToLower(sym)
	}
	subset := false
	for _, el := range organic {
		if a.Element == el {
			subset = true
			break
		}
	}
	if a.Charge == 0 && subset {
		return sym
	}
	token := "[" + sym
	if a.Hydrogens == 1 {
		token += "H"
	} else if a.Hydrogens > 1 {
		token += fmt.Sprintf("H%d", a.Hydrogens)
	}
	switch {
	case a.Charge > 1:
		token += fmt.Sprintf("+%d", a.Charge)
	case a.Charge == 1:
		token += "+"
	case a.Charge == -1:
		token += "-"
	case a.Charge < -1:
		token += fmt.Sprintf("-%d", -a.Charge)
	}
	return token + "]"
}

// bondSymbol renders the symbol preceding an atom; single bonds and
// aromatic bonds between aromatic atoms are elided.
func (w *writer) bondSymbol(bd chem.Bond) string {
	switch bd.Order {
	case chem.Double:
		return "="
	case chem.Triple:
		return "#"
	case chem.AromaticBond:
		if w.m.Atom(bd.From).Aromatic && w.m.Atom(bd.To).Aromatic {
			return ""
		}
		return ":"
	default:
		return ""
	}
}

// ringToken renders a closure number, with %nn form above 9.
func ringToken(c closure) string {
	sym := ""
	switch c.order {
	case chem.Double:
		sym = "="
	case chem.Triple:
		sym = "#"
	}
	if c.num > 9 {
		return fmt.Sprintf("%s%%%02d", sym, c.num)
	}
	return fmt.Sprintf("%s%d", sym, c.num)
}
