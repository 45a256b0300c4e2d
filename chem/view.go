// Non-mutating derived molecules. Perturbation for attribution produces a
// fresh Molecule; the source is never touched, so derivations can run
// concurrently over the same input.

package chem

// Induced returns a new Molecule containing only the atoms v of m for which
// keep[v] is true, together with every bond whose endpoints are both kept.
// Disconnected components that result from the removal are retained.
//
// The second return value maps each new atom index to its index in m, so
// results computed on the derived molecule can be attributed back to the
// original atoms. The input is not mutated.
//
// Complexity: O(V + E).
func Induced(m *Molecule, keep map[int]bool) (*Molecule, []int) {
	b := NewBuilder()
	provenance := make([]int, 0, len(keep))
	newIdx := make(map[int]int, len(keep))
	for i := 0; i < m.AtomCount(); i++ {
		if !keep[i] {
			continue
		}
		newIdx[i] = b.AddAtom(m.Atom(i))
		provenance = append(provenance, i)
	}
	for i := 0; i < m.BondCount(); i++ {
		bd := m.Bond(i)
		u, okU := newIdx[bd.From]
		v, okV := newIdx[bd.To]
		if okU && okV {
			b.AddBond(u, v, bd.Order)
		}
	}
	// Build cannot fail here: all atoms and bonds were valid in m.
	out, _ := b.Build()
	return out, provenance
}

// RemoveAtoms returns a new Molecule with the atoms in drop removed, along
// with every bond incident to a removed atom. It is the complement of
// Induced and shares its provenance contract.
func RemoveAtoms(m *Molecule, drop map[int]bool) (*Molecule, []int) {
	keep := make(map[int]bool, m.AtomCount())
	for i := 0; i < m.AtomCount(); i++ {
		if !drop[i] {
			keep[i] = true
		}
	}
	return Induced(m, keep)
}
