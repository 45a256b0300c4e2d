// Package chem provides the immutable molecular graph model consumed by the
// descriptor engine.
//
// What
//
//   - Atom, Bond, BondOrder: labeled vertices and edges of a molecular graph.
//   - Molecule: ordered atoms and bonds plus derived adjacency, assembled
//     once via Builder and immutable afterwards.
//   - MoleculeView: the narrow read-only capability interface the engine
//     depends on (atom list, bond list, adjacency query). Any external
//     molecule representation may satisfy it.
//   - Induced / RemoveAtoms: non-mutating perturbation views returning a new
//     Molecule plus an atom-provenance map, for attribution workflows.
//
// Why
//
//   - The descriptor engine must work against "any chemistry library
//     molecule" without depending on a concrete object model; MoleculeView
//     is that seam.
//   - Perturb-and-rescore attribution needs derived molecules that share no
//     mutable state with the original, so perturbations parallelize safely.
//
// Determinism
//
//	Atom and bond indices are assignment-ordered; IncidentBonds and
//	Neighbors return ascending-bond-index order, so every traversal over a
//	Molecule is fully reproducible.
//
// Errors
//
//   - ErrEmptyElement    if an atom has no element label.
//   - ErrAtomOutOfRange  if a bond references a missing atom.
//   - ErrSelfBond        if a bond connects an atom to itself.
//   - ErrDuplicateBond   if two bonds connect the same atom pair.
package chem
