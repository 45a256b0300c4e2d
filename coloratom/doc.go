// Package coloratom attributes a model's prediction to individual atoms of
// a molecule by perturbation (the ColorAtom method).
//
// What
//
//   - ColorAtom: a fitted descriptor generator plus an opaque ScoreFunc.
//   - Explain: for each atom, derive a new molecule with that atom removed
//     (bonds to it removed too, disconnected remainders kept), rerun the
//     descriptor+score pipeline, and record score(original) − score(perturbed)
//     as the atom's contribution.
//   - WithFragmentRadius(r): remove the whole radius-r circular fragment
//     around each root instead of the single atom.
//
// The original molecule is never mutated; every perturbation builds a fresh
// derived molecule, which is what makes per-atom parallelism safe. A
// perturbed molecule with no fragments at all (e.g. everything removed)
// contributes a zero feature vector, not an error.
//
// Complexity
//
//	One Explain costs (atoms+1) full pipeline runs; the scoring function
//	usually dominates. WithWorkers(n) bounds the concurrent runs.
//
// Errors
//
//   - circus.ErrNilMolecule  nil input molecule.
//   - ErrNilTransformer      New with a nil generator.
//   - ErrNilScore            New with a nil scoring function.
//   - ErrOptionViolation     invalid option value.
//   - *AtomError             per-atom pipeline or scoring failure, wrapping
//     the cause and carrying the atom index.
package coloratom
