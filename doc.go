// Package circus implements the circular-substructure descriptor engine:
// bounded-radius fragment enumeration, canonicalization into stable keys,
// and a fit/transform vocabulary mapping keys to feature columns.
//
// What
//
//   - AtomFragments / BondFragments: for a root and every radius r in
//     [lower, upper], the connected subgraph of all atoms within r bond-hops
//     of the root plus every bond internal to that atom set. Fragments are
//     nested: the radius-r fragment is a subgraph of the radius-(r+1) one.
//   - CanonicalKey: a deterministic, relabeling-invariant string identifier;
//     isomorphic fragments from different molecules or different roots
//     collide to the same key.
//   - Vocabulary: canonical key → column index, append-only during fit,
//     frozen (read-only, lock-free) during transform, serializable to flat
//     (key, index) pairs.
//   - Generator: orchestrates the three across a molecule batch, producing
//     one sparse count vector per molecule; Fit / Transform / FitTransform
//     lifecycle with column stability across transforms.
//
// Determinism
//
//	Enumeration walks atoms and bonds in ascending index order, Fit
//	processes molecules sequentially, and canonicalization uses a total
//	order over labeled fragments, so vocabulary index assignment equals
//	first-observed order and repeat transforms are bit-identical.
//
// Counting
//
//	Fragments are counted with multiplicity: a fragment type occurring
//	around two roots of the same molecule contributes 2. A radius that
//	exceeds the root's component diameter yields the whole component, once
//	per remaining radius. An empty molecule yields the zero vector.
//
// Complexity (V = atoms, E = bonds, R = radii per root)
//
//   - Enumeration: O(R·(V + E)) per root.
//   - Canonicalization: near-linear refinement for typical labeled
//     fragments; exponential only in unresolved symmetric classes.
//
// Usage
//
//	gen, err := circus.NewGenerator(0, 2, circus.WithWorkers(4))
//	if err != nil { ... }
//	if err := gen.Fit(ctx, train); err != nil { ... }
//	mat, err := gen.Transform(ctx, test)
//
// Errors
//
//   - ErrInvalidRadiusRange  lower > upper or a negative bound.
//   - ErrVocabularyFrozen    Observe after Freeze.
//   - ErrUnknownFragmentKey  unseen key under the ErrorUnknown policy.
//   - ErrNotFitted           Transform (or Restore) without a frozen vocabulary.
//   - ErrAlreadyFitted       second Fit on the same Generator.
//   - ErrOptionViolation     invalid functional option.
package circus
