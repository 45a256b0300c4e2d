// Package fragmentor composes feature blocks produced by independent
// descriptor generators applied to different structural columns of a
// dataset (the ComplexFragmentor pattern).
//
// What
//
//   - Association: one (column name, generator) pair; a Composer holds an
//     ordered list of them and nothing else about generator internals.
//   - Frame: equal-length dataset columns of molecules, with per-row
//     conversion failures recorded rather than raised.
//   - Composer.Fit: fits each generator independently on its column.
//   - Composer.Transform: transforms each column and concatenates the
//     blocks column-wise in association order into one matrix, with
//     explicit Block provenance for later slicing and interpretation.
//
// Row policy
//
//	Rows align 1:1 across blocks. A row whose structure fails to convert in
//	any associated column fails as a whole; SkipRows drops it and surfaces
//	it in Composed.Skipped, FailFast aborts the batch with the first
//	RowError. Failures are never silently dropped without a count.
//
// Usage
//
//	cmp, err := fragmentor.NewComposer([]fragmentor.Association{
//	    {Column: "solute", Gen: g1},
//	    {Column: "solvent", Gen: g2},
//	})
//	if err := cmp.Fit(ctx, frame); err != nil { ... }
//	out, err := cmp.Transform(ctx, frame)
//	sub := out.Slice(out.Blocks[0]) // g1's standalone block
//
// Errors
//
//   - ErrNoAssociations  empty association list.
//   - ErrColumnMissing   associated column absent from the frame.
//   - ErrColumnLength    frame columns of unequal length.
//   - ErrNotFitted       Transform before Fit.
//   - ErrAlreadyFitted   second Fit.
//   - ErrRowConversion   matches every *RowError via errors.Is.
package fragmentor
