// Package vocabstore persists fitted generator state in SQLite.
//
// What
//
//	A fitted generator is fully described by its Config plus the flat
//	(canonical key, column index) pairs of its frozen vocabulary. Store
//	writes that state under a model name and reconstructs it later:
//
//	  st, _ := vocabstore.Open(path)
//	  st.Save(ctx, "solubility", gen.Config(), gen.Vocabulary())
//	  ...
//	  gen, _ := st.LoadGenerator(ctx, "solubility")
//
//	Save is transactional and replaces any previous model of the same name
//	whole; a load therefore never observes a half-written vocabulary. The
//	round trip is exact: column indices survive unchanged, so matrices
//	produced before and after persistence are bit-identical.
//
// Errors
//
//   - ErrNotFrozen      saving an unfrozen vocabulary.
//   - ErrModelNotFound  loading or deleting an unknown model name.
package vocabstore
