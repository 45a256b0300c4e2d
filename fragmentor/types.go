package fragmentor

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/circus"
)

// Sentinel errors for composition.
var (
	// ErrNoAssociations is returned when a Composer is built without any
	// column/generator association.
	ErrNoAssociations = errors.New("fragmentor: no associations")

	// ErrColumnMissing is returned when an associated column is absent from
	// the frame.
	ErrColumnMissing = errors.New("fragmentor: column missing from frame")

	// ErrColumnLength is returned when frame columns disagree on row count.
	ErrColumnLength = errors.New("fragmentor: column length mismatch")

	// ErrNotFitted is returned when Transform precedes Fit.
	ErrNotFitted = errors.New("fragmentor: composer is not fitted")

	// ErrAlreadyFitted is returned when Fit is called a second time.
	ErrAlreadyFitted = errors.New("fragmentor: composer is already fitted")

	// ErrRowConversion tags per-row structure failures; concrete failures
	// are *RowError values matching it via errors.Is.
	ErrRowConversion = errors.New("fragmentor: row conversion failed")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("fragmentor: invalid option supplied")
)

// RowError records one dataset row whose structural column could not be
// converted into a molecule.
type RowError struct {
	// Row is the zero-based dataset row index.
	Row int

	// Column is the structural column that failed.
	Column string

	// Err is the underlying conversion error.
	Err error
}

// Error implements error.
func (e *RowError) Error() string {
	return fmt.Sprintf("fragmentor: row %d column %q: %v", e.Row, e.Column, e.Err)
}

// Unwrap exposes the underlying conversion error.
func (e *RowError) Unwrap() error { return e.Err }

// Is reports a match against the ErrRowConversion sentinel.
func (e *RowError) Is(target error) bool { return target == ErrRowConversion }

// RowPolicy selects how a batch reacts to row conversion failures.
type RowPolicy int

const (
	// SkipRows drops failed rows from the batch and surfaces them in
	// Composed.Skipped. This is the default.
	SkipRows RowPolicy = iota

	// FailFast aborts the whole batch on the first failed row.
	FailFast
)

// String returns a short name for the policy.
func (p RowPolicy) String() string {
	switch p {
	case SkipRows:
		return "skip"
	case FailFast:
		return "fail"
	default:
		return "unknown"
	}
}

// Association binds one structural column of a dataset to the descriptor
// generator that will featurize it.
type Association struct {
	// Column is the structural column name.
	Column string

	// Gen is the generator applied to that column. Any Transformer works;
	// the composer needs nothing beyond the common fit/transform contract.
	Gen circus.Transformer
}

// Option configures a Composer via functional arguments.
type Option func(*composerOptions)

type composerOptions struct {
	policy RowPolicy
	err    error
}

// WithRowPolicy selects the batch reaction to row conversion failures.
func WithRowPolicy(p RowPolicy) Option {
	return func(o *composerOptions) {
		if p != SkipRows && p != FailFast {
			o.err = fmt.Errorf("%w: row policy %d", ErrOptionViolation, p)
			return
		}
		o.policy = p
	}
}

// Block records the provenance of one slice of composed output columns:
// which association produced it and where it sits in the composed matrix.
type Block struct {
	// Column is the structural column of the producing association.
	Column string

	// Offset is the first composed column of this block.
	Offset int

	// Width is the number of columns in this block.
	Width int
}
