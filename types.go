package circus

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/circus/chem"
)

// Sentinel errors for descriptor generation.
var (
	// ErrInvalidRadiusRange is returned when lower > upper or a bound is negative.
	ErrInvalidRadiusRange = errors.New("circus: invalid radius range")

	// ErrVocabularyFrozen is returned when Observe is called after Freeze.
	ErrVocabularyFrozen = errors.New("circus: vocabulary is frozen")

	// ErrUnknownFragmentKey is returned at transform time for an unseen key
	// under the ErrorUnknown policy.
	ErrUnknownFragmentKey = errors.New("circus: unknown fragment key")

	// ErrNotFitted is returned when Transform is called before Fit.
	ErrNotFitted = errors.New("circus: generator is not fitted")

	// ErrAlreadyFitted is returned when Fit is called a second time.
	ErrAlreadyFitted = errors.New("circus: generator is already fitted")

	// ErrNilMolecule is returned when a nil molecule view is supplied.
	ErrNilMolecule = errors.New("circus: molecule view is nil")

	// ErrRootOutOfRange is returned when a fragment root index is invalid.
	ErrRootOutOfRange = errors.New("circus: root index out of range")

	// ErrBadSnapshot is returned when a vocabulary snapshot is not a dense
	// injective key→index mapping.
	ErrBadSnapshot = errors.New("circus: malformed vocabulary snapshot")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("circus: invalid option supplied")
)

// UnknownPolicy selects the transform-time behavior for fragment keys that
// were never observed during fit.
type UnknownPolicy int

const (
	// DropUnknown ignores unseen keys; they contribute nothing to the
	// feature vector. This is the default.
	DropUnknown UnknownPolicy = iota

	// ErrorUnknown fails the transform with ErrUnknownFragmentKey.
	ErrorUnknown
)

// String returns a short name for the policy.
func (p UnknownPolicy) String() string {
	switch p {
	case DropUnknown:
		return "drop"
	case ErrorUnknown:
		return "error"
	default:
		return "unknown"
	}
}

// Config is the immutable configuration of a Generator: fragments are
// enumerated for every radius in [Lower, Upper], rooted on atoms or, when
// OnBond is set, on bonds. Changing the configuration after construction is
// not supported; build a new Generator instead.
type Config struct {
	// Lower is the inclusive lower radius bound, in bond-hops. Non-negative.
	Lower int

	// Upper is the inclusive upper radius bound. Must satisfy Lower <= Upper.
	Upper int

	// OnBond roots enumeration on bonds instead of atoms.
	OnBond bool
}

// validate reports ErrInvalidRadiusRange for a malformed radius range.
func (c Config) validate() error {
	if c.Lower < 0 || c.Upper < 0 || c.Lower > c.Upper {
		return fmt.Errorf("%w: lower=%d upper=%d", ErrInvalidRadiusRange, c.Lower, c.Upper)
	}
	return nil
}

// Option configures a Generator via functional arguments. An invalid Option
// is recorded internally and surfaced as ErrOptionViolation by NewGenerator.
type Option func(*genOptions)

// genOptions holds the tunable (non-Config) generator parameters.
type genOptions struct {
	onBond  bool
	policy  UnknownPolicy
	workers int
	err     error
}

// defaultGenOptions returns atom-rooted enumeration, DropUnknown policy,
// and single-worker (sequential) transforms.
func defaultGenOptions() genOptions {
	return genOptions{policy: DropUnknown, workers: 1}
}

// WithOnBond roots fragment enumeration on bonds instead of atoms.
func WithOnBond() Option {
	return func(o *genOptions) { o.onBond = true }
}

// WithUnknownPolicy selects the transform-time policy for unseen keys.
func WithUnknownPolicy(p UnknownPolicy) Option {
	return func(o *genOptions) {
		if p != DropUnknown && p != ErrorUnknown {
			o.err = fmt.Errorf("%w: unknown policy %d", ErrOptionViolation, p)
			return
		}
		o.policy = p
	}
}

// WithWorkers bounds the number of goroutines used by Transform over a
// batch of molecules.
//
//	n > 1:  parallel transform with n workers
//	n == 1: sequential transform (default)
//	n <= 0: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *genOptions) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: workers must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.workers = n
	}
}

// Transformer is the common fit/transform contract shared by descriptor
// generators. The composition and attribution layers depend only on this
// interface, not on a concrete generator.
type Transformer interface {
	// Fit builds the internal vocabulary from the given molecules and
	// freezes it. A Transformer is fitted exactly once.
	Fit(ctx context.Context, mols []chem.MoleculeView) error

	// Transform produces one feature vector per molecule, rows aligned to
	// the input order. Requires a prior Fit.
	Transform(ctx context.Context, mols []chem.MoleculeView) (*Matrix, error)

	// Width reports the frozen vocabulary size (output column count).
	Width() int

	// ColumnKeys returns the canonical key of each output column, in
	// column order.
	ColumnKeys() []string
}
