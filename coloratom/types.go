package coloratom

import (
	"errors"
	"fmt"
)

// Sentinel errors for attribution.
var (
	// ErrNilTransformer is returned when New is given a nil generator.
	ErrNilTransformer = errors.New("coloratom: transformer is nil")

	// ErrNilScore is returned when New is given a nil scoring function.
	ErrNilScore = errors.New("coloratom: score function is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("coloratom: invalid option supplied")
)

// ScoreFunc is the opaque external model: it maps one dense feature vector
// to a scalar prediction. The engine treats it as a potentially slow,
// blocking call and imposes no timeout of its own.
type ScoreFunc func(vec []float64) (float64, error)

// Attribution maps each atom index of the scored molecule to its signed
// contribution: score(original) minus score with that atom's perturbation
// applied. Computed on demand, never persisted.
type Attribution map[int]float64

// AtomError records a pipeline or scoring failure for one perturbed atom.
type AtomError struct {
	// AtomIdx is the atom whose perturbation failed.
	AtomIdx int

	// Err is the underlying failure.
	Err error
}

// Error implements error.
func (e *AtomError) Error() string {
	return fmt.Sprintf("coloratom: atom %d: %v", e.AtomIdx, e.Err)
}

// Unwrap exposes the underlying failure.
func (e *AtomError) Unwrap() error { return e.Err }

// Option configures a ColorAtom via functional arguments.
type Option func(*caOptions)

type caOptions struct {
	workers int
	radius  int
	err     error
}

func defaultOptions() caOptions {
	return caOptions{workers: 1, radius: -1}
}

// WithWorkers bounds the number of goroutines perturbing and rescoring atoms
// of one molecule concurrently.
//
//	n > 1:  parallel across atoms
//	n == 1: sequential (default)
//	n <= 0: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *caOptions) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: workers must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.workers = n
	}
}

// WithFragmentRadius switches from single-atom removal to fragment removal:
// each perturbation removes the whole radius-r circular fragment around the
// root atom instead of the root alone. The attribution stays keyed by root.
func WithFragmentRadius(r int) Option {
	return func(o *caOptions) {
		if r < 0 {
			o.err = fmt.Errorf("%w: fragment radius must be non-negative (%d)", ErrOptionViolation, r)
			return
		}
		o.radius = r
	}
}
