// Package decompose: types, options and sentinel errors for the
// decomposition search. See doc.go for the algorithm overview.
package decompose

import (
	"errors"

	"github.com/katalvlaran/fragtree/match"
)

// Default search budgets. DefaultMaxDepth bounds the number of fragment
// instances along one search path; 9 mirrors the fragment budget the
// downstream generative setup trains with.
const (
	DefaultMaxDepth      = 9
	DefaultMaxIterations = 10_000
)

var (
	// ErrNilTarget is returned when a nil target structure is passed to Decompose.
	ErrNilTarget = errors.New("decompose: target structure is nil")

	// ErrNilLibrary is returned when a nil fragment library is passed to Decompose.
	ErrNilLibrary = errors.New("decompose: fragment library is nil")

	// ErrEmptyTarget is returned for a target with no atoms.
	ErrEmptyTarget = errors.New("decompose: target has no atoms")

	// ErrBadLimit indicates a non-positive depth or iteration budget.
	ErrBadLimit = errors.New("decompose: depth and iteration limits must be positive")

	// ErrIndexMismatch indicates a precomputed index built for a different target.
	ErrIndexMismatch = errors.New("decompose: match index built for a different target")

	// ErrNoDecomposition reports that the search exhausted its depth budget
	// without an accepted decomposition. It means "not decomposable within
	// these limits", not "provably impossible"; retrying with a larger
	// WithMaxDepth may succeed.
	ErrNoDecomposition = errors.New("decompose: no decomposition within limits")

	// ErrIterationLimit reports that the iteration cap was hit mid-search,
	// leaving the search space only partially explored. Callers must not
	// conflate it with ErrNoDecomposition: in batch processing it belongs in
	// a separate "skipped" tally, not in the definitive-negative one.
	ErrIterationLimit = errors.New("decompose: iteration limit reached")

	// ErrInternal reports an internal inconsistency (e.g. a malformed match
	// or a failed reassembly of search-built state). Unlike the enumerated
	// per-branch rejections, such faults propagate instead of being
	// reinterpreted as "not decomposable".
	ErrInternal = errors.New("decompose: internal inconsistency")
)

// Option configures the decomposition search.
// Use with Decompose(target, lib, opts...).
type Option func(*Options)

// Options holds configurable parameters for one decomposition call.
type Options struct {
	// MaxDepth bounds the number of fragment instances along one search
	// path. Default DefaultMaxDepth.
	MaxDepth int

	// MaxIterations caps the total number of recursive search invocations
	// across the whole call; breaching it aborts with ErrIterationLimit.
	// Default DefaultMaxIterations.
	MaxIterations int

	// Index, if non-nil, is a precomputed match.Index for the target,
	// letting many searches over one target share the enumeration work.
	// It must have been built for the same target structure.
	Index *match.Index
}

// DefaultOptions returns the Options used when no Option overrides them:
// DefaultMaxDepth, DefaultMaxIterations, and no precomputed index.
func DefaultOptions() Options {
	return Options{
		MaxDepth:      DefaultMaxDepth,
		MaxIterations: DefaultMaxIterations,
		Index:         nil,
	}
}

// WithMaxDepth returns an Option that bounds the number of fragment
// instances along one search path.
func WithMaxDepth(limit int) Option {
	return func(o *Options) {
		o.MaxDepth = limit
	}
}

// WithMaxIterations returns an Option that caps total recursive invocations
// for the whole call.
func WithMaxIterations(limit int) Option {
	return func(o *Options) {
		o.MaxIterations = limit
	}
}

// WithIndex returns an Option that reuses a precomputed match index.
// Passing nil has no effect (the index is built inside Decompose).
func WithIndex(ix *match.Index) Option {
	return func(o *Options) {
		if ix != nil {
			o.Index = ix
		}
	}
}
