// Package batch fans decomposition out across many independent targets.
//
// One decomposition call is strictly sequential, but a corpus is
// embarrassingly parallel: the fragment library (and any precomputed match
// index) is read-only and shared by reference, while every target gets its
// own search engine and mutable state. Run bounds the fan-out with an
// errgroup worker limit.
//
// Per-target outcomes are absorbed, never propagated: a target that fails to
// decompose, hits its iteration cap, or trips an internal fault is tallied
// and the rest of the corpus proceeds. The tally keeps ErrIterationLimit
// ("skipped": search space only partially explored) strictly apart from
// ErrNoDecomposition ("undecomposable": definitive within the given limits),
// because conflating them misreports corpus coverage. Only context
// cancellation aborts the whole run.
package batch

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fragtree/chem"
	"github.com/katalvlaran/fragtree/decompose"
)

// DefaultWorkers is the fan-out bound used when WithWorkers is not given.
const DefaultWorkers = 4

// ErrNoTargets is returned when Run is called with an empty corpus.
var ErrNoTargets = errors.New("batch: no targets")

// Option configures a batch run.
type Option func(*Options)

// Options holds configurable parameters for Run.
type Options struct {
	// Workers bounds the number of concurrently running decompositions.
	// Default DefaultWorkers.
	Workers int

	// Search is forwarded to every decompose.Decompose call.
	Search []decompose.Option
}

// DefaultOptions returns the Options used when no Option overrides them.
func DefaultOptions() Options {
	return Options{Workers: DefaultWorkers}
}

// WithWorkers returns an Option bounding concurrent decompositions.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.Workers = n
		}
	}
}

// WithSearchOptions returns an Option forwarding search options (depth and
// iteration budgets) to every per-target decomposition.
func WithSearchOptions(opts ...decompose.Option) Option {
	return func(o *Options) {
		o.Search = opts
	}
}

// Summary reports a batch run: per-target trees aligned with the input
// slice (nil where no tree was accepted) and the outcome tally.
type Summary struct {
	// Trees[i] is the decomposition of targets[i], or nil.
	Trees []*decompose.Tree

	// Errs[i] is the per-target failure, or nil on success.
	Errs []error

	// Decomposed counts accepted trees.
	Decomposed int

	// Undecomposable counts definitive ErrNoDecomposition outcomes.
	Undecomposable int

	// Skipped counts ErrIterationLimit outcomes: targets whose search space
	// was only partially explored. Not a definitive negative.
	Skipped int

	// Faulted counts every other per-target error, including internal
	// inconsistencies and input validation failures.
	Faulted int
}

// Run decomposes every target against lib, at most Workers at a time.
// The returned Summary is complete even when some targets fail; Run itself
// errs only on an empty corpus or when ctx is cancelled mid-run (targets not
// yet finished keep nil entries in that case).
func Run(ctx context.Context, targets []*chem.Structure, lib *chem.Library, opts ...Option) (*Summary, error) {
	// 1. Validate and resolve options.
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	bopts := DefaultOptions()
	for _, fn := range opts {
		fn(&bopts)
	}

	// 2. Preallocate result slots: each worker writes only its own index,
	//    so no locking is needed.
	sum := &Summary{
		Trees: make([]*decompose.Tree, len(targets)),
		Errs:  make([]error, len(targets)),
	}

	// 3. Fan out with a bounded errgroup. Worker errors are nil except for
	//    cancellation, so one expensive target can never sink the corpus.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bopts.Workers)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			tree, err := decompose.Decompose(target, lib, bopts.Search...)
			sum.Trees[i] = tree
			sum.Errs[i] = err

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}

	// 4. Tally outcomes.
	for _, err := range sum.Errs {
		switch {
		case err == nil:
			sum.Decomposed++
		case errors.Is(err, decompose.ErrNoDecomposition):
			sum.Undecomposable++
		case errors.Is(err, decompose.ErrIterationLimit):
			sum.Skipped++
		default:
			sum.Faulted++
		}
	}

	return sum, nil
}
