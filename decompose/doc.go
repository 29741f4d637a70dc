// Package decompose implements the fragment decomposition search: a
// depth-bounded, iteration-capped recursive backtracking procedure that
// expresses a target structure as a spanning tree of library fragment
// instances joined by single bonds at declared stem atoms.
//
// Key features:
//   - Decompose(target, lib, opts...): first valid decomposition wins,
//     deterministically: fragments are probed in library priority order
//     (descending atom count, biasing toward fewer, larger pieces) and
//     matches in index enumeration order.
//   - Constraint checks per placement: no atom overlap, formal charges agree,
//     and every bond crossing a fragment boundary is a single bond through a
//     declared stem atom.
//   - Stem pairing: each stem carries at most one inter-instance bond,
//     enforced against both fixed records and records accumulated earlier in
//     the same placement step.
//   - Terminal acceptance: full atom coverage, bond count = instance
//     count - 1, a connected instance graph, and round-trip equivalence of
//     the reassembled structure with the target (assemble.Equivalent).
//   - Backtracking by extension: every recursive branch receives its own
//     extended copy of the assignment, instance list, and bond records.
//     Sibling branches share nothing mutable, so a failed branch simply
//     returns.
//
// Resource model:
//   - A global counter increments once per recursive invocation; exceeding
//     WithMaxIterations aborts the whole call with ErrIterationLimit. That
//     outcome means "partially explored", which callers must keep distinct
//     from the definitive ErrNoDecomposition.
//   - WithMaxDepth bounds instances per path. Increasing it (with a
//     sufficient iteration budget) never turns a success into a failure:
//     full coverage triggers the base case before the budget runs out.
//   - The search is single-threaded with no suspension points and no
//     mid-search cancellation; parallelism belongs across independent
//     targets (see the batch package), where libraries and indexes are
//     safely shared read-only.
//
// Complexity:
//   - Worst case exponential in the number of matches per depth level
//     (exhaustive backtracking); the iteration cap is the practical bound.
//   - Memory: O(maxDepth · (A + instances)) for the per-branch state copies,
//     where A is the target atom count.
//
// Errors:
//
//	ErrNilTarget, ErrNilLibrary, ErrEmptyTarget, ErrBadLimit, ErrIndexMismatch
//	ErrNoDecomposition - exhausted within limits (retry with a larger depth).
//	ErrIterationLimit  - cap breached; track separately from negatives.
//	ErrInternal        - inconsistency that must not pass as a negative.
package decompose
