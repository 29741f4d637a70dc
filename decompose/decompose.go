package decompose

import (
	"fmt"

	"github.com/katalvlaran/fragtree/assemble"
	"github.com/katalvlaran/fragtree/chem"
	"github.com/katalvlaran/fragtree/match"
)

// ref names the owner of one assigned target atom.
type ref struct {
	inst  int // instance id, -1 while unassigned
	local int // fragment-local atom index within that instance
}

// searchState is the state threaded through one search path: the partial
// assignment, the placed instances, and the bond records fixed so far.
// Every accepted placement produces a fresh extended copy; sibling branches
// never share mutable state, so backtracking is just returning.
type searchState struct {
	owner     []ref // per target atom
	assigned  int   // number of assigned target atoms
	instances []Instance
	bonds     []Bond
}

// engine holds the per-call search data: the immutable inputs, the fragment
// priority order, and the single mutable global (the invocation counter).
type engine struct {
	target *chem.Structure
	ix     *match.Index
	frags  []chem.Fragment // library priority order (descending atom count)

	calls    int // incremented once per recursive invocation
	maxCalls int
}

// Decompose searches for a tree of fragment instances that covers every atom
// of target exactly once, joins instances only by single bonds through
// declared stem atoms, and reassembles to a structure mutually
// substructure-matched with target. The first valid decomposition found by
// the fixed traversal order wins; the result is deterministic but not
// guaranteed minimal, canonical, or unique.
//
// The search is purely sequential and runs to completion, exhaustion, or
// iteration-cap abort; there is no mid-search cancellation. A caller that
// needs early termination should wrap the whole call in a wall-clock limit
// and treat a timeout like ErrIterationLimit. lib and any index passed via
// WithIndex are read-only here and safe to share across concurrent calls on
// independent targets.
//
// Errors:
//
//	ErrNilTarget, ErrNilLibrary, ErrEmptyTarget, ErrBadLimit,
//	ErrIndexMismatch - input validation.
//	ErrNoDecomposition - depth budget exhausted without an accepted tree.
//	ErrIterationLimit  - iteration cap breached; search space only partially
//	                     explored.
//	ErrInternal        - internal inconsistency (propagated, never silently
//	                     reinterpreted as a negative).
func Decompose(target *chem.Structure, lib *chem.Library, opts ...Option) (*Tree, error) {
	// 1. Validate inputs.
	if target == nil {
		return nil, ErrNilTarget
	}
	if lib == nil {
		return nil, ErrNilLibrary
	}
	if target.AtomCount() == 0 {
		return nil, ErrEmptyTarget
	}

	// 2. Resolve options.
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}
	if dopts.MaxDepth < 1 || dopts.MaxIterations < 1 {
		return nil, ErrBadLimit
	}

	// 3. Obtain the match index: reuse the caller's or build one now.
	ix := dopts.Index
	if ix != nil && ix.Target() != target {
		return nil, ErrIndexMismatch
	}
	if ix == nil {
		built, err := match.BuildIndex(target, lib)
		if err != nil {
			return nil, err
		}
		ix = built
	}

	// 4. Run the recursion from an empty state.
	e := &engine{
		target:   target,
		ix:       ix,
		frags:    lib.Fragments(),
		maxCalls: dopts.MaxIterations,
	}
	st := &searchState{owner: make([]ref, target.AtomCount())}
	for i := range st.owner {
		st.owner[i] = ref{inst: -1}
	}

	tree, err := e.search(st, dopts.MaxDepth)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, ErrNoDecomposition
	}

	return tree, nil
}

// search is one recursive invocation. It returns (nil, nil) for an ordinary
// branch failure, (tree, nil) on the first accepted decomposition, and a
// non-nil error only for the search-wide aborts (iteration cap, internal
// fault), which unwind every enclosing iteration.
func (e *engine) search(st *searchState, depth int) (*Tree, error) {
	// 1. Global iteration budget: one increment per invocation, not per
	//    branch attempt; breach is a hard, search-wide abort.
	e.calls++
	if e.calls > e.maxCalls {
		return nil, ErrIterationLimit
	}

	// 2. Base case: depth exhausted or every atom assigned.
	if depth == 0 || st.assigned == e.target.AtomCount() {
		return e.finish(st)
	}

	// 3. Recursive case: fragments in library priority order, matches in
	//    index order. The first branch to succeed short-circuits the rest.
	for _, f := range e.frags {
		for _, m := range e.ix.Matches(f.ID()) {
			next, ok, err := e.place(st, f, m)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue // rejected match: try the next alternative
			}
			tree, err := e.search(next, depth-1)
			if err != nil {
				return nil, err
			}
			if tree != nil {
				return tree, nil
			}
		}
	}

	// 4. Every fragment/match combination exhausted: the branch fails.
	return nil, nil
}

// finish evaluates a terminal state: full coverage, the spanning-tree shape,
// and round-trip equivalence with the target. Any shortfall is an ordinary
// branch failure except a reassembly fault, which is an internal error.
func (e *engine) finish(st *searchState) (*Tree, error) {
	// 1. Every target atom must be assigned.
	if st.assigned != e.target.AtomCount() {
		return nil, nil
	}

	// 2. Necessary tree condition before paying for reassembly.
	if len(st.bonds) != len(st.instances)-1 {
		return nil, nil
	}

	// 3. Materialize the candidate tree from this path's state.
	tree := &Tree{
		Instances: append([]Instance(nil), st.instances...),
		Bonds:     append([]Bond(nil), st.bonds...),
	}
	if !tree.Spanning() {
		return nil, nil
	}

	// 4. Round trip: reassemble and compare with the target.
	rebuilt, err := tree.Reassemble()
	if err != nil {
		// Reassembly of state the search itself built must not fail.
		return nil, fmt.Errorf("%w: reassemble: %w", ErrInternal, err)
	}
	if !assemble.Equivalent(rebuilt, e.target) {
		return nil, nil
	}

	return tree, nil
}

// place attempts to add one fragment occurrence to the state. It returns the
// extended state on acceptance, ok=false for the enumerated per-branch
// rejections, and a non-nil error only for malformed matches (a defect in a
// caller-supplied index, never produced by match.BuildIndex).
func (e *engine) place(st *searchState, f chem.Fragment, m match.Match) (*searchState, bool, error) {
	body := f.Body()
	n := e.target.AtomCount()

	// 1. Defensive shape check on the match itself.
	if len(m.Atoms) != body.AtomCount() {
		return nil, false, fmt.Errorf("%w: match arity %d for fragment of %d atoms", ErrInternal, len(m.Atoms), body.AtomCount())
	}
	inImage := make(map[int]bool, len(m.Atoms))
	for _, t := range m.Atoms {
		if t < 0 || t >= n {
			return nil, false, fmt.Errorf("%w: match atom %d out of target range", ErrInternal, t)
		}
		inImage[t] = true
	}

	// 2. No overlap: every matched atom must still be unassigned.
	for _, t := range m.Atoms {
		if st.owner[t].inst >= 0 {
			return nil, false, nil
		}
	}

	// 3. Formal charges must agree atom by atom.
	for local, t := range m.Atoms {
		if body.Atom(local).Charge != e.target.Atom(t).Charge {
			return nil, false, nil
		}
	}

	// 4. Boundary bonds: every bond leaving the match image must be single
	//    and must leave through a declared stem atom.
	for local, t := range m.Atoms {
		for _, b := range targetNeighbors(e.target, t) {
			if inImage[b.B] {
				continue // internal bond, already preserved by the match
			}
			if b.Order != chem.Single {
				return nil, false, nil
			}
			if f.StemIndex(local) < 0 {
				return nil, false, nil
			}
		}
	}

	// 5. Accept: extend the assignment and instance list by copy.
	instID := len(st.instances)
	next := &searchState{
		owner:     append([]ref(nil), st.owner...),
		assigned:  st.assigned + len(m.Atoms),
		instances: append(append([]Instance(nil), st.instances...), Instance{
			ID:    instID,
			Frag:  f,
			Atoms: append([]int(nil), m.Atoms...),
		}),
		bonds: append([]Bond(nil), st.bonds...),
	}
	for local, t := range m.Atoms {
		next.owner[t] = ref{inst: instID, local: local}
	}

	// 6. Pair each stem of the new instance with already-assigned neighbors.
	//    A stem (on either side) consumed by a fixed record or by a record
	//    accumulated earlier in this same step stays consumed: the neighbor
	//    is skipped, no bond is added for it.
	var tentative []Bond
	for stemPos, local := range f.Stems() {
		t := m.Atoms[local]
		for _, b := range targetNeighbors(e.target, t) {
			u := b.B
			if inImage[u] || b.Order != chem.Single {
				continue
			}
			ou := st.owner[u]
			if ou.inst < 0 {
				continue // neighbor not placed yet; pairing happens when it is
			}
			otherStem := next.instances[ou.inst].Frag.StemIndex(ou.local)
			if otherStem < 0 {
				// The neighbor's boundary atom is not a declared stem.
				// Placement of that instance should have rejected this, so
				// treat the whole match as invalid and fail the branch.
				return nil, false, nil
			}
			if stemUsed(next.bonds, tentative, instID, stemPos) || stemUsed(next.bonds, tentative, ou.inst, otherStem) {
				continue
			}
			tentative = append(tentative, Bond{
				InstA: instID, InstB: ou.inst,
				StemA: stemPos, StemB: otherStem,
				AtomA: t, AtomB: u,
			})
		}
	}
	next.bonds = append(next.bonds, tentative...)

	return next, true, nil
}

// stemUsed reports whether (inst, stem) already appears in the fixed records
// or in the tentative records of the current placement step.
func stemUsed(fixed, tentative []Bond, inst, stem int) bool {
	for _, b := range fixed {
		if (b.InstA == inst && b.StemA == stem) || (b.InstB == inst && b.StemB == stem) {
			return true
		}
	}
	for _, b := range tentative {
		if (b.InstA == inst && b.StemA == stem) || (b.InstB == inst && b.StemB == stem) {
			return true
		}
	}

	return false
}

// targetNeighbors wraps Structure.Neighbors for indices validated above.
func targetNeighbors(s *chem.Structure, i int) []chem.Bond {
	nbs, err := s.Neighbors(i)
	if err != nil {
		return nil
	}

	return nbs
}
