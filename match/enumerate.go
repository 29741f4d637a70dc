package match

import "github.com/katalvlaran/fragtree/chem"

// embedWalker encapsulates state during one enumeration walk.
type embedWalker struct {
	target  *chem.Structure // structure being matched against
	frag    *chem.Structure // pattern body
	order   []int           // pattern-local visit order (connected extension)
	image   []int           // image[local] = target atom, -1 while unmapped
	used    []bool          // used[t] = target atom already taken (injectivity)
	charges bool            // also require equal formal charges
	limit   int             // stop after this many embeddings; 0 = all
	out     []Match         // accumulated complete embeddings
}

// Enumerate returns every embedding of frag onto target, in a deterministic
// order: the fragment's atoms are visited in a connected extension order
// rooted at local atom 0, candidate target atoms are tried ascending (or in
// target adjacency order once an anchor exists). No canonicalization is
// applied: a fragment with internal symmetry contributes one match per role
// assignment of its atoms.
//
// The Fragment field of each returned Match is frag.ID() (-1 for fragments
// that are not in a library).
func Enumerate(target *chem.Structure, frag chem.Fragment) []Match {
	w := newWalker(target, frag.Body())
	if w == nil {
		return nil
	}
	w.extend(0, frag.ID())

	return w.out
}

// Embeds reports whether pattern embeds into host preserving element labels,
// formal charges, and bond orders. It short-circuits at the first embedding:
// existence is all the mutual-containment check needs.
func Embeds(pattern, host *chem.Structure) bool {
	w := newWalker(host, pattern)
	if w == nil {
		return false
	}
	w.charges = true
	w.limit = 1
	w.extend(0, -1)

	return len(w.out) > 0
}

// newWalker prepares a walker for matching pattern onto target,
// or nil when the pattern trivially cannot embed.
func newWalker(target, pattern *chem.Structure) *embedWalker {
	if target == nil || pattern == nil || pattern.AtomCount() == 0 || pattern.AtomCount() > target.AtomCount() {
		return nil
	}

	w := &embedWalker{
		target: target,
		frag:   pattern,
		order:  visitOrder(pattern),
		image:  make([]int, pattern.AtomCount()),
		used:   make([]bool, target.AtomCount()),
	}
	for i := range w.image {
		w.image[i] = -1
	}

	return w
}

// visitOrder returns the pattern-local atom order used for extension:
// start at atom 0, then repeatedly take the lowest-index unvisited atom
// adjacent to the visited set, falling back to the lowest-index unvisited
// atom when the pattern is disconnected.
func visitOrder(body *chem.Structure) []int {
	n := body.AtomCount()
	order := make([]int, 0, n)
	placed := make([]bool, n)

	order = append(order, 0)
	placed[0] = true
	for len(order) < n {
		next := -1
		for i := 0; i < n && next < 0; i++ {
			if placed[i] {
				continue
			}
			for _, b := range mustNeighbors(body, i) {
				if placed[b.B] {
					next = i
					break
				}
			}
		}
		if next < 0 {
			// Disconnected remainder: take the lowest unvisited atom.
			for i := 0; i < n; i++ {
				if !placed[i] {
					next = i
					break
				}
			}
		}
		order = append(order, next)
		placed[next] = true
	}

	return order
}

// extend tries every feasible target atom for the pattern atom at position
// pos of the visit order, recursing until all atoms are mapped.
// It returns true once the embedding limit is reached, aborting the walk.
func (w *embedWalker) extend(pos, fragID int) bool {
	// 1. Complete embedding: record a copy and backtrack.
	if pos == len(w.order) {
		atoms := make([]int, len(w.image))
		copy(atoms, w.image)
		w.out = append(w.out, Match{Fragment: fragID, Atoms: atoms})

		return w.limit > 0 && len(w.out) >= w.limit
	}

	fa := w.order[pos]

	// 2. Candidate targets: neighbors of the first mapped pattern-neighbor's
	//    image when one exists (connected extension), else every target atom.
	anchor := -1
	for _, b := range mustNeighbors(w.frag, fa) {
		if w.image[b.B] >= 0 {
			anchor = w.image[b.B]
			break
		}
	}

	var candidates []int
	if anchor >= 0 {
		for _, b := range mustNeighbors(w.target, anchor) {
			candidates = append(candidates, b.B)
		}
	} else {
		candidates = make([]int, w.target.AtomCount())
		for t := range candidates {
			candidates[t] = t
		}
	}

	// 3. Try each candidate in order; feasibility keeps enumeration exact.
	for _, t := range candidates {
		if !w.feasible(fa, t) {
			continue
		}
		w.image[fa] = t
		w.used[t] = true
		stop := w.extend(pos+1, fragID)
		w.image[fa] = -1
		w.used[t] = false
		if stop {
			return true
		}
	}

	return false
}

// feasible reports whether target atom t can play pattern-local role fa:
// t is unused, the element labels (and charges, when enabled) agree, and
// every pattern bond from fa to an already-mapped atom exists in the target
// with the same order.
func (w *embedWalker) feasible(fa, t int) bool {
	if w.used[t] {
		return false
	}
	pa, ta := w.frag.Atom(fa), w.target.Atom(t)
	if pa.Element != ta.Element {
		return false
	}
	if w.charges && pa.Charge != ta.Charge {
		return false
	}
	for _, fb := range mustNeighbors(w.frag, fa) {
		mapped := w.image[fb.B]
		if mapped < 0 {
			continue
		}
		tb, ok := w.target.BondBetween(t, mapped)
		if !ok || tb.Order != fb.Order {
			return false
		}
	}

	return true
}

// mustNeighbors wraps Structure.Neighbors for indices known to be in range.
func mustNeighbors(s *chem.Structure, i int) []chem.Bond {
	nbs, err := s.Neighbors(i)
	if err != nil {
		return nil
	}

	return nbs
}
