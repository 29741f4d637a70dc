// Package match enumerates subgraph embeddings of library fragments onto a
// target structure and precomputes them into a per-target Index.
//
// Key features:
//   - Enumerate(target, frag): every embedding of one fragment, not just one
//     canonical representative; symmetric fragments yield one match per
//     automorphism-distinct role assignment, which downstream stem pairing
//     depends on.
//   - BuildIndex(target, lib): all embeddings of every library fragment,
//     keyed by fragment id, order preserved for determinism.
//
// An embedding maps fragment-local atom indices injectively onto target atom
// indices, preserving element labels and internal bond orders. Formal charge
// is deliberately not compared here; the decomposition search applies its own
// charge rejection so that the index stays a pure function of connectivity
// and labels.
//
// Complexity: enumeration is a backtracking walk, worst-case exponential in
// fragment size; fragments in practice are small (≲ 10 atoms), and the index
// is built once per target.
//
// Errors:
//
//	ErrNilTarget  - target structure is nil.
//	ErrNilLibrary - fragment library is nil.
package match

import (
	"errors"

	"github.com/katalvlaran/fragtree/chem"
)

var (
	// ErrNilTarget is returned when a nil target structure is passed to BuildIndex.
	ErrNilTarget = errors.New("match: target structure is nil")

	// ErrNilLibrary is returned when a nil library is passed to BuildIndex.
	ErrNilLibrary = errors.New("match: fragment library is nil")
)

// Match is one embedding of a fragment onto the target.
// Atoms[local] is the target atom playing fragment-local role local.
type Match struct {
	// Fragment is the library id of the matched fragment, or -1 when the
	// match was produced by Enumerate outside a library context.
	Fragment int

	// Atoms maps fragment-local atom index to target atom index (injective).
	Atoms []int
}

// Covers reports whether the embedding uses target atom t.
func (m Match) Covers(t int) bool {
	for _, a := range m.Atoms {
		if a == t {
			return true
		}
	}

	return false
}

// Index holds every embedding of every library fragment onto one target.
// It is a pure function of (target, library): built once before a search,
// never mutated afterwards, and safe to share across concurrent searches.
type Index struct {
	target  *chem.Structure
	matches [][]Match // matches[fragID] in enumeration order
}

// Target returns the structure the index was built for.
func (ix *Index) Target() *chem.Structure { return ix.target }

// Matches returns the embeddings of fragment id in enumeration order.
// The returned slice is shared and read-only by contract.
// An unknown id yields nil, indistinguishable from "no embeddings".
func (ix *Index) Matches(id int) []Match {
	if id < 0 || id >= len(ix.matches) {
		return nil
	}

	return ix.matches[id]
}

// MatchCount returns the total number of embeddings across all fragments.
func (ix *Index) MatchCount() int {
	n := 0
	for _, ms := range ix.matches {
		n += len(ms)
	}

	return n
}
