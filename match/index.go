package match

import "github.com/katalvlaran/fragtree/chem"

// BuildIndex enumerates every embedding of every library fragment onto the
// target and freezes them into an Index keyed by fragment id.
//
// The index is a pure function of (target, lib): identical inputs yield an
// identical index, including match order, which the decomposition search
// relies on for deterministic results. Build it once per target and share it
// by reference across as many searches as needed.
//
// Returns ErrNilTarget or ErrNilLibrary on nil input.
// Complexity: sum of per-fragment enumeration costs; memory O(total matches).
func BuildIndex(target *chem.Structure, lib *chem.Library) (*Index, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if lib == nil {
		return nil, ErrNilLibrary
	}

	ix := &Index{
		target:  target,
		matches: make([][]Match, lib.Len()),
	}
	for _, f := range lib.Fragments() {
		ix.matches[f.ID()] = Enumerate(target, f)
	}

	return ix, nil
}
