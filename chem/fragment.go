// Package chem: fragment vocabulary types.
//
// A Fragment is a small Structure plus an ordered list of stem atoms: the
// local atom indices eligible for inter-fragment bonds, each usable for at
// most one external bond. A Library is the fixed, read-only vocabulary those
// fragments form: it orders fragments by descending atom count so that
// searches probe larger pieces first, and assigns each fragment its stable
// id (its position in that order).
package chem

import (
	"errors"
	"sort"
)

// Sentinel errors for fragment and library construction.
var (
	// ErrEmptyFragment indicates a fragment with no atoms.
	ErrEmptyFragment = errors.New("chem: fragment has no atoms")

	// ErrStemOutOfRange indicates a stem index outside the fragment's atom sequence.
	ErrStemOutOfRange = errors.New("chem: stem index out of range")

	// ErrDuplicateStem indicates the same atom was declared as a stem twice.
	ErrDuplicateStem = errors.New("chem: duplicate stem index")

	// ErrEmptyLibrary indicates NewLibrary was called with no fragments.
	ErrEmptyLibrary = errors.New("chem: library has no fragments")

	// ErrFragmentNotFound indicates a fragment id outside the library.
	ErrFragmentNotFound = errors.New("chem: fragment not found")
)

// Fragment is one vocabulary entry: a Structure plus its ordered stem list.
// Fragments are value types; the embedded Structure pointer is treated as
// immutable once the Fragment joins a Library.
type Fragment struct {
	body  *Structure
	stems []int
	id    int // position in the owning Library's priority order; -1 before loading
}

// NewFragment builds a Fragment from a Structure and its stem atom indices.
// Stems keep the given order; it defines the stem index used in bond records.
// Returns ErrEmptyFragment, ErrStemOutOfRange, or ErrDuplicateStem on invalid
// input.
func NewFragment(body *Structure, stems ...int) (Fragment, error) {
	// 1. A fragment must contribute at least one atom.
	if body == nil || body.AtomCount() == 0 {
		return Fragment{}, ErrEmptyFragment
	}

	// 2. Validate stem indices: in range, no duplicates.
	seen := make(map[int]struct{}, len(stems))
	for _, st := range stems {
		if st < 0 || st >= body.AtomCount() {
			return Fragment{}, ErrStemOutOfRange
		}
		if _, dup := seen[st]; dup {
			return Fragment{}, ErrDuplicateStem
		}
		seen[st] = struct{}{}
	}

	// 3. Copy the stem list so later caller mutation cannot leak in.
	own := make([]int, len(stems))
	copy(own, stems)

	return Fragment{body: body, stems: own, id: -1}, nil
}

// ID returns the fragment's library id, or -1 if it is not in a Library.
func (f Fragment) ID() int { return f.id }

// Body returns the fragment's structure. Read-only by contract.
func (f Fragment) Body() *Structure { return f.body }

// Stems returns the ordered stem atom indices. Read-only by contract.
func (f Fragment) Stems() []int { return f.stems }

// StemIndex returns the position of local atom idx in the stem list,
// or -1 if the atom is not a stem.
func (f Fragment) StemIndex(local int) int {
	for i, st := range f.stems {
		if st == local {
			return i
		}
	}

	return -1
}

// Library is a fixed fragment vocabulary. It is immutable after NewLibrary
// and safe to share by reference across any number of concurrent searches.
type Library struct {
	frags []Fragment // descending atom count, stable on ties
}

// NewLibrary builds a Library from the given fragments. Fragments are
// reordered by descending atom count (stable, so equal-sized fragments keep
// their submission order) and assigned ids equal to their position in that
// order. Returns ErrEmptyLibrary when no fragments are given.
// Complexity: O(n log n).
func NewLibrary(frags ...Fragment) (*Library, error) {
	if len(frags) == 0 {
		return nil, ErrEmptyLibrary
	}

	// Copy before sorting: the caller keeps its slice untouched.
	ordered := make([]Fragment, len(frags))
	copy(ordered, frags)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].body.AtomCount() > ordered[j].body.AtomCount()
	})

	// Freeze ids to the priority order.
	for i := range ordered {
		ordered[i].id = i
	}

	return &Library{frags: ordered}, nil
}

// Len returns the number of fragments.
func (l *Library) Len() int { return len(l.frags) }

// Fragments returns the vocabulary in priority order (descending atom count).
// The returned slice is a copy; the Fragment values inside reference the
// library's shared, immutable structures.
func (l *Library) Fragments() []Fragment {
	out := make([]Fragment, len(l.frags))
	copy(out, l.frags)

	return out
}

// Fragment returns the fragment with the given id.
// Returns ErrFragmentNotFound for an id outside [0, Len).
func (l *Library) Fragment(id int) (Fragment, error) {
	if id < 0 || id >= len(l.frags) {
		return Fragment{}, ErrFragmentNotFound
	}

	return l.frags[id], nil
}
