// Package chem: Structure method implementations.
//
// This file provides deterministic, O(1)-to-O(deg) operations for atom and
// bond management on the Structure type defined in types.go. Adjacency is
// stored as a per-atom slice of bond indices in insertion order, which keeps
// Neighbors enumeration reproducible across runs without sorting.
package chem

// AddAtom appends a new atom and returns its index.
// Complexity: O(1) amortized.
func (s *Structure) AddAtom(a Atom) int {
	s.atoms = append(s.atoms, a)
	s.adj = append(s.adj, nil)

	return len(s.atoms) - 1
}

// AddBond inserts an undirected bond between atoms a and b with the given order.
// Endpoints are normalized so the stored Bond has A < B.
// Returns ErrAtomOutOfRange, ErrSelfBond, ErrDuplicateBond, or ErrBadBondOrder
// on invalid input.
// Complexity: O(deg(a)) for the duplicate check.
func (s *Structure) AddBond(a, b int, order BondOrder) error {
	// 1. Validate endpoints and order.
	if a < 0 || a >= len(s.atoms) || b < 0 || b >= len(s.atoms) {
		return ErrAtomOutOfRange
	}
	if a == b {
		return ErrSelfBond
	}
	if !order.Valid() {
		return ErrBadBondOrder
	}

	// 2. Normalize endpoint order.
	if a > b {
		a, b = b, a
	}

	// 3. Reject parallel bonds.
	for _, bi := range s.adj[a] {
		if s.bonds[bi].A == a && s.bonds[bi].B == b {
			return ErrDuplicateBond
		}
	}

	// 4. Record bond and adjacency entries.
	bi := len(s.bonds)
	s.bonds = append(s.bonds, Bond{A: a, B: b, Order: order})
	s.adj[a] = append(s.adj[a], bi)
	s.adj[b] = append(s.adj[b], bi)

	return nil
}

// AtomCount returns the number of atoms. Complexity: O(1).
func (s *Structure) AtomCount() int { return len(s.atoms) }

// BondCount returns the number of bonds. Complexity: O(1).
func (s *Structure) BondCount() int { return len(s.bonds) }

// Atom returns the atom at index i. Panics on out-of-range access the same
// way a slice would; callers index with values they obtained from AddAtom.
func (s *Structure) Atom(i int) Atom { return s.atoms[i] }

// Bonds returns a copy of the bond set in insertion order.
// Complexity: O(B).
func (s *Structure) Bonds() []Bond {
	out := make([]Bond, len(s.bonds))
	copy(out, s.bonds)

	return out
}

// Neighbors returns the bonds incident to atom i, each oriented so that A == i,
// in bond-insertion order. The deterministic order is load-bearing: match
// enumeration and search both traverse it and must be reproducible.
// Returns ErrAtomOutOfRange for an invalid index.
// Complexity: O(deg(i)).
func (s *Structure) Neighbors(i int) ([]Bond, error) {
	if i < 0 || i >= len(s.atoms) {
		return nil, ErrAtomOutOfRange
	}

	out := make([]Bond, 0, len(s.adj[i]))
	var b Bond
	for _, bi := range s.adj[i] {
		b = s.bonds[bi]
		if b.A != i {
			b.A, b.B = b.B, b.A
		}
		out = append(out, b)
	}

	return out, nil
}

// BondBetween reports the bond connecting atoms a and b, if any.
// Complexity: O(min(deg(a), deg(b))); it scans the smaller adjacency list.
func (s *Structure) BondBetween(a, b int) (Bond, bool) {
	if a < 0 || a >= len(s.atoms) || b < 0 || b >= len(s.atoms) || a == b {
		return Bond{}, false
	}
	if len(s.adj[b]) < len(s.adj[a]) {
		a, b = b, a
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, bi := range s.adj[a] {
		if s.bonds[bi].A == lo && s.bonds[bi].B == hi {
			return s.bonds[bi], true
		}
	}

	return Bond{}, false
}

// Degree returns the number of bonds incident to atom i, or 0 for an invalid index.
func (s *Structure) Degree(i int) int {
	if i < 0 || i >= len(s.adj) {
		return 0
	}

	return len(s.adj[i])
}

// Clone returns a deep copy of the Structure. The copy shares no state with
// the receiver and may be mutated freely.
// Complexity: O(A + B).
func (s *Structure) Clone() *Structure {
	c := &Structure{
		atoms: make([]Atom, len(s.atoms)),
		bonds: make([]Bond, len(s.bonds)),
		adj:   make([][]int, len(s.adj)),
	}
	copy(c.atoms, s.atoms)
	copy(c.bonds, s.bonds)
	for i, row := range s.adj {
		c.adj[i] = make([]int, len(row))
		copy(c.adj[i], row)
	}

	return c
}
