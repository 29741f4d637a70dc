// Package chem defines the central Structure, Atom, Bond and Fragment types,
// and provides deterministic primitives for building and querying molecular
// graphs.
//
// A Structure is an index-addressed labeled graph: atoms are appended once and
// afterwards referred to by their stable position in the atom sequence; bonds
// are undirected pairs of atom indices carrying a BondOrder. Structures are
// mutable while being assembled and are treated as frozen once handed to a
// Library, a match.Index, or a running search.
//
// This file declares Atom, Bond, BondOrder, Structure, sentinel errors, and
// the NewStructure constructor.
//
// Errors:
//
//	ErrAtomOutOfRange  - bond endpoint references a missing atom.
//	ErrSelfBond        - both bond endpoints are the same atom.
//	ErrDuplicateBond   - a bond between the two atoms already exists.
//	ErrBadBondOrder    - bond order is not one of the declared constants.
package chem

import "errors"

// Sentinel errors for structure assembly.
var (
	// ErrAtomOutOfRange indicates a bond endpoint referenced a non-existent atom index.
	ErrAtomOutOfRange = errors.New("chem: atom index out of range")

	// ErrSelfBond indicates a bond was attempted from an atom to itself.
	ErrSelfBond = errors.New("chem: self-bond not allowed")

	// ErrDuplicateBond indicates a second bond was attempted between the same atom pair.
	ErrDuplicateBond = errors.New("chem: duplicate bond")

	// ErrBadBondOrder indicates an unknown BondOrder value.
	ErrBadBondOrder = errors.New("chem: bad bond order")
)

// BondOrder classifies a bond between two atoms.
type BondOrder uint8

// Declared bond orders. The zero value is deliberately invalid so that an
// uninitialized Bond cannot masquerade as a single bond.
const (
	Single BondOrder = iota + 1 // ordinary two-electron bond
	Double                      // double bond
	Triple                      // triple bond
	Aromatic                    // delocalized ring bond
)

// Valid reports whether o is one of the declared bond orders.
func (o BondOrder) Valid() bool {
	return o >= Single && o <= Aromatic
}

// String returns a short human-readable name for the bond order.
func (o BondOrder) String() string {
	switch o {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	case Aromatic:
		return "aromatic"
	default:
		return "invalid"
	}
}

// Atom is one node of a Structure. Atoms carry an element label and a formal
// charge; their identity within a Structure is their index in the atom
// sequence, assigned by AddAtom and stable for the Structure's lifetime.
type Atom struct {
	// Element is the identity label, e.g. "C", "N", "O".
	Element string

	// Charge is the formal charge, usually in -2..+2.
	Charge int
}

// Bond is an undirected edge between two atoms of one Structure.
// Endpoints are normalized on insertion so that A < B.
type Bond struct {
	// A, B are the endpoint atom indices, A < B after normalization.
	A, B int

	// Order is the bond order; always Valid() for bonds stored in a Structure.
	Order BondOrder
}

// Other returns the endpoint opposite to atom i.
// Calling it with an index that is not an endpoint returns -1.
func (b Bond) Other(i int) int {
	switch i {
	case b.A:
		return b.B
	case b.B:
		return b.A
	default:
		return -1
	}
}

// Structure is an index-addressed atom/bond graph: a decomposition target or
// the body of a library fragment. The zero value is not usable; construct
// with NewStructure.
type Structure struct {
	atoms []Atom  // atom sequence; index = atom identity
	bonds []Bond  // bond set in insertion order
	adj   [][]int // adj[i] = indices into bonds incident to atom i, insertion order
}

// NewStructure returns an empty Structure ready for AddAtom/AddBond calls.
func NewStructure() *Structure {
	return &Structure{
		atoms: make([]Atom, 0, 8),
		bonds: make([]Bond, 0, 8),
		adj:   make([][]int, 0, 8),
	}
}
