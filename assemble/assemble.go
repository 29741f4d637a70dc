// Package assemble rebuilds a candidate structure from placed fragments and
// inter-fragment joints, and checks the result for structural equivalence
// with a target.
//
// Key features:
//   - Reassemble(pieces, joints): instantiate each placed fragment's body
//     under fresh atom numbering and add one single bond per joint at the
//     designated stem positions.
//   - Equivalent(a, b): mutual substructure containment, each structure
//     embeds into the other (elements, charges, bond orders preserved).
//     The bidirectional check is the practical stand-in for full graph
//     isomorphism and tolerates differently-ordered but equivalent
//     representations.
//
// Complexity: Reassemble is O(A + B) in the combined structure size;
// Equivalent delegates to embedding search, worst-case exponential but
// bounded in practice by molecule sizes.
//
// Errors:
//
//	ErrPieceOutOfRange - a joint references a missing piece.
//	ErrStemOutOfRange  - a joint references a stem position a fragment lacks.
//	ErrJointBond       - a joint bond could not be added (duplicate pair).
package assemble

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fragtree/chem"
	"github.com/katalvlaran/fragtree/match"
)

var (
	// ErrPieceOutOfRange indicates a joint referenced a piece index outside the piece list.
	ErrPieceOutOfRange = errors.New("assemble: piece index out of range")

	// ErrStemOutOfRange indicates a joint referenced a stem position the fragment does not declare.
	ErrStemOutOfRange = errors.New("assemble: stem position out of range")

	// ErrJointBond indicates a joint bond could not be added to the combined structure.
	ErrJointBond = errors.New("assemble: joint bond rejected")
)

// Piece is one placed fragment occurrence: the fragment plus the target atoms
// its local atoms were matched to. Atoms is informational for reassembly
// (fresh numbering is used) but kept so callers can correlate pieces with the
// target.
type Piece struct {
	// Frag is the placed library fragment.
	Frag chem.Fragment

	// Atoms maps fragment-local atom index to target atom index.
	Atoms []int
}

// Joint is one inter-piece bond: piece indices plus the stem positions
// (indices into each fragment's stem list) the bond passes through.
// Joint bonds are always single bonds.
type Joint struct {
	// A, B are indices into the piece list.
	A, B int

	// StemA, StemB are stem positions on pieces A and B respectively.
	StemA, StemB int
}

// Reassemble builds one combined structure: every piece's fragment body is
// instantiated under a fresh contiguous atom numbering, then each joint adds
// a single bond between the two stem atoms it names.
//
// Returns ErrPieceOutOfRange, ErrStemOutOfRange, or ErrJointBond (wrapping
// the underlying chem error) on malformed input.
func Reassemble(pieces []Piece, joints []Joint) (*chem.Structure, error) {
	// 1. Instantiate fragment bodies, tracking each piece's atom offset.
	combined := chem.NewStructure()
	offsets := make([]int, len(pieces))
	for i, p := range pieces {
		offsets[i] = combined.AtomCount()
		body := p.Frag.Body()
		for a := 0; a < body.AtomCount(); a++ {
			combined.AddAtom(body.Atom(a))
		}
		for _, b := range body.Bonds() {
			if err := combined.AddBond(offsets[i]+b.A, offsets[i]+b.B, b.Order); err != nil {
				return nil, fmt.Errorf("assemble: piece %d: %w", i, err)
			}
		}
	}

	// 2. Add one single bond per joint at the designated stem atoms.
	for _, j := range joints {
		if j.A < 0 || j.A >= len(pieces) || j.B < 0 || j.B >= len(pieces) {
			return nil, ErrPieceOutOfRange
		}
		stemsA, stemsB := pieces[j.A].Frag.Stems(), pieces[j.B].Frag.Stems()
		if j.StemA < 0 || j.StemA >= len(stemsA) || j.StemB < 0 || j.StemB >= len(stemsB) {
			return nil, ErrStemOutOfRange
		}
		u := offsets[j.A] + stemsA[j.StemA]
		v := offsets[j.B] + stemsB[j.StemB]
		if err := combined.AddBond(u, v, chem.Single); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrJointBond, err)
		}
	}

	return combined, nil
}

// Equivalent reports whether a and b are mutually substructure-matched:
// equal atom and bond counts, and each embeds into the other preserving
// elements, charges, and bond orders.
func Equivalent(a, b *chem.Structure) bool {
	if a == nil || b == nil {
		return false
	}
	if a.AtomCount() != b.AtomCount() || a.BondCount() != b.BondCount() {
		return false
	}

	return match.Embeds(a, b) && match.Embeds(b, a)
}
