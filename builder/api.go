// Package builder assembles deterministic structure and fragment fixtures:
// chains, rings, and a stock fragment vocabulary for tests and examples.
//
// Design contract:
//   - One orchestrator: BuildStructure(cons...). Creates the structure and
//     applies constructors in order; same constructors in the same order
//     always produce the identical structure.
//   - Constructors validate parameters early and return sentinel errors,
//     never panic.
//   - Fragment factories return ready chem.Fragment values; DefaultVocabulary
//     bundles them into the stock library.
package builder

import (
	"fmt"

	"github.com/katalvlaran/fragtree/chem"
)

// Constructor applies one deterministic mutation to a structure under
// assembly. Constructors appending atoms always append after the existing
// atom sequence, so composition order fully determines atom indices.
type Constructor func(s *chem.Structure) error

// BuildStructure creates a structure and applies all constructors in order.
// Any constructor error is wrapped with "BuildStructure: %w" and returned
// immediately; no partial cleanup is attempted.
func BuildStructure(cons ...Constructor) (*chem.Structure, error) {
	s := chem.NewStructure()
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildStructure: constructor %d: %w", i, ErrNilConstructor)
		}
		if err := fn(s); err != nil {
			return nil, fmt.Errorf("BuildStructure: %w", err)
		}
	}

	return s, nil
}

// Chain appends n atoms of the given element, joined consecutively by bonds
// of the given order. A single atom (n = 1) adds no bonds.
// Returns ErrBadCount for n < 1.
func Chain(element string, n int, order chem.BondOrder) Constructor {
	return func(s *chem.Structure) error {
		if n < 1 {
			return fmt.Errorf("Chain: n=%d: %w", n, ErrBadCount)
		}
		base := s.AtomCount()
		for i := 0; i < n; i++ {
			s.AddAtom(chem.Atom{Element: element})
			if i > 0 {
				if err := s.AddBond(base+i-1, base+i, order); err != nil {
					return fmt.Errorf("Chain: %w", err)
				}
			}
		}

		return nil
	}
}

// Ring appends an n-atom cycle of the given element with uniform bond order.
// Returns ErrBadCount for n < 3.
func Ring(element string, n int, order chem.BondOrder) Constructor {
	return func(s *chem.Structure) error {
		if n < 3 {
			return fmt.Errorf("Ring: n=%d: %w", n, ErrBadCount)
		}
		base := s.AtomCount()
		for i := 0; i < n; i++ {
			s.AddAtom(chem.Atom{Element: element})
		}
		for i := 0; i < n; i++ {
			if err := s.AddBond(base+i, base+(i+1)%n, order); err != nil {
				return fmt.Errorf("Ring: %w", err)
			}
		}

		return nil
	}
}

// Attach adds a bond between two existing atoms, for joining the pieces
// earlier constructors appended.
func Attach(a, b int, order chem.BondOrder) Constructor {
	return func(s *chem.Structure) error {
		if err := s.AddBond(a, b, order); err != nil {
			return fmt.Errorf("Attach: %w", err)
		}

		return nil
	}
}

// AtomWith appends one atom with an explicit element and charge.
func AtomWith(element string, charge int) Constructor {
	return func(s *chem.Structure) error {
		s.AddAtom(chem.Atom{Element: element, Charge: charge})

		return nil
	}
}
