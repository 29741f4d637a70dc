package builder

import (
	"fmt"

	"github.com/katalvlaran/fragtree/chem"
)

// ChainFragment builds a linear single-bonded fragment of n atoms with the
// given stem atom indices.
func ChainFragment(element string, n int, stems ...int) (chem.Fragment, error) {
	body, err := BuildStructure(Chain(element, n, chem.Single))
	if err != nil {
		return chem.Fragment{}, fmt.Errorf("ChainFragment: %w", err)
	}

	return chem.NewFragment(body, stems...)
}

// RingFragment builds an n-atom ring fragment with uniform bond order and
// the given stem atom indices.
func RingFragment(element string, n int, order chem.BondOrder, stems ...int) (chem.Fragment, error) {
	body, err := BuildStructure(Ring(element, n, order))
	if err != nil {
		return chem.Fragment{}, fmt.Errorf("RingFragment: %w", err)
	}

	return chem.NewFragment(body, stems...)
}

// CapFragment builds a one-atom fragment whose single atom is its stem:
// the terminal piece that closes off a chain.
func CapFragment(element string) (chem.Fragment, error) {
	body, err := BuildStructure(Chain(element, 1, chem.Single))
	if err != nil {
		return chem.Fragment{}, fmt.Errorf("CapFragment: %w", err)
	}

	return chem.NewFragment(body, 0)
}

// DefaultVocabulary bundles the stock fragment set used by tests and
// examples: carbon links of lengths 2-4 with stems at both ends, an aromatic
// six-ring with three alternating stems, and one-atom caps for C, N and O.
// The returned library orders fragments by descending atom count as usual.
func DefaultVocabulary() (*chem.Library, error) {
	ring, err := RingFragment("C", 6, chem.Aromatic, 0, 2, 4)
	if err != nil {
		return nil, err
	}

	var frags []chem.Fragment
	frags = append(frags, ring)
	for _, n := range []int{4, 3, 2} {
		link, lerr := ChainFragment("C", n, 0, n-1)
		if lerr != nil {
			return nil, lerr
		}
		frags = append(frags, link)
	}
	for _, el := range []string{"C", "N", "O"} {
		cap1, cerr := CapFragment(el)
		if cerr != nil {
			return nil, cerr
		}
		frags = append(frags, cap1)
	}

	return chem.NewLibrary(frags...)
}
