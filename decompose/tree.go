package decompose

import (
	"github.com/katalvlaran/fragtree/assemble"
	"github.com/katalvlaran/fragtree/chem"
)

// Instance is one placed occurrence of a library fragment. IDs are sequential
// in the order instances were chosen during the search.
type Instance struct {
	// ID is the sequential instance id, starting at 0.
	ID int

	// Frag is the placed library fragment.
	Frag chem.Fragment

	// Atoms maps fragment-local atom index to target atom index.
	Atoms []int
}

// Bond is one inter-instance bond record. Each (instance, stem) pair appears
// in at most one record of a Tree.
type Bond struct {
	// InstA, InstB are the instance ids the bond connects.
	InstA, InstB int

	// StemA, StemB are stem positions (indices into each fragment's stem
	// list) on instances A and B respectively.
	StemA, StemB int

	// AtomA, AtomB are the target atoms the bond passes through.
	AtomA, AtomB int
}

// Tree is an accepted decomposition: fragment instances plus the
// inter-instance bonds joining them. For every accepted Tree,
// len(Bonds) == len(Instances)-1 and the instance graph is connected
// (a spanning tree), and reassembling it yields a structure mutually
// substructure-matched with the decomposed target.
type Tree struct {
	Instances []Instance
	Bonds     []Bond
}

// Reassemble rebuilds the combined structure the tree describes:
// each instance's fragment body under fresh numbering, joined by one single
// bond per inter-instance record.
func (t *Tree) Reassemble() (*chem.Structure, error) {
	pieces := make([]assemble.Piece, len(t.Instances))
	for i, inst := range t.Instances {
		pieces[i] = assemble.Piece{Frag: inst.Frag, Atoms: inst.Atoms}
	}
	joints := make([]assemble.Joint, len(t.Bonds))
	for i, b := range t.Bonds {
		joints[i] = assemble.Joint{A: b.InstA, B: b.InstB, StemA: b.StemA, StemB: b.StemB}
	}

	return assemble.Reassemble(pieces, joints)
}

// Spanning reports whether the instance graph (nodes = instances,
// edges = bond records) forms a spanning tree: exactly n-1 bonds and one
// connected component. Disjoint-set union with path compression and union
// by rank keeps the check near-linear.
func (t *Tree) Spanning() bool {
	n := len(t.Instances)
	if n == 0 || len(t.Bonds) != n-1 {
		return false
	}

	// Initialize DSU: parent[i] = i, rank 0.
	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	// Iterative find with path compression.
	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}

		return u
	}

	// Union by rank; n-1 successful unions over n nodes mean connectivity.
	merged := 0
	for _, b := range t.Bonds {
		if b.InstA < 0 || b.InstA >= n || b.InstB < 0 || b.InstB >= n {
			return false
		}
		ru, rv := find(b.InstA), find(b.InstB)
		if ru == rv {
			continue // redundant bond: the instance graph has a cycle
		}
		if rank[ru] < rank[rv] {
			ru, rv = rv, ru
		}
		parent[rv] = ru
		if rank[ru] == rank[rv] {
			rank[ru]++
		}
		merged++
	}

	return merged == n-1
}
