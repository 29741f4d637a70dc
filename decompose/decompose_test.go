package decompose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragtree/assemble"
	"github.com/katalvlaran/fragtree/chem"
	"github.com/katalvlaran/fragtree/decompose"
	"github.com/katalvlaran/fragtree/match"
)

// carbonChain builds a linear all-single C_n target.
func carbonChain(t *testing.T, n int) *chem.Structure {
	t.Helper()
	s := chem.NewStructure()
	for i := 0; i < n; i++ {
		s.AddAtom(chem.Atom{Element: "C"})
		if i > 0 {
			require.NoError(t, s.AddBond(i-1, i, chem.Single))
		}
	}

	return s
}

// chainFrag builds a linear all-single C_n fragment with the given stems.
func chainFrag(t *testing.T, n int, stems ...int) chem.Fragment {
	t.Helper()
	f, err := chem.NewFragment(carbonChain(t, n), stems...)
	require.NoError(t, err)

	return f
}

// library wraps chem.NewLibrary with test plumbing.
func library(t *testing.T, frags ...chem.Fragment) *chem.Library {
	t.Helper()
	lib, err := chem.NewLibrary(frags...)
	require.NoError(t, err)

	return lib
}

// checkAccepted asserts the invariants every accepted tree must hold:
// spanning shape, exact atom coverage, per-stem bond uniqueness, and
// round-trip equivalence with the target.
func checkAccepted(t *testing.T, tree *decompose.Tree, target *chem.Structure) {
	t.Helper()

	// Spanning tree: bond count = instance count - 1, connected.
	assert.Len(t, tree.Bonds, len(tree.Instances)-1)
	assert.True(t, tree.Spanning())

	// Exact coverage: every target atom assigned exactly once.
	seen := make(map[int]int)
	for _, inst := range tree.Instances {
		for _, a := range inst.Atoms {
			seen[a]++
		}
	}
	assert.Len(t, seen, target.AtomCount())
	for a, c := range seen {
		assert.Equalf(t, 1, c, "target atom %d covered %d times", a, c)
	}

	// No (instance, stem) pair in more than one bond record.
	stems := make(map[[2]int]int)
	for _, b := range tree.Bonds {
		stems[[2]int{b.InstA, b.StemA}]++
		stems[[2]int{b.InstB, b.StemB}]++
	}
	for k, c := range stems {
		assert.Equalf(t, 1, c, "stem %v used by %d records", k, c)
	}

	// Round trip.
	rebuilt, err := tree.Reassemble()
	require.NoError(t, err)
	assert.True(t, assemble.Equivalent(rebuilt, target))
}

func TestDecompose_InputValidation(t *testing.T) {
	lib := library(t, chainFrag(t, 1, 0))
	target := carbonChain(t, 2)

	_, err := decompose.Decompose(nil, lib)
	assert.ErrorIs(t, err, decompose.ErrNilTarget)

	_, err = decompose.Decompose(target, nil)
	assert.ErrorIs(t, err, decompose.ErrNilLibrary)

	_, err = decompose.Decompose(chem.NewStructure(), lib)
	assert.ErrorIs(t, err, decompose.ErrEmptyTarget)

	_, err = decompose.Decompose(target, lib, decompose.WithMaxDepth(0))
	assert.ErrorIs(t, err, decompose.ErrBadLimit)

	_, err = decompose.Decompose(target, lib, decompose.WithMaxIterations(-1))
	assert.ErrorIs(t, err, decompose.ErrBadLimit)

	other := carbonChain(t, 3)
	ix, err := match.BuildIndex(other, lib)
	require.NoError(t, err)
	_, err = decompose.Decompose(target, lib, decompose.WithIndex(ix))
	assert.ErrorIs(t, err, decompose.ErrIndexMismatch)
}

func TestDecompose_WholeFragmentTarget(t *testing.T) {
	// Boundary: target equal to one whole fragment, no external bonds.
	target := carbonChain(t, 3)
	lib := library(t, chainFrag(t, 3, 0, 2), chainFrag(t, 1, 0))

	tree, err := decompose.Decompose(target, lib)
	require.NoError(t, err)
	require.Len(t, tree.Instances, 1)
	assert.Empty(t, tree.Bonds)
	assert.Equal(t, 0, tree.Instances[0].ID)
	assert.Equal(t, []int{0, 1, 2}, tree.Instances[0].Atoms)
	checkAccepted(t, tree, target)
}

func TestDecompose_TwoInstancesOneBond(t *testing.T) {
	// Fragment A joined to fragment B by a single bond, stem 0 to stem 0.
	target := carbonChain(t, 2)
	lib := library(t, chainFrag(t, 1, 0))

	tree, err := decompose.Decompose(target, lib)
	require.NoError(t, err)
	require.Len(t, tree.Instances, 2)
	require.Len(t, tree.Bonds, 1)

	b := tree.Bonds[0]
	assert.Equal(t, 0, b.StemA)
	assert.Equal(t, 0, b.StemB)
	assert.ElementsMatch(t, []int{0, 1}, []int{b.InstA, b.InstB})
	checkAccepted(t, tree, target)
}

func TestDecompose_Pentane_FirstValidTree(t *testing.T) {
	// Pentane over {C3 link, C1 cap}. The fixed traversal order pins the
	// result: the first C3 placement at atoms 0-2 strands atom 3 or 4 with a
	// consumed stem (the same-step tentative record check), so the accepted
	// tree centers the C3 link on atoms 1-3 with caps at 0 and 4.
	target := carbonChain(t, 5)
	lib := library(t, chainFrag(t, 3, 0, 2), chainFrag(t, 1, 0))

	tree, err := decompose.Decompose(target, lib)
	require.NoError(t, err)
	require.Len(t, tree.Instances, 3)
	require.Len(t, tree.Bonds, 2)

	assert.Equal(t, []int{1, 2, 3}, tree.Instances[0].Atoms)
	assert.Equal(t, []int{0}, tree.Instances[1].Atoms)
	assert.Equal(t, []int{4}, tree.Instances[2].Atoms)

	assert.Equal(t, decompose.Bond{InstA: 1, InstB: 0, StemA: 0, StemB: 0, AtomA: 0, AtomB: 1}, tree.Bonds[0])
	assert.Equal(t, decompose.Bond{InstA: 2, InstB: 0, StemA: 0, StemB: 1, AtomA: 4, AtomB: 3}, tree.Bonds[1])
	checkAccepted(t, tree, target)
}

func TestDecompose_Deterministic(t *testing.T) {
	target := carbonChain(t, 5)
	lib := library(t, chainFrag(t, 3, 0, 2), chainFrag(t, 1, 0))

	first, err := decompose.Decompose(target, lib)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, rerr := decompose.Decompose(target, lib)
		require.NoError(t, rerr)
		assert.Equal(t, first, again)
	}
}

func TestDecompose_DepthMonotonicity(t *testing.T) {
	target := carbonChain(t, 5)
	lib := library(t, chainFrag(t, 3, 0, 2), chainFrag(t, 1, 0))

	// Too shallow: pentane needs three instances.
	_, err := decompose.Decompose(target, lib, decompose.WithMaxDepth(2))
	assert.ErrorIs(t, err, decompose.ErrNoDecomposition)

	// Once successful, deeper budgets stay successful.
	for _, depth := range []int{3, 4, 7, 20} {
		tree, derr := decompose.Decompose(target, lib, decompose.WithMaxDepth(depth))
		require.NoErrorf(t, derr, "maxDepth=%d", depth)
		checkAccepted(t, tree, target)
	}
}

func TestDecompose_IterationCap(t *testing.T) {
	// Pentane needs at least three instances; one permitted invocation must
	// report resource exhaustion, not a definitive negative.
	target := carbonChain(t, 5)
	lib := library(t, chainFrag(t, 3, 0, 2), chainFrag(t, 1, 0))

	_, err := decompose.Decompose(target, lib, decompose.WithMaxIterations(1))
	assert.ErrorIs(t, err, decompose.ErrIterationLimit)
	assert.NotErrorIs(t, err, decompose.ErrNoDecomposition)
}

func TestDecompose_DoubleBondSplitRejected(t *testing.T) {
	// C-C=C-C: the only way to cover the middle with single-atom caps would
	// split across the double bond, which must be rejected.
	target := chem.NewStructure()
	for i := 0; i < 4; i++ {
		target.AddAtom(chem.Atom{Element: "C"})
	}
	require.NoError(t, target.AddBond(0, 1, chem.Single))
	require.NoError(t, target.AddBond(1, 2, chem.Double))
	require.NoError(t, target.AddBond(2, 3, chem.Single))

	// Caps only: no valid fragmentation exists.
	_, err := decompose.Decompose(target, library(t, chainFrag(t, 1, 0)))
	assert.ErrorIs(t, err, decompose.ErrNoDecomposition)

	// Adding a C=C link fragment lets the search route around the double bond.
	link := chem.NewStructure()
	link.AddAtom(chem.Atom{Element: "C"})
	link.AddAtom(chem.Atom{Element: "C"})
	require.NoError(t, link.AddBond(0, 1, chem.Double))
	dblFrag, err := chem.NewFragment(link, 0, 1)
	require.NoError(t, err)

	tree, err := decompose.Decompose(target, library(t, dblFrag, chainFrag(t, 1, 0)))
	require.NoError(t, err)
	require.Len(t, tree.Instances, 3)
	assert.Equal(t, []int{1, 2}, tree.Instances[0].Atoms, "double-bond link covers the C=C pair")
	checkAccepted(t, tree, target)
}

func TestDecompose_ChargeMismatchRejected(t *testing.T) {
	// Target nitrogen carries +1; the library nitrogen is neutral.
	target := chem.NewStructure()
	target.AddAtom(chem.Atom{Element: "N", Charge: 1})

	neutral := chem.NewStructure()
	neutral.AddAtom(chem.Atom{Element: "N"})
	nFrag, err := chem.NewFragment(neutral, 0)
	require.NoError(t, err)

	_, err = decompose.Decompose(target, library(t, nFrag))
	assert.ErrorIs(t, err, decompose.ErrNoDecomposition)

	// A matching charged fragment decomposes trivially.
	charged := chem.NewStructure()
	charged.AddAtom(chem.Atom{Element: "N", Charge: 1})
	cFrag, err := chem.NewFragment(charged, 0)
	require.NoError(t, err)

	tree, err := decompose.Decompose(target, library(t, cFrag, nFrag))
	require.NoError(t, err)
	require.Len(t, tree.Instances, 1)
	checkAccepted(t, tree, target)
}

func TestDecompose_AromaticBoundaryRejected(t *testing.T) {
	// A six-ring of aromatic bonds cannot be split by single-atom caps:
	// every boundary bond would be aromatic, not single.
	ring := chem.NewStructure()
	for i := 0; i < 6; i++ {
		ring.AddAtom(chem.Atom{Element: "C"})
	}
	for i := 0; i < 6; i++ {
		require.NoError(t, ring.AddBond(i, (i+1)%6, chem.Aromatic))
	}

	_, err := decompose.Decompose(ring, library(t, chainFrag(t, 1, 0)))
	assert.ErrorIs(t, err, decompose.ErrNoDecomposition)

	// The whole ring as one fragment decomposes to a single instance.
	ringFrag, err := chem.NewFragment(ring.Clone(), 0)
	require.NoError(t, err)
	tree, err := decompose.Decompose(ring, library(t, ringFrag, chainFrag(t, 1, 0)))
	require.NoError(t, err)
	require.Len(t, tree.Instances, 1)
	assert.Empty(t, tree.Bonds)
	checkAccepted(t, tree, ring)
}

func TestDecompose_StarNeedsEnoughStems(t *testing.T) {
	// Central atom with three branches: single-stem caps cannot supply the
	// three bonds the center needs, so only the whole-star fragment works.
	star := chem.NewStructure()
	for i := 0; i < 4; i++ {
		star.AddAtom(chem.Atom{Element: "C"})
	}
	for leaf := 1; leaf < 4; leaf++ {
		require.NoError(t, star.AddBond(0, leaf, chem.Single))
	}

	_, err := decompose.Decompose(star, library(t, chainFrag(t, 1, 0)))
	assert.ErrorIs(t, err, decompose.ErrNoDecomposition)

	starFrag, err := chem.NewFragment(star.Clone())
	require.NoError(t, err)
	tree, err := decompose.Decompose(star, library(t, starFrag, chainFrag(t, 1, 0)))
	require.NoError(t, err)
	require.Len(t, tree.Instances, 1)
	checkAccepted(t, tree, star)
}

func TestDecompose_SharedIndexAcrossCalls(t *testing.T) {
	target := carbonChain(t, 5)
	lib := library(t, chainFrag(t, 3, 0, 2), chainFrag(t, 1, 0))

	ix, err := match.BuildIndex(target, lib)
	require.NoError(t, err)

	plain, err := decompose.Decompose(target, lib)
	require.NoError(t, err)
	indexed, err := decompose.Decompose(target, lib, decompose.WithIndex(ix))
	require.NoError(t, err)
	assert.Equal(t, plain, indexed)
}

func TestTree_Spanning_Shapes(t *testing.T) {
	frag := chainFrag(t, 1, 0)
	inst := func(id int) decompose.Instance {
		return decompose.Instance{ID: id, Frag: frag, Atoms: []int{id}}
	}

	empty := &decompose.Tree{}
	assert.False(t, empty.Spanning())

	single := &decompose.Tree{Instances: []decompose.Instance{inst(0)}}
	assert.True(t, single.Spanning())

	// Right bond count but a cycle plus an isolated instance.
	cyclic := &decompose.Tree{
		Instances: []decompose.Instance{inst(0), inst(1), inst(2)},
		Bonds: []decompose.Bond{
			{InstA: 0, InstB: 1},
			{InstA: 1, InstB: 0, StemA: 1, StemB: 1},
		},
	}
	assert.False(t, cyclic.Spanning())

	// Proper path 0-1-2.
	path := &decompose.Tree{
		Instances: []decompose.Instance{inst(0), inst(1), inst(2)},
		Bonds: []decompose.Bond{
			{InstA: 0, InstB: 1},
			{InstA: 1, InstB: 2, StemA: 1},
		},
	}
	assert.True(t, path.Spanning())

	// Out-of-range instance id.
	bad := &decompose.Tree{
		Instances: []decompose.Instance{inst(0), inst(1)},
		Bonds:     []decompose.Bond{{InstA: 0, InstB: 9}},
	}
	assert.False(t, bad.Spanning())
}
