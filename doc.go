// Package fragtree decomposes molecular structures into trees of reusable
// fragments, the preprocessing step that turns raw structures into training
// examples for fragment-by-fragment generative models.
//
// 🚀 What is fragtree?
//
//	An in-memory, deterministic library that brings together:
//		• chem:      index-addressed structures, bonds, fragments, and the
//		             fixed fragment vocabulary (Library)
//		• match:     exhaustive subgraph embedding enumeration and the
//		             per-target match index
//		• decompose: the depth-bounded, iteration-capped backtracking search
//		             producing a spanning tree of fragment instances
//		• assemble:  reassembly of a candidate tree and mutual-substructure
//		             equivalence checking
//		• builder:   deterministic structure/fragment fixtures and a stock
//		             vocabulary
//		• batch:     bounded concurrent fan-out across target corpora
//
// ✨ Why choose fragtree?
//
//   - Deterministic: fixed traversal orders, no hidden randomness; the same
//     inputs always yield the same tree
//   - Honest failures: "no decomposition within limits" and "iteration cap
//     hit" are distinct, first-class outcomes
//   - Symmetry-aware: every automorphism-distinct embedding is enumerated,
//     so stem role assignments are never silently collapsed
//   - Share-nothing search: branch state is extended, never aliased, so
//     backtracking cannot leak state between alternatives
//
// Quick ASCII example:
//
//	C-C-C-C-C   decomposed over {C-C-C with stems at both ends, C cap}
//
//	    cap(C)──link(C-C-C)──cap(C)
//
//	three instances, two single bonds through declared stems; reassembling
//	the tree reproduces pentane.
//
// Dive into the per-package docs for the search semantics, the resource
// model, and worked examples.
//
//	go get github.com/katalvlaran/fragtree
package fragtree
