// Package symfind finds the symmetry of crystal structures: the space group
// of a periodic arrangement of atoms, its Wyckoff positions and the
// standardized cells of International Tables.
//
// 🚀 What is symfind?
//
//	A deterministic, pure-Go symmetry engine that brings together:
//		• Lattice reduction: Niggli, Delaunay, Minkowski
//		• Symmetry search: primitive cell, Bravais group, operations with tolerances
//		• Classification: 32 point groups, 73 arithmetic classes, 230 types in 530 Hall settings
//		• Wyckoff positions with International Tables letters and site-symmetry symbols
//		• Standardization: conventional and primitive cells with idealized lattices
//
// ✨ Why choose symfind?
//
//   - One call: dataset.New(cell) runs the whole pipeline
//   - Explicit tolerances: symprec and angle tolerance, optional retries
//   - Reproducible: no hidden state besides the embedded Hall catalog
//   - Observable: every stage logs through an injected logr.Logger
//
// Under the hood, everything is organized in stage packages:
//
//	linalg/       3×3 real and integer algebra, Hermite and Smith normal forms
//	crystal/      lattices, cells, operations, permutations, transformations
//	reduce/       Niggli, Delaunay and Minkowski reduction
//	search/       primitive cell and symmetry-operation search
//	catalog/      Hall settings, Hall-symbol parser, classes, Wyckoff tables
//	identify/     point group, arithmetic class and space-group matching
//	standardize/  standardized cells, origin choice, Wyckoff assignment
//	dataset/      the Dataset facade over all stages
//	cmd/symfind   command-line tool reading YAML or JSON cells
//
// Quick example, hexagonal close packing:
//
//	d, err := dataset.New(cell)
//	// d.Number == 194, d.HMSymbol == "P 6_3/m m c", d.Wyckoffs == [c c]
//
//	go install github.com/katalvlaran/symfind/cmd/symfind@latest
package symfind
