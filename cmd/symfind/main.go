// SPDX-License-Identifier: MIT

// Command symfind reports the space group, Wyckoff positions and
// standardized cells of a crystal structure.
//
// Usage:
//
//	symfind [flags] CELL_FILE      classify a cell ("-" reads stdin)
//	symfind hall N                 print a Hall setting and its Wyckoff table
//	symfind reduce [flags] FILE    reduce the lattice of a cell
//
// A cell file is YAML or JSON:
//
//	lattice:   [[3.17, 0, 0], [-1.585, 2.7453, 0], [0, 0, 5.14]]
//	positions: [[0.3333, 0.6667, 0.25], [0.6667, 0.3333, 0.75]]
//	numbers:   [1, 1]
//
// Lattice rows are the basis vectors; positions are fractional.
//
// Every flag may also be set in a YAML config file (--config, by default
// $XDG_CONFIG_HOME/symfind/config.yaml) or through the environment as
// SYMFIND_<FLAG>, e.g. SYMFIND_ANGLE_TOLERANCE=5.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
