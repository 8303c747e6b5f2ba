// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// cellDocument is the on-disk form of a cell. JSON files decode through the
// same YAML decoder.
type cellDocument struct {
	Lattice   [3][3]float64 `yaml:"lattice" json:"lattice"`
	Positions [][3]float64  `yaml:"positions" json:"positions"`
	Numbers   []int         `yaml:"numbers" json:"numbers"`
}

// readCell decodes one cell from r; unknown keys are rejected.
func readCell(r io.Reader) (crystal.Cell, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc cellDocument
	if err := dec.Decode(&doc); err != nil {
		return crystal.Cell{}, fmt.Errorf("decode cell: %w", err)
	}
	positions := make([]linalg.Vec3, len(doc.Positions))
	for i, p := range doc.Positions {
		positions[i] = linalg.Vec3(p)
	}
	return crystal.NewCell(linalg.Mat3(doc.Lattice), positions, doc.Numbers)
}

// openCell reads the cell at path; "-" means stdin.
func openCell(path string, stdin io.Reader) (crystal.Cell, error) {
	if path == "-" {
		return readCell(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return crystal.Cell{}, err
	}
	defer f.Close()
	c, err := readCell(f)
	if err != nil {
		return crystal.Cell{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func cellOf(c crystal.Cell) cellDocument {
	doc := cellDocument{
		Lattice:   [3][3]float64(c.Lattice.Basis),
		Positions: make([][3]float64, len(c.Positions)),
		Numbers:   append([]int(nil), c.Numbers...),
	}
	for i, p := range c.Positions {
		doc.Positions[i] = [3]float64(p)
	}
	return doc
}
