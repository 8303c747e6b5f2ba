// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/dataset"
)

// report is the serialized form of a dataset.
type report struct {
	Number           int    `yaml:"number" json:"number"`
	HallNumber       int    `yaml:"hall_number" json:"hall_number"`
	HMSymbol         string `yaml:"international" json:"international"`
	HallSymbol       string `yaml:"hall_symbol" json:"hall_symbol"`
	ArithmeticNumber int    `yaml:"arithmetic_number" json:"arithmetic_number"`
	PointGroup       string `yaml:"point_group" json:"point_group"`
	CrystalSystem    string `yaml:"crystal_system" json:"crystal_system"`
	LatticeSystem    string `yaml:"lattice_system" json:"lattice_system"`
	PearsonSymbol    string `yaml:"pearson_symbol" json:"pearson_symbol"`

	Symprec        float64 `yaml:"symprec" json:"symprec"`
	AngleTolerance string  `yaml:"angle_tolerance" json:"angle_tolerance"`
	Setting        string  `yaml:"setting" json:"setting"`

	Operations []string     `yaml:"operations" json:"operations"`
	Atoms      []atomReport `yaml:"atoms" json:"atoms"`

	Std     standardReport `yaml:"std" json:"std"`
	PrimStd standardReport `yaml:"primitive_std" json:"primitive_std"`
}

type atomReport struct {
	Number       int    `yaml:"number" json:"number"`
	Orbit        int    `yaml:"orbit" json:"orbit"`
	Wyckoff      string `yaml:"wyckoff" json:"wyckoff"`
	SiteSymmetry string `yaml:"site_symmetry" json:"site_symmetry"`
	PrimStd      int    `yaml:"primitive_std_atom" json:"primitive_std_atom"`
}

type standardReport struct {
	Cell          cellDocument   `yaml:"cell" json:"cell"`
	Linear        [3][3]float64  `yaml:"transformation" json:"transformation"`
	OriginShift   [3]float64     `yaml:"origin_shift" json:"origin_shift"`
	Rotation      *[3][3]float64 `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	MappingToPrim []int          `yaml:"mapping_to_primitive,omitempty" json:"mapping_to_primitive,omitempty"`
}

// newReport describes d, computed for the cell c.
func newReport(d *dataset.Dataset, c crystal.Cell) report {
	r := report{
		Number:           d.Number,
		HallNumber:       d.HallNumber,
		HMSymbol:         d.HMSymbol,
		HallSymbol:       d.HallSymbol,
		ArithmeticNumber: d.ArithmeticNumber,
		PointGroup:       d.PointGroup,
		CrystalSystem:    d.CrystalSystem.String(),
		LatticeSystem:    d.LatticeSystem.String(),
		PearsonSymbol:    d.PearsonSymbol,
		Symprec:          d.Symprec,
		AngleTolerance:   d.AngleTolerance.String(),
		Setting:          d.Setting.String(),
		Operations:       make([]string, len(d.Operations)),
		Atoms:            make([]atomReport, len(d.Orbits)),
	}
	for k, op := range d.Operations {
		r.Operations[k] = op.String()
	}
	for i := range d.Orbits {
		r.Atoms[i] = atomReport{
			Number:       c.Numbers[i],
			Orbit:        d.Orbits[i],
			Wyckoff:      d.Wyckoffs[i],
			SiteSymmetry: d.SiteSymmetrySymbols[i],
			PrimStd:      d.MappingStdPrim[i],
		}
	}
	rotation := [3][3]float64(d.StdRotation)
	r.Std = standardReport{
		Cell:          cellOf(d.StdCell),
		Linear:        [3][3]float64(d.StdLinear),
		OriginShift:   [3]float64(d.StdOriginShift),
		Rotation:      &rotation,
		MappingToPrim: d.StdMapping,
	}
	r.PrimStd = standardReport{
		Cell:        cellOf(d.PrimStdCell),
		Linear:      [3][3]float64(d.PrimStdLinear),
		OriginShift: [3]float64(d.PrimStdOriginShift),
	}
	return r
}

// write renders r to w in format.
func (r report) write(w io.Writer, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return r.writeText(w)
}

func (r report) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "space group\t%d\t%s\n", r.Number, r.HMSymbol)
	fmt.Fprintf(tw, "hall setting\t%d\t%s\n", r.HallNumber, r.HallSymbol)
	fmt.Fprintf(tw, "point group\t%s\t%s\n", r.PointGroup, r.CrystalSystem)
	fmt.Fprintf(tw, "arithmetic class\t%d\t%s lattice\n", r.ArithmeticNumber, r.LatticeSystem)
	fmt.Fprintf(tw, "pearson symbol\t%s\t\n", r.PearsonSymbol)
	fmt.Fprintf(tw, "operations\t%d\t\n", len(r.Operations))
	fmt.Fprintf(tw, "tolerances\t%g\t%s\n", r.Symprec, r.AngleTolerance)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "atom\tspecies\torbit\twyckoff\tsite symmetry")
	for i, a := range r.Atoms {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n", i, a.Number, a.Orbit, a.Wyckoff, a.SiteSymmetry)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "standardized lattice")
	for _, row := range r.Std.Cell.Lattice {
		fmt.Fprintf(tw, "\t%12.6f\t%12.6f\t%12.6f\n", row[0], row[1], row[2])
	}
	return tw.Flush()
}
