// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/dataset"
	"github.com/katalvlaran/symfind/internal/logging"
	"github.com/katalvlaran/symfind/linalg"
	"github.com/katalvlaran/symfind/reduce"
)

func newRootCommand() *cobra.Command {
	a := newApp()
	root := &cobra.Command{
		Use:          "symfind [flags] CELL_FILE",
		Short:        "Find the space group of a crystal structure",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDataset(cmd, args[0])
		},
	}
	addGlobalFlags(root.PersistentFlags())
	addDatasetFlags(root.Flags())

	root.AddCommand(newHallCommand(a), newReduceCommand(a))
	return root
}

func (a *app) runDataset(cmd *cobra.Command, path string) error {
	cell, err := openCell(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	opts, err := a.datasetOptions()
	if err != nil {
		return err
	}
	return dataset.With(cell, func(d *dataset.Dataset) error {
		return newReport(d, cell).write(cmd.OutOrStdout(), a.v.GetString(keyFormat))
	}, opts...)
}

func newHallCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hall N",
		Short: "Print a Hall setting and its Wyckoff positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: Hall number %q", errUsage, args[0])
			}
			entry, err := catalog.Entry(n)
			if err != nil {
				return err
			}
			wyckoffs, err := catalog.Wyckoffs(n)
			if err != nil {
				return err
			}
			a.log.V(logging.DEBUG).Info("Loaded Hall setting", "hall", n, "wyckoffs", len(wyckoffs))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", entry.HallNumber, entry.Number, entry.HMSymbol, entry.HallSymbol)
			fmt.Fprintln(tw)
			for i := len(wyckoffs) - 1; i >= 0; i-- {
				w := wyckoffs[i]
				fmt.Fprintf(tw, "%d%s\t%s\t%s\n", w.Multiplicity, w.Letter, w.SiteSymmetry, w.Coordinates())
			}
			return tw.Flush()
		},
	}
}

func newReduceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reduce [flags] CELL_FILE",
		Short: "Reduce the lattice of a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cell, err := openCell(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			reducer, err := reducerOf(a.v.GetString(keyMethod))
			if err != nil {
				return err
			}
			l, p, err := reducer(cell.Lattice)
			if err != nil {
				return err
			}
			a.log.V(logging.DEBUG).Info("Reduced lattice", "method", a.v.GetString(keyMethod), "transformation", p)
			return writeReduced(cmd, l, p)
		},
	}
	cmd.Flags().String(keyMethod, "niggli", "reduction: niggli, delaunay or minkowski")
	return cmd
}

func reducerOf(method string) (reduce.Reducer, error) {
	switch method {
	case "niggli":
		return reduce.Niggli, nil
	case "delaunay":
		return reduce.Delaunay, nil
	case "minkowski":
		return reduce.Minkowski, nil
	}
	return nil, fmt.Errorf("%w: unknown reduction %q", errUsage, method)
}

func writeReduced(cmd *cobra.Command, l crystal.Lattice, p linalg.IMat3) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "lattice\t\t\t\ttransformation")
	for i := 0; i < 3; i++ {
		b := l.Basis[i]
		fmt.Fprintf(tw, "%12.6f\t%12.6f\t%12.6f\t\t%d\t%d\t%d\n", b[0], b[1], b[2], p[i][0], p[i][1], p[i][2])
	}
	lengths, angles := l.Lengths(), l.Angles()
	fmt.Fprintf(tw, "\nlengths\t%.6f\t%.6f\t%.6f\n", lengths[0], lengths[1], lengths[2])
	fmt.Fprintf(tw, "angles\t%.4f\t%.4f\t%.4f\n", angles[0], angles[1], angles[2])
	return tw.Flush()
}
