// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/datatable/ctl"
	"github.com/spf13/cobra"
)

func newAggregateCommand(stdin io.Reader, stdout, stderr io.Writer, conf *ctl.Config) *cobra.Command {
	aggregator := ctl.NewAggregateCommand(stdin, stdout, stderr)
	aggregator.Config = conf
	aggCmd := &cobra.Command{
		Use:   "aggregate <file>",
		Short: "Compute min, max, sum or mean over a column or a whole file.",
		Long: `
Computes an aggregate over the cells of one column, or of every column when
--column is not given. Cells are parsed as base-10 integers; with --decimal
they are parsed as arbitrary precision decimals instead.

The mean of a whole file is the sum of all cells over the number of cells.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aggregator.SetVerbose(conf.Verbose)
			aggregator.Path = args[0]
			return considerUsageError(cmd, aggregator.Run(context.Background()))
		},
	}
	flags := aggCmd.Flags()
	flags.StringVar(&aggregator.Column, "column", "", "Column to aggregate - default every column")
	flags.StringVarP(&aggregator.Func, "func", "f", aggregator.Func, "Aggregate: min, max, sum or mean")
	flags.BoolVar(&aggregator.Decimal, "decimal", false, "Parse cells as decimals")
	return aggCmd
}
