// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/datatable/ctl"
	"github.com/spf13/cobra"
)

func newHeadCommand(stdin io.Reader, stdout, stderr io.Writer, conf *ctl.Config, tail bool) *cobra.Command {
	header := ctl.NewHeadCommand(stdin, stdout, stderr)
	header.Config = conf
	header.Tail = tail

	use, short := "head <file>", "Print the first rows of a file."
	if tail {
		use, short = "tail <file>", "Print the last rows of a file."
	}
	headCmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `

The file is read as delimited text unless its extension is .parquet or .pq.
Rows are rendered as a text table.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header.SetVerbose(conf.Verbose)
			header.Path = args[0]
			return considerUsageError(cmd, header.Run(context.Background()))
		},
	}
	flags := headCmd.Flags()
	flags.IntVarP(&header.N, "rows", "n", 0, "Number of rows to print (default 10)")
	if !tail {
		flags.BoolVar(&header.Tail, "tail", false, "Print the last rows instead")
	}
	return headCmd
}
