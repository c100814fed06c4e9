// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/datatable/ctl"
	"github.com/spf13/cobra"
)

func newParquetInfoCommand(stdin io.Reader, stdout, stderr io.Writer, conf *ctl.Config) *cobra.Command {
	infoer := ctl.NewParquetInfoCommand(stdin, stdout, stderr)
	infoCmd := &cobra.Command{
		Use:   "parquet-info <file|url>",
		Short: "Show the schema and a sample of a parquet file.",
		Long: `Show the schema, the row count and the first rows of a parquet file.

The argument may be a local path or an http(s) URL, which is downloaded to a
temporary file first.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infoer.SetVerbose(conf.Verbose)
			infoer.Path = args[0]
			return considerUsageError(cmd, infoer.Run(context.Background()))
		},
	}
	infoCmd.Flags().IntVarP(&infoer.Rows, "rows", "n", infoer.Rows, "Number of sample rows to print")
	return infoCmd
}
