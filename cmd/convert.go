// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/datatable/ctl"
	"github.com/spf13/cobra"
)

func newConvertCommand(stdin io.Reader, stdout, stderr io.Writer, conf *ctl.Config) *cobra.Command {
	converter := ctl.NewConvertCommand(stdin, stdout, stderr)
	converter.Config = conf
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert between delimited text and parquet.",
		Long: `
Reads IN and writes OUT. Files ending in .parquet or .pq are parquet, any
other file is delimited text using the global delimiter settings.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			converter.SetVerbose(conf.Verbose)
			converter.Input, converter.Output = args[0], args[1]
			return considerUsageError(cmd, converter.Run(context.Background()))
		},
	}
}
