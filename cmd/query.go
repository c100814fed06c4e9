// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/datatable/ctl"
	"github.com/spf13/cobra"
)

func newQueryCommand(stdin io.Reader, stdout, stderr io.Writer, conf *ctl.Config) *cobra.Command {
	querier := ctl.NewQueryCommand(stdin, stdout, stderr)
	querier.Config = conf
	queryCmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run SQL over delimited files.",
		Long: `
Imports each file given with --table into a temporary SQLite database, as a
table named after the file without its extension, then runs the query.
All columns are text.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			querier.SetVerbose(conf.Verbose)
			querier.SQL = args[0]
			return considerUsageError(cmd, querier.Run(context.Background()))
		},
	}
	flags := queryCmd.Flags()
	flags.StringSliceVarP(&querier.Tables, "table", "t", nil, "Files to import, comma separated")
	flags.StringVarP(&querier.Output, "output-file", "o", "", "File to write the result to - default stdout")
	flags.StringVar(&querier.SaveDatabase, "save-db", "", "Keep a copy of the database at this path")
	return queryCmd
}
