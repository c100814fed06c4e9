// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/datatable/ctl"
	"github.com/spf13/cobra"
)

func newJoinCommand(stdin io.Reader, stdout, stderr io.Writer, conf *ctl.Config) *cobra.Command {
	joiner := ctl.NewJoinCommand(stdin, stdout, stderr)
	joiner.Config = conf
	joinCmd := &cobra.Command{
		Use:   "join <left> <right>",
		Short: "Join two files on one or more key columns.",
		Long: `
Joins two files on equality of the key columns given with --on. Each key is
either a column present in both files or "left=right" naming the column on
each side. The result has every column of the left file followed by the
columns of the right file except its keys.

Right-hand columns whose names clash with a left-hand column get the suffix
"_right". If OUTFILE is not specified the result is printed as a table.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			joiner.SetVerbose(conf.Verbose)
			joiner.Left, joiner.Right = args[0], args[1]
			return considerUsageError(cmd, joiner.Run(context.Background()))
		},
	}
	flags := joinCmd.Flags()
	flags.StringSliceVar(&joiner.On, "on", nil, "Join keys, comma separated: name or left=right")
	flags.StringVarP(&joiner.Kind, "kind", "k", joiner.Kind, "Join kind: inner, left, right or outer")
	flags.StringVarP(&joiner.Strategy, "strategy", "s", joiner.Strategy, "Matching strategy: nested or hash")
	flags.StringVar(&joiner.Null, "null", "", "Cell written where an outer join has no match")
	flags.StringVarP(&joiner.Output, "output-file", "o", "", "File to write the result to - default stdout")
	return joinCmd
}
