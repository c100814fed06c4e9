// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"io"

	"github.com/featurebasedb/datatable/ctl"
	"github.com/spf13/cobra"
)

func newConfigCommand(stdin io.Reader, stdout, stderr io.Writer, conf *ctl.Config) *cobra.Command {
	printer := ctl.NewConfigCommand(stdin, stdout, stderr)
	printer.Config = conf
	return &cobra.Command{
		Use:   "config",
		Short: "Print the current configuration.",
		Long: `config prints the configuration after flags, environment variables and the
config file have been applied.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printer.Run(context.Background())
		},
	}
}
