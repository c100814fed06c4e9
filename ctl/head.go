// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"fmt"
	"io"

	"github.com/featurebasedb/datatable"
)

// HeadCommand prints the first or last rows of a file.
type HeadCommand struct {
	// Path of the CSV or parquet file.
	Path string

	// Rows to print. Zero means ten.
	N int

	// Print the last rows instead of the first.
	Tail bool

	Config *Config

	// Standard input/output
	*datatable.CmdIO
}

// NewHeadCommand returns a new instance of HeadCommand.
func NewHeadCommand(stdin io.Reader, stdout, stderr io.Writer) *HeadCommand {
	return &HeadCommand{
		Config: NewConfig(),
		CmdIO:  datatable.NewCmdIO(stdin, stdout, stderr),
	}
}

// Run loads the file and renders the selected rows.
func (cmd *HeadCommand) Run(ctx context.Context) error {
	if cmd.Path == "" {
		return fmt.Errorf("%w: file required", UsageError)
	}
	t, err := loadTable(ctx, cmd.Config, cmd.Path)
	if err != nil {
		return err
	}
	cmd.Logger().Debugf("loaded %s with shape %s", cmd.Path, t.Shape())

	var out *datatable.Table
	switch {
	case cmd.N <= 0 && cmd.Tail:
		out = t.Tail()
	case cmd.N <= 0:
		out = t.Head()
	case cmd.Tail:
		out = t.BottomN(cmd.N)
	default:
		out = t.TopN(cmd.N)
	}
	renderTable(cmd.Stdout, out)
	return nil
}
