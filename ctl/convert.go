// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"fmt"
	"io"

	"github.com/featurebasedb/datatable"
	"github.com/pkg/errors"
)

// ConvertCommand rewrites a file in another format. The format of each side
// follows its extension: .parquet or .pq for parquet, anything else is
// delimited text.
type ConvertCommand struct {
	Input  string
	Output string

	Config *Config

	// Standard input/output
	*datatable.CmdIO
}

// NewConvertCommand returns a new instance of ConvertCommand.
func NewConvertCommand(stdin io.Reader, stdout, stderr io.Writer) *ConvertCommand {
	return &ConvertCommand{
		Config: NewConfig(),
		CmdIO:  datatable.NewCmdIO(stdin, stdout, stderr),
	}
}

// Run executes the conversion.
func (cmd *ConvertCommand) Run(ctx context.Context) error {
	if cmd.Input == "" || cmd.Output == "" {
		return fmt.Errorf("%w: input and output files required", UsageError)
	}
	t, err := loadTable(ctx, cmd.Config, cmd.Input)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	if err := saveTable(cmd.Config, t, cmd.Output); err != nil {
		return errors.Wrap(err, "writing output")
	}
	cmd.Logger().Printf("converted %s to %s: %s", cmd.Input, cmd.Output, t.Shape())
	return nil
}
