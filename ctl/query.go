// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"fmt"
	"io"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/sqlstore"
	"github.com/pkg/errors"
)

// QueryCommand imports CSV files into a temporary SQLite database and runs
// one SQL statement against them. Each file becomes a table named after the
// file without its extension.
type QueryCommand struct {
	SQL    string
	Tables []string

	// Output file. Empty renders to stdout.
	Output string

	// SaveDatabase keeps a copy of the temporary database at this path.
	SaveDatabase string

	Config *Config

	// Standard input/output
	*datatable.CmdIO
}

// NewQueryCommand returns a new instance of QueryCommand.
func NewQueryCommand(stdin io.Reader, stdout, stderr io.Writer) *QueryCommand {
	return &QueryCommand{
		Config: NewConfig(),
		CmdIO:  datatable.NewCmdIO(stdin, stdout, stderr),
	}
}

// Run executes the query.
func (cmd *QueryCommand) Run(ctx context.Context) error {
	logger := cmd.Logger()

	if cmd.SQL == "" {
		return fmt.Errorf("%w: query required", UsageError)
	}
	opts, err := cmd.Config.LoadOptions()
	if err != nil {
		return err
	}

	store, err := sqlstore.OpenTemp(ctx, cmd.Config.TempDir, logger)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer store.Close()

	for _, path := range cmd.Tables {
		name, err := store.AddCSVTable(ctx, path, opts...)
		if err != nil {
			return errors.Wrapf(err, "importing '%s'", path)
		}
		logger.Debugf("imported %s as table %s", path, name)
	}

	out, err := store.Query(ctx, cmd.SQL)
	if err != nil {
		return err
	}

	if cmd.SaveDatabase != "" {
		if err := store.SaveDatabase(ctx, cmd.SaveDatabase); err != nil {
			return err
		}
	}

	if cmd.Output == "" {
		renderTable(cmd.Stdout, out)
		return nil
	}
	return saveTable(cmd.Config, out, cmd.Output)
}
