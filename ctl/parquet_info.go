// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/apache/arrow/go/v10/arrow/memory"
	"github.com/apache/arrow/go/v10/parquet/file"
	"github.com/apache/arrow/go/v10/parquet/pqarrow"
	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/errors"
)

// ParquetInfoCommand represents a command for displaying info about a parquet file
type ParquetInfoCommand struct {
	// Filepath or URL to the parquet file.
	Path string

	// Sample rows to print.
	Rows int

	// Standard input/output
	*datatable.CmdIO
}

// NewParquetInfoCommand returns a new instance of ParquetInfoCommand.
func NewParquetInfoCommand(stdin io.Reader, stdout, stderr io.Writer) *ParquetInfoCommand {
	return &ParquetInfoCommand{
		Rows:  10,
		CmdIO: datatable.NewCmdIO(stdin, stdout, stderr),
	}
}

// Run displays the schema, the row count and a sample of rows.
func (cmd *ParquetInfoCommand) Run(ctx context.Context) error {
	if cmd.Path == "" {
		return fmt.Errorf("%w: file required", UsageError)
	}
	f, cleanup, err := cmd.open(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	pf, err := file.NewParquetReader(f)
	if err != nil {
		return errors.Wrapf(err, "reading %s", cmd.Path)
	}
	mem := memory.NewGoAllocator()
	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return errors.Wrapf(err, "reading %s", cmd.Path)
	}
	tbl, err := reader.ReadTable(ctx)
	if err != nil {
		return errors.Wrapf(err, "reading %s", cmd.Path)
	}
	defer tbl.Release()

	fmt.Fprintf(cmd.Stdout, "Name: %v\n\n", cmd.Path)
	for i, field := range tbl.Schema().Fields() {
		fmt.Fprintf(cmd.Stdout, "%v. Name: %v\n", i, field.Name)
		fmt.Fprintf(cmd.Stdout, "%v. Type: %v\n", i, field.Type)
		fmt.Fprintf(cmd.Stdout, "%v. Nullable: %v\n\n", i, field.Nullable)
	}
	fmt.Fprintf(cmd.Stdout, "Number of rows: %v\n", tbl.NumRows())

	t, err := datatable.FromArrow(tbl)
	if err != nil {
		// Columns the table can't hold still have a printable schema.
		cmd.Logger().Warnf("no sample for %s: %v", cmd.Path, err)
		return nil
	}
	fmt.Fprintln(cmd.Stdout, "Sample:")
	renderTable(cmd.Stdout, t.TopN(cmd.Rows))
	return nil
}

// open returns the local file at Path, or a temp copy of the file when Path
// is a URL.
func (cmd *ParquetInfoCommand) open(ctx context.Context) (*os.File, func(), error) {
	if u, err := url.ParseRequestURI(cmd.Path); err != nil || u.Scheme == "" || u.Host == "" {
		f, err := os.Open(cmd.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, datatable.NewErrFileNotFound(cmd.Path)
			}
			return nil, nil, datatable.NewErrIO(cmd.Path, err)
		}
		return f, func() { f.Close() }, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cmd.Path, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building request")
	}
	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "fetching %s", cmd.Path)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, nil, errors.Errorf("unexpected response %d", response.StatusCode)
	}

	// download to temp file first
	f, err := os.CreateTemp("", "datatable-*.parquet")
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating tempfile")
	}
	cleanup := func() {
		f.Close()
		os.Remove(f.Name())
	}
	if _, err := io.Copy(f, response.Body); err != nil {
		cleanup()
		return nil, nil, errors.Wrapf(err, "downloading %s", cmd.Path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "rewinding tempfile")
	}
	return f, cleanup, nil
}
