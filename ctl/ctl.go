// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package ctl holds the implementation of each datatable command. The cmd
// package wires them to cobra.
package ctl

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/errors"
	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
)

const ErrUsage errors.Code = "ErrUsage"

// UsageError is wrapped by errors caused by bad arguments, so callers can
// print usage for them.
var UsageError = errors.New(ErrUsage, "usage error")

// Config holds the options shared by every command. Each field maps to a
// persistent flag and to a key of the same name in the TOML config file.
type Config struct {
	Delimiter string `toml:"delimiter"`
	NoHeader  bool   `toml:"no-header"`
	Quoted    bool   `toml:"quoted"`
	PadRagged bool   `toml:"pad-ragged"`
	TempDir   string `toml:"temp-dir"`
	Verbose   bool   `toml:"verbose"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Delimiter: ",",
	}
}

func (c *Config) delimiter() (rune, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single character, got '%s'", UsageError, c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r, nil
}

// LoadOptions translates the config into options for datatable.Load.
func (c *Config) LoadOptions() ([]datatable.LoadOption, error) {
	d, err := c.delimiter()
	if err != nil {
		return nil, err
	}
	opts := []datatable.LoadOption{
		datatable.WithDelimiter(d),
		datatable.WithHeaders(!c.NoHeader),
		datatable.WithQuotedFields(c.Quoted),
	}
	if c.PadRagged {
		opts = append(opts, datatable.WithRaggedRows(datatable.RaggedPad))
	}
	return opts, nil
}

// SaveOptions translates the config into options for Table.Save.
func (c *Config) SaveOptions() ([]datatable.SaveOption, error) {
	d, err := c.delimiter()
	if err != nil {
		return nil, err
	}
	return []datatable.SaveOption{datatable.WithSaveDelimiter(d)}, nil
}

// isParquet reports whether path names a parquet file.
func isParquet(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".parquet" || ext == ".pq"
}

// loadTable reads a CSV or parquet file, chosen by extension.
func loadTable(ctx context.Context, c *Config, path string) (*datatable.Table, error) {
	if isParquet(path) {
		return datatable.LoadParquet(ctx, path)
	}
	opts, err := c.LoadOptions()
	if err != nil {
		return nil, err
	}
	return datatable.Load(path, opts...)
}

// saveTable writes a CSV or parquet file, chosen by extension.
func saveTable(c *Config, t *datatable.Table, path string) error {
	if isParquet(path) {
		return t.SaveParquet(path)
	}
	opts, err := c.SaveOptions()
	if err != nil {
		return err
	}
	return t.Save(path, opts...)
}

// renderTable draws t as a text table.
func renderTable(w io.Writer, t *datatable.Table) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	// Don't uppercase the header values.
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, 0, t.NCols())
	for _, h := range t.Headers() {
		header = append(header, h)
	}
	tw.AppendHeader(header)
	for _, row := range t.Rows() {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	tw.Render()
}
