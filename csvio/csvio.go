// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package csvio reads and writes delimited files in bulk.
package csvio

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/errors"
	"github.com/featurebasedb/datatable/logger"
	"golang.org/x/sync/errgroup"
)

// Ext is the extension ReadDir looks for, compared case-insensitively.
const Ext = ".csv"

// Reader loads delimited files into tables.
type Reader struct {
	Logger logger.Logger

	// Concurrency bounds how many files ReadDir parses at once. Zero means
	// GOMAXPROCS.
	Concurrency int

	Options []datatable.LoadOption
}

// NewReader returns a Reader applying opts to every file it loads.
func NewReader(log logger.Logger, opts ...datatable.LoadOption) *Reader {
	return &Reader{Logger: log, Options: opts}
}

func (r *Reader) logger() logger.Logger {
	if r.Logger == nil {
		return logger.NopLogger
	}
	return r.Logger
}

// ReadCSV loads a single file.
func (r *Reader) ReadCSV(path string) (*datatable.Table, error) {
	return datatable.Load(path, r.Options...)
}

// File is one table read by ReadDirFiles together with its source path.
type File struct {
	Path  string
	Table *datatable.Table
}

// ReadDir loads every file with the .csv extension under dir, recursively.
// Files that fail to load are logged and skipped. Tables come back in
// lexical path order.
func (r *Reader) ReadDir(ctx context.Context, dir string) ([]*datatable.Table, error) {
	files, err := r.ReadDirFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	tables := make([]*datatable.Table, len(files))
	for i, f := range files {
		tables[i] = f.Table
	}
	return tables, nil
}

// ReadDirFiles is ReadDir that also reports where each table came from.
func (r *Reader) ReadDirFiles(ctx context.Context, dir string) ([]File, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), Ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking '%s'", dir)
	}

	limit := r.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one slot.
	loaded := make([]*datatable.Table, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := r.ReadCSV(path)
			if err != nil {
				r.logger().Warnf("skipping %s: %v", path, err)
				return nil
			}
			r.logger().Debugf("loaded %s %s", path, t.Shape())
			loaded[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]File, 0, len(paths))
	for i, t := range loaded {
		if t != nil {
			files = append(files, File{Path: paths[i], Table: t})
		}
	}
	return files, nil
}

// Writer saves tables as delimited files.
type Writer struct {
	Options []datatable.SaveOption
}

func NewWriter(opts ...datatable.SaveOption) *Writer {
	return &Writer{Options: opts}
}

// WriteCSV saves t to path.
func (w *Writer) WriteCSV(path string, t *datatable.Table) error {
	return t.Save(path, w.Options...)
}

// ReadCSV loads one file with the given options.
func ReadCSV(path string, opts ...datatable.LoadOption) (*datatable.Table, error) {
	return NewReader(nil, opts...).ReadCSV(path)
}

// ReadDir loads every CSV file under dir. See Reader.ReadDir.
func ReadDir(ctx context.Context, dir string, opts ...datatable.LoadOption) ([]*datatable.Table, error) {
	return NewReader(nil, opts...).ReadDir(ctx, dir)
}

// WriteCSV saves t to path with the given options.
func WriteCSV(path string, t *datatable.Table, opts ...datatable.SaveOption) error {
	return NewWriter(opts...).WriteCSV(path, t)
}
