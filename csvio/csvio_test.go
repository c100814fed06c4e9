// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package csvio_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/csvio"
	"github.com/featurebasedb/datatable/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestReader_ReadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.csv"), "x\n2\n")
	writeFile(t, filepath.Join(dir, "a.csv"), "x\n1\n")
	writeFile(t, filepath.Join(dir, "nested", "c.CSV"), "x\n3\n")
	writeFile(t, filepath.Join(dir, "bad.csv"), "x,y\n1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored\n")

	log := logger.NewBufferLogger()
	r := csvio.NewReader(log)
	r.Concurrency = 2
	files, err := r.ReadDirFiles(context.Background(), dir)
	require.NoError(t, err)

	var names, cells []string
	for _, f := range files {
		rel, err := filepath.Rel(dir, f.Path)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
		col, err := f.Table.Column("x")
		require.NoError(t, err)
		cells = append(cells, col...)
	}
	assert.Equal(t, []string{"a.csv", "b.csv", "nested/c.CSV"}, names)
	assert.Equal(t, []string{"1", "2", "3"}, cells)
	assert.True(t, strings.Contains(log.String(), "skipping"), log.String())
	assert.True(t, strings.Contains(log.String(), "bad.csv"), log.String())
}

func TestReadDir_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "x\n1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := csvio.ReadDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadDir_MissingDir(t *testing.T) {
	_, err := csvio.ReadDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWriteAndReadCSV(t *testing.T) {
	tbl, err := datatable.NewTable(map[string][]string{
		"a": {"1", "2"},
		"b": {"x", "y"},
	}, []string{"b", "a"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, csvio.WriteCSV(path, tbl, datatable.WithSaveDelimiter(';')))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b;a\nx;1\ny;2\n", string(data))

	got, err := csvio.ReadCSV(path, datatable.WithDelimiter(';'))
	require.NoError(t, err)
	assert.True(t, tbl.Equal(got), "got %s", got)
}
