// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Header", func(t *testing.T) {
		tbl, err := datatable.Load(writeFile(t, "h.csv", "Test,Test1,Test2\n1,2,3\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Test", "Test1", "Test2"}, tbl.Headers())
		assert.Equal(t, [][]string{{"1", "2", "3"}}, tbl.Rows())
	})

	t.Run("NoHeader", func(t *testing.T) {
		tbl, err := datatable.Load(writeFile(t, "n.csv", "1,2,3\n"), datatable.WithHeaders(false))
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1", "2"}, tbl.Headers())
		assert.Equal(t, [][]string{{"1", "2", "3"}}, tbl.Rows())
	})

	t.Run("Delimiter", func(t *testing.T) {
		tbl, err := datatable.Load(writeFile(t, "d.csv", "Test;Test1;Test2\n1;2;3\n"), datatable.WithDelimiter(';'))
		require.NoError(t, err)
		assert.Equal(t, []string{"Test", "Test1", "Test2"}, tbl.Headers())
		assert.Equal(t, [][]string{{"1", "2", "3"}}, tbl.Rows())
	})

	t.Run("FileNotFound", func(t *testing.T) {
		_, err := datatable.Load(filepath.Join(t.TempDir(), "missing.csv"))
		assert.True(t, errors.Is(err, datatable.ErrFileNotFound))
	})

	t.Run("EmptyFile", func(t *testing.T) {
		path := writeFile(t, "e.csv", "\n\n")
		_, err := datatable.Load(path)
		assert.True(t, errors.Is(err, datatable.ErrEmptyFile))
		assert.Contains(t, err.Error(), path)
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		tbl, err := datatable.Load(writeFile(t, "o.csv", "a,b\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, tbl.Headers())
		assert.Equal(t, 0, tbl.NRows())
	})
}

func TestRead(t *testing.T) {
	t.Run("CRLFAndBlankLines", func(t *testing.T) {
		tbl := mustRead(t, "a,b\r\n1,2\r\n\r\n3,4")
		assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, tbl.Rows())
	})

	t.Run("BlankLinesSingleColumn", func(t *testing.T) {
		tbl := mustRead(t, "\n\na\nx\n\ny\n")
		assert.Equal(t, []string{"a"}, tbl.Headers())
		assert.Equal(t, [][]string{{"x"}, {""}, {"y"}}, tbl.Rows())
	})

	t.Run("StripsQuotes", func(t *testing.T) {
		tbl := mustRead(t, "\"a\",b\n\"1\",2\n")
		assert.Equal(t, []string{"a", "b"}, tbl.Headers())
		assert.Equal(t, [][]string{{"1", "2"}}, tbl.Rows())
	})

	t.Run("QuotedFields", func(t *testing.T) {
		tbl := mustRead(t, "name,note\nx,\"a,b\"\n", datatable.WithQuotedFields(true))
		assert.Equal(t, [][]string{{"x", "a,b"}}, tbl.Rows())
	})

	t.Run("DuplicateHeader", func(t *testing.T) {
		_, err := datatable.Read(strings.NewReader("a,a\n1,2\n"))
		assert.True(t, errors.Is(err, datatable.ErrDuplicateColumn))
	})

	t.Run("RaggedReject", func(t *testing.T) {
		_, err := datatable.Read(strings.NewReader("a,b\n1,2\n3\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, datatable.ErrRaggedRow))
		assert.Equal(t, "line 3 has 1 fields, header has 2", err.Error())
	})

	t.Run("RaggedPad", func(t *testing.T) {
		tbl := mustRead(t, "a,b,c\n1\n2,3,4\n", datatable.WithRaggedRows(datatable.RaggedPad))
		assert.Equal(t, [][]string{{"1", "", ""}, {"2", "3", "4"}}, tbl.Rows())

		// Lines longer than the header are never padded.
		_, err := datatable.Read(strings.NewReader("a\n1,2\n"), datatable.WithRaggedRows(datatable.RaggedPad))
		assert.True(t, errors.Is(err, datatable.ErrRaggedRow))
	})

	t.Run("RaggedQuoted", func(t *testing.T) {
		_, err := datatable.Read(strings.NewReader("a,b\n1,2\n3\n"), datatable.WithQuotedFields(true))
		assert.True(t, errors.Is(err, datatable.ErrRaggedRow))
	})
}

func TestSave(t *testing.T) {
	tbl := mustRead(t, fourRows)

	t.Run("RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		require.NoError(t, tbl.Save(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, fourRows, string(data))

		loaded, err := datatable.Load(path)
		require.NoError(t, err)
		assert.True(t, tbl.Equal(loaded))
	})

	t.Run("Delimiter", func(t *testing.T) {
		var sb strings.Builder
		require.NoError(t, tbl.TopN(1).Write(&sb, datatable.WithSaveDelimiter('|')))
		assert.Equal(t, "Test|Test1|Test2\n1|2|3\n", sb.String())
	})

	t.Run("SingleColumnEmptyCell", func(t *testing.T) {
		one := mustRead(t, "a\n1\n\"\"\n2\n")
		require.Equal(t, [][]string{{"1"}, {""}, {"2"}}, one.Rows())

		path := filepath.Join(t.TempDir(), "one.csv")
		require.NoError(t, one.Save(path))
		back, err := datatable.Load(path)
		require.NoError(t, err)
		assert.True(t, one.Equal(back), "round trip changed the table:\n%s", back)

		// A trailing empty cell is written as the last line.
		last := mustRead(t, "a\n1\n\"\"\n")
		require.NoError(t, last.Save(path))
		back, err = datatable.Load(path)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"1"}, {""}}, back.Rows())
	})

	t.Run("BadPath", func(t *testing.T) {
		err := tbl.Save(filepath.Join(t.TempDir(), "no", "such", "dir.csv"))
		assert.True(t, errors.Is(err, datatable.ErrIO))
	})
}
