// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqlstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/errors"
	"github.com/featurebasedb/datatable/logger"
	"github.com/featurebasedb/datatable/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOpenTemp(t *testing.T) *sqlstore.Store {
	t.Helper()
	s, err := sqlstore.OpenTemp(context.Background(), t.TempDir(), logger.NewLogfLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustWriteCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestStore_AddCSVTableAndQuery(t *testing.T) {
	ctx := context.Background()
	s := mustOpenTemp(t)
	path := mustWriteCSV(t, t.TempDir(), "people.csv", "id,name,age\n1,ann,30\n2,bob,41\n3,cy,30\n")

	name, err := s.AddCSVTable(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "people", name)

	got, err := s.Query(ctx, `SELECT "name", "id" FROM "people" WHERE "age" = ? ORDER BY "id"`, "30")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, got.Headers())
	assert.Equal(t, [][]string{{"ann", "1"}, {"cy", "3"}}, got.Rows())

	count, err := s.Query(ctx, `SELECT COUNT(*) AS n FROM "people"`)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"3"}}, count.Rows())
}

func TestStore_Select(t *testing.T) {
	ctx := context.Background()
	s := mustOpenTemp(t)
	tbl, err := datatable.NewTable(map[string][]string{
		"k": {"a", "b", "a"},
		"v": {"1", "2", "3"},
	}, []string{"k", "v"})
	require.NoError(t, err)
	require.NoError(t, s.AddTable(ctx, "kv", tbl))

	got, err := s.Select(ctx, "kv", []string{"v"}, map[string]string{"k": "a"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"3"}}, got.Rows())

	all, err := s.Select(ctx, "kv", nil, nil)
	require.NoError(t, err)
	assert.True(t, tbl.Equal(all), "got %s", all)
}

func TestStore_WriteTableToCSV(t *testing.T) {
	ctx := context.Background()
	s := mustOpenTemp(t)
	dir := t.TempDir()
	path := mustWriteCSV(t, dir, "in.csv", "a,b\n1,2\n3,4\n")
	_, err := s.AddCSVTable(ctx, path)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.csv")
	require.NoError(t, s.WriteTableToCSV(ctx, out, "in", []string{"b"}))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "b\n2\n4\n", string(data))
}

func TestStore_BatchAndTransactions(t *testing.T) {
	ctx := context.Background()
	s := mustOpenTemp(t)
	_, err := s.Exec(ctx, `CREATE TABLE t (x TEXT NOT NULL)`)
	require.NoError(t, err)

	require.NoError(t, s.BatchExecute(ctx, `INSERT INTO t (x) VALUES (?)`, [][]interface{}{{"a"}, {"b"}}))

	require.NoError(t, s.Begin(ctx))
	assert.True(t, errors.Is(s.Begin(ctx), sqlstore.ErrTransaction))
	require.NoError(t, s.BatchExecute(ctx, `INSERT INTO t (x) VALUES (?)`, [][]interface{}{{"c"}}))
	require.NoError(t, s.Rollback())

	got, err := s.Query(ctx, `SELECT x FROM t ORDER BY x`)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, got.Rows())

	require.NoError(t, s.Begin(ctx))
	_, err = s.Exec(ctx, `INSERT INTO t (x) VALUES (?)`, "d")
	require.NoError(t, err)
	require.NoError(t, s.Commit())

	got, err = s.Query(ctx, `SELECT x FROM t ORDER BY x`)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"d"}}, got.Rows())

	assert.True(t, errors.Is(s.Commit(), sqlstore.ErrTransaction))
}

func TestStore_BatchRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := mustOpenTemp(t)
	_, err := s.Exec(ctx, `CREATE TABLE t (x TEXT NOT NULL)`)
	require.NoError(t, err)

	err = s.BatchExecute(ctx, `INSERT INTO t (x) VALUES (?)`, [][]interface{}{{"a"}, {nil}})
	assert.True(t, errors.Is(err, sqlstore.ErrQuery))

	got, err := s.Query(ctx, `SELECT x FROM t`)
	require.NoError(t, err)
	assert.Equal(t, 0, got.NRows())
}

func TestStore_SaveDatabaseAndClose(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := sqlstore.OpenTemp(ctx, dir, nil)
	require.NoError(t, err)
	_, err = s.AddCSVTable(ctx, mustWriteCSV(t, dir, "x.csv", "a\n1\n"))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "copy.db")
	require.NoError(t, s.SaveDatabase(ctx, out))
	require.NoError(t, s.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, ".csv", filepath.Ext(e.Name()), "temporary database left behind: %s", e.Name())
	}

	saved, err := sqlstore.Open(ctx, sqlstore.DefaultDriver, out, nil)
	require.NoError(t, err)
	defer saved.Close()
	got, err := saved.Query(ctx, `SELECT a FROM x`)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}}, got.Rows())
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "people", sqlstore.TableName("/data/people.csv"))
	assert.Equal(t, "a.b", sqlstore.TableName("a.b.csv"))
}

func TestStore_Tables(t *testing.T) {
	ctx := context.Background()
	s := mustOpenTemp(t)
	dir := t.TempDir()

	tables, err := s.Tables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)

	for _, name := range []string{"zoo.csv", "animals.csv"} {
		_, err := s.AddCSVTable(ctx, mustWriteCSV(t, dir, name, "a\n1\n"))
		require.NoError(t, err)
	}
	tables, err = s.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"animals", "zoo"}, tables)
}
