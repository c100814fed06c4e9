// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/featurebasedb/datatable/cmd"
	"github.com/featurebasedb/datatable/ctl"
	"github.com/featurebasedb/datatable/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRoot runs the root command with args and returns stdout.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rc := cmd.NewRootCommand(strings.NewReader(""), &stdout, &stderr)
	rc.SetArgs(args)
	err := rc.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execRoot(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"head", "tail", "join", "aggregate", "convert", "query", "generate-config"} {
		assert.Contains(t, out, sub)
	}
}

func TestRootCommand_GenerateConfig(t *testing.T) {
	out, err := execRoot(t, "generate-config")
	require.NoError(t, err)
	assert.Contains(t, out, `delimiter = ","`)
}

func TestRootCommand_ConfigPrecedence(t *testing.T) {
	conf := writeFile(t, "datatable.toml", "delimiter = \"|\"\nverbose = true\n")

	out, err := execRoot(t, "config", "--config", conf)
	require.NoError(t, err)
	assert.Contains(t, out, `delimiter = "|"`)
	assert.Contains(t, out, "verbose = true")

	t.Setenv("DATATABLE_DELIMITER", ";")
	out, err = execRoot(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, `delimiter = ";"`)

	// The command line beats the environment.
	out, err = execRoot(t, "config", "--delimiter", "\t")
	require.NoError(t, err)
	assert.Contains(t, out, `delimiter = "\t"`)
}

func TestRootCommand_BadConfigKey(t *testing.T) {
	conf := writeFile(t, "bad.toml", "colour = \"blue\"\n")
	_, err := execRoot(t, "config", "--config", conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid option in configuration file: colour")
}

func TestRootCommand_Aggregate(t *testing.T) {
	path := writeFile(t, "agg.csv", "Test;Test1;Test2\n1;2;3\n4;5;6\n7;8;9\n10;11;12\n")

	out, err := execRoot(t, "aggregate", path, "-d", ";", "--column", "Test1", "-f", "sum")
	require.NoError(t, err)
	assert.Equal(t, "26\n", out)

	out, err = execRoot(t, "aggregate", path, "-d", ";", "-f", "mean")
	require.NoError(t, err)
	assert.Equal(t, "6.5\n", out)
}

func TestRootCommand_JoinRequiresKeys(t *testing.T) {
	a := writeFile(t, "a.csv", "id\n1\n")
	b := writeFile(t, "b.csv", "id\n1\n")
	_, err := execRoot(t, "join", a, b)
	assert.True(t, errors.Is(err, ctl.ErrUsage), "got %v", err)

	out, err := execRoot(t, "join", a, b, "--on", "id", "-s", "hash")
	require.NoError(t, err)
	assert.Contains(t, out, "| 1  |")
}
