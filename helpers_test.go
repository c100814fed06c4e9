// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable_test

import (
	"strings"
	"testing"

	"github.com/featurebasedb/datatable"
	"github.com/stretchr/testify/require"
)

const (
	twoRows  = "Test,Test1,Test2\n1,2,3\n4,5,6\n"
	fourRows = "Test,Test1,Test2\n1,2,3\n4,5,6\n7,8,9\n10,11,12\n"
)

// mustRead parses data as delimited text and fails the test on error.
func mustRead(t *testing.T, data string, opts ...datatable.LoadOption) *datatable.Table {
	t.Helper()
	tbl, err := datatable.Read(strings.NewReader(data), opts...)
	require.NoError(t, err)
	return tbl
}

func mustTable(t *testing.T, columns map[string][]string, order ...string) *datatable.Table {
	t.Helper()
	tbl, err := datatable.NewTable(columns, order)
	require.NoError(t, err)
	return tbl
}
