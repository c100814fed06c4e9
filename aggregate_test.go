// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable_test

import (
	"testing"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_ColumnAggregates(t *testing.T) {
	tbl := mustRead(t, fourRows)

	min, err := tbl.Min("Test1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), min)

	max, err := tbl.Max("Test1")
	require.NoError(t, err)
	assert.Equal(t, int64(11), max)

	sum, err := tbl.Sum("Test1")
	require.NoError(t, err)
	assert.Equal(t, int64(26), sum)

	mean, err := tbl.Mean("Test1")
	require.NoError(t, err)
	assert.Equal(t, 6.5, mean)

	neg := mustRead(t, "n\n-3\n7\n-10\n")
	min, err = neg.Min("n")
	require.NoError(t, err)
	assert.Equal(t, int64(-10), min)
}

func TestTable_TableAggregates(t *testing.T) {
	tbl := mustRead(t, fourRows)

	min, err := tbl.MinAll()
	require.NoError(t, err)
	assert.Equal(t, int64(1), min)

	max, err := tbl.MaxAll()
	require.NoError(t, err)
	assert.Equal(t, int64(12), max)

	sum, err := tbl.SumAll()
	require.NoError(t, err)
	assert.Equal(t, int64(78), sum)

	mean, err := tbl.MeanAll()
	require.NoError(t, err)
	assert.Equal(t, 6.5, mean)
}

func TestTable_AggregateErrors(t *testing.T) {
	t.Run("UnknownColumn", func(t *testing.T) {
		_, err := mustRead(t, fourRows).Sum("Nope")
		assert.True(t, errors.Is(err, datatable.ErrUnknownColumn))
	})

	t.Run("Parse", func(t *testing.T) {
		tbl := mustRead(t, "a,b\n1,2\n3,x\n4,1.5\n")
		_, err := tbl.Sum("b")
		require.Error(t, err)
		assert.True(t, errors.Is(err, datatable.ErrParse))
		assert.Contains(t, err.Error(), "row 1")

		_, err = tbl.MaxAll()
		assert.True(t, errors.Is(err, datatable.ErrParse))
	})

	t.Run("Empty", func(t *testing.T) {
		tbl := mustRead(t, "a,b\n")
		_, err := tbl.Min("a")
		assert.True(t, errors.Is(err, datatable.ErrEmptyAggregate))
		_, err = tbl.Mean("a")
		assert.True(t, errors.Is(err, datatable.ErrEmptyAggregate))
		_, err = tbl.SumAll()
		assert.True(t, errors.Is(err, datatable.ErrEmptyAggregate))

		empty, err := datatable.NewEmptyTable()
		require.NoError(t, err)
		_, err = empty.MeanAll()
		assert.True(t, errors.Is(err, datatable.ErrEmptyAggregate))
	})

	t.Run("Overflow", func(t *testing.T) {
		tbl := mustRead(t, "n\n9223372036854775807\n1\n")
		_, err := tbl.Sum("n")
		require.Error(t, err)
		assert.True(t, errors.Is(err, datatable.ErrOverflow))
		_, err = tbl.Mean("n")
		assert.True(t, errors.Is(err, datatable.ErrOverflow))

		d, err := tbl.SumDecimal("n")
		require.NoError(t, err)
		assert.Equal(t, "9223372036854775808", d.String())

		neg := mustRead(t, "n\n-9223372036854775808\n-1\n")
		_, err = neg.Sum("n")
		assert.True(t, errors.Is(err, datatable.ErrOverflow))

		// Each column fits, the table total does not.
		wide := mustRead(t, "a,b\n9223372036854775807,1\n")
		v, err := wide.Sum("a")
		require.NoError(t, err)
		assert.Equal(t, int64(9223372036854775807), v)
		_, err = wide.SumAll()
		assert.True(t, errors.Is(err, datatable.ErrOverflow))
		_, err = wide.MeanAll()
		assert.True(t, errors.Is(err, datatable.ErrOverflow))

		// Crossing the limit and coming back still fails.
		_, err = mustRead(t, "n\n9223372036854775807\n1\n-1\n").Sum("n")
		assert.True(t, errors.Is(err, datatable.ErrOverflow))
	})
}

func TestTable_DecimalAggregates(t *testing.T) {
	tbl := mustRead(t, "price\n1.10\n2.25\n-0.35\n3\n")

	sum, err := tbl.SumDecimal("price")
	require.NoError(t, err)
	assert.Equal(t, "6", sum.String())

	mean, err := tbl.MeanDecimal("price")
	require.NoError(t, err)
	assert.Equal(t, "1.5", mean.String())

	min, err := tbl.MinDecimal("price")
	require.NoError(t, err)
	assert.Equal(t, "-0.35", min.String())

	max, err := tbl.MaxDecimal("price")
	require.NoError(t, err)
	assert.Equal(t, "3", max.String())

	_, err = mustRead(t, "price\nabc\n").SumDecimal("price")
	assert.True(t, errors.Is(err, datatable.ErrParse))
	_, err = tbl.MaxDecimal("nope")
	assert.True(t, errors.Is(err, datatable.ErrUnknownColumn))
}
