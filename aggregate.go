// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// ints parses every cell of the named column as a base-10 integer.
func (t *Table) ints(name string) ([]int64, error) {
	cells, ok := t.columns[name]
	if !ok {
		return nil, NewErrUnknownColumn(name, t.order)
	}
	if len(cells) == 0 {
		return nil, NewErrEmptyAggregate("column '" + name + "'")
	}
	out := make([]int64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return nil, NewErrParse(name, i, cell)
		}
		out[i] = v
	}
	return out, nil
}

// Min returns the smallest value in the column.
func (t *Table) Min(column string) (int64, error) {
	vals, err := t.ints(column)
	if err != nil {
		return 0, err
	}
	min := vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
	}
	return min, nil
}

// Max returns the largest value in the column.
func (t *Table) Max(column string) (int64, error) {
	vals, err := t.ints(column)
	if err != nil {
		return 0, err
	}
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}

func (t *Table) Sum(column string) (int64, error) {
	vals, err := t.ints(column)
	if err != nil {
		return 0, err
	}
	var sum int64
	for _, v := range vals {
		var ok bool
		if sum, ok = add(sum, v); !ok {
			return 0, NewErrOverflow("column '" + column + "'")
		}
	}
	return sum, nil
}

// add returns a+b and false when the sum does not fit in an int64.
func add(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func (t *Table) Mean(column string) (float64, error) {
	sum, err := t.Sum(column)
	if err != nil {
		return 0, err
	}
	return float64(sum) / float64(t.shape.Rows()), nil
}

// all applies fn to every column in order. It fails on a table with no
// cells.
func (t *Table) all(fn func(column string) error) error {
	if t.shape.Rows() == 0 || t.shape.Cols() == 0 {
		return NewErrEmptyAggregate("table")
	}
	for _, name := range t.order {
		if err := fn(name); err != nil {
			return err
		}
	}
	return nil
}

// MinAll returns the smallest value in the table.
func (t *Table) MinAll() (int64, error) {
	var min int64
	first := true
	err := t.all(func(name string) error {
		v, err := t.Min(name)
		if err != nil {
			return err
		}
		if first || v < min {
			min, first = v, false
		}
		return nil
	})
	return min, err
}

// MaxAll returns the largest value in the table.
func (t *Table) MaxAll() (int64, error) {
	var max int64
	first := true
	err := t.all(func(name string) error {
		v, err := t.Max(name)
		if err != nil {
			return err
		}
		if first || v > max {
			max, first = v, false
		}
		return nil
	})
	return max, err
}

func (t *Table) SumAll() (int64, error) {
	var sum int64
	err := t.all(func(name string) error {
		v, err := t.Sum(name)
		if err != nil {
			return err
		}
		var ok bool
		if sum, ok = add(sum, v); !ok {
			return NewErrOverflow("table")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sum, nil
}

// MeanAll is the sum of every cell over the number of cells, not the mean
// of the column means.
func (t *Table) MeanAll() (float64, error) {
	sum, err := t.SumAll()
	if err != nil {
		return 0, err
	}
	return float64(sum) / float64(t.shape.Rows()*t.shape.Cols()), nil
}

// decimals parses every cell of the named column as an arbitrary precision
// decimal.
func (t *Table) decimals(name string) ([]decimal.Decimal, error) {
	cells, ok := t.columns[name]
	if !ok {
		return nil, NewErrUnknownColumn(name, t.order)
	}
	if len(cells) == 0 {
		return nil, NewErrEmptyAggregate("column '" + name + "'")
	}
	out := make([]decimal.Decimal, len(cells))
	for i, cell := range cells {
		d, err := decimal.NewFromString(cell)
		if err != nil {
			return nil, NewErrParse(name, i, cell)
		}
		out[i] = d
	}
	return out, nil
}

func (t *Table) SumDecimal(column string) (decimal.Decimal, error) {
	vals, err := t.decimals(column)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(vals[0], vals[1:]...), nil
}

func (t *Table) MeanDecimal(column string) (decimal.Decimal, error) {
	vals, err := t.decimals(column)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Avg(vals[0], vals[1:]...), nil
}

func (t *Table) MinDecimal(column string) (decimal.Decimal, error) {
	vals, err := t.decimals(column)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Min(vals[0], vals[1:]...), nil
}

func (t *Table) MaxDecimal(column string) (decimal.Decimal, error) {
	vals, err := t.decimals(column)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Max(vals[0], vals[1:]...), nil
}
