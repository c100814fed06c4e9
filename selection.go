// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import (
	"golang.org/x/exp/slices"
)

// defaultPeek is the number of rows Head and Tail return.
const defaultPeek = 10

// Column returns a copy of the cells in the named column.
func (t *Table) Column(name string) ([]string, error) {
	cells, ok := t.columns[name]
	if !ok {
		return nil, NewErrUnknownColumn(name, t.order)
	}
	return slices.Clone(cells), nil
}

// Row returns a one-row table holding row idx.
func (t *Table) Row(idx int) (*Table, error) {
	return t.SelectRows([]int{idx})
}

// SelectRows returns a table of the given rows, in the order given. Indexes
// may repeat.
func (t *Table) SelectRows(idxs []int) (*Table, error) {
	for _, idx := range idxs {
		if idx < 0 || idx >= t.shape.Rows() {
			return nil, NewErrInvalidRow(idx, t.shape.Rows())
		}
	}
	return t.gather(idxs), nil
}

// gather builds a table of the receiver's columns restricted to idxs. The
// indexes must already be in range.
func (t *Table) gather(idxs []int) *Table {
	columns := make(map[string][]string, len(t.order))
	for _, name := range t.order {
		src := t.columns[name]
		dst := make([]string, len(idxs))
		for i, idx := range idxs {
			dst[i] = src[idx]
		}
		columns[name] = dst
	}
	return newTable(slices.Clone(t.order), columns, len(idxs))
}

// SelectColumns projects the table onto names, in the order given.
func (t *Table) SelectColumns(names []string) (*Table, error) {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, NewErrUnknownColumn(name, t.order)
		}
		if _, ok := seen[name]; ok {
			return nil, NewErrDuplicateColumn(name)
		}
		seen[name] = struct{}{}
	}

	columns := make(map[string][]string, len(names))
	for _, name := range names {
		columns[name] = slices.Clone(t.columns[name])
	}
	return newTable(slices.Clone(names), columns, t.shape.Rows()), nil
}

// SelectRowRange returns rows [start, end). The range is clamped to the
// table; an empty range yields a table with the same headers and no rows.
func (t *Table) SelectRowRange(start, end int) *Table {
	if start < 0 {
		start = 0
	}
	if start > t.shape.Rows() {
		start = t.shape.Rows()
	}
	if end > t.shape.Rows() {
		end = t.shape.Rows()
	}
	if end < start {
		end = start
	}
	columns := make(map[string][]string, len(t.order))
	for _, name := range t.order {
		columns[name] = slices.Clone(t.columns[name][start:end])
	}
	return newTable(slices.Clone(t.order), columns, end-start)
}

// TopN returns the first n rows.
func (t *Table) TopN(n int) *Table {
	return t.SelectRowRange(0, n)
}

// BottomN returns the last n rows. A negative n returns no rows.
func (t *Table) BottomN(n int) *Table {
	if n < 0 {
		n = 0
	}
	return t.SelectRowRange(t.shape.Rows()-n, t.shape.Rows())
}

func (t *Table) Head() *Table { return t.TopN(defaultPeek) }
func (t *Table) Tail() *Table { return t.BottomN(defaultPeek) }

// SelectWhere returns the rows whose cells equal every value in where,
// keyed by column name, in their original order. An empty where selects
// every row.
func (t *Table) SelectWhere(where map[string]string) (*Table, error) {
	for name := range where {
		if !t.HasColumn(name) {
			return nil, NewErrUnknownColumn(name, t.order)
		}
	}

	// Count, per row, how many predicates hold. A row matches when every
	// predicate does.
	hits := make([]int, t.shape.Rows())
	for name, want := range where {
		for i, cell := range t.columns[name] {
			if cell == want {
				hits[i]++
			}
		}
	}

	idxs := make([]int, 0)
	for i, n := range hits {
		if n == len(where) {
			idxs = append(idxs, i)
		}
	}
	return t.gather(idxs), nil
}

// Filter returns the rows for which keep returns true, in order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	idxs := make([]int, 0)
	for i := 0; i < t.shape.Rows(); i++ {
		if keep(Row{t: t, idx: i}) {
			idxs = append(idxs, i)
		}
	}
	return t.gather(idxs)
}
