// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package datatable is an in-memory, column-oriented table of text cells.
// Tables are loaded from delimited text, combined with relational
// operations (projection, selection, join, aggregation) and written back
// out. Every relational operation returns a new *Table; only DropColumn,
// DropColumns and ShuffleRows modify their receiver.
//
// The explicit column order is the single source of truth for column
// order everywhere: serialization, join output and table-wide aggregates
// never depend on map iteration order.
package datatable

import (
	"bytes"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Ensure Table implements interface.
var _ Columnar = &Table{}

// Table is a columnar store of text cells.
//
// order and columns are kept in bijection, every column holds shape.Rows()
// cells and len(order) == shape.Cols().
type Table struct {
	order   []string
	columns map[string][]string
	shape   Shape
}

// NewTable returns a table holding a deep copy of columns. order gives the
// column order. When order is empty or its length differs from the number
// of columns, the names are ordered lexically instead; callers needing a
// particular order must pass one.
func NewTable(columns map[string][]string, order []string) (*Table, error) {
	if len(order) == 0 || len(order) != len(columns) {
		order = maps.Keys(columns)
		slices.Sort(order)
	}

	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if _, ok := seen[name]; ok {
			return nil, NewErrDuplicateColumn(name)
		}
		seen[name] = struct{}{}
		if _, ok := columns[name]; !ok {
			valid := maps.Keys(columns)
			slices.Sort(valid)
			return nil, NewErrUnknownColumn(name, valid)
		}
	}

	rows := 0
	if len(order) > 0 {
		rows = len(columns[order[0]])
	}
	t := &Table{
		order:   slices.Clone(order),
		columns: make(map[string][]string, len(order)),
		shape:   NewShape(rows, len(order)),
	}
	for _, name := range order {
		cells := columns[name]
		if len(cells) != rows {
			return nil, NewErrShapeMismatch(name, len(cells), rows)
		}
		t.columns[name] = slices.Clone(cells)
	}
	return t, nil
}

// NewEmptyTable returns a table with the given headers and no rows.
func NewEmptyTable(headers ...string) (*Table, error) {
	columns := make(map[string][]string, len(headers))
	for _, h := range headers {
		if _, ok := columns[h]; ok {
			return nil, NewErrDuplicateColumn(h)
		}
		columns[h] = []string{}
	}
	return NewTable(columns, headers)
}

// newTable assembles a table from parts the caller already owns and has
// validated. No copies are made.
func newTable(order []string, columns map[string][]string, rows int) *Table {
	return &Table{
		order:   order,
		columns: columns,
		shape:   NewShape(rows, len(order)),
	}
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	columns := make(map[string][]string, len(t.order))
	for _, name := range t.order {
		columns[name] = slices.Clone(t.columns[name])
	}
	return newTable(slices.Clone(t.order), columns, t.shape.Rows())
}

// Headers returns the column names in order.
func (t *Table) Headers() []string {
	return slices.Clone(t.order)
}

// Shape returns the table's dimensions.
func (t *Table) Shape() Shape { return t.shape }

func (t *Table) NRows() int { return t.shape.Rows() }
func (t *Table) NCols() int { return t.shape.Cols() }

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Rows returns a row-major copy of the cells, columns in header order.
func (t *Table) Rows() [][]string {
	out := make([][]string, t.shape.Rows())
	for i := range out {
		out[i] = t.rowValues(i)
	}
	return out
}

func (t *Table) rowValues(i int) []string {
	row := make([]string, len(t.order))
	for j, name := range t.order {
		row[j] = t.columns[name][i]
	}
	return row
}

// Equal reports whether both tables have the same headers in the same order
// and identical cells.
func (t *Table) Equal(other *Table) bool {
	if other == nil || !slices.Equal(t.order, other.order) {
		return false
	}
	if t.shape != other.shape {
		return false
	}
	for _, name := range t.order {
		if !slices.Equal(t.columns[name], other.columns[name]) {
			return false
		}
	}
	return true
}

// String renders the table as comma-separated text with a header line.
func (t *Table) String() string {
	var buf bytes.Buffer
	_ = t.Write(&buf)
	return buf.String()
}

// indexOf returns the position of name in the column order, or -1.
func (t *Table) indexOf(name string) int {
	return slices.Index(t.order, name)
}

// checkColumns returns an UnknownColumn error for the first name that is
// not a column of t.
func (t *Table) checkColumns(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return NewErrUnknownColumn(name, t.order)
		}
	}
	return nil
}
