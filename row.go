// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

// Row is a read-only view of one row of a Table, addressed by column name.
// It is only valid while the table it came from is not mutated.
type Row struct {
	t   *Table
	idx int
}

// Index is the row's position in its table.
func (r Row) Index() int { return r.idx }

// Get returns the cell in the named column.
func (r Row) Get(column string) (string, bool) {
	cells, ok := r.t.columns[column]
	if !ok {
		return "", false
	}
	return cells[r.idx], true
}

// Values returns the row's cells in header order.
func (r Row) Values() []string {
	return r.t.rowValues(r.idx)
}

// Map returns the row as column name to cell.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.t.order))
	for _, name := range r.t.order {
		m[name] = r.t.columns[name][r.idx]
	}
	return m
}
