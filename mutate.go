// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import (
	"github.com/featurebasedb/datatable/errors"
	"github.com/molecula/apophenia"
	"golang.org/x/exp/slices"
)

// DropColumn removes the named column in place.
func (t *Table) DropColumn(name string) error {
	return t.DropColumns([]string{name})
}

// DropColumns removes the named columns in place. Every name is checked
// before anything is removed, so on error the table is unchanged.
func (t *Table) DropColumns(names []string) error {
	if err := t.checkColumns(names...); err != nil {
		return errors.Wrap(err, "dropping columns")
	}
	for _, name := range names {
		if i := t.indexOf(name); i >= 0 {
			t.order = slices.Delete(t.order, i, i+1)
			delete(t.columns, name)
		}
	}
	t.shape.SetCols(len(t.order))
	if len(t.order) == 0 {
		t.shape.SetRows(0)
	}
	return nil
}

// ShuffleRows reorders the rows in place by a pseudo-random permutation
// derived from seed. Each row moves as a unit and the same seed always
// produces the same order.
func (t *Table) ShuffleRows(seed int64) error {
	rows := t.shape.Rows()
	if rows <= 1 {
		return nil
	}
	perm, err := apophenia.NewPermutation(int64(rows), 0, apophenia.NewSequence(seed))
	if err != nil {
		return errors.Wrap(err, "creating permutation")
	}
	idxs := make([]int, rows)
	for i := range idxs {
		idxs[i] = int(perm.Nth(int64(i)))
	}
	shuffled := t.gather(idxs)
	t.columns = shuffled.columns
	return nil
}

// Concat returns a table of t's rows followed by other's. other must have
// every column of t; extra columns in other are ignored.
func (t *Table) Concat(other Columnar) (*Table, error) {
	columns := make(map[string][]string, len(t.order))
	rows := t.shape.Rows() + other.Shape().Rows()
	if len(t.order) == 0 {
		rows = 0
	}
	for _, name := range t.order {
		cells, err := other.Column(name)
		if err != nil {
			return nil, errors.Wrap(err, "concatenating")
		}
		if len(cells) != other.Shape().Rows() {
			return nil, NewErrShapeMismatch(name, len(cells), other.Shape().Rows())
		}
		merged := make([]string, 0, rows)
		merged = append(merged, t.columns[name]...)
		columns[name] = append(merged, cells...)
	}
	return newTable(slices.Clone(t.order), columns, rows), nil
}
