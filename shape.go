// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import "fmt"

// Shape is the (rows, columns) dimension pair of a Table. Neither dimension
// is ever negative.
type Shape struct {
	rows int
	cols int
}

// NewShape returns a Shape with negative dimensions clamped to zero.
func NewShape(rows, cols int) Shape {
	var s Shape
	s.SetRows(rows)
	s.SetCols(cols)
	return s
}

func (s Shape) Rows() int { return s.rows }
func (s Shape) Cols() int { return s.cols }

func (s *Shape) SetRows(n int) {
	if n < 0 {
		n = 0
	}
	s.rows = n
}

func (s *Shape) SetCols(n int) {
	if n < 0 {
		n = 0
	}
	s.cols = n
}

// At returns the rows for index 0 and the columns for index 1.
func (s Shape) At(index int) (int, error) {
	switch index {
	case 0:
		return s.rows, nil
	case 1:
		return s.cols, nil
	}
	return 0, NewErrInvalidIndex(index)
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.rows, s.cols)
}
