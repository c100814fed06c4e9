// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

// Columnar is the read side of a table. Binary operations (joins and
// concatenation) accept a Columnar as their right-hand input so other
// storage backends can take part without converting to a *Table first.
type Columnar interface {
	// Headers returns the column names in their external order.
	Headers() []string

	// Column returns the cells of the named column, or an
	// ErrUnknownColumn error.
	Column(name string) ([]string, error)

	Shape() Shape
}
