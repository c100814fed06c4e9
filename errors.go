// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import (
	"fmt"
	"strings"

	"github.com/featurebasedb/datatable/errors"
)

const (
	ErrIO           errors.Code = "ErrIO"
	ErrFileNotFound errors.Code = "ErrFileNotFound"
	ErrEmptyFile    errors.Code = "ErrEmptyFile"
	ErrRaggedRow    errors.Code = "ErrRaggedRow"

	ErrUnknownColumn   errors.Code = "ErrUnknownColumn"
	ErrDuplicateColumn errors.Code = "ErrDuplicateColumn"
	ErrInvalidRow      errors.Code = "ErrInvalidRow"
	ErrInvalidIndex    errors.Code = "ErrInvalidIndex"
	ErrShapeMismatch   errors.Code = "ErrShapeMismatch"

	ErrJoinKeyMismatch errors.Code = "ErrJoinKeyMismatch"

	ErrParse          errors.Code = "ErrParse"
	ErrEmptyAggregate errors.Code = "ErrEmptyAggregate"
	ErrOverflow       errors.Code = "ErrOverflow"

	ErrNotImplemented errors.Code = "ErrNotImplemented"
)

func NewErrFileNotFound(path string) error {
	return errors.New(
		ErrFileNotFound,
		fmt.Sprintf("file '%s' could not be found", path),
	)
}

func NewErrIO(path string, err error) error {
	return errors.New(
		ErrIO,
		fmt.Sprintf("i/o error on '%s': %v", path, err),
	)
}

func NewErrEmptyFile(path string) error {
	return errors.New(
		ErrEmptyFile,
		fmt.Sprintf("'%s' contains no lines", path),
	)
}

func NewErrRaggedRow(line, got, want int) error {
	return errors.New(
		ErrRaggedRow,
		fmt.Sprintf("line %d has %d fields, header has %d", line, got, want),
	)
}

// NewErrUnknownColumn lists the valid names so a typo is easy to spot.
func NewErrUnknownColumn(name string, valid []string) error {
	return errors.New(
		ErrUnknownColumn,
		fmt.Sprintf("unknown column '%s', valid columns are [%s]", name, strings.Join(valid, ", ")),
	)
}

func NewErrDuplicateColumn(name string) error {
	return errors.New(
		ErrDuplicateColumn,
		fmt.Sprintf("duplicate column '%s'", name),
	)
}

func NewErrInvalidRow(idx, rows int) error {
	return errors.New(
		ErrInvalidRow,
		fmt.Sprintf("row index %d out of range, table has %d rows", idx, rows),
	)
}

func NewErrInvalidIndex(idx int) error {
	return errors.New(
		ErrInvalidIndex,
		fmt.Sprintf("invalid shape index %d, valid indices are 0 for rows and 1 for columns", idx),
	)
}

func NewErrShapeMismatch(column string, got, want int) error {
	return errors.New(
		ErrShapeMismatch,
		fmt.Sprintf("column '%s' has %d cells, expected %d", column, got, want),
	)
}

func NewErrJoinKeyMismatch(left, right int) error {
	return errors.New(
		ErrJoinKeyMismatch,
		fmt.Sprintf("join keys are not one-to-one: %d left keys, %d right keys", left, right),
	)
}

func NewErrParse(column string, row int, cell string) error {
	return errors.New(
		ErrParse,
		fmt.Sprintf("column '%s' row %d: '%s' is not numeric", column, row, cell),
	)
}

func NewErrEmptyAggregate(what string) error {
	return errors.New(
		ErrEmptyAggregate,
		fmt.Sprintf("cannot aggregate %s: no cells", what),
	)
}

// NewErrOverflow reports an integer aggregate that does not fit in an int64.
// The decimal aggregates have no such limit.
func NewErrOverflow(what string) error {
	return errors.New(
		ErrOverflow,
		fmt.Sprintf("sum of %s overflows int64, use the decimal aggregate", what),
	)
}

func NewErrNotImplemented(what string) error {
	return errors.New(
		ErrNotImplemented,
		fmt.Sprintf("%s is not implemented", what),
	)
}
