// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import (
	"context"
	"os"
	"strconv"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/array"
	"github.com/apache/arrow/go/v10/arrow/memory"
	"github.com/apache/arrow/go/v10/parquet"
	"github.com/apache/arrow/go/v10/parquet/file"
	"github.com/apache/arrow/go/v10/parquet/pqarrow"
	"github.com/featurebasedb/datatable/errors"
)

// ArrowSchema returns a schema with one non-nullable utf8 field per column,
// in column order.
func (t *Table) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(t.order))
	for i, name := range t.order {
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String}
	}
	return arrow.NewSchema(fields, nil)
}

// ToArrow returns the table as a single arrow record. The caller must
// Release it.
func (t *Table) ToArrow(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	cols := make([]arrow.Array, len(t.order))
	for i, name := range t.order {
		b := array.NewStringBuilder(mem)
		b.AppendValues(t.columns[name], nil)
		cols[i] = b.NewArray()
		b.Release()
	}
	rec := array.NewRecord(t.ArrowSchema(), cols, int64(t.shape.Rows()))
	for _, c := range cols {
		c.Release()
	}
	return rec, nil
}

// FromArrow converts an arrow table to a Table. String, integer, floating
// point and boolean columns are rendered as text and nulls become empty
// cells. Any other column type is rejected.
func FromArrow(tbl arrow.Table) (*Table, error) {
	schema := tbl.Schema()
	order := make([]string, 0, tbl.NumCols())
	columns := make(map[string][]string, tbl.NumCols())
	rows := int(tbl.NumRows())

	for i := 0; i < int(tbl.NumCols()); i++ {
		name := schema.Field(i).Name
		if _, ok := columns[name]; ok {
			return nil, NewErrDuplicateColumn(name)
		}
		cells := make([]string, 0, rows)
		for _, chunk := range tbl.Column(i).Data().Chunks() {
			var err error
			if cells, err = appendCells(cells, chunk); err != nil {
				return nil, errors.Wrapf(err, "column '%s'", name)
			}
		}
		order = append(order, name)
		columns[name] = cells
	}
	return NewTable(columns, order)
}

func appendCells(cells []string, chunk arrow.Array) ([]string, error) {
	var cell func(i int) string
	switch a := chunk.(type) {
	case *array.String:
		cell = a.Value
	case *array.LargeString:
		cell = a.Value
	case *array.Int64:
		cell = func(i int) string { return strconv.FormatInt(a.Value(i), 10) }
	case *array.Int32:
		cell = func(i int) string { return strconv.FormatInt(int64(a.Value(i)), 10) }
	case *array.Uint64:
		cell = func(i int) string { return strconv.FormatUint(a.Value(i), 10) }
	case *array.Float64:
		cell = func(i int) string { return strconv.FormatFloat(a.Value(i), 'f', -1, 64) }
	case *array.Boolean:
		cell = func(i int) string { return strconv.FormatBool(a.Value(i)) }
	default:
		return nil, NewErrNotImplemented("arrow type " + chunk.DataType().String())
	}
	for i := 0; i < chunk.Len(); i++ {
		if chunk.IsNull(i) {
			cells = append(cells, "")
			continue
		}
		cells = append(cells, cell(i))
	}
	return cells, nil
}

// SaveParquet writes the table to path as a parquet file of utf8 columns.
func (t *Table) SaveParquet(path string) error {
	mem := memory.NewGoAllocator()
	rec, err := t.ToArrow(mem)
	if err != nil {
		return err
	}
	defer rec.Release()
	tbl := array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
	defer tbl.Release()

	f, err := os.Create(path)
	if err != nil {
		return NewErrIO(path, err)
	}
	// WriteTable closes f once the footer is written.
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithDictionaryDefault(false))
	if err := pqarrow.WriteTable(tbl, f, 4096, props, pqarrow.DefaultWriterProps()); err != nil {
		return NewErrIO(path, err)
	}
	return nil
}

// LoadParquet reads a parquet file into a new Table.
func LoadParquet(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewErrFileNotFound(path)
		}
		return nil, NewErrIO(path, err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f)
	if err != nil {
		return nil, NewErrIO(path, err)
	}
	mem := memory.NewGoAllocator()
	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, NewErrIO(path, err)
	}
	tbl, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, NewErrIO(path, err)
	}
	defer tbl.Release()
	return FromArrow(tbl)
}
