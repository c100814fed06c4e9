// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/featurebasedb/datatable/errors"
)

// RaggedPolicy decides what happens to a data line whose field count
// differs from the header's.
type RaggedPolicy int

const (
	// RaggedReject fails the whole load.
	RaggedReject RaggedPolicy = iota
	// RaggedPad pads short lines with empty cells. Long lines still fail.
	RaggedPad
)

type loadOptions struct {
	headers bool
	delim   rune
	ragged  RaggedPolicy
	quoted  bool
}

// LoadOption configures Load and Read.
type LoadOption func(*loadOptions)

// WithHeaders says whether the first line holds column names. When false
// the columns are named "0", "1", ... and the first line is data.
func WithHeaders(b bool) LoadOption {
	return func(o *loadOptions) { o.headers = b }
}

func WithDelimiter(d rune) LoadOption {
	return func(o *loadOptions) { o.delim = d }
}

func WithRaggedRows(p RaggedPolicy) LoadOption {
	return func(o *loadOptions) { o.ragged = p }
}

// WithQuotedFields parses RFC 4180 quoting, so quoted cells may contain the
// delimiter. By default lines are split on every delimiter and double quotes
// are simply removed.
func WithQuotedFields(b bool) LoadOption {
	return func(o *loadOptions) { o.quoted = b }
}

func newLoadOptions(opts []LoadOption) loadOptions {
	o := loadOptions{headers: true, delim: ','}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// record is one input line split into fields. A blank line has a single
// empty field.
type record struct {
	line   int
	fields []string
	blank  bool
}

// Load reads a delimited file into a new Table. The load is all or nothing:
// on any error no table is returned.
func Load(path string, opts ...LoadOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewErrFileNotFound(path)
		}
		return nil, NewErrIO(path, err)
	}
	defer f.Close()

	t, err := read(f, path, newLoadOptions(opts))
	if err != nil {
		return nil, errors.Wrapf(err, "loading '%s'", path)
	}
	return t, nil
}

// Read is Load for an already open reader.
func Read(r io.Reader, opts ...LoadOption) (*Table, error) {
	return read(r, "<reader>", newLoadOptions(opts))
}

func read(r io.Reader, name string, o loadOptions) (*Table, error) {
	var records []record
	var err error
	if o.quoted {
		records, err = readQuoted(r, name, o.delim)
	} else {
		records, err = readPlain(r, name, o.delim)
	}
	if err != nil {
		return nil, err
	}
	for len(records) > 0 && records[0].blank {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, NewErrEmptyFile(name)
	}

	first := records[0]
	if len(first.fields) != 1 {
		// A blank line only holds a cell when there is a single column.
		kept := records[:0]
		for _, rec := range records {
			if !rec.blank {
				kept = append(kept, rec)
			}
		}
		records = kept
	}
	order := make([]string, len(first.fields))
	if o.headers {
		copy(order, first.fields)
		records = records[1:]
	} else {
		for i := range order {
			order[i] = strconv.Itoa(i)
		}
	}

	columns := make(map[string][]string, len(order))
	for _, name := range order {
		if _, ok := columns[name]; ok {
			return nil, NewErrDuplicateColumn(name)
		}
		columns[name] = make([]string, 0, len(records))
	}

	for _, rec := range records {
		fields := rec.fields
		if len(fields) != len(order) {
			if o.ragged != RaggedPad || len(fields) > len(order) {
				return nil, NewErrRaggedRow(rec.line, len(fields), len(order))
			}
			fields = append(fields, make([]string, len(order)-len(fields))...)
		}
		for i, name := range order {
			columns[name] = append(columns[name], fields[i])
		}
	}
	return newTable(order, columns, len(records)), nil
}

func readPlain(r io.Reader, name string, delim rune) ([]record, error) {
	var records []record
	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		s, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, NewErrIO(name, err)
		}
		// The read that hits EOF right after a newline is not a line.
		if s != "" {
			s = strings.TrimRight(s, "\r\n")
			fields := strings.Split(s, string(delim))
			for i := range fields {
				fields[i] = strings.ReplaceAll(fields[i], `"`, "")
			}
			records = append(records, record{line: line, fields: fields, blank: s == ""})
		}
		if err == io.EOF {
			return records, nil
		}
	}
}

func readQuoted(r io.Reader, name string, delim rune) ([]record, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	var records []record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return records, nil
		} else if err != nil {
			return nil, NewErrIO(name, err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
}

type saveOptions struct {
	delim rune
}

// SaveOption configures Save and Write.
type SaveOption func(*saveOptions)

// WithSaveDelimiter sets the delimiter used for the header and every row.
func WithSaveDelimiter(d rune) SaveOption {
	return func(o *saveOptions) { o.delim = d }
}

// Save writes the table to path: a header line, then one line per row.
func (t *Table) Save(path string, opts ...SaveOption) error {
	f, err := os.Create(path)
	if err != nil {
		return NewErrIO(path, err)
	}
	if err := t.Write(f, opts...); err != nil {
		f.Close()
		return NewErrIO(path, err)
	}
	if err := f.Close(); err != nil {
		return NewErrIO(path, err)
	}
	return nil
}

// Write serializes the table to w in the format Save uses.
func (t *Table) Write(w io.Writer, opts ...SaveOption) error {
	o := saveOptions{delim: ','}
	for _, opt := range opts {
		opt(&o)
	}
	sep := string(o.delim)

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(t.order, sep) + "\n"); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i := 0; i < t.shape.Rows(); i++ {
		if _, err := bw.WriteString(strings.Join(t.rowValues(i), sep) + "\n"); err != nil {
			return errors.Wrapf(err, "writing row %d", i)
		}
	}
	return errors.Wrap(bw.Flush(), "flushing")
}
