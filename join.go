// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import (
	"github.com/cespare/xxhash"
	"golang.org/x/exp/slices"
)

// JoinStrategy selects the matching algorithm. Every strategy produces the
// same rows in the same order.
type JoinStrategy int

const (
	// NestedLoop compares every outer row against every inner row.
	NestedLoop JoinStrategy = iota
	// Hash buckets the inner rows by a hash of their key cells and probes
	// the buckets with the outer rows.
	Hash
)

func (s JoinStrategy) String() string {
	switch s {
	case NestedLoop:
		return "nested"
	case Hash:
		return "hash"
	}
	return "unknown"
}

type joinKind int

const (
	innerJoin joinKind = iota
	leftJoin
	rightJoin
	outerJoin
)

// DefaultJoinSuffix is appended to a right-hand column whose name is
// already taken by a left-hand column.
const DefaultJoinSuffix = "_right"

type joinOptions struct {
	strategy JoinStrategy
	suffix   string
	null     string
}

// JoinOption configures the join methods.
type JoinOption func(*joinOptions)

func WithStrategy(s JoinStrategy) JoinOption {
	return func(o *joinOptions) { o.strategy = s }
}

// WithSuffix sets the suffix used to rename colliding right-hand columns.
func WithSuffix(s string) JoinOption {
	return func(o *joinOptions) { o.suffix = s }
}

// WithNull sets the cell written where an outer join has no matching row.
func WithNull(s string) JoinOption {
	return func(o *joinOptions) { o.null = s }
}

// InnerJoin joins t with other on equality of the key column, which must
// exist on both sides. The result holds t's columns, then other's columns
// without the key.
func (t *Table) InnerJoin(other Columnar, key string, opts ...JoinOption) (*Table, error) {
	return t.join(innerJoin, other, []string{key}, []string{key}, opts)
}

// InnerJoinOn joins t with other where leftKeys[i] equals rightKeys[i] for
// every i. Rows come out in receiver order, each followed by its matches in
// other's order.
func (t *Table) InnerJoinOn(other Columnar, leftKeys, rightKeys []string, opts ...JoinOption) (*Table, error) {
	return t.join(innerJoin, other, leftKeys, rightKeys, opts)
}

// LeftJoin is InnerJoin that also keeps receiver rows without a match.
func (t *Table) LeftJoin(other Columnar, key string, opts ...JoinOption) (*Table, error) {
	return t.join(leftJoin, other, []string{key}, []string{key}, opts)
}

func (t *Table) LeftJoinOn(other Columnar, leftKeys, rightKeys []string, opts ...JoinOption) (*Table, error) {
	return t.join(leftJoin, other, leftKeys, rightKeys, opts)
}

// RightJoin keeps every row of other. Rows come out in other's order.
func (t *Table) RightJoin(other Columnar, key string, opts ...JoinOption) (*Table, error) {
	return t.join(rightJoin, other, []string{key}, []string{key}, opts)
}

func (t *Table) RightJoinOn(other Columnar, leftKeys, rightKeys []string, opts ...JoinOption) (*Table, error) {
	return t.join(rightJoin, other, leftKeys, rightKeys, opts)
}

// OuterJoin keeps every row of both sides: the left join result followed by
// the rows of other that matched nothing.
func (t *Table) OuterJoin(other Columnar, key string, opts ...JoinOption) (*Table, error) {
	return t.join(outerJoin, other, []string{key}, []string{key}, opts)
}

func (t *Table) OuterJoinOn(other Columnar, leftKeys, rightKeys []string, opts ...JoinOption) (*Table, error) {
	return t.join(outerJoin, other, leftKeys, rightKeys, opts)
}

// side is one materialized join input.
type side struct {
	order   []string
	columns map[string][]string
	rows    int
	keys    [][]string // key columns, in key order
}

func newSide(c Columnar, keys []string) (*side, error) {
	s := &side{
		order:   c.Headers(),
		columns: make(map[string][]string),
		rows:    c.Shape().Rows(),
	}
	for _, name := range s.order {
		cells, err := c.Column(name)
		if err != nil {
			return nil, err
		}
		if len(cells) != s.rows {
			return nil, NewErrShapeMismatch(name, len(cells), s.rows)
		}
		s.columns[name] = cells
	}
	for _, key := range keys {
		cells, ok := s.columns[key]
		if !ok {
			return nil, NewErrUnknownColumn(key, s.order)
		}
		s.keys = append(s.keys, cells)
	}
	return s, nil
}

// keyEqual reports whether row i of a and row j of b agree on every key.
func keyEqual(a *side, i int, b *side, j int) bool {
	for k := range a.keys {
		if a.keys[k][i] != b.keys[k][j] {
			return false
		}
	}
	return true
}

func (s *side) hashRow(i int) uint64 {
	h := xxhash.New()
	for _, cells := range s.keys {
		h.Write([]byte(cells[i]))
		// Separator so ("ab","c") and ("a","bc") hash apart.
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// pair is one output row: an index into each input, or -1 where that side
// has no row.
type pair struct {
	left, right int
}

// match pairs every outer row with its inner matches, outer rows in order
// and inner matches in order. Outer rows without a match are emitted with
// inner == -1 when keepOuter is set. The returned slice reports which inner
// rows matched at least once.
func match(outer, inner *side, strategy JoinStrategy, keepOuter bool) ([]pair, []bool) {
	var buckets map[uint64][]int
	if strategy == Hash {
		buckets = make(map[uint64][]int)
		for j := 0; j < inner.rows; j++ {
			h := inner.hashRow(j)
			buckets[h] = append(buckets[h], j)
		}
	}

	pairs := make([]pair, 0)
	matched := make([]bool, inner.rows)
	emit := func(i, j int) bool {
		if !keyEqual(outer, i, inner, j) {
			return false
		}
		pairs = append(pairs, pair{i, j})
		matched[j] = true
		return true
	}

	for i := 0; i < outer.rows; i++ {
		found := false
		if strategy == Hash {
			for _, j := range buckets[outer.hashRow(i)] {
				found = emit(i, j) || found
			}
		} else {
			for j := 0; j < inner.rows; j++ {
				found = emit(i, j) || found
			}
		}
		if !found && keepOuter {
			pairs = append(pairs, pair{i, -1})
		}
	}
	return pairs, matched
}

func (t *Table) join(kind joinKind, other Columnar, leftKeys, rightKeys []string, opts []JoinOption) (*Table, error) {
	o := joinOptions{strategy: NestedLoop, suffix: DefaultJoinSuffix}
	for _, opt := range opts {
		opt(&o)
	}
	if len(leftKeys) == 0 || len(leftKeys) != len(rightKeys) {
		return nil, NewErrJoinKeyMismatch(len(leftKeys), len(rightKeys))
	}

	left, err := newSide(t, leftKeys)
	if err != nil {
		return nil, err
	}
	right, err := newSide(other, rightKeys)
	if err != nil {
		return nil, err
	}

	// Output schema: every left column, then the right columns that are not
	// keys, renamed on collision.
	order := slices.Clone(left.order)
	taken := make(map[string]bool, len(order))
	for _, name := range order {
		taken[name] = true
	}
	isRightKey := make(map[string]bool, len(rightKeys))
	for _, k := range rightKeys {
		isRightKey[k] = true
	}
	var rightNames, outNames []string
	for _, name := range right.order {
		if isRightKey[name] {
			continue
		}
		out := name
		if taken[out] {
			out = name + o.suffix
			if taken[out] {
				return nil, NewErrDuplicateColumn(out)
			}
		}
		taken[out] = true
		rightNames = append(rightNames, name)
		outNames = append(outNames, out)
	}
	order = append(order, outNames...)

	var pairs []pair
	switch kind {
	case innerJoin:
		pairs, _ = match(left, right, o.strategy, false)
	case leftJoin:
		pairs, _ = match(left, right, o.strategy, true)
	case rightJoin:
		flipped, _ := match(right, left, o.strategy, true)
		pairs = make([]pair, len(flipped))
		for i, p := range flipped {
			pairs[i] = pair{left: p.right, right: p.left}
		}
	case outerJoin:
		var matched []bool
		pairs, matched = match(left, right, o.strategy, true)
		for j, ok := range matched {
			if !ok {
				pairs = append(pairs, pair{-1, j})
			}
		}
	}

	// Left key columns show the right key when only the right side has a
	// row, so a right-only row still carries its key.
	rightKeyFor := make(map[string]string, len(leftKeys))
	for k, name := range leftKeys {
		rightKeyFor[name] = rightKeys[k]
	}

	columns := make(map[string][]string, len(order))
	for _, name := range left.order {
		src := left.columns[name]
		rk, isKey := rightKeyFor[name]
		dst := make([]string, len(pairs))
		for r, p := range pairs {
			switch {
			case p.left >= 0:
				dst[r] = src[p.left]
			case isKey:
				dst[r] = right.columns[rk][p.right]
			default:
				dst[r] = o.null
			}
		}
		columns[name] = dst
	}
	for c, name := range rightNames {
		src := right.columns[name]
		dst := make([]string, len(pairs))
		for r, p := range pairs {
			if p.right >= 0 {
				dst[r] = src[p.right]
			} else {
				dst[r] = o.null
			}
		}
		columns[outNames[c]] = dst
	}
	return newTable(order, columns, len(pairs)), nil
}
