// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/featurebasedb/datatable"
	"github.com/pkg/errors"
)

// JoinCommand joins two files and writes or prints the result.
type JoinCommand struct {
	Left  string
	Right string

	// On lists the join keys. An entry is either a column name present on
	// both sides or "left=right".
	On []string

	// Kind is one of inner, left, right or outer.
	Kind string

	// Strategy is nested or hash.
	Strategy string

	// Null fills unmatched cells of outer joins.
	Null string

	// Output file. Empty renders to stdout.
	Output string

	Config *Config

	// Standard input/output
	*datatable.CmdIO
}

// NewJoinCommand returns a new instance of JoinCommand.
func NewJoinCommand(stdin io.Reader, stdout, stderr io.Writer) *JoinCommand {
	return &JoinCommand{
		Kind:     "inner",
		Strategy: "nested",
		Config:   NewConfig(),
		CmdIO:    datatable.NewCmdIO(stdin, stdout, stderr),
	}
}

// parseKeys splits each "left=right" entry into its two sides.
func parseKeys(on []string) (left, right []string, err error) {
	for _, k := range on {
		l, r, found := strings.Cut(k, "=")
		if !found {
			r = l
		}
		l, r = strings.TrimSpace(l), strings.TrimSpace(r)
		if l == "" || r == "" {
			return nil, nil, fmt.Errorf("%w: bad join key '%s'", UsageError, k)
		}
		left = append(left, l)
		right = append(right, r)
	}
	return left, right, nil
}

func parseStrategy(s string) (datatable.JoinStrategy, error) {
	switch strings.ToLower(s) {
	case "", "nested":
		return datatable.NestedLoop, nil
	case "hash":
		return datatable.Hash, nil
	}
	return 0, fmt.Errorf("%w: unknown join strategy '%s'", UsageError, s)
}

// Run executes the join.
func (cmd *JoinCommand) Run(ctx context.Context) error {
	logger := cmd.Logger()

	// Validate arguments.
	if cmd.Left == "" || cmd.Right == "" {
		return fmt.Errorf("%w: two files required", UsageError)
	} else if len(cmd.On) == 0 {
		return fmt.Errorf("%w: --on required", UsageError)
	}
	leftKeys, rightKeys, err := parseKeys(cmd.On)
	if err != nil {
		return err
	}
	strategy, err := parseStrategy(cmd.Strategy)
	if err != nil {
		return err
	}

	var join func(*datatable.Table, datatable.Columnar, []string, []string, ...datatable.JoinOption) (*datatable.Table, error)
	switch strings.ToLower(cmd.Kind) {
	case "", "inner":
		join = (*datatable.Table).InnerJoinOn
	case "left":
		join = (*datatable.Table).LeftJoinOn
	case "right":
		join = (*datatable.Table).RightJoinOn
	case "outer", "full":
		join = (*datatable.Table).OuterJoinOn
	default:
		return fmt.Errorf("%w: unknown join kind '%s'", UsageError, cmd.Kind)
	}

	left, err := loadTable(ctx, cmd.Config, cmd.Left)
	if err != nil {
		return errors.Wrap(err, "loading left table")
	}
	right, err := loadTable(ctx, cmd.Config, cmd.Right)
	if err != nil {
		return errors.Wrap(err, "loading right table")
	}

	out, err := join(left, right, leftKeys, rightKeys,
		datatable.WithStrategy(strategy),
		datatable.WithNull(cmd.Null),
	)
	if err != nil {
		return errors.Wrap(err, "joining")
	}
	logger.Debugf("%s join (%s) of %s and %s produced %s", cmd.Kind, strategy, left.Shape(), right.Shape(), out.Shape())

	if cmd.Output == "" {
		renderTable(cmd.Stdout, out)
		return nil
	}
	if err := saveTable(cmd.Config, out, cmd.Output); err != nil {
		return errors.Wrap(err, "writing output")
	}
	logger.Printf("wrote %d rows to %s", out.NRows(), cmd.Output)
	return nil
}
