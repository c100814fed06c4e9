// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/featurebasedb/datatable"
	"github.com/shopspring/decimal"
)

// AggregateCommand prints an aggregate of one column or of the whole table.
type AggregateCommand struct {
	Path string

	// Column to aggregate. Empty aggregates every cell of the table.
	Column string

	// Func is one of min, max, sum or mean.
	Func string

	// Decimal parses cells as arbitrary precision decimals instead of
	// integers. It requires Column.
	Decimal bool

	Config *Config

	// Standard input/output
	*datatable.CmdIO
}

// NewAggregateCommand returns a new instance of AggregateCommand.
func NewAggregateCommand(stdin io.Reader, stdout, stderr io.Writer) *AggregateCommand {
	return &AggregateCommand{
		Func:   "sum",
		Config: NewConfig(),
		CmdIO:  datatable.NewCmdIO(stdin, stdout, stderr),
	}
}

// Run computes and prints the aggregate.
func (cmd *AggregateCommand) Run(ctx context.Context) error {
	if cmd.Path == "" {
		return fmt.Errorf("%w: file required", UsageError)
	}
	if cmd.Decimal && cmd.Column == "" {
		return fmt.Errorf("%w: --decimal requires --column", UsageError)
	}
	t, err := loadTable(ctx, cmd.Config, cmd.Path)
	if err != nil {
		return err
	}

	result, err := cmd.aggregate(t)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Stdout, result)
	return nil
}

func (cmd *AggregateCommand) aggregate(t *datatable.Table) (string, error) {
	fn := strings.ToLower(cmd.Func)
	if cmd.Decimal {
		var get func(*datatable.Table, string) (decimal.Decimal, error)
		switch fn {
		case "min":
			get = (*datatable.Table).MinDecimal
		case "max":
			get = (*datatable.Table).MaxDecimal
		case "sum":
			get = (*datatable.Table).SumDecimal
		case "mean":
			get = (*datatable.Table).MeanDecimal
		default:
			return "", fmt.Errorf("%w: unknown function '%s'", UsageError, cmd.Func)
		}
		v, err := get(t, cmd.Column)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	}

	var (
		i   int64
		f   float64
		err error
	)
	mean := fn == "mean"
	switch {
	case fn == "min" && cmd.Column != "":
		i, err = t.Min(cmd.Column)
	case fn == "min":
		i, err = t.MinAll()
	case fn == "max" && cmd.Column != "":
		i, err = t.Max(cmd.Column)
	case fn == "max":
		i, err = t.MaxAll()
	case fn == "sum" && cmd.Column != "":
		i, err = t.Sum(cmd.Column)
	case fn == "sum":
		i, err = t.SumAll()
	case mean && cmd.Column != "":
		f, err = t.Mean(cmd.Column)
	case mean:
		f, err = t.MeanAll()
	default:
		return "", fmt.Errorf("%w: unknown function '%s'", UsageError, cmd.Func)
	}
	if err != nil {
		return "", err
	}
	if mean {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return strconv.FormatInt(i, 10), nil
}
