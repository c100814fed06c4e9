// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import (
	"io"

	"github.com/featurebasedb/datatable/logger"
)

// CmdIO holds standard unix inputs and outputs.
type CmdIO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	logger logger.Logger
}

// NewCmdIO returns a new instance of CmdIO with inputs and outputs set to the
// arguments. Log output goes to stderr.
func NewCmdIO(stdin io.Reader, stdout, stderr io.Writer) *CmdIO {
	return &CmdIO{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		logger: logger.NewStandardLogger(stderr),
	}
}

// SetVerbose switches the logger to one that also emits debug output.
func (c *CmdIO) SetVerbose(verbose bool) {
	if verbose {
		c.logger = logger.NewVerboseLogger(c.Stderr)
	} else {
		c.logger = logger.NewStandardLogger(c.Stderr)
	}
}

func (c *CmdIO) Logger() logger.Logger {
	return c.logger
}
