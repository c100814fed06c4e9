// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/featurebasedb/datatable/logger"
)

func TestStandardLogger_Verbosity(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewStandardLogger(&buf)
	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.WithPrefix("csv: ").Warnf("careful")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug message leaked at info verbosity: %q", out)
	}
	if !strings.Contains(out, "INFO:  shown 2") {
		t.Fatalf("missing info line: %q", out)
	}
	if !strings.Contains(out, "csv: WARN:  careful") {
		t.Fatalf("missing prefixed warning: %q", out)
	}
}

func TestVerboseLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger.NewVerboseLogger(&buf).Debugf("loaded %s", "x.csv")
	if !strings.Contains(buf.String(), "DEBUG: loaded x.csv") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestBufferLogger(t *testing.T) {
	b := logger.NewBufferLogger()
	b.Errorf("bad %s", "row")
	b.Debugf("dropped")
	if got, exp := b.String(), "ERROR: bad row\n"; got != exp {
		t.Fatalf("got %q, want %q", got, exp)
	}
}
