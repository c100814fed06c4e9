// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable

import (
	"runtime"
	"time"
)

// Set at link time with -ldflags "-X".
var (
	Version   string
	Commit    string
	BuildTime string
	GoVersion string = runtime.Version()
)

// VersionInfo returns a one-line description of the build.
func VersionInfo() string {
	version := Version
	if version == "" {
		version = "v0.x"
	}
	buildTime := BuildTime
	if buildTime != "" {
		// Normalize the build time into a friendly format in the user's time zone.
		if t, err := time.Parse("2006-01-02T15:04:05+0000", BuildTime); err == nil {
			buildTime = t.Local().Format("Jan _2 2006 3:04PM")
		}
	}
	suffix := " " + version
	switch {
	case Commit != "" && buildTime != "":
		suffix += " (" + buildTime + ", " + Commit + ")"
	case Commit != "":
		suffix += " (" + Commit + ")"
	case buildTime != "":
		suffix += " (" + buildTime + ")"
	}
	return "datatable" + suffix + " " + GoVersion
}
