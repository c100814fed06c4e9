// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd contains all the datatable subcommand definitions (1 per file).

Each command file has a new*Command function which returns a cobra.Command
wrapping the matching command struct from package ctl. The struct holds the
parsed flags; cobra only fills it in and calls Run.

Options shared by every subcommand live on the root command as persistent
flags and are bound to one ctl.Config, which can also be set from the
environment (DATATABLE_*) or a TOML file given with --config.
*/
package cmd
