// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/ctl"
	"github.com/featurebasedb/datatable/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix prefixes the environment variable for every flag, e.g.
// DATATABLE_DELIMITER.
const envPrefix = "DATATABLE"

func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	conf := ctl.NewConfig()
	rc := &cobra.Command{
		Use:   "datatable",
		Short: "datatable loads, joins and summarizes delimited files.",
		Long: `datatable loads delimited text files into in-memory tables and runs
relational operations over them: projection, selection, joins and
aggregation. Files can be converted to and from parquet, and queried
with SQL through a temporary SQLite database.

` + datatable.VersionInfo() + "\n",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			return setAllConfig(v, cmd.Flags())
		},
	}
	flags := rc.PersistentFlags()
	flags.StringP("config", "c", "", "Configuration file to read from.")
	flags.StringVarP(&conf.Delimiter, "delimiter", "d", conf.Delimiter, "Field delimiter, a single character.")
	flags.BoolVar(&conf.NoHeader, "no-header", conf.NoHeader, "Treat the first line as data; columns are named 0, 1, ...")
	flags.BoolVar(&conf.Quoted, "quoted", conf.Quoted, "Parse RFC 4180 quoted fields.")
	flags.BoolVar(&conf.PadRagged, "pad-ragged", conf.PadRagged, "Pad short lines with empty cells instead of failing.")
	flags.StringVar(&conf.TempDir, "temp-dir", conf.TempDir, "Directory for temporary databases.")
	flags.BoolVarP(&conf.Verbose, "verbose", "v", conf.Verbose, "Enable debug logging.")

	rc.AddCommand(newHeadCommand(stdin, stdout, stderr, conf, false))
	rc.AddCommand(newHeadCommand(stdin, stdout, stderr, conf, true))
	rc.AddCommand(newJoinCommand(stdin, stdout, stderr, conf))
	rc.AddCommand(newAggregateCommand(stdin, stdout, stderr, conf))
	rc.AddCommand(newConvertCommand(stdin, stdout, stderr, conf))
	rc.AddCommand(newQueryCommand(stdin, stdout, stderr, conf))
	rc.AddCommand(newParquetInfoCommand(stdin, stdout, stderr, conf))
	rc.AddCommand(newConfigCommand(stdin, stdout, stderr, conf))
	rc.AddCommand(newGenerateConfigCommand(stdin, stdout, stderr))

	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc
}

// setAllConfig takes a FlagSet to be the definition of all configuration
// options, as well as their defaults. It then reads from the command line, the
// environment, and a config file (if specified), and applies the configuration
// in that priority order. Since each flag in the set contains a pointer to
// where its value should be stored, setAllConfig can directly modify the value
// of each config variable.
//
// setAllConfig looks for environment variables which are capitalized versions
// of the flag names with dashes replaced by underscores, and prefixed with
// envPrefix plus an underscore.
func setAllConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	// add cmd line flag def to viper
	err := v.BindPFlags(flags)
	if err != nil {
		return err
	}

	// add env to viper
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	c := v.GetString("config")
	validTags := make(map[string]bool)
	flags.VisitAll(func(f *pflag.Flag) {
		validTags[f.Name] = true
	})

	// add config file to viper
	if c != "" {
		v.SetConfigFile(c)
		v.SetConfigType("toml")
		err := v.ReadInConfig()
		if err != nil {
			return fmt.Errorf("error reading configuration file '%s': %v", c, err)
		}

		for _, key := range v.AllKeys() {
			if _, ok := validTags[key]; !ok {
				return fmt.Errorf("invalid option in configuration file: %v", key)
			}
		}
	}

	// set all values from viper
	var flagErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if flagErr != nil {
			return
		}
		var value string
		if f.Value.Type() == "stringSlice" {
			// v.GetString returns "" for a slice read from a config file, so
			// join the elements the way a flag would carry them.
			vss := v.GetStringSlice(f.Name)
			value = strings.Join(vss, ",")
		} else {
			value = v.GetString(f.Name)
		}

		if f.Changed {
			// Already set on the command line, which wins. Setting it again
			// would append to slice values rather than replace them.
			return
		}
		flagErr = f.Value.Set(value)
	})
	return flagErr
}

// considerUsageError prints the command's usage when err was caused by bad
// arguments.
func considerUsageError(cmd *cobra.Command, err error) error {
	if errors.Is(err, ctl.ErrUsage) {
		_ = cmd.Usage()
	}
	return err
}
