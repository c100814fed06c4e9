// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package config reads INI configuration files. Keys are addressed as
// "section.key"; a key with no section prefix lives in the default section.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/featurebasedb/datatable/errors"
	"gopkg.in/ini.v1"
)

const (
	ErrConfigFileNotFound    errors.Code = "ErrConfigFileNotFound"
	ErrConfigParse           errors.Code = "ErrConfigParse"
	ErrConfigKeyNotFound     errors.Code = "ErrConfigKeyNotFound"
	ErrConfigSectionNotFound errors.Code = "ErrConfigSectionNotFound"
	ErrConfigInvalidValue    errors.Code = "ErrConfigInvalidValue"
)

// Config is a parsed INI file. It is safe for concurrent reads.
type Config struct {
	path string
	file *ini.File
}

// Load parses the INI file at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(ErrConfigFileNotFound, "config file '%s' could not be found", path)
		}
		return nil, errors.Wrapf(err, "stat '%s'", path)
	}
	f, err := ini.Load(path)
	if err != nil {
		return nil, errors.Newf(ErrConfigParse, "parsing config '%s': %v", path, err)
	}
	return &Config{path: path, file: f}, nil
}

// Path returns the file the config was read from.
func (c *Config) Path() string { return c.path }

// splitKey splits "section.key" at the last dot.
func splitKey(key string) (section, name string) {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[:i], key[i+1:]
	}
	return ini.DefaultSection, key
}

func (c *Config) key(key string) (*ini.Key, error) {
	section, name := splitKey(key)
	sec, err := c.file.GetSection(section)
	if err != nil {
		return nil, errors.Newf(ErrConfigSectionNotFound, "config section '%s' not found", section)
	}
	if !sec.HasKey(name) {
		return nil, errors.Newf(ErrConfigKeyNotFound, "config key '%s' not found", key)
	}
	return sec.Key(name), nil
}

// Get returns the raw value of key.
func (c *Config) Get(key string) (string, error) {
	k, err := c.key(key)
	if err != nil {
		return "", err
	}
	return k.String(), nil
}

// Optional returns the value of key and whether it is set to something
// other than the empty string.
func (c *Config) Optional(key string) (string, bool) {
	v, err := c.Get(key)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// GetInt returns the value of key parsed as a base-10 integer.
func (c *Config) GetInt(key string) (int, error) {
	v, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.Newf(ErrConfigInvalidValue, "config key '%s': '%s' is not an integer", key, v)
	}
	return n, nil
}

// GetStrings splits the value of key on commas and trims each entry. The
// list ends at the first blank entry.
func (c *Config) GetStrings(key string) ([]string, error) {
	v, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0)
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

// GetInts splits the value of key on commas and parses each entry as an
// integer.
func (c *Config) GetInts(key string) ([]int, error) {
	v, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, s := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, errors.Newf(ErrConfigInvalidValue, "config key '%s': '%s' is not an integer", key, s)
		}
		out = append(out, n)
	}
	return out, nil
}

// SectionCategories returns the key names of section in file order.
func (c *Config) SectionCategories(section string) ([]string, error) {
	sec, err := c.file.GetSection(section)
	if err != nil {
		return nil, errors.Newf(ErrConfigSectionNotFound, "config section '%s' not found", section)
	}
	return sec.KeyStrings(), nil
}
