// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

// Package config provides the covers command line tool configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rockit/covers/markup"
)

const (
	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "NOTICE"
)

// DefaultLogging returns the default logging configuration
func DefaultLogging() Logging {
	return Logging{
		Disable: false,
		File:    "",
		Level:   DefaultLogLevel,
	}
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stderr will be used.
	File string

	// Level specifies the log level.
	Level string
}

// Validate validates the logging configuration
func (lCfg *Logging) Validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = DefaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	lCfg.Level = lvl // Force uppercase.
	return nil
}

// Display controls how labels are printed.
type Display struct {
	// Formatting enables bold/color markup on state labels.
	Formatting bool

	// Color is one of "auto", "always" or "never".
	Color string
}

// Validate validates the display configuration.
func (dCfg *Display) Validate() error {
	mode, err := markup.ParseMode(dCfg.Color)
	if err != nil {
		return fmt.Errorf("config: Display: %w", err)
	}
	dCfg.Color = string(mode)
	return nil
}

// Mode returns the parsed color mode.
func (dCfg *Display) Mode() markup.Mode {
	return markup.Mode(dCfg.Color)
}

// Metrics configures the Prometheus textfile export.
type Metrics struct {
	// TextfilePath is where metrics are written, in the node_exporter
	// textfile collector format. Empty disables the export.
	TextfilePath string
}

// Config is the top level configuration.
type Config struct {
	Logging *Logging
	Display *Display
	Metrics *Metrics
}

// DefaultConfig returns a fully populated default configuration.
func DefaultConfig() *Config {
	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		panic("BUG: default config is invalid: " + err.Error())
	}
	return cfg
}

// FixupAndValidate fills in defaults for missing sections and validates
// the rest.
func (c *Config) FixupAndValidate() error {
	if c.Logging == nil {
		defaultLogging := DefaultLogging()
		c.Logging = &defaultLogging
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if c.Display == nil {
		c.Display = new(Display)
	}
	if err := c.Display.Validate(); err != nil {
		return err
	}
	if c.Metrics == nil {
		c.Metrics = new(Metrics)
	}
	return nil
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: Undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config. An empty path yields the default configuration.
func LoadFile(f string) (*Config, error) {
	if f == "" {
		return DefaultConfig(), nil
	}
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}
