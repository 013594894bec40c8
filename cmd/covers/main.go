// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

// covers - A CLI tool for interpreting mirror covers status codes.
//
// covers turns the numeric command results and cover states reported by
// the covers daemon and controller into human readable, optionally
// colored, labels.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/op/go-logging.v1"

	"github.com/rockit/covers/common"
	"github.com/rockit/covers/config"
	"github.com/rockit/covers/internal/instrument"
	"github.com/rockit/covers/log"
	"github.com/rockit/covers/markup"
)

func main() {
	common.ExecuteWithFang(newRootCommand())
}

// app is the state shared by all subcommands once the configuration has
// been loaded.
type app struct {
	configFile string
	color      string
	logLevel   string

	cfg        *config.Config
	logBackend *log.Backend
	log        *logging.Logger
	metrics    *instrument.Exporter
}

func (a *app) load() error {
	cfg, err := config.LoadFile(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config file '%v': %w", a.configFile, err)
	}
	if a.color != "" {
		cfg.Display.Color = a.color
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}

	backend, err := log.NewFromConfig(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logBackend = backend
	a.log = backend.GetLogger("covers")
	a.metrics = instrument.New()
	a.log.Debugf("loaded configuration from '%v'", a.configFile)
	return nil
}

func (a *app) close() {
	if a.logBackend != nil {
		_ = a.logBackend.Close()
	}
}

// run wraps a subcommand so that the log backend is closed however the
// command returns.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.close()
		return fn(cmd, args)
	}
}

// printLabel writes a state label, rendering markup when formatting is on.
func (a *app) printLabel(w io.Writer, label string, formatting bool) error {
	if !formatting {
		_, err := fmt.Fprintln(w, label)
		return err
	}
	return markup.Fprintln(markup.Writer(w, a.cfg.Display.Mode()), label)
}

// exportMetrics writes the textfile metrics if the export is configured.
func (a *app) exportMetrics() error {
	path := a.cfg.Metrics.TextfilePath
	if path == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to write metrics to '%v': %w", path, err)
	}
	a.log.Debugf("wrote metrics to '%v'", path)
	return nil
}

func newRootCommand() *cobra.Command {
	cmd, _ := newCommandTree()
	return cmd
}

func newCommandTree() (*cobra.Command, *app) {
	a := new(app)

	cmd := &cobra.Command{
		Use:   "covers",
		Short: "Mirror covers status tool",
		Long: `A CLI tool for the observatory mirror covers.

covers translates the numeric command status codes returned by the covers
daemon and the cover states reported by the controller into human readable
labels. Labels can be printed plain, as bracket markup for other status
displays, or rendered with terminal colors.

It also includes a model of the controller firmware for trying out
command sequences without hardware.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "f", "", "configuration file (TOML format)")
	cmd.PersistentFlags().StringVar(&a.color, "color", "", "color output: auto, always or never")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "logging level (DEBUG, INFO, NOTICE, WARNING, ERROR)")

	cmd.AddCommand(newMessageCommand(a))
	cmd.AddCommand(newLabelCommand(a))
	cmd.AddCommand(newTableCommand(a))
	cmd.AddCommand(newReplyCommand(a))
	cmd.AddCommand(newSimulateCommand(a))

	return cmd, a
}
