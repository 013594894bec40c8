// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rockit/covers/common"
	"github.com/rockit/covers/constants"
	"github.com/rockit/covers/controller"
)

func parseCode(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid code '%v'", s)
	}
	return n, nil
}

// newMessageCommand creates the message subcommand
func newMessageCommand(a *app) *cobra.Command {
	var exit bool

	cmd := &cobra.Command{
		Use:   "message [--] CODE",
		Short: "Describe a command status code",
		Long: `Print the human readable message for a command status code.

With --exit the message is reported as an error and the code becomes the
process exit status, so that shell scripts can propagate daemon results.

Negative codes such as -100 look like flags and must follow "--".`,
		Example: `  # Describe a status code
  covers message 7

  # Describe a client-side status code
  covers message -- -100

  # Propagate a status code as the exit status
  covers message --exit -- -101`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0])
			if err != nil {
				return err
			}
			status := constants.CommandStatus(code)
			a.log.Debugf("message for %v", status)
			a.metrics.SetCommandStatus(status)
			if err := a.exportMetrics(); err != nil {
				return err
			}

			if exit {
				if status == constants.Succeeded {
					return nil
				}
				return &common.ExitError{Status: status}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), constants.CommandStatusMessage(code))
			return err
		}),
	}

	cmd.Flags().BoolVar(&exit, "exit", false, "exit with the status code instead of printing the message")

	return cmd
}

// newLabelCommand creates the label subcommand
func newLabelCommand(a *app) *cobra.Command {
	var formatting, raw bool

	cmd := &cobra.Command{
		Use:   "label STATE",
		Short: "Describe a cover state",
		Long: `Print the label for a numeric cover state.

Unknown states print UNKNOWN. With formatting enabled the label is colored
according to the state; --raw prints the bracket markup instead of
rendering it.`,
		Example: `  # Plain label
  covers label 2

  # Colored label
  covers label 2 --formatting

  # Bracket markup for another display
  covers label 4 --formatting --raw`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			n, err := parseCode(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("formatting") {
				formatting = a.cfg.Display.Formatting
			}
			label := constants.CoversStateLabel(n, formatting)
			if raw {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), label)
				return err
			}
			return a.printLabel(cmd.OutOrStdout(), label, formatting)
		}),
	}

	cmd.Flags().BoolVarP(&formatting, "formatting", "F", false, "enable bold/color formatting")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markup tags without rendering them")

	return cmd
}

// newTableCommand creates the table subcommand
func newTableCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "List all known status codes and cover states",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(w, "Command status codes:"); err != nil {
				return err
			}
			for _, s := range constants.CommandStatuses() {
				msg := "ok"
				if s != constants.Succeeded {
					msg = s.Message()
				}
				if _, err := fmt.Fprintf(w, "  %5d  %-20s %s\n", int(s), s, msg); err != nil {
					return err
				}
			}

			if _, err := fmt.Fprintln(w, "Cover states:"); err != nil {
				return err
			}
			for _, s := range constants.CoversStates() {
				label := s.Label(a.cfg.Display.Formatting)
				line := fmt.Sprintf("  %5d  %-20s %s", int(s), s, label)
				if err := a.printLabel(w, line, a.cfg.Display.Formatting); err != nil {
					return err
				}
			}
			return nil
		}),
	}
	return cmd
}

// newReplyCommand creates the reply subcommand
func newReplyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reply LINE",
		Short: "Interpret a line sent by the covers controller",
		Long: `Parse a reply line from the covers controller and print what it means.

State replies update the exported covers_state metric when a metrics
textfile is configured. A rejected command exits with the Failed status.`,
		Example: `  # Interpret a state reply
  covers reply OPENING

  # Record the state for node_exporter
  covers -f covers.toml reply CLOSED`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			reply, err := controller.ParseReply(args[0])
			if err != nil {
				return fmt.Errorf("invalid argument: %w", err)
			}

			w := cmd.OutOrStdout()
			switch reply.Kind {
			case controller.Ack:
				_, err = fmt.Fprintln(w, "command accepted")
				return err
			case controller.Nack:
				a.log.Warning("controller rejected the command")
				return &common.ExitError{Status: constants.Failed}
			}

			a.metrics.SetState(reply.State)
			if err := a.exportMetrics(); err != nil {
				return err
			}
			formatting := a.cfg.Display.Formatting
			return a.printLabel(w, reply.State.Label(formatting), formatting)
		}),
	}
	return cmd
}

// newSimulateCommand creates the simulate subcommand
func newSimulateCommand(a *app) *cobra.Command {
	var (
		initial string
		ticks   int
	)

	cmd := &cobra.Command{
		Use:   "simulate COMMANDS",
		Short: "Run commands against a model of the controller firmware",
		Long: `Feed a sequence of controller commands (O, C, S or ?) to a model of
the controller firmware, then advance its one second timer and print every
state change.`,
		Example: `  # Open the covers from stopped
  covers simulate O

  # Start open, then close for ten seconds
  covers simulate --initial OPEN --ticks 10 C`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			start, ok := constants.ParseCoversState(initial)
			if !ok || !controller.Persistable(start) {
				return fmt.Errorf("invalid state '%v'", initial)
			}
			if ticks < 0 {
				return errors.New("invalid argument: ticks must not be negative")
			}

			f := controller.NewFirmware(start)
			w := cmd.OutOrStdout()
			formatting := a.cfg.Display.Formatting

			for _, c := range []byte(args[0]) {
				if _, err := controller.ParseCommand(c); err != nil {
					return fmt.Errorf("invalid argument: %w", err)
				}
				reply := strings.TrimSpace(f.Write([]byte{c, '\n'}))
				a.log.Debugf("sent %q, controller replied %q", c, reply)
				if _, err := fmt.Fprintf(w, "%c -> %s\n", c, reply); err != nil {
					return err
				}
			}

			last := f.State()
			if err := a.printLabel(w, fmt.Sprintf("t=%d %s", 0, last.Label(formatting)), formatting); err != nil {
				return err
			}
			for t := 1; t <= ticks; t++ {
				f.Tick()
				if s := f.State(); s != last {
					last = s
					if err := a.printLabel(w, fmt.Sprintf("t=%d %s", t, s.Label(formatting)), formatting); err != nil {
						return err
					}
				}
			}

			a.metrics.SetState(last)
			return a.exportMetrics()
		}),
	}

	cmd.Flags().StringVar(&initial, "initial", "STOPPED", "persisted state the firmware starts in (STOPPED, OPEN or CLOSED)")
	cmd.Flags().IntVarP(&ticks, "ticks", "t", controller.ActiveSeconds+2, "number of seconds to simulate")

	return cmd
}
