// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

// Package common provides shared utilities for the covers CLI tools.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/rockit/covers/constants"
)

// ExitError carries a covers command status out of a cobra command so that
// it becomes the process exit status.
type ExitError struct {
	Status constants.CommandStatus
}

func (e *ExitError) Error() string {
	return e.Status.Message()
}

// ExitCode returns the process exit status for err: 0 for nil, the command
// status for an ExitError and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return constants.ExitStatus(int(exitErr.Status))
	}
	return 1
}

// Execute runs cmd through fang and returns the process exit status.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := fang.Execute(
		ctx,
		cmd,
		fang.WithVersion(versioninfo.Short()),
		fang.WithErrorHandler(ErrorHandlerWithUsage(cmd)),
	)
	return ExitCode(err)
}

// ExecuteWithFang executes cmd and exits the process with its status.
func ExecuteWithFang(cmd *cobra.Command) {
	os.Exit(Execute(context.Background(), cmd))
}

// ErrorHandlerWithUsage creates an error handler that prints usage help for
// CLI argument errors. Command status errors are reported as a single line,
// since the message already describes what went wrong.
func ErrorHandlerWithUsage(cmd *cobra.Command) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			_, _ = fmt.Fprintln(w, styles.ErrorText.UnsetWidth().Render(exitErr.Error()))
			return
		}

		_, _ = fmt.Fprintln(w, styles.ErrorHeader.String())
		_, _ = fmt.Fprintln(w, styles.ErrorText.Render(err.Error()+"."))
		_, _ = fmt.Fprintln(w)

		if isUsageError(err) {
			if helpFunc := cmd.HelpFunc(); helpFunc != nil {
				helpFunc(cmd, []string{})
			}
			return
		}

		_, _ = fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render("Try"),
			styles.Program.Flag.Render("--help"),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
		))
		_, _ = fmt.Fprintln(w)
	}
}

// isUsageError determines if an error is related to CLI usage.
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"invalid code",
		"invalid state",
		"required flag",
		"accepts",
		"arg(s), received",
		"failed to load config file",
	} {
		if strings.Contains(s, prefix) {
			return true
		}
	}
	return false
}
