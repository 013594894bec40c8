// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rockit/covers/common"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestMessageCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"message", "7"}, "error: covers are not connected\n"},
		{[]string{"message", "0"}, "error: Unknown error code 0\n"},
		{[]string{"message", "42"}, "error: Unknown error code 42\n"},
		{[]string{"message", "--", "-101"}, "error: unable to communicate with covers daemon\n"},
	}
	for _, tt := range tests {
		out, err := run(t, tt.args...)
		require.NoError(t, err, "args %v", tt.args)
		require.Equal(t, tt.want, out)
	}

	_, err := run(t, "message", "seven")
	require.ErrorContains(t, err, "invalid code")
}

func TestMessageExitStatus(t *testing.T) {
	out, err := run(t, "message", "--exit", "7")
	require.Error(t, err)
	require.Equal(t, "", out)
	require.Equal(t, 7, common.ExitCode(err))
	require.Equal(t, "error: covers are not connected", err.Error())

	_, err = run(t, "message", "--exit", "--", "-100")
	require.Equal(t, 156, common.ExitCode(err))

	_, err = run(t, "message", "--exit", "0")
	require.NoError(t, err)
}

func TestLabelCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"label", "2"}, "OPEN\n"},
		{[]string{"label", "0"}, "OFFLINE\n"},
		{[]string{"label", "9"}, "UNKNOWN\n"},
		{[]string{"label", "2", "--formatting", "--raw"}, "[b][green]OPEN[/green][/b]\n"},
		{[]string{"label", "9", "-F", "--raw"}, "[b][red]UNKNOWN[/red][/b]\n"},
		{[]string{"label", "4", "-F", "--color", "never"}, "OPENING\n"},
	}
	for _, tt := range tests {
		out, err := run(t, tt.args...)
		require.NoError(t, err, "args %v", tt.args)
		require.Equal(t, tt.want, out, "args %v", tt.args)
	}

	out, err := run(t, "label", "5", "-F", "--color", "always")
	require.NoError(t, err)
	require.Contains(t, out, "CLOSING")
	require.Contains(t, out, "\x1b[")

	_, err = run(t, "label", "2", "--color", "rainbow")
	require.Error(t, err)
}

func TestLabelFormattingFromConfig(t *testing.T) {
	f := filepath.Join(t.TempDir(), "covers.toml")
	require.NoError(t, os.WriteFile(f, []byte("[Display]\nFormatting = true\nColor = \"never\"\n"), 0600))

	out, err := run(t, "-f", f, "label", "3")
	require.NoError(t, err)
	require.Equal(t, "CLOSED\n", out)

	out, err = run(t, "-f", f, "label", "3", "--raw")
	require.NoError(t, err)
	require.Equal(t, "[b][red]CLOSED[/red][/b]\n", out)

	out, err = run(t, "-f", f, "label", "3", "--raw", "--formatting=false")
	require.NoError(t, err)
	require.Equal(t, "CLOSED\n", out)

	_, err = run(t, "-f", filepath.Join(t.TempDir(), "missing.toml"), "label", "3")
	require.ErrorContains(t, err, "failed to load config file")
}

func TestTableCommand(t *testing.T) {
	out, err := run(t, "table")
	require.NoError(t, err)
	require.Contains(t, out, "NotConnected")
	require.Contains(t, out, "error: covers are not connected")
	require.Contains(t, out, "Closing")
	require.Contains(t, out, "CLOSING")
}

func TestReplyCommand(t *testing.T) {
	dir := t.TempDir()
	prom := filepath.Join(dir, "covers.prom")
	cfgFile := filepath.Join(dir, "covers.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("[Metrics]\nTextfilePath = \""+prom+"\"\n"), 0600))

	out, err := run(t, "-f", cfgFile, "reply", "OPENING\r\n")
	require.NoError(t, err)
	require.Equal(t, "OPENING\n", out)

	b, err := os.ReadFile(prom)
	require.NoError(t, err)
	require.Contains(t, string(b), `covers_state{state="OPENING"} 1`)

	out, err = run(t, "reply", "$")
	require.NoError(t, err)
	require.Equal(t, "command accepted\n", out)

	_, err = run(t, "reply", "?")
	require.Equal(t, 1, common.ExitCode(err))

	_, err = run(t, "reply", "AJAR")
	require.ErrorContains(t, err, "invalid reply")
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "O")
	require.NoError(t, err)
	require.Equal(t, "O -> $\nt=0 STOPPED\nt=1 OPENING\nt=31 OPEN\n", out)

	out, err = run(t, "simulate", "--initial", "OPEN", "--ticks", "3", "C?")
	require.NoError(t, err)
	require.Equal(t, "C -> $\n? -> OPEN\nt=0 OPEN\nt=1 STOPPED\nt=2 CLOSING\n", out)

	_, err = run(t, "simulate", "X")
	require.ErrorContains(t, err, "invalid command")

	for _, initial := range []string{"AJAR", "OFFLINE", "OPENING", "CLOSING"} {
		_, err = run(t, "simulate", "--initial", initial, "--ticks", "1", "?")
		require.ErrorContains(t, err, "invalid state", "initial %v", initial)
	}

	out, err = run(t, "simulate", "--initial", "CLOSED", "--ticks", "0", "?")
	require.NoError(t, err)
	require.Equal(t, "? -> CLOSED\nt=0 CLOSED\n", out)
}

func TestNegativeCodes(t *testing.T) {
	out, err := run(t, "message", "--", "-100")
	require.NoError(t, err)
	require.Equal(t, "error: terminated by user\n", out)

	_, err = run(t, "message", "-100")
	require.ErrorContains(t, err, "unknown shorthand flag")

	cmd := newRootCommand()
	msg, _, err := cmd.Find([]string{"message"})
	require.NoError(t, err)
	require.Contains(t, msg.Use, "--")
	require.Contains(t, msg.Long, `must follow "--"`)
}

func TestLogFileClosed(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "covers.toml")
	logFile := filepath.Join(dir, "covers.log")
	require.NoError(t, os.WriteFile(cfgFile, []byte("[Logging]\nFile = \""+logFile+"\"\n"), 0600))

	for _, args := range [][]string{
		{"-f", cfgFile, "label", "2"},
		{"-f", cfgFile, "label", "two"},
		{"-f", cfgFile, "reply", "?"},
	} {
		var out bytes.Buffer
		cmd, a := newCommandTree()
		cmd.SetArgs(args)
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		_ = cmd.Execute()

		require.NotNil(t, a.logBackend, "args %v", args)
		require.ErrorIs(t, a.logBackend.Close(), os.ErrClosed, "args %v", args)
	}
}
