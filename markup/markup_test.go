// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

package markup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rockit/covers/constants"
)

func TestStripStateLabels(t *testing.T) {
	t.Parallel()

	for _, s := range append(constants.CoversStates(), constants.CoversState(9)) {
		require.Equal(t, s.Label(false), Strip(s.Label(true)))
	}
}

func TestStripLeavesUnknownBrackets(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[blue]x[/blue]", Strip("[blue]x[/blue]"))
	require.Equal(t, "[x", Strip("[[b]x"))
	require.Equal(t, "a]b[", Strip("a]b["))
	require.Equal(t, "", Strip(""))
}

func TestRenderStyles(t *testing.T) {
	t.Parallel()

	out := Render("[b][green]OPEN[/green][/b]")
	require.Contains(t, out, "OPEN")
	require.Contains(t, out, "\x1b[")
	require.NotContains(t, out, "[green]")
	require.NotContains(t, out, "[/b]")
}

func TestRenderThroughPlainWriter(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"[b][green]OPEN[/green][/b]":       "OPEN",
		"[b][red]UNKNOWN[/red][/b]":        "UNKNOWN",
		"covers: [yellow]OPENING[/yellow]": "covers: OPENING",
		"a[/b]":                            "a[/b]",
	}
	for in, want := range cases {
		var buf bytes.Buffer
		w := Writer(&buf, ModeNever)
		require.NoError(t, Fprintln(w, in))
		require.Equal(t, want+"\n", buf.String(), "input %q", in)
	}
}

func TestRenderThroughColorWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := Writer(&buf, ModeAlways)
	require.NoError(t, Fprintln(w, constants.Opening.Label(true)))
	require.True(t, strings.Contains(buf.String(), "\x1b["))
	require.Contains(t, buf.String(), "OPENING")
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Mode{
		"":        ModeAuto,
		"auto":    ModeAuto,
		"Always":  ModeAlways,
		" never ": ModeNever,
	} {
		m, err := ParseMode(in)
		require.NoError(t, err)
		require.Equal(t, want, m)
	}

	_, err := ParseMode("sometimes")
	require.ErrorIs(t, err, ErrInvalidMode)
}
