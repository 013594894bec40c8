// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

// Package markup renders the bracket tag convention used for cover state
// labels, e.g. "[b][green]OPEN[/green][/b]", to terminal output.
package markup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
)

// ErrInvalidMode is returned by ParseMode for unrecognised color modes.
var ErrInvalidMode = errors.New("markup: invalid color mode")

// Mode selects how styled output is written.
type Mode string

const (
	// ModeAuto detects color support from the output and environment.
	ModeAuto Mode = "auto"
	// ModeAlways forces ANSI colors.
	ModeAlways Mode = "always"
	// ModeNever strips all escape sequences.
	ModeNever Mode = "never"
)

// ParseMode parses a color mode, the empty string meaning ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeAlways, ModeNever:
		return m, nil
	default:
		return "", fmt.Errorf("%w: '%v'", ErrInvalidMode, s)
	}
}

// ANSI palette indices for the tag colors.
var palette = map[string]string{
	"red":    "1",
	"green":  "2",
	"yellow": "3",
}

const boldTag = "b"

type token struct {
	text    string
	tag     string
	closing bool
}

// tokenize splits s into text runs and recognised tags. Brackets that do
// not form a recognised tag are kept as text.
func tokenize(s string) []token {
	var (
		toks []token
		buf  strings.Builder
	)
	flush := func() {
		if buf.Len() > 0 {
			toks = append(toks, token{text: buf.String()})
			buf.Reset()
		}
	}
	for len(s) > 0 {
		if s[0] == '[' {
			if end := strings.IndexByte(s, ']'); end > 0 {
				name := s[1:end]
				closing := strings.HasPrefix(name, "/")
				name = strings.TrimPrefix(name, "/")
				if _, ok := palette[name]; ok || name == boldTag {
					flush()
					toks = append(toks, token{tag: name, closing: closing})
					s = s[end+1:]
					continue
				}
			}
		}
		buf.WriteByte(s[0])
		s = s[1:]
	}
	flush()
	return toks
}

// Strip removes all recognised tags from s.
func Strip(s string) string {
	var b strings.Builder
	for _, t := range tokenize(s) {
		b.WriteString(t.text)
	}
	return b.String()
}

// Render converts recognised tags in s into ANSI styling. A closing tag
// that does not match the innermost open tag is written literally.
func Render(s string) string {
	var (
		b     strings.Builder
		stack []string
	)
	for _, t := range tokenize(s) {
		switch {
		case t.tag == "":
			b.WriteString(styleFor(stack).Render(t.text))
		case !t.closing:
			stack = append(stack, t.tag)
		case len(stack) > 0 && stack[len(stack)-1] == t.tag:
			stack = stack[:len(stack)-1]
		default:
			b.WriteString(styleFor(stack).Render("[/" + t.tag + "]"))
		}
	}
	return b.String()
}

func styleFor(stack []string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, tag := range stack {
		if tag == boldTag {
			style = style.Bold(true)
			continue
		}
		style = style.Foreground(lipgloss.Color(palette[tag]))
	}
	return style
}

// Writer wraps w so that escape sequences are downsampled to what the
// selected mode allows.
func Writer(w io.Writer, mode Mode) io.Writer {
	cw := colorprofile.NewWriter(w, os.Environ())
	switch mode {
	case ModeAlways:
		cw.Profile = colorprofile.ANSI
	case ModeNever:
		cw.Profile = colorprofile.NoTTY
	}
	return cw
}

// Fprintln renders s and writes it, followed by a newline, to w.
func Fprintln(w io.Writer, s string) error {
	_, err := io.WriteString(w, Render(s)+"\n")
	return err
}
