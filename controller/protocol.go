// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

// Package controller models the serial command set of the covers controller
// board and the behaviour of its firmware.
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rockit/covers/constants"
)

var (
	// ErrInvalidCommand is returned when parsing an unknown command byte.
	ErrInvalidCommand = errors.New("controller: invalid command")

	// ErrInvalidReply is returned when a reply line is not understood.
	ErrInvalidReply = errors.New("controller: invalid reply")
)

// Command is a single byte controller command.
type Command byte

const (
	// Query asks the controller for its state.
	Query Command = '?'
	// OpenCovers requests the covers to open.
	OpenCovers Command = 'O'
	// CloseCovers requests the covers to close.
	CloseCovers Command = 'C'
	// StopCovers requests the covers to stop.
	StopCovers Command = 'S'
)

// Reply strings sent by the controller, without the line terminator.
const (
	AckReply  = "$"
	NackReply = "?"

	lineEnding = "\r\n"
)

// ParseCommand converts a byte into a Command.
func ParseCommand(b byte) (Command, error) {
	switch c := Command(b); c {
	case Query, OpenCovers, CloseCovers, StopCovers:
		return c, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCommand, b)
	}
}

// Bytes returns the command as a newline terminated line.
func (c Command) Bytes() []byte {
	return []byte{byte(c), '\n'}
}

func (c Command) String() string {
	switch c {
	case Query:
		return "query"
	case OpenCovers:
		return "open"
	case CloseCovers:
		return "close"
	case StopCovers:
		return "stop"
	default:
		return fmt.Sprintf("Command(%q)", byte(c))
	}
}

// ReplyKind distinguishes the kinds of controller reply.
type ReplyKind int

const (
	// Ack means the command was accepted.
	Ack ReplyKind = iota
	// Nack means the command was rejected.
	Nack
	// Status carries the controller state in response to a Query.
	Status
)

// Reply is a parsed controller reply line.
type Reply struct {
	Kind  ReplyKind
	State constants.CoversState
}

// The controller never reports OFFLINE; that state belongs to the daemon.
func reportable(s constants.CoversState) bool {
	return s.Valid() && s != constants.Disabled
}

// ParseReply parses a single controller reply line. Surrounding whitespace,
// including the line terminator, is ignored.
func ParseReply(line string) (Reply, error) {
	line = strings.TrimSpace(line)
	switch line {
	case AckReply:
		return Reply{Kind: Ack}, nil
	case NackReply:
		return Reply{Kind: Nack}, nil
	}
	if s, ok := constants.ParseCoversState(line); ok && reportable(s) {
		return Reply{Kind: Status, State: s}, nil
	}
	return Reply{}, fmt.Errorf("%w: %q", ErrInvalidReply, line)
}

func statusReply(s constants.CoversState) string {
	return s.Label(false) + lineEnding
}
