// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

package controller

import (
	"github.com/rockit/covers/constants"
)

const (
	// ActiveSeconds is how long the actuator relay is powered for a
	// single open or close movement.
	ActiveSeconds = 30

	// BufferSize is the size of the firmware command buffer.
	BufferSize = 16
)

// Firmware is a software model of the covers controller firmware. Input
// bytes are fed one at a time and Tick stands in for the once per second
// timer interrupt. It is not safe for concurrent use.
type Firmware struct {
	requested constants.CoversState
	current   constants.CoversState
	counter   int

	openRelay  bool
	closeRelay bool

	buf [BufferSize]byte
	n   int
}

// Persistable returns true if s can be stored as the requested state in
// the controller EEPROM.
func Persistable(s constants.CoversState) bool {
	switch s {
	case constants.Stopped, constants.Open, constants.Closed:
		return true
	default:
		return false
	}
}

// NewFirmware returns a Firmware restored to a persisted requested state.
// A state that is not Persistable starts stopped.
func NewFirmware(initial constants.CoversState) *Firmware {
	if !Persistable(initial) {
		initial = constants.Stopped
	}
	return &Firmware{
		requested: initial,
		current:   initial,
	}
}

// Feed consumes one input byte. When the byte terminates a non-empty
// command line the line is interpreted and the reply returned.
func (f *Firmware) Feed(b byte) (string, bool) {
	if b == '\r' || b == '\n' {
		if f.n == 0 {
			return "", false
		}
		reply := f.execute(f.buf[:f.n])
		f.n = 0
		return reply, true
	}

	// Overflowing bytes overwrite the last slot; the line is rejected
	// either way since it is longer than one command.
	if f.n < BufferSize {
		f.buf[f.n] = b
		f.n++
	} else {
		f.buf[BufferSize-1] = b
	}
	return "", false
}

// Write feeds every byte of p and returns the concatenated replies.
func (f *Firmware) Write(p []byte) string {
	var out string
	for _, b := range p {
		if reply, ok := f.Feed(b); ok {
			out += reply
		}
	}
	return out
}

func (f *Firmware) execute(line []byte) string {
	if len(line) != 1 {
		return NackReply + lineEnding
	}
	cmd, err := ParseCommand(line[0])
	if err != nil {
		return NackReply + lineEnding
	}
	switch cmd {
	case Query:
		return statusReply(f.State())
	case OpenCovers:
		f.requested = constants.Open
	case CloseCovers:
		f.requested = constants.Closed
	case StopCovers:
		f.requested = constants.Stopped
	}
	return AckReply + lineEnding
}

// Tick advances the firmware by one second.
func (f *Firmware) Tick() {
	if f.counter > 0 {
		f.counter--
		if f.counter == 0 {
			f.relaysOff()
		}
	}

	if f.requested == f.current {
		return
	}

	// A stopped controller is required before driving the other relay.
	if f.current != constants.Stopped {
		f.relaysOff()
		f.current = constants.Stopped
		f.counter = 0
		return
	}

	switch f.requested {
	case constants.Open:
		f.openRelay = true
		f.current = constants.Open
		f.counter = ActiveSeconds
	case constants.Closed:
		f.closeRelay = true
		f.current = constants.Closed
		f.counter = ActiveSeconds
	}
}

func (f *Firmware) relaysOff() {
	f.openRelay = false
	f.closeRelay = false
}

// State returns the state reported in reply to a Query.
func (f *Firmware) State() constants.CoversState {
	if f.counter > 0 {
		switch f.current {
		case constants.Open:
			return constants.Opening
		case constants.Closed:
			return constants.Closing
		}
	}
	return f.current
}

// Requested returns the most recently requested state.
func (f *Firmware) Requested() constants.CoversState {
	return f.requested
}

// Relays returns whether the open and close relays are energised.
func (f *Firmware) Relays() (openOn, closeOn bool) {
	return f.openRelay, f.closeRelay
}
