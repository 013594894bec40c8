// constants.go - Mirror covers constants and status codes.
// Copyright (C) 2026  The rockit authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package constants contains the status codes and cover states shared by
// the covers daemon and its clients.
package constants

import (
	"fmt"
	"strings"
)

// CommandStatus is the numeric result of a covers command.
type CommandStatus int

const (
	// Succeeded is returned when a command completed.
	Succeeded CommandStatus = 0

	// Failed is the generic command failure.
	Failed CommandStatus = 1

	// Blocked is returned while another command is already running.
	Blocked CommandStatus = 2

	// InvalidControlIP is returned when the command came from a host that
	// is not allowed to control the covers.
	InvalidControlIP CommandStatus = 3

	// NotConnected is returned when the covers controller is not connected.
	NotConnected CommandStatus = 7

	// NotDisconnected is returned when the covers controller is already
	// connected.
	NotDisconnected CommandStatus = 8

	// TerminatedByUser is set by clients when the user cancels a command.
	// The daemon never returns it.
	TerminatedByUser CommandStatus = -100

	// CommunicationFailed is set by clients that could not reach the
	// daemon. The daemon never returns it.
	CommunicationFailed CommandStatus = -101
)

var commandStatuses = []CommandStatus{
	Succeeded,
	Failed,
	Blocked,
	InvalidControlIP,
	NotConnected,
	NotDisconnected,
	TerminatedByUser,
	CommunicationFailed,
}

var commandStatusNames = map[CommandStatus]string{
	Succeeded:           "Succeeded",
	Failed:              "Failed",
	Blocked:             "Blocked",
	InvalidControlIP:    "InvalidControlIP",
	NotConnected:        "NotConnected",
	NotDisconnected:     "NotDisconnected",
	TerminatedByUser:    "TerminatedByUser",
	CommunicationFailed: "CommunicationFailed",
}

// Succeeded deliberately has no entry.
var commandStatusMessages = map[CommandStatus]string{
	Failed:           "error: command failed",
	Blocked:          "error: another command is already running",
	InvalidControlIP: "error: command not accepted from this IP",
	NotConnected:     "error: covers are not connected",
	NotDisconnected:  "error: covers are already connected",

	TerminatedByUser:    "error: terminated by user",
	CommunicationFailed: "error: unable to communicate with covers daemon",
}

// CommandStatuses returns every known command status, in declaration order.
func CommandStatuses() []CommandStatus {
	return append([]CommandStatus(nil), commandStatuses...)
}

// String returns the Go name of the status.
func (s CommandStatus) String() string {
	if n, ok := commandStatusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("CommandStatus(%d)", int(s))
}

// Message returns a human readable string describing the status.
func (s CommandStatus) Message() string {
	if m, ok := commandStatusMessages[s]; ok {
		return m
	}
	return fmt.Sprintf("error: Unknown error code %d", int(s))
}

// CommandStatusMessage returns a human readable string describing an error
// code. Codes without a message, Succeeded included, produce a generic
// "Unknown error code" string.
func CommandStatusMessage(code int) string {
	return CommandStatus(code).Message()
}

// ExitStatus converts a command result code into a process exit status, the
// way a POSIX shell reports it.
func ExitStatus(code int) int {
	return code & 0xff
}

// Color is the semantic display color of a cover state.
type Color string

const (
	// Red marks alarm or inactive states.
	Red Color = "red"
	// Green marks the nominal open state.
	Green Color = "green"
	// Yellow marks states in transition.
	Yellow Color = "yellow"
)

// CoversState is the state of the mirror covers.
type CoversState int

const (
	Disabled CoversState = iota
	Stopped
	Open
	Closed
	Opening
	Closing
)

// UnknownLabel is reported for states outside the table.
const UnknownLabel = "UNKNOWN"

type stateInfo struct {
	name  string
	label string
	color Color
}

var coversStates = [...]stateInfo{
	Disabled: {"Disabled", "OFFLINE", Red},
	Stopped:  {"Stopped", "STOPPED", Red},
	Open:     {"Open", "OPEN", Green},
	Closed:   {"Closed", "CLOSED", Red},
	Opening:  {"Opening", "OPENING", Yellow},
	Closing:  {"Closing", "CLOSING", Yellow},
}

// CoversStates returns every known cover state, in numeric order.
func CoversStates() []CoversState {
	s := make([]CoversState, 0, len(coversStates))
	for i := range coversStates {
		s = append(s, CoversState(i))
	}
	return s
}

func (s CoversState) info() (stateInfo, bool) {
	if s < 0 || int(s) >= len(coversStates) {
		return stateInfo{}, false
	}
	return coversStates[s], true
}

// Valid returns true if s is one of the known states.
func (s CoversState) Valid() bool {
	_, ok := s.info()
	return ok
}

// String returns the Go name of the state.
func (s CoversState) String() string {
	if i, ok := s.info(); ok {
		return i.name
	}
	return fmt.Sprintf("CoversState(%d)", int(s))
}

// Color returns the display color of the state. Unknown states are red.
func (s CoversState) Color() Color {
	if i, ok := s.info(); ok {
		return i.color
	}
	return Red
}

// Label returns a human readable string describing the state. When
// formatting is set the label is wrapped in bold and color markup tags,
// e.g. "[b][green]OPEN[/green][/b]".
func (s CoversState) Label(formatting bool) string {
	i, ok := s.info()
	if !ok {
		i = stateInfo{label: UnknownLabel, color: Red}
	}
	if !formatting {
		return i.label
	}
	return fmt.Sprintf("[b][%s]%s[/%s][/b]", i.color, i.label, i.color)
}

// CoversStateLabel returns a human readable string describing a state.
// Set formatting to enable terminal formatting markup.
func CoversStateLabel(state int, formatting bool) string {
	return CoversState(state).Label(formatting)
}

// ParseCoversState looks up a state by its plain label.
func ParseCoversState(label string) (CoversState, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for i, info := range coversStates {
		if info.label == label {
			return CoversState(i), true
		}
	}
	return Disabled, false
}
