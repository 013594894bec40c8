//go:build noprometheus

// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

package instrument

import (
	"github.com/rockit/covers/constants"
)

// Exporter does nothing
type Exporter struct{}

// New returns a no-op Exporter
func New() *Exporter { return new(Exporter) }

// SetState does nothing
func (e *Exporter) SetState(s constants.CoversState) {}

// SetCommandStatus does nothing
func (e *Exporter) SetCommandStatus(s constants.CommandStatus) {}

// WriteTextfile does nothing
func (e *Exporter) WriteTextfile(path string) error { return nil }
