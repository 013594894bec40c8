//go:build !noprometheus

// SPDX-FileCopyrightText: Copyright (C) 2026 The rockit authors
// SPDX-License-Identifier: AGPL-3.0-only

// Package instrument exports covers state as Prometheus metrics.
package instrument

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rockit/covers/constants"
)

// Exporter holds the covers gauges in a private registry.
type Exporter struct {
	registry *prometheus.Registry

	state         *prometheus.GaugeVec
	commandStatus prometheus.Gauge
	updates       prometheus.Counter
}

// New creates an Exporter with all gauges registered.
func New() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "covers_state",
				Help: "Current mirror covers state, 1 for the active state label",
			},
			[]string{"state"},
		),
		commandStatus: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "covers_command_status",
				Help: "Result code of the last covers command",
			},
		),
		updates: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "covers_state_updates_total",
				Help: "Number of state updates recorded",
			},
		),
	}
	e.registry.MustRegister(e.state, e.commandStatus, e.updates)
	return e
}

// SetState records s as the current state. Every known state label is
// exported so that absent states read as 0 rather than disappearing.
func (e *Exporter) SetState(s constants.CoversState) {
	for _, known := range constants.CoversStates() {
		e.state.WithLabelValues(known.Label(false)).Set(0)
	}
	e.state.WithLabelValues(constants.UnknownLabel).Set(0)
	e.state.WithLabelValues(s.Label(false)).Set(1)
	e.updates.Inc()
}

// SetCommandStatus records the result of the last command.
func (e *Exporter) SetCommandStatus(s constants.CommandStatus) {
	e.commandStatus.Set(float64(s))
}

// WriteTextfile writes all metrics to path in the node_exporter textfile
// collector format.
func (e *Exporter) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, e.registry)
}
