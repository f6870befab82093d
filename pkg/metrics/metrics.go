// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-crypto.
//
// go-crypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics records operational counters for crypto operations.
// The Recorder interface keeps the engine decoupled from Prometheus; the
// no-op recorder is the default so embedding applications opt in to a
// registry explicitly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives operation events from the engine.
type Recorder interface {
	// RecordResolution counts one factory chain resolution attempt.
	RecordResolution(factory string, ok bool)

	// RecordOperation counts one completed operation of the given kind
	// (digest, mac, encrypt, decrypt, keygen, sign, verify, agree).
	RecordOperation(op string)

	// RecordAuthFailure counts one AEAD authentication failure.
	RecordAuthFailure(algorithm string)
}

// noopRecorder discards all events.
type noopRecorder struct{}

func (noopRecorder) RecordResolution(string, bool) {}
func (noopRecorder) RecordOperation(string)        {}
func (noopRecorder) RecordAuthFailure(string)      {}

// Noop returns a recorder that discards all events.
func Noop() Recorder {
	return noopRecorder{}
}

// PrometheusRecorder exports engine counters to a Prometheus registry.
type PrometheusRecorder struct {
	resolutions  *prometheus.CounterVec
	operations   *prometheus.CounterVec
	authFailures *prometheus.CounterVec
}

// NewPrometheusRecorder registers the counters with reg and returns the
// recorder. Pass prometheus.DefaultRegisterer to use the default registry.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	f := promauto.With(reg)
	return &PrometheusRecorder{
		resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crypto",
			Name:      "resolutions_total",
			Help:      "Factory chain resolutions by factory and outcome.",
		}, []string{"factory", "outcome"}),
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crypto",
			Name:      "operations_total",
			Help:      "Completed crypto operations by kind.",
		}, []string{"operation"}),
		authFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crypto",
			Name:      "auth_failures_total",
			Help:      "AEAD authentication failures by algorithm.",
		}, []string{"algorithm"}),
	}
}

// RecordResolution counts one resolution attempt.
func (r *PrometheusRecorder) RecordResolution(factory string, ok bool) {
	outcome := "hit"
	if !ok {
		outcome = "miss"
	}
	r.resolutions.WithLabelValues(factory, outcome).Inc()
}

// RecordOperation counts one completed operation.
func (r *PrometheusRecorder) RecordOperation(op string) {
	r.operations.WithLabelValues(op).Inc()
}

// RecordAuthFailure counts one authentication failure.
func (r *PrometheusRecorder) RecordAuthFailure(algorithm string) {
	r.authFailures.WithLabelValues(algorithm).Inc()
}

// Verify interface compliance
var (
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = noopRecorder{}
)
