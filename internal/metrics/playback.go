// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_session_transitions_total",
			Help: "Session state transitions by source and target state.",
		},
		[]string{"from", "to"},
	)

	DiagnosticsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_diagnostics_total",
			Help: "User-facing diagnostics emitted, by kind.",
		},
		[]string{"kind"},
	)

	DrmFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_drm_failures_total",
			Help: "DRM session build failures by reason.",
		},
		[]string{"reason"},
	)

	PermissionOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_permission_outcomes_total",
			Help: "Permission gate outcomes (not_needed, requested, granted, denied, stale).",
		},
		[]string{"outcome"},
	)

	EngineBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_engine_builds_total",
			Help: "Engine construction attempts by result (built, reused, failed).",
		},
		[]string{"result"},
	)

	SourcesResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_sources_resolved_total",
			Help: "Media sources handed to the engine, by source type.",
		},
		[]string{"type"},
	)

	EventQueueDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_event_queue_dropped_total",
			Help: "Controller events dropped before reaching the event loop.",
		},
		[]string{"reason"},
	)

	PositionMs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "playback_position_ms",
		Help: "Last reported playback position within the current period, in milliseconds.",
	})
)

func nonEmpty(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func RecordTransition(from, to string) {
	SessionTransitionsTotal.WithLabelValues(nonEmpty(from), nonEmpty(to)).Inc()
}

func RecordDiagnostic(kind string) {
	DiagnosticsTotal.WithLabelValues(nonEmpty(kind)).Inc()
}

func RecordDrmFailure(reason string) {
	DrmFailuresTotal.WithLabelValues(nonEmpty(reason)).Inc()
}

func RecordPermissionOutcome(outcome string) {
	PermissionOutcomesTotal.WithLabelValues(nonEmpty(outcome)).Inc()
}

func RecordEngineBuild(result string) {
	EngineBuildsTotal.WithLabelValues(nonEmpty(result)).Inc()
}

func RecordSourceResolved(sourceType string) {
	SourcesResolvedTotal.WithLabelValues(nonEmpty(sourceType)).Inc()
}

func RecordEventDropped(reason string) {
	EventQueueDroppedTotal.WithLabelValues(nonEmpty(reason)).Inc()
}

// SetPosition publishes the latest reported position.
func SetPosition(positionMs int64) {
	PositionMs.Set(float64(positionMs))
}
