// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Span attribute keys.
const (
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"

	SessionIDKey      = "playback.session_id"
	GenerationKey     = "playback.generation"
	StateKey          = "playback.state"
	SourceCountKey    = "playback.source_count"
	DrmSchemeKey      = "playback.drm_scheme"
	PeriodIndexKey    = "playback.period_index"
	PositionMsKey     = "playback.position_ms"
	EngineReusedKey   = "playback.engine_reused"
	SourceNeededKey   = "playback.source_needed"
	DiagnosticKindKey = "playback.diagnostic_kind"

	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// SessionAttributes identifies the session a span belongs to.
func SessionAttributes(sessionID string, generation uint64, state string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if sessionID != "" {
		attrs = append(attrs, attribute.String(SessionIDKey, sessionID))
	}
	attrs = append(attrs, attribute.Int64(GenerationKey, int64(generation)))
	if state != "" {
		attrs = append(attrs, attribute.String(StateKey, state))
	}
	return attrs
}

// PositionAttributes records a resume position.
func PositionAttributes(periodIndex int, positionMs int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(PeriodIndexKey, periodIndex),
		attribute.Int64(PositionMsKey, positionMs),
	}
}

// ErrorAttributes marks a span as failed with a coarse error type.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
