// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[string(a.Key)] = a.Value
	}
	return m
}

func TestSessionAttributes(t *testing.T) {
	m := attrMap(SessionAttributes("abc", 3, "ACTIVE"))
	assert.Equal(t, "abc", m[SessionIDKey].AsString())
	assert.Equal(t, int64(3), m[GenerationKey].AsInt64())
	assert.Equal(t, "ACTIVE", m[StateKey].AsString())

	assert.Len(t, SessionAttributes("", 0, ""), 1)
}

func TestPositionAttributes(t *testing.T) {
	m := attrMap(PositionAttributes(3, 45000))
	assert.Equal(t, int64(3), m[PeriodIndexKey].AsInt64())
	assert.Equal(t, int64(45000), m[PositionMsKey].AsInt64())
}

func TestHTTPAndErrorAttributes(t *testing.T) {
	m := attrMap(HTTPAttributes("POST", "/api/v1/session/release", 204))
	assert.Equal(t, "POST", m[HTTPMethodKey].AsString())
	assert.Equal(t, int64(204), m[HTTPStatusCodeKey].AsInt64())

	e := attrMap(ErrorAttributes("drm"))
	assert.True(t, e[ErrorKey].AsBool())
	assert.Equal(t, "drm", e[ErrorTypeKey].AsString())
}
