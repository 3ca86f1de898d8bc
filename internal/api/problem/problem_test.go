// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package problem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/playbackctl/internal/log"
)

func TestWrite(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/release", nil)
	req = req.WithContext(log.ContextWithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	Write(rec, req, Problem{
		Type:   "session/conflict",
		Title:  "Conflict",
		Status: http.StatusConflict,
		Code:   "ILLEGAL_TRANSITION",
		Detail: "no permission request outstanding",
		Extra:  map[string]any{"state": "IDLE", "status": 200},
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ILLEGAL_TRANSITION", body["code"])
	assert.Equal(t, float64(http.StatusConflict), body["status"], "reserved keys are not overridden")
	assert.Equal(t, "IDLE", body["state"])
	assert.Equal(t, "req-1", body[JSONKeyRequestID])
	assert.Equal(t, "/api/v1/session/release", body["instance"])
}
