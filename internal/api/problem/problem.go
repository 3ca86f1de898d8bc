// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package problem writes RFC 7807 problem details responses.
package problem

import (
	"encoding/json"
	"net/http"

	"github.com/ManuGH/playbackctl/internal/log"
)

const (
	// HeaderRequestID is the canonical header for request correlation.
	HeaderRequestID = "X-Request-ID"
	// JSONKeyRequestID is the canonical JSON key for request correlation.
	JSONKeyRequestID = "requestId"
)

// Problem is the response body. Extra members are flattened at top level.
type Problem struct {
	Type   string
	Title  string
	Status int
	Code   string
	Detail string
	Extra  map[string]any
}

// Write writes p as application/problem+json.
//
// Semantics:
//   - type: canonical machine identifier (e.g. "session/conflict").
//   - title: short human label.
//   - code: stable machine-readable code (e.g. "ILLEGAL_TRANSITION").
//   - detail: explanation of this occurrence.
func Write(w http.ResponseWriter, r *http.Request, p Problem) {
	reqID := log.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = w.Header().Get(HeaderRequestID)
	}

	res := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
		"code":   p.Code,
	}
	if reqID != "" {
		res[JSONKeyRequestID] = reqID
	}
	if p.Detail != "" {
		res["detail"] = p.Detail
	}
	if instance := r.URL.EscapedPath(); instance != "" {
		res["instance"] = instance
	}
	for k, v := range p.Extra {
		switch k {
		case "type", "title", "status", "detail", "instance", "code", JSONKeyRequestID:
			log.L().Warn().Str("key", k).Str("problem_type", p.Type).Msg("ignoring reserved key in problem extras")
			continue
		}
		res[k] = v
	}

	if reqID != "" {
		w.Header().Set(HeaderRequestID, reqID)
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.L().Error().
			Err(err).
			Str("type", p.Type).
			Int("status", p.Status).
			Msg("failed to encode problem response")
	}
}
