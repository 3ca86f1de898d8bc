// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/store"
	"github.com/ManuGH/playbackctl/internal/notify"
)

const (
	maxBodyBytes        = 64 << 10
	defaultHistoryLimit = 50
)

var errEmptyBody = errors.New("empty body")

// decodeBody decodes a JSON body strictly. errEmptyBody is returned when
// the client sent nothing.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON body", model.ErrInvalidRequest)
	}
	return nil
}

func (s *Server) respondSnapshot(w http.ResponseWriter, r *http.Request, status int) {
	snap, err := s.deps.Controller.Snapshot(r.Context())
	if err != nil {
		writeControllerError(w, r, err)
		return
	}
	writeJSON(w, status, snap)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/v1/session
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.respondSnapshot(w, r, http.StatusOK)
}

// POST /api/v1/session/initialize. An empty body retries the current request.
func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var in model.Intent
	var req *model.PlaybackRequest
	switch err := decodeBody(w, r, &in); {
	case errors.Is(err, errEmptyBody):
	case err != nil:
		writeControllerError(w, r, err)
		return
	default:
		parsed, err := in.Request()
		if err != nil {
			writeControllerError(w, r, err)
			return
		}
		req = &parsed
	}

	if err := s.deps.Controller.Initialize(r.Context(), req); err != nil {
		writeControllerError(w, r, err)
		return
	}
	s.respondSnapshot(w, r, http.StatusOK)
}

// POST /api/v1/session/intent replaces the request, resets the saved
// position and starts playback.
func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	var in model.Intent
	if err := decodeBody(w, r, &in); err != nil {
		if errors.Is(err, errEmptyBody) {
			err = fmt.Errorf("%w: intent body is required", model.ErrInvalidIntent)
		}
		writeControllerError(w, r, err)
		return
	}
	req, err := in.Request()
	if err != nil {
		writeControllerError(w, r, err)
		return
	}

	ctrl := s.deps.Controller
	if err := ctrl.NewRequest(r.Context(), req); err != nil {
		writeControllerError(w, r, err)
		return
	}
	if err := ctrl.Initialize(r.Context(), nil); err != nil {
		writeControllerError(w, r, err)
		return
	}
	s.logger.Info().
		Str("event", "api.intent_accepted").
		Str("action", string(in.Action)).
		Int("source_count", len(req.Items)).
		Msg("new playback intent")
	s.respondSnapshot(w, r, http.StatusOK)
}

// POST /api/v1/session/release
func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Controller.Release(r.Context()); err != nil {
		writeControllerError(w, r, err)
		return
	}
	s.respondSnapshot(w, r, http.StatusOK)
}

type permissionBody struct {
	Granted *bool `json:"granted"`
}

// POST /api/v1/session/permission answers the outstanding prompt. When the
// session waits on a prompt the platform holds, the answer travels through its
// callback and the response is 202.
func (s *Server) handlePermission(w http.ResponseWriter, r *http.Request) {
	var body permissionBody
	err := decodeBody(w, r, &body)
	if err == nil && body.Granted == nil {
		err = fmt.Errorf("%w: granted is required", model.ErrInvalidRequest)
	}
	if errors.Is(err, errEmptyBody) {
		err = fmt.Errorf("%w: body is required", model.ErrInvalidRequest)
	}
	if err != nil {
		writeControllerError(w, r, err)
		return
	}

	// A prompt left over from a released attempt is not routed: its callback
	// would be dropped as stale.
	if p := s.deps.Prompt; p != nil && p.Pending() {
		snap, err := s.deps.Controller.Snapshot(r.Context())
		if err != nil {
			writeControllerError(w, r, err)
			return
		}
		if snap.State == model.SessionAwaitingPermission && p.Resolve(*body.Granted) {
			s.respondSnapshot(w, r, http.StatusAccepted)
			return
		}
	}
	if err := s.deps.Controller.OnPermissionResult(r.Context(), *body.Granted); err != nil {
		writeControllerError(w, r, err)
		return
	}
	s.respondSnapshot(w, r, http.StatusOK)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", model.ErrInvalidRequest, key)
	}
	return v, nil
}

type eventsResponse struct {
	Events []notify.Event `json:"events"`
	Next   uint64         `json:"next"`
}

// GET /api/v1/session/events?since=<seq>&limit=<n>
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.deps.Feed == nil {
		writeProblem(w, r, http.StatusNotFound, "system/not_found", "Not Found", "FEED_DISABLED", "event feed is not configured", nil)
		return
	}
	since, err := queryInt(r, "since", 0)
	if err != nil {
		writeControllerError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeControllerError(w, r, err)
		return
	}
	events := s.deps.Feed.Recent(uint64(since), limit)
	next := uint64(since)
	if len(events) > 0 {
		next = events[len(events)-1].Seq
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: events, Next: next})
}

// GET /api/v1/session/history?limit=<n>, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.deps.Journal == nil {
		writeProblem(w, r, http.StatusNotFound, "system/not_found", "Not Found", "JOURNAL_DISABLED", "transition journal is not configured", nil)
		return
	}
	limit, err := queryInt(r, "limit", defaultHistoryLimit)
	if err != nil {
		writeControllerError(w, r, err)
		return
	}
	recs, err := s.deps.Journal.Recent(r.Context(), limit)
	if err != nil {
		writeControllerError(w, r, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transitions": recs})
}
