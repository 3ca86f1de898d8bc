// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManuGH/playbackctl/internal/api/problem"
	"github.com/ManuGH/playbackctl/internal/domain/playback/drm"
	"github.com/ManuGH/playbackctl/internal/domain/playback/lifecycle"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/log"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, typ, title, code, detail string, extra map[string]any) {
	problem.Write(w, r, problem.Problem{Type: typ, Title: title, Status: status, Code: code, Detail: detail, Extra: extra})
}

// writeControllerError maps controller errors onto problem responses.
func writeControllerError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ude *drm.UnsupportedDrmError
		ite *lifecycle.IllegalTransitionError
		gee *model.GenericEngineError
	)
	switch {
	case errors.Is(err, model.ErrInvalidIntent), errors.Is(err, model.ErrInvalidRequest):
		writeProblem(w, r, http.StatusBadRequest, "session/invalid_request", "Bad Request", "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, lifecycle.ErrNoRequest):
		writeProblem(w, r, http.StatusConflict, "session/no_request", "Conflict", "NO_REQUEST", err.Error(), nil)
	case errors.As(err, &ite):
		writeProblem(w, r, http.StatusConflict, "session/illegal_transition", "Conflict", "ILLEGAL_TRANSITION", err.Error(),
			map[string]any{"state": ite.From, "trigger": ite.Event.String()})
	case errors.Is(err, lifecycle.ErrReleased):
		writeProblem(w, r, http.StatusConflict, "session/released", "Conflict", "RELEASED", err.Error(), nil)
	case errors.As(err, &ude):
		writeProblem(w, r, http.StatusUnprocessableEntity, "session/drm_unsupported", "DRM Unsupported", "DRM_UNSUPPORTED", ude.UserMessage(),
			map[string]any{"reason": ude.Reason.String()})
	case errors.As(err, &gee):
		writeProblem(w, r, http.StatusBadGateway, "session/engine_failed", "Engine Failed", "ENGINE_FAILED", err.Error(), nil)
	case errors.Is(err, lifecycle.ErrControllerClosed):
		writeProblem(w, r, http.StatusServiceUnavailable, "system/unavailable", "Service Unavailable", "CONTROLLER_CLOSED", err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeProblem(w, r, http.StatusServiceUnavailable, "system/timeout", "Service Unavailable", "TIMEOUT", err.Error(), nil)
	default:
		log.FromContext(r.Context()).Error().Err(err).Str("event", "api.unmapped_error").Msg("controller call failed")
		writeProblem(w, r, http.StatusInternalServerError, "system/internal", "Internal Server Error", "INTERNAL", err.Error(), nil)
	}
}
