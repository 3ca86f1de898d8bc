// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api exposes the playback controller over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/playbackctl/internal/api/middleware"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/store"
	"github.com/ManuGH/playbackctl/internal/log"
	"github.com/ManuGH/playbackctl/internal/notify"
)

// Controller is the part of the playback controller the API drives.
type Controller interface {
	Initialize(ctx context.Context, req *model.PlaybackRequest) error
	NewRequest(ctx context.Context, req model.PlaybackRequest) error
	Release(ctx context.Context) error
	OnPermissionResult(ctx context.Context, granted bool) error
	Snapshot(ctx context.Context) (model.Snapshot, error)
}

// PermissionPrompt is a platform that can hold an unanswered permission
// request, such as the simulated platform.
type PermissionPrompt interface {
	Pending() bool
	Resolve(granted bool) bool
}

// EventFeed serves recent outbound notifications.
type EventFeed interface {
	Recent(since uint64, limit int) []notify.Event
}

// Deps are the collaborators of Server. Prompt, Feed and Journal are optional.
type Deps struct {
	Controller Controller
	Prompt     PermissionPrompt
	Feed       EventFeed
	Journal    store.Journal
}

// Server holds the control API routes.
type Server struct {
	deps   Deps
	stack  middleware.StackConfig
	logger zerolog.Logger
}

func New(deps Deps, stack middleware.StackConfig) (*Server, error) {
	if deps.Controller == nil {
		return nil, errors.New("api: controller is required")
	}
	return &Server{deps: deps, stack: stack, logger: log.WithComponent("api")}, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := middleware.NewRouter(s.stack)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Get("/", s.handleSnapshot)
		r.Post("/initialize", s.handleInitialize)
		r.Post("/intent", s.handleIntent)
		r.Post("/release", s.handleRelease)
		r.Post("/permission", s.handlePermission)
		r.Get("/events", s.handleEvents)
		r.Get("/history", s.handleHistory)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, "system/not_found", "Not Found", "NOT_FOUND", "no such route", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusMethodNotAllowed, "system/method_not_allowed", "Method Not Allowed", "METHOD_NOT_ALLOWED", r.Method+" is not supported here", nil)
	})
	return r
}
