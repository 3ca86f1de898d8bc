// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/playbackctl/internal/config"
	"github.com/ManuGH/playbackctl/internal/domain/playback/store"
	"github.com/ManuGH/playbackctl/internal/platform/sim"
	"github.com/ManuGH/playbackctl/internal/telemetry"
)

// Runner is a component that works until its context ends.
type Runner interface {
	Run(ctx context.Context) error
}

// Deps contains everything the App runs and tears down.
type Deps struct {
	Logger zerolog.Logger

	// Controller is the playback event loop.
	Controller Runner

	// Handler serves the control API on ListenAddr.
	Handler    http.Handler
	ListenAddr string

	// Optional collaborators.
	Feed      Runner
	Holder    *config.ConfigHolder
	Platform  *sim.Platform
	Telemetry *telemetry.Provider
	Journal   store.Journal

	// ShutdownTimeout bounds the HTTP drain. Zero means 10s.
	ShutdownTimeout time.Duration
}

// Validate checks if the dependencies are valid.
func (d *Deps) Validate() error {
	if d.Controller == nil {
		return ErrMissingController
	}
	if d.Handler == nil {
		return ErrMissingHandler
	}
	return nil
}
