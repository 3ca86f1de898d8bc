// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import "errors"

var (
	// ErrMissingController is returned when an app is created without a controller.
	ErrMissingController = errors.New("controller is required")

	// ErrMissingHandler is returned when an app is created without an API handler.
	ErrMissingHandler = errors.New("API handler is required")

	// ErrMissingConfig is returned by Bootstrap without a config holder.
	ErrMissingConfig = errors.New("config holder is required")

	// ErrAppRunning is returned by a second concurrent Run.
	ErrAppRunning = errors.New("app already running")
)
