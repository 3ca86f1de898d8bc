// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"errors"
	"fmt"

	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
)

var (
	ErrNoRequest          = errors.New("no pending playback request")
	ErrPermissionDenied   = errors.New("storage permission denied")
	ErrPermissionPending  = errors.New("storage permission pending")
	ErrControllerClosed   = errors.New("playback controller closed")
	ErrReleased           = errors.New("playback session released")
	ErrInvariantViolation = errors.New("invariant violation")
)

// IllegalTransitionError reports an event that the table does not allow.
type IllegalTransitionError struct {
	From   model.SessionState
	Event  EventKind
	Reason string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition: state=%s event=%s: %s", e.From, e.Event, e.Reason)
}

func (e *IllegalTransitionError) Unwrap() error { return ErrInvariantViolation }
