// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

// SessionState is the controller-visible lifecycle of a playback session.
type SessionState string

const (
	SessionIdle               SessionState = "IDLE"
	SessionInitializing       SessionState = "INITIALIZING"
	SessionAwaitingPermission SessionState = "AWAITING_PERMISSION"
	SessionActive             SessionState = "ACTIVE"
	SessionSourcePending      SessionState = "SOURCE_PENDING"
	SessionError              SessionState = "ERROR"
	SessionReleased           SessionState = "RELEASED"
)

// AllStates lists every session state in declaration order.
var AllStates = []SessionState{
	SessionIdle,
	SessionInitializing,
	SessionAwaitingPermission,
	SessionActive,
	SessionSourcePending,
	SessionError,
	SessionReleased,
}

// IsStartable reports whether an initialize trigger may begin a fresh attempt.
func (s SessionState) IsStartable() bool {
	switch s {
	case SessionIdle, SessionReleased, SessionError:
		return true
	}
	return false
}

// Position is a resume point: period index plus offset in milliseconds.
type Position struct {
	PeriodIndex int   `json:"period_index"`
	PositionMs  int64 `json:"position_ms"`
}

// IsZero reports whether p is the default start-of-content position.
func (p Position) IsZero() bool {
	return p.PeriodIndex == 0 && p.PositionMs == 0
}

// Snapshot is a read-only copy of the session record.
type Snapshot struct {
	SessionID      string           `json:"session_id"`
	Generation     uint64           `json:"generation"`
	State          SessionState     `json:"state"`
	HasEngine      bool             `json:"has_engine"`
	SourceNeeded   bool             `json:"source_needed"`
	RetryAvailable bool             `json:"retry_available"`
	SavedPosition  Position         `json:"saved_position"`
	LastError      string           `json:"last_error,omitempty"`
	Request        *PlaybackRequest `json:"request,omitempty"`
}
