// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

// EventKind is a domain event in the playback session lifecycle.
type EventKind int

const (
	EvUnknown EventKind = iota
	EvInitialize
	EvPermissionRequired
	EvPermissionGranted
	EvPermissionDenied
	EvDrmFailed
	EvEngineBuildFailed
	EvEngineReady
	EvSourcesResolved
	EvEngineError
	EvRelease
)

// AllEvents lists every known event kind except EvUnknown.
var AllEvents = []EventKind{
	EvInitialize,
	EvPermissionRequired,
	EvPermissionGranted,
	EvPermissionDenied,
	EvDrmFailed,
	EvEngineBuildFailed,
	EvEngineReady,
	EvSourcesResolved,
	EvEngineError,
	EvRelease,
}

func (e EventKind) String() string {
	switch e {
	case EvInitialize:
		return "initialize"
	case EvPermissionRequired:
		return "permission_required"
	case EvPermissionGranted:
		return "permission_granted"
	case EvPermissionDenied:
		return "permission_denied"
	case EvDrmFailed:
		return "drm_failed"
	case EvEngineBuildFailed:
		return "engine_build_failed"
	case EvEngineReady:
		return "engine_ready"
	case EvSourcesResolved:
		return "sources_resolved"
	case EvEngineError:
		return "engine_error"
	case EvRelease:
		return "release"
	default:
		return "unknown"
	}
}
