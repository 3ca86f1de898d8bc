// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/playbackctl/internal/domain/playback/model"

// Transition is a single allowed edge in the lifecycle state machine.
type Transition struct {
	From  model.SessionState
	To    model.SessionState
	Event EventKind
}

// Decision records whether a transition is allowed and why it is forbidden.
type Decision struct {
	Allowed bool
	To      model.SessionState
	Reason  string
}

var transitionsTable = []Transition{
	// Start path
	{From: model.SessionIdle, To: model.SessionInitializing, Event: EvInitialize},
	{From: model.SessionReleased, To: model.SessionInitializing, Event: EvInitialize},
	{From: model.SessionError, To: model.SessionInitializing, Event: EvInitialize},

	// Permission gate
	{From: model.SessionInitializing, To: model.SessionAwaitingPermission, Event: EvPermissionRequired},
	{From: model.SessionAwaitingPermission, To: model.SessionInitializing, Event: EvPermissionGranted},
	{From: model.SessionAwaitingPermission, To: model.SessionError, Event: EvPermissionDenied},

	// Engine construction
	{From: model.SessionInitializing, To: model.SessionError, Event: EvDrmFailed},
	{From: model.SessionInitializing, To: model.SessionError, Event: EvEngineBuildFailed},
	{From: model.SessionInitializing, To: model.SessionActive, Event: EvEngineReady},

	// Source resolution
	{From: model.SessionActive, To: model.SessionSourcePending, Event: EvSourcesResolved},

	// Engine failures keep the engine and mark the source as needed
	{From: model.SessionActive, To: model.SessionError, Event: EvEngineError},
	{From: model.SessionSourcePending, To: model.SessionError, Event: EvEngineError},
	{From: model.SessionError, To: model.SessionError, Event: EvEngineError},

	// Teardown
	{From: model.SessionInitializing, To: model.SessionReleased, Event: EvRelease},
	{From: model.SessionAwaitingPermission, To: model.SessionReleased, Event: EvRelease},
	{From: model.SessionActive, To: model.SessionReleased, Event: EvRelease},
	{From: model.SessionSourcePending, To: model.SessionReleased, Event: EvRelease},
	{From: model.SessionError, To: model.SessionReleased, Event: EvRelease},
}

// TransitionFor returns the allowed transition for a given state+event.
func TransitionFor(from model.SessionState, ev EventKind) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev {
			return tr, true
		}
	}
	return Transition{}, false
}

// DecisionFor explains whether ev is allowed in state from.
func DecisionFor(from model.SessionState, ev EventKind) Decision {
	if tr, ok := TransitionFor(from, ev); ok {
		return Decision{Allowed: true, To: tr.To}
	}
	return Decision{Allowed: false, Reason: forbiddenReason(from, ev)}
}

func forbiddenReason(from model.SessionState, ev EventKind) string {
	switch {
	case ev == EvUnknown:
		return "unknown event"
	case ev == EvRelease && (from == model.SessionIdle || from == model.SessionReleased):
		return "nothing to release"
	case ev == EvInitialize:
		return "initialize only starts from idle, released or error"
	case ev == EvPermissionGranted || ev == EvPermissionDenied:
		return "no permission request outstanding"
	case ev == EvSourcesResolved:
		return "sources resolve only on an active engine"
	case ev == EvEngineError:
		return "no engine to fail"
	default:
		return "transition not in table"
	}
}
