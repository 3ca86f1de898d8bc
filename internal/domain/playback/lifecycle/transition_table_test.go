// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"errors"
	"testing"

	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable_Coverage(t *testing.T) {
	allowed := map[model.SessionState]map[EventKind]struct{}{}
	for _, tr := range transitionsTable {
		if _, ok := allowed[tr.From]; !ok {
			allowed[tr.From] = map[EventKind]struct{}{}
		}
		if _, exists := allowed[tr.From][tr.Event]; exists {
			t.Fatalf("duplicate transition: %s + %v", tr.From, tr.Event)
		}
		allowed[tr.From][tr.Event] = struct{}{}
	}

	for _, state := range model.AllStates {
		for _, ev := range AllEvents {
			decision := DecisionFor(state, ev)
			if _, ok := allowed[state][ev]; ok {
				require.True(t, decision.Allowed, "allowed transition must be marked allowed for %s + %v", state, ev)
				require.NotEmpty(t, decision.To)
				continue
			}
			require.False(t, decision.Allowed, "forbidden transition must be marked forbidden for %s + %v", state, ev)
			require.NotEmpty(t, decision.Reason, "forbidden transition must have reason for %s + %v", state, ev)
		}
	}
}

func TestTransitionTable_ReleaseNeverFromIdleOrReleased(t *testing.T) {
	for _, s := range []model.SessionState{model.SessionIdle, model.SessionReleased} {
		_, ok := TransitionFor(s, EvRelease)
		require.False(t, ok, "release from %s must be a no-op, not a transition", s)
	}
}

func TestTransitionTable_EngineErrorLandsInError(t *testing.T) {
	for _, s := range []model.SessionState{model.SessionActive, model.SessionSourcePending, model.SessionError} {
		tr, ok := TransitionFor(s, EvEngineError)
		require.True(t, ok)
		require.Equal(t, model.SessionError, tr.To)
	}
}

func TestTransitionTable_PermissionPath(t *testing.T) {
	tr, ok := TransitionFor(model.SessionInitializing, EvPermissionRequired)
	require.True(t, ok)
	require.Equal(t, model.SessionAwaitingPermission, tr.To)

	tr, ok = TransitionFor(model.SessionAwaitingPermission, EvPermissionGranted)
	require.True(t, ok)
	require.Equal(t, model.SessionInitializing, tr.To)

	tr, ok = TransitionFor(model.SessionAwaitingPermission, EvPermissionDenied)
	require.True(t, ok)
	require.Equal(t, model.SessionError, tr.To)
}

func TestIllegalTransitionErrorUnwrapsInvariant(t *testing.T) {
	err := &IllegalTransitionError{From: model.SessionIdle, Event: EvSourcesResolved, Reason: "x"}
	require.True(t, errors.Is(err, ErrInvariantViolation))
	require.Contains(t, err.Error(), "sources_resolved")
}
