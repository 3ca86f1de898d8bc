// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ManuGH/playbackctl/internal/domain/playback/drm"
	"github.com/ManuGH/playbackctl/internal/domain/playback/lifecycle"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
	"github.com/ManuGH/playbackctl/internal/domain/playback/store"
	"github.com/ManuGH/playbackctl/internal/metrics"
)

// session is the mutable record behind Snapshot.
type session struct {
	id         string
	generation uint64
	state      model.SessionState
	request    *model.PlaybackRequest
	// discarded is the request dropped by a release while waiting for
	// permission. saved belongs to it until a request arrives.
	discarded *model.PlaybackRequest

	engine       ports.Engine
	engineSeq    uint64
	drm          *drm.SessionManager
	reporter     *positionReporter
	sourceNeeded bool

	saved   model.Position
	lastErr error
}

func newSession() session {
	return session{id: uuid.NewString(), state: model.SessionIdle}
}

func (s *session) snapshot() model.Snapshot {
	snap := model.Snapshot{
		SessionID:      s.id,
		Generation:     s.generation,
		State:          s.state,
		HasEngine:      s.engine != nil,
		SourceNeeded:   s.sourceNeeded,
		RetryAvailable: s.sourceNeeded,
		SavedPosition:  s.saved,
	}
	if s.lastErr != nil {
		snap.LastError = s.lastErr.Error()
	}
	if s.request != nil {
		req := s.request.Clone()
		snap.Request = &req
	}
	return snap
}

// fire applies ev to the state machine and records the transition.
func (c *Controller) fire(ctx context.Context, ev lifecycle.EventKind, detail string) error {
	from := c.s.state
	d := lifecycle.DecisionFor(from, ev)
	if !d.Allowed {
		return &lifecycle.IllegalTransitionError{From: from, Event: ev, Reason: d.Reason}
	}
	c.s.state = d.To
	metrics.RecordTransition(string(from), string(d.To))

	c.logger.Debug().
		Str("event", "playback.transition").
		Str("session_id", c.s.id).
		Uint64("generation", c.s.generation).
		Str("old_state", string(from)).
		Str("new_state", string(d.To)).
		Str("trigger", ev.String()).
		Msg("session transition")

	if c.cfg.Journal != nil {
		rec := store.Record{
			SessionID:  c.s.id,
			Generation: c.s.generation,
			From:       string(from),
			To:         string(d.To),
			Event:      ev.String(),
			Detail:     detail,
			At:         time.Now(),
		}
		if err := c.cfg.Journal.Append(context.WithoutCancel(ctx), rec); err != nil {
			c.logger.Warn().Err(err).Str("event", "playback.journal_failed").Msg("transition not journaled")
		}
	}
	c.publishState()
	return nil
}

func (c *Controller) publishState() {
	c.collab.StateChanged(c.s.snapshot())
}

func (c *Controller) diagnose(d model.Diagnostic) {
	metrics.RecordDiagnostic(string(d.Kind))
	c.logger.Warn().
		Str("event", "playback.diagnostic").
		Str("session_id", c.s.id).
		Str("kind", string(d.Kind)).
		Msg(d.Message)
	c.collab.Diagnostic(d)
}
