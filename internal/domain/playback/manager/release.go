// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"

	"go.opentelemetry.io/otel/codes"

	"github.com/ManuGH/playbackctl/internal/domain/playback/lifecycle"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/telemetry"
)

func (c *Controller) handleRelease(ctx context.Context, _ releaseEvent) error {
	ctx, span := c.tracer.Start(ctx, "playback.release")
	defer span.End()

	released := c.teardown(ctx, "release")
	span.SetAttributes(telemetry.SessionAttributes(c.s.id, c.s.generation, string(c.s.state))...)
	span.SetAttributes(telemetry.PositionAttributes(c.s.saved.PeriodIndex, c.s.saved.PositionMs)...)
	if !released {
		span.SetStatus(codes.Ok, "nothing to release")
	}
	return nil
}

// teardown releases everything the session owns, in order: capture the
// position, stop the reporter, release the engine, close the DRM manager.
// It reports whether a transition to Released happened. Safe to call in any
// state.
func (c *Controller) teardown(ctx context.Context, why string) bool {
	d := lifecycle.DecisionFor(c.s.state, lifecycle.EvRelease)
	if !d.Allowed && c.s.engine == nil && c.s.drm == nil && c.s.reporter == nil {
		return false
	}

	if c.s.engine != nil {
		c.s.saved = model.Position{
			PeriodIndex: c.s.engine.CurrentPeriodIndex(),
			PositionMs:  c.s.engine.CurrentPosition(),
		}
	}
	if c.s.reporter != nil {
		c.s.reporter.stop()
		c.s.reporter = nil
	}
	if c.s.engine != nil {
		c.s.engine.Release()
		c.s.engine = nil
	}
	if c.s.drm != nil {
		c.s.drm.Close()
		c.s.drm = nil
	}
	c.s.sourceNeeded = false

	// A pending permission request belongs to the discarded attempt.
	if c.s.state == model.SessionAwaitingPermission {
		c.s.discarded = c.s.request
		c.s.request = nil
	}
	// Late permission callbacks carry the old generation and are ignored.
	c.s.generation++

	c.logger.Info().
		Str("event", "playback.release").
		Str("session_id", c.s.id).
		Str("reason", why).
		Int("period_index", c.s.saved.PeriodIndex).
		Int64("position_ms", c.s.saved.PositionMs).
		Msg("session released")

	if !d.Allowed {
		c.publishState()
		return false
	}
	if err := c.fire(ctx, lifecycle.EvRelease, why); err != nil {
		c.logger.Error().Err(err).Str("event", "playback.release_failed").Msg("release transition rejected")
		return false
	}
	return true
}
