// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManuGH/playbackctl/internal/domain/playback/lifecycle"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
	"github.com/ManuGH/playbackctl/internal/domain/playback/tracks"
	"github.com/ManuGH/playbackctl/internal/metrics"
)

func (c *Controller) handlePermissionResult(ctx context.Context, ev permissionResult) error {
	stale := ev.generation != 0 && ev.generation != c.s.generation
	if stale || c.s.state != model.SessionAwaitingPermission {
		if ev.generation != 0 {
			// Late callback from a discarded attempt.
			metrics.RecordPermissionOutcome("stale")
			c.logger.Debug().
				Str("event", "permission.stale").
				Uint64("generation", ev.generation).
				Uint64("current_generation", c.s.generation).
				Msg("ignoring permission result for discarded attempt")
			return nil
		}
		if c.s.state == model.SessionReleased {
			return fmt.Errorf("permission result: %w", lifecycle.ErrReleased)
		}
		d := lifecycle.DecisionFor(c.s.state, lifecycle.EvPermissionGranted)
		return &lifecycle.IllegalTransitionError{From: c.s.state, Event: lifecycle.EvPermissionGranted, Reason: d.Reason}
	}

	if !ev.granted {
		metrics.RecordPermissionOutcome("denied")
		c.s.lastErr = lifecycle.ErrPermissionDenied
		c.diagnose(model.Diagnostic{
			Kind:    model.DiagPermissionDenied,
			Message: "Permission to access storage was denied",
		})
		return c.fire(ctx, lifecycle.EvPermissionDenied, "")
	}

	metrics.RecordPermissionOutcome("granted")
	c.logger.Info().Str("event", "permission.granted").Str("session_id", c.s.id).Msg("storage permission granted")
	if err := c.fire(ctx, lifecycle.EvPermissionGranted, ""); err != nil {
		return err
	}
	return c.buildAndStart(ctx)
}

func (c *Controller) handleTrackInfo(_ context.Context, ev trackInfoEvent) error {
	if !c.isCurrentEngine(ev.engineSeq) {
		return nil
	}
	res := tracks.Aggregate(ev.info)
	for _, d := range res.Diagnostics {
		c.diagnose(d)
	}
	c.collab.CapabilityReport(res.Report, res.Affordances)
	c.logger.Debug().
		Str("event", "playback.tracks_changed").
		Int("renderers", ev.info.RendererCount()).
		Stringer("audio", res.Report.Audio).
		Stringer("video", res.Report.Video).
		Stringer("text", res.Report.Text).
		Int("affordances", len(res.Affordances)).
		Msg("track capabilities updated")
	return nil
}

func (c *Controller) handleEngineError(ctx context.Context, ev engineErrorEvent) error {
	if !c.isCurrentEngine(ev.engineSeq) {
		return nil
	}
	err := ev.err
	if err == nil {
		err = errors.New("unknown engine error")
	}
	c.s.lastErr = err
	c.s.sourceNeeded = true
	c.diagnose(diagnosticFor(err))
	return c.fire(ctx, lifecycle.EvEngineError, err.Error())
}

func (c *Controller) handlePlayerState(_ context.Context, ev playerStateEvent) error {
	if !c.isCurrentEngine(ev.engineSeq) {
		return nil
	}
	if ev.state == ports.PlaybackEnded {
		c.collab.Presentation(ports.PresentationEvent{Kind: ports.PresentPlaybackEnded})
	}
	c.publishState()
	return nil
}

func (c *Controller) handleDiscontinuity(_ context.Context, ev discontinuityEvent) error {
	if !c.isCurrentEngine(ev.engineSeq) {
		return nil
	}
	c.collab.Presentation(ports.PresentationEvent{
		Kind:     ports.PresentDiscontinuity,
		Position: model.Position{PeriodIndex: ev.periodIndex, PositionMs: ev.positionMs},
	})
	return nil
}

func (c *Controller) handleVideoSize(_ context.Context, ev videoSizeEvent) error {
	if !c.isCurrentEngine(ev.engineSeq) {
		return nil
	}
	c.collab.Presentation(ports.PresentationEvent{
		Kind:        ports.PresentVideoAspect,
		AspectRatio: aspectRatio(ev.size),
	})
	return nil
}

func (c *Controller) handleCues(_ context.Context, ev cuesEvent) error {
	if !c.isCurrentEngine(ev.engineSeq) {
		return nil
	}
	c.collab.Presentation(ports.PresentationEvent{Kind: ports.PresentCues, Cues: ev.cues})
	return nil
}

func (c *Controller) handleMetadata(_ context.Context, ev metadataEvent) error {
	if !c.isCurrentEngine(ev.engineSeq) {
		return nil
	}
	for _, f := range ev.frames {
		logMetadataFrame(c.logger, f)
	}
	return nil
}

func (c *Controller) handleSnapshot(_ context.Context, q snapshotQuery) error {
	*q.out = c.s.snapshot()
	return nil
}

// aspectRatio is the display aspect of size; a zero height yields 1.
func aspectRatio(size ports.VideoSize) float64 {
	if size.Height == 0 {
		return 1
	}
	ratio := size.PixelWidthHeightRatio
	if ratio == 0 {
		ratio = 1
	}
	return float64(size.Width) * ratio / float64(size.Height)
}
