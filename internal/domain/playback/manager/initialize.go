// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/playbackctl/internal/domain/playback/drm"
	"github.com/ManuGH/playbackctl/internal/domain/playback/lifecycle"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/permission"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
	"github.com/ManuGH/playbackctl/internal/metrics"
	platformnet "github.com/ManuGH/playbackctl/internal/platform/net"
	"github.com/ManuGH/playbackctl/internal/telemetry"
)

func (c *Controller) handleInitialize(ctx context.Context, ev initializeEvent) (err error) {
	ctx, span := c.tracer.Start(ctx, "playback.initialize")
	defer func() {
		span.SetAttributes(telemetry.SessionAttributes(c.s.id, c.s.generation, string(c.s.state))...)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if ev.req != nil {
		switch {
		case c.s.request != nil:
			if !ev.req.Equal(*c.s.request) {
				c.startFresh(ctx, *ev.req)
			}
		case c.s.discarded != nil && !ev.req.Equal(*c.s.discarded):
			// The saved position belongs to the discarded request.
			c.startFresh(ctx, *ev.req)
		default:
			c.s.request = ev.req
			c.s.discarded = nil
		}
	}
	if c.s.request == nil {
		return lifecycle.ErrNoRequest
	}

	switch c.s.state {
	case model.SessionAwaitingPermission:
		// One request is outstanding; its callback resumes the attempt.
		return nil
	case model.SessionActive, model.SessionSourcePending:
		if c.s.sourceNeeded {
			return c.resolveSources(ctx)
		}
		return nil
	}

	c.s.generation++
	c.s.lastErr = nil
	if err := c.fire(ctx, lifecycle.EvInitialize, ""); err != nil {
		return err
	}

	if c.s.engine != nil {
		metrics.RecordEngineBuild("reused")
		if err := c.fire(ctx, lifecycle.EvEngineReady, "engine reused"); err != nil {
			return err
		}
		span.SetAttributes(attribute.Bool(telemetry.EngineReusedKey, true))
		return c.resolveSources(ctx)
	}

	if c.requestPermission() {
		return c.fire(ctx, lifecycle.EvPermissionRequired, string(permission.ReadExternalStorage))
	}
	metrics.RecordPermissionOutcome("not_needed")
	return c.buildAndStart(ctx)
}

// requestPermission runs the gate for the current request and reports
// whether the attempt must wait for a grant.
func (c *Controller) requestPermission() bool {
	gen := c.s.generation
	decision := c.cfg.Gate.Check(c.s.request.Locators(), func(granted bool) {
		ev := permissionResult{granted: granted, generation: gen}
		// Platforms may answer synchronously from inside Check.
		if !c.workers.Go(func() { c.post(ev) }) {
			metrics.RecordEventDropped("closed")
		}
	})
	if decision != permission.Pending {
		return false
	}
	metrics.RecordPermissionOutcome("requested")
	c.logger.Info().
		Str("event", "permission.requested").
		Str("session_id", c.s.id).
		Uint64("generation", gen).
		Msg("waiting for storage permission")
	c.collab.PermissionRequested(permission.ReadExternalStorage)
	return true
}

// buildAndStart runs DRM, engine construction and source resolution from
// Initializing.
func (c *Controller) buildAndStart(ctx context.Context) error {
	req := c.s.request
	var mgr *drm.SessionManager
	if req.Drm != nil {
		var err error
		mgr, err = c.buildDrm(ctx, *req.Drm)
		if err != nil {
			c.s.lastErr = err
			metrics.RecordDrmFailure(drm.ReasonOf(err).String())
			msg := err.Error()
			var ude *drm.UnsupportedDrmError
			if errors.As(err, &ude) {
				msg = ude.UserMessage()
			}
			c.diagnose(model.Diagnostic{
				Kind:    model.DiagDrmError,
				Message: msg,
				Details: map[string]string{"reason": drm.ReasonOf(err).String(), "scheme": model.DrmSchemeName(req.Drm.SchemeID)},
			})
			if ferr := c.fire(ctx, lifecycle.EvDrmFailed, drm.ReasonOf(err).String()); ferr != nil {
				return ferr
			}
			return err
		}
	}

	c.s.engineSeq++
	seq := c.s.engineSeq
	eng, err := c.cfg.Engines.NewEngine(ctx, ports.EngineOptions{
		Drm:                     mgr,
		PreferExtensionDecoders: req.PreferExtensionDecoders,
		Events:                  engineSink{c: c, seq: seq},
	})
	if err != nil {
		if mgr != nil {
			mgr.Close()
		}
		metrics.RecordEngineBuild("failed")
		err = &model.GenericEngineError{Message: "engine construction failed", Cause: err}
		c.s.lastErr = err
		c.diagnose(model.Diagnostic{Kind: model.DiagEngineError, Message: err.Error()})
		if ferr := c.fire(ctx, lifecycle.EvEngineBuildFailed, ""); ferr != nil {
			return ferr
		}
		return err
	}
	metrics.RecordEngineBuild("built")

	c.s.engine = eng
	c.s.drm = mgr
	c.s.sourceNeeded = true
	eng.SeekTo(c.s.saved.PeriodIndex, c.s.saved.PositionMs)
	eng.SetPlayWhenReady(true)
	c.startReporter(seq)

	trace.SpanFromContext(ctx).SetAttributes(telemetry.PositionAttributes(c.s.saved.PeriodIndex, c.s.saved.PositionMs)...)
	c.logger.Info().
		Str("event", "playback.engine_built").
		Str("session_id", c.s.id).
		Int("period_index", c.s.saved.PeriodIndex).
		Int64("position_ms", c.s.saved.PositionMs).
		Bool("drm", mgr != nil).
		Msg("engine constructed")

	if err := c.fire(ctx, lifecycle.EvEngineReady, ""); err != nil {
		return err
	}
	return c.resolveSources(ctx)
}

func (c *Controller) buildDrm(ctx context.Context, d model.DrmDescriptor) (*drm.SessionManager, error) {
	if c.cfg.Drm == nil {
		return nil, &drm.UnsupportedDrmError{Reason: drm.ReasonUnknown, Cause: fmt.Errorf("no drm builder configured")}
	}
	mgr, err := c.cfg.Drm.Build(ctx, d.SchemeID, d.LicenseURL)
	if err != nil {
		return nil, err
	}
	if mgr == nil {
		return nil, &drm.UnsupportedDrmError{Reason: drm.ReasonPlatformTooOld}
	}
	return mgr, nil
}

// resolveSources hands the composed source of the current request to the
// engine. Requires an engine with sourceNeeded set.
func (c *Controller) resolveSources(ctx context.Context) error {
	src, err := c.cfg.Resolver.ResolveAll(c.s.request.Items)
	if err != nil {
		return fmt.Errorf("resolve sources: %w", err)
	}
	c.s.engine.SetSource(src)
	c.s.sourceNeeded = false
	metrics.RecordSourceResolved(src.Type().String())
	c.collab.SourceResolved(src)
	c.logger.Info().
		Str("event", "playback.sources_resolved").
		Str("session_id", c.s.id).
		Str("content_type", src.Type().String()).
		Int("source_count", len(c.s.request.Items)).
		Msg("source handed to engine")

	if c.s.state == model.SessionSourcePending {
		c.publishState()
		return nil
	}
	return c.fire(ctx, lifecycle.EvSourcesResolved, src.Type().String())
}

// startFresh discards the current session for an unrelated request.
func (c *Controller) startFresh(ctx context.Context, req model.PlaybackRequest) {
	c.teardown(ctx, "new request")
	c.s.saved = model.Position{}
	c.s.request = &req
	c.s.discarded = nil
	c.s.id = uuid.NewString()
	c.s.lastErr = nil
	c.logger.Info().
		Str("event", "playback.new_request").
		Str("session_id", c.s.id).
		Str("locator", platformnet.SanitizeURL(string(req.Items[0].Locator))).
		Int("source_count", len(req.Items)).
		Msg("new playback request accepted")
	c.publishState()
}

func (c *Controller) handleNewRequest(ctx context.Context, ev newRequestEvent) error {
	req := ev.req
	c.startFresh(ctx, req)
	return nil
}
