// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package manager implements the playback session controller. All session
// state is owned by a single event loop; public methods and engine callbacks
// reach it through one serialized queue.
package manager

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/playbackctl/internal/domain/playback/lifecycle"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
	"github.com/ManuGH/playbackctl/internal/domain/playback/store"
	"github.com/ManuGH/playbackctl/internal/log"
	"github.com/ManuGH/playbackctl/internal/metrics"
	"github.com/ManuGH/playbackctl/internal/telemetry"
)

const (
	defaultQueueSize        = 64
	defaultPositionInterval = time.Second
	shutdownDrainTimeout    = 5 * time.Second
)

var errAlreadyRunning = errors.New("manager: controller already running")

// Config wires the controller's collaborators. Engines, Gate and Resolver are
// required; Drm is required only for requests that carry a DRM descriptor.
type Config struct {
	Engines      ports.EngineFactory
	Drm          ports.DrmBuilder
	Gate         ports.PermissionGate
	Resolver     ports.SourceResolver
	Collaborator ports.Collaborator
	Journal      store.Journal

	// PositionInterval is the position reporter period. Zero means one second;
	// negative disables the reporter.
	PositionInterval time.Duration
	QueueSize        int
}

// Controller is the session lifecycle manager.
type Controller struct {
	cfg      Config
	collab   ports.Collaborator
	logger   zerolog.Logger
	tracer   trace.Tracer
	handlers map[reflect.Type]handlerFunc

	events  chan envelope
	stopped chan struct{}
	workers workerRegistry

	runMu   sync.Mutex
	running bool
	baseCtx context.Context

	// Owned by the event loop.
	s session
}

// New validates cfg and returns an idle controller. Call Run to start it.
func New(cfg Config) (*Controller, error) {
	switch {
	case cfg.Engines == nil:
		return nil, errors.New("manager: engine factory is required")
	case cfg.Gate == nil:
		return nil, errors.New("manager: permission gate is required")
	case cfg.Resolver == nil:
		return nil, errors.New("manager: source resolver is required")
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.PositionInterval == 0 {
		cfg.PositionInterval = defaultPositionInterval
	}
	collab := cfg.Collaborator
	if collab == nil {
		collab = ports.NopCollaborator{}
	}
	c := &Controller{
		cfg:      cfg,
		collab:   collab,
		logger:   log.WithComponent("playback"),
		tracer:   telemetry.Tracer("playbackctl/manager"),
		handlers: make(map[reflect.Type]handlerFunc),
		events:   make(chan envelope, cfg.QueueSize),
		stopped:  make(chan struct{}),
		baseCtx:  context.Background(),
		s:        newSession(),
	}
	c.registerHandlers()
	return c, nil
}

// Run processes events until ctx is done. On exit the session is torn down,
// the same way Release does, and all controller goroutines are joined.
func (c *Controller) Run(ctx context.Context) error {
	c.runMu.Lock()
	if c.running {
		c.runMu.Unlock()
		return errAlreadyRunning
	}
	c.running = true
	c.baseCtx = ctx
	c.runMu.Unlock()

	c.logger.Info().Str("event", "playback.loop_started").Msg("playback controller started")
	for {
		select {
		case env := <-c.events:
			if env.ctx == nil {
				env.ctx = ctx
			}
			c.dispatch(env)
		case <-ctx.Done():
			return c.shutdown()
		}
	}
}

func (c *Controller) shutdown() error {
	// Detached from the cancelled run context so teardown bookkeeping completes.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.baseCtx), shutdownDrainTimeout)
	defer cancel()

	c.teardown(ctx, "shutdown")
	close(c.stopped)
	err := c.workers.CloseAndWait(ctx)
	c.logger.Info().Str("event", "playback.loop_stopped").Msg("playback controller stopped")
	return err
}

// call enqueues ev and waits for its handler to finish.
func (c *Controller) call(ctx context.Context, ev any) error {
	env := envelope{ctx: ctx, ev: ev, done: make(chan error, 1)}
	select {
	case c.events <- env:
	case <-c.stopped:
		return lifecycle.ErrControllerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-env.done:
		return err
	case <-c.stopped:
		select {
		case err := <-env.done:
			return err
		default:
			return lifecycle.ErrControllerClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post enqueues ev without waiting for it to be handled. It blocks while the
// queue is full and gives up once the controller has stopped.
func (c *Controller) post(ev any) {
	select {
	case c.events <- envelope{ev: ev}:
	case <-c.stopped:
		metrics.RecordEventDropped("closed")
	}
}

// tryPost enqueues ev only if the queue has room.
func (c *Controller) tryPost(ev any) {
	select {
	case c.events <- envelope{ev: ev}:
	case <-c.stopped:
		metrics.RecordEventDropped("closed")
	default:
		metrics.RecordEventDropped("full")
	}
}

// Initialize starts or resumes playback. A nil req retries the current
// request; a request different from the current one starts a fresh session.
func (c *Controller) Initialize(ctx context.Context, req *model.PlaybackRequest) error {
	if req != nil {
		if err := req.Validate(); err != nil {
			return err
		}
		cp := req.Clone()
		req = &cp
	}
	return c.call(ctx, initializeEvent{req: req})
}

// NewRequest replaces the current request: the session is released and the
// saved position reset. Playback starts on the next Initialize.
func (c *Controller) NewRequest(ctx context.Context, req model.PlaybackRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.call(ctx, newRequestEvent{req: req.Clone()})
}

// Release tears the session down. Releasing twice is a no-op.
func (c *Controller) Release(ctx context.Context) error {
	return c.call(ctx, releaseEvent{})
}

// OnPermissionResult resolves an outstanding permission request.
func (c *Controller) OnPermissionResult(ctx context.Context, granted bool) error {
	return c.call(ctx, permissionResult{granted: granted})
}

// OnTrackInfoChanged feeds a track snapshot for the current engine.
func (c *Controller) OnTrackInfoChanged(ctx context.Context, info model.TrackInfo) error {
	return c.call(ctx, trackInfoEvent{info: info})
}

// OnEngineError reports a fatal error of the current engine.
func (c *Controller) OnEngineError(ctx context.Context, err error) error {
	return c.call(ctx, engineErrorEvent{err: err})
}

// Snapshot returns a copy of the session record.
func (c *Controller) Snapshot(ctx context.Context) (model.Snapshot, error) {
	var snap model.Snapshot
	if err := c.call(ctx, snapshotQuery{out: &snap}); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}
