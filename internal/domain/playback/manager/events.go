// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"fmt"
	"reflect"

	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
	"github.com/ManuGH/playbackctl/internal/log"
)

// Events processed by the loop. Engine-originated events carry the sequence
// number of the engine that produced them so that callbacks from a released
// engine are discarded.
type (
	initializeEvent struct {
		req *model.PlaybackRequest
	}
	newRequestEvent struct {
		req model.PlaybackRequest
	}
	releaseEvent     struct{}
	permissionResult struct {
		granted bool
		// generation is 0 for direct calls, which target the current attempt.
		generation uint64
	}
	trackInfoEvent struct {
		engineSeq uint64
		info      model.TrackInfo
	}
	engineErrorEvent struct {
		engineSeq uint64
		err       error
	}
	playerStateEvent struct {
		engineSeq     uint64
		playWhenReady bool
		state         ports.PlaybackState
	}
	discontinuityEvent struct {
		engineSeq   uint64
		periodIndex int
		positionMs  int64
	}
	videoSizeEvent struct {
		engineSeq uint64
		size      ports.VideoSize
	}
	cuesEvent struct {
		engineSeq uint64
		cues      []ports.Cue
	}
	metadataEvent struct {
		engineSeq uint64
		frames    []ports.MetadataFrame
	}
	positionTick struct {
		engineSeq uint64
	}
	snapshotQuery struct {
		out *model.Snapshot
	}
)

// envelope is one queued event. done is nil for fire-and-forget posts.
type envelope struct {
	ctx  context.Context
	ev   any
	done chan error
}

type handlerFunc func(ctx context.Context, ev any) error

// register binds fn as the handler for events of type E.
func register[E any](c *Controller, fn func(ctx context.Context, ev E) error) {
	t := reflect.TypeFor[E]()
	if _, dup := c.handlers[t]; dup {
		panic(fmt.Sprintf("manager: duplicate handler for %s", t))
	}
	c.handlers[t] = func(ctx context.Context, ev any) error {
		return fn(ctx, ev.(E))
	}
}

func (c *Controller) registerHandlers() {
	register(c, c.handleInitialize)
	register(c, c.handleNewRequest)
	register(c, c.handleRelease)
	register(c, c.handlePermissionResult)
	register(c, c.handleTrackInfo)
	register(c, c.handleEngineError)
	register(c, c.handlePlayerState)
	register(c, c.handleDiscontinuity)
	register(c, c.handleVideoSize)
	register(c, c.handleCues)
	register(c, c.handleMetadata)
	register(c, c.handlePositionTick)
	register(c, c.handleSnapshot)
}

func (c *Controller) dispatch(env envelope) {
	ctx := log.ContextWithSessionID(env.ctx, c.s.id)
	h, ok := c.handlers[reflect.TypeOf(env.ev)]
	var err error
	if !ok {
		err = fmt.Errorf("manager: no handler for %T", env.ev)
		logger := log.WithContext(ctx, c.logger)
		logger.Error().Str("event", "playback.unhandled_event").Msg(err.Error())
	} else if err = h(ctx, env.ev); err != nil {
		logger := log.WithContext(ctx, c.logger)
		logger.Debug().Err(err).Str("event", "playback.event_failed").Str("type", fmt.Sprintf("%T", env.ev)).Msg("event rejected")
	}
	if env.done != nil {
		env.done <- err
	}
}
