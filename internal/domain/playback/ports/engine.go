// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import (
	"context"

	"github.com/ManuGH/playbackctl/internal/domain/playback/content"
	"github.com/ManuGH/playbackctl/internal/domain/playback/drm"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
)

// Engine is the external media runtime driven by the controller.
// Implementations own decoding, rendering and transport.
type Engine interface {
	SeekTo(periodIndex int, positionMs int64)
	SetPlayWhenReady(play bool)
	SetSource(src content.Source)
	CurrentPeriodIndex() int
	CurrentPosition() int64
	Release()
}

// EngineOptions carries the construction parameters of one engine.
type EngineOptions struct {
	Drm                     *drm.SessionManager
	PreferExtensionDecoders bool
	Events                  EventSink
}

// EngineFactory builds engines. NewEngine must not retain opts.Events past Release.
type EngineFactory interface {
	NewEngine(ctx context.Context, opts EngineOptions) (Engine, error)
}

// PlaybackState mirrors the engine's playback state machine.
type PlaybackState int

const (
	PlaybackIdle PlaybackState = iota + 1
	PlaybackBuffering
	PlaybackReady
	PlaybackEnded
)

// VideoSize is reported when the decoded picture dimensions change.
type VideoSize struct {
	Width                 int
	Height                int
	UnappliedRotationDeg  int
	PixelWidthHeightRatio float64
}

// Cue is one timed text cue.
type Cue struct {
	Text string `json:"text"`
}

// MetadataFrame is one ID3 timed metadata frame.
type MetadataFrame struct {
	ID          string
	Description string
	Value       string
	Owner       string
	MimeType    string
	Filename    string
}

// EventSink receives engine callbacks. Engines may call it from any goroutine.
type EventSink interface {
	OnTracksChanged(info model.TrackInfo)
	OnPlayerError(err error)
	OnPlayerStateChanged(playWhenReady bool, state PlaybackState)
	OnPositionDiscontinuity(periodIndex int, positionMs int64)
	OnVideoSizeChanged(size VideoSize)
	OnCues(cues []Cue)
	OnMetadata(frames []MetadataFrame)
}
