// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package stub is an in-process engine that records the calls it receives.
// The daemon uses it when no real media runtime is linked, and tests use it
// to script engine callbacks.
package stub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ManuGH/playbackctl/internal/domain/playback/content"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
)

// ErrReleased is returned by emit helpers on a released engine.
var ErrReleased = errors.New("stub engine released")

// Factory builds stub engines.
type Factory struct {
	// AutoAdvance makes position advance with wall time while playing.
	AutoAdvance bool
	// TracksOnSource, when set, is reported to the sink after each SetSource.
	TracksOnSource *model.TrackInfo

	mu      sync.Mutex
	engines []*Engine
	failErr error
	wg      sync.WaitGroup
}

// FailNext makes the next NewEngine call return err.
func (f *Factory) FailNext(err error) {
	f.mu.Lock()
	f.failErr = err
	f.mu.Unlock()
}

func (f *Factory) NewEngine(ctx context.Context, opts ports.EngineOptions) (ports.Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failErr; err != nil {
		f.failErr = nil
		return nil, err
	}
	e := &Engine{
		ID:      fmt.Sprintf("stub-%s", uuid.NewString()),
		factory: f,
		opts:    opts,
		sink:    opts.Events,
	}
	f.engines = append(f.engines, e)
	return e, nil
}

// Engines returns every engine built so far, oldest first.
func (f *Factory) Engines() []*Engine {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Engine(nil), f.engines...)
}

// Last returns the most recently built engine, or nil.
func (f *Factory) Last() *Engine {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.engines) == 0 {
		return nil
	}
	return f.engines[len(f.engines)-1]
}

// Wait blocks until background callbacks started by engines have returned.
func (f *Factory) Wait() {
	f.wg.Wait()
}

// Engine is a scripted ports.Engine.
type Engine struct {
	ID string

	factory *Factory

	mu            sync.Mutex
	opts          ports.EngineOptions
	sink          ports.EventSink
	seeks         []model.Position
	sources       []content.Source
	playWhenReady bool
	period        int
	position      int64
	playingSince  time.Time
	released      int
}

func (e *Engine) SeekTo(periodIndex int, positionMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seeks = append(e.seeks, model.Position{PeriodIndex: periodIndex, PositionMs: positionMs})
	e.period = periodIndex
	e.position = positionMs
	if !e.playingSince.IsZero() {
		e.playingSince = time.Now()
	}
}

func (e *Engine) SetPlayWhenReady(play bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settle()
	e.playWhenReady = play
	e.updateClock()
}

func (e *Engine) SetSource(src content.Source) {
	e.mu.Lock()
	e.sources = append(e.sources, src)
	e.updateClock()
	sink := e.sink
	e.mu.Unlock()

	if info := e.factory.TracksOnSource; info != nil && sink != nil {
		snapshot := *info
		e.factory.wg.Add(1)
		go func() {
			defer e.factory.wg.Done()
			sink.OnTracksChanged(snapshot)
		}()
	}
}

func (e *Engine) CurrentPeriodIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.period
}

func (e *Engine) CurrentPosition() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playingSince.IsZero() {
		return e.position
	}
	return e.position + time.Since(e.playingSince).Milliseconds()
}

// Release drops the sink; callbacks after release are not delivered.
func (e *Engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settle()
	e.playingSince = time.Time{}
	e.released++
	e.sink = nil
}

// settle folds elapsed play time into position.
func (e *Engine) settle() {
	if !e.playingSince.IsZero() {
		e.position += time.Since(e.playingSince).Milliseconds()
		e.playingSince = time.Now()
	}
}

func (e *Engine) updateClock() {
	playing := e.factory.AutoAdvance && e.playWhenReady && len(e.sources) > 0 && e.released == 0
	switch {
	case playing && e.playingSince.IsZero():
		e.playingSince = time.Now()
	case !playing:
		e.playingSince = time.Time{}
	}
}

// SetPosition moves the playhead as if playback had progressed.
func (e *Engine) SetPosition(periodIndex int, positionMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.period = periodIndex
	e.position = positionMs
}

func (e *Engine) Options() ports.EngineOptions {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *Engine) Seeks() []model.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.Position(nil), e.seeks...)
}

func (e *Engine) Sources() []content.Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]content.Source(nil), e.sources...)
}

func (e *Engine) PlayWhenReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playWhenReady
}

func (e *Engine) ReleaseCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.released
}

// emit runs fn against the sink on a separate goroutine, the way a real
// engine calls back from its playback thread, and waits for it to return.
func (e *Engine) emit(fn func(ports.EventSink)) error {
	e.mu.Lock()
	sink := e.sink
	e.mu.Unlock()
	if sink == nil {
		return ErrReleased
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(sink)
	}()
	<-done
	return nil
}

func (e *Engine) EmitTracks(info model.TrackInfo) error {
	return e.emit(func(s ports.EventSink) { s.OnTracksChanged(info) })
}

func (e *Engine) EmitError(err error) error {
	return e.emit(func(s ports.EventSink) { s.OnPlayerError(err) })
}

func (e *Engine) EmitState(playWhenReady bool, state ports.PlaybackState) error {
	return e.emit(func(s ports.EventSink) { s.OnPlayerStateChanged(playWhenReady, state) })
}

func (e *Engine) EmitDiscontinuity(periodIndex int, positionMs int64) error {
	return e.emit(func(s ports.EventSink) { s.OnPositionDiscontinuity(periodIndex, positionMs) })
}

func (e *Engine) EmitVideoSize(size ports.VideoSize) error {
	return e.emit(func(s ports.EventSink) { s.OnVideoSizeChanged(size) })
}

func (e *Engine) EmitCues(cues []ports.Cue) error {
	return e.emit(func(s ports.EventSink) { s.OnCues(cues) })
}

func (e *Engine) EmitMetadata(frames []ports.MetadataFrame) error {
	return e.emit(func(s ports.EventSink) { s.OnMetadata(frames) })
}

var (
	_ ports.EngineFactory = (*Factory)(nil)
	_ ports.Engine        = (*Engine)(nil)
)
