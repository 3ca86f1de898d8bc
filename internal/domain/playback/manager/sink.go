// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
)

// engineSink serializes engine callbacks onto the controller queue, tagged
// with the engine they came from.
type engineSink struct {
	c   *Controller
	seq uint64
}

func (s engineSink) OnTracksChanged(info model.TrackInfo) {
	s.c.post(trackInfoEvent{engineSeq: s.seq, info: info})
}

func (s engineSink) OnPlayerError(err error) {
	s.c.post(engineErrorEvent{engineSeq: s.seq, err: err})
}

func (s engineSink) OnPlayerStateChanged(playWhenReady bool, state ports.PlaybackState) {
	s.c.post(playerStateEvent{engineSeq: s.seq, playWhenReady: playWhenReady, state: state})
}

func (s engineSink) OnPositionDiscontinuity(periodIndex int, positionMs int64) {
	s.c.post(discontinuityEvent{engineSeq: s.seq, periodIndex: periodIndex, positionMs: positionMs})
}

func (s engineSink) OnVideoSizeChanged(size ports.VideoSize) {
	s.c.post(videoSizeEvent{engineSeq: s.seq, size: size})
}

func (s engineSink) OnCues(cues []ports.Cue) {
	s.c.post(cuesEvent{engineSeq: s.seq, cues: append([]ports.Cue(nil), cues...)})
}

func (s engineSink) OnMetadata(frames []ports.MetadataFrame) {
	s.c.post(metadataEvent{engineSeq: s.seq, frames: append([]ports.MetadataFrame(nil), frames...)})
}

var _ ports.EventSink = engineSink{}
