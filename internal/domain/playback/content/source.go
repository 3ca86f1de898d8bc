// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"github.com/ManuGH/playbackctl/internal/datasource"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
)

// Source is a resolved descriptor the engine can build a playable source from.
// The set of implementations is closed.
type Source interface {
	Type() Type
	Locators() []model.Locator
	source()
}

// FormatEvaluator names the adaptive track selection strategy for chunked sources.
type FormatEvaluator string

const EvaluatorAdaptive FormatEvaluator = "adaptive"

// ChunkSourceFactory parameterises segment loading for SmoothStreaming and DASH.
type ChunkSourceFactory struct {
	DataSource *datasource.Factory
	Evaluator  FormatEvaluator
}

// DefaultExtractors lists the containers a progressive source probes, in order.
var DefaultExtractors = []string{"mkv", "fmp4", "mp4", "mp3", "adts", "ts", "flv", "ogg", "wav", "flac"}

// SmoothStreamingSource loads a Smooth Streaming manifest.
type SmoothStreamingSource struct {
	Locator            model.Locator
	ManifestDataSource *datasource.Factory
	Chunks             ChunkSourceFactory
}

// DashSource loads a DASH manifest.
type DashSource struct {
	Locator            model.Locator
	ManifestDataSource *datasource.Factory
	Chunks             ChunkSourceFactory
}

// HlsSource loads an HLS playlist.
type HlsSource struct {
	Locator    model.Locator
	DataSource *datasource.Factory
	Evaluator  FormatEvaluator
}

// ProgressiveSource reads a single extractable container.
type ProgressiveSource struct {
	Locator    model.Locator
	DataSource *datasource.Factory
	Extractors []string
}

// ConcatenatingSource plays its children back to back, in order.
type ConcatenatingSource struct {
	Children []Source
}

func (s *SmoothStreamingSource) Type() Type                { return TypeSmoothStreaming }
func (s *SmoothStreamingSource) Locators() []model.Locator { return []model.Locator{s.Locator} }
func (*SmoothStreamingSource) source()                     {}

func (s *DashSource) Type() Type                { return TypeDash }
func (s *DashSource) Locators() []model.Locator { return []model.Locator{s.Locator} }
func (*DashSource) source()                     {}

func (s *HlsSource) Type() Type                { return TypeHls }
func (s *HlsSource) Locators() []model.Locator { return []model.Locator{s.Locator} }
func (*HlsSource) source()                     {}

func (s *ProgressiveSource) Type() Type                { return TypeProgressive }
func (s *ProgressiveSource) Locators() []model.Locator { return []model.Locator{s.Locator} }
func (*ProgressiveSource) source()                     {}

// Type of a concatenation is the type of its first child.
func (s *ConcatenatingSource) Type() Type {
	if len(s.Children) == 0 {
		return TypeProgressive
	}
	return s.Children[0].Type()
}

func (s *ConcatenatingSource) Locators() []model.Locator {
	out := make([]model.Locator, 0, len(s.Children))
	for _, c := range s.Children {
		out = append(out, c.Locators()...)
	}
	return out
}

func (*ConcatenatingSource) source() {}
