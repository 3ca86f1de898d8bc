// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"errors"

	"github.com/ManuGH/playbackctl/internal/datasource"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
)

var ErrNoItems = errors.New("content: no media items to resolve")

// Resolver turns media items into source descriptors. Classification never
// fails; only engine-side construction can.
type Resolver struct {
	Manifest   *datasource.Factory
	Media      *datasource.Factory
	Evaluator  FormatEvaluator
	Extractors []string
}

// NewResolver returns a resolver that loads manifests through manifest and
// media data through a bandwidth-metered copy of media.
func NewResolver(manifest, media *datasource.Factory) *Resolver {
	if media != nil && !media.BandwidthMeter {
		media = media.WithBandwidthMeter()
	}
	return &Resolver{
		Manifest:   manifest,
		Media:      media,
		Evaluator:  EvaluatorAdaptive,
		Extractors: DefaultExtractors,
	}
}

// Resolve produces exactly one descriptor for item.
func (r *Resolver) Resolve(item model.MediaItem) Source {
	switch TypeFor(item.Locator, item.ExtensionHint) {
	case TypeSmoothStreaming:
		return &SmoothStreamingSource{
			Locator:            item.Locator,
			ManifestDataSource: r.Manifest,
			Chunks:             ChunkSourceFactory{DataSource: r.Media, Evaluator: r.Evaluator},
		}
	case TypeDash:
		return &DashSource{
			Locator:            item.Locator,
			ManifestDataSource: r.Media,
			Chunks:             ChunkSourceFactory{DataSource: r.Media, Evaluator: r.Evaluator},
		}
	case TypeHls:
		return &HlsSource{Locator: item.Locator, DataSource: r.Media, Evaluator: r.Evaluator}
	default:
		return &ProgressiveSource{
			Locator:    item.Locator,
			DataSource: r.Media,
			Extractors: append([]string(nil), r.Extractors...),
		}
	}
}

// ResolveAll resolves every item and composes the result: one item is passed
// through unchanged, several are wrapped in request order.
func (r *Resolver) ResolveAll(items []model.MediaItem) (Source, error) {
	switch len(items) {
	case 0:
		return nil, ErrNoItems
	case 1:
		return r.Resolve(items[0]), nil
	}
	children := make([]Source, len(items))
	for i, it := range items {
		children[i] = r.Resolve(it)
	}
	return &ConcatenatingSource{Children: children}, nil
}
