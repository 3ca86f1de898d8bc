// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package tracks summarises engine track information into per-type support
// levels and selection affordances.
package tracks

import "github.com/ManuGH/playbackctl/internal/domain/playback/model"

// Report is the strongest support level seen per track type.
type Report struct {
	Audio model.SupportLevel `json:"audio"`
	Video model.SupportLevel `json:"video"`
	Text  model.SupportLevel `json:"text"`
}

// Affordance is one per-renderer selection control.
type Affordance struct {
	RendererIndex int             `json:"renderer_index"`
	Type          model.TrackType `json:"type"`
	Label         string          `json:"label"`
}

// Result bundles everything derived from one TrackInfo.
type Result struct {
	Report      Report
	Diagnostics []model.Diagnostic
	Affordances []Affordance
}

// Aggregate derives the report, diagnostics and affordances for info.
// Affordances replace any previously published set.
func Aggregate(info model.TrackInfo) Result {
	var res Result
	for i, r := range info.Renderers {
		switch r.Type {
		case model.TrackTypeAudio:
			res.Report.Audio = max(res.Report.Audio, r.Support)
		case model.TrackTypeVideo:
			res.Report.Video = max(res.Report.Video, r.Support)
		case model.TrackTypeText:
			res.Report.Text = max(res.Report.Text, r.Support)
		default:
			continue
		}
		if r.HasTracks() {
			res.Affordances = append(res.Affordances, Affordance{
				RendererIndex: i,
				Type:          r.Type,
				Label:         affordanceLabel(r.Type),
			})
		}
	}
	if res.Report.Video == model.SupportUnplayableOnly {
		res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
			Kind:    model.DiagUnsupportedVideo,
			Message: "Media includes video tracks, but none are playable by this device",
		})
	}
	if res.Report.Audio == model.SupportUnplayableOnly {
		res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
			Kind:    model.DiagUnsupportedAudio,
			Message: "Media includes audio tracks, but none are playable by this device",
		})
	}
	return res
}

// affordanceLabel is only reached for audio, video and text renderers.
func affordanceLabel(t model.TrackType) string {
	switch t {
	case model.TrackTypeAudio:
		return "Audio"
	case model.TrackTypeVideo:
		return "Video"
	default:
		return "Text"
	}
}
