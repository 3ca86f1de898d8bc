// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

// TrackType is the media type a renderer handles.
type TrackType int

const (
	TrackTypeUnknown TrackType = iota
	TrackTypeAudio
	TrackTypeVideo
	TrackTypeText
	TrackTypeMetadata
)

func (t TrackType) String() string {
	switch t {
	case TrackTypeAudio:
		return "audio"
	case TrackTypeVideo:
		return "video"
	case TrackTypeText:
		return "text"
	case TrackTypeMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// MarshalText renders the type by name.
func (t TrackType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SupportLevel classifies whether a renderer can play the tracks mapped to it.
// The numeric order is significant: NoTracks < UnplayableOnly < Playable.
type SupportLevel int

const (
	SupportNoTracks SupportLevel = iota
	SupportUnplayableOnly
	SupportPlayable
)

func (s SupportLevel) String() string {
	switch s {
	case SupportNoTracks:
		return "no_tracks"
	case SupportUnplayableOnly:
		return "unplayable_only"
	case SupportPlayable:
		return "playable"
	default:
		return "invalid"
	}
}

// MarshalText renders the support level by name.
func (s SupportLevel) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Track is one selectable format inside a track group.
type Track struct {
	ID        string `json:"id"`
	MimeType  string `json:"mime_type"`
	Supported bool   `json:"supported"`
}

// TrackGroup is a set of adaptive alternatives of the same content.
type TrackGroup struct {
	Tracks []Track `json:"tracks"`
}

// RendererTracks is what one engine renderer reports after track selection.
type RendererTracks struct {
	Type    TrackType    `json:"type"`
	Support SupportLevel `json:"support"`
	Groups  []TrackGroup `json:"groups"`
}

// HasTracks reports whether at least one track group is non-empty.
func (r RendererTracks) HasTracks() bool {
	for _, g := range r.Groups {
		if len(g.Tracks) > 0 {
			return true
		}
	}
	return false
}

// TrackInfo is the engine's track-info snapshot, one entry per renderer.
type TrackInfo struct {
	Renderers []RendererTracks `json:"renderers"`
}

// RendererCount returns the number of renderers in the snapshot.
func (ti TrackInfo) RendererCount() int { return len(ti.Renderers) }
