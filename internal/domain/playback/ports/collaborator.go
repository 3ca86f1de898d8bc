// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import (
	"github.com/ManuGH/playbackctl/internal/domain/playback/content"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/permission"
	"github.com/ManuGH/playbackctl/internal/domain/playback/tracks"
)

// Collaborator is the UI-side consumer of controller notifications.
// All methods are called from the controller's event loop and must not block.
type Collaborator interface {
	SourceResolved(src content.Source)
	CapabilityReport(report tracks.Report, affordances []tracks.Affordance)
	Diagnostic(d model.Diagnostic)
	PermissionRequested(cap permission.Capability)
	StateChanged(snap model.Snapshot)
	Presentation(ev PresentationEvent)
}

// PresentationKind tags a PresentationEvent.
type PresentationKind string

const (
	PresentVideoAspect    PresentationKind = "video_aspect"
	PresentCues           PresentationKind = "cues"
	PresentPlaybackEnded  PresentationKind = "playback_ended"
	PresentDiscontinuity  PresentationKind = "position_discontinuity"
	PresentPositionUpdate PresentationKind = "position_update"
)

// PresentationEvent carries display-only updates.
type PresentationEvent struct {
	Kind        PresentationKind `json:"kind"`
	AspectRatio float64          `json:"aspect_ratio,omitempty"`
	Cues        []Cue            `json:"cues,omitempty"`
	Position    model.Position   `json:"position"`
}

// NopCollaborator discards every notification.
type NopCollaborator struct{}

func (NopCollaborator) SourceResolved(content.Source)                       {}
func (NopCollaborator) CapabilityReport(tracks.Report, []tracks.Affordance) {}
func (NopCollaborator) Diagnostic(model.Diagnostic)                         {}
func (NopCollaborator) PermissionRequested(permission.Capability)           {}
func (NopCollaborator) StateChanged(model.Snapshot)                         {}
func (NopCollaborator) Presentation(PresentationEvent)                      {}

var _ Collaborator = NopCollaborator{}
