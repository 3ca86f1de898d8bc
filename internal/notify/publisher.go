// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package notify turns controller notifications into bus messages and keeps
// a short feed of them for the control API.
package notify

import (
	"time"

	"github.com/ManuGH/playbackctl/internal/bus"
	"github.com/ManuGH/playbackctl/internal/domain/playback/content"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/permission"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
	"github.com/ManuGH/playbackctl/internal/domain/playback/tracks"
)

// Event is the envelope published on every playback topic.
type Event struct {
	Seq     uint64    `json:"seq"`
	Topic   string    `json:"topic"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

// SourceSummary describes a resolved source without its data-source wiring.
type SourceSummary struct {
	Type     content.Type    `json:"type"`
	Locators []model.Locator `json:"locators"`
	Children []content.Type  `json:"children,omitempty"`
}

// CapabilityPayload is published on bus.TopicCapabilities.
type CapabilityPayload struct {
	Report      tracks.Report       `json:"report"`
	Affordances []tracks.Affordance `json:"affordances"`
}

// PermissionPayload is published on bus.TopicPermission.
type PermissionPayload struct {
	Capability permission.Capability `json:"capability"`
}

// Publisher is a ports.Collaborator that never blocks the controller loop.
type Publisher struct {
	Bus *bus.MemoryBus
	Now func() time.Time
}

func NewPublisher(b *bus.MemoryBus) *Publisher {
	return &Publisher{Bus: b, Now: time.Now}
}

func (p *Publisher) publish(topic string, payload any) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	p.Bus.TryPublish(topic, Event{Topic: topic, At: now(), Payload: payload})
}

func (p *Publisher) SourceResolved(src content.Source) {
	p.publish(bus.TopicSource, Summarize(src))
}

func (p *Publisher) CapabilityReport(report tracks.Report, affordances []tracks.Affordance) {
	p.publish(bus.TopicCapabilities, CapabilityPayload{
		Report:      report,
		Affordances: append([]tracks.Affordance(nil), affordances...),
	})
}

func (p *Publisher) Diagnostic(d model.Diagnostic) {
	p.publish(bus.TopicDiagnostic, d)
}

func (p *Publisher) PermissionRequested(c permission.Capability) {
	p.publish(bus.TopicPermission, PermissionPayload{Capability: c})
}

func (p *Publisher) StateChanged(snap model.Snapshot) {
	p.publish(bus.TopicState, snap)
}

func (p *Publisher) Presentation(ev ports.PresentationEvent) {
	p.publish(bus.TopicPresentation, ev)
}

// Summarize flattens src for publication.
func Summarize(src content.Source) SourceSummary {
	sum := SourceSummary{Type: src.Type(), Locators: src.Locators()}
	if cs, ok := src.(*content.ConcatenatingSource); ok {
		for _, c := range cs.Children {
			sum.Children = append(sum.Children, c.Type())
		}
	}
	return sum
}

var _ ports.Collaborator = (*Publisher)(nil)
