// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package bus is the in-process notification fan-out between the playback
// controller and its observers.
package bus

import "context"

// Topics published by the controller's collaborator adapter.
const (
	TopicState        = "playback.state"
	TopicSource       = "playback.source"
	TopicCapabilities = "playback.capabilities"
	TopicDiagnostic   = "playback.diagnostic"
	TopicPermission   = "playback.permission"
	TopicPresentation = "playback.presentation"
)

// Message is any notification payload.
type Message any

type Bus interface {
	Publish(ctx context.Context, topic string, msg Message) error
	Subscribe(ctx context.Context, topic string) (Subscriber, error)
}

type Subscriber interface {
	C() <-chan Message
	Close() error
}
