// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package sim is a configurable host platform: API level, storage grant state
// and supported DRM schemes come from configuration, and permission prompts
// are answered through Resolve.
package sim

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ManuGH/playbackctl/internal/domain/playback/drm"
	"github.com/ManuGH/playbackctl/internal/domain/playback/permission"
	"github.com/ManuGH/playbackctl/internal/log"
)

type Config struct {
	APILevel       int
	StorageGranted bool
	DrmSchemes     []uuid.UUID
}

// Platform implements drm.Platform and permission.Platform.
type Platform struct {
	mu       sync.Mutex
	level    int
	granted  map[permission.Capability]bool
	schemes  map[uuid.UUID]bool
	pending  func(bool)
	requests int
}

func New(cfg Config) *Platform {
	p := &Platform{
		level:   cfg.APILevel,
		granted: make(map[permission.Capability]bool),
		schemes: make(map[uuid.UUID]bool, len(cfg.DrmSchemes)),
	}
	p.granted[permission.ReadExternalStorage] = cfg.StorageGranted
	for _, id := range cfg.DrmSchemes {
		p.schemes[id] = true
	}
	return p
}

func (p *Platform) APILevel() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *Platform) SupportsScheme(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.schemes[id]
}

func (p *Platform) HasPermission(c permission.Capability) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.granted[c]
}

// RequestPermission records callback until Resolve answers it. A newer
// request replaces an unanswered one.
func (p *Platform) RequestPermission(c permission.Capability, callback func(granted bool)) {
	p.mu.Lock()
	p.pending = callback
	p.requests++
	p.mu.Unlock()
	log.L().Info().Str("event", "permission.prompt").Str("capability", string(c)).Msg("permission prompt shown")
}

// Pending reports whether a permission prompt is waiting for an answer.
func (p *Platform) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// Requests returns how many prompts have been shown.
func (p *Platform) Requests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests
}

// Resolve answers the outstanding prompt. It returns false when none is
// pending. A grant is remembered for later checks.
func (p *Platform) Resolve(granted bool) bool {
	p.mu.Lock()
	cb := p.pending
	p.pending = nil
	if cb != nil && granted {
		p.granted[permission.ReadExternalStorage] = true
	}
	p.mu.Unlock()
	if cb == nil {
		return false
	}
	cb(granted)
	return true
}

// Reconfigure applies new platform settings; an outstanding prompt is kept.
func (p *Platform) Reconfigure(cfg Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = cfg.APILevel
	p.granted[permission.ReadExternalStorage] = cfg.StorageGranted || p.granted[permission.ReadExternalStorage]
	p.schemes = make(map[uuid.UUID]bool, len(cfg.DrmSchemes))
	for _, id := range cfg.DrmSchemes {
		p.schemes[id] = true
	}
}

var (
	_ drm.Platform        = (*Platform)(nil)
	_ permission.Platform = (*Platform)(nil)
)
