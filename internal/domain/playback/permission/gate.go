// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package permission decides whether a request needs a runtime grant before
// playback can start.
package permission

import (
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
)

// Capability names a user-grantable platform permission.
type Capability string

const ReadExternalStorage Capability = "read_external_storage"

// RuntimeGrantAPILevel is the first platform level that grants permissions at runtime.
const RuntimeGrantAPILevel = 23

// Platform is the host's permission API. RequestPermission returns
// immediately; the callback fires once, possibly on another goroutine.
type Platform interface {
	APILevel() int
	HasPermission(c Capability) bool
	RequestPermission(c Capability, callback func(granted bool))
}

// Decision is the result of Check.
type Decision int

const (
	NotNeeded Decision = iota
	Pending
)

func (d Decision) String() string {
	if d == Pending {
		return "pending"
	}
	return "not_needed"
}

// Gate checks requests against the platform.
type Gate struct {
	Platform Platform
}

// NeedsGrant reports whether loc requires ReadExternalStorage to be granted.
func (g *Gate) NeedsGrant(loc model.Locator) bool {
	if g.Platform.APILevel() < RuntimeGrantAPILevel {
		return false
	}
	return loc.IsLocalFile() && !g.Platform.HasPermission(ReadExternalStorage)
}

// Check scans locators in order and stops at the first that needs a grant.
// In that case exactly one request is issued and Pending is returned; the
// callback later reports the user's answer.
func (g *Gate) Check(locators []model.Locator, callback func(granted bool)) Decision {
	for _, loc := range locators {
		if g.NeedsGrant(loc) {
			g.Platform.RequestPermission(ReadExternalStorage, callback)
			return Pending
		}
	}
	return NotNeeded
}
