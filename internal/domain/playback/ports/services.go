// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ManuGH/playbackctl/internal/domain/playback/content"
	"github.com/ManuGH/playbackctl/internal/domain/playback/drm"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/permission"
)

// DrmBuilder is satisfied by *drm.Builder.
type DrmBuilder interface {
	Build(ctx context.Context, scheme uuid.UUID, licenseURL string) (*drm.SessionManager, error)
}

// PermissionGate is satisfied by *permission.Gate.
type PermissionGate interface {
	Check(locators []model.Locator, callback func(granted bool)) permission.Decision
}

// SourceResolver is satisfied by *content.Resolver.
type SourceResolver interface {
	ResolveAll(items []model.MediaItem) (content.Source, error)
}

var (
	_ DrmBuilder     = (*drm.Builder)(nil)
	_ PermissionGate = (*permission.Gate)(nil)
	_ SourceResolver = (*content.Resolver)(nil)
)
