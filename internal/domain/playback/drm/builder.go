// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package drm builds protected-playback session managers bound to a license
// server.
package drm

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ManuGH/playbackctl/internal/datasource"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	platformnet "github.com/ManuGH/playbackctl/internal/platform/net"
)

// MinAPILevel is the lowest platform level with DRM session support.
const MinAPILevel = 18

// Platform reports the DRM capabilities of the host.
type Platform interface {
	APILevel() int
	SupportsScheme(id uuid.UUID) bool
}

// Builder creates session managers.
type Builder struct {
	Platform   Platform
	DataSource *datasource.Factory
}

// Build returns a session manager for scheme bound to licenseURL.
//
// A nil manager with a nil error means the platform is too old for DRM; the
// caller decides how to surface that.
func (b *Builder) Build(ctx context.Context, scheme uuid.UUID, licenseURL string) (*SessionManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.Platform.APILevel() < MinAPILevel {
		return nil, nil
	}
	if !b.Platform.SupportsScheme(scheme) {
		return nil, &UnsupportedDrmError{
			Reason: ReasonUnsupportedScheme,
			Cause:  fmt.Errorf("scheme %s (%s)", model.DrmSchemeName(scheme), scheme),
		}
	}
	u, err := platformnet.ParseHTTPURL(licenseURL)
	if err != nil {
		return nil, &UnsupportedDrmError{Reason: ReasonUnknown, Cause: fmt.Errorf("license url: %w", err)}
	}
	return &SessionManager{
		Scheme: scheme,
		Callback: &HTTPLicenseCallback{
			LicenseURL: u.String(),
			DataSource: b.DataSource,
		},
	}, nil
}
