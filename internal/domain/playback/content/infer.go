// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package content classifies locators into media source kinds and builds the
// source descriptors handed to the engine.
package content

import (
	"strings"

	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
)

// Type is the media source kind of a locator.
type Type int

const (
	TypeProgressive Type = iota
	TypeSmoothStreaming
	TypeDash
	TypeHls
)

func (t Type) String() string {
	switch t {
	case TypeSmoothStreaming:
		return "smooth_streaming"
	case TypeDash:
		return "dash"
	case TypeHls:
		return "hls"
	default:
		return "progressive"
	}
}

// MarshalText renders the type by name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

var smoothStreamingSuffixes = []string{".ism", ".isml", ".ism/manifest", ".isml/manifest"}

// InferType classifies a file name by its suffix. Anything unrecognised is
// progressive.
func InferType(fileName string) Type {
	name := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(name, ".mpd"):
		return TypeDash
	case strings.HasSuffix(name, ".m3u8"):
		return TypeHls
	}
	for _, suffix := range smoothStreamingSuffixes {
		if strings.HasSuffix(name, suffix) {
			return TypeSmoothStreaming
		}
	}
	return TypeProgressive
}

// TypeFor classifies a locator. A non-empty extension hint replaces the
// locator's own name entirely.
func TypeFor(loc model.Locator, extensionHint string) Type {
	return InferType(classificationName(loc, extensionHint))
}

func classificationName(loc model.Locator, extensionHint string) string {
	if extensionHint != "" {
		return "." + extensionHint
	}
	name := loc.LastPathSegment()
	// Smooth streaming manifests are addressed as <name>.ism/Manifest.
	if strings.EqualFold(name, "manifest") {
		trimmed := strings.TrimSuffix(strings.TrimRight(loc.Path(), "/"), "/"+name)
		if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if trimmed != "" {
			name = trimmed + "/" + name
		}
	}
	return name
}
