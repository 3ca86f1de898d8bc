// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidIntent = errors.New("invalid intent")

// IntentAction selects how an Intent carries its locators.
type IntentAction string

const (
	ActionView     IntentAction = "view"
	ActionViewList IntentAction = "view_list"
)

// Intent is the external form of a playback request.
type Intent struct {
	Action                  IntentAction `json:"action"`
	URI                     string       `json:"uri,omitempty"`
	Extension               string       `json:"extension,omitempty"`
	URIs                    []string     `json:"uris,omitempty"`
	Extensions              []string     `json:"extensions,omitempty"`
	PreferExtensionDecoders bool         `json:"prefer_extension_decoders,omitempty"`
	DrmScheme               string       `json:"drm_scheme_uuid,omitempty"`
	DrmLicenseURL           string       `json:"drm_license_url,omitempty"`
}

// Request converts the intent into a validated PlaybackRequest.
func (in Intent) Request() (PlaybackRequest, error) {
	var items []MediaItem
	switch in.Action {
	case ActionView:
		items = []MediaItem{{Locator: Locator(strings.TrimSpace(in.URI)), ExtensionHint: in.Extension}}
	case ActionViewList:
		if len(in.URIs) == 0 {
			return PlaybackRequest{}, fmt.Errorf("%w: view_list without uris", ErrInvalidIntent)
		}
		exts := in.Extensions
		if exts == nil {
			exts = make([]string, len(in.URIs))
		}
		if len(exts) != len(in.URIs) {
			return PlaybackRequest{}, fmt.Errorf("%w: %d uris but %d extensions", ErrInvalidIntent, len(in.URIs), len(exts))
		}
		items = make([]MediaItem, len(in.URIs))
		for i, u := range in.URIs {
			items[i] = MediaItem{Locator: Locator(strings.TrimSpace(u)), ExtensionHint: exts[i]}
		}
	default:
		return PlaybackRequest{}, fmt.Errorf("%w: unexpected action %q", ErrInvalidIntent, in.Action)
	}

	req := PlaybackRequest{Items: items, PreferExtensionDecoders: in.PreferExtensionDecoders}
	if strings.TrimSpace(in.DrmScheme) != "" {
		id, err := ParseDrmScheme(in.DrmScheme)
		if err != nil {
			return PlaybackRequest{}, fmt.Errorf("%w: %v", ErrInvalidIntent, err)
		}
		req.Drm = &DrmDescriptor{SchemeID: id, LicenseURL: strings.TrimSpace(in.DrmLicenseURL)}
	}
	if err := req.Validate(); err != nil {
		return PlaybackRequest{}, fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}
	return req, nil
}
