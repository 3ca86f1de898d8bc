// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid playback request")

// Locator is an opaque URI-like reference to a media resource.
type Locator string

func (l Locator) String() string { return string(l) }

// Scheme returns the lower-cased URI scheme, or "" when the locator has none.
func (l Locator) Scheme() string {
	scheme, _ := l.split()
	return strings.ToLower(scheme)
}

// split separates the scheme from the remainder without a full URL parse, so
// a malformed escape later in the locator cannot hide the scheme. A scheme
// must end at the first ':' seen before any '/', '?' or '#'.
func (l Locator) split() (scheme, rest string) {
	s := string(l)
	i := strings.IndexAny(s, ":/?#")
	if i <= 0 || s[i] != ':' || !validScheme(s[:i]) {
		return "", s
	}
	return s[:i], s[i+1:]
}

func validScheme(s string) bool {
	for i, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && ('0' <= r && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// Path returns the path component of the locator with query, fragment and
// authority removed. Escapes are decoded when they are well formed.
func (l Locator) Path() string {
	_, rest := l.split()
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		i := strings.IndexByte(rest, '/')
		if i < 0 {
			return ""
		}
		rest = rest[i:]
	}
	if p, err := url.PathUnescape(rest); err == nil {
		return p
	}
	return rest
}

// LastPathSegment returns the final non-empty path segment, or "".
func (l Locator) LastPathSegment() string {
	p := strings.TrimRight(l.Path(), "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// IsLocalFile reports whether the locator refers to local storage: either a
// file:// URI or a bare path without a scheme.
func (l Locator) IsLocalFile() bool {
	switch l.Scheme() {
	case "", "file":
		return strings.TrimSpace(string(l)) != ""
	}
	return false
}

// MediaItem pairs a locator with an optional container extension override.
type MediaItem struct {
	Locator       Locator `json:"locator"`
	ExtensionHint string  `json:"extension_hint,omitempty"`
}

// DrmDescriptor opts a request into protected playback.
type DrmDescriptor struct {
	SchemeID   uuid.UUID `json:"scheme_id"`
	LicenseURL string    `json:"license_url"`
}

// PlaybackRequest is the immutable input of one session attempt.
type PlaybackRequest struct {
	Items                   []MediaItem    `json:"items"`
	Drm                     *DrmDescriptor `json:"drm,omitempty"`
	PreferExtensionDecoders bool           `json:"prefer_extension_decoders,omitempty"`
}

// Validate checks the structural requirements of a request.
func (r PlaybackRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: no locators", ErrInvalidRequest)
	}
	for i, it := range r.Items {
		if strings.TrimSpace(string(it.Locator)) == "" {
			return fmt.Errorf("%w: locator %d is empty", ErrInvalidRequest, i)
		}
	}
	if r.Drm != nil && r.Drm.SchemeID == uuid.Nil {
		return fmt.Errorf("%w: drm scheme id is nil", ErrInvalidRequest)
	}
	return nil
}

// Locators returns the request's locators in request order.
func (r PlaybackRequest) Locators() []Locator {
	out := make([]Locator, len(r.Items))
	for i, it := range r.Items {
		out[i] = it.Locator
	}
	return out
}

// Clone returns a deep copy so the accepted request cannot be mutated by the caller.
func (r PlaybackRequest) Clone() PlaybackRequest {
	out := PlaybackRequest{
		Items:                   append([]MediaItem(nil), r.Items...),
		PreferExtensionDecoders: r.PreferExtensionDecoders,
	}
	if r.Drm != nil {
		d := *r.Drm
		out.Drm = &d
	}
	return out
}

// Equal reports whether two requests describe the same playback intent.
func (r PlaybackRequest) Equal(o PlaybackRequest) bool {
	if r.PreferExtensionDecoders != o.PreferExtensionDecoders || len(r.Items) != len(o.Items) {
		return false
	}
	for i := range r.Items {
		if r.Items[i] != o.Items[i] {
			return false
		}
	}
	switch {
	case r.Drm == nil && o.Drm == nil:
		return true
	case r.Drm == nil || o.Drm == nil:
		return false
	default:
		return *r.Drm == *o.Drm
	}
}
