// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package net holds URL helpers for outbound playback traffic.
package net

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrNotHTTP       = errors.New("scheme must be http or https")
	ErrMissingHost   = errors.New("host is required")
	ErrCredentials   = errors.New("embedded credentials are not allowed")
	ErrFragmentInURL = errors.New("fragments are not allowed")
)

// SanitizeURL removes user info and query parameters for safe logging.
// Locators of local files pass through unchanged.
func SanitizeURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url-redacted"
	}
	parsedURL.User = nil
	parsedURL.RawQuery = ""
	return parsedURL.String()
}

// ParseHTTPURL validates s as a direct http(s) URL, such as a license
// server endpoint.
func ParseHTTPURL(s string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	switch {
	case !strings.EqualFold(u.Scheme, "http") && !strings.EqualFold(u.Scheme, "https"):
		return nil, fmt.Errorf("%q: %w", s, ErrNotHTTP)
	case u.Host == "":
		return nil, fmt.Errorf("%q: %w", s, ErrMissingHost)
	case u.User != nil:
		return nil, fmt.Errorf("%q: %w", SanitizeURL(s), ErrCredentials)
	case u.Fragment != "":
		return nil, fmt.Errorf("%q: %w", s, ErrFragmentInURL)
	}
	return u, nil
}
