// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package datasource builds the network data-source parameters handed to the
// engine together with each resolved media source.
package datasource

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// CookiePolicy selects which cookies the shared jar accepts.
type CookiePolicy string

const (
	// PolicyAcceptOriginalServer accepts cookies only for the host that set them
	// (public suffix domains are rejected).
	PolicyAcceptOriginalServer CookiePolicy = "accept_original_server"
	PolicyAcceptAll            CookiePolicy = "accept_all"
	PolicyAcceptNone           CookiePolicy = "accept_none"
)

// ParseCookiePolicy validates a configured policy name.
func ParseCookiePolicy(s string) (CookiePolicy, error) {
	switch p := CookiePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyAcceptOriginalServer, nil
	case PolicyAcceptOriginalServer, PolicyAcceptAll, PolicyAcceptNone:
		return p, nil
	default:
		return "", fmt.Errorf("unknown cookie policy %q", s)
	}
}

// CookieStore owns the cookie jar shared by all network data sources. The jar
// is built on first use and never replaced.
type CookieStore struct {
	policy CookiePolicy

	once sync.Once
	jar  http.CookieJar
	err  error
}

// NewCookieStore returns a store for the given policy.
func NewCookieStore(policy CookiePolicy) *CookieStore {
	if policy == "" {
		policy = PolicyAcceptOriginalServer
	}
	return &CookieStore{policy: policy}
}

// Policy returns the configured policy.
func (c *CookieStore) Policy() CookiePolicy { return c.policy }

// Jar returns the shared jar; nil means cookies are not stored at all.
func (c *CookieStore) Jar() (http.CookieJar, error) {
	c.once.Do(func() {
		switch c.policy {
		case PolicyAcceptNone:
			c.jar = nil
		case PolicyAcceptAll:
			c.jar, c.err = cookiejar.New(nil)
		default:
			c.jar, c.err = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		}
	})
	return c.jar, c.err
}
