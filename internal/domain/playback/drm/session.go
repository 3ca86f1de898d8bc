// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package drm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/ManuGH/playbackctl/internal/datasource"
)

const maxLicenseResponseBytes = 1 << 20

// HTTPLicenseCallback forwards key and provisioning requests to a license server.
type HTTPLicenseCallback struct {
	LicenseURL string
	DataSource *datasource.Factory
}

// KeyRequest posts a license challenge and returns the server's response.
func (c *HTTPLicenseCallback) KeyRequest(ctx context.Context, challenge []byte) ([]byte, error) {
	return c.post(ctx, c.LicenseURL, challenge, "application/octet-stream")
}

// ProvisionRequest exchanges a device provisioning request at defaultURL.
func (c *HTTPLicenseCallback) ProvisionRequest(ctx context.Context, defaultURL string, data []byte) ([]byte, error) {
	u, err := url.Parse(defaultURL)
	if err != nil {
		return nil, fmt.Errorf("drm: provisioning url: %w", err)
	}
	q := u.Query()
	q.Set("signedRequest", string(data))
	u.RawQuery = q.Encode()
	return c.post(ctx, u.String(), nil, "application/json")
}

func (c *HTTPLicenseCallback) post(ctx context.Context, target string, body []byte, contentType string) ([]byte, error) {
	if c.DataSource == nil {
		return nil, fmt.Errorf("drm: no data source for %s", target)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.DataSource.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drm: license request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("drm: license server returned %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxLicenseResponseBytes))
}

// SessionManager is the DRM handle given to the engine at construction.
type SessionManager struct {
	Scheme   uuid.UUID
	Callback *HTTPLicenseCallback

	mu     sync.Mutex
	closed bool
}

// ExecuteKeyRequest runs a key request through the license callback.
func (m *SessionManager) ExecuteKeyRequest(ctx context.Context, challenge []byte) ([]byte, error) {
	if m.Closed() {
		return nil, ErrManagerClosed
	}
	return m.Callback.KeyRequest(ctx, challenge)
}

// Close releases the manager. It is safe to call more than once.
func (m *SessionManager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *SessionManager) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
