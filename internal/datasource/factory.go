// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package datasource

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ManuGH/playbackctl/internal/platform/httpx"
)

const defaultTimeout = 8 * time.Second

// Config holds the inputs of NewFactory.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	Cookies   *CookieStore
	Transport http.RoundTripper // optional; defaults to httpx.NewTransport(Timeout)
}

// Factory describes how the engine opens network data for one source. The
// controller never performs media I/O itself; it only hands Factory values to
// the engine and uses the client for license requests.
type Factory struct {
	UserAgent      string
	BandwidthMeter bool

	client *http.Client
}

// NewFactory builds a factory whose client uses the injected cookie store.
func NewFactory(cfg Config) (*Factory, error) {
	if cfg.Cookies == nil {
		return nil, errors.New("datasource: cookie store is required")
	}
	jar, err := cfg.Cookies.Jar()
	if err != nil {
		return nil, fmt.Errorf("datasource: cookie jar: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := cfg.Transport
	if base == nil {
		base = httpx.NewTransport(timeout)
	}
	return &Factory{
		UserAgent: cfg.UserAgent,
		client: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: otelhttp.NewTransport(base),
		},
	}, nil
}

// WithBandwidthMeter returns a copy that reports transfers to the engine's
// bandwidth estimate. Media chunk sources use it; manifest sources do not.
func (f *Factory) WithBandwidthMeter() *Factory {
	cp := *f
	cp.BandwidthMeter = true
	return &cp
}

// Client returns the shared HTTP client.
func (f *Factory) Client() *http.Client { return f.client }

// Do sends req with the factory's user agent.
func (f *Factory) Do(req *http.Request) (*http.Response, error) {
	if f.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	return f.client.Do(req)
}

// UserAgent builds the default user agent string for app at version.
func UserAgent(app, version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("%s/%s (%s; %s) playbackctl", app, version, runtime.GOOS, runtime.GOARCH)
}
