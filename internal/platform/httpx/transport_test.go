// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTransport_Defaults(t *testing.T) {
	tr := NewTransport(0)
	assert.Equal(t, defaultMaxIdleConns, tr.MaxIdleConns)
	assert.Equal(t, defaultMaxIdleConnsPerHost, tr.MaxIdleConnsPerHost)
	assert.Equal(t, defaultIdleConnTimeout, tr.IdleConnTimeout)
	assert.Equal(t, defaultDialTimeout, tr.TLSHandshakeTimeout)
	assert.Equal(t, defaultResponseHeaderTimeout, tr.ResponseHeaderTimeout)
	assert.NotNil(t, tr.DialContext)
}

func TestNewTransport_ShortTimeoutCapsWaits(t *testing.T) {
	want := 1500 * time.Millisecond
	tr := NewTransport(want)
	assert.Equal(t, want, tr.TLSHandshakeTimeout)
	assert.Equal(t, want, tr.ResponseHeaderTimeout)
}
