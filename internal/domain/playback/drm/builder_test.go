// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package drm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/playbackctl/internal/datasource"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
)

type fakePlatform struct {
	level   int
	schemes map[uuid.UUID]bool
}

func (p fakePlatform) APILevel() int                    { return p.level }
func (p fakePlatform) SupportsScheme(id uuid.UUID) bool { return p.schemes[id] }

func newFactory(t *testing.T) *datasource.Factory {
	t.Helper()
	f, err := datasource.NewFactory(datasource.Config{
		UserAgent: "drm-test/1.0",
		Cookies:   datasource.NewCookieStore(datasource.PolicyAcceptOriginalServer),
	})
	require.NoError(t, err)
	return f
}

func widevineOnly(level int) fakePlatform {
	return fakePlatform{level: level, schemes: map[uuid.UUID]bool{model.WidevineUUID: true}}
}

func TestBuild_PlatformTooOldReturnsNil(t *testing.T) {
	b := &Builder{Platform: widevineOnly(17), DataSource: newFactory(t)}
	m, err := b.Build(context.Background(), model.WidevineUUID, "https://license.example/wv")
	assert.NoError(t, err)
	assert.Nil(t, m)
}

func TestBuild_UnsupportedScheme(t *testing.T) {
	b := &Builder{Platform: widevineOnly(MinAPILevel), DataSource: newFactory(t)}
	_, err := b.Build(context.Background(), model.PlayReadyUUID, "https://license.example/pr")
	require.Error(t, err)

	var ude *UnsupportedDrmError
	require.ErrorAs(t, err, &ude)
	assert.Equal(t, ReasonUnsupportedScheme, ude.Reason)
	assert.Equal(t, ReasonUnsupportedScheme, ReasonOf(err))
}

func TestBuild_BadLicenseURL(t *testing.T) {
	b := &Builder{Platform: widevineOnly(23), DataSource: newFactory(t)}
	_, err := b.Build(context.Background(), model.WidevineUUID, "not a url")
	require.Error(t, err)
	assert.Equal(t, ReasonUnknown, ReasonOf(err))
}

func TestBuild_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := &Builder{Platform: widevineOnly(23), DataSource: newFactory(t)}
	_, err := b.Build(ctx, model.WidevineUUID, "https://license.example/wv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionManager_KeyRequestUsesDataSource(t *testing.T) {
	var gotUA, gotBody, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte("license-bytes"))
	}))
	defer srv.Close()

	b := &Builder{Platform: widevineOnly(23), DataSource: newFactory(t)}
	m, err := b.Build(context.Background(), model.WidevineUUID, srv.URL+"/wv")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, model.WidevineUUID, m.Scheme)

	resp, err := m.ExecuteKeyRequest(context.Background(), []byte("challenge"))
	require.NoError(t, err)
	assert.Equal(t, "license-bytes", string(resp))
	assert.Equal(t, "challenge", gotBody)
	assert.Equal(t, "drm-test/1.0", gotUA)
	assert.Equal(t, "application/octet-stream", gotCT)
}

func TestSessionManager_ServerErrorAndClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	b := &Builder{Platform: widevineOnly(23), DataSource: newFactory(t)}
	m, err := b.Build(context.Background(), model.WidevineUUID, srv.URL)
	require.NoError(t, err)

	_, err = m.ExecuteKeyRequest(context.Background(), nil)
	assert.ErrorContains(t, err, "403")

	m.Close()
	m.Close()
	assert.True(t, m.Closed())
	_, err = m.ExecuteKeyRequest(context.Background(), nil)
	assert.ErrorIs(t, err, ErrManagerClosed)
}

func TestProvisionRequest_SignedRequestQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("signedRequest")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cb := &HTTPLicenseCallback{LicenseURL: srv.URL, DataSource: newFactory(t)}
	out, err := cb.ProvisionRequest(context.Background(), srv.URL+"/provision?x=1", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.Equal(t, "abc", gotQuery)
}

func TestUnsupportedDrmError_UserMessage(t *testing.T) {
	assert.Contains(t, (&UnsupportedDrmError{Reason: ReasonPlatformTooOld}).UserMessage(), "API levels below 18")
	assert.Contains(t, (&UnsupportedDrmError{Reason: ReasonUnsupportedScheme}).UserMessage(), "DRM scheme")
	assert.Contains(t, (&UnsupportedDrmError{}).UserMessage(), "unknown DRM error")
}
