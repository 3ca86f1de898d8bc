// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
)

type fakePlatform struct {
	level    int
	granted  bool
	requests []Capability
	callback func(bool)
}

func (p *fakePlatform) APILevel() int                   { return p.level }
func (p *fakePlatform) HasPermission(c Capability) bool { return p.granted }
func (p *fakePlatform) RequestPermission(c Capability, cb func(bool)) {
	p.requests = append(p.requests, c)
	p.callback = cb
}

func TestCheck_RemoteOnlyNeverPrompts(t *testing.T) {
	p := &fakePlatform{level: 30}
	g := &Gate{Platform: p}
	d := g.Check([]model.Locator{
		"https://h/a.mpd",
		"http://h/b.mp4",
		"https://cdn.example/clip%zz.mp4",
	}, func(bool) { t.Fatal("unexpected callback") })
	assert.Equal(t, NotNeeded, d)
	assert.Empty(t, p.requests)
}

func TestCheck_OldPlatformNeverPrompts(t *testing.T) {
	p := &fakePlatform{level: 22}
	g := &Gate{Platform: p}
	assert.Equal(t, NotNeeded, g.Check([]model.Locator{"file:///sdcard/a.mp4"}, nil))
	assert.Empty(t, p.requests)
}

func TestCheck_AlreadyGranted(t *testing.T) {
	p := &fakePlatform{level: 23, granted: true}
	g := &Gate{Platform: p}
	assert.Equal(t, NotNeeded, g.Check([]model.Locator{"/sdcard/a.mp4"}, nil))
	assert.Empty(t, p.requests)
}

func TestCheck_SingleRequestForManyLocalLocators(t *testing.T) {
	p := &fakePlatform{level: 23}
	g := &Gate{Platform: p}

	var answer *bool
	d := g.Check([]model.Locator{
		"https://h/remote.mpd",
		"file:///sdcard/one.mp4",
		"/sdcard/two.mp4",
	}, func(granted bool) { answer = &granted })

	assert.Equal(t, Pending, d)
	require.Len(t, p.requests, 1)
	assert.Equal(t, ReadExternalStorage, p.requests[0])

	p.callback(true)
	require.NotNil(t, answer)
	assert.True(t, *answer)
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "not_needed", NotNeeded.String())
}
