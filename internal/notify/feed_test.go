// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/playbackctl/internal/bus"
	"github.com/ManuGH/playbackctl/internal/domain/playback/content"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/permission"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startFeed(t *testing.T, b *bus.MemoryBus, capacity int) *Feed {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	f, err := NewFeed(ctx, b, capacity)
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	return f
}

func waitFor(t *testing.T, f *Feed, n int) []Event {
	t.Helper()
	require.Eventually(t, func() bool { return len(f.Recent(0, 0)) >= n }, 2*time.Second, 5*time.Millisecond)
	return f.Recent(0, 0)
}

func TestPublisher_RoutesToTopics(t *testing.T) {
	b := bus.NewMemoryBus()
	f := startFeed(t, b, 16)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Publisher{Bus: b, Now: func() time.Time { return at }}

	p.StateChanged(model.Snapshot{State: model.SessionActive})
	p.Diagnostic(model.Diagnostic{Kind: model.DiagDrmError})
	p.PermissionRequested(permission.ReadExternalStorage)
	p.Presentation(ports.PresentationEvent{Kind: ports.PresentPlaybackEnded})

	events := waitFor(t, f, 4)
	topics := map[string]bool{}
	for _, ev := range events {
		topics[ev.Topic] = true
		assert.Equal(t, at, ev.At)
		assert.NotZero(t, ev.Seq)
	}
	assert.Equal(t, map[string]bool{
		bus.TopicState:        true,
		bus.TopicDiagnostic:   true,
		bus.TopicPermission:   true,
		bus.TopicPresentation: true,
	}, topics)
}

func TestSummarize(t *testing.T) {
	src := &content.ConcatenatingSource{Children: []content.Source{
		&content.HlsSource{Locator: "https://h/a.m3u8"},
		&content.ProgressiveSource{Locator: "https://h/b.mp4"},
	}}
	sum := Summarize(src)
	assert.Equal(t, []model.Locator{"https://h/a.m3u8", "https://h/b.mp4"}, sum.Locators)
	assert.Equal(t, []content.Type{content.TypeHls, content.TypeProgressive}, sum.Children)

	single := Summarize(&content.DashSource{Locator: "https://h/m.mpd"})
	assert.Equal(t, content.TypeDash, single.Type)
	assert.Empty(t, single.Children)
}

func TestFeed_RingKeepsNewest(t *testing.T) {
	b := bus.NewMemoryBus()
	f := startFeed(t, b, 3)
	p := NewPublisher(b)

	for i := 0; i < 5; i++ {
		p.Presentation(ports.PresentationEvent{Kind: ports.PresentPositionUpdate, Position: model.Position{PositionMs: int64(i)}})
		// Keep delivery order deterministic within one topic.
		require.Eventually(t, func() bool {
			ev := f.Recent(0, 1)
			return len(ev) == 1 && ev[0].Seq == uint64(i+1)
		}, 2*time.Second, time.Millisecond)
	}

	events := f.Recent(0, 0)
	require.Len(t, events, 3)
	assert.Equal(t, []uint64{3, 4, 5}, []uint64{events[0].Seq, events[1].Seq, events[2].Seq})

	assert.Len(t, f.Recent(4, 0), 1)
	assert.Len(t, f.Recent(0, 2), 2)
	assert.Equal(t, uint64(5), f.Recent(0, 2)[1].Seq)
}

func TestFeed_SubscribeOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFeed(ctx, bus.NewMemoryBus(), 0)
	assert.ErrorIs(t, err, context.Canceled)
}
