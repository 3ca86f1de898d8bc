// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package notify

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/playbackctl/internal/bus"
	"github.com/ManuGH/playbackctl/internal/log"
)

// Topics lists every topic the controller publishes on.
var Topics = []string{
	bus.TopicState,
	bus.TopicSource,
	bus.TopicCapabilities,
	bus.TopicDiagnostic,
	bus.TopicPermission,
	bus.TopicPresentation,
}

const defaultFeedCapacity = 256

// Feed keeps the most recent events across all playback topics.
type Feed struct {
	subs []bus.Subscriber

	mu    sync.Mutex
	ring  []Event
	next  int
	full  bool
	seq   uint64
	added chan struct{}
}

// NewFeed subscribes to every topic immediately so nothing published after
// it returns is missed. Call Run to start draining.
func NewFeed(ctx context.Context, b bus.Bus, capacity int) (*Feed, error) {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	f := &Feed{ring: make([]Event, capacity), added: make(chan struct{}, 1)}
	for _, topic := range Topics {
		sub, err := b.Subscribe(ctx, topic)
		if err != nil {
			_ = f.close()
			return nil, err
		}
		f.subs = append(f.subs, sub)
	}
	return f, nil
}

// Run drains all subscriptions until ctx ends.
func (f *Feed) Run(ctx context.Context) error {
	logger := log.WithComponent("notify")
	g, gctx := errgroup.WithContext(ctx)
	for _, sub := range f.subs {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case msg, ok := <-sub.C():
					if !ok {
						return nil
					}
					ev, isEvent := msg.(Event)
					if !isEvent {
						logger.Warn().Str("event", "notify.unexpected_message").Msgf("dropping %T", msg)
						continue
					}
					f.add(ev)
				}
			}
		})
	}
	err := g.Wait()
	return errors.Join(err, f.close())
}

func (f *Feed) close() error {
	var errs []error
	for _, s := range f.subs {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

func (f *Feed) add(ev Event) {
	f.mu.Lock()
	f.seq++
	ev.Seq = f.seq
	f.ring[f.next] = ev
	f.next = (f.next + 1) % len(f.ring)
	if f.next == 0 {
		f.full = true
	}
	f.mu.Unlock()

	select {
	case f.added <- struct{}{}:
	default:
	}
}

// Recent returns up to limit events with Seq greater than since, oldest
// first. A limit of zero returns everything retained.
func (f *Feed) Recent(since uint64, limit int) []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.next
	start := 0
	if f.full {
		n = len(f.ring)
		start = f.next
	}
	out := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		ev := f.ring[(start+i)%len(f.ring)]
		if ev.Seq > since {
			out = append(out, ev)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Added signals, coalesced, that at least one event arrived.
func (f *Feed) Added() <-chan struct{} {
	return f.added
}
