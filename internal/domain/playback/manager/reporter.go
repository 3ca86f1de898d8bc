// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"time"

	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
	"github.com/ManuGH/playbackctl/internal/metrics"
)

// positionReporter posts a positionTick for one engine at a fixed interval.
type positionReporter struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (c *Controller) startReporter(engineSeq uint64) {
	if c.cfg.PositionInterval < 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &positionReporter{cancel: cancel, done: make(chan struct{})}
	interval := c.cfg.PositionInterval
	started := c.workers.Go(func() {
		defer close(r.done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.tryPost(positionTick{engineSeq: engineSeq})
			}
		}
	})
	if !started {
		cancel()
		return
	}
	c.s.reporter = r
}

// stop cancels the ticker and waits for it to exit. The ticker never blocks
// on the queue, so this cannot deadlock the loop.
func (r *positionReporter) stop() {
	r.cancel()
	<-r.done
}

func (c *Controller) handlePositionTick(_ context.Context, ev positionTick) error {
	if !c.isCurrentEngine(ev.engineSeq) {
		return nil
	}
	pos := model.Position{
		PeriodIndex: c.s.engine.CurrentPeriodIndex(),
		PositionMs:  c.s.engine.CurrentPosition(),
	}
	metrics.SetPosition(pos.PositionMs)
	c.collab.Presentation(ports.PresentationEvent{Kind: ports.PresentPositionUpdate, Position: pos})
	return nil
}

func (c *Controller) isCurrentEngine(seq uint64) bool {
	if c.s.engine == nil {
		return false
	}
	return seq == 0 || seq == c.s.engineSeq
}
