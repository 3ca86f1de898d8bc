// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/playbackctl/internal/datasource"
	"github.com/ManuGH/playbackctl/internal/domain/playback/content"
	"github.com/ManuGH/playbackctl/internal/domain/playback/drm"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/permission"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
	"github.com/ManuGH/playbackctl/internal/domain/playback/store"
	"github.com/ManuGH/playbackctl/internal/domain/playback/tracks"
	"github.com/ManuGH/playbackctl/internal/engine/stub"
	"github.com/ManuGH/playbackctl/internal/platform/sim"
)

// recorder is a Collaborator that keeps every notification.
type recorder struct {
	mu            sync.Mutex
	sources       []content.Source
	reports       []tracks.Report
	affordances   [][]tracks.Affordance
	diagnostics   []model.Diagnostic
	permissions   []permission.Capability
	states        []model.Snapshot
	presentations []ports.PresentationEvent
}

func (r *recorder) SourceResolved(src content.Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, src)
}

func (r *recorder) CapabilityReport(rep tracks.Report, aff []tracks.Affordance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
	r.affordances = append(r.affordances, aff)
}

func (r *recorder) Diagnostic(d model.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

func (r *recorder) PermissionRequested(c permission.Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.permissions = append(r.permissions, c)
}

func (r *recorder) StateChanged(s model.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) Presentation(ev ports.PresentationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentations = append(r.presentations, ev)
}

func (r *recorder) Diagnostics() []model.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Diagnostic(nil), r.diagnostics...)
}

func (r *recorder) Sources() []content.Source {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]content.Source(nil), r.sources...)
}

func (r *recorder) Presentations(kind ports.PresentationKind) []ports.PresentationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ports.PresentationEvent
	for _, p := range r.presentations {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

func (r *recorder) Reports() ([]tracks.Report, [][]tracks.Affordance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tracks.Report(nil), r.reports...), append([][]tracks.Affordance(nil), r.affordances...)
}

func (r *recorder) PermissionRequests() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.permissions)
}

var _ ports.Collaborator = (*recorder)(nil)

type harness struct {
	t        *testing.T
	ctrl     *Controller
	engines  *stub.Factory
	platform *sim.Platform
	collab   *recorder
	journal  *store.MemoryJournal
	cancel   context.CancelFunc
	done     chan error
}

type harnessOption func(*Config, *sim.Config)

func withPlatform(level int, storageGranted bool, schemes ...uuid.UUID) harnessOption {
	return func(_ *Config, p *sim.Config) {
		p.APILevel = level
		p.StorageGranted = storageGranted
		p.DrmSchemes = schemes
	}
}

func withPositionInterval(d time.Duration) harnessOption {
	return func(c *Config, _ *sim.Config) { c.PositionInterval = d }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	platformCfg := sim.Config{APILevel: 30, StorageGranted: true, DrmSchemes: []uuid.UUID{model.WidevineUUID}}
	cfg := Config{PositionInterval: -1}
	for _, o := range opts {
		o(&cfg, &platformCfg)
	}

	ds, err := datasource.NewFactory(datasource.Config{
		UserAgent: "manager-test",
		Cookies:   datasource.NewCookieStore(datasource.PolicyAcceptOriginalServer),
	})
	require.NoError(t, err)

	h := &harness{
		t:        t,
		engines:  &stub.Factory{},
		platform: sim.New(platformCfg),
		collab:   &recorder{},
		journal:  store.NewMemoryJournal(128),
		done:     make(chan error, 1),
	}
	cfg.Engines = h.engines
	cfg.Drm = &drm.Builder{Platform: h.platform, DataSource: ds}
	cfg.Gate = &permission.Gate{Platform: h.platform}
	cfg.Resolver = content.NewResolver(ds, ds)
	cfg.Collaborator = h.collab
	cfg.Journal = h.journal

	h.ctrl, err = New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- h.ctrl.Run(ctx) }()
	t.Cleanup(h.stop)
	return h
}

func (h *harness) stop() {
	h.cancel()
	select {
	case err := <-h.done:
		if err != nil && !errors.Is(err, context.Canceled) {
			h.t.Errorf("controller run: %v", err)
		}
		h.done <- nil
	case <-time.After(5 * time.Second):
		h.t.Fatal("controller did not stop")
	}
	h.engines.Wait()
}

func (h *harness) ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	h.t.Cleanup(cancel)
	return ctx
}

func (h *harness) snapshot() model.Snapshot {
	h.t.Helper()
	snap, err := h.ctrl.Snapshot(h.ctx())
	require.NoError(h.t, err)
	return snap
}

func (h *harness) requireState(want model.SessionState) model.Snapshot {
	h.t.Helper()
	snap := h.snapshot()
	require.Equal(h.t, want, snap.State)
	return snap
}

func (h *harness) eventuallyState(want model.SessionState) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		snap, err := h.ctrl.Snapshot(h.ctx())
		return err == nil && snap.State == want
	}, 2*time.Second, 5*time.Millisecond)
}

func (h *harness) journalEvents() []string {
	h.t.Helper()
	recs, err := h.journal.Recent(context.Background(), 0)
	require.NoError(h.t, err)
	out := make([]string, len(recs))
	for i := range recs {
		// oldest first
		out[len(recs)-1-i] = recs[i].Event
	}
	return out
}

func remoteRequest(locators ...model.Locator) *model.PlaybackRequest {
	if len(locators) == 0 {
		locators = []model.Locator{"https://cdn.example/movie.mpd"}
	}
	req := &model.PlaybackRequest{}
	for _, l := range locators {
		req.Items = append(req.Items, model.MediaItem{Locator: l})
	}
	return req
}
