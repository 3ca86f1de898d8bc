// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ManuGH/playbackctl/internal/api"
	"github.com/ManuGH/playbackctl/internal/api/middleware"
	"github.com/ManuGH/playbackctl/internal/bus"
	"github.com/ManuGH/playbackctl/internal/config"
	"github.com/ManuGH/playbackctl/internal/datasource"
	"github.com/ManuGH/playbackctl/internal/domain/playback/content"
	"github.com/ManuGH/playbackctl/internal/domain/playback/drm"
	"github.com/ManuGH/playbackctl/internal/domain/playback/manager"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/permission"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
	"github.com/ManuGH/playbackctl/internal/domain/playback/store"
	"github.com/ManuGH/playbackctl/internal/engine/stub"
	"github.com/ManuGH/playbackctl/internal/log"
	"github.com/ManuGH/playbackctl/internal/notify"
	"github.com/ManuGH/playbackctl/internal/persistence/sqlite"
	"github.com/ManuGH/playbackctl/internal/platform/sim"
	"github.com/ManuGH/playbackctl/internal/telemetry"
)

// Options are the bootstrap inputs that do not come from the config file.
type Options struct {
	// Engines builds playback engines. Nil uses the stub engine.
	Engines ports.EngineFactory
	// Transport is the base round tripper of the data-source client.
	Transport http.RoundTripper
}

// Bootstrap wires the playback controller and its collaborators from the
// current configuration in holder.
func Bootstrap(ctx context.Context, holder *config.ConfigHolder, opts Options) (_ *App, err error) {
	if holder == nil {
		return nil, ErrMissingConfig
	}
	cfg := holder.Get()
	logger := log.WithComponent("daemon")

	var cleanup []func()
	defer func() {
		if err != nil {
			for i := len(cleanup) - 1; i >= 0; i-- {
				cleanup[i]()
			}
		}
	}()

	provider, terr := telemetry.NewProvider(ctx, cfg.TelemetryConfig())
	if terr != nil {
		logger.Warn().Err(terr).Str("event", "telemetry.init_failed").Msg("telemetry initialization failed, continuing without tracing")
		provider = &telemetry.Provider{}
	}
	cleanup = append(cleanup, func() { _ = provider.Shutdown(context.WithoutCancel(ctx)) })

	policy, err := cfg.CookiePolicy()
	if err != nil {
		return nil, err
	}
	userAgent := cfg.Network.UserAgent
	if userAgent == "" {
		userAgent = datasource.UserAgent("playbackd", cfg.Version)
	}
	ds, err := datasource.NewFactory(datasource.Config{
		UserAgent: userAgent,
		Timeout:   cfg.Network.Timeout,
		Cookies:   datasource.NewCookieStore(policy),
		Transport: opts.Transport,
	})
	if err != nil {
		return nil, err
	}

	simCfg, err := cfg.SimConfig()
	if err != nil {
		return nil, err
	}
	platform := sim.New(simCfg)

	journal, err := openJournal(cfg.Journal)
	if err != nil {
		return nil, err
	}
	cleanup = append(cleanup, func() { _ = journal.Close() })

	b := bus.NewMemoryBus()
	feed, err := notify.NewFeed(ctx, b, 0)
	if err != nil {
		return nil, fmt.Errorf("event feed: %w", err)
	}

	engines := opts.Engines
	if engines == nil {
		engines = &stub.Factory{AutoAdvance: true}
	}
	ctrl, err := manager.New(manager.Config{
		Engines:          engines,
		Drm:              &drm.Builder{Platform: platform, DataSource: ds},
		Gate:             &permission.Gate{Platform: platform},
		Resolver:         content.NewResolver(ds, ds),
		Collaborator:     notify.NewPublisher(b),
		Journal:          journal,
		PositionInterval: cfg.ReporterInterval(),
		QueueSize:        cfg.Engine.EventQueueSize,
	})
	if err != nil {
		return nil, err
	}

	srv, err := api.New(api.Deps{
		Controller: requestDefaults{Controller: ctrl, holder: holder},
		Prompt:     platform,
		Feed:       feed,
		Journal:    journal,
	}, middleware.StackConfig{
		TracingService:    tracingService(cfg),
		EnableLogging:     true,
		EnableRateLimit:   cfg.API.RateLimit.Enabled,
		RequestsPerMinute: cfg.API.RateLimit.RequestsPerMinute,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("event", "daemon.bootstrapped").
		Str("journal", cfg.Journal.Driver).
		Int("api_level", simCfg.APILevel).
		Str("cookie_policy", string(policy)).
		Msg("playback controller wired")

	return NewApp(Deps{
		Logger:     logger,
		Controller: ctrl,
		Handler:    srv.Handler(),
		ListenAddr: cfg.API.ListenAddr,
		Feed:       feed,
		Holder:     holder,
		Platform:   platform,
		Telemetry:  provider,
		Journal:    journal,
	})
}

func tracingService(cfg config.AppConfig) string {
	if !cfg.Telemetry.Enabled {
		return ""
	}
	return cfg.LogService
}

// openJournal checks an existing sqlite file before opening it so a corrupt
// journal fails startup instead of the first append.
func openJournal(cfg config.JournalConfig) (store.Journal, error) {
	if strings.EqualFold(cfg.Driver, store.BackendSqlite) {
		issues, err := sqlite.VerifyIntegrity(cfg.Path, "quick")
		if err != nil {
			return nil, fmt.Errorf("verify journal: %w", err)
		}
		if len(issues) > 0 {
			return nil, fmt.Errorf("journal %s failed integrity check: %s", cfg.Path, strings.Join(issues, "; "))
		}
	}
	j, err := store.Open(cfg.Driver, cfg.Path, cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

// requestDefaults applies engine defaults from the live configuration to
// requests entering through the API.
type requestDefaults struct {
	*manager.Controller
	holder *config.ConfigHolder
}

func (c requestDefaults) Initialize(ctx context.Context, req *model.PlaybackRequest) error {
	if req != nil {
		r := c.withDefaults(*req)
		req = &r
	}
	return c.Controller.Initialize(ctx, req)
}

func (c requestDefaults) NewRequest(ctx context.Context, req model.PlaybackRequest) error {
	return c.Controller.NewRequest(ctx, c.withDefaults(req))
}

func (c requestDefaults) withDefaults(req model.PlaybackRequest) model.PlaybackRequest {
	if c.holder.Get().Engine.PreferExtensionDecoders {
		req.PreferExtensionDecoders = true
	}
	return req
}
