// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package daemon owns the runtime lifecycle of playbackd: the controller loop,
// the config watcher, the notification feed and the control API server.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/playbackctl/internal/config"
	"github.com/ManuGH/playbackctl/internal/log"
)

const defaultShutdownTimeout = 10 * time.Second

// App runs the daemon components under one errgroup and tears them down in
// order: controller first, then the HTTP server, then telemetry and journal.
type App struct {
	deps         Deps
	reloadSignal os.Signal

	mu      sync.Mutex
	running bool
	addr    net.Addr
	ready   chan struct{}
}

// NewApp creates a new App orchestrator.
func NewApp(deps Deps) (*App, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if deps.ShutdownTimeout <= 0 {
		deps.ShutdownTimeout = defaultShutdownTimeout
	}
	return &App{
		deps:         deps,
		reloadSignal: syscall.SIGHUP,
		ready:        make(chan struct{}),
	}, nil
}

// Ready is closed once the API listener is bound.
func (a *App) Ready() <-chan struct{} { return a.ready }

// Addr is the bound API address, nil before Ready.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addr
}

// Run starts all owned subsystems and blocks until ctx is cancelled or one of
// them fails. Telemetry and the journal are closed before Run returns.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAppRunning
	}
	a.running = true
	a.mu.Unlock()

	err := a.run(ctx)
	return errors.Join(err, a.closeResources(ctx))
}

func (a *App) run(ctx context.Context) error {
	logger := a.deps.Logger

	ln, err := net.Listen("tcp", a.deps.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.deps.ListenAddr, err)
	}
	a.mu.Lock()
	a.addr = ln.Addr()
	a.mu.Unlock()
	close(a.ready)

	srv := &http.Server{
		Handler:           a.deps.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	ctrlDone := make(chan struct{})
	g.Go(func() error {
		defer close(ctrlDone)
		if err := a.deps.Controller.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("controller: %w", err)
		}
		return nil
	})

	if a.deps.Feed != nil {
		g.Go(func() error {
			if err := a.deps.Feed.Run(gctx); err != nil {
				logger.Warn().Err(err).Str("event", "notify.feed_stopped").Msg("event feed stopped with error")
			}
			return nil
		})
	}

	if h := a.deps.Holder; h != nil {
		applyCh := make(chan config.AppConfig, 1)
		h.RegisterListener(applyCh)
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case cfg := <-applyCh:
					a.apply(cfg)
				}
			}
		})

		// The watcher is best-effort: a failure to watch must not stop playback.
		g.Go(func() error {
			if err := h.Watch(gctx); err != nil {
				logger.Warn().Err(err).Str("event", "config.watcher_start_failed").Msg("failed to start config watcher")
			}
			return nil
		})

		if a.reloadSignal != nil {
			g.Go(func() error { return a.reloadOnSignal(gctx, h) })
		}
	}

	g.Go(func() error {
		logger.Info().Str("event", "api.listening").Str("addr", ln.Addr().String()).Msg("control API listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		// The controller releases its engine before the API stops answering.
		<-ctrlDone
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.deps.ShutdownTimeout)
		defer cancel()
		logger.Info().Str("event", "api.shutdown").Msg("shutting down control API")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (a *App) reloadOnSignal(ctx context.Context, h *config.ConfigHolder) error {
	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, a.reloadSignal)
	defer signal.Stop(hupChan)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hupChan:
			a.deps.Logger.Info().
				Str("event", "config.reload_signal").
				Str("signal", a.reloadSignal.String()).
				Msg("received reload signal, reloading config")
			if err := h.Reload(ctx); err != nil {
				a.deps.Logger.Warn().Err(err).Str("event", "config.reload_failed").Msg("config reload failed")
			}
		}
	}
}

// apply pushes the reloadable parts of cfg into the running components.
func (a *App) apply(cfg config.AppConfig) {
	logger := a.deps.Logger
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn().Err(err).Str("event", "config.apply_failed").Msg("keeping previous log level")
	}
	if a.deps.Platform != nil {
		simCfg, err := cfg.SimConfig()
		if err != nil {
			logger.Warn().Err(err).Str("event", "config.apply_failed").Msg("keeping previous platform settings")
		} else {
			a.deps.Platform.Reconfigure(simCfg)
		}
	}
	logger.Info().Str("event", "config.applied").Msg("applied reloaded configuration")
}

func (a *App) closeResources(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.deps.ShutdownTimeout)
	defer cancel()

	var errs []error
	if a.deps.Telemetry != nil {
		if err := a.deps.Telemetry.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
	}
	if a.deps.Journal != nil {
		if err := a.deps.Journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("journal close: %w", err))
		}
	}
	if len(errs) > 0 {
		a.deps.Logger.Error().Int("error_count", len(errs)).Msg("shutdown completed with errors")
		return errors.Join(errs...)
	}
	a.deps.Logger.Info().Str("event", "daemon.stopped").Msg("daemon stopped cleanly")
	return nil
}
