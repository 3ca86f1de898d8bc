// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	plog "github.com/ManuGH/playbackctl/internal/log"
)

const defaultDebounce = 500 * time.Millisecond

// ConfigHolder holds configuration with atomic reloading capability.
type ConfigHolder struct {
	mu         sync.RWMutex
	current    AppConfig
	loader     *Loader
	configPath string
	logger     zerolog.Logger

	// Debounce delays reloads after the last file event.
	Debounce time.Duration

	reloadMu        sync.RWMutex
	reloadListeners []chan<- AppConfig

	wg sync.WaitGroup
}

func NewConfigHolder(initial AppConfig, loader *Loader, configPath string) *ConfigHolder {
	return &ConfigHolder{
		current:    initial,
		loader:     loader,
		configPath: configPath,
		logger:     plog.WithComponent("config"),
		Debounce:   defaultDebounce,
	}
}

// Get returns the current configuration (thread-safe read).
func (h *ConfigHolder) Get() AppConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload loads and validates the file again. On failure the old
// configuration stays in place.
func (h *ConfigHolder) Reload(_ context.Context) error {
	h.logger.Info().Str("event", "config.reload_start").Msg("reloading configuration")

	newCfg, err := h.loader.Load()
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("event", "config.reload_failed").
			Msg("failed to load new configuration")
		return fmt.Errorf("load config: %w", err)
	}

	h.mu.Lock()
	oldCfg := h.current
	h.current = newCfg
	h.mu.Unlock()

	h.notifyListeners(newCfg)
	h.logChanges(oldCfg, newCfg)

	h.logger.Info().
		Str("event", "config.reload_success").
		Msg("configuration reloaded successfully")
	return nil
}

// Watch reloads on changes to the config file until ctx ends. It watches
// the parent directory so editors that replace the file by rename are seen.
// With no config path it returns immediately.
func (h *ConfigHolder) Watch(ctx context.Context) error {
	if h.configPath == "" {
		h.logger.Info().
			Str("event", "config.watcher_disabled").
			Msg("config file watcher disabled (using ENV-only configuration)")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(h.configPath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	h.logger.Info().
		Str("event", "config.watcher_started").
		Str("path", target).
		Msg("watching config file for changes")

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil && debounceTimer.Stop() {
			h.wg.Done()
		}
		h.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str("event", "config.watcher_stopped").Msg("config watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			h.logger.Debug().
				Str("event", "config.file_changed").
				Str("op", event.Op.String()).
				Msg("config file changed")

			if debounceTimer != nil && debounceTimer.Stop() {
				h.wg.Done()
			}
			h.wg.Add(1)
			debounceTimer = time.AfterFunc(h.Debounce, func() {
				defer h.wg.Done()
				if err := h.Reload(ctx); err != nil {
					h.logger.Error().
						Err(err).
						Str("event", "config.auto_reload_failed").
						Msg("automatic config reload failed")
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Error().
				Err(err).
				Str("event", "config.watcher_error").
				Msg("config watcher error")
		}
	}
}

// RegisterListener registers a channel that receives every successfully
// reloaded config. Sends never block; the caller owns the channel.
func (h *ConfigHolder) RegisterListener(ch chan<- AppConfig) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	h.reloadListeners = append(h.reloadListeners, ch)
}

func (h *ConfigHolder) notifyListeners(newCfg AppConfig) {
	h.reloadMu.RLock()
	defer h.reloadMu.RUnlock()

	for _, ch := range h.reloadListeners {
		select {
		case ch <- newCfg:
		default:
			h.logger.Warn().
				Str("event", "config.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}

func (h *ConfigHolder) logChanges(old, newCfg AppConfig) {
	if old.LogLevel != newCfg.LogLevel {
		h.logger.Info().Str("old", old.LogLevel).Str("new", newCfg.LogLevel).Msg("config changed: logLevel")
	}
	if old.Platform.APILevel != newCfg.Platform.APILevel {
		h.logger.Info().Int("old", old.Platform.APILevel).Int("new", newCfg.Platform.APILevel).Msg("config changed: platform.apiLevel")
	}
	if old.Platform.StorageGranted != newCfg.Platform.StorageGranted {
		h.logger.Info().Bool("old", old.Platform.StorageGranted).Bool("new", newCfg.Platform.StorageGranted).Msg("config changed: platform.storageGranted")
	}
	if !slices.Equal(old.Platform.DrmSchemes, newCfg.Platform.DrmSchemes) {
		h.logger.Info().Strs("old", old.Platform.DrmSchemes).Strs("new", newCfg.Platform.DrmSchemes).Msg("config changed: platform.drmSchemes")
	}
	if old.API.ListenAddr != newCfg.API.ListenAddr {
		h.logger.Warn().Str("old", old.API.ListenAddr).Str("new", newCfg.API.ListenAddr).Msg("config changed: api.listenAddr (requires restart)")
	}
}
