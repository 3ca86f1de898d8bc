// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Command playbackd runs the playback session controller behind its HTTP
// control API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/playbackctl/internal/config"
	"github.com/ManuGH/playbackctl/internal/daemon"
	plog "github.com/ManuGH/playbackctl/internal/log"
	"github.com/ManuGH/playbackctl/internal/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "config" {
		os.Exit(runConfigCLI(os.Args[2:]))
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Safe defaults until the config is loaded.
	plog.Configure(plog.Config{
		Level:   "info",
		Service: "playbackd",
		Version: version.Version,
	})
	logger := plog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := strings.TrimSpace(*configPath)
	loader := config.NewLoader(path, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", path).
			Msg("failed to load configuration")
	}

	plog.Configure(plog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	logger = plog.WithComponent("daemon")

	if path != "" {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file").
			Str("path", path).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	holder := config.NewConfigHolder(cfg, loader, path)
	app, err := daemon.Bootstrap(ctx, holder, daemon.Options{})
	if err != nil {
		logger.Fatal().Err(err).Str("event", "startup.failed").Msg("failed to start playback controller")
	}

	logger.Info().
		Str("event", "daemon.start").
		Str("version", version.Version).
		Str("listen", cfg.API.ListenAddr).
		Msg("starting playbackd")

	if err := app.Run(ctx); err != nil {
		logger.Error().Err(err).Str("event", "daemon.failed").Msg("playbackd stopped with error")
		stop()
		os.Exit(1)
	}
}
