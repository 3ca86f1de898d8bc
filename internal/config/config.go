// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads the playback daemon configuration.
//
// Precedence is ENV > YAML file > defaults. The YAML file is decoded
// strictly: unknown keys and trailing documents are rejected.
package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ManuGH/playbackctl/internal/datasource"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/platform/sim"
	"github.com/ManuGH/playbackctl/internal/telemetry"
)

// AppConfig is the fully resolved configuration.
type AppConfig struct {
	LogLevel   string          `yaml:"logLevel"`
	LogService string          `yaml:"logService"`
	API        APIConfig       `yaml:"api"`
	Platform   PlatformConfig  `yaml:"platform"`
	Network    NetworkConfig   `yaml:"network"`
	Engine     EngineConfig    `yaml:"engine"`
	Journal    JournalConfig   `yaml:"journal"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`

	Version string `yaml:"-"`
}

type APIConfig struct {
	ListenAddr string          `yaml:"listenAddr"`
	RateLimit  RateLimitConfig `yaml:"rateLimit"`
}

type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
}

// PlatformConfig describes the simulated host platform.
type PlatformConfig struct {
	APILevel       int      `yaml:"apiLevel"`
	StorageGranted bool     `yaml:"storageGranted"`
	DrmSchemes     []string `yaml:"drmSchemes"`
}

type NetworkConfig struct {
	UserAgent    string        `yaml:"userAgent"`
	CookiePolicy string        `yaml:"cookiePolicy"`
	Timeout      time.Duration `yaml:"timeout"`
}

type EngineConfig struct {
	PreferExtensionDecoders bool `yaml:"preferExtensionDecoders"`
	// PositionInterval of zero disables the position reporter.
	PositionInterval time.Duration `yaml:"positionInterval"`
	EventQueueSize   int           `yaml:"eventQueueSize"`
}

type JournalConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Capacity int    `yaml:"capacity"`
}

type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
	Environment  string  `yaml:"environment"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		LogLevel:   "info",
		LogService: "playbackd",
		API: APIConfig{
			ListenAddr: ":8088",
			RateLimit:  RateLimitConfig{Enabled: true, RequestsPerMinute: 120},
		},
		Platform: PlatformConfig{
			APILevel:       30,
			StorageGranted: false,
			DrmSchemes:     []string{"widevine", "clearkey"},
		},
		Network: NetworkConfig{
			UserAgent:    "playbackctl",
			CookiePolicy: string(datasource.PolicyAcceptOriginalServer),
			Timeout:      8 * time.Second,
		},
		Engine: EngineConfig{
			PositionInterval: time.Second,
			EventQueueSize:   64,
		},
		Journal: JournalConfig{
			Driver:   "memory",
			Path:     "playback.db",
			Capacity: 512,
		},
		Telemetry: TelemetryConfig{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
			Environment:  "development",
		},
	}
}

// SimConfig converts the platform section for sim.New.
func (c AppConfig) SimConfig() (sim.Config, error) {
	schemes := make([]uuid.UUID, 0, len(c.Platform.DrmSchemes))
	for _, s := range c.Platform.DrmSchemes {
		id, err := model.ParseDrmScheme(s)
		if err != nil {
			return sim.Config{}, fmt.Errorf("platform.drmSchemes: %w", err)
		}
		schemes = append(schemes, id)
	}
	return sim.Config{
		APILevel:       c.Platform.APILevel,
		StorageGranted: c.Platform.StorageGranted,
		DrmSchemes:     schemes,
	}, nil
}

// CookiePolicy returns the parsed network.cookiePolicy.
func (c AppConfig) CookiePolicy() (datasource.CookiePolicy, error) {
	return datasource.ParseCookiePolicy(c.Network.CookiePolicy)
}

// ReporterInterval maps the configured interval onto the controller's
// convention, where negative disables reporting.
func (c AppConfig) ReporterInterval() time.Duration {
	if c.Engine.PositionInterval == 0 {
		return -1
	}
	return c.Engine.PositionInterval
}

func (c AppConfig) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		Enabled:        c.Telemetry.Enabled,
		ServiceName:    c.LogService,
		ServiceVersion: c.Version,
		Environment:    c.Telemetry.Environment,
		ExporterType:   c.Telemetry.Exporter,
		Endpoint:       c.Telemetry.Endpoint,
		SamplingRate:   c.Telemetry.SamplingRate,
	}
}
