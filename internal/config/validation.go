// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"github.com/ManuGH/playbackctl/internal/datasource"
	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/store"
	"github.com/ManuGH/playbackctl/internal/validate"
)

// Validate validates an AppConfig using the centralized validation package.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.LogLevel("logLevel", cfg.LogLevel)
	v.HostPort("api.listenAddr", cfg.API.ListenAddr, false)
	if cfg.API.RateLimit.Enabled {
		v.Positive("api.rateLimit.requestsPerMinute", cfg.API.RateLimit.RequestsPerMinute)
	}

	v.Range("platform.apiLevel", cfg.Platform.APILevel, 1, 99)
	for _, s := range cfg.Platform.DrmSchemes {
		if _, err := model.ParseDrmScheme(s); err != nil {
			v.AddError("platform.drmSchemes", err.Error(), s)
		}
	}

	v.NotEmpty("network.userAgent", cfg.Network.UserAgent)
	if _, err := datasource.ParseCookiePolicy(cfg.Network.CookiePolicy); err != nil {
		v.AddError("network.cookiePolicy", err.Error(), cfg.Network.CookiePolicy)
	}
	v.NonNegativeDuration("network.timeout", cfg.Network.Timeout)

	v.NonNegativeDuration("engine.positionInterval", cfg.Engine.PositionInterval)
	v.Positive("engine.eventQueueSize", cfg.Engine.EventQueueSize)

	v.OneOf("journal.driver", cfg.Journal.Driver, []string{store.BackendMemory, store.BackendSqlite})
	if cfg.Journal.Driver == store.BackendSqlite {
		v.NotEmpty("journal.path", cfg.Journal.Path)
	}
	v.Positive("journal.capacity", cfg.Journal.Capacity)

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		v.HostPort("telemetry.endpoint", cfg.Telemetry.Endpoint, true)
		v.FloatRange("telemetry.samplingRate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	return v.Err()
}
