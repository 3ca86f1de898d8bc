// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/playbackctl/internal/log"
)

// EnvPrefix namespaces every environment key the loader reads.
const EnvPrefix = "PLAYBACK_"

// lookupEnv reads key and parses it, falling back to defaultValue when the
// variable is unset, empty or malformed. Every choice is logged at debug so
// operators can see where a value came from.
func lookupEnv[T any](logger zerolog.Logger, key string, defaultValue T, parse func(string) (T, error)) T {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logger.Debug().
			Str("key", key).
			Str("default", fmt.Sprint(defaultValue)).
			Str("source", "default").
			Msg("using default value")
		return defaultValue
	}
	parsed, err := parse(v)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Str("default", fmt.Sprint(defaultValue)).
			Msg("invalid environment variable, using default")
		return defaultValue
	}
	ev := logger.Debug().Str("key", key).Str("source", "environment")
	if lower := strings.ToLower(key); strings.Contains(lower, "token") || strings.Contains(lower, "secret") {
		ev = ev.Bool("sensitive", true)
	} else {
		ev = ev.Str("value", v)
	}
	ev.Msg("using environment variable")
	return parsed
}

func ParseString(key, defaultValue string) string {
	return lookupEnv(log.WithComponent("config"), key, defaultValue, func(s string) (string, error) { return s, nil })
}

func ParseInt(key string, defaultValue int) int {
	return lookupEnv(log.WithComponent("config"), key, defaultValue, strconv.Atoi)
}

// ParseDuration accepts Go duration syntax, e.g. "250ms".
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	return lookupEnv(log.WithComponent("config"), key, defaultValue, time.ParseDuration)
}

func ParseFloat(key string, defaultValue float64) float64 {
	return lookupEnv(log.WithComponent("config"), key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// ParseBool accepts true/false, 1/0 and yes/no, case-insensitive.
func ParseBool(key string, defaultValue bool) bool {
	return lookupEnv(log.WithComponent("config"), key, defaultValue, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return false, fmt.Errorf("invalid boolean %q", s)
	})
}

// ParseList reads a comma separated list; blank entries are dropped.
func ParseList(key string, defaultValue []string) []string {
	return lookupEnv(log.WithComponent("config"), key, defaultValue, func(s string) ([]string, error) {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	})
}
