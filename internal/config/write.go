// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteDefault when path is already present.
var ErrConfigExists = errors.New("config file already exists")

const defaultHeader = "# playbackd configuration. ENV variables prefixed PLAYBACK_ override these values.\n"

// WriteDefault writes the default configuration to path atomically. An
// existing file is left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}

	body, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("create pending config file: %w", err)
	}
	defer func() { _ = pendingFile.Cleanup() }()

	if _, err := pendingFile.WriteString(defaultHeader); err != nil {
		return fmt.Errorf("write config header: %w", err)
	}
	if _, err := pendingFile.Write(body); err != nil {
		return fmt.Errorf("write config body: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace config file: %w", err)
	}
	return nil
}
