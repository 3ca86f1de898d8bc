// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigInit_WritesLoadableDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playbackd.yaml")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, configCLI([]string{"init", path}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), path)

	stdout.Reset()
	require.Equal(t, 0, configCLI([]string{"validate", path}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "is valid")
}

func TestConfigInit_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playbackd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logLevel: debug\n"), 0o600))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, configCLI([]string{"init", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "already exists")

	stderr.Reset()
	assert.Equal(t, 0, configCLI([]string{"init", "--force", path}, &stdout, &stderr), stderr.String())
}

func TestConfigValidate_ReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  driver: etcd\n"), 0o600))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, configCLI([]string{"validate", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "journal.driver")

	assert.Equal(t, 2, configCLI([]string{"validate"}, &stdout, &stderr))
}

func TestConfigDump_Formats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playbackd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logLevel: debug\n"), 0o600))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, configCLI([]string{"dump", path}, &stdout, &stderr), stderr.String())
	var asYAML map[string]any
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &asYAML))
	assert.Equal(t, "debug", asYAML["logLevel"])

	stdout.Reset()
	require.Equal(t, 0, configCLI([]string{"dump", "--format=json", path}, &stdout, &stderr), stderr.String())
	var asJSON map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &asJSON))
	assert.Equal(t, "debug", asJSON["LogLevel"])

	assert.Equal(t, 2, configCLI([]string{"dump", "--format=toml", path}, &stdout, &stderr))
}

func TestConfigCLI_UnknownSubcommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, configCLI([]string{"frobnicate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Unknown subcommand")
	assert.Equal(t, 0, configCLI(nil, &stdout, &stderr))
}
