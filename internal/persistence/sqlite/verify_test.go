// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package sqlite

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNCarriesPragmas(t *testing.T) {
	dsn := DSN("/tmp/x.db", DefaultConfig())
	assert.True(t, strings.HasPrefix(dsn, "file:/tmp/x.db?"))
	assert.Contains(t, dsn, "journal_mode(WAL)")
	assert.Contains(t, dsn, "busy_timeout(5000)")
}

func TestOpenAndVerifyHealthy(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.sqlite")

	db, err := Open(dbPath, DefaultConfig())
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO t (v) VALUES ('a'), ('b')")
	require.NoError(t, err)

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", strings.ToLower(mode))
	require.NoError(t, db.Close())

	issues, err := VerifyIntegrity(dbPath, "quick")
	require.NoError(t, err)
	assert.Nil(t, issues)
}

func TestVerifyMissingFileIsHealthy(t *testing.T) {
	issues, err := VerifyIntegrity(filepath.Join(t.TempDir(), "absent.sqlite"), "full")
	require.NoError(t, err)
	assert.Nil(t, issues)
}
