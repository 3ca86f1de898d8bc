// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package store persists the session transition journal.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrJournalClosed = errors.New("journal closed")

// Record is one accepted state transition.
type Record struct {
	Seq        int64     `json:"seq"`
	SessionID  string    `json:"session_id"`
	Generation uint64    `json:"generation"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Event      string    `json:"event"`
	Detail     string    `json:"detail,omitempty"`
	At         time.Time `json:"at"`
}

// Journal is an append-only log of transitions.
type Journal interface {
	Append(ctx context.Context, rec Record) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

const (
	BackendMemory = "memory"
	BackendSqlite = "sqlite"
)

// Open builds the journal for backend. path is ignored by the memory backend.
func Open(backend, path string, capacity int) (Journal, error) {
	switch strings.ToLower(backend) {
	case "", BackendMemory:
		return NewMemoryJournal(capacity), nil
	case BackendSqlite:
		return NewSqliteJournal(path)
	default:
		return nil, fmt.Errorf("unknown journal backend %q", backend)
	}
}
