// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ManuGH/playbackctl/internal/persistence/sqlite"
)

const schemaVersion = 1

// SqliteJournal stores transitions in a SQLite table.
type SqliteJournal struct {
	DB *sql.DB
}

func NewSqliteJournal(dbPath string) (*SqliteJournal, error) {
	db, err := sqlite.Open(dbPath, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}
	j := &SqliteJournal{DB: db}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migration failed: %w", err)
	}
	return j, nil
}

func (j *SqliteJournal) migrate() error {
	var current int
	if err := j.DB.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return err
	}
	if current >= schemaVersion {
		return nil
	}

	tx, err := j.DB.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const schema = `
	CREATE TABLE IF NOT EXISTS transitions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		from_state TEXT NOT NULL,
		to_state TEXT NOT NULL,
		event TEXT NOT NULL,
		detail TEXT,
		at_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transitions_session ON transitions(session_id, seq);
	`
	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

func (j *SqliteJournal) Append(ctx context.Context, rec Record) error {
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.DB.ExecContext(ctx,
		`INSERT INTO transitions (session_id, generation, from_state, to_state, event, detail, at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, int64(rec.Generation), rec.From, rec.To, rec.Event, nullString(rec.Detail), at.UnixMilli())
	if err != nil {
		return fmt.Errorf("journal: append: %w", err)
	}
	return nil
}

func (j *SqliteJournal) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.DB.QueryContext(ctx,
		`SELECT seq, session_id, generation, from_state, to_state, event, detail, at_ms
		 FROM transitions ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var (
			rec    Record
			gen    int64
			detail sql.NullString
			atMs   int64
		)
		if err := rows.Scan(&rec.Seq, &rec.SessionID, &gen, &rec.From, &rec.To, &rec.Event, &detail, &atMs); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		rec.Generation = uint64(gen)
		rec.Detail = detail.String
		rec.At = time.UnixMilli(atMs)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *SqliteJournal) Close() error {
	return j.DB.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Journal = (*SqliteJournal)(nil)
