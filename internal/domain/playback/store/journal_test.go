// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func journals(t *testing.T) map[string]Journal {
	t.Helper()
	sq, err := NewSqliteJournal(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Journal{
		BackendMemory: NewMemoryJournal(8),
		BackendSqlite: sq,
	}
}

func TestJournal_AppendAndRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	for name, j := range journals(t) {
		t.Run(name, func(t *testing.T) {
			at := time.UnixMilli(1_700_000_000_000)
			steps := [][2]string{{"IDLE", "INITIALIZING"}, {"INITIALIZING", "ACTIVE"}, {"ACTIVE", "SOURCE_PENDING"}}
			for i, s := range steps {
				require.NoError(t, j.Append(ctx, Record{
					SessionID:  "s1",
					Generation: 1,
					From:       s[0],
					To:         s[1],
					Event:      fmt.Sprintf("ev%d", i),
					At:         at,
				}))
			}

			recs, err := j.Recent(ctx, 2)
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, "SOURCE_PENDING", recs[0].To)
			assert.Equal(t, "ACTIVE", recs[1].To)
			assert.Greater(t, recs[0].Seq, recs[1].Seq)
			assert.Equal(t, uint64(1), recs[0].Generation)
			assert.True(t, at.Equal(recs[0].At))

			all, err := j.Recent(ctx, 0)
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}

func TestMemoryJournal_RingOverwritesOldest(t *testing.T) {
	ctx := context.Background()
	j := NewMemoryJournal(3)
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Append(ctx, Record{Event: fmt.Sprint(i)}))
	}
	recs, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"4", "3", "2"}, []string{recs[0].Event, recs[1].Event, recs[2].Event})
	assert.Equal(t, int64(5), recs[0].Seq)

	require.NoError(t, j.Close())
	assert.ErrorIs(t, j.Append(ctx, Record{}), ErrJournalClosed)
}

func TestSqliteJournal_ReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "j.sqlite")

	j, err := NewSqliteJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.Append(ctx, Record{SessionID: "a", From: "IDLE", To: "INITIALIZING", Event: "initialize"}))
	require.NoError(t, j.Close())

	j, err = NewSqliteJournal(path)
	require.NoError(t, err)
	defer func() { _ = j.Close() }()
	recs, err := j.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].SessionID)
	assert.Empty(t, recs[0].Detail)
}

func TestOpen_Backends(t *testing.T) {
	j, err := Open("memory", "", 0)
	require.NoError(t, err)
	assert.IsType(t, &MemoryJournal{}, j)

	_, err = Open("badger", "", 0)
	assert.ErrorContains(t, err, "unknown journal backend")
}
