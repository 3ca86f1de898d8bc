// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"sync"
)

const defaultMemoryCapacity = 256

// MemoryJournal keeps the most recent records in a ring.
type MemoryJournal struct {
	mu     sync.Mutex
	ring   []Record
	next   int
	full   bool
	seq    int64
	closed bool
}

func NewMemoryJournal(capacity int) *MemoryJournal {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryJournal{ring: make([]Record, capacity)}
}

func (j *MemoryJournal) Append(_ context.Context, rec Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrJournalClosed
	}
	j.seq++
	rec.Seq = j.seq
	j.ring[j.next] = rec
	j.next = (j.next + 1) % len(j.ring)
	if j.next == 0 {
		j.full = true
	}
	return nil
}

func (j *MemoryJournal) Recent(_ context.Context, limit int) ([]Record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrJournalClosed
	}
	n := j.next
	if j.full {
		n = len(j.ring)
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Record, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (j.next - 1 - i + len(j.ring)) % len(j.ring)
		out = append(out, j.ring[idx])
	}
	return out, nil
}

func (j *MemoryJournal) Close() error {
	j.mu.Lock()
	j.closed = true
	j.mu.Unlock()
	return nil
}

var _ Journal = (*MemoryJournal)(nil)
