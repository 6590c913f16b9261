package activity

import (
	"context"
	"sort"
	"sync"
)

// MemoryLog is an in-process ledger. Entries are kept ordered by timestamp,
// ties in insertion order.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []Entry
	seq     int64
}

func NewMemoryLog() *MemoryLog { return &MemoryLog{} }

// Append stores a copy of e and returns it with its sequence number set.
func (l *MemoryLog) Append(e Entry) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	e.Seq = l.seq

	n := len(l.entries)
	if n == 0 || !e.Timestamp.Before(l.entries[n-1].Timestamp) {
		l.entries = append(l.entries, e)
		return e
	}
	i := sort.Search(n, func(i int) bool { return l.entries[i].Timestamp.After(e.Timestamp) })
	l.entries = append(l.entries, Entry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = e
	return e
}

func (l *MemoryLog) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	limit, err := NormalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]*Entry, 0, limit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := l.entries[i]
		out = append(out, &e)
	}
	return out, nil
}

// Len reports how many entries have been appended.
func (l *MemoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
