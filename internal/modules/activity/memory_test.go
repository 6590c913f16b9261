package activity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(name string, at time.Time) Entry {
	return *NewEntry(uuid.New(), name, ActionUpdated, 0, Actor{ID: uuid.New(), Email: "a@b.c"}, at)
}

func TestMemoryLogRecentNewestFirst(t *testing.T) {
	log := NewMemoryLog()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		log.Append(entryAt(name, base.Add(time.Duration(i)*time.Second)))
	}

	entries, err := log.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].ProductName)
	assert.Equal(t, "second", entries[1].ProductName)
}

func TestMemoryLogTiesKeepInsertionOrder(t *testing.T) {
	log := NewMemoryLog()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	log.Append(entryAt("a", at))
	log.Append(entryAt("b", at))
	log.Append(entryAt("c", at))

	entries, err := log.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{entries[0].ProductName, entries[1].ProductName, entries[2].ProductName})
	assert.True(t, entries[0].Seq > entries[1].Seq)
}

func TestMemoryLogOutOfOrderTimestamp(t *testing.T) {
	log := NewMemoryLog()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	log.Append(entryAt("late", base.Add(2*time.Second)))
	log.Append(entryAt("early", base))
	log.Append(entryAt("middle", base.Add(time.Second)))

	entries, err := log.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "late", entries[0].ProductName)
	assert.Equal(t, "middle", entries[1].ProductName)
	assert.Equal(t, "early", entries[2].ProductName)
}

func TestMemoryLogRecentReturnsCopies(t *testing.T) {
	log := NewMemoryLog()
	log.Append(entryAt("original", time.Now()))

	entries, err := log.Recent(context.Background(), 1)
	require.NoError(t, err)
	entries[0].ProductName = "tampered"

	again, err := log.Recent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].ProductName)
}

func TestMemoryLogRecentRejectsNegativeLimit(t *testing.T) {
	_, err := NewMemoryLog().Recent(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestMemoryLogRecentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryLog().Recent(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeLimit(t *testing.T) {
	testCases := []struct {
		name    string
		in      int
		want    int
		wantErr bool
	}{
		{name: "zero uses default", in: 0, want: DefaultLimit},
		{name: "within bounds", in: 25, want: 25},
		{name: "clamped to max", in: MaxLimit + 1, want: MaxLimit},
		{name: "negative rejected", in: -5, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeLimit(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLimit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
