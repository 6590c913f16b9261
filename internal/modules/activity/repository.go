package activity

import (
	"context"
	"errors"
	"fmt"
)

const (
	// DefaultLimit is used when a caller does not ask for a specific page size.
	DefaultLimit = 100
	// MaxLimit caps every Recent read.
	MaxLimit = 1000
	// DashboardLimit is the number of entries shown on the dashboard.
	DashboardLimit = 10
)

// ErrInvalidLimit is returned for negative limits.
var ErrInvalidLimit = errors.New("limit must not be negative")

// Reader is the read side of the ledger. There is no update or delete.
type Reader interface {
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*Entry, error)
}

// Publisher receives entries after the mutation that produced them has committed.
// Implementations must not block.
type Publisher interface {
	Publish(e Entry)
}

// NopPublisher discards entries.
type NopPublisher struct{}

func (NopPublisher) Publish(Entry) {}

// NormalizeLimit applies DefaultLimit to zero and clamps to MaxLimit.
func NormalizeLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	case limit == 0:
		return DefaultLimit, nil
	case limit > MaxLimit:
		return MaxLimit, nil
	}
	return limit, nil
}
