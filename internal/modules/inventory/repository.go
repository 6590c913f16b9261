package inventory

import (
	"context"
	"errors"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrDuplicateSKU = errors.New("sku already exists")
	ErrConflict     = errors.New("product was modified concurrently")
	ErrInvalidInput = errors.New("invalid product input")
)

// ApplyFunc derives the next state of a product and the ledger entry for it.
// Repositories call it while holding the product's row lock, so current is
// the latest committed state.
type ApplyFunc func(current *Product) (next *Product, entry *activity.Entry, err error)

// EntryFunc builds the ledger entry for deleting current.
type EntryFunc func(current *Product) *activity.Entry

// Repository defines product storage. Every mutating method persists the
// product change and its ledger entry atomically.
type Repository interface {
	Create(ctx context.Context, p *Product, entry *activity.Entry) error
	Update(ctx context.Context, id uuid.UUID, apply ApplyFunc) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID, entryFor EntryFunc) (*Product, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// List returns matching products ordered by creation time, then id.
	List(ctx context.Context, f Filter) ([]*Product, error)
	// CountByCategory maps category name to the number of products carrying it.
	CountByCategory(ctx context.Context) (map[string]int, error)
}
