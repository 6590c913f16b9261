package inventory

import (
	"context"
	"sort"
	"sync"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/google/uuid"
)

// Compile-time check that MemoryStore satisfies Repository.
var _ Repository = (*MemoryStore)(nil)

// MemoryStore keeps products and their ledger in process. It backs tests and
// the "memory" store driver. All critical sections are in-memory and bounded.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*Product
	skus     map[string]uuid.UUID
	log      *activity.MemoryLog
}

// NewMemoryStore returns a store that appends its ledger entries to log.
func NewMemoryStore(log *activity.MemoryLog) *MemoryStore {
	return &MemoryStore{
		products: make(map[uuid.UUID]*Product),
		skus:     make(map[string]uuid.UUID),
		log:      log,
	}
}

func (s *MemoryStore) Create(ctx context.Context, p *Product, entry *activity.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.skus[p.SKU]; taken {
		return ErrDuplicateSKU
	}
	if _, exists := s.products[p.ID]; exists {
		return ErrConflict
	}
	s.products[p.ID] = p.clone()
	s.skus[p.SKU] = p.ID
	*entry = s.log.Append(*entry)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, apply ApplyFunc) (*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	next, entry, err := apply(current.clone())
	if err != nil {
		return nil, err
	}
	if next.SKU != current.SKU {
		if holder, taken := s.skus[next.SKU]; taken && holder != id {
			return nil, ErrDuplicateSKU
		}
	}

	delete(s.skus, current.SKU)
	s.skus[next.SKU] = id
	s.products[id] = next.clone()
	*entry = s.log.Append(*entry)
	return next, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID, entryFor EntryFunc) (*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	entry := entryFor(current.clone())
	delete(s.products, id)
	delete(s.skus, current.SKU)
	*entry = s.log.Append(*entry)
	return current.clone(), nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.clone(), nil
}

func (s *MemoryStore) List(ctx context.Context, f Filter) ([]*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	products := make([]*Product, 0, len(s.products))
	for _, p := range s.products {
		if f.Matches(p) {
			products = append(products, p.clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.Before(products[j].CreatedAt)
		}
		return products[i].ID.String() < products[j].ID.String()
	})
	return products, nil
}

func (s *MemoryStore) CountByCategory(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range s.products {
		counts[p.Category]++
	}
	return counts, nil
}
