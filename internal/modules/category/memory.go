package category

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Category
	names map[string]uuid.UUID
}

// NewMemoryRepository creates an in-process category repository.
func NewMemoryRepository() Repository {
	return &memoryRepo{
		byID:  make(map[uuid.UUID]*Category),
		names: make(map[string]uuid.UUID),
	}
}

func (r *memoryRepo) Create(ctx context.Context, c *Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.names[c.Name]; taken {
		return ErrDuplicateName
	}
	stored := *c
	r.byID[c.ID] = &stored
	r.names[c.Name] = c.ID
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.names, c.Name)
	return nil
}

func (r *memoryRepo) List(ctx context.Context) ([]*Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	categories := make([]*Category, 0, len(r.byID))
	for _, c := range r.byID {
		copied := *c
		categories = append(categories, &copied)
	}
	r.mu.RUnlock()
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}
