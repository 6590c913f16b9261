package admin

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*Admin
	byEmail map[string]*Admin
}

// NewMemoryRepository creates an in-process admin repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:    make(map[string]*Admin),
		byEmail: make(map[string]*Admin),
	}
}

func (r *memoryRepository) CreateAdmin(ctx context.Context, a *Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[a.Email]; taken {
		return ErrEmailTaken
	}
	c := *a
	r.byID[a.ID.String()] = &c
	r.byEmail[a.Email] = &c
	return nil
}

func (r *memoryRepository) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *memoryRepository) GetAdminByID(ctx context.Context, id string) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *memoryRepository) ListAdmins(ctx context.Context) ([]*Admin, error) {
	r.mu.RLock()
	admins := make([]*Admin, 0, len(r.byID))
	for _, a := range r.byID {
		c := *a
		admins = append(admins, &c)
	}
	r.mu.RUnlock()
	sort.Slice(admins, func(i, j int) bool { return admins[i].CreatedAt.Before(admins[j].CreatedAt) })
	return admins, nil
}
