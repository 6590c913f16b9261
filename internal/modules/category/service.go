package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines category business logic.
type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
	// ListCategories fills ProductCount from the live product store.
	ListCategories(ctx context.Context) ([]*Category, error)
}

// CreateCategoryRequest holds the data for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type service struct {
	repo     Repository
	products ProductCounter
}

func NewService(repo Repository, products ProductCounter) Service {
	return &service{repo: repo, products: products}
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	c := &Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.repo.Delete(ctx, uid)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.products.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	for _, c := range categories {
		c.ProductCount = counts[c.Name]
	}
	return categories, nil
}
