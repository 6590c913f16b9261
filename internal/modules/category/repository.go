package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrDuplicateName = errors.New("category name already exists")
	ErrInvalidInput  = errors.New("invalid category input")
)

// Repository defines category storage. It knows nothing about products.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns categories ordered by name.
	List(ctx context.Context) ([]*Category, error)
}

// ProductCounter counts products per category name. The product store implements it.
type ProductCounter interface {
	CountByCategory(ctx context.Context) (map[string]int, error)
}
