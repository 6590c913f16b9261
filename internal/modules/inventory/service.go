package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines product business logic. Every mutation is attributed to an
// actor and leaves exactly one ledger entry.
type Service interface {
	CreateProduct(ctx context.Context, actor activity.Actor, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, f Filter) ([]*Product, error)

	// UpdateProduct applies a partial update. When ExpectedVersion is set and no
	// longer matches, it fails with ErrConflict and nothing is written.
	UpdateProduct(ctx context.Context, actor activity.Actor, id string, req UpdateProductRequest) (*Product, error)

	// AdjustStock adds delta to the current quantity under the row lock.
	AdjustStock(ctx context.Context, actor activity.Actor, id string, delta int) (*Product, error)

	DeleteProduct(ctx context.Context, actor activity.Actor, id string) error
}

// CreateProductRequest holds the data for creating a product.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	Category          string          `json:"category"`
	Images            []string        `json:"images"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
}

// UpdateProductRequest is a patch: nil fields keep their current value.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	SKU               *string          `json:"sku"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	Quantity          *int             `json:"quantity"`
	Category          *string          `json:"category"`
	Images            *[]string        `json:"images"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	ExpectedVersion   *int             `json:"expected_version"`
}

type service struct {
	repo      Repository
	publisher activity.Publisher
	now       func() time.Time
}

// NewService creates a product service. A nil publisher discards ledger events.
func NewService(repo Repository, publisher activity.Publisher) Service {
	if publisher == nil {
		publisher = activity.NopPublisher{}
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Column limits of the products table: price NUMERIC(14,2), counts INTEGER.
var maxPrice = decimal.New(1, 12)

const maxCount = math.MaxInt32

func validate(p *Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return invalid("name is required")
	case strings.TrimSpace(p.SKU) == "":
		return invalid("sku is required")
	case p.Price.IsNegative():
		return invalid("price must not be negative")
	case !p.Price.Equal(p.Price.Round(2)):
		return invalid("price must have at most 2 decimal places")
	case p.Price.GreaterThanOrEqual(maxPrice):
		return invalid("price must be below %s", maxPrice)
	case p.Quantity < 0:
		return invalid("quantity must not be negative")
	case p.Quantity > maxCount:
		return invalid("quantity must not exceed %d", maxCount)
	case p.LowStockThreshold < 0:
		return invalid("low_stock_threshold must not be negative")
	case p.LowStockThreshold > maxCount:
		return invalid("low_stock_threshold must not exceed %d", maxCount)
	}
	return nil
}

// parseID maps malformed ids to ErrNotFound: no product can carry them.
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return uid, nil
}

func (s *service) CreateProduct(ctx context.Context, actor activity.Actor, req CreateProductRequest) (*Product, error) {
	threshold := DefaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}
	now := s.now()
	p := &Product{
		ID:                uuid.New(),
		SKU:               req.SKU,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Quantity:          req.Quantity,
		Category:          req.Category,
		LowStockThreshold: threshold,
		Images:            images,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	action, delta := Classify(nil, p)
	entry := activity.NewEntry(p.ID, p.Name, action, delta, actor, now)
	if err := s.repo.Create(ctx, p, entry); err != nil {
		return nil, err
	}
	s.publisher.Publish(*entry)
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) ListProducts(ctx context.Context, f Filter) ([]*Product, error) {
	return s.repo.List(ctx, f)
}

func (req UpdateProductRequest) applyTo(p *Product) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Images != nil {
		p.Images = append([]string{}, (*req.Images)...)
	}
	if req.LowStockThreshold != nil {
		p.LowStockThreshold = *req.LowStockThreshold
	}
}

func (s *service) UpdateProduct(ctx context.Context, actor activity.Actor, id string, req UpdateProductRequest) (*Product, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, actor, uid, func(current *Product) (*Product, error) {
		if req.ExpectedVersion != nil && *req.ExpectedVersion != current.Version {
			return nil, fmt.Errorf("%w: expected version %d, current %d",
				ErrConflict, *req.ExpectedVersion, current.Version)
		}
		next := current.clone()
		req.applyTo(next)
		return next, nil
	})
}

func (s *service) AdjustStock(ctx context.Context, actor activity.Actor, id string, delta int) (*Product, error) {
	if delta == 0 {
		return nil, invalid("delta must not be zero")
	}
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, actor, uid, func(current *Product) (*Product, error) {
		next := current.clone()
		next.Quantity += delta
		return next, nil
	})
}

// mutate runs change under the repository's row lock, validates the result,
// classifies it and publishes the committed entry.
func (s *service) mutate(ctx context.Context, actor activity.Actor, id uuid.UUID, change func(*Product) (*Product, error)) (*Product, error) {
	var committed *activity.Entry
	p, err := s.repo.Update(ctx, id, func(current *Product) (*Product, *activity.Entry, error) {
		next, err := change(current)
		if err != nil {
			return nil, nil, err
		}
		if err := validate(next); err != nil {
			return nil, nil, err
		}
		now := s.now()
		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
		next.Version = current.Version + 1
		next.UpdatedAt = now

		action, delta := Classify(current, next)
		committed = activity.NewEntry(current.ID, current.Name, action, delta, actor, now)
		return next, committed, nil
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(*committed)
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, actor activity.Actor, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	var committed *activity.Entry
	_, err = s.repo.Delete(ctx, uid, func(current *Product) *activity.Entry {
		action, delta := Classify(current, nil)
		committed = activity.NewEntry(current.ID, current.Name, action, delta, actor, s.now())
		return committed
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(*committed)
	return nil
}
