package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold applies when a create request leaves the threshold out.
const DefaultLowStockThreshold = 10

// Product is one stocked item. Category holds a category name, not a reference:
// renaming or deleting a category never rewrites products.
type Product struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	Category          string          `json:"category"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	Images            []string        `json:"images"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// IsLowStock reports whether quantity is at or below the threshold.
func (p *Product) IsLowStock() bool { return p.Quantity <= p.LowStockThreshold }

// StockValue is price * quantity.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

func (p *Product) clone() *Product {
	c := *p
	c.Images = append([]string{}, p.Images...)
	return &c
}

// Filter narrows a product listing. Zero values disable each predicate.
type Filter struct {
	// Category matches the product's category name exactly.
	Category string
	// Search is a case-insensitive substring over name or SKU.
	Search string
	// LowStockOnly keeps products with quantity <= low_stock_threshold.
	LowStockOnly bool
}

// Matches evaluates f against p.
func (f Filter) Matches(p *Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.SKU), needle) {
			return false
		}
	}
	if f.LowStockOnly && !p.IsLowStock() {
		return false
	}
	return true
}
