package category

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products by name. ProductCount is derived at read time
// from the products carrying this name; it is never stored.
type Category struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}
