package report

import (
	"time"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/georgemunganga/kuber-inventory/internal/modules/category"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats is the headline view of the inventory.
type DashboardStats struct {
	TotalProducts    int               `json:"total_products"`
	TotalStockValue  decimal.Decimal   `json:"total_stock_value"`
	LowStockItems    int               `json:"low_stock_items"`
	OutOfStockItems  int               `json:"out_of_stock_items"`
	TotalCategories  int               `json:"total_categories"`
	RecentActivities []*activity.Entry `json:"recent_activities"`
}

// LowStockRow is one product at or below its threshold.
type LowStockRow struct {
	ProductID         uuid.UUID `json:"product_id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	// Shortfall is threshold - quantity; zero at the boundary.
	Shortfall int `json:"shortfall"`
}

type LowStockReport struct {
	Items       []LowStockRow `json:"items"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// ValuationRow is one product priced at price * quantity.
type ValuationRow struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Value     decimal.Decimal `json:"value"`
}

type InventoryReport struct {
	Products    []ValuationRow       `json:"products"`
	Categories  []*category.Category `json:"categories"`
	TotalValue  decimal.Decimal      `json:"total_value"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// CategoryRow aggregates the products carrying one category name.
// Registered is false for names no Category record holds any more.
type CategoryRow struct {
	Name         string          `json:"name"`
	Registered   bool            `json:"registered"`
	ProductCount int             `json:"product_count"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

type CategoryReport struct {
	Categories  []CategoryRow `json:"categories"`
	GeneratedAt time.Time     `json:"generated_at"`
}
