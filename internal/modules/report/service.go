package report

import (
	"context"
	"sort"
	"time"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/georgemunganga/kuber-inventory/internal/modules/category"
	"github.com/georgemunganga/kuber-inventory/internal/modules/inventory"
	"github.com/shopspring/decimal"
)

// ProductLister is the read-only slice of the product store reports need.
type ProductLister interface {
	List(ctx context.Context, f inventory.Filter) ([]*inventory.Product, error)
}

// CategoryLister lists categories with derived product counts.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]*category.Category, error)
}

// Service computes read-only views. Nothing is cached: every call reads the
// current store and ledger.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	LowStock(ctx context.Context) (*LowStockReport, error)
	Inventory(ctx context.Context) (*InventoryReport, error)
	Categories(ctx context.Context) (*CategoryReport, error)
	Activity(ctx context.Context, limit int) ([]*activity.Entry, error)
}

type service struct {
	products   ProductLister
	categories CategoryLister
	ledger     activity.Reader
	now        func() time.Time
}

func NewService(products ProductLister, categories CategoryLister, ledger activity.Reader) Service {
	return &service{
		products:   products,
		categories: categories,
		ledger:     ledger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	products, err := s.products.List(ctx, inventory.Filter{})
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.ledger.Recent(ctx, activity.DashboardLimit)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts:    len(products),
		TotalStockValue:  decimal.Zero,
		TotalCategories:  len(categories),
		RecentActivities: recent,
	}
	for _, p := range products {
		stats.TotalStockValue = stats.TotalStockValue.Add(p.StockValue())
		if p.IsLowStock() {
			stats.LowStockItems++
		}
		if p.Quantity == 0 {
			stats.OutOfStockItems++
		}
	}
	if stats.RecentActivities == nil {
		stats.RecentActivities = []*activity.Entry{}
	}
	return stats, nil
}

func (s *service) LowStock(ctx context.Context) (*LowStockReport, error) {
	products, err := s.products.List(ctx, inventory.Filter{LowStockOnly: true})
	if err != nil {
		return nil, err
	}
	rep := &LowStockReport{Items: make([]LowStockRow, 0, len(products)), GeneratedAt: s.now()}
	for _, p := range products {
		rep.Items = append(rep.Items, LowStockRow{
			ProductID:         p.ID,
			SKU:               p.SKU,
			Name:              p.Name,
			Category:          p.Category,
			Quantity:          p.Quantity,
			LowStockThreshold: p.LowStockThreshold,
			Shortfall:         p.LowStockThreshold - p.Quantity,
		})
	}
	return rep, nil
}

func (s *service) Inventory(ctx context.Context) (*InventoryReport, error) {
	products, err := s.products.List(ctx, inventory.Filter{})
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	// counts come from the product list read above, not a second scan
	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[p.Category]++
	}
	for _, c := range categories {
		c.ProductCount = counts[c.Name]
	}

	rep := &InventoryReport{
		Products:    make([]ValuationRow, 0, len(products)),
		Categories:  categories,
		TotalValue:  decimal.Zero,
		GeneratedAt: s.now(),
	}
	for _, p := range products {
		value := p.StockValue()
		rep.Products = append(rep.Products, ValuationRow{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
			Quantity:  p.Quantity,
			Value:     value,
		})
		rep.TotalValue = rep.TotalValue.Add(value)
	}
	return rep, nil
}

func (s *service) Categories(ctx context.Context) (*CategoryReport, error) {
	products, err := s.products.List(ctx, inventory.Filter{})
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*CategoryRow, len(categories))
	for _, c := range categories {
		rows[c.Name] = &CategoryRow{Name: c.Name, Registered: true, StockValue: decimal.Zero}
	}
	for _, p := range products {
		row, ok := rows[p.Category]
		if !ok {
			row = &CategoryRow{Name: p.Category, StockValue: decimal.Zero}
			rows[p.Category] = row
		}
		row.ProductCount++
		row.StockValue = row.StockValue.Add(p.StockValue())
	}

	rep := &CategoryReport{Categories: make([]CategoryRow, 0, len(rows)), GeneratedAt: s.now()}
	for _, row := range rows {
		rep.Categories = append(rep.Categories, *row)
	}
	// registered first, then orphaned names; alphabetical within each group
	sort.Slice(rep.Categories, func(i, j int) bool {
		a, b := rep.Categories[i], rep.Categories[j]
		if a.Registered != b.Registered {
			return a.Registered
		}
		return a.Name < b.Name
	})
	return rep, nil
}

func (s *service) Activity(ctx context.Context, limit int) ([]*activity.Entry, error) {
	entries, err := s.ledger.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*activity.Entry{}
	}
	return entries, nil
}
