package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/georgemunganga/kuber-inventory/internal/modules/category"
	"github.com/georgemunganga/kuber-inventory/internal/modules/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var staff = activity.Actor{ID: uuid.New(), Email: "staff@kuber.test"}

type env struct {
	reports    Service
	products   inventory.Service
	categories category.Service
	ledger     *activity.MemoryLog
}

func newEnv(t *testing.T) env {
	t.Helper()
	ledger := activity.NewMemoryLog()
	store := inventory.NewMemoryStore(ledger)
	categories := category.NewService(category.NewMemoryRepository(), store)
	reports := NewService(store, categories, ledger)
	reports.(*service).now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }
	return env{
		reports:    reports,
		products:   inventory.NewService(store, nil),
		categories: categories,
		ledger:     ledger,
	}
}

func (e env) add(t *testing.T, sku, price string, qty, threshold int, cat string) *inventory.Product {
	t.Helper()
	p, err := e.products.CreateProduct(context.Background(), staff, inventory.CreateProductRequest{
		Name:              "Item " + sku,
		SKU:               sku,
		Price:             decimal.RequireFromString(price),
		Quantity:          qty,
		Category:          cat,
		LowStockThreshold: &threshold,
	})
	require.NoError(t, err)
	return p
}

func (e env) category(t *testing.T, name string) *category.Category {
	t.Helper()
	c, err := e.categories.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c
}

func TestDashboard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.category(t, "Jewellery")
	e.category(t, "Textiles")
	e.add(t, "A", "10.10", 3, 5, "Jewellery")
	e.add(t, "B", "0.20", 100, 5, "Textiles")
	e.add(t, "C", "99.99", 0, 0, "Textiles")

	stats, err := e.reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, "50.3", stats.TotalStockValue.String())
	assert.Equal(t, 2, stats.LowStockItems)
	assert.Equal(t, 1, stats.OutOfStockItems)
	assert.Equal(t, 2, stats.TotalCategories)
	require.Len(t, stats.RecentActivities, 3)
	assert.Equal(t, "Item C", stats.RecentActivities[0].ProductName)
}

func TestDashboardEmpty(t *testing.T) {
	e := newEnv(t)
	stats, err := e.reports.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	assert.True(t, stats.TotalStockValue.IsZero())
	assert.NotNil(t, stats.RecentActivities)
}

func TestDashboardShowsTenMostRecent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.add(t, "A", "1", 1, 0, "")
	for i := 0; i < 14; i++ {
		_, err := e.products.AdjustStock(ctx, staff, p.ID.String(), 1)
		require.NoError(t, err)
	}
	stats, err := e.reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, stats.RecentActivities, activity.DashboardLimit)
	assert.Equal(t, 15, e.ledger.Len())
}

func TestLowStockBoundary(t *testing.T) {
	e := newEnv(t)
	e.add(t, "AT", "1", 10, 10, "")
	e.add(t, "ABOVE", "1", 11, 10, "")
	e.add(t, "BELOW", "1", 4, 10, "")

	rep, err := e.reports.LowStock(context.Background())
	require.NoError(t, err)
	shortfalls := map[string]int{}
	for _, row := range rep.Items {
		shortfalls[row.SKU] = row.Shortfall
	}
	assert.Equal(t, map[string]int{"AT": 0, "BELOW": 6}, shortfalls)
}

func TestInventoryValuation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.category(t, "Jewellery")
	e.add(t, "A", "19.99", 3, 1, "Jewellery")
	e.add(t, "B", "0.01", 7, 1, "Jewellery")

	rep, err := e.reports.Inventory(ctx)
	require.NoError(t, err)
	require.Len(t, rep.Products, 2)
	for _, row := range rep.Products {
		if row.SKU == "A" {
			assert.True(t, decimal.RequireFromString("59.97").Equal(row.Value))
		}
	}
	assert.True(t, decimal.RequireFromString("60.04").Equal(rep.TotalValue))
	require.Len(t, rep.Categories, 1)
	assert.Equal(t, 2, rep.Categories[0].ProductCount)

	// recomputation without mutations yields the same figures
	again, err := e.reports.Inventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, rep.TotalValue.String(), again.TotalValue.String())
	assert.Equal(t, rep.Products, again.Products)
}

func TestCategoriesIncludeOrphans(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.category(t, "Textiles")
	e.category(t, "Furniture")
	pottery := e.category(t, "Pottery")
	e.add(t, "TX", "2.50", 4, 1, "Textiles")
	e.add(t, "PT", "3", 2, 1, "Pottery")
	e.add(t, "MX", "1", 1, 1, "")
	require.NoError(t, e.categories.DeleteCategory(ctx, pottery.ID.String()))

	rep, err := e.reports.Categories(ctx)
	require.NoError(t, err)
	want := []CategoryRow{
		{Name: "Furniture", Registered: true, ProductCount: 0, StockValue: decimal.Zero},
		{Name: "Textiles", Registered: true, ProductCount: 1, StockValue: decimal.RequireFromString("10")},
		{Name: "", Registered: false, ProductCount: 1, StockValue: decimal.RequireFromString("1")},
		{Name: "Pottery", Registered: false, ProductCount: 1, StockValue: decimal.RequireFromString("6")},
	}
	require.Len(t, rep.Categories, len(want))
	for i, w := range want {
		got := rep.Categories[i]
		assert.Equal(t, w.Name, got.Name)
		assert.Equal(t, w.Registered, got.Registered)
		assert.Equal(t, w.ProductCount, got.ProductCount)
		assert.True(t, w.StockValue.Equal(got.StockValue), "%s: %s", w.Name, got.StockValue)
	}
}

func TestActivityLimit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.add(t, "A", "1", 1, 1, "")
	e.add(t, "B", "1", 1, 1, "")

	entries, err := e.reports.Activity(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Item B", entries[0].ProductName)

	entries, err = e.reports.Activity(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = e.reports.Activity(ctx, -1)
	assert.ErrorIs(t, err, activity.ErrInvalidLimit)
}

func TestInventoryTableCSV(t *testing.T) {
	e := newEnv(t)
	p := e.add(t, "A", "2.5", 4, 1, "Jewellery")

	rep, err := e.reports.Inventory(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.Table().WriteCSV(&buf))
	want := "product_id,sku,name,category,price,quantity,value\n" +
		p.ID.String() + ",A,Item A,Jewellery,2.50,4,10.00\n" +
		",,TOTAL,,,,10.00\n"
	assert.Equal(t, want, buf.String())
}

// staleCategories reports counts from an earlier moment than the product read.
type staleCategories struct{ names []string }

func (s staleCategories) ListCategories(ctx context.Context) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, &category.Category{ID: uuid.New(), Name: name, ProductCount: 99})
	}
	return out, nil
}

func TestInventoryCountsMatchProductRows(t *testing.T) {
	ledger := activity.NewMemoryLog()
	store := inventory.NewMemoryStore(ledger)
	products := inventory.NewService(store, nil)
	reports := NewService(store, staleCategories{names: []string{"Jewellery", "Textiles"}}, ledger)

	for _, sku := range []string{"A", "B"} {
		_, err := products.CreateProduct(context.Background(), staff, inventory.CreateProductRequest{
			Name: sku, SKU: sku, Price: decimal.NewFromInt(1), Quantity: 1, Category: "Jewellery",
		})
		require.NoError(t, err)
	}

	rep, err := reports.Inventory(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Products, 2)
	counts := map[string]int{}
	for _, c := range rep.Categories {
		counts[c.Name] = c.ProductCount
	}
	assert.Equal(t, map[string]int{"Jewellery": 2, "Textiles": 0}, counts)
}
