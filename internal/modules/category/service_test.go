package category_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/georgemunganga/kuber-inventory/internal/modules/category"
	"github.com/georgemunganga/kuber-inventory/internal/modules/inventory"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var staff = activity.Actor{ID: uuid.New(), Email: "staff@kuber.test"}

func setup(t *testing.T) (category.Service, inventory.Service) {
	t.Helper()
	store := inventory.NewMemoryStore(activity.NewMemoryLog())
	return category.NewService(category.NewMemoryRepository(), store), inventory.NewService(store, nil)
}

func addProduct(t *testing.T, products inventory.Service, sku, cat string) *inventory.Product {
	t.Helper()
	p, err := products.CreateProduct(context.Background(), staff, inventory.CreateProductRequest{
		Name: sku, SKU: sku, Price: decimal.NewFromInt(10), Quantity: 1, Category: cat,
	})
	require.NoError(t, err)
	return p
}

func TestListCategoriesCountsLiveProducts(t *testing.T) {
	ctx := context.Background()
	categories, products := setup(t)

	for _, name := range []string{"Textiles", "Jewellery", "Handicrafts"} {
		_, err := categories.CreateCategory(ctx, category.CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}
	addProduct(t, products, "JW-1", "Jewellery")
	p := addProduct(t, products, "JW-2", "Jewellery")
	addProduct(t, products, "TX-1", "Textiles")

	list, err := categories.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Handicrafts", list[0].Name)
	assert.Equal(t, 0, list[0].ProductCount)
	assert.Equal(t, "Jewellery", list[1].Name)
	assert.Equal(t, 2, list[1].ProductCount)
	assert.Equal(t, 1, list[2].ProductCount)

	require.NoError(t, products.DeleteProduct(ctx, staff, p.ID.String()))
	list, err = categories.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list[1].ProductCount)
}

func TestCreateCategoryValidation(t *testing.T) {
	ctx := context.Background()
	categories, _ := setup(t)

	_, err := categories.CreateCategory(ctx, category.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, category.ErrInvalidInput)

	_, err = categories.CreateCategory(ctx, category.CreateCategoryRequest{Name: "Textiles"})
	require.NoError(t, err)
	_, err = categories.CreateCategory(ctx, category.CreateCategoryRequest{Name: "Textiles"})
	assert.ErrorIs(t, err, category.ErrDuplicateName)
}

func TestDeleteCategoryLeavesProductsAlone(t *testing.T) {
	ctx := context.Background()
	categories, products := setup(t)

	c, err := categories.CreateCategory(ctx, category.CreateCategoryRequest{Name: "Textiles"})
	require.NoError(t, err)
	p := addProduct(t, products, "TX-1", "Textiles")

	require.NoError(t, categories.DeleteCategory(ctx, c.ID.String()))
	assert.ErrorIs(t, categories.DeleteCategory(ctx, c.ID.String()), category.ErrNotFound)
	assert.ErrorIs(t, categories.DeleteCategory(ctx, "bogus"), category.ErrNotFound)

	got, err := products.GetProduct(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Textiles", got.Category)

	list, err := categories.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategoryHandlers(t *testing.T) {
	categories, _ := setup(t)
	r := chi.NewRouter()
	category.NewHandler(categories).RegisterRoutes(r)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rec
	}

	assert.Equal(t, http.StatusCreated, do(http.MethodPost, "/categories/", `{"name":"Textiles"}`).Code)
	assert.Equal(t, http.StatusConflict, do(http.MethodPost, "/categories/", `{"name":"Textiles"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/categories/", `{"name":""}`).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, "/categories/"+uuid.NewString(), "").Code)

	rec := do(http.MethodGet, "/categories/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"product_count":0`)
}
