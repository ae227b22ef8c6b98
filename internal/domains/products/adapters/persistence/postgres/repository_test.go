package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/erpflow/internal/domains/products/domain"
	"github.com/Apurer/erpflow/internal/domains/products/ports"
	"github.com/Apurer/erpflow/internal/platform/dbtest"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

func seedCatalog(t *testing.T, products *Repository, categories *CategoryRepository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range []struct{ id, name string }{{"cat-e", "Electronics"}, {"cat-f", "Furniture"}} {
		category, err := domain.NewCategory(c.id, c.name, "")
		require.NoError(t, err)
		_, err = categories.Create(ctx, category)
		require.NoError(t, err)
	}
	items := []struct {
		id, name, sku, category string
		stock                   int
	}{
		{"p-1", "Laptop Pro 15", "LAP-PRO-15", "cat-e", 25},
		{"p-2", "Wireless Mouse", "MOU-WL-01", "cat-e", 8},
		{"p-3", "Office Chair", "CHR-ERG-01", "cat-f", 10},
	}
	for i, item := range items {
		p, err := domain.NewProduct(item.id, item.name, item.sku, item.category, 99.5, item.stock)
		require.NoError(t, err)
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err = products.Create(ctx, p)
		require.NoError(t, err)
	}
}

func TestRepository_ListFilters(t *testing.T) {
	db := dbtest.Open(t)
	products := NewRepository(db)
	categories := NewCategoryRepository(db)
	seedCatalog(t, products, categories)
	ctx := context.Background()

	all, total, err := products.List(ctx, ports.ListFilter{Page: projection.NewPageRequest(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, "p-3", all[0].ID)
	assert.Equal(t, "Office Chair", all[0].Name)
	assert.Equal(t, "CHR-ERG-01", all[0].SKU)
	assert.Equal(t, 10, all[0].Stock)
	assert.InDelta(t, 99.5, all[0].Price, 0.001)
	assert.Equal(t, "cat-f", all[0].CategoryID)
	assert.Equal(t, "Furniture", all[0].CategoryName)

	low, total, err := products.List(ctx, ports.ListFilter{LowStock: true, Page: projection.NewPageRequest(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, low, 2)

	electronics, _, err := products.List(ctx, ports.ListFilter{CategoryID: "cat-e", Search: "mou", Page: projection.NewPageRequest(1, 10)})
	require.NoError(t, err)
	require.Len(t, electronics, 1)
	assert.Equal(t, "MOU-WL-01", electronics[0].SKU)

	literal, total, err := products.List(ctx, ports.ListFilter{Search: "_", Page: projection.NewPageRequest(1, 10)})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, literal)
}

func TestRepository_DuplicateSKUAndLookups(t *testing.T) {
	db := dbtest.Open(t)
	products := NewRepository(db)
	categories := NewCategoryRepository(db)
	seedCatalog(t, products, categories)
	ctx := context.Background()

	dup, err := domain.NewProduct("p-9", "Another Laptop", "LAP-PRO-15", "cat-e", 1, 1)
	require.NoError(t, err)
	_, err = products.Create(ctx, dup)
	assert.ErrorIs(t, err, ports.ErrDuplicateSKU)

	fetched, err := products.GetByID(ctx, "p-2")
	require.NoError(t, err)
	assert.Equal(t, "p-2", fetched.ID)
	assert.Equal(t, "Wireless Mouse", fetched.Name)
	assert.Equal(t, 8, fetched.Stock)
	assert.Equal(t, "Electronics", fetched.CategoryName)

	_, err = products.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = categories.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrCategoryNotFound)

	listed, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Electronics", listed[0].Name)
}
