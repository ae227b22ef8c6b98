package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/erpflow/internal/domains/invoices/domain"
	"github.com/Apurer/erpflow/internal/domains/invoices/ports"
	"github.com/Apurer/erpflow/internal/platform/dbtest"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

func seedReferences(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dbtest.Insert(t, db, "customers",
		map[string]any{"id": "c-1", "name": "Acme Corporation", "email": "contact@acme.com", "company": "Acme Corp", "created_at": now, "updated_at": now},
		map[string]any{"id": "c-2", "name": "Tech Solutions", "email": "info@tech.com", "company": "Tech Solutions Inc", "created_at": now, "updated_at": now},
	)
	dbtest.Insert(t, db, "products",
		map[string]any{"id": "p-1", "name": "Laptop Pro 15", "sku": "LAP-PRO-15", "category_id": "cat", "price": 1299.99, "stock": 25, "created_at": now, "updated_at": now},
	)
}

func newInvoice(t *testing.T, customerID string, status domain.Status, createdAt time.Time) *domain.Invoice {
	t.Helper()
	item, err := domain.NewItem(uuid.NewString(), "p-1", 2, 1299.99)
	require.NoError(t, err)
	inv, err := domain.NewInvoice(uuid.NewString(), customerID, 2599.98, 259.99, 2859.97, nil, []domain.Item{item})
	require.NoError(t, err)
	inv.Status = status
	inv.CreatedAt = createdAt
	inv.UpdatedAt = createdAt
	return inv
}

func TestRepository_CreateNumbersSequentially(t *testing.T) {
	db := dbtest.Open(t)
	seedReferences(t, db)
	repo := NewRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, newInvoice(t, "c-1", domain.StatusPaid, base))
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", first.Number)

	second, err := repo.Create(ctx, newInvoice(t, "c-2", domain.StatusSent, base.Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", second.Number)

	fetched, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, fetched.ID)
	assert.Equal(t, "INV-0002", fetched.Number)
	assert.Equal(t, "c-2", fetched.CustomerID)
	assert.Equal(t, domain.StatusSent, fetched.Status)
	assert.InDelta(t, 2859.97, fetched.Total, 1e-9)
	assert.Equal(t, "Tech Solutions", fetched.Customer.Name)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "LAP-PRO-15", fetched.Items[0].ProductSKU)
	assert.InDelta(t, 2599.98, fetched.Items[0].Total, 1e-9)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListFiltersAndOrdering(t *testing.T) {
	db := dbtest.Open(t)
	seedReferences(t, db)
	repo := NewRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, newInvoice(t, "c-1", domain.StatusPaid, base))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newInvoice(t, "c-1", domain.StatusSent, base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newInvoice(t, "c-2", domain.StatusSent, base.Add(2*time.Hour)))
	require.NoError(t, err)

	all, total, err := repo.List(ctx, ports.ListFilter{Page: projection.NewPageRequest(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, "INV-0003", all[0].Number)
	assert.NotEmpty(t, all[0].ID)
	assert.Equal(t, "c-2", all[0].CustomerID)
	require.Len(t, all[0].Items, 1)
	assert.Equal(t, "p-1", all[0].Items[0].ProductID)
	assert.Equal(t, "Laptop Pro 15", all[0].Items[0].ProductName)
	assert.Equal(t, []string{"INV-0003", "INV-0002", "INV-0001"}, []string{all[0].Number, all[1].Number, all[2].Number})

	sent, total, err := repo.List(ctx, ports.ListFilter{Status: domain.StatusSent, CustomerID: "c-1", Page: projection.NewPageRequest(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, sent, 1)
	assert.Equal(t, "INV-0002", sent[0].Number)
	assert.Equal(t, "Acme Corp", sent[0].Customer.Company)
}

func TestRepository_CustomerExists(t *testing.T) {
	db := dbtest.Open(t)
	seedReferences(t, db)
	repo := NewRepository(db)

	ok, err := repo.CustomerExists(context.Background(), "c-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CustomerExists(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}
