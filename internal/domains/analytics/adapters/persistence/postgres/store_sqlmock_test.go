package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewStore(db), mock
}

func TestStore_PostgresQueryShapes(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) FROM "invoices" WHERE status = \$1 AND created_at >= \$2 AND created_at < \$3`).
		WithArgs("PAID", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1000.5))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "leads" WHERE status IN`).
		WithArgs("NEW", "CONTACTED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE stock <= \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	sum, err := store.SumPaidInvoiceTotal(ctx, &from, &to)
	require.NoError(t, err)
	assert.InDelta(t, 1000.5, sum, 1e-9)

	n, err := store.CountLeads(ctx, "NEW", "CONTACTED")
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)

	threshold := 10
	n, err = store.CountProducts(ctx, &threshold)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PropagatesQueryErrors(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection refused")
	ctx := context.Background()

	mock.ExpectQuery(`FROM "leads"`).WillReturnError(boom)
	_, err := store.LeadPipeline(ctx)
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery(`FROM "invoices"`).WillReturnError(boom)
	_, err = store.RecentInvoices(ctx, 5)
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery(`FROM "customers"`).WillReturnError(boom)
	_, err = store.CountCustomers(ctx, nil)
	assert.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_NotConfigured(t *testing.T) {
	var store *Store
	_, err := store.CountInvoices(context.Background())
	assert.Error(t, err)
}
