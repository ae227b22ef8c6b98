//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/erpflow/internal/domains/analytics/application"
	"github.com/Apurer/erpflow/internal/platform/migrations"
)

func setupAnalyticsPostgres(t *testing.T) *gorm.DB {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("erpflow_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestDashboard_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := setupAnalyticsPostgres(t)
	seed(t, db)
	svc := application.NewService(NewStore(db), application.WithClock(func() time.Time { return now }))

	got, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 30.0, got.KPIs.Revenue.Change, 1e-9)
	assert.InDelta(t, 60.0, got.KPIs.Invoices.PaymentRate, 1e-9)
	assert.EqualValues(t, 2, got.KPIs.Inventory.LowStock)
	assert.Len(t, got.KPIs.Leads.Pipeline, 3)
	require.Len(t, got.Activities.Invoices, 5)
	assert.Contains(t, got.Activities.Invoices[0].Description, "Global Industries")
}
