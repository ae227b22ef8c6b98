// Package dbtest opens throwaway migrated databases for adapter tests.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/erpflow/internal/platform/migrations"
	"github.com/Apurer/erpflow/internal/platform/sqlite"
)

// Open returns an isolated in-memory SQLite database with the full schema applied.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := sqlite.OpenMemory(uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Insert writes raw rows into table, bypassing the domain adapters.
func Insert(t testing.TB, db *gorm.DB, table string, rows ...map[string]any) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, db.Table(table).Create(row).Error)
	}
}
