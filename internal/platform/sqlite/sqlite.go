// Package sqlite opens the embedded fallback database used for local runs and tests.
package sqlite

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPath keeps a single in-memory database shared by every pooled connection.
const DefaultPath = "file::memory:?cache=shared"

// Open returns a GORM handle for the SQLite database at path.
func Open(path string) (*gorm.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if path == DefaultPath || strings.Contains(path, ":memory:") {
		// the in-memory database disappears once its last connection closes,
		// and shared-cache table locks reject concurrent writers.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}
	return db, nil
}

// OpenMemory returns an isolated in-memory database, mostly for tests.
func OpenMemory(name string) (*gorm.DB, error) {
	return Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}
