package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/erpflow/internal/platform/dbtest"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	router := gin.New()
	router.GET("/healthz", healthHandler(db))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOpenDatabase_FallsBackToSQLite(t *testing.T) {
	cfg := Config{SQLitePath: "file:open-database-test?mode=memory&cache=shared"}

	db, closeDB, err := OpenDatabase(context.Background(), cfg, discardLogger)

	require.NoError(t, err)
	t.Cleanup(closeDB)
	assert.Equal(t, "sqlite", db.Dialector.Name())
}

func TestBuildSessionStore_DefaultsToDatabase(t *testing.T) {
	store, cleanup := buildSessionStore(context.Background(), Config{}, discardLogger)
	defer cleanup()

	assert.Nil(t, store)
}

func TestCORSConfig_AllowsConfiguredOrigins(t *testing.T) {
	cfg := corsConfig([]string{"https://erp.example.com"})

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"https://erp.example.com"}, cfg.AllowOrigins)
	assert.Contains(t, cfg.AllowHeaders, "Authorization")
}
