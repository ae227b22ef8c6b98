package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/erpflow/internal/domains/users/domain"
	"github.com/Apurer/erpflow/internal/domains/users/ports"
	"github.com/Apurer/erpflow/internal/platform/dbtest"
)

func TestRepository_CreateAndLookup(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	user, err := domain.NewUser("u-1", "admin@demo.com", "John", "Administrator", domain.RoleAdmin)
	require.NoError(t, err)
	user.PasswordHash = "hash"
	_, err = repo.Create(ctx, user)
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, " ADMIN@demo.com ")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, "hash", got.PasswordHash)

	byID, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "admin@demo.com", byID.Email)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	dup, err := domain.NewUser("u-2", "admin@demo.com", "Jane", "Doe", domain.RoleUser)
	require.NoError(t, err)
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	db := dbtest.Open(t)
	store := NewSessionStore(db)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u-1", "live", now.Add(time.Hour)))
	require.NoError(t, store.Save(ctx, "u-1", "stale", now.Add(-time.Hour)))

	live, err := store.Exists(ctx, "live")
	require.NoError(t, err)
	assert.True(t, live)

	stale, err := store.Exists(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, stale)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	require.NoError(t, store.Delete(ctx, "live"))
	live, err = store.Exists(ctx, "live")
	require.NoError(t, err)
	assert.False(t, live)

	assert.Error(t, store.Save(ctx, "", "token", now))
}
