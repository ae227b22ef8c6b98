package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionStore_SaveExistsDelete(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u-1", "tok", time.Now().Add(time.Hour)))
	got, err := mr.Get(keyPrefix + "tok")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got)

	ok, err := store.Exists(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "tok"))
	ok, err = store.Exists(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u-1", "tok", time.Now().Add(time.Minute)))
	mr.FastForward(2 * time.Minute)
	ok, err := store.Exists(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "u-1", "past", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists(keyPrefix+"past"))
}
