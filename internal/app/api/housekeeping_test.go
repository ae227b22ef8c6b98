package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userpostgres "github.com/Apurer/erpflow/internal/domains/users/adapters/persistence/postgres"
	"github.com/Apurer/erpflow/internal/platform/dbtest"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type countingPurger struct {
	calls int
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls++
	return 0, p.err
}

func TestScheduleSessionPurge_DisabledWithoutInterval(t *testing.T) {
	scheduler, err := scheduleSessionPurge(context.Background(), &countingPurger{}, 0, discardLogger)

	require.NoError(t, err)
	assert.Nil(t, scheduler)
}

func TestScheduleSessionPurge_RegistersJob(t *testing.T) {
	scheduler, err := scheduleSessionPurge(context.Background(), &countingPurger{}, 15, discardLogger)

	require.NoError(t, err)
	require.NotNil(t, scheduler)
	entries := scheduler.Entries()
	require.Len(t, entries, 1)
	now := time.Now()
	assert.WithinDuration(t, now.Add(15*time.Minute), entries[0].Schedule.Next(now), time.Second)
}

func TestPurgeJob_RemovesExpiredSessions(t *testing.T) {
	db := dbtest.Open(t)
	store := userpostgres.NewSessionStore(db)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "user-1", "expired-token", time.Now().Add(-time.Hour)))
	require.NoError(t, store.Save(ctx, "user-1", "live-token", time.Now().Add(time.Hour)))

	purgeJob(ctx, store, discardLogger)()

	var remaining int64
	require.NoError(t, db.Table("user_sessions").Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
	live, err := store.Exists(ctx, "live-token")
	require.NoError(t, err)
	assert.True(t, live)
}

func TestPurgeJob_SurvivesErrors(t *testing.T) {
	purger := &countingPurger{err: errors.New("database is locked")}

	assert.NotPanics(t, purgeJob(context.Background(), purger, discardLogger))
	assert.Equal(t, 1, purger.calls)
}
