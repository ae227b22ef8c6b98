package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionPurger drops sessions whose expiry has passed.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// scheduleSessionPurge registers the purge job every intervalMinutes. It returns nil when disabled.
func scheduleSessionPurge(ctx context.Context, purger SessionPurger, intervalMinutes int, logger *slog.Logger) (*cron.Cron, error) {
	if intervalMinutes <= 0 || purger == nil {
		return nil, nil
	}
	scheduler := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	if _, err := scheduler.AddFunc(spec, purgeJob(ctx, purger, logger)); err != nil {
		return nil, fmt.Errorf("schedule session purge %q: %w", spec, err)
	}
	logger.Info("session purge scheduled", slog.Int("intervalMinutes", intervalMinutes))
	return scheduler, nil
}

func purgeJob(ctx context.Context, purger SessionPurger, logger *slog.Logger) func() {
	return func() {
		runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		removed, err := purger.PurgeExpired(runCtx)
		if err != nil {
			logger.LogAttrs(runCtx, slog.LevelError, "session purge failed", slog.String("error", err.Error()))
			return
		}
		logger.LogAttrs(runCtx, slog.LevelInfo, "expired sessions purged", slog.Int64("removed", removed))
	}
}
