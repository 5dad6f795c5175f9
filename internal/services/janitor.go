package services

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredPasteCleaner is implemented by every store variant that can drop
// expired rows in bulk.
type ExpiredPasteCleaner interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RunJanitor periodically deletes expired pastes until ctx is cancelled.
// Cleanup is an optimization only, a paste past its expiry is already
// unconsumable whether or not the row is still there.
func RunJanitor(ctx context.Context, cleaner ExpiredPasteCleaner, clock Clock, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	if clock == nil {
		clock = SystemClock{}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := cleaner.DeleteExpired(ctx, clock.Now())
			if err != nil {
				logger.Error("janitor delete expired failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("janitor removed expired pastes", "count", removed)
			}
		}
	}
}
