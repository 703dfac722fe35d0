package service

import (
	"context"
	"errors"
	"time"

	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/workers"
)

type syncJob struct {
	coordinator SyncCoordinator
	session     *Session
	interval    time.Duration
	logger      *logger.Logger
}

// NewSyncJob creates a worker that calls coordinator.Sync for session every
// interval. A zero or negative interval disables it: Run returns at once.
func NewSyncJob(coordinator SyncCoordinator, session *Session, interval time.Duration, logger *logger.Logger) workers.Worker {
	return &syncJob{
		coordinator: coordinator,
		session:     session,
		interval:    interval,
		logger:      logger,
	}
}

// Run implements workers.Worker. It returns when ctx is cancelled or the
// session has been logged out. Sync errors are logged and the next tick
// retries.
func (j *syncJob) Run(ctx context.Context) {
	if j.interval <= 0 {
		return
	}

	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			err := j.coordinator.Sync(ctx, j.session)
			switch {
			case err == nil:
				j.logger.Debug().Str("func", "*syncJob.Run").Msg("background sync done")
			case errors.Is(err, ErrSessionClosed):
				return
			case ctx.Err() != nil:
				return
			default:
				j.logger.Err(err).Str("func", "*syncJob.Run").Msg("background sync failed")
			}
		}
	}
}
