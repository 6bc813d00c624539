package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pruner deletes conversation turns older than a cutoff
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

// Reloader refreshes the dataset snapshot
type Reloader interface {
	Reload(ctx context.Context) error
}

// RetentionJob prunes turns older than retention, checking every interval
func RetentionJob(pruner Pruner, retention, interval time.Duration, logger *zap.Logger) Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Job{
		Name:     "conversation_retention",
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := pruner.Prune(ctx, time.Now().Add(-retention))
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("pruned conversation turns", zap.Int64("turns", n), zap.Duration("retention", retention))
			}
			return nil
		},
	}
}

// ReloadJob reloads the dataset every interval
func ReloadJob(reloader Reloader, interval time.Duration) Job {
	return Job{
		Name:     "dataset_reload",
		Interval: interval,
		Run:      reloader.Reload,
	}
}
