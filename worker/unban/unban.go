package unban

import (
	"context"
	"time"

	"marketkeys/core"
	"marketkeys/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

// CheckpointKey last successful unban sweep property
const CheckpointKey = "unban_swept_at"

// Worker unban sweeper: promotes fixed ban episodes to unbanned once their
// fixed_at is older than the grace period. Each row transitions on its own.
type Worker struct {
	worker.BaseJob
	bans     core.AssetBanStore
	property property.Store
	grace    time.Duration
}

// New new unban sweeper
func New(bans core.AssetBanStore, propertyStr property.Store, cfg core.BanConfig) *Worker {
	job := Worker{
		bans:     bans,
		property: propertyStr,
		grace:    cfg.GracePeriod(),
	}

	job.Name = "unban"
	job.Cron = cron.New()
	job.Cron.AddFunc("*/5 * * * *", job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "unban")
	ctx = logger.WithContext(ctx, log)

	deadline := time.Now().Add(-w.grace)
	bans, err := w.bans.ListFixedBefore(ctx, deadline)
	if err != nil {
		log.WithError(err).Errorln("bans.ListFixedBefore")
		return err
	}

	for _, ban := range bans {
		if err := w.bans.Unban(ctx, ban); err != nil {
			log.WithError(err).WithField("ban", ban.ID).Errorln("bans.Unban")
			return err
		}
	}

	if err := w.property.Save(ctx, CheckpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", CheckpointKey)
	}

	return nil
}
