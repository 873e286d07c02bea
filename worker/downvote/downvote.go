package downvote

import (
	"context"
	"time"

	"marketkeys/core"
	"marketkeys/worker"
	"marketkeys/worker/marketkey"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

// CheckpointKey last successful downvote pass property
const CheckpointKey = "downvote_keys_synced_at"

// Worker downvote attachment worker: pages accounts signed by the downvote
// marker and attaches each one to the active market key of its pair.
// Downvote accounts are not registry rows of their own.
type Worker struct {
	worker.BaseJob
	marketKeys core.MarketKeyStore
	horizon    core.HorizonService
	resolver   core.AssetResolver
	property   property.Store
	parser     *marketkey.Parser
	pageLimit  int
}

// New new downvote attachment worker
func New(
	marketKeys core.MarketKeyStore,
	horizon core.HorizonService,
	resolver core.AssetResolver,
	propertyStr property.Store,
	cfg core.MarketKeyConfig,
) *Worker {
	job := Worker{
		marketKeys: marketKeys,
		horizon:    horizon,
		resolver:   resolver,
		property:   propertyStr,
		parser:     marketkey.NewParser(cfg.DownvoteMarker, cfg),
		pageLimit:  cfg.PageLimit,
	}

	job.Name = "downvote"
	job.Cron = cron.New()
	job.Cron.AddFunc("1-59/5 * * * *", job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "downvote")
	ctx = logger.WithContext(ctx, log)

	var cursor string
	for {
		records, err := w.horizon.ListAccountsForSigner(ctx, w.parser.Marker(), cursor, w.pageLimit)
		if err != nil {
			log.WithError(err).Errorln("horizon.ListAccountsForSigner")
			return err
		}

		for _, record := range records {
			if err := w.handleRecord(ctx, record); err != nil {
				return err
			}
		}

		if len(records) < w.pageLimit {
			break
		}

		cursor = records[len(records)-1].PagingToken
	}

	if err := w.property.Save(ctx, CheckpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", CheckpointKey)
	}

	return nil
}

func (w *Worker) handleRecord(ctx context.Context, record *core.AccountRecord) error {
	log := logger.FromContext(ctx)

	attached, err := w.marketKeys.ExistsDownvote(ctx, record.AccountID)
	if err != nil {
		log.WithError(err).Errorln("marketKeys.ExistsDownvote")
		return err
	}

	if attached {
		return nil
	}

	candidate, err := w.parser.Parse(ctx, record, w.resolver)
	if err != nil {
		if core.IsParsingError(err) {
			log.WithError(err).WithField("account", record.AccountID).Warningln("account record skipped")
			return nil
		}

		log.WithError(err).Errorln("parser.Parse")
		return err
	}

	key, err := w.marketKeys.FindActiveForPair(ctx, candidate.Pair())
	if err != nil {
		if store.IsErrNotFound(err) {
			return nil
		}

		log.WithError(err).Errorln("marketKeys.FindActiveForPair")
		return err
	}

	if key.DownvoteAccountID != nil {
		return nil
	}

	if err := w.marketKeys.AttachDownvote(ctx, key, record.AccountID); err != nil {
		if err == db.ErrOptimisticLock {
			log.WithField("account", record.AccountID).Warningln("downvote already attached")
			return nil
		}

		log.WithError(err).Errorln("marketKeys.AttachDownvote")
		return err
	}

	return nil
}
