package marketkey

import (
	"context"
	"time"

	"marketkeys/core"
	"marketkeys/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/gofrs/uuid"
	"github.com/robfig/cron/v3"
)

// CheckpointKey last successful ingestion run property
const CheckpointKey = "market_keys_synced_at"

// Worker market key ingestion worker: pages the ledger account index for
// accounts signed by the upvote marker, parses new ones and persists the
// resolved batch in one insert.
type Worker struct {
	worker.BaseJob
	marketKeys core.MarketKeyStore
	horizon    core.HorizonService
	resolver   core.AssetResolver
	property   property.Store
	parser     *Parser
	pageLimit  int
}

// New new market key ingestion worker
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
		parser:     NewParser(cfg.UpvoteMarker, cfg),
		pageLimit:  cfg.PageLimit,
	}

	job.Name = "marketkey"
	job.Cron = cron.New()
	job.Cron.AddFunc("*/5 * * * *", job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).
		WithField("worker", "marketkey").
		WithField("trace", uuid.Must(uuid.NewV4()).String())
	ctx = logger.WithContext(ctx, log)

	var (
		batch  []*core.MarketKey
		cursor string
	)

	for {
		records, err := w.horizon.ListAccountsForSigner(ctx, w.parser.Marker(), cursor, w.pageLimit)
		if err != nil {
			log.WithError(err).Errorln("horizon.ListAccountsForSigner")
			return err
		}

		for _, record := range records {
			key, err := w.parseRecord(ctx, record)
			if err != nil {
				return err
			}

			if key != nil {
				batch = append(batch, key)
			}
		}

		if len(records) < w.pageLimit {
			break
		}

		cursor = records[len(records)-1].PagingToken
	}

	if err := activate(ctx, batch, w.marketKeys); err != nil {
		log.WithError(err).Errorln("activate market keys")
		return err
	}

	if len(batch) > 0 {
		if err := w.marketKeys.BatchCreate(ctx, batch); err != nil {
			log.WithError(err).Errorln("marketKeys.BatchCreate")
			return err
		}
	}

	if err := w.property.Save(ctx, CheckpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", CheckpointKey)
	}

	log.Infoln("market keys synced, new:", len(batch))
	return nil
}

// parseRecord returns nil for records to skip: already known account ids
// and structural parse failures. Store and resolver errors abort the run.
func (w *Worker) parseRecord(ctx context.Context, record *core.AccountRecord) (*core.MarketKey, error) {
	log := logger.FromContext(ctx)

	exists, err := w.marketKeys.Exists(ctx, record.AccountID)
	if err != nil {
		log.WithError(err).Errorln("marketKeys.Exists")
		return nil, err
	}

	if exists {
		return nil, nil
	}

	key, err := w.parser.Parse(ctx, record, w.resolver)
	if err != nil {
		if core.IsParsingError(err) {
			log.WithError(err).WithField("account", record.AccountID).Warningln("account record skipped")
			return nil, nil
		}

		log.WithError(err).Errorln("parser.Parse")
		return nil, err
	}

	return key, nil
}
