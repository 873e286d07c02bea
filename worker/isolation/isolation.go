package isolation

import (
	"context"
	"time"

	"marketkeys/core"
	"marketkeys/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// CheckpointKey last successful isolation pass property
const CheckpointKey = "market_isolation_synced_at"

const banReason = core.BanReasonIsolatedMarket

var pathTestAmount = decimal.NewFromInt(1)

// Worker market isolation reconciler: pages locally known assets in chunks
// and probes the ledger path finder for each one concurrently. An asset
// with zero reachable paths from the native asset is banned as an isolated
// market. Probes of one chunk all finish before the next chunk starts; the
// semaphore keeps in-flight probes within the connection pool.
type Worker struct {
	worker.BaseJob
	assets    core.AssetStore
	bans      core.AssetBanStore
	horizon   core.HorizonService
	property  property.Store
	sem       *semaphore.Weighted
	chunkSize int
}

// New new market isolation reconciler
func New(
	assets core.AssetStore,
	bans core.AssetBanStore,
	horizon core.HorizonService,
	propertyStr property.Store,
	chunkSize, poolSize int,
) *Worker {
	job := Worker{
		assets:    assets,
		bans:      bans,
		horizon:   horizon,
		property:  propertyStr,
		sem:       semaphore.NewWeighted(int64(poolSize)),
		chunkSize: chunkSize,
	}

	job.Name = "isolation"
	job.Cron = cron.New()
	job.Cron.AddFunc("3-59/5 * * * *", job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "isolation")
	ctx = logger.WithContext(ctx, log)

	var from uint64
	for {
		assets, err := w.assets.List(ctx, from, w.chunkSize)
		if err != nil {
			log.WithError(err).Errorln("assets.List")
			return err
		}

		if len(assets) == 0 {
			break
		}

		if err := w.checkChunk(ctx, assets); err != nil {
			return err
		}

		if len(assets) < w.chunkSize {
			break
		}

		from = assets[len(assets)-1].ID
	}

	if err := w.property.Save(ctx, CheckpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", CheckpointKey)
	}

	return nil
}

// checkChunk probes every asset of the chunk concurrently and joins before
// returning. A plain errgroup is used on purpose: a failed probe must not
// cancel the others mid-chunk.
func (w *Worker) checkChunk(ctx context.Context, assets []*core.Asset) error {
	g := errgroup.Group{}

	for idx := range assets {
		asset := assets[idx]

		if err := w.sem.Acquire(ctx, 1); err != nil {
			return g.Wait()
		}

		g.Go(func() error {
			defer w.sem.Release(1)
			return w.checkAsset(ctx, asset)
		})
	}

	return g.Wait()
}

func (w *Worker) checkAsset(ctx context.Context, asset *core.Asset) error {
	log := logger.FromContext(ctx)

	stellarAsset := asset.StellarAsset()
	if stellarAsset.IsNative() {
		// the probe source itself; there is no path query to run
		return nil
	}

	count, err := w.horizon.CountStrictSendPaths(ctx, core.NativeAsset(), pathTestAmount, stellarAsset)
	if err != nil {
		// a failed probe says nothing about reachability; no transition
		log.WithError(err).WithField("asset", stellarAsset.String()).Errorln("path probe failed")
		return err
	}

	if count == 0 {
		return w.bans.SetBan(ctx, asset, banReason)
	}

	return w.bans.ResetBan(ctx, asset, banReason)
}
