package authflags

import (
	"context"
	"time"

	"marketkeys/core"
	"marketkeys/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

// CheckpointKey last successful auth flags pass property
const CheckpointKey = "auth_flags_synced_at"

// Worker auth flags reconciler: pages locally known assets in chunks, bulk
// queries the assets tracker and applies ban transitions for the three
// issuer authorization flags.
type Worker struct {
	worker.BaseJob
	assets    core.AssetStore
	bans      core.AssetBanStore
	flags     core.AssetFlagsService
	property  property.Store
	chunkSize int
}

// New new auth flags reconciler
func New(
	assets core.AssetStore,
	bans core.AssetBanStore,
	flags core.AssetFlagsService,
	propertyStr property.Store,
	cfg core.BanConfig,
) *Worker {
	job := Worker{
		assets:    assets,
		bans:      bans,
		flags:     flags,
		property:  propertyStr,
		chunkSize: cfg.ChunkSize,
	}

	job.Name = "authflags"
	job.Cron = cron.New()
	job.Cron.AddFunc("2-59/5 * * * *", job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "authflags")
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

		if err := w.processChunk(ctx, assets); err != nil {
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

func (w *Worker) processChunk(ctx context.Context, assets []*core.Asset) error {
	log := logger.FromContext(ctx)

	index := make(map[string]*core.Asset, len(assets))
	stellarAssets := make([]core.StellarAsset, 0, len(assets))
	for _, asset := range assets {
		stellarAsset := asset.StellarAsset()
		index[stellarAsset.String()] = asset
		stellarAssets = append(stellarAssets, stellarAsset)
	}

	flags, err := w.flags.LoadAssetFlags(ctx, stellarAssets)
	if err != nil {
		log.WithError(err).Errorln("flags.LoadAssetFlags")
		return err
	}

	for _, f := range flags {
		asset, ok := index[f.AssetString]
		if !ok {
			log.WithField("asset", f.AssetString).Warningln("unexpected asset in flags response")
			continue
		}

		if err := w.applyFlag(ctx, asset, core.BanReasonAuthRequired, f.AuthRequired); err != nil {
			return err
		}

		if err := w.applyFlag(ctx, asset, core.BanReasonAuthRevocable, f.AuthRevocable); err != nil {
			return err
		}

		if err := w.applyFlag(ctx, asset, core.BanReasonAuthClawbackEnabled, f.AuthClawbackEnabled); err != nil {
			return err
		}
	}

	return nil
}

func (w *Worker) applyFlag(ctx context.Context, asset *core.Asset, reason core.AssetBanReason, adverse bool) error {
	log := logger.FromContext(ctx)

	var err error
	if adverse {
		err = w.bans.SetBan(ctx, asset, reason)
	} else {
		err = w.bans.ResetBan(ctx, asset, reason)
	}

	if err != nil {
		log.WithError(err).
			WithField("asset", asset.StellarAsset().String()).
			WithField("reason", reason).
			Errorln("apply auth flag")
	}

	return err
}
