package cmd

import (
	"context"

	"marketkeys/worker"
	"marketkeys/worker/authflags"
	"marketkeys/worker/downvote"
	"marketkeys/worker/isolation"
	marketkeyworker "marketkeys/worker/marketkey"
	"marketkeys/worker/unban"

	"github.com/drone/signal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run periodic market key jobs",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		assetStore := provideAssetStore(database)
		marketKeyStore := provideMarketKeyStore(database)
		assetBanStore := provideAssetBanStore(database)
		propertyStore := providePropertyStore(database)

		horizonService := provideHorizonService()
		flagsService := provideAssetFlagsService()
		resolver := provideAssetResolver(assetStore)

		jobs := []worker.Job{
			marketkeyworker.New(marketKeyStore, horizonService, resolver, propertyStore, cfg.MarketKey),
			downvote.New(marketKeyStore, horizonService, resolver, propertyStore, cfg.MarketKey),
			authflags.New(assetStore, assetBanStore, flagsService, propertyStore, cfg.Ban),
			isolation.New(assetStore, assetBanStore, horizonService, propertyStore, cfg.Ban.ChunkSize, cfg.Horizon.PoolSize),
			unban.New(assetBanStore, propertyStore, cfg.Ban),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				logrus.WithError(err).Fatalln("start job")
			}
		}

		ctx, quit := context.WithCancel(ctx)
		signal.WithContextFunc(ctx, quit)

		logrus.Infoln("workers started")
		<-ctx.Done()

		for _, job := range jobs {
			job.Stop()
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
