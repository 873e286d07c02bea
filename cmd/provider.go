package cmd

import (
	"marketkeys/core"
	"marketkeys/internal/assetcache"
	"marketkeys/service/assetflags"
	"marketkeys/service/horizon"
	"marketkeys/store/asset"
	"marketkeys/store/assetban"
	"marketkeys/store/marketkey"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// ---------------store-----------------------------------------

func provideAssetStore(db *db.DB) core.AssetStore {
	return asset.New(db)
}

func provideMarketKeyStore(db *db.DB) core.MarketKeyStore {
	return marketkey.New(db)
}

func provideAssetBanStore(db *db.DB) core.AssetBanStore {
	return assetban.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideHorizonService() core.HorizonService {
	return horizon.New(cfg.Horizon)
}

func provideAssetFlagsService() core.AssetFlagsService {
	return assetflags.New(cfg.AssetsTracker)
}

func provideAssetResolver(assets core.AssetStore) core.AssetResolver {
	return assetcache.New(assets)
}
