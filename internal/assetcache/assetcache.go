package assetcache

import (
	"context"

	"marketkeys/core"

	"github.com/bluele/gcache"
)

type resolver struct {
	assets core.AssetStore
	cache  gcache.Cache
}

// New wraps the asset store with an LRU so repeated pair members resolve
// without another round trip during one ingestion run
func New(assets core.AssetStore) core.AssetResolver {
	return &resolver{
		assets: assets,
		cache:  gcache.New(2048).LRU().Build(),
	}
}

func (r *resolver) Resolve(ctx context.Context, stellarAsset core.StellarAsset) (*core.Asset, error) {
	key := stellarAsset.String()
	if v, err := r.cache.Get(key); err == nil {
		if asset, ok := v.(*core.Asset); ok {
			return asset, nil
		}
	}

	asset, err := r.assets.GetOrCreate(ctx, stellarAsset)
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, asset)
	return asset, nil
}
