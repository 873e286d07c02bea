package marketkey

import (
	"context"
	"time"

	"marketkeys/core"

	"github.com/fox-one/pkg/property"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// in-memory registry used by the tests in this package

type memRegistry struct {
	keys []*core.MarketKey
}

func (s *memRegistry) Exists(ctx context.Context, accountID string) (bool, error) {
	for _, key := range s.keys {
		if key.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memRegistry) ExistsDownvote(ctx context.Context, accountID string) (bool, error) {
	for _, key := range s.keys {
		if key.DownvoteAccountID != nil && *key.DownvoteAccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memRegistry) ExistsForPair(ctx context.Context, pair core.AssetPair) (bool, error) {
	for _, key := range s.keys {
		if key.Pair().Equal(pair) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memRegistry) BatchCreate(ctx context.Context, keys []*core.MarketKey) error {
	s.keys = append(s.keys, keys...)
	return nil
}

func (s *memRegistry) FindActiveForPair(ctx context.Context, pair core.AssetPair) (*core.MarketKey, error) {
	var found []*core.MarketKey
	for _, key := range s.keys {
		if key.IsActive && key.Pair().Equal(pair) {
			found = append(found, key)
		}
	}

	switch len(found) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return found[0], nil
	default:
		return nil, core.ErrTooManyActiveKeys
	}
}

func (s *memRegistry) AttachDownvote(ctx context.Context, key *core.MarketKey, accountID string) error {
	key.DownvoteAccountID = &accountID
	return nil
}

func (s *memRegistry) ListActiveForAsset(ctx context.Context, asset core.StellarAsset, limit int) ([]*core.MarketKey, error) {
	var keys []*core.MarketKey
	for _, key := range s.keys {
		if key.IsActive && key.Pair().Contains(asset) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *memRegistry) ListActiveByAccountIDs(ctx context.Context, accountIDs []string) ([]*core.MarketKey, error) {
	var keys []*core.MarketKey
	for _, key := range s.keys {
		for _, id := range accountIDs {
			if key.IsActive && key.AccountID == id {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

func (s *memRegistry) ListActive(ctx context.Context, cursor time.Time, cursorID uint64, limit int) ([]*core.MarketKey, error) {
	var keys []*core.MarketKey
	for _, key := range s.keys {
		if key.IsActive {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *memRegistry) activeCountForPair(pair core.AssetPair) int {
	count := 0
	for _, key := range s.keys {
		if key.IsActive && key.Pair().Equal(pair) {
			count++
		}
	}
	return count
}

// memResolver hands out asset rows keyed by identity

type memResolver struct {
	assets map[string]*core.Asset
}

func newMemResolver() *memResolver {
	return &memResolver{assets: make(map[string]*core.Asset)}
}

func (r *memResolver) Resolve(ctx context.Context, stellarAsset core.StellarAsset) (*core.Asset, error) {
	key := stellarAsset.String()
	if asset, ok := r.assets[key]; ok {
		return asset, nil
	}

	asset := &core.Asset{
		ID:     uint64(len(r.assets) + 1),
		Code:   stellarAsset.Code,
		Issuer: stellarAsset.Issuer,
	}
	r.assets[key] = asset
	return asset, nil
}

// fakeHorizon serves fixed pages of account records

type fakeHorizon struct {
	records []*core.AccountRecord
}

func (s *fakeHorizon) ListAccountsForSigner(ctx context.Context, signer, cursor string, limit int) ([]*core.AccountRecord, error) {
	from := 0
	if cursor != "" {
		for idx, record := range s.records {
			if record.PagingToken == cursor {
				from = idx + 1
				break
			}
		}
	}

	to := from + limit
	if to > len(s.records) {
		to = len(s.records)
	}

	return s.records[from:to], nil
}

func (s *fakeHorizon) CountStrictSendPaths(ctx context.Context, source core.StellarAsset, amount decimal.Decimal, destination core.StellarAsset) (int, error) {
	return 0, nil
}

type fakeProperty struct{}

func (fakeProperty) Get(ctx context.Context, key string) (property.Value, error) {
	var v property.Value
	return v, nil
}

func (fakeProperty) Save(ctx context.Context, key string, value interface{}) error {
	return nil
}

func (fakeProperty) Expire(ctx context.Context, key string) error {
	return nil
}

func (fakeProperty) List(ctx context.Context) (map[string]property.Value, error) {
	return nil, nil
}
