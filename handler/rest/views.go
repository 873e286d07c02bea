package rest

import (
	"context"
	"time"

	"marketkeys/core"

	"github.com/fox-one/pkg/store"
	"github.com/shopspring/decimal"
)

type marketKeyView struct {
	ID                uint64          `json:"id"`
	AccountID         string          `json:"account_id"`
	UpvoteAccountID   string          `json:"upvote_account_id"`
	DownvoteAccountID *string         `json:"downvote_account_id,omitempty"`
	Asset1            string          `json:"asset1"`
	Asset1Code        string          `json:"asset1_code"`
	Asset1Issuer      string          `json:"asset1_issuer"`
	Asset2            string          `json:"asset2"`
	Asset2Code        string          `json:"asset2_code"`
	Asset2Issuer      string          `json:"asset2_issuer"`
	IsBanned          bool            `json:"is_banned"`
	IsAuthRequired    bool            `json:"is_auth_required"`
	VotingBoost       decimal.Decimal `json:"voting_boost"`
	VotingBoostCap    decimal.Decimal `json:"voting_boost_cap"`
	LockedAt          time.Time       `json:"locked_at"`
	CreatedAt         time.Time       `json:"created_at"`
}

// viewMarketKey joins the key with the read-through attributes of its two
// assets: banned if either asset is banned, boost values from the boosted
// side of the pair
func viewMarketKey(ctx context.Context, key *core.MarketKey, assets core.AssetStore) (*marketKeyView, error) {
	pair := key.Pair()

	asset1, err := findAsset(ctx, assets, pair.Asset1)
	if err != nil {
		return nil, err
	}

	asset2, err := findAsset(ctx, assets, pair.Asset2)
	if err != nil {
		return nil, err
	}

	return &marketKeyView{
		ID:                key.ID,
		AccountID:         key.AccountID,
		UpvoteAccountID:   key.AccountID,
		DownvoteAccountID: key.DownvoteAccountID,
		Asset1:            pair.Asset1.String(),
		Asset1Code:        key.Asset1Code,
		Asset1Issuer:      key.Asset1Issuer,
		Asset2:            pair.Asset2.String(),
		Asset2Code:        key.Asset2Code,
		Asset2Issuer:      key.Asset2Issuer,
		IsBanned:          asset1.IsBanned || asset2.IsBanned,
		IsAuthRequired:    key.IsAuthRequired,
		VotingBoost:       decimal.Max(asset1.VotingBoost, asset2.VotingBoost),
		VotingBoostCap:    decimal.Max(asset1.VotingBoostCap, asset2.VotingBoostCap),
		LockedAt:          key.LockedAt,
		CreatedAt:         key.CreatedAt,
	}, nil
}

func viewMarketKeys(ctx context.Context, keys []*core.MarketKey, assets core.AssetStore) ([]*marketKeyView, error) {
	views := make([]*marketKeyView, 0, len(keys))
	for _, key := range keys {
		view, err := viewMarketKey(ctx, key, assets)
		if err != nil {
			return nil, err
		}

		views = append(views, view)
	}

	return views, nil
}

func findAsset(ctx context.Context, assets core.AssetStore, stellarAsset core.StellarAsset) (*core.Asset, error) {
	asset, err := assets.Find(ctx, stellarAsset)
	if store.IsErrNotFound(err) {
		return &core.Asset{Code: stellarAsset.Code, Issuer: stellarAsset.Issuer}, nil
	}

	return asset, err
}
