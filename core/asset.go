package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Asset a fungible asset discovered while parsing market keys.
// Rows are created lazily on first encounter and never deleted.
// IsBanned mirrors the ban ledger: true while at least one reason
// has an open banned episode.
type Asset struct {
	ID             uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Code           string          `sql:"size:12;unique_index:idx_assets_code_issuer" json:"code"`
	Issuer         string          `sql:"size:56;unique_index:idx_assets_code_issuer" json:"issuer"`
	IsBanned       bool            `sql:"default:0" json:"is_banned"`
	VotingBoost    decimal.Decimal `sql:"type:decimal(5,4);default:0" json:"voting_boost"`
	VotingBoostCap decimal.Decimal `sql:"type:decimal(5,4);default:0" json:"voting_boost_cap"`
}

// StellarAsset the asset's ledger identity
func (a *Asset) StellarAsset() StellarAsset {
	return StellarAsset{Code: a.Code, Issuer: a.Issuer}
}

// AssetStore asset store interface
type AssetStore interface {
	// GetOrCreate returns the row for the asset identity, inserting it first
	// if this is the first encounter.
	GetOrCreate(ctx context.Context, asset StellarAsset) (*Asset, error)
	// Find looks the asset up by identity. A miss yields a not-found error.
	Find(ctx context.Context, asset StellarAsset) (*Asset, error)
	// List returns up to limit assets with id greater than from, ordered by id.
	List(ctx context.Context, from uint64, limit int) ([]*Asset, error)
}

// AssetResolver get-or-create asset resolution injected into the parser
type AssetResolver interface {
	Resolve(ctx context.Context, asset StellarAsset) (*Asset, error)
}
