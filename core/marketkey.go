package core

import (
	"context"
	"time"
)

// MarketKey one discovered ledger account locking an asset pair.
// The registry is append-only: a row is created once during an ingestion
// run and never re-parsed; is_active is decided at creation time and the
// downvote account id may be attached later by the downvote pass.
type MarketKey struct {
	ID                uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AccountID         string    `sql:"size:56" json:"account_id"`
	DownvoteAccountID *string   `sql:"size:56;default:null" json:"downvote_account_id,omitempty"`
	Asset1Code        string    `sql:"size:12" json:"asset1_code"`
	Asset1Issuer      string    `sql:"size:56" json:"asset1_issuer"`
	Asset2Code        string    `sql:"size:12" json:"asset2_code"`
	Asset2Issuer      string    `sql:"size:56" json:"asset2_issuer"`
	IsActive          bool      `sql:"default:0" json:"is_active"`
	IsAuthRequired    bool      `sql:"default:0" json:"is_auth_required"`
	LockedAt          time.Time `json:"locked_at"`
	CreatedAt         time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Pair the asset pair locked by this market key
func (mk *MarketKey) Pair() AssetPair {
	return AssetPair{
		Asset1: StellarAsset{Code: mk.Asset1Code, Issuer: mk.Asset1Issuer},
		Asset2: StellarAsset{Code: mk.Asset2Code, Issuer: mk.Asset2Issuer},
	}
}

// MarketKeyStore market key registry interface.
// Pair predicates match in either asset order; an empty issuer and an
// absent issuer are the same identity in every comparison.
type MarketKeyStore interface {
	// Exists checks for a registry row with the account id.
	Exists(ctx context.Context, accountID string) (bool, error)
	// ExistsDownvote checks for a registry row with the downvote account id.
	ExistsDownvote(ctx context.Context, accountID string) (bool, error)
	// ExistsForPair checks for any registry row locking the pair, either order.
	ExistsForPair(ctx context.Context, pair AssetPair) (bool, error)
	// BatchCreate inserts the batch atomically; no partial commit.
	BatchCreate(ctx context.Context, keys []*MarketKey) error
	// FindActiveForPair returns the active key for the pair. A miss yields a
	// not-found error; more than one active row yields ErrTooManyActiveKeys.
	FindActiveForPair(ctx context.Context, pair AssetPair) (*MarketKey, error)
	// AttachDownvote sets the downvote account id once; a row that already
	// carries one is left untouched.
	AttachDownvote(ctx context.Context, key *MarketKey, accountID string) error
	// ListActiveForAsset returns active keys containing the asset.
	ListActiveForAsset(ctx context.Context, asset StellarAsset, limit int) ([]*MarketKey, error)
	// ListActiveByAccountIDs returns active keys for the account ids.
	ListActiveByAccountIDs(ctx context.Context, accountIDs []string) ([]*MarketKey, error)
	// ListActive pages active keys by locked_at then id, both descending.
	// A non-zero cursor returns rows strictly before the (cursor, cursorID)
	// boundary, so rows sharing the boundary timestamp are not skipped.
	ListActive(ctx context.Context, cursor time.Time, cursorID uint64, limit int) ([]*MarketKey, error)
}
