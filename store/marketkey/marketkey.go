package marketkey

import (
	"context"
	"time"

	"marketkeys/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type marketKeyStore struct {
	db *db.DB
}

// New new market key store
func New(db *db.DB) core.MarketKeyStore {
	return &marketKeyStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.MarketKey{})

		if err := tx.AutoMigrate(core.MarketKey{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_market_keys_account_id", "account_id").Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_market_keys_downvote_account_id", "downvote_account_id").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_market_keys_assets", "asset1_code", "asset1_issuer", "asset2_code", "asset2_issuer").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_market_keys_locked_at", "locked_at").Error; err != nil {
			return err
		}

		return nil
	})
}

// forPair matches a stored market key locking the pair in either order
func forPair(query *gorm.DB, pair core.AssetPair) *gorm.DB {
	a1, a2 := pair.Asset1, pair.Asset2
	return query.Where(
		"(asset1_code = ? AND asset1_issuer = ? AND asset2_code = ? AND asset2_issuer = ?) OR (asset1_code = ? AND asset1_issuer = ? AND asset2_code = ? AND asset2_issuer = ?)",
		a1.Code, a1.Issuer, a2.Code, a2.Issuer,
		a2.Code, a2.Issuer, a1.Code, a1.Issuer,
	)
}

// forAsset matches a stored market key with the asset on either side
func forAsset(query *gorm.DB, asset core.StellarAsset) *gorm.DB {
	return query.Where(
		"(asset1_code = ? AND asset1_issuer = ?) OR (asset2_code = ? AND asset2_issuer = ?)",
		asset.Code, asset.Issuer,
		asset.Code, asset.Issuer,
	)
}

func (s *marketKeyStore) Exists(ctx context.Context, accountID string) (bool, error) {
	var count int
	if err := s.db.View().Model(core.MarketKey{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *marketKeyStore) ExistsDownvote(ctx context.Context, accountID string) (bool, error) {
	var count int
	if err := s.db.View().Model(core.MarketKey{}).
		Where("downvote_account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *marketKeyStore) ExistsForPair(ctx context.Context, pair core.AssetPair) (bool, error) {
	var count int
	if err := forPair(s.db.View().Model(core.MarketKey{}), pair).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *marketKeyStore) BatchCreate(ctx context.Context, keys []*core.MarketKey) error {
	return s.db.Tx(func(tx *db.DB) error {
		for _, key := range keys {
			if err := tx.Update().Create(key).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *marketKeyStore) FindActiveForPair(ctx context.Context, pair core.AssetPair) (*core.MarketKey, error) {
	var keys []*core.MarketKey
	if err := forPair(s.db.View().Where("is_active = ?", true), pair).
		Limit(2).
		Find(&keys).Error; err != nil {
		return nil, err
	}

	switch len(keys) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return keys[0], nil
	default:
		return nil, core.ErrTooManyActiveKeys
	}
}

func (s *marketKeyStore) AttachDownvote(ctx context.Context, key *core.MarketKey, accountID string) error {
	tx := s.db.Update().Model(core.MarketKey{}).
		Where("id = ? AND downvote_account_id IS NULL", key.ID).
		Update("downvote_account_id", accountID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	key.DownvoteAccountID = &accountID
	return nil
}

func (s *marketKeyStore) ListActiveForAsset(ctx context.Context, asset core.StellarAsset, limit int) ([]*core.MarketKey, error) {
	var keys []*core.MarketKey
	if err := forAsset(s.db.View().Where("is_active = ?", true), asset).
		Order("locked_at DESC").
		Limit(limit).
		Find(&keys).Error; err != nil {
		return nil, err
	}

	return keys, nil
}

func (s *marketKeyStore) ListActiveByAccountIDs(ctx context.Context, accountIDs []string) ([]*core.MarketKey, error) {
	var keys []*core.MarketKey
	if err := s.db.View().
		Where("is_active = ? AND account_id IN (?)", true, accountIDs).
		Order("locked_at DESC").
		Find(&keys).Error; err != nil {
		return nil, err
	}

	return keys, nil
}

func (s *marketKeyStore) ListActive(ctx context.Context, cursor time.Time, cursorID uint64, limit int) ([]*core.MarketKey, error) {
	query := s.db.View().Where("is_active = ?", true)
	if !cursor.IsZero() {
		query = query.Where("locked_at < ? OR (locked_at = ? AND id < ?)", cursor, cursor, cursorID)
	}

	var keys []*core.MarketKey
	if err := query.
		Order("locked_at DESC, id DESC").
		Limit(limit).
		Find(&keys).Error; err != nil {
		return nil, err
	}

	return keys, nil
}
