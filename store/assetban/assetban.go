package assetban

import (
	"context"
	"time"

	"marketkeys/core"

	"github.com/fox-one/pkg/store/db"
)

type assetBanStore struct {
	db *db.DB
}

// New new asset ban store
func New(db *db.DB) core.AssetBanStore {
	return &assetBanStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.AssetBan{})

		if err := tx.AutoMigrate(core.AssetBan{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_asset_bans_asset_reason_status", "asset_id", "reason", "status").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_asset_bans_status_fixed_at", "status", "fixed_at").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *assetBanStore) SetBan(ctx context.Context, asset *core.Asset, reason core.AssetBanReason) error {
	return s.db.Tx(func(tx *db.DB) error {
		var count int
		if err := tx.Update().Model(core.AssetBan{}).
			Where("asset_id = ? AND reason = ? AND status = ?", asset.ID, reason, core.AssetBanStatusBanned).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		if err := tx.Update().Model(core.Asset{}).
			Where("id = ?", asset.ID).
			Update("is_banned", true).Error; err != nil {
			return err
		}

		ban := core.AssetBan{
			AssetID:  asset.ID,
			Reason:   reason,
			Status:   core.AssetBanStatusBanned,
			BannedAt: time.Now(),
		}

		if err := tx.Update().Create(&ban).Error; err != nil {
			return err
		}

		asset.IsBanned = true
		return nil
	})
}

func (s *assetBanStore) ResetBan(ctx context.Context, asset *core.Asset, reason core.AssetBanReason) error {
	// single conditional update; a missing open episode makes this a no-op
	return s.db.Update().Model(core.AssetBan{}).
		Where("asset_id = ? AND reason = ? AND status = ?", asset.ID, reason, core.AssetBanStatusBanned).
		Updates(map[string]interface{}{
			"status":   core.AssetBanStatusFixed,
			"fixed_at": time.Now(),
		}).Error
}

func (s *assetBanStore) Unban(ctx context.Context, ban *core.AssetBan) error {
	return s.db.Tx(func(tx *db.DB) error {
		var open int
		if err := tx.Update().Model(core.AssetBan{}).
			Where("asset_id = ? AND status = ? AND id <> ?", ban.AssetID, core.AssetBanStatusBanned, ban.ID).
			Count(&open).Error; err != nil {
			return err
		}

		if open == 0 {
			if err := tx.Update().Model(core.Asset{}).
				Where("id = ?", ban.AssetID).
				Update("is_banned", false).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		if err := tx.Update().Model(core.AssetBan{}).
			Where("id = ? AND status = ?", ban.ID, core.AssetBanStatusFixed).
			Updates(map[string]interface{}{
				"status":      core.AssetBanStatusUnbanned,
				"unbanned_at": now,
			}).Error; err != nil {
			return err
		}

		ban.Status = core.AssetBanStatusUnbanned
		ban.UnbannedAt = &now
		return nil
	})
}

func (s *assetBanStore) ListFixedBefore(ctx context.Context, deadline time.Time) ([]*core.AssetBan, error) {
	var bans []*core.AssetBan
	if err := s.db.View().
		Where("status = ? AND fixed_at <= ?", core.AssetBanStatusFixed, deadline).
		Find(&bans).Error; err != nil {
		return nil, err
	}

	return bans, nil
}
