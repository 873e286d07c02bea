package asset

import (
	"context"

	"marketkeys/core"

	"github.com/fox-one/pkg/store/db"
)

type assetStore struct {
	db *db.DB
}

// New new asset store
func New(db *db.DB) core.AssetStore {
	return &assetStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Asset{})

		if err := tx.AutoMigrate(core.Asset{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_assets_code_issuer", "code", "issuer").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *assetStore) GetOrCreate(ctx context.Context, stellarAsset core.StellarAsset) (*core.Asset, error) {
	asset := core.Asset{
		Code:   stellarAsset.Code,
		Issuer: stellarAsset.Issuer,
	}

	if err := s.db.Update().
		Where("code = ? AND issuer = ?", stellarAsset.Code, stellarAsset.Issuer).
		FirstOrCreate(&asset).Error; err != nil {
		return nil, err
	}

	return &asset, nil
}

func (s *assetStore) Find(ctx context.Context, stellarAsset core.StellarAsset) (*core.Asset, error) {
	var asset core.Asset
	if err := s.db.View().
		Where("code = ? AND issuer = ?", stellarAsset.Code, stellarAsset.Issuer).
		First(&asset).Error; err != nil {
		return nil, err
	}

	return &asset, nil
}

func (s *assetStore) List(ctx context.Context, from uint64, limit int) ([]*core.Asset, error) {
	var assets []*core.Asset
	if err := s.db.View().
		Where("id > ?", from).
		Order("id").
		Limit(limit).
		Find(&assets).Error; err != nil {
		return nil, err
	}

	return assets, nil
}
