package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Config market keys tracker config
type Config struct {
	DB            db.Config           `json:"db"`
	Horizon       HorizonConfig       `json:"horizon"`
	AssetsTracker AssetsTrackerConfig `json:"assets_tracker"`
	MarketKey     MarketKeyConfig     `json:"market_key"`
	Ban           BanConfig           `json:"ban"`
}

// HorizonConfig ledger node config
type HorizonConfig struct {
	URL string `json:"url" valid:"required,url"`
	// PoolSize bounds concurrent connections for path probes
	PoolSize int `json:"pool_size"`
}

// AssetsTrackerConfig external asset flags service config
type AssetsTrackerConfig struct {
	URL string `json:"url" valid:"required,url"`
}

// MarketKeyConfig market key recognition config
type MarketKeyConfig struct {
	UpvoteMarker   string `json:"upvote_marker" valid:"required"`
	DownvoteMarker string `json:"downvote_marker" valid:"required"`
	SignerWeight   int    `json:"signer_weight"`
	Threshold      int    `json:"threshold"`
	PageLimit      int    `json:"page_limit"`
}

// BanConfig asset ban lifecycle config
type BanConfig struct {
	ChunkSize int `json:"chunk_size"`
	GraceDays int `json:"grace_days"`
}

// GracePeriod the delay after a ban condition clears before the ban is lifted
func (c BanConfig) GracePeriod() time.Duration {
	return time.Duration(c.GraceDays) * 24 * time.Hour
}
