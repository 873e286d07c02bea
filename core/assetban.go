package core

import (
	"context"
	"time"
)

// AssetBanReason an independent adverse condition tracked per asset
type AssetBanReason string

const (
	// BanReasonAuthRequired the issuer requires authorization for the asset
	BanReasonAuthRequired AssetBanReason = "auth_required"
	// BanReasonAuthRevocable the issuer can revoke authorization
	BanReasonAuthRevocable AssetBanReason = "auth_revocable"
	// BanReasonAuthClawbackEnabled the issuer can claw the asset back
	BanReasonAuthClawbackEnabled AssetBanReason = "auth_clawback_enabled"
	// BanReasonIsolatedMarket no conversion path reaches the asset from native
	BanReasonIsolatedMarket AssetBanReason = "isolated_market"
)

// AssetBanStatus ban episode status
type AssetBanStatus string

const (
	// AssetBanStatusBanned the adverse condition is observed and open
	AssetBanStatusBanned AssetBanStatus = "banned"
	// AssetBanStatusFixed the condition cleared; waiting out the grace period
	AssetBanStatusFixed AssetBanStatus = "fixed"
	// AssetBanStatusUnbanned the episode is closed
	AssetBanStatusUnbanned AssetBanStatus = "unbanned"
)

// AssetBan one ban episode per (asset, reason).
// Per (asset, reason) at most one row is banned at a time.
type AssetBan struct {
	ID         uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID    uint64         `sql:"index:idx_asset_bans_asset_reason_status" json:"asset_id"`
	Reason     AssetBanReason `sql:"size:32;index:idx_asset_bans_asset_reason_status" json:"reason"`
	Status     AssetBanStatus `sql:"size:16;index:idx_asset_bans_asset_reason_status" json:"status"`
	BannedAt   time.Time      `json:"banned_at"`
	FixedAt    *time.Time     `sql:"default:null" json:"fixed_at,omitempty"`
	UnbannedAt *time.Time     `sql:"default:null" json:"unbanned_at,omitempty"`
}

// AssetBanStore ban ledger interface.
// SetBan and Unban span the asset flag and the episode row; both writes
// happen in one transaction.
type AssetBanStore interface {
	// SetBan opens a banned episode for (asset, reason) and raises the
	// asset's is_banned flag. A no-op while an episode is already open.
	SetBan(ctx context.Context, asset *Asset, reason AssetBanReason) error
	// ResetBan transitions the open episode to fixed and stamps fixed_at.
	// A no-op when no episode is open. The asset flag stays raised until
	// the final Unban.
	ResetBan(ctx context.Context, asset *Asset, reason AssetBanReason) error
	// Unban closes a fixed episode, stamping unbanned_at, and clears the
	// asset's is_banned flag iff no other reason still has an open episode.
	Unban(ctx context.Context, ban *AssetBan) error
	// ListFixedBefore returns fixed episodes with fixed_at at or before the
	// deadline.
	ListFixedBefore(ctx context.Context, deadline time.Time) ([]*AssetBan, error)
}
