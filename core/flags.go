package core

import "context"

// AssetFlags issuer-controlled authorization flags of one asset,
// as reported by the external assets tracker
type AssetFlags struct {
	AssetString         string `json:"asset_string"`
	AuthRequired        bool   `json:"auth_required"`
	AuthRevocable       bool   `json:"auth_revocable"`
	AuthClawbackEnabled bool   `json:"auth_clawback_enabled"`
}

// AssetFlagsService assets tracker query interface
type AssetFlagsService interface {
	// LoadAssetFlags fetches flags for the assets in one bulk request.
	// Assets unknown to the tracker are absent from the result.
	LoadAssetFlags(ctx context.Context, assets []StellarAsset) ([]*AssetFlags, error)
}
