package core

import (
	"errors"
	"strings"
)

// StellarAsset identifies an asset on the ledger by code and issuer.
// An empty issuer denotes the native asset; the empty string and an
// absent issuer are the same identity everywhere assets are compared.
type StellarAsset struct {
	Code   string `json:"code"`
	Issuer string `json:"issuer"`
}

// NativeAsset the ledger's native asset
func NativeAsset() StellarAsset {
	return StellarAsset{Code: "XLM"}
}

// IsNative check if the asset is the native asset
func (a StellarAsset) IsNative() bool {
	return a.Issuer == ""
}

// String canonical asset string, CODE:ISSUER or "native"
func (a StellarAsset) String() string {
	if a.IsNative() {
		return "native"
	}

	return a.Code + ":" + a.Issuer
}

// Type horizon asset type of the asset
func (a StellarAsset) Type() string {
	if a.IsNative() {
		return "native"
	}

	if len(a.Code) <= 4 {
		return "credit_alphanum4"
	}

	return "credit_alphanum12"
}

// ParseStellarAsset parses a canonical asset string back into an asset
func ParseStellarAsset(s string) (StellarAsset, error) {
	if s == "native" {
		return NativeAsset(), nil
	}

	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return StellarAsset{}, errors.New("invalid asset string: " + s)
	}

	return StellarAsset{Code: parts[0], Issuer: parts[1]}, nil
}

// AssetPair an unordered pair of two distinct assets
type AssetPair struct {
	Asset1 StellarAsset
	Asset2 StellarAsset
}

// NewAssetPair build a pair of two distinct assets.
// Both orders of the same two assets describe the same pair.
func NewAssetPair(asset1, asset2 StellarAsset) (AssetPair, error) {
	if asset1 == asset2 {
		return AssetPair{}, ErrInvalidPair
	}

	return AssetPair{Asset1: asset1, Asset2: asset2}, nil
}

// Key canonical pair key, invariant under swapping the two assets
func (p AssetPair) Key() string {
	s1, s2 := p.Asset1.String(), p.Asset2.String()
	if s2 < s1 {
		s1, s2 = s2, s1
	}

	return s1 + "-" + s2
}

// Equal check pair equality in either order
func (p AssetPair) Equal(other AssetPair) bool {
	return p.Key() == other.Key()
}

// Contains check if the asset is one of the pair members
func (p AssetPair) Contains(asset StellarAsset) bool {
	return p.Asset1 == asset || p.Asset2 == asset
}
