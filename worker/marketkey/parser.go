package marketkey

import (
	"context"
	"time"

	"marketkeys/core"
)

// Parser validates a raw account record's signer and threshold structure
// and extracts the asset pair it locks. A Parser is pure over the record;
// asset rows are created through the injected resolver.
type Parser struct {
	marker       string
	signerWeight int
	threshold    int
}

// NewParser new parser recognizing market keys marked by marker
func NewParser(marker string, cfg core.MarketKeyConfig) *Parser {
	return &Parser{
		marker:       marker,
		signerWeight: cfg.SignerWeight,
		threshold:    cfg.Threshold,
	}
}

// Marker the marker key this parser recognizes
func (p *Parser) Marker() string {
	return p.marker
}

func (p *Parser) verifySigners(record *core.AccountRecord) error {
	if len(record.Signers) != 2 {
		return core.ErrInvalidSignerCount
	}

	marker := false
	for _, signer := range record.Signers {
		if signer.Key == p.marker {
			marker = true
		}
	}
	if !marker {
		return core.ErrMarkerNotFound
	}

	for _, signer := range record.Signers {
		if signer.Weight != p.signerWeight {
			return core.ErrInvalidSignerWeight
		}
	}

	t := record.Thresholds
	if t.Low != p.threshold || t.Med != p.threshold || t.High != p.threshold {
		return core.ErrInvalidThresholds
	}

	return nil
}

// parseMarketAssets extracts the two locked assets. A 2-balance record is
// native plus one issued asset; the native asset becomes the first member.
// A 3-balance record keeps the two issued assets in encounter order.
func parseMarketAssets(record *core.AccountRecord) (core.StellarAsset, core.StellarAsset, error) {
	if len(record.Balances) != 2 && len(record.Balances) != 3 {
		return core.StellarAsset{}, core.StellarAsset{}, core.ErrInvalidAssetCount
	}

	assets := make([]core.StellarAsset, 0, 2)
	for _, balance := range record.Balances {
		if balance.IsNative() {
			continue
		}

		assets = append(assets, core.StellarAsset{
			Code:   balance.AssetCode,
			Issuer: balance.AssetIssuer,
		})
	}

	if len(assets) == 1 {
		assets = append([]core.StellarAsset{core.NativeAsset()}, assets...)
	}

	if len(assets) != 2 {
		return core.StellarAsset{}, core.StellarAsset{}, core.ErrInvalidAssetCount
	}

	return assets[0], assets[1], nil
}

// Parse parses one account record into a market key candidate.
// Structural rejections come back as *core.ParsingError; any other error
// is a resolver failure and aborts the run.
func (p *Parser) Parse(ctx context.Context, record *core.AccountRecord, resolver core.AssetResolver) (*core.MarketKey, error) {
	if err := p.verifySigners(record); err != nil {
		return nil, err
	}

	asset1, asset2, err := parseMarketAssets(record)
	if err != nil {
		return nil, err
	}

	pair, err := core.NewAssetPair(asset1, asset2)
	if err != nil {
		return nil, core.ErrPairNotDistinct
	}

	lockedAt, err := time.Parse(time.RFC3339, record.LastModifiedTime)
	if err != nil {
		return nil, core.ErrInvalidLockTime
	}

	for _, stellarAsset := range []core.StellarAsset{pair.Asset1, pair.Asset2} {
		if _, err := resolver.Resolve(ctx, stellarAsset); err != nil {
			return nil, err
		}
	}

	return &core.MarketKey{
		AccountID:    record.AccountID,
		Asset1Code:   pair.Asset1.Code,
		Asset1Issuer: pair.Asset1.Issuer,
		Asset2Code:   pair.Asset2.Code,
		Asset2Issuer: pair.Asset2.Issuer,
		LockedAt:     lockedAt,
	}, nil
}
