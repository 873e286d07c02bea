package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountSigner one entry of an account's signer list
type AccountSigner struct {
	Key    string `json:"key"`
	Weight int    `json:"weight"`
	Type   string `json:"type"`
}

// AccountThresholds account operation thresholds
type AccountThresholds struct {
	Low  int `json:"low_threshold"`
	Med  int `json:"med_threshold"`
	High int `json:"high_threshold"`
}

// AccountBalance one entry of an account's balance list
type AccountBalance struct {
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code"`
	AssetIssuer string `json:"asset_issuer"`
	Balance     string `json:"balance"`
}

// IsNative check if the balance holds the native asset
func (b AccountBalance) IsNative() bool {
	return b.AssetType == "native"
}

// AccountRecord a raw ledger account record from the account index
type AccountRecord struct {
	AccountID        string            `json:"account_id"`
	PagingToken      string            `json:"paging_token"`
	Signers          []AccountSigner   `json:"signers"`
	Thresholds       AccountThresholds `json:"thresholds"`
	Balances         []AccountBalance  `json:"balances"`
	LastModifiedTime string            `json:"last_modified_time"`
}

// HorizonService ledger node query interface
type HorizonService interface {
	// ListAccountsForSigner fetches one page of accounts for which signer is
	// a signer, ascending ledger order. An empty cursor starts from the
	// beginning; a page shorter than limit is the last one.
	ListAccountsForSigner(ctx context.Context, signer, cursor string, limit int) ([]*AccountRecord, error)
	// CountStrictSendPaths counts reachable strict-send paths from source
	// into destination for the amount.
	CountStrictSendPaths(ctx context.Context, source StellarAsset, amount decimal.Decimal, destination StellarAsset) (int, error)
}
