package horizon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"marketkeys/core"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type horizonService struct {
	client *resty.Client
}

// New new horizon service. The transport is bounded to cfg.PoolSize
// connections so concurrent path probes queue instead of failing.
func New(cfg core.HorizonConfig) core.HorizonService {
	client := resty.New().
		SetHostURL(cfg.URL).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second).
		SetTransport(&http.Transport{
			MaxConnsPerHost:     cfg.PoolSize,
			MaxIdleConnsPerHost: cfg.PoolSize,
		})

	return &horizonService{client: client}
}

type recordsPage struct {
	Embedded struct {
		Records []json.RawMessage `json:"records"`
	} `json:"_embedded"`
}

func (s *horizonService) ListAccountsForSigner(ctx context.Context, signer, cursor string, limit int) ([]*core.AccountRecord, error) {
	var page struct {
		Embedded struct {
			Records []*core.AccountRecord `json:"records"`
		} `json:"_embedded"`
	}

	req := s.client.R().
		SetContext(ctx).
		SetResult(&page).
		SetQueryParams(map[string]string{
			"signer": signer,
			"order":  "asc",
			"limit":  strconv.Itoa(limit),
		})
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	resp, err := req.Get("/accounts")
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("horizon: list accounts for signer: %s", resp.Status())
	}

	return page.Embedded.Records, nil
}

func (s *horizonService) CountStrictSendPaths(ctx context.Context, source core.StellarAsset, amount decimal.Decimal, destination core.StellarAsset) (int, error) {
	var page recordsPage

	req := s.client.R().
		SetContext(ctx).
		SetResult(&page).
		SetQueryParams(map[string]string{
			"source_asset_type":  source.Type(),
			"source_amount":      amount.String(),
			"destination_assets": destination.String(),
		})
	if !source.IsNative() {
		req.SetQueryParams(map[string]string{
			"source_asset_code":   source.Code,
			"source_asset_issuer": source.Issuer,
		})
	}

	resp, err := req.Get("/paths/strict-send")
	if err != nil {
		return 0, err
	}

	if !resp.IsSuccess() {
		return 0, fmt.Errorf("horizon: strict send paths: %s", resp.Status())
	}

	return len(page.Embedded.Records), nil
}
