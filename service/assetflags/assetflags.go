package assetflags

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"marketkeys/core"
	"marketkeys/pkg/resthttp"
)

type assetFlagsService struct {
	endpoint string
}

// New new assets tracker service
func New(cfg core.AssetsTrackerConfig) core.AssetFlagsService {
	return &assetFlagsService{
		endpoint: strings.TrimSuffix(cfg.URL, "/") + "/api/v1/assets/",
	}
}

func (s *assetFlagsService) LoadAssetFlags(ctx context.Context, assets []core.StellarAsset) ([]*core.AssetFlags, error) {
	params := url.Values{}
	for _, asset := range assets {
		params.Add("asset", asset.String())
	}

	var result struct {
		Results []*core.AssetFlags `json:"results"`
	}

	resp, err := resthttp.Request(ctx).
		SetResult(&result).
		SetQueryParamsFromValues(params).
		Get(s.endpoint)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("assets tracker: load flags: %s", resp.Status())
	}

	return result.Results, nil
}
