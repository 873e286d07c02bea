package unban

import (
	"context"
	"testing"
	"time"

	"marketkeys/core"

	"github.com/fox-one/pkg/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBans struct {
	assets map[uint64]*core.Asset
	bans   []*core.AssetBan
}

func newMemBans() *memBans {
	return &memBans{assets: make(map[uint64]*core.Asset)}
}

func (s *memBans) addAsset(id uint64) *core.Asset {
	asset := &core.Asset{ID: id, Code: "USD", IsBanned: true}
	s.assets[id] = asset
	return asset
}

func (s *memBans) addBan(assetID uint64, reason core.AssetBanReason, status core.AssetBanStatus, fixedAt time.Time) *core.AssetBan {
	ban := &core.AssetBan{
		ID:      uint64(len(s.bans) + 1),
		AssetID: assetID,
		Reason:  reason,
		Status:  status,
	}
	if status == core.AssetBanStatusFixed {
		ban.FixedAt = &fixedAt
	}

	s.bans = append(s.bans, ban)
	return ban
}

func (s *memBans) SetBan(ctx context.Context, asset *core.Asset, reason core.AssetBanReason) error {
	return nil
}

func (s *memBans) ResetBan(ctx context.Context, asset *core.Asset, reason core.AssetBanReason) error {
	return nil
}

func (s *memBans) Unban(ctx context.Context, ban *core.AssetBan) error {
	open := false
	for _, other := range s.bans {
		if other.AssetID == ban.AssetID && other.ID != ban.ID && other.Status == core.AssetBanStatusBanned {
			open = true
		}
	}

	if !open {
		if asset, ok := s.assets[ban.AssetID]; ok {
			asset.IsBanned = false
		}
	}

	if ban.Status == core.AssetBanStatusFixed {
		now := time.Now()
		ban.Status = core.AssetBanStatusUnbanned
		ban.UnbannedAt = &now
	}

	return nil
}

func (s *memBans) ListFixedBefore(ctx context.Context, deadline time.Time) ([]*core.AssetBan, error) {
	var bans []*core.AssetBan
	for _, ban := range s.bans {
		if ban.Status == core.AssetBanStatusFixed && !ban.FixedAt.After(deadline) {
			bans = append(bans, ban)
		}
	}

	return bans, nil
}

type fakeProperty struct{}

func (fakeProperty) Get(ctx context.Context, key string) (property.Value, error) {
	var v property.Value
	return v, nil
}

func (fakeProperty) Save(ctx context.Context, key string, value interface{}) error {
	return nil
}

func (fakeProperty) Expire(ctx context.Context, key string) error {
	return nil
}

func (fakeProperty) List(ctx context.Context) (map[string]property.Value, error) {
	return nil, nil
}

func testWorker(bans *memBans) *Worker {
	return New(bans, fakeProperty{}, core.BanConfig{GraceDays: 7})
}

func TestWorkerUnbansAfterGracePeriod(t *testing.T) {
	ctx := context.Background()
	bans := newMemBans()

	asset := bans.addAsset(1)
	ban := bans.addBan(asset.ID, core.BanReasonAuthRequired, core.AssetBanStatusFixed, time.Now().AddDate(0, 0, -8))

	require.Nil(t, testWorker(bans).onWork(ctx))

	assert.Equal(t, core.AssetBanStatusUnbanned, ban.Status)
	assert.NotNil(t, ban.UnbannedAt)
	assert.False(t, asset.IsBanned)
}

func TestWorkerLeavesRecentFixesAlone(t *testing.T) {
	ctx := context.Background()
	bans := newMemBans()

	asset := bans.addAsset(1)
	ban := bans.addBan(asset.ID, core.BanReasonAuthRequired, core.AssetBanStatusFixed, time.Now().AddDate(0, 0, -6))

	require.Nil(t, testWorker(bans).onWork(ctx))

	assert.Equal(t, core.AssetBanStatusFixed, ban.Status)
	assert.Nil(t, ban.UnbannedAt)
	assert.True(t, asset.IsBanned)
}

func TestWorkerKeepsFlagWhileSiblingReasonOpen(t *testing.T) {
	ctx := context.Background()
	bans := newMemBans()

	asset := bans.addAsset(1)
	fixed := bans.addBan(asset.ID, core.BanReasonAuthRequired, core.AssetBanStatusFixed, time.Now().AddDate(0, 0, -10))
	bans.addBan(asset.ID, core.BanReasonIsolatedMarket, core.AssetBanStatusBanned, time.Time{})

	require.Nil(t, testWorker(bans).onWork(ctx))

	assert.Equal(t, core.AssetBanStatusUnbanned, fixed.Status)
	assert.True(t, asset.IsBanned)
}

func TestWorkerSweepsMultipleEpisodes(t *testing.T) {
	ctx := context.Background()
	bans := newMemBans()

	first := bans.addAsset(1)
	second := bans.addAsset(2)
	a := bans.addBan(first.ID, core.BanReasonAuthRevocable, core.AssetBanStatusFixed, time.Now().AddDate(0, 0, -9))
	b := bans.addBan(second.ID, core.BanReasonIsolatedMarket, core.AssetBanStatusFixed, time.Now().AddDate(0, 0, -8))

	require.Nil(t, testWorker(bans).onWork(ctx))

	assert.Equal(t, core.AssetBanStatusUnbanned, a.Status)
	assert.Equal(t, core.AssetBanStatusUnbanned, b.Status)
	assert.False(t, first.IsBanned)
	assert.False(t, second.IsBanned)
}
