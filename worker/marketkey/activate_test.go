package marketkey

import (
	"context"
	"testing"
	"time"

	"marketkeys/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(accountID, code string, lockedAt time.Time) *core.MarketKey {
	return &core.MarketKey{
		AccountID:    accountID,
		Asset1Code:   "XLM",
		Asset2Code:   code,
		Asset2Issuer: testIssuer,
		LockedAt:     lockedAt,
	}
}

func TestActivateEarliestLockedWins(t *testing.T) {
	ctx := context.Background()
	registry := &memRegistry{}

	t1 := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	later := candidate("GLATER", "USD", t2)
	earlier := candidate("GEARLIER", "USD", t1)

	batch := []*core.MarketKey{later, earlier}
	require.Nil(t, activate(ctx, batch, registry))

	assert.True(t, earlier.IsActive)
	assert.False(t, later.IsActive)
}

func TestActivateSkipsPairsKnownToRegistry(t *testing.T) {
	ctx := context.Background()

	existing := candidate("GEXISTING", "USD", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	existing.IsActive = true
	registry := &memRegistry{keys: []*core.MarketKey{existing}}

	fresh := candidate("GFRESH", "USD", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC))
	require.Nil(t, activate(ctx, []*core.MarketKey{fresh}, registry))

	assert.False(t, fresh.IsActive)
}

func TestActivateMatchesPairInEitherOrder(t *testing.T) {
	ctx := context.Background()

	existing := &core.MarketKey{
		AccountID:    "GEXISTING",
		Asset1Code:   "USD",
		Asset1Issuer: testIssuer,
		Asset2Code:   "XLM",
		LockedAt:     time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	registry := &memRegistry{keys: []*core.MarketKey{existing}}

	// same pair, reversed order
	fresh := candidate("GFRESH", "USD", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC))
	require.Nil(t, activate(ctx, []*core.MarketKey{fresh}, registry))

	assert.False(t, fresh.IsActive)
}

func TestActivateIndependentPairs(t *testing.T) {
	ctx := context.Background()
	registry := &memRegistry{}

	now := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	usd := candidate("GUSD", "USD", now)
	eur := candidate("GEUR", "EUR", now)

	require.Nil(t, activate(ctx, []*core.MarketKey{usd, eur}, registry))

	assert.True(t, usd.IsActive)
	assert.True(t, eur.IsActive)
}

func TestActivateAtMostOnePerPair(t *testing.T) {
	ctx := context.Background()
	registry := &memRegistry{}

	base := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	batch := []*core.MarketKey{
		candidate("G1", "USD", base.Add(2*time.Hour)),
		candidate("G2", "USD", base),
		candidate("G3", "USD", base.Add(time.Hour)),
		candidate("G4", "EUR", base),
	}

	require.Nil(t, activate(ctx, batch, registry))
	require.Nil(t, registry.BatchCreate(ctx, batch))

	usdPair, _ := core.NewAssetPair(core.NativeAsset(), core.StellarAsset{Code: "USD", Issuer: testIssuer})
	eurPair, _ := core.NewAssetPair(core.NativeAsset(), core.StellarAsset{Code: "EUR", Issuer: testIssuer})

	assert.Equal(t, 1, registry.activeCountForPair(usdPair))
	assert.Equal(t, 1, registry.activeCountForPair(eurPair))

	for _, key := range batch {
		if key.IsActive {
			assert.Equal(t, base, key.LockedAt)
		}
	}
}
