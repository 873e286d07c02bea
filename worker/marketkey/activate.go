package marketkey

import (
	"context"
	"sort"

	"marketkeys/core"
)

// activate decides which new candidates become the canonical key for their
// pair. Candidates are walked by locked_at ascending, so the earliest-locked
// candidate has first claim; later same-pair candidates in the batch stay
// inactive no matter what the registry holds. A candidate whose pair already
// has any registry row, active or not, stays inactive too.
func activate(ctx context.Context, keys []*core.MarketKey, store core.MarketKeyStore) error {
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].LockedAt.Before(keys[j].LockedAt)
	})

	seen := make(map[string]bool)
	for _, key := range keys {
		pair := key.Pair()
		if seen[pair.Key()] {
			continue
		}

		exists, err := store.ExistsForPair(ctx, pair)
		if err != nil {
			return err
		}

		if !exists {
			key.IsActive = true
		}

		seen[pair.Key()] = true
	}

	return nil
}
