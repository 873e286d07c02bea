package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"marketkeys/core"
	"marketkeys/handler/render"

	"github.com/go-chi/chi"
)

const (
	defaultPageSize = 10
	maxPageSize     = 200
)

// Handle handle rest api request
func Handle(marketKeys core.MarketKeyStore, assets core.AssetStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, errors.New("not found"))
	})

	router.Get("/market-keys", listHandler(marketKeys, assets))
	router.Get("/market-keys/search", searchHandler(marketKeys, assets))
	router.Get("/market-keys/{pair}", retrieveHandler(marketKeys, assets))

	return router
}

// retrieveHandler returns the active market key for a pair given as
// ASSET1-ASSET2 canonical asset strings, matched in either order
func retrieveHandler(marketKeys core.MarketKeyStore, assets core.AssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pair, err := parsePairParam(chi.URLParam(r, "pair"))
		if err != nil {
			render.NotFound(w, err)
			return
		}

		key, err := marketKeys.FindActiveForPair(ctx, pair)
		if err != nil {
			if err == core.ErrTooManyActiveKeys {
				render.InternalError(w, err)
				return
			}

			render.NotFound(w, errors.New("market key not found"))
			return
		}

		view, err := viewMarketKey(ctx, key, assets)
		if err != nil {
			render.InternalError(w, err)
			return
		}

		render.JSON(w, view)
	}
}

// searchHandler returns active market keys containing the asset given by
// the asset query param; an unparseable param yields an empty result
func searchHandler(marketKeys core.MarketKeyStore, assets core.AssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := pageSize(r)
		asset, err := core.ParseStellarAsset(r.URL.Query().Get("asset"))
		if err != nil {
			render.JSON(w, render.H{"results": []interface{}{}})
			return
		}

		keys, err := marketKeys.ListActiveForAsset(ctx, asset, limit)
		if err != nil {
			render.InternalError(w, err)
			return
		}

		views, err := viewMarketKeys(ctx, keys, assets)
		if err != nil {
			render.InternalError(w, err)
			return
		}

		render.JSON(w, render.H{"results": views})
	}
}

// listHandler pages active market keys by locked_at descending; with
// account_id params it switches to a multi-get at the max page size
func listHandler(marketKeys core.MarketKeyStore, assets core.AssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var (
			keys []*core.MarketKey
			err  error
		)

		if accountIDs := r.URL.Query()["account_id"]; len(accountIDs) > 0 {
			if len(accountIDs) > maxPageSize {
				accountIDs = accountIDs[:maxPageSize]
			}

			keys, err = marketKeys.ListActiveByAccountIDs(ctx, accountIDs)
		} else {
			var (
				cursor   time.Time
				cursorID uint64
			)
			if raw := r.URL.Query().Get("cursor"); raw != "" {
				if cursor, cursorID, err = parseListCursor(raw); err != nil {
					render.BadRequest(w, err)
					return
				}
			}

			keys, err = marketKeys.ListActive(ctx, cursor, cursorID, pageSize(r))
		}

		if err != nil {
			render.InternalError(w, err)
			return
		}

		views, err := viewMarketKeys(ctx, keys, assets)
		if err != nil {
			render.InternalError(w, err)
			return
		}

		next := ""
		if len(keys) > 0 {
			next = listCursor(keys[len(keys)-1])
		}

		render.JSON(w, render.H{"results": views, "cursor": next})
	}
}

func parsePairParam(raw string) (core.AssetPair, error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return core.AssetPair{}, errors.New("invalid pair: " + raw)
	}

	asset1, err := core.ParseStellarAsset(parts[0])
	if err != nil {
		return core.AssetPair{}, err
	}

	asset2, err := core.ParseStellarAsset(parts[1])
	if err != nil {
		return core.AssetPair{}, err
	}

	return core.NewAssetPair(asset1, asset2)
}

// the list cursor is an opaque <locked_at unix nanos>-<id> token; carrying
// the row id keeps pages lossless when several keys share a timestamp
func listCursor(key *core.MarketKey) string {
	return strconv.FormatInt(key.LockedAt.UnixNano(), 10) + "-" + strconv.FormatUint(key.ID, 10)
}

func parseListCursor(raw string) (time.Time, uint64, error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, errors.New("invalid cursor")
	}

	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, 0, errors.New("invalid cursor")
	}

	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, errors.New("invalid cursor")
	}

	return time.Unix(0, nanos), id, nil
}

func pageSize(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return defaultPageSize
	}

	if limit > maxPageSize {
		return maxPageSize
	}

	return limit
}
