package marketdata

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockScope/internal/model"
)

// CachedFetcher is a read-through TTL cache over a Fetcher, keyed by
// symbol and range. It keeps the dashboard page and its chart frames from
// refetching the same series within one short window. Sharing cached
// series between requests is safe because a PriceSeries is immutable once
// fetched.
type CachedFetcher struct {
	fetcher Fetcher
	store   *cache.Cache
	logger  zerolog.Logger
}

// NewCachedFetcher wraps fetcher with a cache holding entries for ttl.
func NewCachedFetcher(fetcher Fetcher, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedFetcher{
		fetcher: fetcher,
		store:   cache.New(ttl, 2*ttl),
		logger:  log.With().Str("component", "series_cache").Logger(),
	}
}

func (c *CachedFetcher) Name() string { return c.fetcher.Name() }

func cacheKey(symbol, rng string) string {
	return symbol + "|" + NormalizeRange(rng)
}

// FetchSeries returns the cached series when present, fetching and storing
// it otherwise. Errors are never cached.
func (c *CachedFetcher) FetchSeries(ctx context.Context, symbol, rng string) (*model.PriceSeries, error) {
	key := cacheKey(symbol, rng)
	if v, ok := c.store.Get(key); ok {
		c.logger.Debug().Str("key", key).Msg("cache hit")
		return v.(*model.PriceSeries), nil
	}

	series, err := c.fetcher.FetchSeries(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, series, cache.DefaultExpiration)
	return series, nil
}

// Invalidate drops one cached series.
func (c *CachedFetcher) Invalidate(symbol, rng string) {
	c.store.Delete(cacheKey(symbol, rng))
}

// Flush drops every cached series.
func (c *CachedFetcher) Flush() {
	c.store.Flush()
}
