package data

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gw12s/Stonks/internal/domain"
	"github.com/gw12s/Stonks/internal/store"
)

// ---------------------------------------------------------------------------
// Compile-time interface checks
// ---------------------------------------------------------------------------

var _ Provider = (*CachedProvider)(nil)

// ---------------------------------------------------------------------------
// CachedProvider — in-memory TTL cache in front of another Provider.
// ---------------------------------------------------------------------------

// DefaultCacheTTL is how long fetched bars stay fresh before a refetch.
const DefaultCacheTTL = time.Hour

type cacheEntry struct {
	bars      []domain.Bar
	fetchedAt time.Time
}

// CachedProvider wraps another Provider with an in-memory TTL cache.
// Concurrent requests for the same symbol and period are collapsed into a
// single upstream fetch. When a refetch fails and a stale entry exists,
// the stale bars are served instead of the error. Fetched bars are also
// written through to an optional BarStore.
type CachedProvider struct {
	upstream Provider
	store    store.BarStore // may be nil
	ttl      time.Duration
	group    singleflight.Group
	log      *slog.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry

	// now is swappable for tests.
	now func() time.Time
}

// NewCachedProvider creates a CachedProvider over upstream with the given
// TTL. A ttl of zero means DefaultCacheTTL. s may be nil to disable
// write-through persistence.
func NewCachedProvider(upstream Provider, s store.BarStore, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		upstream: upstream,
		store:    s,
		ttl:      ttl,
		log:      slog.Default().With("provider", "cached"),
		entries:  make(map[string]cacheEntry),
		now:      time.Now,
	}
}

// GetBars returns cached bars when fresh, otherwise fetches from the
// upstream provider. On upstream failure a stale cached entry is returned
// with a warning instead of the error.
func (p *CachedProvider) GetBars(ctx context.Context, symbol string, period domain.Period) ([]domain.Bar, error) {
	key := cacheKey(symbol, period)

	if bars, ok := p.fresh(key); ok {
		p.log.Debug("cache hit", "key", key, "count", len(bars))
		return bars, nil
	}

	v, err, _ := p.group.Do(key, func() (any, error) {
		// Another caller may have refreshed the entry while we waited
		// for the flight slot.
		if bars, ok := p.fresh(key); ok {
			return bars, nil
		}

		bars, ferr := p.upstream.GetBars(ctx, symbol, period)
		if ferr != nil {
			if stale, ok := p.any(key); ok {
				p.log.Warn("upstream fetch failed, serving stale bars",
					"key", key, "count", len(stale), "err", ferr)
				return stale, nil
			}
			return nil, ferr
		}

		p.put(key, bars)
		if p.store != nil && len(bars) > 0 {
			if werr := p.store.WriteBars(ctx, symbol, bars); werr != nil {
				p.log.Warn("writing bars to store failed", "symbol", symbol, "err", werr)
			}
		}
		return bars, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", key, err)
	}
	return v.([]domain.Bar), nil
}

// fresh returns the cached bars for key if they are within the TTL.
func (p *CachedProvider) fresh(key string) ([]domain.Bar, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[key]
	if !ok || p.now().Sub(e.fetchedAt) > p.ttl {
		return nil, false
	}
	return e.bars, true
}

// any returns the cached bars for key regardless of age.
func (p *CachedProvider) any(key string) ([]domain.Bar, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[key]
	if !ok {
		return nil, false
	}
	return e.bars, true
}

func (p *CachedProvider) put(key string, bars []domain.Bar) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[key] = cacheEntry{bars: bars, fetchedAt: p.now()}
}

func cacheKey(symbol string, period domain.Period) string {
	return strings.ToUpper(symbol) + ":" + string(period)
}
