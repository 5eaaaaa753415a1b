package reports

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/vaultboard/vaultboard/internal/logging"
	"github.com/vaultboard/vaultboard/internal/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTTL          = 10 * time.Minute
	defaultFetchTimeout = 30 * time.Second
)

// Fetcher retrieves the raw reports payload of one strategy.
type Fetcher interface {
	ListReports(ctx context.Context, chainID int, strategy string) ([]byte, error)
}

// Key identifies the reports of one strategy on one chain. Strategy keeps
// the address as given; String ignores its checksum casing.
type Key struct {
	ChainID  int
	Strategy string
}

func NewKey(chainID int, strategy string) Key {
	return Key{ChainID: chainID, Strategy: strings.TrimSpace(strategy)}
}

func (k Key) String() string {
	return strconv.Itoa(k.ChainID) + ":" + strings.ToLower(k.Strategy)
}

type CacheOptions struct {
	TTL          time.Duration
	FetchTimeout time.Duration
	Logger       *slog.Logger
}

// Cache maps a Key to its resolved reports or to the single in-flight
// fetch for it. Entries are only refreshed once their TTL expires.
type Cache struct {
	fetcher Fetcher
	entries *gocache.Cache
	group   singleflight.Group
	timeout time.Duration
	logger  *slog.Logger
}

func NewCache(fetcher Fetcher, opts CacheOptions) *Cache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Cache{
		fetcher: fetcher,
		entries: gocache.New(ttl, 2*ttl),
		timeout: timeout,
		logger:  logging.Component(opts.Logger, "reports"),
	}
}

// Peek returns cached reports without fetching.
func (c *Cache) Peek(key Key) ([]Report, bool) {
	v, ok := c.entries.Get(key.String())
	if !ok {
		return nil, false
	}
	return v.([]Report), true
}

// Get returns the reports for key, fetching them at most once across
// concurrent callers. A payload that fails validation is logged and cached
// as empty. Transport errors are returned and not cached.
//
// If ctx ends first Get returns ctx.Err(); the shared fetch keeps running
// and still fills the cache for later callers.
func (c *Cache) Get(ctx context.Context, key Key) ([]Report, error) {
	if reports, ok := c.Peek(key); ok {
		metrics.ReportCacheLookupsTotal.WithLabelValues("hit").Inc()
		return reports, nil
	}

	ch := c.group.DoChan(key.String(), func() (any, error) {
		if reports, ok := c.Peek(key); ok {
			return reports, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.load(fetchCtx, key)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.ReportCacheLookupsTotal.WithLabelValues("shared").Inc()
		} else {
			metrics.ReportCacheLookupsTotal.WithLabelValues("miss").Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Report), nil
	}
}

// Resolve returns the reports for key, degrading to none on any error.
func (c *Cache) Resolve(ctx context.Context, key Key) []Report {
	reports, err := c.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.Warn("strategy reports unavailable", "chain_id", key.ChainID, "strategy", key.Strategy, "err", err)
		}
		return nil
	}
	return reports
}

// LatestAPR resolves the latest APR for key, degrading to 0 on any error.
func (c *Cache) LatestAPR(ctx context.Context, key Key) float64 {
	return LatestAPR(c.Resolve(ctx, key))
}

func (c *Cache) load(ctx context.Context, key Key) ([]Report, error) {
	chainLabel := strconv.Itoa(key.ChainID)
	data, err := c.fetcher.ListReports(ctx, key.ChainID, key.Strategy)
	if err != nil {
		metrics.ReportFetchesTotal.WithLabelValues(chainLabel, "error").Inc()
		return nil, err
	}
	metrics.ReportFetchesTotal.WithLabelValues(chainLabel, "success").Inc()

	reports, err := Decode(data)
	if err != nil {
		metrics.ReportSchemaFailuresTotal.WithLabelValues(chainLabel).Inc()
		c.logger.Warn("strategy reports failed validation", "chain_id", key.ChainID, "strategy", key.Strategy, "err", err)
		reports = []Report{}
	}
	c.entries.Set(key.String(), reports, gocache.DefaultExpiration)
	return reports, nil
}
