// Package catalog owns the vault collection of each configured chain and
// keeps it fresh.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vaultboard/vaultboard/internal/logging"
	"github.com/vaultboard/vaultboard/internal/metrics"
	"github.com/vaultboard/vaultboard/internal/vaults"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	ErrVaultNotFound = errors.New("vault not found")
	ErrUnknownChain  = errors.New("chain is not configured")
)

// Source lists the vaults of one chain.
type Source interface {
	ListVaults(ctx context.Context, chainID int) ([]vaults.Vault, error)
}

// SnapshotStore persists the last good vault list of each chain.
type SnapshotStore interface {
	SaveVaults(ctx context.Context, chainID int, list []vaults.Vault, fetchedAt time.Time) error
	LoadVaults(ctx context.Context, chainID int) ([]vaults.Vault, time.Time, error)
}

type Options struct {
	ChainIDs  []int
	Snapshots SnapshotStore
	Logger    *slog.Logger
}

// Snapshot is a read-only view of one chain's state.
type Snapshot struct {
	ChainID   int
	Vaults    []vaults.Vault
	Loading   bool
	Loaded    bool
	FetchedAt time.Time
	Err       error
}

type chainState struct {
	vaults    []vaults.Vault
	loading   bool
	loaded    bool
	fetchedAt time.Time
	lastErr   error
}

type Catalog struct {
	source    Source
	snapshots SnapshotStore
	logger    *slog.Logger
	chainIDs  []int

	mu     sync.RWMutex
	chains map[int]*chainState
	group  singleflight.Group
}

// New creates a catalog for the given chains. Configured chains start in
// the loading state until their first refresh completes.
func New(source Source, opts Options) *Catalog {
	ids := slices.Clone(opts.ChainIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	c := &Catalog{
		source:    source,
		snapshots: opts.Snapshots,
		logger:    logging.Component(opts.Logger, "catalog"),
		chainIDs:  ids,
		chains:    make(map[int]*chainState, len(ids)),
	}
	for _, id := range ids {
		c.chains[id] = &chainState{loading: true}
	}
	return c
}

func (c *Catalog) ChainIDs() []int {
	return slices.Clone(c.chainIDs)
}

// Snapshot returns the current state of a chain. Unknown chains report an
// empty, not-loading snapshot.
func (c *Catalog) Snapshot(chainID int) Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st, ok := c.chains[chainID]
	if !ok {
		return Snapshot{ChainID: chainID}
	}
	return Snapshot{
		ChainID:   chainID,
		Vaults:    st.vaults,
		Loading:   st.loading,
		Loaded:    st.loaded,
		FetchedAt: st.fetchedAt,
		Err:       st.lastErr,
	}
}

// Vault finds a vault by address on a chain.
func (c *Catalog) Vault(chainID int, address string) (vaults.Vault, error) {
	snap := c.Snapshot(chainID)
	for _, v := range snap.Vaults {
		if strings.EqualFold(v.Address, strings.TrimSpace(address)) {
			return v, nil
		}
	}
	return vaults.Vault{}, fmt.Errorf("%w: %s on chain %d", ErrVaultNotFound, address, chainID)
}

// Restore seeds chains from the snapshot store. Chains without a stored
// snapshot are left untouched.
func (c *Catalog) Restore(ctx context.Context) error {
	if c.snapshots == nil {
		return nil
	}
	var errs []error
	for _, id := range c.chainIDs {
		list, fetchedAt, err := c.snapshots.LoadVaults(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("restore chain %d: %w", id, err))
			continue
		}
		if list == nil {
			continue
		}
		c.mu.Lock()
		st := c.chains[id]
		if !st.loaded {
			st.vaults = list
			st.loaded = true
			st.fetchedAt = fetchedAt
		}
		c.mu.Unlock()
		c.logger.Info("restored vault snapshot", "chain_id", id, "vaults", len(list), "fetched_at", fetchedAt)
	}
	return errors.Join(errs...)
}

// Refresh reloads one chain. Concurrent refreshes of the same chain share
// one upstream call. On failure the previous list is kept.
func (c *Catalog) Refresh(ctx context.Context, chainID int) error {
	c.mu.Lock()
	st, ok := c.chains[chainID]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownChain, chainID)
	}
	st.loading = true
	c.mu.Unlock()

	_, err, _ := c.group.Do(strconv.Itoa(chainID), func() (any, error) {
		return nil, c.refresh(ctx, chainID)
	})
	return err
}

func (c *Catalog) refresh(ctx context.Context, chainID int) error {
	chainLabel := strconv.Itoa(chainID)
	start := time.Now()
	list, err := c.source.ListVaults(ctx, chainID)
	metrics.CatalogRefreshDuration.WithLabelValues(chainLabel).Observe(time.Since(start).Seconds())

	c.mu.Lock()
	st := c.chains[chainID]
	st.loading = false
	st.lastErr = err
	if err == nil {
		st.vaults = list
		st.loaded = true
		st.fetchedAt = time.Now().UTC()
	}
	fetchedAt := st.fetchedAt
	c.mu.Unlock()

	if err != nil {
		metrics.CatalogRefreshTotal.WithLabelValues(chainLabel, "error").Inc()
		return fmt.Errorf("refresh chain %d: %w", chainID, err)
	}
	metrics.CatalogRefreshTotal.WithLabelValues(chainLabel, "success").Inc()
	metrics.CatalogLastSuccessTimestamp.WithLabelValues(chainLabel).Set(float64(fetchedAt.Unix()))
	metrics.VaultsTotal.WithLabelValues(chainLabel).Set(float64(len(list)))

	if c.snapshots != nil {
		if err := c.snapshots.SaveVaults(ctx, chainID, list, fetchedAt); err != nil {
			c.logger.Warn("persist vault snapshot failed", "chain_id", chainID, "err", err)
		}
	}
	return nil
}

// RunOnce refreshes every configured chain concurrently and returns the
// joined refresh errors.
func (c *Catalog) RunOnce(ctx context.Context) error {
	var (
		mu   sync.Mutex
		errs []error
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range c.chainIDs {
		id := id
		g.Go(func() error {
			if err := c.Refresh(gctx, id); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
