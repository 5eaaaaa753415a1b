package viewmodels

import (
	"context"

	"github.com/vaultboard/vaultboard/internal/reports"
	"github.com/vaultboard/vaultboard/internal/vaults"
	"golang.org/x/sync/errgroup"
)

// DefaultAPRWorkers bounds concurrent report fetches when no limit is set.
const DefaultAPRWorkers = 8

// ReportResolver returns the reports of a strategy, degrading to none.
type ReportResolver interface {
	Resolve(ctx context.Context, key reports.Key) []reports.Report
}

// ResolveStrategyRows presents the given strategies with their latest and
// historical APR resolved, at most workers at a time. Row order follows
// visible.
func ResolveStrategyRows(ctx context.Context, src ReportResolver, workers, chainID int, vault vaults.Vault, visible []vaults.Strategy) []StrategyRow {
	if workers <= 0 {
		workers = DefaultAPRWorkers
	}
	rows := make([]StrategyRow, len(visible))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, s := range visible {
		g.Go(func() error {
			row := NewStrategyRow(chainID, vault, s, 0)
			row.ApplyReports(src.Resolve(ctx, reports.NewKey(chainID, s.Address)))
			rows[i] = row
			return nil
		})
	}
	_ = g.Wait()
	return rows
}
