package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
)

// StrategyAPR renders the APR cell. A pending cell shows 0% and loads the
// resolved value once it is on the page.
func StrategyAPR(row viewmodels.StrategyRow) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		hw.raw(`<b class="apr"`)
		hw.attr("id", elementID("apr", row.Address))
		if row.APRPending {
			hw.attr("hx-get", StrategyAPRURL(row.ChainID, row.VaultAddress, row.Address))
			hw.raw(` hx-trigger="load" hx-swap="outerHTML"`)
		}
		hw.raw(`>`)
		hw.text(FormatPercent(row.APR))
		hw.raw(`</b>`)
	})
}

// StrategyAPRFragment is the response to a pending APR cell: the resolved
// cell plus the row's history, swapped in out of band.
func StrategyAPRFragment(row viewmodels.StrategyRow) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.render(ctx, StrategyAPR(row))
		hw.render(ctx, strategyHistory(row, true))
	})
}
