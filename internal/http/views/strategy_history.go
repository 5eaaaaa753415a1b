package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
)

const historyDateLayout = "2006-01-02"

// StrategyHistory lists the APR of every report of a strategy, oldest
// first. While the row's APR is pending it shows a placeholder that the APR
// fragment replaces.
func StrategyHistory(row viewmodels.StrategyRow) templ.Component {
	return strategyHistory(row, false)
}

func strategyHistory(row viewmodels.StrategyRow, oob bool) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		hw.raw(`<div class="apr-history"`)
		hw.attr("id", elementID("history", row.Address))
		if oob {
			hw.raw(` hx-swap-oob="true"`)
		}
		hw.raw(`>`)
		switch {
		case row.APRPending:
			hw.element("p", "muted", "Loading reports")
		case len(row.HistoricalAPR) == 0:
			hw.element("p", "muted", "No reports yet.")
		default:
			hw.raw(`<table><thead><tr><th>Date</th><th>APR</th></tr></thead><tbody>`)
			for _, point := range row.HistoricalAPR {
				hw.raw(`<tr>`)
				hw.element("td", "", point.Time.Format(historyDateLayout))
				hw.element("td", "numeric", FormatPercent(point.APR))
				hw.raw(`</tr>`)
			}
			hw.raw(`</tbody></table>`)
		}
		hw.raw(`</div>`)
	})
}
