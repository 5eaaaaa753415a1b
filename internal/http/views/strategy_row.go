package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
)

func StrategyRow(row viewmodels.StrategyRow) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<details class="strategy"`)
		hw.attr("id", elementID("strategy", row.Address))
		hw.raw(`><summary><span class="strategy-title">`)
		hw.text(row.Title)
		hw.raw(`</span><span class="label">APR</span>`)
		hw.render(ctx, StrategyAPR(row))
		hw.raw(`<span class="label">Allocation</span>`)
		hw.element("span", "allocation", FormatPercent(row.AllocationPercent))
		hw.raw(`</summary><div class="strategy-body"><div class="description">`)
		hw.render(ctx, Markdown(row.Description))
		hw.raw(`</div><dl class="strategy-stats">`)
		stat(hw, "Capital Allocation", FormatAmount(row.CapitalAllocation)+" "+row.TokenSymbol)
		stat(hw, "Total Gain", FormatAmount(row.NetGain)+" "+row.TokenSymbol)
		stat(hw, "Allocation", FormatPercent(row.AllocationPercent))
		stat(hw, "Performance Fee", FormatPercent(row.PerformanceFeePercent))
		stat(hw, "Last Report", FormatRelativeTime(row.LastReport()))
		hw.raw(`</dl><dl class="risk-scores">`)
		for _, score := range row.RiskScores {
			stat(hw, score.Label, FormatScore(score.Value))
		}
		hw.raw(`</dl><h3>Historical APR</h3>`)
		hw.render(ctx, StrategyHistory(row))
		hw.raw(`<p class="address">`)
		hw.text(row.Address)
		hw.raw(` <button type="button" class="copy"`)
		hw.attr("data-copy", row.Address)
		hw.raw(`>Copy address</button></p></div></details>`)
	})
}

func stat(hw *htmlWriter, label, value string) {
	hw.raw(`<div><dt>`)
	hw.text(label)
	hw.raw(`</dt><dd>`)
	hw.text(value)
	hw.raw(`</dd></div>`)
}
