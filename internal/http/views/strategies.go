package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
)

const strategiesResultsID = "strategies-results"

func StrategiesPage(data viewmodels.StrategiesViewData) templ.Component {
	return Layout(data.Layout, component(func(ctx context.Context, hw *htmlWriter) {
		v := data.Vault
		hw.raw(`<nav class="breadcrumbs"><a`)
		hw.attr("href", VaultsListURL(v.ChainID, "", "", 0))
		hw.raw(`>Vaults</a></nav><h1>`)
		hw.text(v.Title)
		hw.raw(`</h1><p class="vault-meta">`)
		hw.text(v.TokenSymbol + " on " + v.ChainName)
		hw.raw(` <button type="button" class="copy"`)
		hw.attr("data-copy", v.Address)
		hw.raw(`>`)
		hw.text(v.Address)
		hw.raw(`</button></p>`)

		action := VaultURL(v.ChainID, v.Address)
		hw.raw(`<form class="filters" method="get"`)
		hw.attr("action", action)
		hw.attr("hx-get", action)
		hw.raw(` hx-target="#` + strategiesResultsID + `" hx-push-url="true" hx-trigger="input changed delay:300ms from:input[name=q], change from:input[type=checkbox]">`)
		hw.raw(`<input type="search" name="q" placeholder="Search strategies"`)
		hw.attr("value", data.Search)
		hw.raw(`><input type="hidden" name="hide_zero_debt" value="0"><label><input type="checkbox" name="hide_zero_debt" value="1"`)
		if data.HideZeroDebt {
			hw.raw(` checked`)
		}
		hw.raw(`> Hide 0 debt</label></form>`)
		hw.render(ctx, StrategiesPageResults(data))
	}))
}

// StrategiesPageResults is the swappable list of strategy rows.
func StrategiesPageResults(data viewmodels.StrategiesViewData) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<div id="` + strategiesResultsID + `">`)
		if len(data.Rows) == 0 {
			hw.element("p", "empty", data.EmptyStateMsg)
		}
		for _, row := range data.Rows {
			hw.render(ctx, StrategyRow(row))
		}
		hw.raw(`</div>`)
	})
}
