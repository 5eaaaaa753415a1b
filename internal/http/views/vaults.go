package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
)

const vaultsResultsID = "vaults-results"

func VaultsPage(data viewmodels.VaultsViewData) templ.Component {
	return Layout(data.Layout, component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<h1>Vaults</h1>`)
		hw.raw(`<form class="filters" method="get" action="/vaults" hx-get="/vaults" hx-target="#` + vaultsResultsID + `" hx-push-url="true" hx-trigger="input changed delay:300ms from:input[name=q], change from:select[name=category]">`)
		hw.raw(`<input type="hidden" name="chain_id"`)
		hw.attr("value", FormatInt(data.Layout.ChainID))
		hw.raw(`><input type="search" name="q" placeholder="Search vaults"`)
		hw.attr("value", data.Query)
		hw.raw(`><select name="category"><option value="">All categories</option>`)
		for _, category := range data.Categories {
			hw.raw(`<option`)
			hw.attr("value", category)
			if category == data.Category {
				hw.raw(` selected`)
			}
			hw.raw(`>`)
			hw.text(category)
			hw.raw(`</option>`)
		}
		hw.raw(`</select></form>`)
		hw.render(ctx, VaultsPageResults(data))
	}))
}

// VaultsPageResults is the swappable results region of the vault list.
func VaultsPageResults(data viewmodels.VaultsViewData) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<div id="` + vaultsResultsID + `">`)
		if data.Empty.Render() {
			hw.render(ctx, EmptyState(data.Empty))
			hw.raw(`</div>`)
			return
		}
		hw.raw(`<table class="vaults"><thead><tr><th>Vault</th><th>Token</th><th>Category</th><th>Strategies</th></tr></thead><tbody>`)
		for _, item := range data.Items {
			hw.raw(`<tr><td><a`)
			hw.attr("href", VaultURL(item.ChainID, item.Address))
			hw.raw(`>`)
			hw.text(item.Title)
			hw.raw(`</a></td>`)
			hw.element("td", "", item.TokenSymbol)
			hw.element("td", "", item.Category)
			hw.element("td", "numeric", FormatInt(item.StrategyCount))
			hw.raw(`</tr>`)
		}
		hw.raw(`</tbody></table>`)
		if data.TotalPages > 1 {
			hw.raw(`<nav class="pagination"><span>`)
			hw.text("Showing " + FormatInt(data.ShowingFrom) + "–" + FormatInt(data.ShowingTo) + " of " + FormatInt(data.TotalCount))
			hw.raw(`</span>`)
			if data.Page > 1 {
				pageLink(hw, VaultsListURL(data.Layout.ChainID, data.Query, data.Category, data.Page-1), "Previous")
			}
			if data.Page < data.TotalPages {
				pageLink(hw, VaultsListURL(data.Layout.ChainID, data.Query, data.Category, data.Page+1), "Next")
			}
			hw.raw(`</nav>`)
		}
		hw.raw(`</div>`)
	})
}

func pageLink(hw *htmlWriter, href, label string) {
	hw.raw(`<a`)
	hw.attr("href", href)
	hw.attr("hx-get", href)
	hw.raw(` hx-target="#` + vaultsResultsID + `" hx-push-url="true">`)
	hw.text(label)
	hw.raw(`</a>`)
}
