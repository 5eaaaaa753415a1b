package views

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

const copyScript = `document.addEventListener("click", function (e) {
  var el = e.target.closest("[data-copy]");
  if (el && navigator.clipboard) { navigator.clipboard.writeText(el.dataset.copy); }
});`

// Layout wraps a page body with the document shell and network switcher.
func Layout(data viewmodels.LayoutData, body templ.Component) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		title := strings.TrimSpace(data.Title)
		if title == "" {
			title = "Vaults"
		}
		hw.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		if data.RequestID != "" {
			hw.raw(`<meta name="request-id"`)
			hw.attr("content", data.RequestID)
			hw.raw(`>`)
		}
		hw.raw(`<title>`)
		hw.text(title + " · vaultboard")
		hw.raw(`</title><script`)
		hw.attr("src", htmxScript)
		hw.raw(`></script></head><body hx-boost="true"><header class="topbar"><a class="brand" href="/vaults">vaultboard</a>`)
		if len(data.Chains) > 0 {
			hw.raw(`<form class="chain-switcher" method="get" action="/vaults"><select name="chain_id" aria-label="Network" onchange="this.form.submit()">`)
			for _, chain := range data.Chains {
				hw.raw(`<option`)
				hw.attr("value", strconv.Itoa(chain.ID))
				if chain.Selected {
					hw.raw(` selected`)
				}
				hw.raw(`>`)
				hw.text(chain.Name)
				hw.raw(`</option>`)
			}
			hw.raw(`</select></form>`)
		}
		hw.raw(`</header><main id="main">`)
		hw.render(ctx, body)
		hw.raw(`</main><script>` + copyScript + `</script></body></html>`)
	})
}
