package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
	"github.com/vaultboard/vaultboard/internal/emptystate"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
	"github.com/vaultboard/vaultboard/internal/reports"
)

func renderViewComponent(t *testing.T, component templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render component: %v", err)
	}
	return buf.String()
}

func TestStrategyAPRPendingLoadsFragment(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, StrategyAPR(viewmodels.StrategyRow{
		ChainID:      1,
		VaultAddress: "0xVault",
		Address:      "0xStrat",
		APRPending:   true,
	}))

	assertContains(t, html, `hx-get="/vaults/1/0xVault/strategies/0xStrat/apr"`)
	assertContains(t, html, `hx-trigger="load"`)
	assertContains(t, html, `>0%</b>`)
}

func TestStrategyAPRResolved(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, StrategyAPR(viewmodels.StrategyRow{Address: "0xStrat", APR: 8.126}))

	assertNotContains(t, html, `hx-get`)
	assertContains(t, html, `id="apr-0xstrat"`)
	assertContains(t, html, `>8.13%</b>`)
}

func TestStrategyHistory(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, StrategyHistory(viewmodels.StrategyRow{
		Address: "0xStrat",
		HistoricalAPR: []reports.APRPoint{
			{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), APR: 0.04},
			{Time: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), APR: 0.07},
		},
	}))

	assertContains(t, html, `id="history-0xstrat"`)
	assertNotContains(t, html, `hx-swap-oob`)
	first := strings.Index(html, "2024-01-02")
	second := strings.Index(html, "2024-02-03")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("history not rendered oldest first: %s", html)
	}
	assertContains(t, html, `<td class="numeric">0.07%</td>`)
}

func TestStrategyHistoryPlaceholders(t *testing.T) {
	t.Parallel()

	pending := renderViewComponent(t, StrategyHistory(viewmodels.StrategyRow{Address: "0xS", APRPending: true}))
	assertContains(t, pending, "Loading reports")

	empty := renderViewComponent(t, StrategyHistory(viewmodels.StrategyRow{Address: "0xS"}))
	assertContains(t, empty, "No reports yet.")
	assertNotContains(t, empty, "<table>")
}

func TestStrategyAPRFragmentSwapsHistoryOutOfBand(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, StrategyAPRFragment(viewmodels.StrategyRow{
		Address:       "0xStrat",
		APR:           0.07,
		HistoricalAPR: []reports.APRPoint{{Time: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), APR: 0.07}},
	}))

	if !strings.HasPrefix(html, `<b class="apr" id="apr-0xstrat">0.07%</b>`) {
		t.Fatalf("fragment must start with the APR cell: %s", html)
	}
	assertContains(t, html, `id="history-0xstrat" hx-swap-oob="true"`)
	assertContains(t, html, "2024-02-03")
}

func TestStrategyRowRendersMarkdownAndEscapes(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, StrategyRow(viewmodels.StrategyRow{
		Address:           "0xStrat",
		Title:             "<Lender>",
		Description:       "Lends **USDC**.<script>alert(1)</script>",
		TokenSymbol:       "USDC",
		CapitalAllocation: decimal.RequireFromString("1234567.89"),
		NetGain:           decimal.RequireFromString("-12.4"),
		AllocationPercent: 25.5,
	}))

	assertContains(t, html, `&lt;Lender&gt;`)
	assertContains(t, html, `<strong>USDC</strong>`)
	assertNotContains(t, html, `<script>alert(1)</script>`)
	assertContains(t, html, `1,234,568 USDC`)
	assertContains(t, html, `-12 USDC`)
	assertContains(t, html, `25.5%`)
	assertContains(t, html, `Last Report</dt><dd>never`)
	assertContains(t, html, `data-copy="0xStrat"`)
	assertContains(t, html, `<h3>Historical APR</h3>`)
}

func TestVaultsPageResultsShowsEmptyState(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, VaultsPageResults(viewmodels.VaultsViewData{
		Empty: emptystate.State{Kind: emptystate.KindNoResults, Title: "No results", Message: "Try another search"},
	}))

	assertContains(t, html, `id="vaults-results"`)
	assertContains(t, html, `data-kind="no_results"`)
	assertContains(t, html, `Try another search`)
	assertNotContains(t, html, `<table`)
}

func TestVaultsPageUsesDebouncedHTMXFilters(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, VaultsPage(viewmodels.VaultsViewData{
		Layout: viewmodels.LayoutData{
			Title:   "Vaults",
			ChainID: 10,
			Chains:  []viewmodels.ChainOption{{ID: 1, Name: "Ethereum"}, {ID: 10, Name: "Optimism", Selected: true}},
		},
		Items:      []viewmodels.VaultListItem{{ChainID: 10, Address: "0xA", Title: "USDC yVault", StrategyCount: 2}},
		Categories: []string{"Stablecoin"},
		Category:   "Stablecoin",
	}))

	assertContains(t, html, `hx-boost="true"`)
	assertContains(t, html, `hx-target="#vaults-results"`)
	assertContains(t, html, `delay:300ms`)
	assertContains(t, html, `<option value="10" selected>Optimism</option>`)
	assertContains(t, html, `<option value="Stablecoin" selected>Stablecoin</option>`)
	assertContains(t, html, `href="/vaults/10/0xA"`)
}

func TestStrategiesPageKeepsToggleState(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, StrategiesPage(viewmodels.StrategiesViewData{
		Vault:         viewmodels.VaultHeader{ChainID: 1, Address: "0xVault", Title: "DAI yVault"},
		Search:        "curve",
		HideZeroDebt:  true,
		EmptyStateMsg: "No strategies match these filters.",
	}))

	assertContains(t, html, `value="curve"`)
	assertContains(t, html, `value="1" checked`)
	assertContains(t, html, `hx-target="#strategies-results"`)
	assertContains(t, html, `No strategies match these filters.`)
}

func TestFormatters(t *testing.T) {
	t.Parallel()

	if got := FormatPercent(0); got != "0%" {
		t.Fatalf("FormatPercent(0) = %q", got)
	}
	if got := FormatPercent(12.5); got != "12.5%" {
		t.Fatalf("FormatPercent(12.5) = %q", got)
	}
	if got := FormatRelativeTime(time.Time{}); got != "never" {
		t.Fatalf("FormatRelativeTime(zero) = %q", got)
	}
	if got := FormatRelativeTime(time.Now().Add(-72 * time.Hour)); !strings.Contains(got, "ago") {
		t.Fatalf("FormatRelativeTime = %q, want relative past", got)
	}
	if got := VaultStrategiesURL(1, "0xV", "", false); got != "/vaults/1/0xV?hide_zero_debt=0" {
		t.Fatalf("VaultStrategiesURL = %q", got)
	}
	if got := VaultsListURL(0, "", "", 1); got != "/vaults" {
		t.Fatalf("VaultsListURL = %q", got)
	}
}

func assertContains(t *testing.T, content, want string) {
	t.Helper()
	if !strings.Contains(content, want) {
		t.Fatalf("expected rendered HTML to contain %q", want)
	}
}

func assertNotContains(t *testing.T, content, disallowed string) {
	t.Helper()
	if strings.Contains(content, disallowed) {
		t.Fatalf("expected rendered HTML to not contain %q", disallowed)
	}
}
