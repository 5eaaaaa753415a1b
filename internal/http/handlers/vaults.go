package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/vaultboard/vaultboard/internal/emptystate"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
	"github.com/vaultboard/vaultboard/internal/http/views"
	"github.com/vaultboard/vaultboard/internal/metrics"
	"github.com/vaultboard/vaultboard/internal/vaults"
)

const vaultsPerPage = 50

// HandleHealthz reports liveness.
func (h *Handlers) HandleHealthz(c *echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *Handlers) HandleIndex(c *echo.Context) error {
	return c.Redirect(http.StatusFound, "/vaults")
}

// HandleVaults renders the vault list of one chain, or the empty state
// chosen for it.
func (h *Handlers) HandleVaults(c *echo.Context) error {
	chainID := parseChainID(c.QueryParam("chain_id"))
	if chainID == 0 {
		chainID = h.primaryChainID()
	}
	query := strings.TrimSpace(c.QueryParam("q"))
	category := strings.TrimSpace(c.QueryParam("category"))

	snap := h.Catalog.Snapshot(chainID)
	filtered := vaults.Filter(snap.Vaults, query, category)
	window := paginate(len(filtered), parsePageParam(c), vaultsPerPage)

	items := make([]viewmodels.VaultListItem, 0, window.End-window.Offset)
	for _, v := range filtered[window.Offset:window.End] {
		items = append(items, viewmodels.VaultListItem{
			ChainID:       chainID,
			Address:       v.Address,
			Title:         v.Title(),
			Category:      v.Category,
			TokenSymbol:   v.TokenSymbol(),
			StrategyCount: len(v.Strategies),
		})
	}

	empty := emptystate.Select(emptystate.Input{
		IsLoading:      snap.Loading,
		VisibleCount:   len(filtered),
		ChainID:        chainID,
		PrimaryChainID: h.primaryChainID(),
		Category:       category,
	}, h.Chains)
	if empty.Render() {
		metrics.EmptyStatesTotal.WithLabelValues(string(empty.Kind)).Inc()
	}

	var fetchedAt int64
	if !snap.FetchedAt.IsZero() {
		fetchedAt = snap.FetchedAt.Unix()
	}
	data := viewmodels.VaultsViewData{
		Layout:      h.LayoutData(c, "Vaults", chainID),
		Items:       items,
		Query:       query,
		Category:    category,
		Categories:  vaults.Categories(snap.Vaults),
		Empty:       empty,
		FetchedAt:   fetchedAt,
		TotalCount:  len(filtered),
		Page:        window.Page,
		TotalPages:  window.TotalPages,
		ShowingFrom: window.ShowingFrom,
		ShowingTo:   window.ShowingTo,
	}

	varyHX(c)
	if isHXTarget(c, "vaults-results") {
		return h.RenderComponent(c, views.VaultsPageResults(data))
	}
	return h.RenderComponent(c, views.VaultsPage(data))
}
