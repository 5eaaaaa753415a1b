package handlers

import (
	"errors"

	"github.com/labstack/echo/v5"
	"github.com/vaultboard/vaultboard/internal/catalog"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
	"github.com/vaultboard/vaultboard/internal/http/views"
	"github.com/vaultboard/vaultboard/internal/metrics"
	"github.com/vaultboard/vaultboard/internal/reports"
	"github.com/vaultboard/vaultboard/internal/strategies"
	"github.com/vaultboard/vaultboard/internal/vaults"
)

const noStrategiesMsg = "No strategies match these filters."

// HandleVaultStrategies renders the strategy list of one vault. Rows whose
// reports are already cached show their APR and history; the rest show 0%
// and load both through HandleStrategyAPR.
func (h *Handlers) HandleVaultStrategies(c *echo.Context) error {
	chainID, address, ok := vaultParams(c)
	if !ok {
		return RenderNotFound(c)
	}
	vault, err := h.Catalog.Vault(chainID, address)
	if errors.Is(err, catalog.ErrVaultNotFound) {
		return RenderNotFound(c)
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	ctrl := strategies.NewController(h.strategyListState(c, chainID, vault.Address))
	visible := ctrl.Visible(vault.Strategies)

	rows := make([]viewmodels.StrategyRow, 0, len(visible))
	for _, s := range visible {
		row := viewmodels.NewStrategyRow(chainID, vault, s, 0)
		if list, ok := h.Reports.Peek(reports.NewKey(chainID, s.Address)); ok {
			row.ApplyReports(list)
		} else {
			row.APRPending = true
		}
		rows = append(rows, row)
	}
	state := ctrl.State()
	h.saveStrategyListState(c.Request().Context(), chainID, vault.Address, state)
	recordListRender(len(rows))

	data := viewmodels.StrategiesViewData{
		Layout:        h.LayoutData(c, vault.Title(), chainID),
		Vault:         h.vaultHeader(chainID, vault),
		Rows:          rows,
		Search:        state.Search,
		HideZeroDebt:  state.HideZeroDebt,
		TotalCount:    len(vault.Strategies),
		EmptyStateMsg: noStrategiesMsg,
	}

	varyHX(c)
	if isHXTarget(c, "strategies-results") {
		return h.RenderComponent(c, views.StrategiesPageResults(data))
	}
	return h.RenderComponent(c, views.StrategiesPage(data))
}

// HandleStrategyAPR renders the APR cell of one strategy row together with
// its historical APR. Fetch or schema failures render 0% and no history.
func (h *Handlers) HandleStrategyAPR(c *echo.Context) error {
	chainID, address, ok := vaultParams(c)
	if !ok {
		return RenderNotFound(c)
	}
	vault, err := h.Catalog.Vault(chainID, address)
	if errors.Is(err, catalog.ErrVaultNotFound) {
		return RenderNotFound(c)
	}
	if err != nil {
		return h.RenderError(c, err)
	}
	strategy, ok := vault.FindStrategy(c.Param("strategy"))
	if !ok {
		return RenderNotFound(c)
	}

	row := viewmodels.NewStrategyRow(chainID, vault, strategy, 0)
	row.ApplyReports(h.Reports.Resolve(c.Request().Context(), reports.NewKey(chainID, strategy.Address)))
	return h.RenderComponent(c, views.StrategyAPRFragment(row))
}

func (h *Handlers) vaultHeader(chainID int, v vaults.Vault) viewmodels.VaultHeader {
	return viewmodels.VaultHeader{
		ChainID:     chainID,
		ChainName:   h.Chains.DisplayName(chainID),
		Address:     v.Address,
		Title:       v.Title(),
		TokenSymbol: v.TokenSymbol(),
		Category:    v.Category,
	}
}

func recordListRender(visible int) {
	outcome := "rows"
	if visible == 0 {
		outcome = "empty"
	}
	metrics.StrategyListRendersTotal.WithLabelValues(outcome).Inc()
}
