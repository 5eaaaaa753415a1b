package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/vaultboard/vaultboard/internal/catalog"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
	"github.com/vaultboard/vaultboard/internal/reports"
	"github.com/vaultboard/vaultboard/internal/strategies"
	"github.com/vaultboard/vaultboard/internal/vaults"
)

type apiError struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Reference string `json:"reference,omitempty"`
}

type vaultsResponse struct {
	ChainID   int            `json:"chain_id"`
	Loading   bool           `json:"loading"`
	FetchedAt *time.Time     `json:"fetched_at,omitempty"`
	Total     int            `json:"total"`
	Vaults    []vaults.Vault `json:"vaults"`
}

type strategiesResponse struct {
	ChainID      int                      `json:"chain_id"`
	Vault        string                   `json:"vault"`
	Search       string                   `json:"search"`
	HideZeroDebt bool                     `json:"hide_zero_debt"`
	Total        int                      `json:"total"`
	Strategies   []viewmodels.StrategyRow `json:"strategies"`
}

type reportsResponse struct {
	ChainID   int              `json:"chain_id"`
	Strategy  string           `json:"strategy"`
	LatestAPR float64          `json:"latest_apr"`
	Reports   []reports.Report `json:"reports"`
}

type refreshResponse struct {
	ChainID    int       `json:"chain_id"`
	VaultCount int       `json:"vault_count"`
	FetchedAt  time.Time `json:"fetched_at"`
}

func notFoundJSON(c *echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, apiError{Error: what + " not found"})
}

// RenderAPIStatus returns a JSON error body carrying only the status text.
func RenderAPIStatus(c *echo.Context, status int) error {
	return c.JSON(status, apiError{Error: strings.ToLower(http.StatusText(status))})
}

func (h *Handlers) HandleAPIChains(c *echo.Context) error {
	return c.JSON(http.StatusOK, h.Chains.All())
}

func (h *Handlers) HandleAPIVaults(c *echo.Context) error {
	chainID := parseChainID(c.Param("chainID"))
	if !slices.Contains(h.Catalog.ChainIDs(), chainID) {
		return notFoundJSON(c, "chain")
	}
	snap := h.Catalog.Snapshot(chainID)
	list := vaults.Filter(snap.Vaults, c.QueryParam("q"), c.QueryParam("category"))
	resp := vaultsResponse{ChainID: chainID, Loading: snap.Loading, Total: len(list), Vaults: list}
	if !snap.FetchedAt.IsZero() {
		resp.FetchedAt = &snap.FetchedAt
	}
	return c.JSON(http.StatusOK, resp)
}

// HandleAPIVaultStrategies returns the visible strategy rows of a vault
// with their APR resolved. Rows resolve concurrently and a row whose
// reports cannot be fetched reports 0.
func (h *Handlers) HandleAPIVaultStrategies(c *echo.Context) error {
	chainID, address, ok := vaultParams(c)
	if !ok {
		return notFoundJSON(c, "vault")
	}
	vault, err := h.Catalog.Vault(chainID, address)
	if errors.Is(err, catalog.ErrVaultNotFound) {
		return notFoundJSON(c, "vault")
	}
	if err != nil {
		return h.RenderAPIError(c, http.StatusInternalServerError, err)
	}

	ctrl := strategies.NewController(applyListQuery(c, strategies.DefaultState()))
	visible := ctrl.Visible(vault.Strategies)
	rows := viewmodels.ResolveStrategyRows(c.Request().Context(), h.Reports, h.Cfg.ReportFetchWorkers, chainID, vault, visible)
	recordListRender(len(rows))

	state := ctrl.State()
	return c.JSON(http.StatusOK, strategiesResponse{
		ChainID:      chainID,
		Vault:        vault.Address,
		Search:       state.Search,
		HideZeroDebt: state.HideZeroDebt,
		Total:        len(vault.Strategies),
		Strategies:   rows,
	})
}

func (h *Handlers) HandleAPIReports(c *echo.Context) error {
	chainID := parseChainID(c.Param("chainID"))
	strategy := strings.TrimSpace(c.Param("strategy"))
	if !slices.Contains(h.Catalog.ChainIDs(), chainID) {
		return notFoundJSON(c, "chain")
	}
	if strategy == "" {
		return notFoundJSON(c, "strategy")
	}

	key := reports.NewKey(chainID, strategy)
	list, err := h.Reports.Get(c.Request().Context(), key)
	if err != nil {
		return h.RenderAPIError(c, http.StatusBadGateway, err)
	}
	if list == nil {
		list = []reports.Report{}
	}
	return c.JSON(http.StatusOK, reportsResponse{
		ChainID:   chainID,
		Strategy:  key.Strategy,
		LatestAPR: reports.LatestAPR(list),
		Reports:   list,
	})
}

// HandleAPIRefresh reloads the vault list of one chain from yDaemon.
func (h *Handlers) HandleAPIRefresh(c *echo.Context) error {
	chainID := parseChainID(c.Param("chainID"))
	err := h.Catalog.Refresh(c.Request().Context(), chainID)
	if errors.Is(err, catalog.ErrUnknownChain) {
		return notFoundJSON(c, "chain")
	}
	if err != nil {
		return h.RenderAPIError(c, http.StatusBadGateway, err)
	}
	snap := h.Catalog.Snapshot(chainID)
	return c.JSON(http.StatusOK, refreshResponse{
		ChainID:    chainID,
		VaultCount: len(snap.Vaults),
		FetchedAt:  snap.FetchedAt,
	})
}
