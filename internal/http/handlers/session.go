package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/vaultboard/vaultboard/internal/strategies"
)

func strategyStateKey(chainID int, vault string) string {
	return fmt.Sprintf("strategies:%d:%s", chainID, strings.ToLower(strings.TrimSpace(vault)))
}

// strategyListState seeds the list state from the session, then applies
// the q and hide_zero_debt query parameters when present. A repeated
// parameter takes its last value, so a hidden "0" followed by a checked
// "1" reads as checked.
func (h *Handlers) strategyListState(c *echo.Context, chainID int, vault string) strategies.State {
	state := strategies.DefaultState()
	ctx := c.Request().Context()
	key := strategyStateKey(chainID, vault)
	if h.Sessions != nil && h.Sessions.Exists(ctx, key+":hide") {
		state.Search = h.Sessions.GetString(ctx, key+":q")
		state.HideZeroDebt = h.Sessions.GetBool(ctx, key+":hide")
	}
	return applyListQuery(c, state)
}

func applyListQuery(c *echo.Context, state strategies.State) strategies.State {
	query := c.Request().URL.Query()
	if values := query["q"]; len(values) > 0 {
		state.Search = values[len(values)-1]
	}
	if values := query["hide_zero_debt"]; len(values) > 0 {
		state.HideZeroDebt = ParseBoolForm(values[len(values)-1])
	}
	return state
}

func (h *Handlers) saveStrategyListState(ctx context.Context, chainID int, vault string, state strategies.State) {
	if h.Sessions == nil {
		return
	}
	key := strategyStateKey(chainID, vault)
	h.Sessions.Put(ctx, key+":q", state.Search)
	h.Sessions.Put(ctx, key+":hide", state.HideZeroDebt)
}
