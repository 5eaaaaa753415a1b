package viewmodels

import "github.com/vaultboard/vaultboard/internal/emptystate"

type VaultListItem struct {
	ChainID       int
	Address       string
	Title         string
	Category      string
	TokenSymbol   string
	StrategyCount int
}

type VaultsViewData struct {
	Layout      LayoutData
	Items       []VaultListItem
	Query       string
	Category    string
	Categories  []string
	Empty       emptystate.State
	FetchedAt   int64
	TotalCount  int
	Page        int
	TotalPages  int
	ShowingFrom int
	ShowingTo   int
}
