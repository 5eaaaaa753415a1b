// Package strategies derives the displayed strategy list of a vault from
// its full collection and the list's view state.
package strategies

import (
	"slices"
	"strings"

	"github.com/vaultboard/vaultboard/internal/vaults"
)

// Controller owns the view state of one strategy list. The zero value has
// the zero-debt toggle off; use NewController for the default state.
type Controller struct {
	search       string
	hideZeroDebt bool
	rules        []ExceptionRule
}

// State is the serializable view state of a Controller.
type State struct {
	Search       string `json:"search"`
	HideZeroDebt bool   `json:"hide_zero_debt"`
}

// DefaultState hides zero-debt strategies and has no search.
func DefaultState() State {
	return State{HideZeroDebt: true}
}

func NewController(state State) *Controller {
	c := &Controller{rules: ExceptionRules}
	c.SetSearch(state.Search)
	c.hideZeroDebt = state.HideZeroDebt
	return c
}

func (c *Controller) State() State {
	return State{Search: c.search, HideZeroDebt: c.hideZeroDebt}
}

// SetSearch stores the search text lower-cased.
func (c *Controller) SetSearch(value string) {
	c.search = strings.ToLower(value)
}

func (c *Controller) Search() string {
	return c.search
}

func (c *Controller) SetHideZeroDebt(hide bool) {
	c.hideZeroDebt = hide
}

func (c *Controller) ToggleHideZeroDebt() {
	c.hideZeroDebt = !c.hideZeroDebt
}

func (c *Controller) HideZeroDebt() bool {
	return c.hideZeroDebt
}

// Visible sorts the collection and applies the zero-debt and name filters,
// in that order. The input slice is never modified.
func (c *Controller) Visible(all []vaults.Strategy) []vaults.Strategy {
	sorted := Sort(all)
	out := make([]vaults.Strategy, 0, len(sorted))
	for _, s := range sorted {
		if !c.keepByDebt(s) {
			continue
		}
		if !c.keepByName(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Sort returns a copy ordered by descending debt ratio. Missing ratios
// count as 0 and equal ratios keep their original relative order.
func Sort(in []vaults.Strategy) []vaults.Strategy {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b vaults.Strategy) int {
		ra, rb := a.Details.DebtRatioOrZero(), b.Details.DebtRatioOrZero()
		switch {
		case ra > rb:
			return -1
		case ra < rb:
			return 1
		default:
			return 0
		}
	})
	return out
}

func (c *Controller) keepByDebt(s vaults.Strategy) bool {
	if !c.hideZeroDebt {
		return true
	}
	if s.Details.TotalDebt.IsPositive() {
		return true
	}
	return isException(c.rules, s)
}

func (c *Controller) keepByName(s vaults.Strategy) bool {
	if c.search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name+" "+s.DisplayName), c.search)
}
