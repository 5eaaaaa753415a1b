// Package emptystate decides which placeholder a list shows when it has
// nothing to render.
package emptystate

import (
	"fmt"
	"strings"
)

// DefaultPrimaryChainID is the chain whose empty list means "no results"
// rather than "not available on this network".
const DefaultPrimaryChainID = 1

type Kind string

const (
	KindNone         Kind = ""
	KindLoading      Kind = "loading"
	KindWrongNetwork Kind = "wrong_network"
	KindNoResults    Kind = "no_results"
)

// ChainNames resolves a chain id to a display name. Implementations fall
// back to a generic label for unknown ids.
type ChainNames interface {
	DisplayName(chainID int) string
}

type Input struct {
	IsLoading      bool
	VisibleCount   int
	ChainID        int
	PrimaryChainID int
	// Category is the list category named by the wrong-network message.
	Category string
}

type State struct {
	Kind      Kind   `json:"kind"`
	Title     string `json:"title,omitempty"`
	Message   string `json:"message,omitempty"`
	ChainName string `json:"chain_name,omitempty"`
}

// Render reports whether the state replaces the list.
func (s State) Render() bool {
	return s.Kind != KindNone
}

// Select maps the inputs to exactly one placeholder, or KindNone when the
// list has rows to show.
func Select(in Input, names ChainNames) State {
	primary := in.PrimaryChainID
	if primary == 0 {
		primary = DefaultPrimaryChainID
	}

	switch {
	case in.VisibleCount > 0:
		return State{Kind: KindNone}
	case in.IsLoading:
		return State{
			Kind:    KindLoading,
			Title:   "Loading data",
			Message: "We are retrieving the vault list for you.",
		}
	case in.ChainID != primary:
		chainName := chainName(names, in.ChainID)
		category := strings.TrimSpace(in.Category)
		if category == "" {
			category = "vaults"
		}
		return State{
			Kind:      KindWrongNetwork,
			Title:     "👀 Where Vaults ser?",
			ChainName: chainName,
			Message: fmt.Sprintf(
				"It seems we don’t have %s on %s (yet). Feel free to check out other vaults on %s or change network. New Vaults and strategies are added often, so check back later. Don’t be a stranger.",
				category, chainName, chainName,
			),
		}
	default:
		return State{
			Kind:    KindNoResults,
			Title:   "No data, reeeeeeeeeeee",
			Message: "There doesn’t seem to be anything here. It might be because you searched for a token in the wrong category - or because there’s a rodent infestation in our server room. You check the search box, we’ll check the rodents. Deal?",
		}
	}
}

func chainName(names ChainNames, chainID int) string {
	const fallback = "this network"
	if names == nil {
		return fallback
	}
	if name := strings.TrimSpace(names.DisplayName(chainID)); name != "" {
		return name
	}
	return fallback
}
