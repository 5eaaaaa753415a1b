package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/vaultboard/vaultboard/internal/emptystate"
)

// EmptyState renders the placeholder chosen for an empty list. It renders
// nothing for emptystate.KindNone.
func EmptyState(state emptystate.State) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		if !state.Render() {
			return
		}
		hw.raw(`<section class="empty-state"`)
		hw.attr("data-kind", string(state.Kind))
		hw.raw(`>`)
		if state.Kind == emptystate.KindLoading {
			hw.raw(`<div class="spinner" aria-hidden="true"></div>`)
		}
		hw.element("h2", "empty-state-title", state.Title)
		hw.element("p", "empty-state-message", state.Message)
		hw.raw(`</section>`)
	})
}
