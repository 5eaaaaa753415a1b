package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in the source is omitted since the renderer runs without
// html.WithUnsafe.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// Markdown renders a markdown document as sanitized HTML.
func Markdown(source string) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(source), &buf); err != nil {
			hw.err = err
			return
		}
		hw.raw(buf.String())
	})
}
