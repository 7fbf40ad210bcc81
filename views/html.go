// Package views renders the HTML pages of the report site. The layout and
// access pages are templ files; run `templ generate` after editing them.
// The report and preview bodies are data-driven tables built directly.
package views

//go:generate templ generate

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// esc escapes text for HTML element content and quoted attributes.
func esc(s string) string {
	return templ.EscapeString(s)
}

// html builds a component from a function that fills a builder.
func html(fill func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fill(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
