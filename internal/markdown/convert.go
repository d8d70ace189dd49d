// Package markdown converts docstrings and renderer HTML into Markdown and
// renders Markdown for terminals.
package markdown

import (
	"docmark/internal/render"
)

// Convert turns a docstring into Markdown: the text is normalized, parsed,
// rendered to HTML with inline field labels and converted back. Extra
// options are applied after the inline field style.
func Convert(doc string, opts ...render.Option) (string, error) {
	opts = append([]render.Option{render.WithFieldStyle(render.FieldsInline)}, opts...)
	out, err := render.New(opts...).Render(Normalize(doc))
	if err != nil {
		return "", err
	}
	return FromHTML(out)
}
