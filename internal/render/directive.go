package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"docmark/internal/ast"
)

// DirectiveFunc writes the HTML for one directive.
type DirectiveFunc func(r *Renderer, sb *strings.Builder, d ast.Directive)

var admonitions = []string{"note", "warning", "tip", "caution", "danger", "attention", "important"}

func defaultDirectives() map[string]DirectiveFunc {
	m := map[string]DirectiveFunc{
		"code-block": renderCode,
		"code":       renderCode,
		"image":      renderImage,
	}
	for _, name := range admonitions {
		m[name] = renderAdmonition
	}
	return m
}

func (r *Renderer) directive(sb *strings.Builder, d ast.Directive) {
	if fn, ok := r.directives[d.Name]; ok {
		fn(r, sb, d)
		return
	}
	renderGeneric(r, sb, d)
}

func renderAdmonition(r *Renderer, sb *strings.Builder, d ast.Directive) {
	sb.WriteString(`<div class="admonition ` + escapeAttr(d.Name) + `">`)
	sb.WriteString(`<p class="admonition-title">` + escapeText(cases.Title(language.English).String(d.Name)) + `</p>`)
	r.children(sb, d.Content)
	sb.WriteString("</div>")
}

func renderCode(r *Renderer, sb *strings.Builder, d ast.Directive) {
	if d.Argument == "" {
		sb.WriteString("<pre><code>")
	} else {
		sb.WriteString(`<pre><code class="language-` + escapeAttr(d.Argument) + `">`)
	}
	for _, b := range d.Content {
		switch v := b.(type) {
		case ast.LiteralBlock:
			if out, ok := r.highlight(d.Argument, v.Text); ok {
				sb.WriteString(out)
			} else {
				sb.WriteString(escapeText(v.Text))
			}
		case ast.Paragraph:
			r.inlines(sb, v.Inlines)
		}
	}
	sb.WriteString("</code></pre>")
}

func renderImage(_ *Renderer, sb *strings.Builder, d ast.Directive) {
	alt := ""
	if len(d.Content) > 0 {
		alt = "image"
	}
	sb.WriteString(`<img src="` + escapeAttr(d.Argument) + `" alt="` + alt + `" />`)
}

func renderGeneric(r *Renderer, sb *strings.Builder, d ast.Directive) {
	sb.WriteString(`<div class="directive directive-` + escapeAttr(d.Name) + `">`)
	if d.Argument != "" {
		sb.WriteString("<p><code>" + escapeText(d.Argument) + "</code></p>")
	}
	r.children(sb, d.Content)
	sb.WriteString("</div>")
}

// highlight returns chroma markup for code, without a surrounding <pre>.
func (r *Renderer) highlight(lang, code string) (string, bool) {
	if r.highlightStyle == "" || lang == "" {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))
	style := styles.Get(r.highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	var sb strings.Builder
	if err := formatter.Format(&sb, style, iterator); err != nil {
		return "", false
	}
	return sb.String(), true
}
