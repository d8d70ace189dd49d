// Package render turns a parsed docstring tree into HTML.
//
// The mapping from nodes to markup is fixed. The one open part is the
// directive table: each directive name maps to a DirectiveFunc and names
// without an entry fall back to a generic labeled <div>.
package render

import (
	"strings"

	"docmark/internal/ast"
	"docmark/internal/parser"
)

// FieldStyle selects how field lists are written.
type FieldStyle int

const (
	// FieldsAsList writes <dl> with one <dt>/<dd> pair per field.
	FieldsAsList FieldStyle = iota
	// FieldsInline writes each field as paragraphs led by its label,
	// e.g. "<strong>Parameter</strong> <code>x</code>: The x value".
	FieldsInline
)

// ParseFieldStyle maps "list" or "inline" to a FieldStyle.
func ParseFieldStyle(s string) FieldStyle {
	if strings.EqualFold(strings.TrimSpace(s), "inline") {
		return FieldsInline
	}
	return FieldsAsList
}

type Option func(*Renderer)

// WithHighlightStyle enables chroma highlighting of code directives using the
// named style. CSS classes are emitted, not inline colors.
func WithHighlightStyle(style string) Option {
	return func(r *Renderer) {
		r.highlightStyle = style
	}
}

func WithFieldStyle(style FieldStyle) Option {
	return func(r *Renderer) {
		r.fieldStyle = style
	}
}

// WithParseOptions passes options to the parser used by Render.
func WithParseOptions(opts ...parser.Option) Option {
	return func(r *Renderer) {
		r.parseOpts = append(r.parseOpts, opts...)
	}
}

// Renderer writes HTML. A Renderer is safe for concurrent use once its
// directives are registered.
type Renderer struct {
	directives     map[string]DirectiveFunc
	highlightStyle string
	fieldStyle     FieldStyle
	parseOpts      []parser.Option
}

func New(opts ...Option) *Renderer {
	r := &Renderer{directives: defaultDirectives()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register installs or replaces the handler for a directive name.
func (r *Renderer) Register(name string, fn DirectiveFunc) {
	r.directives[name] = fn
}

// Render parses input and renders it.
func (r *Renderer) Render(input string) (string, error) {
	blocks, err := parser.Parse(input, r.parseOpts...)
	if err != nil {
		return "", err
	}
	return r.Blocks(blocks), nil
}

// Blocks renders top-level blocks, one per line. Comments produce nothing.
func (r *Renderer) Blocks(blocks []ast.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if _, ok := b.(ast.Comment); ok {
			continue
		}
		var sb strings.Builder
		r.block(&sb, b)
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n")
}

// Inlines renders inline nodes.
func (r *Renderer) Inlines(inlines []ast.Inline) string {
	var sb strings.Builder
	r.inlines(&sb, inlines)
	return sb.String()
}

// Render parses and renders input with the default renderer.
func Render(input string) (string, error) {
	return New().Render(input)
}

// MustRender is Render for callers that treat a parse error as fatal. It
// panics on error; use Render to handle the error instead.
func MustRender(input string) string {
	out, err := Render(input)
	if err != nil {
		panic(err)
	}
	return out
}

func (r *Renderer) block(sb *strings.Builder, b ast.Block) {
	switch v := b.(type) {
	case ast.Heading:
		tag := "h2"
		if v.Level == 1 {
			tag = "h1"
		}
		sb.WriteString("<" + tag + ">")
		r.inlines(sb, v.Inlines)
		sb.WriteString("</" + tag + ">")
	case ast.Paragraph:
		sb.WriteString("<p>")
		r.inlines(sb, v.Inlines)
		sb.WriteString("</p>")
	case ast.List:
		tag := "ul"
		if v.Kind == ast.Ordered {
			tag = "ol"
		}
		sb.WriteString("<" + tag + ">")
		for _, item := range v.Items {
			sb.WriteString("<li>")
			r.inlines(sb, item)
			sb.WriteString("</li>")
		}
		sb.WriteString("</" + tag + ">")
	case ast.CodeBlock:
		sb.WriteString("<pre><code>" + escapeText(v.Text) + "</code></pre>")
	case ast.LiteralBlock:
		sb.WriteString("<pre><code>" + escapeText(v.Text) + "</code></pre>")
	case ast.Quote:
		sb.WriteString("<blockquote>")
		r.children(sb, v.Blocks)
		sb.WriteString("</blockquote>")
	case ast.Directive:
		r.directive(sb, v)
	case ast.Comment:
	case ast.FieldList:
		r.fieldList(sb, v)
	case ast.Table:
		r.table(sb, v)
	}
}

// children renders nested blocks back to back.
func (r *Renderer) children(sb *strings.Builder, blocks []ast.Block) {
	for _, b := range blocks {
		r.block(sb, b)
	}
}

func (r *Renderer) inlines(sb *strings.Builder, inlines []ast.Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case ast.Text:
			sb.WriteString(escapeText(v.Value))
		case ast.Emphasis:
			sb.WriteString("<em>")
			r.inlines(sb, v.Children)
			sb.WriteString("</em>")
		case ast.Strong:
			sb.WriteString("<strong>")
			r.inlines(sb, v.Children)
			sb.WriteString("</strong>")
		case ast.Code:
			sb.WriteString("<code>" + escapeText(v.Value) + "</code>")
		case ast.Link:
			sb.WriteString(`<a href="` + escapeAttr(v.URL) + `">`)
			r.inlines(sb, v.Children)
			sb.WriteString("</a>")
		}
	}
}

func (r *Renderer) fieldList(sb *strings.Builder, list ast.FieldList) {
	if r.fieldStyle == FieldsInline {
		parts := make([]string, 0, len(list.Fields))
		for _, f := range list.Fields {
			var fsb strings.Builder
			r.children(&fsb, ast.PrependLabel(ast.FieldLabel(f), f.Body))
			parts = append(parts, fsb.String())
		}
		sb.WriteString(strings.Join(parts, "\n"))
		return
	}
	sb.WriteString("<dl>")
	for _, f := range list.Fields {
		term := f.Name
		if f.Argument != "" {
			term += " " + f.Argument
		}
		sb.WriteString("<dt>" + escapeText(term) + "</dt><dd>")
		r.children(sb, f.Body)
		sb.WriteString("</dd>")
	}
	sb.WriteString("</dl>")
}

func (r *Renderer) table(sb *strings.Builder, t ast.Table) {
	sb.WriteString("<table>")
	if len(t.Headers) > 0 {
		sb.WriteString("<thead><tr>")
		for _, cell := range t.Headers {
			sb.WriteString("<th>")
			r.inlines(sb, cell)
			sb.WriteString("</th>")
		}
		sb.WriteString("</tr></thead>")
	}
	sb.WriteString("<tbody>")
	for _, row := range t.Rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>")
			r.inlines(sb, cell)
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
