// Package docmark parses loosely structured docstrings (reStructuredText,
// Sphinx, NumPy and Google conventions, plus a little Markdown) into a block
// tree and renders that tree as HTML or Markdown.
//
//	blocks, err := docmark.Parse(":param x: The input")
//	html, err := docmark.HTML("Heading\n=======\n\nBody.")
//	md, err := docmark.Markdown(docstring)
package docmark

import (
	"docmark/internal/ast"
	"docmark/internal/ir"
	"docmark/internal/markdown"
	"docmark/internal/parser"
	"docmark/internal/render"
)

// Tree nodes.
type (
	Block        = ast.Block
	Inline       = ast.Inline
	Heading      = ast.Heading
	Paragraph    = ast.Paragraph
	List         = ast.List
	ListKind     = ast.ListKind
	CodeBlock    = ast.CodeBlock
	Quote        = ast.Quote
	LiteralBlock = ast.LiteralBlock
	Directive    = ast.Directive
	Comment      = ast.Comment
	FieldList    = ast.FieldList
	Field        = ast.Field
	Table        = ast.Table
	Text         = ast.Text
	Emphasis     = ast.Emphasis
	Strong       = ast.Strong
	Code         = ast.Code
	Link         = ast.Link
)

const (
	Unordered = ast.Unordered
	Ordered   = ast.Ordered
)

type (
	ParseOption  = parser.Option
	RenderOption = render.Option
	FieldStyle   = render.FieldStyle
	SyntaxError  = parser.SyntaxError
	Document     = ir.Document
)

const (
	FieldsAsList = render.FieldsAsList
	FieldsInline = render.FieldsInline
)

var (
	ErrUnexpectedEOF  = parser.ErrUnexpectedEOF
	ErrNestingTooDeep = parser.ErrNestingTooDeep
)

var (
	WithMaxDepth       = parser.WithMaxDepth
	WithHighlightStyle = render.WithHighlightStyle
	WithFieldStyle     = render.WithFieldStyle
	WithParseOptions   = render.WithParseOptions
)

// Parse converts docstring text into blocks.
func Parse(input string, opts ...ParseOption) ([]Block, error) {
	return parser.Parse(input, opts...)
}

// ParseInlines parses inline markup only. It never fails.
func ParseInlines(text string) []Inline {
	return parser.ParseInlines(text)
}

// HTML parses and renders input.
func HTML(input string, opts ...RenderOption) (string, error) {
	return render.New(opts...).Render(input)
}

// Markdown converts an indented docstring to Markdown.
func Markdown(doc string, opts ...RenderOption) (string, error) {
	return markdown.Convert(doc, opts...)
}

// Normalize strips the common indentation and surrounding blank lines of a
// docstring.
func Normalize(doc string) string {
	return markdown.Normalize(doc)
}

// MarshalJSON writes blocks in the tagged {"t","c"} form.
func MarshalJSON(source string, blocks []Block) ([]byte, error) {
	return ir.EncodeJSON(ir.New(source, blocks))
}

// UnmarshalJSON reads a document written by MarshalJSON.
func UnmarshalJSON(data []byte) (Document, error) {
	return ir.DecodeJSON(data)
}
