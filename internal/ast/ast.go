// Package ast defines the block and inline tree produced by the docstring parser.
//
// The tree is a plain value: every node owns its children and text, there are no
// back-references and no shared mutable nodes.
package ast

// Inline is a node inside a paragraph, heading, list item or table cell.
type Inline interface {
	Tag() string
	inline()
}

// Block is a top-level or nested structural node.
type Block interface {
	Tag() string
	block()
}

// Text is literal text.
type Text struct {
	Value string `json:"value"`
}

// Emphasis is *italic* text.
type Emphasis struct {
	Children []Inline `json:"children"`
}

// Strong is **bold** text.
type Strong struct {
	Children []Inline `json:"children"`
}

// Code is verbatim inline code. Its value is never interpreted as markup.
type Code struct {
	Value string `json:"value"`
}

// Link is a `label <url>`_ reference.
type Link struct {
	Children []Inline `json:"children"`
	URL      string   `json:"url"`
}

func (Text) Tag() string     { return "Text" }
func (Emphasis) Tag() string { return "Emphasis" }
func (Strong) Tag() string   { return "Strong" }
func (Code) Tag() string     { return "Code" }
func (Link) Tag() string     { return "Link" }

func (Text) inline()     {}
func (Emphasis) inline() {}
func (Strong) inline()   {}
func (Code) inline()     {}
func (Link) inline()     {}

// ListKind distinguishes bullet lists from numbered lists.
type ListKind int

const (
	Unordered ListKind = iota
	Ordered
)

func (k ListKind) String() string {
	if k == Ordered {
		return "ordered"
	}
	return "unordered"
}

// Heading is a section title. Level is 1 or 2.
type Heading struct {
	Level   int      `json:"level"`
	Inlines []Inline `json:"inlines"`
}

type Paragraph struct {
	Inlines []Inline `json:"inlines"`
}

// List holds one inline sequence per item. All items share Kind.
type List struct {
	Kind  ListKind   `json:"kind"`
	Items [][]Inline `json:"items"`
}

// CodeBlock is the verbatim content of a ``` fence.
type CodeBlock struct {
	Text string `json:"text"`
}

type Quote struct {
	Blocks []Block `json:"blocks"`
}

// LiteralBlock is indentation-preserving text introduced by "::".
type LiteralBlock struct {
	Text string `json:"text"`
}

// Directive is a ".. name:: argument" construct. Content is nested blocks, or a
// single LiteralBlock for code directives.
type Directive struct {
	Name     string  `json:"name"`
	Argument string  `json:"argument,omitempty"`
	Content  []Block `json:"content"`
}

// Comment is excluded from rendering.
type Comment struct {
	Content []Block `json:"content"`
}

type FieldList struct {
	Fields []Field `json:"fields"`
}

// Table has one header row (possibly empty) and body rows of inline cells.
// Rows are not required to have equal widths.
type Table struct {
	Headers [][]Inline   `json:"headers"`
	Rows    [][][]Inline `json:"rows"`
}

// Field is one ":name argument: body" entry. Name is the keyword as written.
type Field struct {
	Name     string  `json:"name"`
	Argument string  `json:"argument,omitempty"`
	Body     []Block `json:"body"`
}

func (Heading) Tag() string      { return "Heading" }
func (Paragraph) Tag() string    { return "Paragraph" }
func (List) Tag() string         { return "List" }
func (CodeBlock) Tag() string    { return "CodeBlock" }
func (Quote) Tag() string        { return "Quote" }
func (LiteralBlock) Tag() string { return "LiteralBlock" }
func (Directive) Tag() string    { return "Directive" }
func (Comment) Tag() string      { return "Comment" }
func (FieldList) Tag() string    { return "FieldList" }
func (Table) Tag() string        { return "Table" }

func (Heading) block()      {}
func (Paragraph) block()    {}
func (List) block()         {}
func (CodeBlock) block()    {}
func (Quote) block()        {}
func (LiteralBlock) block() {}
func (Directive) block()    {}
func (Comment) block()      {}
func (FieldList) block()    {}
func (Table) block()        {}
