package ir

import (
	"docmark/internal/ast"
)

// node is the tagged form of one block or inline.
type node struct {
	T string `json:"t" yaml:"t"`
	C any    `json:"c" yaml:"c"`
}

// EncodeBlocks converts blocks into tagged nodes ready for JSON or YAML
// marshaling. Empty sequences are written as empty arrays.
func EncodeBlocks(blocks []ast.Block) []any {
	out := make([]any, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, encodeBlock(b))
	}
	return out
}

func encodeBlock(b ast.Block) node {
	var c any
	switch v := b.(type) {
	case ast.Heading:
		c = map[string]any{"level": v.Level, "inlines": EncodeInlines(v.Inlines)}
	case ast.Paragraph:
		c = EncodeInlines(v.Inlines)
	case ast.List:
		items := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, EncodeInlines(item))
		}
		c = map[string]any{"kind": v.Kind.String(), "items": items}
	case ast.CodeBlock:
		c = v.Text
	case ast.Quote:
		c = EncodeBlocks(v.Blocks)
	case ast.LiteralBlock:
		c = v.Text
	case ast.Directive:
		c = map[string]any{"name": v.Name, "argument": v.Argument, "content": EncodeBlocks(v.Content)}
	case ast.Comment:
		c = EncodeBlocks(v.Content)
	case ast.FieldList:
		fields := make([]any, 0, len(v.Fields))
		for _, f := range v.Fields {
			fields = append(fields, map[string]any{"name": f.Name, "argument": f.Argument, "body": EncodeBlocks(f.Body)})
		}
		c = fields
	case ast.Table:
		headers := make([]any, 0, len(v.Headers))
		for _, cell := range v.Headers {
			headers = append(headers, EncodeInlines(cell))
		}
		rows := make([]any, 0, len(v.Rows))
		for _, row := range v.Rows {
			cells := make([]any, 0, len(row))
			for _, cell := range row {
				cells = append(cells, EncodeInlines(cell))
			}
			rows = append(rows, cells)
		}
		c = map[string]any{"headers": headers, "rows": rows}
	}
	return node{T: b.Tag(), C: c}
}

func EncodeInlines(inlines []ast.Inline) []any {
	out := make([]any, 0, len(inlines))
	for _, in := range inlines {
		var c any
		switch v := in.(type) {
		case ast.Text:
			c = v.Value
		case ast.Emphasis:
			c = EncodeInlines(v.Children)
		case ast.Strong:
			c = EncodeInlines(v.Children)
		case ast.Code:
			c = v.Value
		case ast.Link:
			c = map[string]any{"url": v.URL, "inlines": EncodeInlines(v.Children)}
		}
		out = append(out, node{T: in.Tag(), C: c})
	}
	return out
}
