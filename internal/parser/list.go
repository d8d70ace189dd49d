package parser

import "docmark/internal/ast"

// list reads consecutive one-line items of a single marker kind.
func (p *parser) list(c *cursor) (ast.Block, bool) {
	l, ok := c.peek()
	if !ok {
		return nil, false
	}
	kind, ok := listKind(l.text)
	if !ok {
		return nil, false
	}
	list := ast.List{Kind: kind}
	for {
		l, ok := c.peek()
		if !ok {
			break
		}
		k, ok := listKind(l.text)
		if !ok || k != kind {
			break
		}
		c.next()
		list.Items = append(list.Items, parseInlines(trimRight(stripListMarker(l.text, kind))))
	}
	return list, true
}
