package parser

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"docmark/internal/ast"
)

// codeFence reads a ``` block up to the closing fence or end of input.
func (p *parser) codeFence(c *cursor) (ast.Block, bool) {
	l, ok := c.peek()
	if !ok || !isFence(l.text) {
		return nil, false
	}
	c.next()
	var body []string
	for {
		l, ok := c.next()
		if !ok || isFence(l.text) {
			break
		}
		body = append(body, l.text)
	}
	return ast.CodeBlock{Text: strings.Join(body, "\n")}, true
}

// quote strips one "> " per line and parses the result as a document.
func (p *parser) quote(c *cursor) ([]ast.Block, bool, error) {
	l, ok := c.peek()
	if !ok || !isQuote(l.text) {
		return nil, false, nil
	}
	var body []string
	for {
		l, ok := c.peek()
		if !ok || !isQuote(l.text) {
			break
		}
		c.next()
		t := strings.TrimLeftFunc(l.text, unicode.IsSpace)
		t = strings.TrimPrefix(t[1:], " ")
		body = append(body, t)
	}
	blocks, err := p.nested(strings.Join(body, "\n"))
	if err != nil {
		return nil, false, errors.Wrap(err, "quote")
	}
	return []ast.Block{ast.Quote{Blocks: blocks}}, true, nil
}

// literalBlock reads the indented text after a lone "::" line. The first
// content line sets the indentation that the rest is stripped to.
func (p *parser) literalBlock(c *cursor) ([]ast.Block, bool, error) {
	l, ok := c.peek()
	if !ok || !isLiteralMarker(l.text) {
		return nil, false, nil
	}
	c.next()
	skipOneBlank(c)
	first, ok := c.peek()
	if !ok {
		return []ast.Block{ast.LiteralBlock{}}, true, nil
	}
	base := leadingIndent(first.text)
	k := collector{minIndent: base, stripTo: base}
	text := trimRight(k.collect(c, ""))
	return []ast.Block{ast.LiteralBlock{Text: text}}, true, nil
}
