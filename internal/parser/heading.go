package parser

import (
	"strings"

	"docmark/internal/ast"
)

// colonHeading reads a Google-style "Args:" section title. The line after
// must be blank, deeper indented, or absent; otherwise "Note: text" style
// prose would read as a heading.
func (p *parser) colonHeading(c *cursor) ([]ast.Block, bool, error) {
	l, err := c.current()
	if err != nil {
		return nil, false, err
	}
	title, ok := colonHeadingText(l.text)
	if !ok {
		return nil, false, nil
	}
	if next, ok := c.peekNext(); ok && !isBlank(next.text) && leadingIndent(next.text) <= leadingIndent(l.text) {
		return nil, false, nil
	}
	c.next()
	return []ast.Block{ast.Heading{Level: 2, Inlines: parseInlines(title)}}, true, nil
}

// setextHeading reads a title over a "====" or "----" underline. The title
// is taken speculatively and given back when no underline follows.
func (p *parser) setextHeading(c *cursor) ([]ast.Block, bool, error) {
	title, ok := c.next()
	if !ok {
		return nil, false, ErrUnexpectedEOF
	}
	under, ok := c.peek()
	if !ok {
		c.backtrack()
		return nil, false, nil
	}
	level, ok := underlineLevel(under.text)
	if !ok {
		c.backtrack()
		return nil, false, nil
	}
	c.next()
	return []ast.Block{ast.Heading{Level: level, Inlines: parseInlines(strings.TrimSpace(title.text))}}, true, nil
}
