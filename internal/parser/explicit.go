package parser

import (
	"strings"

	"github.com/pkg/errors"

	"docmark/internal/ast"
)

// comment reads ".. text" without "::". Its body is indented past the dots.
func (p *parser) comment(c *cursor) ([]ast.Block, bool, error) {
	l, err := c.current()
	if err != nil {
		return nil, false, err
	}
	rest, ok := explicitMarkup(l.text)
	if !ok || strings.Contains(rest, "::") {
		return nil, false, nil
	}
	c.next()
	skipOneBlank(c)

	base := leadingIndent(l.text)
	k := collector{minIndent: base + 1, stripTo: base + 1}
	text := k.collect(c, strings.TrimSpace(rest))
	if strings.TrimSpace(text) == "" {
		return []ast.Block{ast.Comment{}}, true, nil
	}
	blocks, err := p.nested(text)
	if err != nil {
		return nil, false, errors.Wrap(err, "comment")
	}
	return []ast.Block{ast.Comment{Content: blocks}}, true, nil
}

// codeDirectives keep their body verbatim.
var codeDirectives = map[string]bool{
	"code-block": true,
	"code":       true,
}

// directive reads ".. name:: argument" and the body indented four columns
// past the opener.
func (p *parser) directive(c *cursor) ([]ast.Block, bool, error) {
	l, err := c.current()
	if err != nil {
		return nil, false, err
	}
	rest, ok := explicitMarkup(l.text)
	if !ok {
		return nil, false, nil
	}
	sep := strings.Index(rest, "::")
	if sep < 0 {
		return nil, false, nil
	}
	name := strings.TrimSpace(rest[:sep])
	if name == "" {
		return nil, false, nil
	}
	arg := strings.TrimSpace(rest[sep+2:])
	c.next()
	skipOneBlank(c)

	base := leadingIndent(l.text)
	k := collector{minIndent: base + 4, stripTo: base + 4}
	text := k.collect(c, "")

	d := ast.Directive{Name: name, Argument: arg}
	switch {
	case strings.TrimSpace(text) == "":
	case codeDirectives[name]:
		d.Content = []ast.Block{ast.LiteralBlock{Text: trimRight(text)}}
	default:
		blocks, err := p.nested(text)
		if err != nil {
			return nil, false, errors.Wrapf(err, "directive %q", name)
		}
		d.Content = blocks
	}
	return []ast.Block{d}, true, nil
}

func skipOneBlank(c *cursor) {
	if l, ok := c.peek(); ok && isBlank(l.text) {
		c.next()
	}
}
