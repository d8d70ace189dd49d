// Package parser turns loosely structured docstring text into an ast tree.
//
// The input mixes conventions: Sphinx field lists, NumPy definition blocks,
// Google argument sections, directives, tables, quotes and code fences. Block
// recognizers are tried in a fixed priority order and the first that matches
// wins. Quotes, directive and comment bodies, and field and definition bodies
// are parsed again as documents of their own.
package parser

import (
	"strings"

	"github.com/pkg/errors"

	"docmark/internal/ast"
)

// Option configures a parse.
type Option func(*parser)

// WithMaxDepth bounds how deeply nested bodies may be re-parsed. Zero, the
// default, means unbounded.
func WithMaxDepth(n int) Option {
	return func(p *parser) {
		p.maxDepth = n
	}
}

type parser struct {
	maxDepth int
	depth    int
}

// Parse converts text into blocks. Malformed markup degrades to plain text or
// paragraphs; errors only come from nested bodies.
func Parse(input string, opts ...Option) ([]ast.Block, error) {
	p := &parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p.parse(input)
}

// ParseInlines parses inline markup in text. It never fails.
func ParseInlines(text string) []ast.Inline {
	return parseInlines(text)
}

func (p *parser) parse(input string) ([]ast.Block, error) {
	return p.parseBlocks(newCursor(input))
}

// nested parses extracted body text one level deeper.
func (p *parser) nested(text string) ([]ast.Block, error) {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return nil, ErrNestingTooDeep
	}
	p.depth++
	defer func() { p.depth-- }()
	return p.parse(text)
}

// recognizer tries to read one construct at the cursor. It returns false,
// with the cursor where it found it, when the construct is not there.
type recognizer func(c *cursor) ([]ast.Block, bool, error)

func (p *parser) recognizers() []recognizer {
	return []recognizer{
		one(p.codeFence),
		p.quote,
		one(p.list),
		p.gridTable,
		p.simpleTable,
		p.comment,
		p.directive,
		p.fieldList,
		p.definitionList,
		p.colonHeading,
		p.setextHeading,
		p.literalBlock,
	}
}

// one adapts a recognizer that cannot fail.
func one(f func(c *cursor) (ast.Block, bool)) recognizer {
	return func(c *cursor) ([]ast.Block, bool, error) {
		b, ok := f(c)
		if !ok {
			return nil, false, nil
		}
		return []ast.Block{b}, true, nil
	}
}

func (p *parser) parseBlocks(c *cursor) ([]ast.Block, error) {
	var blocks []ast.Block
	recognizers := p.recognizers()
	for {
		c.skipBlank()
		if c.isEOF() {
			return blocks, nil
		}
		at, _ := c.peek()
		matched := false
		for _, recognize := range recognizers {
			out, ok, err := recognize(c)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", at.num)
			}
			if ok {
				blocks = append(blocks, out...)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		start := c.pos
		if b, ok := p.paragraph(c); ok {
			blocks = append(blocks, b)
		}
		if c.pos == start {
			c.next()
		}
	}
}

// paragraph takes lines up to the next blank line, list item, fence or quote.
func (p *parser) paragraph(c *cursor) (ast.Block, bool) {
	var text []string
	for {
		l, ok := c.peek()
		if !ok || startsNewBlock(l.text) {
			break
		}
		c.next()
		text = append(text, l.text)
	}
	joined := trimRight(strings.Join(text, "\n"))
	if joined == "" {
		return nil, false
	}
	return ast.Paragraph{Inlines: parseInlines(joined)}, true
}
