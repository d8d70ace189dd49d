package parser

import (
	"strings"
	"unicode/utf8"

	"docmark/internal/ast"
)

// inlineParser scans one span of text left to right. At each position it
// tries ``code``, **strong**, *emphasis*, then `code` or `label <url>`_.
// A delimiter without a usable closer is kept as text.
type inlineParser struct {
	s   string
	i   int
	buf strings.Builder
	out []ast.Inline
}

func parseInlines(s string) []ast.Inline {
	p := &inlineParser{s: s}
	for p.i < len(p.s) {
		if p.doubleBacktick() || p.strong() || p.emphasis() || p.backtick() {
			continue
		}
		r, size := utf8.DecodeRuneInString(p.s[p.i:])
		p.buf.WriteRune(r)
		p.i += size
	}
	p.flush()
	return p.out
}

func (p *inlineParser) flush() {
	if p.buf.Len() > 0 {
		p.out = append(p.out, ast.Text{Value: p.buf.String()})
		p.buf.Reset()
	}
}

func (p *inlineParser) emit(in ast.Inline, next int) bool {
	p.flush()
	p.out = append(p.out, in)
	p.i = next
	return true
}

func (p *inlineParser) at(prefix string) bool {
	return strings.HasPrefix(p.s[p.i:], prefix)
}

func (p *inlineParser) doubleBacktick() bool {
	if !p.at("``") {
		return false
	}
	start := p.i + 2
	end := strings.Index(p.s[start:], "``")
	if end < 0 {
		return false
	}
	return p.emit(ast.Code{Value: p.s[start : start+end]}, start+end+2)
}

func (p *inlineParser) strong() bool {
	if !p.at("**") {
		return false
	}
	start := p.i + 2
	end := strings.Index(p.s[start:], "**")
	if end <= 0 {
		return false
	}
	return p.emit(ast.Strong{Children: parseInlines(p.s[start : start+end])}, start+end+2)
}

func (p *inlineParser) emphasis() bool {
	if !p.at("*") {
		return false
	}
	start := p.i + 1
	end := singleAsterisk(p.s[start:])
	if end <= 0 {
		return false
	}
	return p.emit(ast.Emphasis{Children: parseInlines(p.s[start : start+end])}, start+end+1)
}

// singleAsterisk finds a '*' with no '*' on either side, or -1.
func singleAsterisk(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '*' {
			continue
		}
		before := i > 0 && s[i-1] == '*'
		after := i+1 < len(s) && s[i+1] == '*'
		if !before && !after {
			return i
		}
	}
	return -1
}

func (p *inlineParser) backtick() bool {
	if !p.at("`") {
		return false
	}
	start := p.i + 1
	end := strings.IndexByte(p.s[start:], '`')
	if end < 0 {
		return false
	}
	closing := start + end
	inner := p.s[start:closing]
	if closing+1 < len(p.s) && p.s[closing+1] == '_' {
		if link, ok := parseLink(inner); ok {
			return p.emit(link, closing+2)
		}
	}
	return p.emit(ast.Code{Value: inner}, closing+1)
}

// parseLink reads "label <url>" with both parts non-empty.
func parseLink(inner string) (ast.Link, bool) {
	l := strings.IndexByte(inner, '<')
	r := strings.LastIndexByte(inner, '>')
	if l < 0 || r <= l {
		return ast.Link{}, false
	}
	label := strings.TrimSpace(inner[:l])
	url := strings.TrimSpace(inner[l+1 : r])
	if label == "" || url == "" {
		return ast.Link{}, false
	}
	return ast.Link{Children: parseInlines(label), URL: url}, true
}
