package parser

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"docmark/internal/ast"
)

// fieldList reads a run of ":name arg: body" entries.
func (p *parser) fieldList(c *cursor) ([]ast.Block, bool, error) {
	l, err := c.current()
	if err != nil {
		return nil, false, err
	}
	if !isFieldLine(l.text) {
		return nil, false, nil
	}
	var list ast.FieldList
	for {
		l, ok := c.peek()
		if !ok || !isFieldLine(l.text) {
			break
		}
		c.next()
		f, err := p.field(c, l)
		if err != nil {
			return nil, false, err
		}
		list.Fields = append(list.Fields, f)
	}
	return []ast.Block{list}, true, nil
}

func (p *parser) field(c *cursor, l line) (ast.Field, error) {
	t := strings.TrimLeftFunc(l.text, unicode.IsSpace)[1:]
	end := strings.Index(t, ":")
	name, arg, _ := strings.Cut(strings.TrimSpace(t[:end]), " ")
	f := ast.Field{Name: name, Argument: strings.TrimSpace(arg)}

	first := strings.TrimLeftFunc(t[end+1:], unicode.IsSpace)
	text := entryCollector(leadingIndent(l.text)).collect(c, first)
	if strings.TrimSpace(text) == "" {
		return f, nil
	}
	body, err := p.nested(text)
	if err != nil {
		return f, errors.Wrapf(err, "field %q", name)
	}
	f.Body = body
	return f, nil
}

// definitionList reads NumPy and Google style "term (type): body" entries.
// Each entry becomes its labeled body blocks; there is no list node.
func (p *parser) definitionList(c *cursor) ([]ast.Block, bool, error) {
	l, err := c.current()
	if err != nil {
		return nil, false, err
	}
	if !isDefinitionEntry(l.text) {
		return nil, false, nil
	}
	var blocks []ast.Block
	for {
		l, ok := c.peek()
		if !ok || !isDefinitionEntry(l.text) {
			break
		}
		c.next()
		term, classifier, first := splitDefinition(strings.TrimLeftFunc(l.text, unicode.IsSpace))
		text := entryCollector(leadingIndent(l.text)).collect(c, first)
		var body []ast.Block
		if strings.TrimSpace(text) != "" {
			body, err = p.nested(text)
			if err != nil {
				return nil, false, errors.Wrapf(err, "definition %q", term)
			}
		}
		blocks = append(blocks, ast.PrependLabel(ast.DefinitionLabel(term, classifier), body)...)
	}
	return blocks, true, nil
}

// splitDefinition splits a term line at its first colon. A trailing
// "(type)" on the term is the classifier. Otherwise " : text" reads as a
// classifier and ":text" as the first body line.
func splitDefinition(s string) (term, classifier, first string) {
	idx := strings.Index(s, ":")
	if idx < 0 {
		idx = len(s)
	}
	term = strings.TrimSpace(s[:idx])
	var after string
	if idx < len(s) {
		after = s[idx+1:]
	}
	spaced := idx > 0 && s[idx-1] == ' ' && strings.HasPrefix(after, " ")

	if strings.HasSuffix(term, ")") {
		if open := strings.LastIndex(term, "("); open >= 0 {
			if inner := strings.TrimSpace(term[open+1 : len(term)-1]); inner != "" {
				classifier = inner
				term = strings.TrimSpace(term[:open])
			}
		}
	}

	rest := strings.TrimSpace(after)
	switch {
	case spaced && rest != "" && classifier == "":
		classifier = rest
	case rest != "":
		first = rest
	}
	return term, classifier, first
}
