package ast

import "strings"

// Walk visits blocks depth-first in document order. Nested block sequences
// (quote, directive, comment and field bodies) are visited after their parent.
// Returning false from fn skips the children of that block.
func Walk(blocks []Block, fn func(Block) bool) {
	for _, b := range blocks {
		if !fn(b) {
			continue
		}
		switch v := b.(type) {
		case Quote:
			Walk(v.Blocks, fn)
		case Directive:
			Walk(v.Content, fn)
		case Comment:
			Walk(v.Content, fn)
		case FieldList:
			for _, f := range v.Fields {
				Walk(f.Body, fn)
			}
		}
	}
}

// CountByTag returns how many blocks of each tag the tree holds, nested ones included.
func CountByTag(blocks []Block) map[string]int {
	counts := make(map[string]int)
	Walk(blocks, func(b Block) bool {
		counts[b.Tag()]++
		return true
	})
	return counts
}

// InlineText flattens inlines to their visible text.
func InlineText(inlines []Inline) string {
	var sb strings.Builder
	writeInlineText(&sb, inlines)
	return sb.String()
}

func writeInlineText(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case Text:
			sb.WriteString(v.Value)
		case Code:
			sb.WriteString(v.Value)
		case Emphasis:
			writeInlineText(sb, v.Children)
		case Strong:
			writeInlineText(sb, v.Children)
		case Link:
			writeInlineText(sb, v.Children)
		}
	}
}

// PlainText flattens a tree to text, one line per paragraph-like unit.
// Comments are skipped.
func PlainText(blocks []Block) string {
	var lines []string
	Walk(blocks, func(b Block) bool {
		switch v := b.(type) {
		case Heading:
			lines = append(lines, InlineText(v.Inlines))
		case Paragraph:
			lines = append(lines, InlineText(v.Inlines))
		case List:
			for _, item := range v.Items {
				lines = append(lines, InlineText(item))
			}
		case CodeBlock:
			lines = append(lines, v.Text)
		case LiteralBlock:
			lines = append(lines, v.Text)
		case FieldList:
			for _, f := range v.Fields {
				lines = append(lines, PlainText(PrependLabel(FieldLabel(f), f.Body)))
			}
			return false
		case Table:
			if len(v.Headers) > 0 {
				lines = append(lines, joinCells(v.Headers))
			}
			for _, row := range v.Rows {
				lines = append(lines, joinCells(row))
			}
		case Comment:
			return false
		}
		return true
	})
	return strings.Join(lines, "\n")
}

func joinCells(cells [][]Inline) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = InlineText(c)
	}
	return strings.Join(parts, "\t")
}
