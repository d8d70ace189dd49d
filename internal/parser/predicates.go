package parser

import (
	"strings"
	"unicode"

	"docmark/internal/ast"
)

// The predicates below overlap on purpose; only the dispatch order in
// parseBlocks makes them unambiguous.

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// leadingIndent counts leading whitespace characters; a tab counts as one.
func leadingIndent(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// stripIndent removes up to width columns of leading indentation, counting a
// tab as four columns and a space as one. It stops at the first other character.
func stripIndent(s string, width int) string {
	removed := 0
	i := 0
	for i < len(s) && removed < width {
		switch s[i] {
		case ' ':
			removed++
		case '\t':
			removed += 4
		default:
			return s[i:]
		}
		i++
	}
	return s[i:]
}

// listKind reports whether s opens a list item and of which kind.
func listKind(s string) (ast.ListKind, bool) {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	if strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") || strings.HasPrefix(t, "+ ") {
		return ast.Unordered, true
	}
	digits := 0
	for digits < len(t) && t[digits] >= '0' && t[digits] <= '9' {
		digits++
	}
	if digits > 0 && strings.HasPrefix(t[digits:], ". ") {
		return ast.Ordered, true
	}
	return ast.Unordered, false
}

// stripListMarker returns the item text after its marker.
func stripListMarker(s string, kind ast.ListKind) string {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	if kind == ast.Unordered {
		return t[2:]
	}
	dot := strings.Index(t, ". ")
	return t[dot+2:]
}

func isFence(s string) bool {
	return strings.TrimSpace(s) == "```"
}

func isQuote(s string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(s, unicode.IsSpace), ">")
}

// startsNewBlock ends a paragraph.
func startsNewBlock(s string) bool {
	if isBlank(s) || isFence(s) || isQuote(s) {
		return true
	}
	_, ok := listKind(s)
	return ok
}

// isSimpleSeparator matches a simple-table rule such as "====  =====".
func isSimpleSeparator(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	return strings.Trim(t, "= ") == ""
}

// isGridBorder matches a grid-table border such as "+----+====+".
func isGridBorder(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "+") && strings.Trim(t, "+-= ") == ""
}

func isGridRow(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "|")
}

// explicitMarkup returns the text after a ".. " opener.
func explicitMarkup(s string) (string, bool) {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	if !strings.HasPrefix(t, ".. ") {
		return "", false
	}
	return t[3:], true
}

// isFieldLine matches ":label: body" with a non-empty label.
func isFieldLine(s string) bool {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	if !strings.HasPrefix(t, ":") {
		return false
	}
	end := strings.Index(t[1:], ":")
	return end >= 0 && strings.TrimSpace(t[1:1+end]) != ""
}

// isDefinitionEntry matches a term line. At column zero it needs " : " so that
// prose with a bare colon stays prose; indented lines only need a colon.
func isDefinitionEntry(s string) bool {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	if t == "" || strings.HasPrefix(t, ":") || strings.HasPrefix(t, "..") {
		return false
	}
	if leadingIndent(s) == 0 {
		i := strings.Index(t, " : ")
		return i >= 0 && strings.TrimSpace(t[:i]) != ""
	}
	i := strings.Index(t, ":")
	return i >= 0 && strings.TrimSpace(t[:i]) != ""
}

// colonHeadingText returns the title of a "Section:" line, without checking
// what follows it.
func colonHeadingText(s string) (string, bool) {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "..") || !strings.HasSuffix(t, ":") || strings.HasSuffix(t, "::") {
		return "", false
	}
	title := strings.TrimSpace(strings.TrimSuffix(t, ":"))
	if title == "" {
		return "", false
	}
	for _, r := range title {
		if !isHeadingRune(r) {
			return "", false
		}
	}
	return title, true
}

func isHeadingRune(r rune) bool {
	return r < unicode.MaxASCII && (r == ' ' || r == '_' || r == '-' ||
		('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9'))
}

// underlineLevel maps "====" to 1 and "----" to 2.
func underlineLevel(s string) (int, bool) {
	t := strings.TrimSpace(s)
	switch {
	case t == "":
		return 0, false
	case strings.Trim(t, "=") == "":
		return 1, true
	case strings.Trim(t, "-") == "":
		return 2, true
	}
	return 0, false
}

func isLiteralMarker(s string) bool {
	return strings.TrimSpace(s) == "::"
}
