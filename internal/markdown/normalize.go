package markdown

import (
	"strings"
	"unicode/utf8"
)

// Normalize prepares an indented docstring for parsing. Leading and trailing
// newlines are dropped, the smallest run of leading spaces shared by the
// non-blank lines is removed, and blank lines become empty.
func Normalize(doc string) string {
	trimmed := strings.Trim(doc, "\r\n")
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	minIndent := -1
	for i, l := range lines {
		l = strings.TrimSuffix(l, "\r")
		lines[i] = l
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " "))
		if minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		return trimmed
	}

	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = skipRunes(l, minIndent)
	}
	return strings.Join(lines, "\n")
}

func skipRunes(s string, n int) string {
	for ; n > 0 && s != ""; n-- {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}
