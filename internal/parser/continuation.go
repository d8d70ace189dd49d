package parser

import (
	"strings"
	"unicode"
)

// collector gathers the indented lines that belong to an entry, a directive,
// a comment or a literal block into one text.
type collector struct {
	// minIndent is the indentation a content line needs to stay in the body.
	minIndent int
	// stripTo is how much indentation is removed from each kept line.
	stripTo int
	// strictBlank ends the body at a blank line unless the very next line is
	// indented to minIndent. Otherwise only a non-blank shallower line does.
	strictBlank bool
	// stopAtOpeners ends the body at lines that open a sibling construct.
	stopAtOpeners bool
	trimRight     bool
}

// entryCollector serves field and definition bodies opened at indent base.
func entryCollector(base int) collector {
	return collector{
		minIndent:     base + 1,
		stripTo:       base + 4,
		strictBlank:   true,
		stopAtOpeners: true,
		trimRight:     true,
	}
}

func (k collector) blankEnds(after line, ok bool) bool {
	if k.strictBlank {
		return !ok || leadingIndent(after.text) < k.minIndent
	}
	return ok && !isBlank(after.text) && leadingIndent(after.text) < k.minIndent
}

func isSiblingOpener(s string) bool {
	if isFieldLine(s) || isDefinitionEntry(s) || isFence(s) || isQuote(s) {
		return true
	}
	_, ok := listKind(s)
	return ok
}

// collect consumes body lines and returns them newline-joined. A non-empty
// first is the body's first line. Blank lines inside the body are kept as
// empty lines once the body has content.
func (k collector) collect(c *cursor, first string) string {
	var body []string
	if first != "" {
		body = append(body, first)
	}
	for {
		l, ok := c.peek()
		if !ok {
			break
		}
		if isBlank(l.text) {
			after, afterOK := c.peekNext()
			if k.blankEnds(after, afterOK) {
				break
			}
			c.next()
			if len(body) > 0 {
				body = append(body, "")
			}
			continue
		}
		if k.stopAtOpeners && isSiblingOpener(l.text) {
			break
		}
		if leadingIndent(l.text) < k.minIndent {
			break
		}
		c.next()
		text := stripIndent(l.text, k.stripTo)
		if k.trimRight {
			text = trimRight(text)
		}
		body = append(body, text)
	}
	return strings.Join(body, "\n")
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
