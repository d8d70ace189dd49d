package parser

import "strings"

// line is one raw input line and its 1-based position.
type line struct {
	num  int
	text string
}

// cursor walks an immutable slice of lines. Recognizers that take lines and
// then reject must give every one of them back with backtrack.
type cursor struct {
	lines []line
	pos   int
}

func newCursor(input string) *cursor {
	raw := strings.Split(input, "\n")
	if n := len(raw); n > 0 && raw[n-1] == "" {
		raw = raw[:n-1]
	}
	lines := make([]line, len(raw))
	for i, r := range raw {
		lines[i] = line{num: i + 1, text: strings.TrimSuffix(r, "\r")}
	}
	return &cursor{lines: lines}
}

func (c *cursor) peek() (line, bool) {
	if c.pos >= len(c.lines) {
		return line{}, false
	}
	return c.lines[c.pos], true
}

func (c *cursor) peekNext() (line, bool) {
	if c.pos+1 >= len(c.lines) {
		return line{}, false
	}
	return c.lines[c.pos+1], true
}

func (c *cursor) next() (line, bool) {
	l, ok := c.peek()
	if ok {
		c.pos++
	}
	return l, ok
}

func (c *cursor) backtrack() {
	if c.pos > 0 {
		c.pos--
	}
}

// rewind gives back n consumed lines.
func (c *cursor) rewind(n int) {
	for i := 0; i < n; i++ {
		c.backtrack()
	}
}

func (c *cursor) isEOF() bool {
	return c.pos >= len(c.lines)
}

// skipBlank advances past blank lines.
func (c *cursor) skipBlank() {
	for {
		l, ok := c.peek()
		if !ok || !isBlank(l.text) {
			return
		}
		c.pos++
	}
}

// current returns the line under the cursor or ErrUnexpectedEOF.
func (c *cursor) current() (line, error) {
	l, ok := c.peek()
	if !ok {
		return line{}, ErrUnexpectedEOF
	}
	return l, nil
}
