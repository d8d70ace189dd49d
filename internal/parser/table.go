package parser

import (
	"strings"
	"unicode"

	"docmark/internal/ast"
)

type span struct{ start, end int }

// simpleTable reads
//
//	=====  =====
//	head   head
//	=====  =====
//	cell   cell
//	=====  =====
//
// Column spans come from the runs of '=' on the first rule.
func (p *parser) simpleTable(c *cursor) ([]ast.Block, bool, error) {
	rule, ok := c.peek()
	if !ok || !isSimpleSeparator(rule.text) {
		return nil, false, nil
	}
	cols := columnSpans(rule.text)
	if len(cols) == 0 {
		return nil, false, nil
	}
	c.next()

	header, ok := c.peek()
	if !ok || isSimpleSeparator(header.text) {
		c.rewind(1)
		return nil, false, nil
	}
	c.next()
	if l, ok := c.peek(); !ok || !isSimpleSeparator(l.text) {
		c.rewind(2)
		return nil, false, nil
	}
	c.next()

	table := ast.Table{Headers: inlineCells(sliceCells(header.text, cols))}
	for {
		l, ok := c.next()
		if !ok || isSimpleSeparator(l.text) {
			break
		}
		table.Rows = append(table.Rows, inlineCells(sliceCells(l.text, cols)))
	}
	return []ast.Block{table}, true, nil
}

func columnSpans(rule string) []span {
	var cols []span
	start := -1
	for i := 0; i < len(rule); i++ {
		switch {
		case rule[i] == '=' && start < 0:
			start = i
		case rule[i] != '=' && start >= 0:
			cols = append(cols, span{start, i})
			start = -1
		}
	}
	if start >= 0 {
		cols = append(cols, span{start, len(rule)})
	}
	return cols
}

func sliceCells(row string, cols []span) []string {
	cells := make([]string, len(cols))
	for i, col := range cols {
		if col.start >= len(row) {
			continue
		}
		cells[i] = strings.TrimSpace(row[col.start:min(col.end, len(row))])
	}
	return cells
}

func inlineCells(cells []string) [][]ast.Inline {
	out := make([][]ast.Inline, len(cells))
	for i, cell := range cells {
		out[i] = parseInlines(cell)
	}
	return out
}

// gridTable reads
//
//	+------+------+
//	| head | head |
//	+======+======+
//	| cell | cell |
//	|      | more |
//	+------+------+
//
// Column edges are the '+' offsets of the first border. Lines between two
// borders form one row and are merged per column.
func (p *parser) gridTable(c *cursor) ([]ast.Block, bool, error) {
	border, ok := c.peek()
	if !ok || !isGridBorder(border.text) {
		return nil, false, nil
	}
	edges := gridEdges(border.text)
	if len(edges) < 2 {
		return nil, false, nil
	}
	start := c.pos
	c.next()

	var (
		rows       [][]string
		pending    []string
		headerRows = -1
	)
	for {
		l, ok := c.peek()
		if !ok {
			break
		}
		if isGridBorder(l.text) {
			if len(pending) > 0 {
				rows = append(rows, mergeGridRow(pending, edges))
				pending = nil
			}
			if headerRows < 0 && strings.Contains(l.text, "=") {
				headerRows = len(rows)
			}
			c.next()
			if next, ok := c.peek(); !ok || (!isGridBorder(next.text) && !isGridRow(next.text)) {
				break
			}
			continue
		}
		if !isGridRow(l.text) {
			break
		}
		c.next()
		pending = append(pending, l.text)
	}
	if len(pending) > 0 {
		rows = append(rows, mergeGridRow(pending, edges))
	}
	if len(rows) == 0 {
		c.rewind(c.pos - start)
		return nil, false, nil
	}

	var table ast.Table
	if headerRows > 0 {
		table.Headers = inlineCells(rows[0])
		rows = rows[1:]
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, inlineCells(row))
	}
	return []ast.Block{table}, true, nil
}

func gridEdges(border string) []int {
	var edges []int
	for i := 0; i < len(border); i++ {
		if border[i] == '+' {
			edges = append(edges, i)
		}
	}
	return edges
}

// mergeGridRow joins the non-empty fragments of each column with a space.
func mergeGridRow(lines []string, edges []int) []string {
	cells := make([]string, len(edges)-1)
	for _, l := range lines {
		for i := range cells {
			start, end := edges[i], edges[i+1]
			if start >= len(l) {
				continue
			}
			frag := strings.TrimFunc(l[start:min(end, len(l))], func(r rune) bool {
				return r == '|' || unicode.IsSpace(r)
			})
			if frag == "" {
				continue
			}
			if cells[i] != "" {
				cells[i] += " "
			}
			cells[i] += frag
		}
	}
	return cells
}
