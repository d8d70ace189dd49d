package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
)

// minUnderline is the shortest setext underline written for h1 and h2.
const minUnderline = 10

// FromHTML converts renderer HTML into Markdown. Blocks are separated by a
// blank line; whitespace outside code blocks is collapsed.
func FromHTML(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}
	return strings.TrimSpace(strings.Join(blocks(doc.Find("body")), "\n\n")), nil
}

func blocks(sel *goquery.Selection) []string {
	return blocksOf(sel.Contents())
}

// blocksOf converts a run of sibling nodes. Consecutive inline nodes are
// gathered into one paragraph.
func blocksOf(nodes *goquery.Selection) []string {
	var out []string
	var run strings.Builder
	flush := func() {
		if p := collapse(run.String()); p != "" {
			out = append(out, p)
		}
		run.Reset()
	}
	nodes.Each(func(_ int, s *goquery.Selection) {
		if isInline(s.Get(0)) {
			run.WriteString(inline(s))
			return
		}
		flush()
		if b := block(s); b != "" {
			out = append(out, b)
		}
	})
	flush()
	return out
}

func isInline(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		switch n.Data {
		case "a", "em", "i", "strong", "b", "code", "img", "span", "br":
			return true
		}
	}
	return false
}

func block(s *goquery.Selection) string {
	switch name := goquery.NodeName(s); name {
	case "h1", "h2":
		text := collapse(inlines(s))
		mark := "="
		if name == "h2" {
			mark = "-"
		}
		return text + "\n" + strings.Repeat(mark, max(runewidth.StringWidth(text), minUnderline))
	case "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(name[1:])
		return strings.Repeat("#", level) + " " + collapse(inlines(s))
	case "p":
		return collapse(inlines(s))
	case "ul", "ol":
		return list(s, name == "ol")
	case "pre":
		return fence(s)
	case "blockquote":
		return quote(blocks(s))
	case "div":
		if s.HasClass("admonition") {
			title := collapse(s.ChildrenFiltered(".admonition-title").Text())
			parts := blocksOf(s.Contents().Not(".admonition-title"))
			if title != "" {
				parts = append([]string{"**" + title + "**"}, parts...)
			}
			return quote(parts)
		}
		return strings.Join(blocks(s), "\n\n")
	case "dl":
		return definitions(s)
	case "table":
		return table(s)
	case "hr":
		return "---"
	default:
		return strings.Join(blocks(s), "\n\n")
	}
}

func inlines(s *goquery.Selection) string {
	var sb strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		sb.WriteString(inline(c))
	})
	return sb.String()
}

func inline(s *goquery.Selection) string {
	n := s.Get(0)
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
	default:
		return ""
	}
	switch n.Data {
	case "strong", "b":
		return wrap("**", inlines(s))
	case "em", "i":
		return wrap("*", inlines(s))
	case "code":
		return codeSpan(s.Text())
	case "a":
		return "[" + inlines(s) + "](" + s.AttrOr("href", "") + ")"
	case "img":
		return "![" + s.AttrOr("alt", "") + "](" + s.AttrOr("src", "") + ")"
	case "br":
		return "\n"
	default:
		return inlines(s)
	}
}

func wrap(mark, inner string) string {
	if strings.TrimSpace(inner) == "" {
		return inner
	}
	return mark + inner + mark
}

func codeSpan(text string) string {
	ticks := "`"
	for strings.Contains(text, ticks) {
		ticks += "`"
	}
	if ticks != "`" {
		return ticks + " " + text + " " + ticks
	}
	return ticks + text + ticks
}

func list(s *goquery.Selection, ordered bool) string {
	var items []string
	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		marker := "* "
		if ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		body := strings.Join(blocks(li), "\n\n")
		items = append(items, marker+indentRest(body, len(marker)))
	})
	return strings.Join(items, "\n")
}

func fence(s *goquery.Selection) string {
	lang := ""
	if class, ok := s.Find("code").First().Attr("class"); ok {
		for _, c := range strings.Fields(class) {
			if l, found := strings.CutPrefix(c, "language-"); found {
				lang = l
				break
			}
		}
	}
	code := strings.TrimRight(s.Text(), "\n")
	marker := "```"
	for strings.Contains(code, marker) {
		marker += "`"
	}
	return marker + lang + "\n" + code + "\n" + marker
}

func quote(parts []string) string {
	lines := strings.Split(strings.Join(parts, "\n\n"), "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n")
}

// definitions writes each term in bold. A definition that opens with a
// paragraph continues the term's line.
func definitions(s *goquery.Selection) string {
	var out []string
	term := ""
	s.Children().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "dt":
			if term != "" {
				out = append(out, "**"+term+"**")
			}
			term = collapse(inlines(c))
		case "dd":
			body := blocks(c)
			switch {
			case term == "":
			case len(body) > 0 && c.Children().First().Is("p"):
				body[0] = "**" + term + "**: " + body[0]
			default:
				body = append([]string{"**" + term + "**"}, body...)
			}
			term = ""
			out = append(out, body...)
		}
	})
	if term != "" {
		out = append(out, "**"+term+"**")
	}
	return strings.Join(out, "\n\n")
}

// table writes a GFM table padded to the display width of each column. A
// table without a header gets an empty header row.
func table(s *goquery.Selection) string {
	var header []string
	var rows [][]string
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Children().Each(func(_ int, c *goquery.Selection) {
			cells = append(cells, strings.ReplaceAll(collapse(inlines(c)), "|", `\|`))
		})
		if header == nil && tr.ParentsFiltered("thead").Length() > 0 {
			header = cells
			return
		}
		rows = append(rows, cells)
	})

	cols := len(header)
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return ""
	}
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 3
	}
	measure := func(cells []string) {
		for i, c := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}

	row := func(cells []string) string {
		padded := make([]string, cols)
		for i := range padded {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			padded[i] = runewidth.FillRight(c, widths[i])
		}
		return "| " + strings.Join(padded, " | ") + " |"
	}
	rule := make([]string, cols)
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}

	out := []string{row(header), "| " + strings.Join(rule, " | ") + " |"}
	for _, r := range rows {
		out = append(out, row(r))
	}
	return strings.Join(out, "\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func indentRest(s string, n int) string {
	lines := strings.Split(s, "\n")
	pad := strings.Repeat(" ", n)
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
