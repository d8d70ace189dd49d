package ir

import (
	"fmt"
	"strconv"

	"docmark/internal/ast"
)

// DecodeBlocks rebuilds blocks from generic values, as produced by
// unmarshaling JSON or YAML into any.
func DecodeBlocks(v any) ([]ast.Block, error) {
	return decodeBlocks(v, "blocks")
}

func decodeBlocks(v any, path string) ([]ast.Block, error) {
	items, err := asList(v, path)
	if err != nil {
		return nil, err
	}
	var out []ast.Block
	for i, item := range items {
		b, err := decodeBlock(item, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeBlock(v any, path string) (ast.Block, error) {
	tag, c, err := asNode(v, path)
	if err != nil {
		return nil, err
	}
	path += "." + tag
	switch tag {
	case "Heading":
		m, err := asMap(c, path)
		if err != nil {
			return nil, err
		}
		level, err := asInt(m["level"], path+".level")
		if err != nil {
			return nil, err
		}
		inlines, err := decodeInlines(m["inlines"], path+".inlines")
		if err != nil {
			return nil, err
		}
		return ast.Heading{Level: level, Inlines: inlines}, nil
	case "Paragraph":
		inlines, err := decodeInlines(c, path)
		if err != nil {
			return nil, err
		}
		return ast.Paragraph{Inlines: inlines}, nil
	case "List":
		m, err := asMap(c, path)
		if err != nil {
			return nil, err
		}
		list := ast.List{Kind: ast.Unordered}
		switch m["kind"] {
		case "ordered":
			list.Kind = ast.Ordered
		case "unordered":
		default:
			return nil, fmt.Errorf("%s.kind: unknown list kind %v", path, m["kind"])
		}
		items, err := asList(m["items"], path+".items")
		if err != nil {
			return nil, err
		}
		for i, item := range items {
			inlines, err := decodeInlines(item, fmt.Sprintf("%s.items[%d]", path, i))
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, inlines)
		}
		return list, nil
	case "CodeBlock":
		s, err := asString(c, path)
		return ast.CodeBlock{Text: s}, err
	case "LiteralBlock":
		s, err := asString(c, path)
		return ast.LiteralBlock{Text: s}, err
	case "Quote":
		blocks, err := decodeBlocks(c, path)
		return ast.Quote{Blocks: blocks}, err
	case "Comment":
		blocks, err := decodeBlocks(c, path)
		return ast.Comment{Content: blocks}, err
	case "Directive":
		m, err := asMap(c, path)
		if err != nil {
			return nil, err
		}
		name, err := asString(m["name"], path+".name")
		if err != nil {
			return nil, err
		}
		arg, err := optString(m["argument"], path+".argument")
		if err != nil {
			return nil, err
		}
		content, err := decodeBlocks(m["content"], path+".content")
		if err != nil {
			return nil, err
		}
		return ast.Directive{Name: name, Argument: arg, Content: content}, nil
	case "FieldList":
		items, err := asList(c, path)
		if err != nil {
			return nil, err
		}
		var list ast.FieldList
		for i, item := range items {
			f, err := decodeField(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			list.Fields = append(list.Fields, f)
		}
		return list, nil
	case "Table":
		return decodeTable(c, path)
	default:
		return nil, fmt.Errorf("%s: unknown block tag %q", path, tag)
	}
}

func decodeField(v any, path string) (ast.Field, error) {
	m, err := asMap(v, path)
	if err != nil {
		return ast.Field{}, err
	}
	name, err := asString(m["name"], path+".name")
	if err != nil {
		return ast.Field{}, err
	}
	arg, err := optString(m["argument"], path+".argument")
	if err != nil {
		return ast.Field{}, err
	}
	body, err := decodeBlocks(m["body"], path+".body")
	if err != nil {
		return ast.Field{}, err
	}
	return ast.Field{Name: name, Argument: arg, Body: body}, nil
}

func decodeTable(v any, path string) (ast.Block, error) {
	m, err := asMap(v, path)
	if err != nil {
		return nil, err
	}
	var t ast.Table
	headers, err := asList(m["headers"], path+".headers")
	if err != nil {
		return nil, err
	}
	for i, cell := range headers {
		inlines, err := decodeInlines(cell, fmt.Sprintf("%s.headers[%d]", path, i))
		if err != nil {
			return nil, err
		}
		t.Headers = append(t.Headers, inlines)
	}
	rows, err := asList(m["rows"], path+".rows")
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		cells, err := asList(row, fmt.Sprintf("%s.rows[%d]", path, i))
		if err != nil {
			return nil, err
		}
		var decoded [][]ast.Inline
		for j, cell := range cells {
			inlines, err := decodeInlines(cell, fmt.Sprintf("%s.rows[%d][%d]", path, i, j))
			if err != nil {
				return nil, err
			}
			decoded = append(decoded, inlines)
		}
		t.Rows = append(t.Rows, decoded)
	}
	return t, nil
}

func decodeInlines(v any, path string) ([]ast.Inline, error) {
	items, err := asList(v, path)
	if err != nil {
		return nil, err
	}
	var out []ast.Inline
	for i, item := range items {
		p := path + "[" + strconv.Itoa(i) + "]"
		tag, c, err := asNode(item, p)
		if err != nil {
			return nil, err
		}
		p += "." + tag
		var in ast.Inline
		switch tag {
		case "Text":
			s, err := asString(c, p)
			if err != nil {
				return nil, err
			}
			in = ast.Text{Value: s}
		case "Code":
			s, err := asString(c, p)
			if err != nil {
				return nil, err
			}
			in = ast.Code{Value: s}
		case "Emphasis", "Strong":
			children, err := decodeInlines(c, p)
			if err != nil {
				return nil, err
			}
			if tag == "Strong" {
				in = ast.Strong{Children: children}
			} else {
				in = ast.Emphasis{Children: children}
			}
		case "Link":
			m, err := asMap(c, p)
			if err != nil {
				return nil, err
			}
			url, err := asString(m["url"], p+".url")
			if err != nil {
				return nil, err
			}
			children, err := decodeInlines(m["inlines"], p+".inlines")
			if err != nil {
				return nil, err
			}
			in = ast.Link{Children: children, URL: url}
		default:
			return nil, fmt.Errorf("%s: unknown inline tag %q", p, tag)
		}
		out = append(out, in)
	}
	return out, nil
}

func asNode(v any, path string) (string, any, error) {
	m, err := asMap(v, path)
	if err != nil {
		return "", nil, err
	}
	tag, ok := m["t"].(string)
	if !ok {
		return "", nil, fmt.Errorf("%s: missing tag", path)
	}
	return tag, m["c"], nil
}

func asMap(v any, path string) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected object, got %T", path, v)
	}
	return m, nil
}

// asList accepts a missing value as an empty list.
func asList(v any, path string) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected array, got %T", path, v)
	}
	return l, nil
}

func asString(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", path, v)
	}
	return s, nil
}

func optString(v any, path string) (string, error) {
	if v == nil {
		return "", nil
	}
	return asString(v, path)
}

// asInt accepts JSON numbers (float64) and YAML integers.
func asInt(v any, path string) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%s: expected integer, got %v", path, v)
}
