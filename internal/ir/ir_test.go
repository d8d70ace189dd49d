package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmark/internal/ast"
	"docmark/internal/parser"
)

func text(s string) ast.Inline { return ast.Text{Value: s} }

// everyVariant holds one of each block and inline.
func everyVariant() []ast.Block {
	return []ast.Block{
		ast.Heading{Level: 1, Inlines: []ast.Inline{text("Title")}},
		ast.Paragraph{Inlines: []ast.Inline{
			text("a "),
			ast.Emphasis{Children: []ast.Inline{text("b")}},
			ast.Strong{Children: []ast.Inline{text("c")}},
			ast.Code{Value: "d"},
			ast.Link{Children: []ast.Inline{text("e")}, URL: "http://x.io"},
		}},
		ast.List{Kind: ast.Ordered, Items: [][]ast.Inline{{text("one")}, {text("two")}}},
		ast.List{Kind: ast.Unordered, Items: [][]ast.Inline{{text("dot")}}},
		ast.CodeBlock{Text: "fn main() {}"},
		ast.Quote{Blocks: []ast.Block{ast.Paragraph{Inlines: []ast.Inline{text("q")}}}},
		ast.LiteralBlock{Text: "  x = 1"},
		ast.Directive{Name: "note", Content: []ast.Block{ast.Paragraph{Inlines: []ast.Inline{text("n")}}}},
		ast.Directive{Name: "image", Argument: "/a.png"},
		ast.Comment{Content: []ast.Block{ast.Paragraph{Inlines: []ast.Inline{text("hidden")}}}},
		ast.FieldList{Fields: []ast.Field{
			{Name: "param", Argument: "x", Body: []ast.Block{ast.Paragraph{Inlines: []ast.Inline{text("The x")}}}},
			{Name: "returns"},
		}},
		ast.Table{
			Headers: [][]ast.Inline{{text("h1")}, {text("h2")}},
			Rows:    [][][]ast.Inline{{{text("a")}, {text("b")}}, {{text("c")}}},
		},
	}
}

func TestEncodeJSON_Shape(t *testing.T) {
	doc := New("pkg/mod.py:f:3", []ast.Block{ast.Paragraph{Inlines: []ast.Inline{text("hi")}}})
	b, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"schema_version":"1","source":"pkg/mod.py:f:3","blocks":[{"t":"Paragraph","c":[{"t":"Text","c":"hi"}]}]}`,
		string(b))

	b, err = New("", []ast.Block{ast.Heading{Level: 2, Inlines: []ast.Inline{text("Args")}}}).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"schema_version":"1","blocks":[{"t":"Heading","c":{"inlines":[{"t":"Text","c":"Args"}],"level":2}}]}`, string(b))
}

func TestRoundTrip(t *testing.T) {
	docs := map[string][]ast.Block{
		"every variant": everyVariant(),
		"empty":         nil,
	}
	parsed, err := parser.Parse("Title\n=====\n\n:param x: value\n\n.. note::\n\n    > quoted *text*\n\n====  ====\nA     B\n====  ====\n1     2\n====  ====\n")
	require.NoError(t, err)
	docs["parsed"] = parsed

	for name, blocks := range docs {
		t.Run(name+"/json", func(t *testing.T) {
			data, err := EncodeJSON(New("src", blocks))
			require.NoError(t, err)
			require.NoError(t, Validate(data))

			got, err := DecodeJSON(data)
			require.NoError(t, err)
			assert.Equal(t, SchemaVersion, got.SchemaVersion)
			assert.Equal(t, "src", got.Source)
			if diff := cmp.Diff(blocks, got.Blocks, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("json round trip mismatch (-want +got):\n%s", diff)
			}
		})
		t.Run(name+"/yaml", func(t *testing.T) {
			data, err := EncodeYAML(New("src", blocks))
			require.NoError(t, err)

			got, err := DecodeYAML(data)
			require.NoError(t, err)
			if diff := cmp.Diff(blocks, got.Blocks, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeYAML_Shape(t *testing.T) {
	data, err := EncodeYAML(New("", []ast.Block{ast.CodeBlock{Text: "x"}}))
	require.NoError(t, err)
	assert.Contains(t, string(data), "schema_version: \"1\"")
	assert.Contains(t, string(data), "t: CodeBlock")
	assert.Contains(t, string(data), "c: x")
}

func TestValidate(t *testing.T) {
	require.NoError(t, ValidateDocument(New("x", everyVariant())))

	tests := []struct {
		name string
		in   string
	}{
		{"not json", `{`},
		{"missing blocks", `{"schema_version":"1"}`},
		{"wrong version", `{"schema_version":"2","blocks":[]}`},
		{"unknown block", `{"schema_version":"1","blocks":[{"t":"Bogus","c":1}]}`},
		{"paragraph content", `{"schema_version":"1","blocks":[{"t":"Paragraph","c":"text"}]}`},
		{"heading level", `{"schema_version":"1","blocks":[{"t":"Heading","c":{"level":0,"inlines":[]}}]}`},
		{"list kind", `{"schema_version":"1","blocks":[{"t":"List","c":{"kind":"dotted","items":[]}}]}`},
		{"inline tag", `{"schema_version":"1","blocks":[{"t":"Paragraph","c":[{"t":"Bold","c":"x"}]}]}`},
		{"extra key", `{"schema_version":"1","blocks":[],"extra":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate([]byte(tt.in)))
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unknown block", `{"schema_version":"1","blocks":[{"t":"Bogus","c":1}]}`, `blocks[0].Bogus: unknown block tag "Bogus"`},
		{"missing tag", `{"schema_version":"1","blocks":[{"c":1}]}`, "blocks[0]: missing tag"},
		{"nested inline", `{"schema_version":"1","blocks":[{"t":"Quote","c":[{"t":"Paragraph","c":[{"t":"Text","c":3}]}]}]}`, "blocks[0].Quote[0].Paragraph[0].Text: expected string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSchemaIsCopied(t *testing.T) {
	s := Schema()
	s[0] = 'x'
	assert.Equal(t, byte('{'), Schema()[0])
}
