package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldDisplayName(t *testing.T) {
	tests := map[string]string{
		"param":    "Parameter",
		"ARG":      "Parameter",
		"returns":  "Returns",
		"rtype":    "Return Type",
		"ivar":     "Instance Variable",
		"seealso":  "See Also",
		"todo":     "Todo",
		"":         "Field",
		"  yield ": "Yields",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, FieldDisplayName(in))
		})
	}
}

func TestPrependLabel(t *testing.T) {
	label := DefinitionLabel("foo", "int")

	t.Run("empty body", func(t *testing.T) {
		out := PrependLabel(label, nil)
		require.Len(t, out, 1)
		assert.Equal(t, Paragraph{Inlines: label}, out[0])
	})

	t.Run("paragraph body merges", func(t *testing.T) {
		out := PrependLabel(label, []Block{Paragraph{Inlines: []Inline{Text{Value: "Foo value."}}}})
		require.Len(t, out, 1)
		p := out[0].(Paragraph)
		assert.Equal(t, "foo (int): Foo value.", InlineText(p.Inlines))
	})

	t.Run("list body gets label paragraph", func(t *testing.T) {
		list := List{Kind: Unordered, Items: [][]Inline{{Text{Value: "a"}}}}
		out := PrependLabel(label, []Block{list})
		require.Len(t, out, 2)
		assert.Equal(t, "foo (int):", InlineText(out[0].(Paragraph).Inlines))
		assert.Equal(t, list, out[1])
	})
}

func TestFieldLabel(t *testing.T) {
	label := FieldLabel(Field{Name: "param", Argument: "x"})
	require.Len(t, label, 3)
	assert.Equal(t, Strong{Children: []Inline{Text{Value: "Parameter"}}}, label[0])
	assert.Equal(t, Code{Value: "x"}, label[2])

	assert.Len(t, FieldLabel(Field{Name: "returns"}), 1)
}

func TestWalkAndPlainText(t *testing.T) {
	tree := []Block{
		Heading{Level: 1, Inlines: []Inline{Text{Value: "Title"}}},
		Quote{Blocks: []Block{Paragraph{Inlines: []Inline{Text{Value: "quoted"}}}}},
		Comment{Content: []Block{Paragraph{Inlines: []Inline{Text{Value: "hidden"}}}}},
		FieldList{Fields: []Field{{Name: "param", Argument: "x", Body: []Block{
			Paragraph{Inlines: []Inline{Text{Value: "The x value"}}},
		}}}},
	}

	counts := CountByTag(tree)
	assert.Equal(t, 1, counts["Heading"])
	assert.Equal(t, 3, counts["Paragraph"])
	assert.Equal(t, 1, counts["Comment"])

	text := PlainText(tree)
	assert.Contains(t, text, "Title")
	assert.Contains(t, text, "quoted")
	assert.Contains(t, text, "Parameter x: The x value")
	assert.NotContains(t, text, "hidden")
}
