package docmark_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmark"
)

func TestFacade(t *testing.T) {
	blocks, err := docmark.Parse("Title\n=====\n\n- a\n- b")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, docmark.Heading{Level: 1, Inlines: []docmark.Inline{docmark.Text{Value: "Title"}}}, blocks[0])
	assert.Equal(t, docmark.Unordered, blocks[1].(docmark.List).Kind)

	data, err := docmark.MarshalJSON("example", blocks)
	require.NoError(t, err)
	doc, err := docmark.UnmarshalJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "example", doc.Source)
	assert.Equal(t, blocks, doc.Blocks)

	_, err = docmark.Parse("> > deep", docmark.WithMaxDepth(1))
	assert.ErrorIs(t, err, docmark.ErrNestingTooDeep)

	html, err := docmark.HTML(":returns: x", docmark.WithFieldStyle(docmark.FieldsInline))
	require.NoError(t, err)
	assert.Equal(t, "<p><strong>Returns</strong>: x</p>", html)

	assert.Equal(t, "a\n  b", docmark.Normalize("\n    a\n      b\n"))
}

func ExampleHTML() {
	out, _ := docmark.HTML("A *small* `example`.")
	fmt.Println(out)
	// Output: <p>A <em>small</em> <code>example</code>.</p>
}

func ExampleMarkdown() {
	out, _ := docmark.Markdown(`
    Compute a value.

    :param x: The input
    :returns: The result
    `)
	fmt.Println(out)
	// Output:
	// Compute a value.
	//
	// **Parameter** `x`: The input
	//
	// **Returns**: The result
}
