package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byName(docs []*Docstring) map[string]*Docstring {
	m := make(map[string]*Docstring)
	for _, d := range docs {
		m[d.Name] = d
	}
	return m
}

func TestNewExtractor(t *testing.T) {
	for _, lang := range []string{"go", "python"} {
		ext, err := NewExtractor(lang)
		require.NoError(t, err)
		assert.Equal(t, lang, ext.Language())
	}
	_, err := NewExtractor("cobol")
	assert.Error(t, err)
}

func TestExtractor_Go(t *testing.T) {
	testFile := filepath.Join("testdata", "sample.go")

	ext, err := NewExtractor("go")
	require.NoError(t, err)

	docs, err := ext.ExtractFromFile(context.Background(), testFile)
	require.NoError(t, err)
	docsByName := byName(docs)

	t.Run("Overall Count", func(t *testing.T) {
		// Version, StatusOK, StatusError, GlobalVar, Base, User, Handler,
		// MyFunc, MyFunction, User.MyMethod
		assert.Len(t, docs, 10)
	})

	t.Run("Common Fields", func(t *testing.T) {
		for _, d := range docs {
			assert.Equal(t, "sample", d.Package)
			assert.Equal(t, "go", d.Language)
			assert.Equal(t, HashText(d.Text), d.Hash)
			assert.Len(t, d.Hash, 64)
		}
	})

	t.Run("Constants", func(t *testing.T) {
		d, ok := docsByName["Version"]
		require.True(t, ok)
		assert.Equal(t, "constant", d.Kind)
		assert.Equal(t, "Version is the application version.", d.Text)

		d, ok = docsByName["StatusOK"]
		require.True(t, ok)
		assert.Equal(t, "StatusOK indicates success.", d.Text)
		assert.Equal(t, "StatusOK = 200", d.Signature)
	})

	t.Run("Types", func(t *testing.T) {
		assert.Equal(t, "struct", docsByName["User"].Kind)
		assert.Equal(t, "interface", docsByName["Handler"].Kind)
		assert.Equal(t, "variable", docsByName["GlobalVar"].Kind)
	})

	t.Run("Functions", func(t *testing.T) {
		d, ok := docsByName["MyFunc"]
		require.True(t, ok)
		assert.Equal(t, "function", d.Kind)
		assert.Equal(t, "func MyFunc(a int, b string) bool", d.Signature)
		assert.Equal(t, "MyFunc is a function.", d.Text)
		assert.Equal(t, fmt.Sprintf("%s:MyFunc:%d", testFile, d.StartLine), d.ID)
	})

	t.Run("Methods", func(t *testing.T) {
		d, ok := docsByName["User.MyMethod"]
		require.True(t, ok)
		assert.Equal(t, "method", d.Kind)
		assert.Equal(t, "MyMethod is a method.", d.Text)
	})
}

func TestExtractor_Python(t *testing.T) {
	testFile := filepath.Join("testdata", "sample.py")

	ext, err := NewExtractor("python")
	require.NoError(t, err)

	docs, err := ext.ExtractFromFile(context.Background(), testFile)
	require.NoError(t, err)
	docsByName := byName(docs)

	// module, top, Greeter, Greeter.greet, Greeter.greet.inner, Greeter.name
	require.Len(t, docs, 6)

	t.Run("Module", func(t *testing.T) {
		d, ok := docsByName["testdata.sample"]
		require.True(t, ok)
		assert.Equal(t, "module", d.Kind)
		assert.Equal(t, 1, d.StartLine)
		assert.Equal(t, "Sample module.\n\nUsed by the extractor tests.", d.Text)
	})

	t.Run("Function", func(t *testing.T) {
		d, ok := docsByName["top"]
		require.True(t, ok)
		assert.Equal(t, "function", d.Kind)
		assert.Equal(t, "def top(a, b=1):", d.Signature)
		assert.Equal(t, 9, d.StartLine)
		assert.Equal(t, testFile+":top:9", d.ID)
		assert.Equal(t, "Add numbers.\n\n:param a: First value.\n:param b: Second value.\n:returns: The sum.", d.Text)
	})

	t.Run("Class", func(t *testing.T) {
		d, ok := docsByName["Greeter"]
		require.True(t, ok)
		assert.Equal(t, "class", d.Kind)
		assert.Equal(t, "class Greeter(object):", d.Signature)
		assert.Equal(t, "Greets people.\n\nArgs:\n    name (str): Who to greet.", d.Text)
	})

	t.Run("Methods", func(t *testing.T) {
		assert.Equal(t, "method", docsByName["Greeter.greet"].Kind)
		assert.Equal(t, "Return a greeting.", docsByName["Greeter.greet"].Text)
		assert.Equal(t, "method", docsByName["Greeter.name"].Kind)
		assert.Equal(t, "The name.", docsByName["Greeter.name"].Text)
		assert.Equal(t, "function", docsByName["Greeter.greet.inner"].Kind)
	})

	_, undocumented := docsByName["undocumented"]
	assert.False(t, undocumented)
}

func TestExtractFromSource_Context(t *testing.T) {
	ext, err := NewExtractor("python")
	require.NoError(t, err)
	docs, err := ext.ExtractFromSource(context.Background(), "pkg/__init__.py", []byte(`"""Package doc."""`+"\n"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "pkg", docs[0].Name)
	assert.Equal(t, "pkg", docs[0].Package)
	assert.Equal(t, "pkg/__init__.py:pkg:1", docs[0].ID)
}

func TestCleanDoc(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single line", "  Summary.  ", "Summary."},
		{"dedent", "Summary.\n\n    Body\n      more\n    ", "Summary.\n\nBody\n  more"},
		{"leading blank lines", "\n\n    Body.\n", "Body."},
		{"tabs", "Summary.\n\tBody", "Summary.\nBody"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDoc(tt.in))
		})
	}
}

func TestCleanDocComment(t *testing.T) {
	assert.Equal(t, "Summary.\n\n  indented", cleanDocComment([]string{"// Summary.", "//", "//   indented"}))
	assert.Equal(t, "Block doc.\nSecond.", cleanDocComment([]string{"/* Block doc.\n   Second. */"}))
	assert.Equal(t, "", cleanDocComment(nil))
}

func TestStringLiteralText(t *testing.T) {
	assert.Equal(t, "x", stringLiteralText(`"x"`))
	assert.Equal(t, "raw \\d", stringLiteralText(`r'''raw \d'''`))
	assert.Equal(t, "a\nb", stringLiteralText("\"\"\"a\n   b\"\"\""))
}
