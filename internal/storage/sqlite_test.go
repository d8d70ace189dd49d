package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmark/internal/extractor"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(path, pkg, name string, line int, text string) *Record {
	return &Record{
		Docstring: extractor.Docstring{
			ID:        fmt.Sprintf("%s:%s:%d", path, name, line),
			Filepath:  path,
			Package:   pkg,
			Language:  "python",
			Kind:      "function",
			Name:      name,
			StartLine: line,
			EndLine:   line + 3,
			Text:      text,
			Hash:      extractor.HashText(text),
		},
		HTML:     "<p>" + text + "</p>",
		Markdown: text,
		Tree:     []byte(`{"schema_version":"1","blocks":[]}`),
	}
}

func TestSQLiteStore_Records(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := testRecord("a.py", "a", "parse", 10, "Parse input.")
	b := testRecord("a.py", "a", "render", 3, "Render output.")
	c := testRecord("b.py", "b", "Config.load", 1, "Load config.")
	require.NoError(t, store.SaveRecords(ctx, []*Record{a, b, c}))

	t.Run("Get", func(t *testing.T) {
		got, err := store.GetRecord(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, got)

		_, err = store.GetRecord(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("By file ordered by line", func(t *testing.T) {
		got, err := store.FindRecordsByFile(ctx, "a.py")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "render", got[0].Name)
		assert.Equal(t, "parse", got[1].Name)
	})

	t.Run("Upsert", func(t *testing.T) {
		updated := *a
		updated.Text = "Parse input quickly."
		updated.Error = "boom"
		updated.Tree = nil
		require.NoError(t, store.SaveRecords(ctx, []*Record{&updated}))

		got, err := store.GetRecord(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Parse input quickly.", got.Text)
		assert.Equal(t, "boom", got.Error)
		assert.Nil(t, got.Tree)

		all, err := store.ListRecords(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestSQLiteStore_ReplaceAndDeleteFile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecords(ctx, []*Record{
		testRecord("a.py", "a", "one", 1, "One."),
		testRecord("a.py", "a", "two", 5, "Two."),
		testRecord("b.py", "b", "other", 1, "Other."),
	}))

	// Lines moved: the old IDs must not survive.
	require.NoError(t, store.ReplaceFile(ctx, "a.py", []*Record{testRecord("a.py", "a", "one", 2, "One.")}))
	got, err := store.FindRecordsByFile(ctx, "a.py")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.py:one:2", got[0].ID)

	files, err := store.ListFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.py"}, files)

	n, err := store.DeleteFile(ctx, "a.py")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b.py", all[0].Filepath)
}

func TestSQLiteStore_Search(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecords(ctx, []*Record{
		testRecord("a.py", "pkg.a", "parse_blocks", 1, "Parse 100% of blocks."),
		testRecord("a.py", "pkg.a", "render", 5, "Render HTML."),
		testRecord("b.py", "pkg.b", "Parser.run", 1, "Run the parser."),
	}))

	t.Run("Fuzzy", func(t *testing.T) {
		results, err := store.Search(ctx, "prsblk", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "pkg.a.parse_blocks", results[0].Target)
		assert.NotEmpty(t, results[0].MatchedIndexes)

		results, err = store.Search(ctx, "parse", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)

		results, err = store.Search(ctx, "zzz", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Text", func(t *testing.T) {
		got, err := store.SearchText(ctx, "PARSER", 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Parser.run", got[0].Name)

		got, err = store.SearchText(ctx, "100%", 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "parse_blocks", got[0].Name)

		got, err = store.SearchText(ctx, "%", 0)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestSQLiteStore_Metadata(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v, err := store.GetMeta(ctx, MetaLastCommit)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, store.SetMeta(ctx, MetaLastCommit, "abc123"))
	require.NoError(t, store.SetMeta(ctx, MetaLastCommit, "def456"))
	v, err = store.GetMeta(ctx, MetaLastCommit)
	require.NoError(t, err)
	assert.Equal(t, "def456", v)
}

func TestRecord_QualifiedName(t *testing.T) {
	assert.Equal(t, "pkg.f", (&Record{Docstring: extractor.Docstring{Package: "pkg", Name: "f"}}).QualifiedName())
	assert.Equal(t, "pkg", (&Record{Docstring: extractor.Docstring{Package: "pkg", Name: "pkg"}}).QualifiedName())
	assert.Equal(t, "f", (&Record{Docstring: extractor.Docstring{Name: "f"}}).QualifiedName())
}
