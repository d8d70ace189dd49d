package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docmark/internal/extractor"
	"docmark/internal/git"
)

func doc(kind, name string, start, end int, text string) *extractor.Docstring {
	return &extractor.Docstring{Kind: kind, Name: name, StartLine: start, EndLine: end, Text: text, Hash: extractor.HashText(text)}
}

func names(docs []*extractor.Docstring) []string {
	var out []string
	for _, d := range docs {
		out = append(out, d.Name)
	}
	return out
}

func TestAnalyzeImpact(t *testing.T) {
	previous := []*extractor.Docstring{
		doc("function", "Parse", 3, 10, "Parse input."),
		doc("function", "Render", 12, 20, "Render output."),
		doc("type", "Config", 22, 25, "Config holds settings."),
	}
	current := []*extractor.Docstring{
		// moved down by two lines, body edited, doc unchanged
		doc("function", "Parse", 5, 12, "Parse input."),
		doc("function", "Render", 14, 22, "Render output as HTML."),
		doc("type", "Config", 24, 27, "Config holds settings."),
		doc("function", "Validate", 29, 31, "Validate checks input."),
	}
	change := git.ChangedFile{Path: "a.go", ChangedLines: []int{1, 2, 8, 15, 30}}

	report := NewAnalyzer(previous).AnalyzeImpact(change, current)

	assert.Equal(t, []string{"Parse"}, names(report.Stale))
	assert.Equal(t, []string{"Render"}, names(report.Rewritten))
	assert.Equal(t, []string{"Validate"}, names(report.Added))
	assert.Equal(t, 3, report.Touched())
}

func TestAnalyzeImpact_NoChangedLines(t *testing.T) {
	report := NewAnalyzer(nil).AnalyzeImpact(git.ChangedFile{Path: "a.go"}, []*extractor.Docstring{doc("function", "F", 1, 2, "F.")})
	assert.Zero(t, report.Touched())
}

func TestIsAffected(t *testing.T) {
	d := doc("function", "F", 10, 12, "F.")
	tests := []struct {
		lines []int
		want  bool
	}{
		{[]int{9}, false},
		{[]int{10}, true},
		{[]int{12}, true},
		{[]int{13, 40}, false},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isAffected(d, tt.lines), "%v", tt.lines)
	}
}
