// Package analysis relates diff hunks to the documented symbols they touch.
package analysis

import (
	"docmark/internal/extractor"
	"docmark/internal/git"
)

// ImpactReport summarizes the documented symbols affected by one file change.
type ImpactReport struct {
	// Added symbols were not documented before.
	Added []*extractor.Docstring
	// Rewritten symbols changed together with their documentation.
	Rewritten []*extractor.Docstring
	// Stale symbols changed while their documentation stayed the same.
	Stale []*extractor.Docstring
}

// Touched is the number of affected symbols.
func (r *ImpactReport) Touched() int {
	return len(r.Added) + len(r.Rewritten) + len(r.Stale)
}

// Analyzer compares a file's docstrings against the ones stored before the change.
type Analyzer struct {
	previous map[string]string // symbol key -> text hash
}

// NewAnalyzer creates a new analyzer over the previous docstrings of a file.
func NewAnalyzer(previous []*extractor.Docstring) *Analyzer {
	a := &Analyzer{previous: make(map[string]string, len(previous))}
	for _, d := range previous {
		a.previous[symbolKey(d)] = d.Hash
	}
	return a
}

// AnalyzeImpact classifies the docstrings whose source span contains a
// changed line. Symbols are matched by kind and name, since line numbers
// shift between revisions.
func (a *Analyzer) AnalyzeImpact(change git.ChangedFile, docs []*extractor.Docstring) *ImpactReport {
	report := &ImpactReport{}
	for _, d := range docs {
		if !isAffected(d, change.ChangedLines) {
			continue
		}
		hash, ok := a.previous[symbolKey(d)]
		switch {
		case !ok:
			report.Added = append(report.Added, d)
		case hash == d.Hash:
			report.Stale = append(report.Stale, d)
		default:
			report.Rewritten = append(report.Rewritten, d)
		}
	}
	return report
}

func symbolKey(d *extractor.Docstring) string {
	return d.Kind + " " + d.Name
}

func isAffected(d *extractor.Docstring, lines []int) bool {
	for _, line := range lines {
		if line >= d.StartLine && line <= d.EndLine {
			return true
		}
	}
	return false
}
