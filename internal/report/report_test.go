package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Stages(t *testing.T) {
	r := New("scan", "/src")

	h := r.BeginStage(" crawl ")
	r.EndStage(h, "", map[string]float64{"files": 3, " ": 1}, []string{" kept ", ""}, nil)

	h = r.BeginStage("store")
	r.EndStage(h, "ok", nil, nil, errors.New("disk full"))

	h = r.BeginStage("")
	r.EndStage(h, "ok", nil, nil, nil)

	require.Len(t, r.Stages, 2)
	assert.Equal(t, "crawl", r.Stages[0].Name)
	assert.Equal(t, "ok", r.Stages[0].Status)
	assert.Equal(t, map[string]float64{"files": 3}, r.Stages[0].Counters)
	assert.Equal(t, []string{"kept"}, r.Stages[0].Notes)

	assert.Equal(t, "error", r.Stages[1].Status)
	assert.Equal(t, "disk full", r.Stages[1].Error)
	assert.Nil(t, r.Stages[1].Counters)
}

func TestReport_Finalize(t *testing.T) {
	r := New("update", "/src")
	r.AddSignal("parse_failure", "parse", "Warning", "a.py:f:1 failed", 1)
	r.AddSignal("no_docstrings", "crawl", "info", "nothing found", 0)
	r.AddSignal("store_failed", "store", "critical", "write failed", 0)
	r.AddSignal("", "parse", "info", "dropped", 0)

	r.AddFile(FileMetric{Path: "b.go", Language: "go", Docstrings: 4, Failures: 1})
	r.AddFile(FileMetric{Path: "a.py", Language: "python", Docstrings: 2})
	r.AddFile(FileMetric{Path: "old.py", Removed: true})
	r.AddFile(FileMetric{Path: " "})

	r.AddBlocks(map[string]int{"Paragraph": 2, "FieldList": 1})
	r.AddBlocks(map[string]int{"Paragraph": 1})

	r.EndStage(r.BeginStage("render"), "partial", nil, nil, nil)
	r.Finalize()

	codes := make([]string, 0, len(r.Signals))
	for _, s := range r.Signals {
		codes = append(codes, s.Code)
	}
	assert.Equal(t, []string{"store_failed", "parse_failure", "no_docstrings"}, codes)
	assert.Equal(t, "warning", r.Signals[1].Severity)

	require.Len(t, r.Files, 3)
	assert.Equal(t, "a.py", r.Files[0].Path)

	assert.Equal(t, Summary{
		StageCount:        1,
		FailedStages:      1,
		FileCount:         2,
		RemovedFiles:      1,
		DocstringCount:    6,
		ParseFailures:     1,
		BlockCounts:       map[string]int{"Paragraph": 3, "FieldList": 1},
		SignalsBySeverity: map[string]int{"critical": 1, "warning": 1, "info": 1},
	}, r.Summary)
}

func TestReport_ConcurrentAdds(t *testing.T) {
	r := New("scan", ".")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.AddFile(FileMetric{Path: "f.go", Docstrings: 1})
			r.AddBlocks(map[string]int{"Paragraph": 1})
		}()
	}
	wg.Wait()
	r.Finalize()
	assert.Equal(t, 20, r.Summary.DocstringCount)
	assert.Equal(t, 20, r.Summary.BlockCounts["Paragraph"])
}

func TestReport_Save(t *testing.T) {
	r := New("scan", "/src")
	r.AddFile(FileMetric{Path: "a.go", Language: "go", Docstrings: 1})

	path := filepath.Join(t.TempDir(), "nested", "report.json")
	require.NoError(t, r.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "scan", got["mode"])
	assert.Equal(t, "/src", got["root"])
	summary := got["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["docstring_count"])

	var nilReport *Report
	assert.NoError(t, nilReport.Save(path))
}
