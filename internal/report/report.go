// Package report records what a scan or update did: per-stage timings and
// counters, per-file outcomes and signals worth a reader's attention.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Severities understood by Finalize, highest first.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

type Signal struct {
	Code     string  `json:"code"`
	Stage    string  `json:"stage"`
	Severity string  `json:"severity"`
	Message  string  `json:"message"`
	Value    float64 `json:"value,omitempty"`
}

type StageMetric struct {
	Name       string             `json:"name"`
	Status     string             `json:"status"`
	StartedAt  string             `json:"started_at"`
	FinishedAt string             `json:"finished_at"`
	DurationMS int64              `json:"duration_ms"`
	Counters   map[string]float64 `json:"counters,omitempty"`
	Notes      []string           `json:"notes,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// FileMetric is the outcome for one source file.
type FileMetric struct {
	Path       string `json:"path"`
	Language   string `json:"language"`
	Docstrings int    `json:"docstrings"`
	Failures   int    `json:"failures"`
	Touched    int    `json:"touched,omitempty"`
	Stale      int    `json:"stale,omitempty"`
	Removed    bool   `json:"removed,omitempty"`
	Error      string `json:"error,omitempty"`
}

type Summary struct {
	StageCount        int            `json:"stage_count"`
	FailedStages      int            `json:"failed_stages"`
	FileCount         int            `json:"file_count"`
	RemovedFiles      int            `json:"removed_files"`
	DocstringCount    int            `json:"docstring_count"`
	ParseFailures     int            `json:"parse_failures"`
	TouchedDocstrings int            `json:"touched_docstrings,omitempty"`
	StaleDocstrings   int            `json:"stale_docstrings,omitempty"`
	BlockCounts       map[string]int `json:"block_counts,omitempty"`
	SignalsBySeverity map[string]int `json:"signals_by_severity"`
}

// Report is safe for concurrent use.
type Report struct {
	mu sync.Mutex

	Version     string        `json:"version"`
	Mode        string        `json:"mode"`
	GeneratedAt string        `json:"generated_at"`
	Root        string        `json:"root"`
	BaseRef     string        `json:"base_ref,omitempty"`
	Stages      []StageMetric `json:"stages"`
	Files       []FileMetric  `json:"files,omitempty"`
	Signals     []Signal      `json:"signals,omitempty"`
	Summary     Summary       `json:"summary"`

	blocks map[string]int
}

type StageHandle struct {
	name    string
	started time.Time
}

// New starts a report for mode ("scan" or "update") over root.
func New(mode, root string) *Report {
	return &Report{
		Version:     "v1",
		Mode:        mode,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Root:        root,
		Stages:      []StageMetric{},
		Signals:     []Signal{},
		blocks:      map[string]int{},
	}
}

func (r *Report) BeginStage(name string) StageHandle {
	return StageHandle{name: strings.TrimSpace(name), started: time.Now().UTC()}
}

// EndStage records a finished stage. A non-nil err turns an "ok" status into "error".
func (r *Report) EndStage(h StageHandle, status string, counters map[string]float64, notes []string, err error) {
	if r == nil || h.name == "" {
		return
	}
	if strings.TrimSpace(status) == "" {
		status = "ok"
	}
	finished := time.Now().UTC()
	m := StageMetric{
		Name:       h.name,
		Status:     status,
		StartedAt:  h.started.Format(time.RFC3339Nano),
		FinishedAt: finished.Format(time.RFC3339Nano),
		DurationMS: finished.Sub(h.started).Milliseconds(),
		Counters:   cleanCounters(counters),
		Notes:      cleanNotes(notes),
	}
	if err != nil {
		m.Error = err.Error()
		if status == "ok" {
			m.Status = "error"
		}
	}
	r.mu.Lock()
	r.Stages = append(r.Stages, m)
	r.mu.Unlock()
}

// AddSignal drops signals missing a code, stage, severity or message.
func (r *Report) AddSignal(code, stage, severity, message string, value float64) {
	if r == nil {
		return
	}
	s := Signal{
		Code:     strings.TrimSpace(code),
		Stage:    strings.TrimSpace(stage),
		Severity: strings.ToLower(strings.TrimSpace(severity)),
		Message:  strings.TrimSpace(message),
		Value:    value,
	}
	if s.Code == "" || s.Stage == "" || s.Severity == "" || s.Message == "" {
		return
	}
	r.mu.Lock()
	r.Signals = append(r.Signals, s)
	r.mu.Unlock()
}

func (r *Report) AddFile(m FileMetric) {
	if r == nil || strings.TrimSpace(m.Path) == "" {
		return
	}
	r.mu.Lock()
	r.Files = append(r.Files, m)
	r.mu.Unlock()
}

// AddBlocks adds to the per-tag block tally, e.g. {"Paragraph": 3}.
func (r *Report) AddBlocks(counts map[string]int) {
	if r == nil || len(counts) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blocks == nil {
		r.blocks = map[string]int{}
	}
	for tag, n := range counts {
		r.blocks[tag] += n
	}
}

// Finalize orders files and signals and fills in Summary.
func (r *Report) Finalize() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalize()
}

func (r *Report) finalize() {
	r.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	sort.Slice(r.Files, func(i, j int) bool { return r.Files[i].Path < r.Files[j].Path })
	sort.SliceStable(r.Signals, func(i, j int) bool {
		pi := signalPriority(r.Signals[i].Severity)
		pj := signalPriority(r.Signals[j].Severity)
		if pi == pj {
			if r.Signals[i].Stage == r.Signals[j].Stage {
				return r.Signals[i].Code < r.Signals[j].Code
			}
			return r.Signals[i].Stage < r.Signals[j].Stage
		}
		return pi > pj
	})

	severityCount := map[string]int{
		SeverityCritical: 0,
		SeverityWarning:  0,
		SeverityInfo:     0,
	}
	for _, s := range r.Signals {
		severityCount[s.Severity]++
	}

	failed := 0
	for _, st := range r.Stages {
		if st.Status != "ok" {
			failed++
		}
	}

	s := Summary{
		StageCount:        len(r.Stages),
		FailedStages:      failed,
		SignalsBySeverity: severityCount,
	}
	for _, f := range r.Files {
		if f.Removed {
			s.RemovedFiles++
			continue
		}
		s.FileCount++
		s.DocstringCount += f.Docstrings
		s.ParseFailures += f.Failures
		s.TouchedDocstrings += f.Touched
		s.StaleDocstrings += f.Stale
	}
	if len(r.blocks) > 0 {
		s.BlockCounts = make(map[string]int, len(r.blocks))
		for tag, n := range r.blocks {
			s.BlockCounts[tag] = n
		}
	}
	r.Summary = s
}

// Save finalizes the report and writes it as indented JSON, creating parent
// directories as needed.
func (r *Report) Save(path string) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalize()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

func cleanCounters(raw map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		if key := strings.TrimSpace(k); key != "" {
			out[key] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cleanNotes(raw []string) []string {
	var out []string
	for _, n := range raw {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func signalPriority(severity string) int {
	switch severity {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	default:
		return 1
	}
}
