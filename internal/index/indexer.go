// Package index turns the docstrings of a project into stored records: each
// one is parsed, rendered to HTML and Markdown and serialized, and the
// outcome of the run is written to a report.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"docmark/internal/analysis"
	"docmark/internal/ast"
	"docmark/internal/crawler"
	"docmark/internal/extractor"
	"docmark/internal/git"
	"docmark/internal/ir"
	"docmark/internal/markdown"
	"docmark/internal/parser"
	"docmark/internal/render"
	"docmark/internal/report"
	"docmark/internal/storage"
)

// ErrNoBaseRef is returned by Update when no base revision is given and none
// was recorded by an earlier scan.
var ErrNoBaseRef = errors.New("no base revision: run a full scan first or pass one")

type Option func(*Indexer)

// WithRenderOptions configures the HTML renderer. Field style is forced to
// inline for the Markdown form.
func WithRenderOptions(opts ...render.Option) Option {
	return func(i *Indexer) {
		i.renderOpts = append(i.renderOpts, opts...)
	}
}

func WithParseOptions(opts ...parser.Option) Option {
	return func(i *Indexer) {
		i.parseOpts = append(i.parseOpts, opts...)
	}
}

// WithWorkers sets how many files are rendered at once.
func WithWorkers(n int) Option {
	return func(i *Indexer) {
		if n > 0 {
			i.workers = n
		}
	}
}

// Indexer orchestrates scanning, rendering and storage.
type Indexer struct {
	crawler *crawler.Crawler
	store   storage.Store

	parseOpts  []parser.Option
	renderOpts []render.Option
	workers    int

	html *render.Renderer
	md   *render.Renderer

	// writes serializes store access from workers.
	writes sync.Mutex
}

// NewIndexer creates a new indexer.
func NewIndexer(c *crawler.Crawler, store storage.Store, opts ...Option) *Indexer {
	i := &Indexer{
		crawler: c,
		store:   store,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.html = render.New(i.renderOpts...)
	i.md = render.New(append(append([]render.Option{}, i.renderOpts...), render.WithFieldStyle(render.FieldsInline))...)
	return i
}

// BuildRecord renders one docstring. A parse failure is recorded on the
// returned record and also returned; the record is still usable.
func (i *Indexer) BuildRecord(doc *extractor.Docstring) (*storage.Record, []ast.Block, error) {
	rec := &storage.Record{Docstring: *doc}
	blocks, err := parser.Parse(markdown.Normalize(doc.Text), i.parseOpts...)
	if err != nil {
		rec.Error = err.Error()
		return rec, nil, err
	}
	rec.HTML = i.html.Blocks(blocks)
	md, err := markdown.FromHTML(i.md.Blocks(blocks))
	if err != nil {
		rec.Error = err.Error()
		return rec, blocks, err
	}
	rec.Markdown = md
	tree, err := json.Marshal(ir.New(doc.ID, blocks))
	if err != nil {
		rec.Error = err.Error()
		return rec, blocks, err
	}
	rec.Tree = tree
	return rec, blocks, nil
}

// Scan indexes every matching file under root, removes records of files
// that are gone and remembers the HEAD commit for later updates.
func (i *Indexer) Scan(ctx context.Context, root string) (*report.Report, error) {
	rep := report.New("scan", root)

	h := rep.BeginStage("index")
	seen, counters, err := i.run(ctx, rep, nil, func(ctx context.Context, onFile func(crawler.FileResult)) error {
		return i.crawler.ScanProject(ctx, root, onFile)
	})
	rep.EndStage(h, "ok", counters, nil, err)
	if err != nil {
		return rep, err
	}

	h = rep.BeginStage("prune")
	removed, err := i.prune(ctx, rep, seen)
	rep.EndStage(h, "ok", map[string]float64{"files_removed": float64(removed)}, nil, err)
	if err != nil {
		return rep, err
	}

	if err := i.remember(ctx, rep, root); err != nil {
		return rep, err
	}
	rep.Finalize()
	return rep, nil
}

// Update re-indexes only the files git reports as changed since baseRef. An
// empty baseRef means the commit recorded by the last scan or update.
func (i *Indexer) Update(ctx context.Context, root, baseRef string) (*report.Report, error) {
	if baseRef == "" {
		last, err := i.store.GetMeta(ctx, storage.MetaLastCommit)
		if err != nil {
			return nil, fmt.Errorf("failed to read last commit: %w", err)
		}
		if last == "" {
			return nil, ErrNoBaseRef
		}
		baseRef = last
	}
	rep := report.New("update", root)
	rep.BaseRef = baseRef

	h := rep.BeginStage("diff")
	changes, err := git.GetChangedFiles(ctx, root, baseRef)
	rep.EndStage(h, "ok", map[string]float64{"changed_files": float64(len(changes))}, nil, err)
	if err != nil {
		return rep, err
	}

	var paths, gone []string
	byPath := make(map[string]git.ChangedFile, len(changes))
	for _, c := range changes {
		if c.OldPath != "" {
			gone = append(gone, c.OldPath)
		}
		if c.Deleted {
			gone = append(gone, c.Path)
			continue
		}
		paths = append(paths, c.Path)
		byPath[c.Path] = c
	}

	h = rep.BeginStage("remove")
	for _, p := range gone {
		if err := i.removeFile(ctx, rep, p); err != nil {
			rep.EndStage(h, "ok", nil, nil, err)
			return rep, err
		}
	}
	rep.EndStage(h, "ok", map[string]float64{"files_removed": float64(len(gone))}, nil, nil)

	h = rep.BeginStage("index")
	_, counters, err := i.run(ctx, rep, byPath, func(ctx context.Context, onFile func(crawler.FileResult)) error {
		return i.crawler.ScanFiles(ctx, root, paths, onFile)
	})
	rep.EndStage(h, "ok", counters, nil, err)
	if err != nil {
		return rep, err
	}

	if err := i.remember(ctx, rep, root); err != nil {
		return rep, err
	}
	rep.Finalize()
	return rep, nil
}

type walkFunc func(ctx context.Context, onFile func(crawler.FileResult)) error

// run feeds crawled files to a bounded pool of workers and returns the paths
// that still exist plus stage counters. Files present in changes also get an
// impact analysis against their stored records.
func (i *Indexer) run(ctx context.Context, rep *report.Report, changes map[string]git.ChangedFile, walk walkFunc) (map[string]bool, map[string]float64, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	var mu sync.Mutex
	seen := make(map[string]bool)
	var files, docs, failures int

	err := walk(gctx, func(res crawler.FileResult) {
		g.Go(func() error {
			change, ok := changes[res.Path]
			var cp *git.ChangedFile
			if ok {
				cp = &change
			}
			n, failed, err := i.indexFile(gctx, rep, res, cp)
			mu.Lock()
			defer mu.Unlock()
			files++
			docs += n
			failures += failed
			// A file that exists but failed to extract keeps its old records.
			if !errors.Is(res.Err, fs.ErrNotExist) {
				seen[res.Path] = true
			}
			return err
		})
	})
	if werr := g.Wait(); werr != nil {
		err = werr
	}
	counters := map[string]float64{
		"files":          float64(files),
		"docstrings":     float64(docs),
		"parse_failures": float64(failures),
	}
	return seen, counters, err
}

// indexFile renders and stores one file. Only store errors are returned.
func (i *Indexer) indexFile(ctx context.Context, rep *report.Report, res crawler.FileResult, change *git.ChangedFile) (docs, failures int, err error) {
	m := report.FileMetric{Path: res.Path, Language: res.Language}
	if res.Err != nil {
		if errors.Is(res.Err, fs.ErrNotExist) {
			return 0, 0, i.removeFile(ctx, rep, res.Path)
		}
		m.Error = res.Err.Error()
		rep.AddFile(m)
		rep.AddSignal("extract_failed", "index", report.SeverityWarning, res.Err.Error(), 0)
		return 0, 0, nil
	}

	records := make([]*storage.Record, 0, len(res.Docs))
	blocks := make(map[string]int)
	for _, doc := range res.Docs {
		rec, tree, err := i.BuildRecord(doc)
		if err != nil {
			failures++
			rep.AddSignal("parse_failed", "index", report.SeverityWarning, fmt.Sprintf("%s: %v", doc.ID, err), 0)
		}
		for tag, n := range ast.CountByTag(tree) {
			blocks[tag] += n
		}
		records = append(records, rec)
	}

	i.writes.Lock()
	var impact *analysis.ImpactReport
	if change != nil {
		impact, err = i.impact(ctx, *change, res.Docs)
	}
	if err == nil {
		err = i.store.ReplaceFile(ctx, res.Path, records)
	}
	i.writes.Unlock()
	if err != nil {
		return len(records), failures, fmt.Errorf("failed to store %s: %w", res.Path, err)
	}

	if impact != nil {
		m.Touched = impact.Touched()
		m.Stale = len(impact.Stale)
		for _, d := range impact.Stale {
			rep.AddSignal("doc_may_be_stale", "index", report.SeverityWarning,
				fmt.Sprintf("%s changed but its documentation did not", d.ID), 0)
		}
	}

	m.Docstrings = len(records)
	m.Failures = failures
	rep.AddFile(m)
	rep.AddBlocks(blocks)
	return len(records), failures, nil
}

// impact compares docs with the records stored for the file. The caller
// holds the write lock.
func (i *Indexer) impact(ctx context.Context, change git.ChangedFile, docs []*extractor.Docstring) (*analysis.ImpactReport, error) {
	old, err := i.store.FindRecordsByFile(ctx, change.Path)
	if err != nil {
		return nil, err
	}
	previous := make([]*extractor.Docstring, 0, len(old))
	for _, r := range old {
		previous = append(previous, &r.Docstring)
	}
	return analysis.NewAnalyzer(previous).AnalyzeImpact(change, docs), nil
}

func (i *Indexer) removeFile(ctx context.Context, rep *report.Report, path string) error {
	i.writes.Lock()
	n, err := i.store.DeleteFile(ctx, path)
	i.writes.Unlock()
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	if n > 0 {
		rep.AddFile(report.FileMetric{Path: path, Language: crawler.LanguageOf(path), Removed: true})
	}
	return nil
}

// prune drops records of files the scan did not store.
func (i *Indexer) prune(ctx context.Context, rep *report.Report, seen map[string]bool) (int, error) {
	files, err := i.store.ListFiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list stored files: %w", err)
	}
	removed := 0
	for _, f := range files {
		if seen[f] {
			continue
		}
		if err := i.removeFile(ctx, rep, f); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// remember stores the scan root, time and HEAD commit. Outside a git
// repository the commit is skipped with a signal.
func (i *Indexer) remember(ctx context.Context, rep *report.Report, root string) error {
	meta := map[string]string{
		storage.MetaRoot:     root,
		storage.MetaLastScan: time.Now().UTC().Format(time.RFC3339),
	}
	if head, err := git.HeadCommit(ctx, root); err != nil {
		rep.AddSignal("no_git_head", "meta", report.SeverityInfo, "HEAD commit unknown; update needs an explicit base", 0)
	} else {
		meta[storage.MetaLastCommit] = head
	}
	for k, v := range meta {
		if err := i.store.SetMeta(ctx, k, v); err != nil {
			return fmt.Errorf("failed to save %s: %w", k, err)
		}
	}
	return nil
}
