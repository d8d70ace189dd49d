package crawler

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"docmark/internal/extractor"
)

// FileResult is the outcome of extracting one file. Path is slash separated
// and relative to the scanned root; docstring IDs use the same path.
type FileResult struct {
	Path     string
	Language string
	Docs     []*extractor.Docstring
	Err      error
}

// Crawler scans a directory for source files.
type Crawler struct {
	extractors map[string]*extractor.Extractor
	ignored    []string
	include    []string
	exclude    []string
}

// NewCrawler creates a crawler for the languages of the given extractors.
func NewCrawler(exts ...*extractor.Extractor) *Crawler {
	c := &Crawler{
		extractors: make(map[string]*extractor.Extractor),
		ignored:    []string{".git", "vendor", "node_modules", "testdata", "__pycache__"},
	}
	for _, ext := range exts {
		c.extractors[ext.Language()] = ext
	}
	return c
}

// NewDefault creates a crawler for every supported language.
func NewDefault() (*Crawler, error) {
	var exts []*extractor.Extractor
	for _, lang := range []string{"go", "python"} {
		ext, err := extractor.NewExtractor(lang)
		if err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}
	return NewCrawler(exts...), nil
}

// SetPatterns limits scanning to paths matching any include pattern and no
// exclude pattern. Patterns use doublestar syntax against root-relative,
// slash-separated paths. No include patterns means every supported file.
func (c *Crawler) SetPatterns(include, exclude []string) error {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid pattern: %q", p)
		}
	}
	c.include = include
	c.exclude = exclude
	return nil
}

// LanguageOf returns the language of a source file, or "" when the file is
// not scanned. Go test files are skipped.
func LanguageOf(path string) string {
	name := filepath.Base(path)
	switch {
	case strings.HasSuffix(name, "_test.go"):
		return ""
	case strings.HasSuffix(name, ".go"):
		return "go"
	case strings.HasSuffix(name, ".py"), strings.HasSuffix(name, ".pyi"):
		return "python"
	}
	return ""
}

// Matches reports whether a root-relative path passes the include and
// exclude patterns.
func (c *Crawler) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range c.exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	if len(c.include) == 0 {
		return true
	}
	for _, p := range c.include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (c *Crawler) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	for _, ign := range c.ignored {
		if name == ign {
			return true
		}
	}
	return false
}

func (c *Crawler) inSkippedDir(rel string) bool {
	dirs := strings.Split(filepath.ToSlash(rel), "/")
	for _, d := range dirs[:len(dirs)-1] {
		if c.skipDir(d) {
			return true
		}
	}
	return false
}

// ScanProject walks the root directory and extracts every matching file.
// Results are streamed to onFile; a file that fails to extract is reported
// through FileResult.Err and does not stop the walk.
func (c *Crawler) ScanProject(ctx context.Context, root string, onFile func(FileResult)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && c.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if res, ok := c.extract(ctx, root, rel); ok {
			onFile(res)
		}
		return nil
	})
}

// ScanFiles extracts the listed root-relative files, applying the same
// directory rules as ScanProject. Files that no longer exist are reported
// with fs.ErrNotExist.
func (c *Crawler) ScanFiles(ctx context.Context, root string, paths []string, onFile func(FileResult)) error {
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.inSkippedDir(rel) {
			continue
		}
		if res, ok := c.extract(ctx, root, rel); ok {
			onFile(res)
		}
	}
	return nil
}

func (c *Crawler) extract(ctx context.Context, root, rel string) (FileResult, bool) {
	rel = filepath.ToSlash(rel)
	lang := LanguageOf(rel)
	ext, ok := c.extractors[lang]
	if !ok || !c.Matches(rel) {
		return FileResult{}, false
	}
	res := FileResult{Path: rel, Language: lang}
	src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		res.Err = fmt.Errorf("failed to read file %s: %w", rel, err)
		return res, true
	}
	res.Docs, res.Err = ext.ExtractFromSource(ctx, rel, src)
	return res, true
}
