package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"docmark/internal/config"
	"docmark/internal/crawler"
	"docmark/internal/index"
	"docmark/internal/report"
	"docmark/internal/storage"
)

var (
	reportPath string
	baseRef    string
)

func init() {
	for _, cmd := range []*cobra.Command{scanCmd, updateCmd} {
		cmd.Flags().StringVarP(&reportPath, "report", "r", "", "Write a JSON report of the run to this path")
	}
	updateCmd.Flags().StringVarP(&baseRef, "base", "b", "", "Git revision to diff against (default: commit of the last scan)")
}

func newIndexer(cfg *config.Config, store *storage.SQLiteStore) *index.Indexer {
	cr, err := crawler.NewDefault()
	if err != nil {
		log.Fatalf("Failed to create crawler: %v", err)
	}
	if err := cr.SetPatterns(cfg.Project.Include, cfg.Project.Exclude); err != nil {
		log.Fatalf("Invalid include/exclude patterns: %v", err)
	}
	return index.NewIndexer(cr, store,
		index.WithRenderOptions(renderOptions(cfg)...),
		index.WithParseOptions(parseOptions(cfg)...),
	)
}

func projectRoot(cfg *config.Config, args []string) string {
	root := cfg.Project.Root
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		log.Fatalf("Failed to resolve %s: %v", root, err)
	}
	return abs
}

func printReport(rep *report.Report, took time.Duration) {
	s := rep.Summary
	fmt.Printf("✅ %s files, %s docstrings in %v.\n",
		humanize.Comma(int64(s.FileCount)), humanize.Comma(int64(s.DocstringCount)), took.Round(time.Millisecond))
	if s.RemovedFiles > 0 {
		fmt.Printf("🗑️  Removed %s stale files.\n", humanize.Comma(int64(s.RemovedFiles)))
	}
	if s.TouchedDocstrings > 0 {
		fmt.Printf("🔍 %s touched by the diff, %s possibly stale.\n",
			english.Plural(s.TouchedDocstrings, "documented symbol", ""), humanize.Comma(int64(s.StaleDocstrings)))
	}
	if s.ParseFailures > 0 {
		fmt.Printf("⚠️  %s docstrings failed to parse.\n", humanize.Comma(int64(s.ParseFailures)))
	}
	for _, sig := range rep.Signals {
		if sig.Severity != report.SeverityInfo {
			log.Printf("%s [%s] %s", sig.Severity, sig.Code, sig.Message)
		}
	}
	if reportPath != "" {
		if err := rep.Save(reportPath); err != nil {
			log.Fatalf("Failed to save report: %v", err)
		}
		fmt.Printf("📄 Report written to %s\n", reportPath)
	}
}

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Index every docstring under the project root",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := projectRoot(cfg, args)
		fmt.Printf("📂 Scanning directory: %s\n", root)

		store := initStore(cfg)
		defer store.Close()

		start := time.Now()
		rep, err := newIndexer(cfg, store).Scan(context.Background(), root)
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		printReport(rep, time.Since(start))
		fmt.Printf("🎉 Scan complete! Database: %s\n", cfg.Store.Path)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [root]",
	Short: "Re-index only the files changed since a git revision",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := projectRoot(cfg, args)

		store := initStore(cfg)
		defer store.Close()

		start := time.Now()
		rep, err := newIndexer(cfg, store).Update(context.Background(), root, baseRef)
		if err != nil {
			log.Fatalf("Update failed: %v", err)
		}
		fmt.Printf("📝 Changes since %s\n", rep.BaseRef)
		printReport(rep, time.Since(start))
	},
}
