package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mozillazg/go-slugify"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"docmark/internal/ir"
	"docmark/internal/markdown"
	"docmark/internal/storage"
)

var (
	searchLimit int
	searchText  bool
	showFormat  string
)

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of results")
	searchCmd.Flags().BoolVar(&searchText, "text", false, "Search docstring text instead of names")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "", "Output format: markdown, html or json (default: terminal Markdown on a TTY)")
}

var matchColor = color.New(color.FgYellow, color.Bold)

// highlight colors the bytes of s at the matched indexes.
func highlight(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var sb strings.Builder
	for i, r := range s {
		if hit[i] {
			sb.WriteString(matchColor.Sprint(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func location(r *storage.Record) string {
	return fmt.Sprintf("%s:%d", r.Filepath, r.StartLine)
}

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find stored docstrings by fuzzy name or by text",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store := initStore(cfg)
		defer store.Close()
		ctx := context.Background()

		table := newTable("Name", "Kind", "Location", "ID")
		n := 0
		if searchText {
			records, err := store.SearchText(ctx, args[0], searchLimit)
			if err != nil {
				log.Fatalf("Search failed: %v", err)
			}
			for _, r := range records {
				table.Append([]string{r.QualifiedName(), r.Kind, location(r), r.ID})
			}
			n = len(records)
		} else {
			results, err := store.Search(ctx, args[0], searchLimit)
			if err != nil {
				log.Fatalf("Search failed: %v", err)
			}
			for _, res := range results {
				table.Append([]string{highlight(res.Target, res.MatchedIndexes), res.Record.Kind, location(res.Record), res.Record.ID})
			}
			n = len(results)
		}
		if n == 0 {
			fmt.Println("🔍 No matches.")
			return
		}
		table.Render()
		fmt.Printf("(%s)\n", english.Plural(n, "match", "matches"))
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one stored docstring",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store := initStore(cfg)
		defer store.Close()

		rec, err := store.GetRecord(context.Background(), args[0])
		if errors.Is(err, storage.ErrNotFound) {
			log.Fatalf("No docstring with id %q. Try `docmark search`.", args[0])
		}
		if err != nil {
			log.Fatalf("Failed to load docstring: %v", err)
		}
		if rec.Error != "" {
			log.Printf("⚠️  %s failed to parse: %s", rec.ID, rec.Error)
		}

		format := showFormat
		if format == "" {
			format = "markdown"
			if isatty.IsTerminal(os.Stdout.Fd()) {
				format = "terminal"
			}
		}
		switch format {
		case "terminal":
			fmt.Printf("📄 %s (%s %s)\n", rec.QualifiedName(), rec.Kind, location(rec))
			out, err := markdown.Terminal(rec.Markdown, cfg.Terminal.Style, cfg.Terminal.Width)
			if err != nil {
				log.Fatalf("Failed to render for terminal: %v", err)
			}
			fmt.Print(out)
		case "markdown":
			fmt.Println(rec.Markdown)
		case "html":
			fmt.Println(rec.HTML)
		case "json":
			doc, err := ir.DecodeJSON(rec.Tree)
			if err != nil {
				log.Fatalf("Stored tree is unreadable: %v", err)
			}
			out, err := ir.EncodeJSON(doc)
			if err != nil {
				log.Fatalf("Failed to encode JSON: %v", err)
			}
			fmt.Println(string(out))
		default:
			log.Fatalf("Unknown format %q (want markdown, html or json)", format)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List stored docstrings, optionally of one file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store := initStore(cfg)
		defer store.Close()
		ctx := context.Background()

		var records []*storage.Record
		var err error
		if len(args) > 0 {
			records, err = store.FindRecordsByFile(ctx, filepath.ToSlash(args[0]))
		} else {
			records, err = store.ListRecords(ctx)
		}
		if err != nil {
			log.Fatalf("Failed to list docstrings: %v", err)
		}
		if len(records) == 0 {
			fmt.Println("📭 Nothing indexed yet. Run `docmark scan` first.")
			return
		}

		table := newTable("ID", "Kind", "Lines", "Status")
		failed := 0
		for _, r := range records {
			status := "ok"
			if r.Error != "" {
				status = "error"
				failed++
			}
			table.Append([]string{r.ID, r.Kind, fmt.Sprintf("%d-%d", r.StartLine, r.EndLine), status})
		}
		table.Render()
		fmt.Printf("(%s, %d failed)\n", english.Plural(len(records), "docstring", ""), failed)
	},
}

// exportName returns a unique file name for a record within one export.
func exportName(r *storage.Record, used map[string]int) string {
	slug := slugify.Slugify(r.QualifiedName())
	if slug == "" {
		slug = "docstring"
	}
	used[slug]++
	if n := used[slug]; n > 1 {
		slug = fmt.Sprintf("%s-%d", slug, n)
	}
	return slug + ".md"
}

func exportDocument(r *storage.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.QualifiedName())
	fmt.Fprintf(&sb, "*%s* `%s`\n\n", r.Kind, location(r))
	if r.Signature != "" {
		fmt.Fprintf(&sb, "```%s\n%s\n```\n\n", r.Language, r.Signature)
	}
	sb.WriteString(r.Markdown)
	sb.WriteString("\n")
	return sb.String()
}

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write every stored docstring to its own Markdown file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store := initStore(cfg)
		defer store.Close()

		records, err := store.ListRecords(context.Background())
		if err != nil {
			log.Fatalf("Failed to list docstrings: %v", err)
		}
		dir := args[0]
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create %s: %v", dir, err)
		}

		used := make(map[string]int)
		var total uint64
		for _, r := range records {
			data := []byte(exportDocument(r))
			if err := os.WriteFile(filepath.Join(dir, exportName(r, used)), data, 0644); err != nil {
				log.Fatalf("Failed to write %s: %v", r.ID, err)
			}
			total += uint64(len(data))
		}
		fmt.Printf("✅ Exported %s (%s) to %s\n", english.Plural(len(records), "file", ""), humanize.Bytes(total), dir)
	},
}
