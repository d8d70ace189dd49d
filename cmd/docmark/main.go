package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"docmark/internal/config"
	"docmark/internal/parser"
	"docmark/internal/render"
	"docmark/internal/storage"
)

var (
	rootCmd = &cobra.Command{
		Use:   "docmark",
		Short: "Parse, render and index source docstrings",
	}
	configPath string
	dbPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the docstring database (SQLite); overrides the config")

	rootCmd.AddCommand(parseCmd, htmlCmd, markdownCmd, validateCmd)
	rootCmd.AddCommand(scanCmd, updateCmd)
	rootCmd.AddCommand(searchCmd, showCmd, listCmd, exportCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	return cfg
}

// initStore opens the SQLite store named by the config.
func initStore(cfg *config.Config) *storage.SQLiteStore {
	store, err := storage.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	return store
}

func parseOptions(cfg *config.Config) []parser.Option {
	if cfg.Render.MaxDepth > 0 {
		return []parser.Option{parser.WithMaxDepth(cfg.Render.MaxDepth)}
	}
	return nil
}

func renderOptions(cfg *config.Config) []render.Option {
	return []render.Option{
		render.WithHighlightStyle(cfg.Render.HighlightStyle),
		render.WithFieldStyle(render.ParseFieldStyle(cfg.Render.FieldStyle)),
		render.WithParseOptions(parseOptions(cfg)...),
	}
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(args []string) (string, string) {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		log.Fatalf("Failed to read %s: %v", name, err)
	}
	return name, string(data)
}
