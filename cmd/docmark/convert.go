package main

import (
	"fmt"
	"log"
	"os"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"docmark/internal/ir"
	"docmark/internal/markdown"
	"docmark/internal/parser"
	"docmark/internal/render"
)

var (
	parseFormat  string
	markdownTerm bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "tree", "Output format: tree, json or yaml")
	markdownCmd.Flags().BoolVarP(&markdownTerm, "terminal", "t", false, "Render the Markdown for the terminal")
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a docstring and print its block tree",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		name, text := readInput(args)

		blocks, err := parser.Parse(markdown.Normalize(text), parseOptions(cfg)...)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", name, err)
		}

		doc := ir.New(name, blocks)
		switch parseFormat {
		case "tree":
			pp.Println(blocks)
		case "json":
			out, err := ir.EncodeJSON(doc)
			if err != nil {
				log.Fatalf("Failed to encode JSON: %v", err)
			}
			fmt.Println(string(out))
		case "yaml":
			out, err := ir.EncodeYAML(doc)
			if err != nil {
				log.Fatalf("Failed to encode YAML: %v", err)
			}
			fmt.Print(string(out))
		default:
			log.Fatalf("Unknown format %q (want tree, json or yaml)", parseFormat)
		}
	},
}

var htmlCmd = &cobra.Command{
	Use:   "html [file]",
	Short: "Render a docstring as HTML",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		name, text := readInput(args)

		out, err := render.New(renderOptions(cfg)...).Render(markdown.Normalize(text))
		if err != nil {
			log.Fatalf("Failed to render %s: %v", name, err)
		}
		fmt.Println(out)
	},
}

var markdownCmd = &cobra.Command{
	Use:   "markdown [file]",
	Short: "Convert a docstring to Markdown",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		name, text := readInput(args)

		md, err := markdown.Convert(text, renderOptions(cfg)...)
		if err != nil {
			log.Fatalf("Failed to convert %s: %v", name, err)
		}
		if markdownTerm {
			md, err = markdown.Terminal(md, cfg.Terminal.Style, cfg.Terminal.Width)
			if err != nil {
				log.Fatalf("Failed to render for terminal: %v", err)
			}
		}
		fmt.Println(md)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Check a serialized block tree against the JSON Schema",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, data := readInput(args)
		if err := ir.Validate([]byte(data)); err != nil {
			fmt.Printf("❌ %s is invalid:\n%v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("✅ %s is valid.\n", name)
	},
}
