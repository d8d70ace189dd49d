package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "docmark.yaml"

type Config struct {
	Project struct {
		Root    string   `yaml:"root"`
		Include []string `yaml:"include"`
		Exclude []string `yaml:"exclude"`
	} `yaml:"project"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Render struct {
		HighlightStyle string `yaml:"highlight_style"` // chroma style; empty disables highlighting
		FieldStyle     string `yaml:"field_style"`     // "list" or "inline"
		MaxDepth       int    `yaml:"max_depth"`       // 0 = unbounded
	} `yaml:"render"`
	Terminal struct {
		Style string `yaml:"style"` // glamour style name
		Width int    `yaml:"width"`
	} `yaml:"terminal"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Project.Root = "."
	cfg.Store.Path = "docmark.db"
	cfg.Render.FieldStyle = "list"
	cfg.Terminal.Style = "dark"
	cfg.Terminal.Width = 80
	return &cfg
}

// LoadConfig reads path on top of the defaults. A missing file is not an
// error. DOCMARK_* environment variables, including ones from a local .env,
// take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// 3. Override with Environment Variables if present
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DOCMARK_ROOT"); v != "" {
		c.Project.Root = v
	}
	if v := os.Getenv("DOCMARK_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("DOCMARK_HIGHLIGHT_STYLE"); v != "" {
		c.Render.HighlightStyle = v
	}
	if v := os.Getenv("DOCMARK_GLAMOUR_STYLE"); v != "" {
		c.Terminal.Style = v
	}
	if v := strings.TrimSpace(os.Getenv("DOCMARK_MAX_DEPTH")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid DOCMARK_MAX_DEPTH %q", v)
		}
		c.Render.MaxDepth = n
	}
	return nil
}
