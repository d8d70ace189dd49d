package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"DOCMARK_ROOT", "DOCMARK_DB", "DOCMARK_HIGHLIGHT_STYLE", "DOCMARK_GLAMOUR_STYLE", "DOCMARK_MAX_DEPTH"} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "docmark.db", cfg.Store.Path)
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "docmark.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  root: src
  include: ["**/*.py"]
  exclude: ["build/**"]
render:
  highlight_style: monokai
  field_style: inline
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "src", cfg.Project.Root)
	assert.Equal(t, []string{"**/*.py"}, cfg.Project.Include)
	assert.Equal(t, []string{"build/**"}, cfg.Project.Exclude)
	assert.Equal(t, "monokai", cfg.Render.HighlightStyle)
	assert.Equal(t, "inline", cfg.Render.FieldStyle)
	// untouched sections keep their defaults
	assert.Equal(t, "docmark.db", cfg.Store.Path)
	assert.Equal(t, 80, cfg.Terminal.Width)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "docmark.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  path: file.db\n"), 0644))

	t.Setenv("DOCMARK_DB", "env.db")
	t.Setenv("DOCMARK_ROOT", "/code")
	t.Setenv("DOCMARK_HIGHLIGHT_STYLE", "dracula")
	t.Setenv("DOCMARK_GLAMOUR_STYLE", "notty")
	t.Setenv("DOCMARK_MAX_DEPTH", "12")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Store.Path)
	assert.Equal(t, "/code", cfg.Project.Root)
	assert.Equal(t, "dracula", cfg.Render.HighlightStyle)
	assert.Equal(t, "notty", cfg.Terminal.Style)
	assert.Equal(t, 12, cfg.Render.MaxDepth)
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("project: [unclosed"), 0644))
	_, err := LoadConfig(bad)
	assert.ErrorContains(t, err, "failed to parse config")

	t.Setenv("DOCMARK_MAX_DEPTH", "-1")
	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "DOCMARK_MAX_DEPTH")
}
