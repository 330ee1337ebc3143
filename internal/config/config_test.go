package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadINI(t *testing.T) {
	path := writeFile(t, "gallery.ini", `[Gallery]
dir = plots
listen = 0.0.0.0:9000
stylesheet = style/trf.css
jobs = 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "plots", cfg.Dir)
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, "style/trf.css", cfg.Stylesheet)
	assert.Equal(t, "", cfg.OutDir)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestLoadYAMLKeepsDefaults(t *testing.T) {
	path := writeFile(t, "gallery.yaml", "dir: \" charts \"\noutDir: site\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "charts", cfg.Dir)
	assert.Equal(t, "site", cfg.OutDir)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, 4, cfg.Jobs)
}

func TestLoadUnsupported(t *testing.T) {
	path := writeFile(t, "gallery.toml", "dir = 'x'")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	for _, addr := range []string{"", "8080", ":8080", "host:0", "host:70000", "host:http"} {
		cfg := Default()
		cfg.Listen = addr
		assert.Error(t, cfg.Validate(), addr)
	}

	cfg.Jobs = 0
	assert.Error(t, cfg.Validate())
}
