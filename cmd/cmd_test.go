package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nerdneilsfield/plot-gallery/internal/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeImageDir(t *testing.T, root string, name string, files ...string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, file := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte("12345"), 0o644))
	}
	return dir
}

func TestStringSlice(t *testing.T) {
	s := &stringSlice{}
	require.NoError(t, s.Set("a, b,,"))
	require.NoError(t, s.Set("c"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Values())
	assert.Equal(t, "a,b,c", s.String())
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 MB", formatBytes(2*1024*1024))
	assert.Equal(t, "?", formatSize(-1))
}

func TestOutputNames(t *testing.T) {
	names, err := outputNames([]string{"plots", "runs/a", "/data/b/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"plots.html", "runs_a.html", "data_b.html"}, names)

	_, err = outputNames([]string{"plots", "./plots"})
	assert.Error(t, err)
}

func TestRenderSingleStdout(t *testing.T) {
	dir := makeImageDir(t, t.TempDir(), "plots", "a.png", "b.txt")
	buf := &bytes.Buffer{}

	require.NoError(t, renderSingle(buf, gallery.New(nil), dir, "-", []byte("css")))
	assert.Equal(t, 1, strings.Count(buf.String(), "<li>"))
}

func TestRenderSingleFile(t *testing.T) {
	root := t.TempDir()
	dir := makeImageDir(t, root, "plots", "a.png")
	out := filepath.Join(root, "page.html")

	require.NoError(t, renderSingle(io.Discard, gallery.New(nil), dir, out, []byte("css")))

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), `src="`+filepath.Join(dir, "a.png")+`"`)

	css, err := os.ReadFile(filepath.Join(root, "trf_stylesheet.css"))
	require.NoError(t, err)
	assert.Equal(t, "css", string(css))
}

func TestRenderAll(t *testing.T) {
	root := t.TempDir()
	first := makeImageDir(t, root, "first", "a.png", "notes.md")
	second := makeImageDir(t, root, "second", "b.GIF", "c.jpeg")
	outDir := filepath.Join(root, "site")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "trf_stylesheet.css"), []byte("mine"), 0o644))

	bar := newProgressBar(io.Discard, 2, "render", false)
	err := renderAll(context.Background(), gallery.New(nil), []string{first, second}, outDir, []byte("css"), 2, bar)
	require.NoError(t, err)

	names, err := outputNames([]string{first, second})
	require.NoError(t, err)
	page, err := os.ReadFile(filepath.Join(outDir, names[0]))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(page), "<li>"))
	page, err = os.ReadFile(filepath.Join(outDir, names[1]))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(page), "<li>"))

	css, err := os.ReadFile(filepath.Join(outDir, "trf_stylesheet.css"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(css))
}

func TestRenderAllMissingDirectory(t *testing.T) {
	root := t.TempDir()
	ok := makeImageDir(t, root, "ok", "a.png")
	missing := filepath.Join(root, "missing")

	bar := newProgressBar(io.Discard, 2, "render", false)
	err := renderAll(context.Background(), gallery.New(nil), []string{ok, missing}, filepath.Join(root, "site"), nil, 1, bar)
	require.Error(t, err)

	var accessErr *gallery.DirectoryAccessError
	assert.ErrorAs(t, err, &accessErr)
}

func TestListItems(t *testing.T) {
	dir := makeImageDir(t, t.TempDir(), "plots", "a.png", "b.csv", "c.JPG")
	buf := &bytes.Buffer{}

	require.NoError(t, listItems(buf, gallery.New(nil), dir))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, filepath.Join(dir, "a.png")+"\t5 B", lines[0])
	assert.Equal(t, filepath.Join(dir, "c.JPG")+"\t5 B", lines[1])
	assert.Equal(t, "2 image(s), 10 B", lines[2])
}

func TestListItemsMissingDirectory(t *testing.T) {
	err := listItems(io.Discard, gallery.New(nil), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd("1.0.0", "today", "abc123")
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "plot-gallery 1.0.0 (built today, commit abc123)\n", buf.String())
}

func TestConfigFlagBeforeSubcommand(t *testing.T) {
	root := t.TempDir()
	dir := makeImageDir(t, root, "plots", "a.png", "b.txt")
	cfgPath := filepath.Join(root, "gallery.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dir: "+dir+"\n"), 0o644))
	t.Cleanup(func() { configPath = "" })

	cmd := newRootCmd("dev", "unknown", "unknown")
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--config", cfgPath, "list"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), filepath.Join(dir, "a.png"))
	assert.Contains(t, buf.String(), "1 image(s), 5 B")
}
