package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flytam/filenamify"
	"github.com/nerdneilsfield/plot-gallery/internal/config"
	"github.com/nerdneilsfield/plot-gallery/internal/gallery"
	"github.com/nerdneilsfield/plot-gallery/internal/server"
	"github.com/nerdneilsfield/plot-gallery/pkgs/constants"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRenderCmd() *cobra.Command {
	cfg := &commonFlags{}
	dirs := &stringSlice{}
	var out string
	var outDir string
	var jobs int
	var noProgress bool

	cmd := &cobra.Command{
		Use:          "render",
		Short:        "Write gallery pages for one or more directories",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveConfig(cmd, cfg, func(c *config.Config) {
				if cmd.Flags().Changed("out-dir") {
					c.OutDir = outDir
				}
				if cmd.Flags().Changed("jobs") {
					c.Jobs = jobs
				}
			})
			if err != nil {
				return err
			}
			if resolved.Jobs < 1 {
				return fmt.Errorf("jobs must be at least 1")
			}

			targets := dirs.Values()
			if len(targets) == 0 {
				targets = []string{resolved.Dir}
			}
			css, err := server.LoadStylesheet(resolved.Stylesheet)
			if err != nil {
				return err
			}

			renderer := gallery.New(nil)
			if len(targets) == 1 && resolved.OutDir == "" {
				return renderSingle(cmd.OutOrStdout(), renderer, targets[0], out, css)
			}
			if resolved.OutDir == "" {
				return fmt.Errorf("out-dir is required when rendering several directories")
			}

			startedAt := time.Now()
			bar := newProgressBar(nil, len(targets), "render", !noProgress)
			if err := renderAll(cmd.Context(), renderer, targets, resolved.OutDir, css, resolved.Jobs, bar); err != nil {
				return err
			}
			log.Infof("rendered %d gallery page(s) to %s in %s", len(targets), resolved.OutDir, formatDuration(time.Since(startedAt)))
			return nil
		},
	}

	bindCommonFlags(cmd, cfg)
	flags := cmd.Flags()
	flags.Var(dirs, "dir", "Image directory (repeatable or comma-separated)")
	flags.StringVar(&out, "out", "-", "Output file for a single directory (- for stdout)")
	flags.StringVar(&outDir, "out-dir", "", "Output directory, one page per image directory")
	flags.IntVar(&jobs, "jobs", constants.DefaultJobs, "Directories rendered in parallel")
	flags.BoolVar(&noProgress, "no-progress", false, "Hide the progress bar")
	return cmd
}

// renderSingle writes one page to w, or to the file out. Pages written to
// files reference their images by absolute path so they open from any
// location.
func renderSingle(w io.Writer, renderer *gallery.Renderer, dir string, out string, css []byte) error {
	if out == "" || out == "-" {
		return renderer.Render(w, dir)
	}
	if err := renderToFile(renderer, dir, out); err != nil {
		return err
	}
	return writeStylesheet(filepath.Dir(out), css)
}

func renderAll(ctx context.Context, renderer *gallery.Renderer, dirs []string, outDir string, css []byte, jobs int, bar *progressbar.ProgressBar) error {
	names, err := outputNames(dirs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := writeStylesheet(outDir, css); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			target := filepath.Join(outDir, names[i])
			if err := renderToFile(renderer, dir, target); err != nil {
				return fmt.Errorf("render %s: %w", dir, err)
			}
			log.Debugf("rendered gallery: dir=%s out=%s", dir, target)
			_ = bar.Add(1)
			return nil
		})
	}
	err = g.Wait()
	_ = bar.Finish()
	return err
}

func renderToFile(renderer *gallery.Renderer, dir string, target string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	if err := renderer.Render(buf, absDir); err != nil {
		return err
	}
	return os.WriteFile(target, buf.Bytes(), 0o644)
}

// outputNames maps each directory to a distinct page file name.
func outputNames(dirs []string) ([]string, error) {
	names := make([]string, 0, len(dirs))
	seen := map[string]string{}
	for _, dir := range dirs {
		source := filepath.Clean(dir)
		if source == "." || source == ".." {
			abs, err := filepath.Abs(source)
			if err != nil {
				return nil, err
			}
			source = filepath.Base(abs)
		}
		source = strings.TrimLeft(filepath.ToSlash(source), "/")
		name, err := filenamify.Filenamify(source, filenamify.Options{Replacement: "_"})
		if err != nil {
			return nil, fmt.Errorf("output name for %s: %w", dir, err)
		}
		name += ".html"
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("directories %s and %s both map to %s", prev, dir, name)
		}
		seen[name] = dir
		names = append(names, name)
	}
	return names, nil
}

// writeStylesheet places the stylesheet next to rendered pages, keeping any
// stylesheet already there.
func writeStylesheet(dir string, css []byte) error {
	path := filepath.Join(dir, constants.StylesheetName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			log.Debugf("keeping existing stylesheet: %s", path)
			return nil
		}
		return err
	}
	if _, err := f.Write(css); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
