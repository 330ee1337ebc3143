package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/nerdneilsfield/plot-gallery/internal/config"
	"github.com/nerdneilsfield/plot-gallery/internal/gallery"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cfg := &commonFlags{}
	var dir string

	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List the images a gallery would show",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveConfig(cmd, cfg, func(c *config.Config) {
				if cmd.Flags().Changed("dir") {
					c.Dir = dir
				}
			})
			if err != nil {
				return err
			}
			return listItems(cmd.OutOrStdout(), gallery.New(nil), resolved.Dir)
		},
	}

	bindCommonFlags(cmd, cfg)
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding the chart images")
	return cmd
}

func listItems(w io.Writer, renderer *gallery.Renderer, dir string) error {
	items, err := renderer.Items(dir)
	if err != nil {
		return err
	}

	total := int64(0)
	for _, item := range items {
		size := int64(-1)
		if info, err := os.Stat(item.Path); err == nil {
			size = info.Size()
			total += size
		} else {
			log.Debugf("stat failed: path=%s err=%v", item.Path, err)
		}
		fmt.Fprintf(w, "%s\t%s\n", item.Path, formatSize(size))
	}
	fmt.Fprintf(w, "%d image(s), %s\n", len(items), formatBytes(total))
	return nil
}
