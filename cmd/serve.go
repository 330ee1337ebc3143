package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerdneilsfield/plot-gallery/internal/config"
	"github.com/nerdneilsfield/plot-gallery/internal/gallery"
	"github.com/nerdneilsfield/plot-gallery/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cfg := &commonFlags{}
	var dir string
	var listen string

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the gallery page for a directory over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveConfig(cmd, cfg, func(c *config.Config) {
				if cmd.Flags().Changed("dir") {
					c.Dir = dir
				}
				if cmd.Flags().Changed("listen") {
					c.Listen = listen
				}
			})
			if err != nil {
				return err
			}
			if err := resolved.Validate(); err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Listen:     resolved.Listen,
				Dir:        resolved.Dir,
				Stylesheet: resolved.Stylesheet,
			}, gallery.New(nil))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	bindCommonFlags(cmd, cfg)
	flags := cmd.Flags()
	flags.StringVar(&dir, "dir", ".", "Directory holding the chart images")
	flags.StringVar(&listen, "listen", "127.0.0.1:8080", "Listen address (host:port)")
	return cmd
}
