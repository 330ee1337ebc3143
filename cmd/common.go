package cmd

import (
	"strings"

	"github.com/nerdneilsfield/plot-gallery/internal/config"
	"github.com/spf13/cobra"
)

type commonFlags struct {
	stylesheet string
}

func bindCommonFlags(cmd *cobra.Command, cfg *commonFlags) {
	flags := cmd.Flags()
	flags.StringVar(&cfg.stylesheet, "stylesheet", "", "Stylesheet served as trf_stylesheet.css (built-in when empty)")
}

// resolveConfig loads the file named by the persistent --config flag, if
// any, and applies the flags the user set explicitly on top of it.
func resolveConfig(cmd *cobra.Command, cfg *commonFlags, overrides func(c *config.Config)) (config.Config, error) {
	resolved := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		resolved = loaded
	}
	if cmd.Flags().Changed("stylesheet") {
		resolved.Stylesheet = strings.TrimSpace(cfg.stylesheet)
	}
	if overrides != nil {
		overrides(&resolved)
	}
	return resolved, nil
}

type stringSlice struct {
	values []string
}

func (s *stringSlice) String() string {
	return strings.Join(s.values, ",")
}

func (s *stringSlice) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			s.values = append(s.values, part)
		}
	}
	return nil
}

func (s *stringSlice) Type() string {
	return "stringSlice"
}

func (s *stringSlice) Values() []string {
	return s.values
}
