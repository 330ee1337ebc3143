package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nerdneilsfield/plot-gallery/pkgs/constants"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

type Config struct {
	Dir        string `yaml:"dir"`
	Listen     string `yaml:"listen"`
	Stylesheet string `yaml:"stylesheet"`
	OutDir     string `yaml:"outDir"`
	Jobs       int    `yaml:"jobs"`
}

func Default() Config {
	return Config{
		Dir:    constants.DefaultDir,
		Listen: constants.DefaultListen,
		Jobs:   constants.DefaultJobs,
	}
}

// Load reads an INI or YAML config file. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		if err := loadINI(path, &cfg); err != nil {
			return Config{}, err
		}
	case ".yaml", ".yml":
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	cfg.normalize()
	return cfg, nil
}

func loadINI(path string, cfg *Config) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}
	section := file.Section("Gallery")
	cfg.Dir = section.Key("dir").MustString(cfg.Dir)
	cfg.Listen = section.Key("listen").MustString(cfg.Listen)
	cfg.Stylesheet = section.Key("stylesheet").MustString(cfg.Stylesheet)
	cfg.OutDir = section.Key("out_dir").MustString(cfg.OutDir)
	cfg.Jobs = section.Key("jobs").MustInt(cfg.Jobs)
	return nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) normalize() {
	c.Dir = strings.TrimSpace(c.Dir)
	c.Listen = strings.TrimSpace(c.Listen)
	c.Stylesheet = strings.TrimSpace(c.Stylesheet)
	c.OutDir = strings.TrimSpace(c.OutDir)
	if c.Dir == "" {
		c.Dir = constants.DefaultDir
	}
}

func (c Config) Validate() error {
	if err := ValidateListenAddr(c.Listen); err != nil {
		return err
	}
	if c.Jobs < 1 {
		return errors.New("jobs must be at least 1")
	}
	return nil
}

func ValidateListenAddr(addr string) error {
	if addr == "" {
		return errors.New("listen address is required")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("listen address must be in host:port format")
	}
	if host == "" {
		return errors.New("listen host is required")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("listen port is invalid")
	}

	return nil
}
