package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFontURL is the fallback font source, fetched at most once.
const DefaultFontURL = "https://raw.githubusercontent.com/google/fonts/main/ofl/roboto/Roboto-Regular.ttf"

type Config struct {
	Font struct {
		CachePath       string   `yaml:"cache_path"`
		SystemPaths     []string `yaml:"system_paths"`
		FallbackURL     string   `yaml:"fallback_url"`
		DownloadTimeout string   `yaml:"download_timeout"`
	} `yaml:"font"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Log struct {
		Path  string `yaml:"path"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the config used when no file exists.
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

// Load reads YAML config from path. A missing file is not an error: the tool
// must run with no config at all, so defaults are returned instead.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Font.CachePath == "" {
		cfg.Font.CachePath = "fonts/arial.ttf"
	}
	if cfg.Font.FallbackURL == "" {
		cfg.Font.FallbackURL = DefaultFontURL
	}
	if cfg.Font.DownloadTimeout == "" {
		cfg.Font.DownloadTimeout = "10s"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "exports"
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = "logs/examgen.log"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Timeout parses a duration string or returns the fallback if empty or invalid.
func Timeout(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
