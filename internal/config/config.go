// Package config loads the optional gamescout config file. Absence of the
// file is not an error; every field has a sensible zero default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gamescout/internal/detect"
)

const defaultDebounceMS = 500

// Config is the on-disk configuration.
type Config struct {
	// DisabledSources lists source slugs to skip entirely.
	DisabledSources []string    `yaml:"disabled_sources"`
	Steam           SteamConfig `yaml:"steam"`
	Watch           WatchConfig `yaml:"watch"`
}

// SteamConfig tunes the Steam adapter.
type SteamConfig struct {
	// ExtraLibraries adds Steam library roots not listed in
	// libraryfolders.vdf.
	ExtraLibraries []string `yaml:"extra_libraries"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Watch: WatchConfig{DebounceMS: defaultDebounceMS}}
}

// DefaultPath returns the conventional config file location.
func DefaultPath(dirs detect.Dirs) string {
	return filepath.Join(dirs.Config, "gamescout", "config.yaml")
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Watch.DebounceMS <= 0 {
		cfg.Watch.DebounceMS = defaultDebounceMS
	}
	return cfg, nil
}

// Disabled resolves the configured slugs to sources.
func (c *Config) Disabled() ([]detect.Source, error) {
	var out []detect.Source
	for _, slug := range c.DisabledSources {
		src, err := detect.ParseSource(slug)
		if err != nil {
			return nil, fmt.Errorf("disabled_sources: %w", err)
		}
		out = append(out, src)
	}
	return out, nil
}
