package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file when -config is not given.
const EnvConfig = "MESHTOOL_CONFIG"

// Load resolves the configuration: defaults, then the first config file
// found, then command-line flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolveConfigPath(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath prefers -config, then $MESHTOOL_CONFIG, then the search
// locations. Explicit paths are returned even when missing so the read
// error surfaces.
func resolveConfigPath() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return findConfigFile()
}

// findConfigFile returns the first existing file among ./meshtool.yaml and
// <ConfigDir>/config.yaml.
func findConfigFile() string {
	for _, path := range []string{
		"meshtool.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user meshkit config directory.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".meshkit")
	}
	if runtime.GOOS == "linux" {
		return filepath.Join(dir, "meshkit")
	}
	return filepath.Join(dir, "Meshkit")
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so a
// misspelled setting does not silently fall back to its default.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
