// Package config handles meshtool configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all meshtool settings.
type Config struct {
	Mesh      MeshConfig      `yaml:"mesh"`
	Generator GeneratorConfig `yaml:"generator"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MeshConfig holds mesh store settings.
type MeshConfig struct {
	Tolerance float64 `yaml:"tolerance"` // Vertex deduplication quantization step
}

// GeneratorConfig describes the solid produced by the solid command.
type GeneratorConfig struct {
	Solid  string     `yaml:"solid"` // box, sphere or cylinder
	Size   [3]float32 `yaml:"size"`  // Box extents
	Radius float64    `yaml:"radius"`
	Height float64    `yaml:"height"`
	Round  float64    `yaml:"round"`
	Cells  int        `yaml:"cells"` // Marching cubes resolution
}

// OutputConfig holds where snapshots are written.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Tolerance: 1e-14,
		},
		Generator: GeneratorConfig{
			Solid:  "sphere",
			Size:   [3]float32{1, 1, 1},
			Radius: 1,
			Height: 2,
			Cells:  64,
		},
		Output: OutputConfig{
			Path: "mesh.msgpack",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would make mesh operations fail later.
func (c *Config) Validate() error {
	if c.Mesh.Tolerance <= 0 {
		return fmt.Errorf("%w: mesh.tolerance must be positive, got %g", ErrInvalidConfig, c.Mesh.Tolerance)
	}
	if c.Generator.Cells <= 0 {
		return fmt.Errorf("%w: generator.cells must be positive, got %d", ErrInvalidConfig, c.Generator.Cells)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}
