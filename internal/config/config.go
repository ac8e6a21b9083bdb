// Package config loads and validates slideforge configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-slideforge/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxPathLength   = 4096 // Filesystem limit on most platforms
	MaxNameLength   = 255  // Output filename
	MaxFormatLength = 10   // "pdf", "pptx"
	MaxMethodLength = 20   // "chrome", "weasyprint"

	// MaxWorkers mirrors the pool cap; higher values waste memory on
	// engine instances that never run concurrently.
	MaxWorkers = 64
)

// Config holds all configuration for slide conversion.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
}

// InputConfig defines slide discovery options.
type InputConfig struct {
	SlidesDir string `yaml:"slidesDir"` // Default slides directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir    string `yaml:"dir"`    // Default output directory (empty = current directory)
	Name   string `yaml:"name"`   // Default output filename (empty = slides.<format>)
	Format string `yaml:"format"` // "pdf" or "pptx" (default: "pdf")
}

// RenderConfig defines rendering engine options.
type RenderConfig struct {
	Method  string `yaml:"method"`  // "chrome" or "weasyprint" (default: "chrome")
	Timeout string `yaml:"timeout"` // Per-slide timeout, Go duration (default: "30s")
	Workers int    `yaml:"workers"` // Parallel workers, 0 = auto
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.slidesDir", c.Input.SlidesDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.name", c.Output.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.format", c.Output.Format, MaxFormatLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.method", c.Render.Method, MaxMethodLength); err != nil {
		return err
	}

	if c.Output.Format != "" {
		switch strings.ToLower(c.Output.Format) {
		case "pdf", "pptx":
			// valid
		default:
			return fmt.Errorf("output.format: invalid value %q (must be pdf or pptx)", c.Output.Format)
		}
	}

	if c.Render.Method != "" {
		switch strings.ToLower(c.Render.Method) {
		case "chrome", "weasyprint":
			// valid
		default:
			return fmt.Errorf("render.method: invalid value %q (must be chrome or weasyprint)", c.Render.Method)
		}
	}

	if c.Render.Timeout != "" {
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil {
			return fmt.Errorf("render.timeout: invalid duration %q", c.Render.Timeout)
		}
		if d <= 0 {
			return fmt.Errorf("render.timeout: must be positive, got %s", c.Render.Timeout)
		}
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("render.workers: must be between 0 and %d, got %d", MaxWorkers, c.Render.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration with built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{SlidesDir: ""},
		Output: OutputConfig{Format: "pdf"},
		Render: RenderConfig{Method: "chrome", Timeout: "30s", Workers: 0},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/slideforge/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "slideforge", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Timeout returns the parsed render timeout, falling back to 30s.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
