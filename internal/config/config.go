package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eea/tex2png"
	"github.com/eea/tex2png/internal/fileutil"
	"github.com/eea/tex2png/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "tex2png"

// Field length limits.
const (
	MaxEngineLength  = 20
	MaxColorLength   = 7  // "#rrggbb"
	MaxTimeoutLength = 30 // "1m30s"
)

// Config holds all configuration for rendering.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Input  InputConfig  `yaml:"input"`
}

// RenderConfig defines how expressions are drawn.
type RenderConfig struct {
	Engine     string   `yaml:"engine"`     // "vector" or "browser" (default: "vector")
	FontSize   float64  `yaml:"fontSize"`   // SVG pixels per em, 0 = default
	Color      string   `yaml:"color"`      // Hex color, empty = default
	Background string   `yaml:"background"` // Hex color, empty = transparent
	Padding    *float64 `yaml:"padding"`    // em around the expression, nil = default
	Timeout    string   `yaml:"timeout"`    // Browser page load timeout, e.g. "30s"
}

// InputConfig defines limits on standard input.
type InputConfig struct {
	MaxBytes int64 `yaml:"maxBytes"` // 0 = unbounded
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (r RenderConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout: must be positive, got %s", ErrInvalidValue, r.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	r := c.Render

	if err := validateFieldLength("render.engine", r.Engine, MaxEngineLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.color", r.Color, MaxColorLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.background", r.Background, MaxColorLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.timeout", r.Timeout, MaxTimeoutLength); err != nil {
		return err
	}

	switch strings.ToLower(r.Engine) {
	case "", tex2png.EngineVector, tex2png.EngineBrowser:
	default:
		return fmt.Errorf("%w: render.engine: %q (must be %s or %s)", ErrInvalidValue, r.Engine, tex2png.EngineVector, tex2png.EngineBrowser)
	}
	if r.FontSize != 0 && (r.FontSize < tex2png.MinFontSize || r.FontSize > tex2png.MaxFontSize) {
		return fmt.Errorf("%w: render.fontSize: must be between %g and %g, got %g", ErrInvalidValue, tex2png.MinFontSize, tex2png.MaxFontSize, r.FontSize)
	}
	if r.Color != "" && !tex2png.IsValidColor(r.Color) {
		return fmt.Errorf("%w: render.color: %q is not a #rgb or #rrggbb color", ErrInvalidValue, r.Color)
	}
	if r.Background != "" && !tex2png.IsValidColor(r.Background) {
		return fmt.Errorf("%w: render.background: %q is not a #rgb or #rrggbb color", ErrInvalidValue, r.Background)
	}
	if r.Padding != nil && (*r.Padding < 0 || *r.Padding > tex2png.MaxPadding) {
		return fmt.Errorf("%w: render.padding: must be between 0 and %g, got %g", ErrInvalidValue, tex2png.MaxPadding, *r.Padding)
	}
	if _, err := r.TimeoutDuration(); err != nil {
		return err
	}

	if c.Input.MaxBytes < 0 {
		return fmt.Errorf("%w: input.maxBytes: must not be negative, got %d", ErrInvalidValue, c.Input.MaxBytes)
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

// DefaultConfig returns a configuration where every field selects the
// library default.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{Engine: tex2png.EngineVector},
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

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yamlutil.DecodeStrict(f, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists where LoadConfig looks for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
