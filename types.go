package tex2png

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TargetWidth is the pixel width of every rendered image.
const TargetWidth = 2000

// MaxHeight caps the pixel height of a rendered image. Tall stacks of
// markup would otherwise need a canvas of several gigabytes.
const MaxHeight = 20000

// Engine names for the rasterization backend.
const (
	EngineVector  = "vector"
	EngineBrowser = "browser"
)

// Render setting bounds.
const (
	MinFontSize     = 8.0
	MaxFontSize     = 400.0
	DefaultFontSize = 40.0
	MaxPadding      = 2.0
	DefaultPadding  = 0.1
	DefaultColor    = "#000000"
)

// defaultTimeout bounds browser page loads when the context has no deadline.
const defaultTimeout = 30 * time.Second

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Input contains conversion parameters.
type Input struct {
	Markup  string // TeX math markup (required, surrounding whitespace ignored)
	Display bool   // display style instead of inline
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	PNG    []byte // encoded image, TargetWidth pixels wide
	SVG    []byte // intermediate vector image
	Width  int
	Height int
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine     string
	fontSize   float64
	color      string
	background string
	padding    float64
	timeout    time.Duration
}

func defaultConfig() converterConfig {
	return converterConfig{
		engine:   EngineVector,
		fontSize: DefaultFontSize,
		color:    DefaultColor,
		padding:  DefaultPadding,
		timeout:  defaultTimeout,
	}
}

// validate checks settings applied through options.
func (c converterConfig) validate() error {
	switch c.engine {
	case EngineVector, EngineBrowser:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, c.engine, EngineVector, EngineBrowser)
	}
	if c.fontSize < MinFontSize || c.fontSize > MaxFontSize {
		return fmt.Errorf("%w: %g (must be between %g and %g)", ErrInvalidFontSize, c.fontSize, MinFontSize, MaxFontSize)
	}
	if c.padding < 0 || c.padding > MaxPadding {
		return fmt.Errorf("%w: %g (must be between 0 and %g)", ErrInvalidPadding, c.padding, MaxPadding)
	}
	if !IsValidColor(c.color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c.color)
	}
	if c.background != "" && !IsValidColor(c.background) {
		return fmt.Errorf("%w: background %q", ErrInvalidColor, c.background)
	}
	return nil
}

// IsValidColor reports whether s is a #rgb or #rrggbb color.
func IsValidColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// WithTimeout sets the browser page load timeout used when the context
// passed to Convert has no deadline.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("tex2png: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the rasterization backend by name.
// Unknown names make NewConverter fail with ErrUnknownEngine.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = strings.ToLower(strings.TrimSpace(name))
	}
}

// WithFontSize sets how many SVG pixels one em spans. It changes the
// intermediate SVG only; the image is always scaled to TargetWidth.
func WithFontSize(px float64) Option {
	return func(c *Converter) {
		c.cfg.fontSize = px
	}
}

// WithColor sets the fill color for glyphs and rules.
func WithColor(hex string) Option {
	return func(c *Converter) {
		c.cfg.color = hex
	}
}

// WithBackground sets an opaque background. Empty means transparent.
func WithBackground(hex string) Option {
	return func(c *Converter) {
		c.cfg.background = hex
	}
}

// WithPadding sets the margin around the expression in em.
func WithPadding(em float64) Option {
	return func(c *Converter) {
		c.cfg.padding = em
	}
}

// WithTypesetter replaces the typesetting engine.
func WithTypesetter(t TypesetEngine) Option {
	return func(c *Converter) {
		c.typesetter = t
	}
}

// WithRasterizer replaces the rasterization backend, overriding WithEngine.
func WithRasterizer(r Rasterizer) Option {
	return func(c *Converter) {
		c.rasterizer = r
	}
}
