package tex2png

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/eea/tex2png/internal/svgwriter"
)

// Converter orchestrates the markup to PNG pipeline.
// Create with NewConverter, use Convert for conversion, and Close when done.
// Convert holds no per-call state and may be called concurrently.
type Converter struct {
	cfg        converterConfig
	typesetter TypesetEngine
	rasterizer Rasterizer
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithEngine, WithColor, WithTimeout).
// Returns an error if an option value is invalid or the math font cannot load.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{cfg: defaultConfig()}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	// Create engines if not injected (e.g., by tests)
	if c.typesetter == nil {
		ts, err := newBuiltinTypesetter(c.cfg.padding)
		if err != nil {
			return nil, err
		}
		c.typesetter = ts
	}
	if c.rasterizer == nil {
		switch c.cfg.engine {
		case EngineBrowser:
			c.rasterizer = newBrowserRasterizer(c.cfg.timeout)
		default:
			c.rasterizer = newVectorRasterizer()
		}
	}

	return c, nil
}

// Convert typesets, serializes and rasterizes one expression.
// The result is all or nothing: on error no partial image is returned.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	markup := strings.TrimSpace(input.Markup)
	if markup == "" {
		return nil, ErrEmptyMarkup
	}

	doc, err := c.typesetter.Typeset(ctx, markup, input.Display)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	svg := svgwriter.Marshal(doc, svgwriter.Options{
		FontSize:   c.cfg.fontSize,
		Color:      c.cfg.color,
		Background: c.cfg.background,
	})

	img, err := c.rasterizer.Rasterize(ctx, svg, TargetWidth)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrRasterization, err)
	}

	// Check the width contract for every backend, including injected ones.
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("%w: output is not a PNG: %v", ErrRasterization, err)
	}
	if cfg.Width != TargetWidth {
		return nil, fmt.Errorf("%w: image is %d pixels wide, want %d", ErrRasterization, cfg.Width, TargetWidth)
	}

	return &ConvertResult{
		PNG:    img,
		SVG:    svg,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Close releases rasterizer resources such as a headless browser.
func (c *Converter) Close() error {
	if closer, ok := c.rasterizer.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
