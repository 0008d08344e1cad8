package tex2png

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterizer turns SVG markup into a PNG exactly width pixels wide, with the
// height following the SVG aspect ratio.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, width int) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Rasterizer = (*vectorRasterizer)(nil)

// errInvalidSize reports an SVG without a usable viewBox.
var errInvalidSize = errors.New("svg has no positive width and height")

// vectorRasterizer draws SVG paths in-process with oksvg and rasterx.
// It holds no state and is safe for concurrent use.
type vectorRasterizer struct{}

func newVectorRasterizer() *vectorRasterizer {
	return &vectorRasterizer{}
}

func (v *vectorRasterizer) Rasterize(ctx context.Context, svg []byte, width int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	icon, err := parseSVG(svg)
	if err != nil {
		return nil, err
	}
	w, h, err := targetSize(icon, width)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// parseSVG reads svg strictly so unsupported elements fail loudly instead
// of vanishing from the image.
func parseSVG(svg []byte) (*oksvg.SvgIcon, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing SVG: %w", err)
	}
	return icon, nil
}

// targetSize scales the icon's viewBox to width pixels.
func targetSize(icon *oksvg.SvgIcon, width int) (int, int, error) {
	vb := icon.ViewBox
	if width <= 0 {
		return 0, 0, fmt.Errorf("invalid target width %d", width)
	}
	if !(vb.W > 0) || !(vb.H > 0) || math.IsInf(vb.W, 0) || math.IsInf(vb.H, 0) {
		return 0, 0, errInvalidSize
	}
	height := scaledHeight(vb.W, vb.H, width)
	if height > MaxHeight {
		return 0, 0, fmt.Errorf("%w: %d pixels high at width %d, limit is %d", ErrImageTooTall, height, width, MaxHeight)
	}
	return width, height, nil
}

// scaledHeight keeps the aspect ratio of w by h at the given width.
// Results past MaxHeight saturate at MaxHeight+1 so the int conversion
// cannot overflow.
func scaledHeight(w, h float64, width int) int {
	return max(1, int(math.Min(math.Round(float64(width)*h/w), MaxHeight+1)))
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
