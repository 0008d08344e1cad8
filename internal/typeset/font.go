package typeset

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-fonts/latin-modern/lmmath"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face resolves runes to outlines and metrics expressed in em.
// It caches loaded glyphs and is safe for concurrent use.
type Face struct {
	font *sfnt.Font
	ppem fixed.Int26_6
	unit float64 // one 26.6 value at ppem, in em

	mu     sync.Mutex
	buf    sfnt.Buffer
	glyphs map[rune]*glyph
}

// glyph holds a rune's outline with the origin on the baseline, Y down.
type glyph struct {
	advance float64
	minX    float64
	maxX    float64
	height  float64 // ink above the baseline
	depth   float64 // ink below the baseline
	path    []Segment
}

var (
	defaultFaceOnce sync.Once
	defaultFace     *Face
	defaultFaceErr  error
)

// DefaultFace returns the embedded Latin Modern Math face.
func DefaultFace() (*Face, error) {
	defaultFaceOnce.Do(func() {
		defaultFace, defaultFaceErr = ParseFace(lmmath.TTF)
	})
	return defaultFace, defaultFaceErr
}

// ParseFace parses an OpenType or TrueType font.
func ParseFace(data []byte) (*Face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	upem := int(f.UnitsPerEm())
	if upem <= 0 {
		return nil, fmt.Errorf("%w: invalid units per em %d", ErrFontLoad, upem)
	}
	return &Face{
		font:   f,
		ppem:   fixed.I(upem),
		unit:   1 / (64 * float64(upem)),
		glyphs: make(map[rune]*glyph),
	}, nil
}

// Has reports whether the face has a glyph for r.
func (f *Face) Has(r rune) bool {
	_, err := f.glyph(r)
	return err == nil
}

func (f *Face) glyph(r rune) (*glyph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if g, ok := f.glyphs[r]; ok {
		if g == nil {
			return nil, ErrMissingGlyph
		}
		return g, nil
	}

	g, err := f.load(r)
	if errors.Is(err, ErrMissingGlyph) {
		f.glyphs[r] = nil
	}
	if err != nil {
		return nil, err
	}
	f.glyphs[r] = g
	return g, nil
}

// load must be called with f.mu held.
func (f *Face) load(r rune) (*glyph, error) {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	if idx == 0 {
		return nil, ErrMissingGlyph
	}

	adv, err := f.font.GlyphAdvance(&f.buf, idx, f.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}

	// Segments are only valid until the buffer is reused.
	segs, err := f.font.LoadGlyph(&f.buf, idx, f.ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}

	g := &glyph{
		advance: f.em(adv),
		path:    make([]Segment, len(segs)),
	}
	for i, s := range segs {
		op, n := convertOp(s.Op)
		g.path[i] = Segment{Op: op}
		for j := 0; j < n; j++ {
			g.path[i].Args[j] = Point{X: f.em(s.Args[j].X), Y: f.em(s.Args[j].Y)}
		}
	}
	if len(segs) > 0 {
		b := segs.Bounds()
		g.minX = f.em(b.Min.X)
		g.maxX = f.em(b.Max.X)
		g.height = -f.em(b.Min.Y)
		g.depth = f.em(b.Max.Y)
	}
	return g, nil
}

func (f *Face) em(v fixed.Int26_6) float64 {
	return float64(v) * f.unit
}

// convertOp maps an sfnt operator to ours and its argument count.
func convertOp(op sfnt.SegmentOp) (SegmentOp, int) {
	switch op {
	case sfnt.SegmentOpLineTo:
		return LineTo, 1
	case sfnt.SegmentOpQuadTo:
		return QuadTo, 2
	case sfnt.SegmentOpCubeTo:
		return CubeTo, 3
	default:
		return MoveTo, 1
	}
}
