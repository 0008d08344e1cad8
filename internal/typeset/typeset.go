package typeset

// minExtent keeps document dimensions positive.
const minExtent = 1e-3

// Point is a position in em.
type Point struct {
	X, Y float64
}

// SegmentOp is a path operator.
type SegmentOp uint8

const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	CubeTo
)

// Segment is one path command. MoveTo and LineTo use Args[0], QuadTo uses
// Args[0:2] and CubeTo uses Args[0:3].
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// Path is a filled glyph outline made of closed contours, each starting
// with MoveTo.
type Path []Segment

// Rule is a filled rectangle such as a fraction bar.
type Rule struct {
	X, Y, W, H float64
}

// Document is a laid-out expression. Lengths are in em and Y grows
// downwards from the top edge of the document.
type Document struct {
	Width    float64
	Height   float64
	Baseline float64 // distance from the top edge to the baseline
	Display  bool
	Paths    []Path
	Rules    []Rule
}

// Options controls layout.
type Options struct {
	// Display selects display style with vertical margins instead of
	// inline text style.
	Display bool

	// Padding is added on every side, in em. Negative values count as zero.
	Padding float64
}

// Typesetter lays out math markup with a single font face.
// It holds no per-call state and is safe for concurrent use.
type Typesetter struct {
	face *Face
}

// New returns a Typesetter using face.
func New(face *Face) *Typesetter {
	return &Typesetter{face: face}
}

// NewDefault returns a Typesetter using the embedded math font.
func NewDefault() (*Typesetter, error) {
	face, err := DefaultFace()
	if err != nil {
		return nil, err
	}
	return New(face), nil
}

// Typeset parses markup and lays it out. Malformed markup yields a
// *SyntaxError, which matches ErrSyntax.
func (t *Typesetter) Typeset(markup string, opts Options) (*Document, error) {
	root, err := parse(markup)
	if err != nil {
		return nil, err
	}

	st := style{level: levelText}
	if opts.Display {
		st.level = levelDisplay
	}
	l := &layouter{face: t.face}
	b, err := l.list(root.items, st)
	if err != nil {
		return nil, err
	}
	if !hasInk(b) {
		return nil, syntaxErrorf(0, "expression has no visible content")
	}
	return newDocument(b, opts), nil
}

// hasInk reports whether b draws anything: a glyph with an outline or a
// rule with positive area.
func hasInk(b *box) bool {
	for _, p := range b.prims {
		if p.g == nil {
			if p.w > 0 && p.h > 0 {
				return true
			}
			continue
		}
		if len(p.g.path) > 0 {
			return true
		}
	}
	return false
}

func newDocument(b *box, opts Options) *Document {
	padX := max(opts.Padding, 0)
	padY := padX
	if opts.Display {
		padY += displayMarginVertical
	}

	doc := &Document{
		Width:    max(b.w+2*padX, minExtent),
		Height:   max(b.h+b.d+2*padY, minExtent),
		Baseline: padY + b.h,
		Display:  opts.Display,
	}

	for _, p := range b.prims {
		if p.g == nil {
			if p.w <= 0 || p.h <= 0 {
				continue
			}
			doc.Rules = append(doc.Rules, Rule{
				X: padX + p.x,
				Y: doc.Baseline - p.y - p.h,
				W: p.w,
				H: p.h,
			})
			continue
		}
		if len(p.g.path) == 0 {
			continue
		}
		path := make(Path, len(p.g.path))
		for i, seg := range p.g.path {
			path[i].Op = seg.Op
			for j, a := range seg.Args {
				path[i].Args[j] = Point{
					X: padX + p.x + a.X*p.sx,
					Y: doc.Baseline - p.y + a.Y*p.sy,
				}
			}
		}
		doc.Paths = append(doc.Paths, path)
	}
	return doc
}
