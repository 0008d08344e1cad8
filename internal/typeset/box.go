package typeset

// prim is a positioned glyph or filled rule. Coordinates are in em with
// Y growing upwards from the owning box's baseline origin.
type prim struct {
	g      *glyph
	x, y   float64 // glyph origin, or rule bottom-left corner
	sx, sy float64 // glyph scale
	w, h   float64 // rule size
}

// box is a laid-out item with TeX dimensions.
type box struct {
	w, h, d float64
	prims   []prim
}

// place copies c's primitives into b, offset by (dx, dy).
func (b *box) place(c *box, dx, dy float64) {
	for _, p := range c.prims {
		p.x += dx
		p.y += dy
		b.prims = append(b.prims, p)
	}
}

func (b *box) rule(x, y, w, h float64) {
	b.prims = append(b.prims, prim{x: x, y: y, w: w, h: h})
}

// hbox concatenates boxes left to right on a shared baseline.
func hbox(parts ...*box) *box {
	out := &box{}
	for _, p := range parts {
		out.place(p, out.w, 0)
		out.w += p.w
		out.h = max(out.h, p.h)
		out.d = max(out.d, p.d)
	}
	return out
}

func kern(w float64) *box {
	return &box{w: w}
}

// glyphBox wraps a glyph scaled independently on each axis and raised by dy.
func glyphBox(g *glyph, sx, sy, dy float64) *box {
	return &box{
		w:     g.advance * sx,
		h:     max(0, g.height*sy+dy),
		d:     max(0, g.depth*sy-dy),
		prims: []prim{{g: g, y: dy, sx: sx, sy: sy}},
	}
}
