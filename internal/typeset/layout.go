package typeset

import "errors"

// layouter converts an expression tree into boxes following the TeX
// appendix G rules, simplified to a single font.
type layouter struct {
	face *Face
}

func (l *layouter) glyph(r rune, pos int) (*glyph, error) {
	g, err := l.face.glyph(r)
	if errors.Is(err, ErrMissingGlyph) {
		return nil, syntaxErrorf(pos, "character %q is not available in the math font", r)
	}
	return g, err
}

type entry struct {
	b     *box
	class atomClass
	st    style
}

// list lays out items horizontally with inter-atom spacing.
func (l *layouter) list(items []node, st style) (*box, error) {
	entries := make([]entry, 0, len(items))
	for _, n := range items {
		if sc, ok := n.(*styleChange); ok {
			st = style{level: sc.level, cramped: st.cramped}
			continue
		}
		b, err := l.node(n, st)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{b: b, class: classOf(n), st: st})
	}

	// A binary operator without operands on both sides acts as ordinary.
	prev := -1
	for i := range entries {
		c := entries[i].class
		if c == classNone {
			continue
		}
		if c == classBin {
			if prev < 0 {
				entries[i].class = classOrd
			} else {
				switch entries[prev].class {
				case classBin, classOp, classRel, classOpen, classPunct:
					entries[i].class = classOrd
				}
			}
		}
		if (c == classRel || c == classClose || c == classPunct) && prev >= 0 && entries[prev].class == classBin {
			entries[prev].class = classOrd
		}
		prev = i
	}
	if prev >= 0 && entries[prev].class == classBin {
		entries[prev].class = classOrd
	}

	out := &box{}
	last := classNone
	for _, e := range entries {
		if e.class != classNone {
			if last != classNone {
				out.w += spaceBetween(last, e.class, e.st)
			}
			last = e.class
		}
		out.place(e.b, out.w, 0)
		out.w += e.b.w
		out.h = max(out.h, e.b.h)
		out.d = max(out.d, e.b.d)
	}
	return out, nil
}

func (l *layouter) node(n node, st style) (*box, error) {
	switch v := n.(type) {
	case *symbol:
		g, err := l.glyph(v.r, v.pos)
		if err != nil {
			return nil, err
		}
		s := st.size()
		return glyphBox(g, s, s, 0), nil
	case *group:
		return l.list(v.items, st)
	case *space:
		return kern(v.width * st.size()), nil
	case *operator:
		return l.operator(v, st)
	case *scripts:
		return l.scripts(v, st)
	case *fraction:
		return l.fraction(v, st)
	case *radical:
		return l.radical(v, st)
	case *delimited:
		body, err := l.list(v.body.items, st)
		if err != nil {
			return nil, err
		}
		return l.fence(body, v.left, v.right, st, v.pos)
	case *bigDelim:
		return l.delimiter(v.r, v.height*st.size(), st, v.pos)
	case *accent:
		return l.accent(v, st)
	case *stack:
		return l.stack(v, st)
	case *styleChange:
		return kern(0), nil
	}
	return nil, syntaxErrorf(n.position(), "unsupported construct")
}

func (l *layouter) operator(op *operator, st style) (*box, error) {
	s := st.size()
	if op.r == 0 {
		parts := make([]*box, 0, len(op.name))
		for _, r := range op.name {
			if r == ' ' {
				parts = append(parts, kern(s/6))
				continue
			}
			g, err := l.glyph(r, op.pos)
			if err != nil {
				return nil, err
			}
			parts = append(parts, glyphBox(g, s, s, 0))
		}
		return hbox(parts...), nil
	}

	g, err := l.glyph(op.r, op.pos)
	if err != nil {
		return nil, err
	}
	k := s
	if st.level == levelDisplay {
		if op.integral {
			k *= displayIntegralScale
		} else {
			k *= displayOperatorScale
		}
	}
	// Center the symbol on the math axis.
	dy := axisHeight*s - (g.height-g.depth)*k/2
	return glyphBox(g, k, k, dy), nil
}

func useLimits(op *operator, st style) bool {
	switch op.limits {
	case limitsAlways:
		return true
	case limitsNever:
		return false
	}
	return op.dflt && st.level == levelDisplay
}

func (l *layouter) scripts(n *scripts, st style) (*box, error) {
	base, err := l.node(n.base, st)
	if err != nil {
		return nil, err
	}
	var sup, sub *box
	if n.sup != nil {
		if sup, err = l.node(n.sup, st.sup()); err != nil {
			return nil, err
		}
	}
	if n.sub != nil {
		if sub, err = l.node(n.sub, st.sub()); err != nil {
			return nil, err
		}
	}

	op, isOp := n.base.(*operator)
	if isOp && useLimits(op, st) {
		return limits(base, sup, sub, st), nil
	}

	s := st.size()
	var u, v float64
	if _, isChar := n.base.(*symbol); !isChar {
		u = base.h - supBaselineDropMax*s
		v = base.d + subBaselineDropMin*s
	}

	var supShift, subShift float64
	if sup != nil {
		minUp := supShiftUp
		if st.cramped {
			minUp = supShiftUpCramped
		}
		supShift = max(u, minUp*s, sup.d+supBottomMin*s)
	}
	if sub != nil {
		if sup == nil {
			subShift = max(v, subShiftDown*s, sub.h-subTopMax*s)
		} else {
			subShift = max(v, subShiftDown*s)
			gap := (supShift - sup.d) - (sub.h - subShift)
			if gap < subSupGapMin*s {
				subShift += subSupGapMin*s - gap
				if psi := supBottomMaxWithSub*s - (supShift - sup.d); psi > 0 {
					supShift += psi
					subShift -= psi
				}
			}
		}
	}

	out := &box{w: base.w, h: base.h, d: base.d}
	out.place(base, 0, 0)
	right := base.w
	if sup != nil {
		out.place(sup, base.w, supShift)
		out.h = max(out.h, supShift+sup.h)
		right = max(right, base.w+sup.w)
	}
	if sub != nil {
		x := base.w
		if isOp && op.integral {
			// The integral sign slants, so its lower end sits further left.
			x -= 0.3 * base.w
		}
		out.place(sub, x, -subShift)
		out.d = max(out.d, subShift+sub.d)
		right = max(right, x+sub.w)
	}
	out.w = right + spaceAfterScript*s
	return out, nil
}

// limits centers sup above and sub below base.
func limits(base, sup, sub *box, st style) *box {
	s := st.size()
	w := base.w
	if sup != nil {
		w = max(w, sup.w)
	}
	if sub != nil {
		w = max(w, sub.w)
	}

	out := &box{w: w, h: base.h, d: base.d}
	out.place(base, (w-base.w)/2, 0)
	if sup != nil {
		y := base.h + max(upperLimitGapMin*s+sup.d, upperLimitRiseMin*s)
		out.place(sup, (w-sup.w)/2, y)
		out.h = y + sup.h + limitExtraSpace*s
	}
	if sub != nil {
		y := base.d + max(lowerLimitGapMin*s+sub.h, lowerLimitDropMin*s)
		out.place(sub, (w-sub.w)/2, -y)
		out.d = y + sub.d + limitExtraSpace*s
	}
	return out
}

func (l *layouter) fraction(f *fraction, st style) (*box, error) {
	if f.level >= 0 {
		st = style{level: f.level, cramped: st.cramped}
	}
	num, err := l.node(f.num, st.num())
	if err != nil {
		return nil, err
	}
	den, err := l.node(f.den, st.den())
	if err != nil {
		return nil, err
	}

	s := st.size()
	display := st.level == levelDisplay
	t := ruleThickness * s
	a := axisHeight * s

	var u, v float64
	if f.rule {
		u, v = numShiftUp*s, denShiftDown*s
		gap := fracGapMin * s
		if display {
			u, v, gap = numShiftUpDisplay*s, denShiftDownDisplay*s, fracGapMinDisplay*s
		}
		u = max(u, a+t/2+gap+num.d)
		v = max(v, den.h+gap+t/2-a)
	} else {
		u, v = stackTopShiftUp*s, stackBottomShiftDown*s
		gap := stackGapMin * s
		if display {
			u, v, gap = numShiftUpDisplay*s, denShiftDownDisplay*s, stackGapMinDisplay*s
		}
		if clearance := (u - num.d) - (den.h - v); clearance < gap {
			u += (gap - clearance) / 2
			v += (gap - clearance) / 2
		}
	}

	inner := max(num.w, den.w)
	pad := nullDelimiterSpace * s
	if f.hasDel {
		pad = 0
	}
	out := &box{w: inner + 2*pad, h: u + num.h, d: v + den.d}
	out.place(num, pad+(inner-num.w)/2, u)
	out.place(den, pad+(inner-den.w)/2, -v)
	if f.rule {
		out.rule(pad, a-t/2, inner, t)
	}
	if f.hasDel {
		return l.fence(out, f.left, f.right, st, f.pos)
	}
	return out, nil
}

// fence surrounds body with delimiters tall enough to cover it.
func (l *layouter) fence(body *box, left, right rune, st style, pos int) (*box, error) {
	s := st.size()
	a := axisHeight * s
	delta := max(body.h-a, body.d+a)
	target := max(2*delta*delimiterFactor, 2*delta-delimiterShortfall*s)

	lb, err := l.delimiter(left, target, st, pos)
	if err != nil {
		return nil, err
	}
	rb, err := l.delimiter(right, target, st, pos)
	if err != nil {
		return nil, err
	}
	return hbox(lb, body, rb), nil
}

// delimiter returns r stretched to at least target em and centered on the
// axis. A zero rune is the null delimiter.
func (l *layouter) delimiter(r rune, target float64, st style, pos int) (*box, error) {
	s := st.size()
	if r == 0 {
		return kern(nullDelimiterSpace * s), nil
	}
	g, err := l.glyph(r, pos)
	if err != nil {
		return nil, err
	}
	k := 1.0
	if natural := (g.height + g.depth) * s; natural > 0 && target > natural {
		k = target / natural
	}
	sy := s * k
	sx := s * min(1+(k-1)*0.15, 1.5)
	dy := axisHeight*s - (g.height-g.depth)*sy/2
	return glyphBox(g, sx, sy, dy), nil
}

func (l *layouter) radical(r *radical, st style) (*box, error) {
	body, err := l.node(r.body, st.cramp())
	if err != nil {
		return nil, err
	}
	g, err := l.glyph('√', r.pos)
	if err != nil {
		return nil, err
	}

	s := st.size()
	t := ruleThickness * s
	gap := radicalGap * s
	if st.level == levelDisplay {
		gap = radicalGapDisplay * s
	}

	k := 1.0
	need := body.h + body.d + gap + t
	if natural := (g.height + g.depth) * s; natural > 0 && need > natural {
		k = need / natural
	}
	sy := s * k
	sx := s * min(1+(k-1)*0.1, 1.3)
	ruleTop := body.h + gap + t
	dy := ruleTop - g.height*sy
	surd := glyphBox(g, sx, sy, dy)
	attach := g.maxX * sx

	out := &box{}
	lead := 0.0
	if r.index != nil {
		idx, err := l.node(r.index, style{level: levelScriptScript})
		if err != nil {
			return nil, err
		}
		before, after := radicalKernBefore*s, radicalKernAfter*s
		lead = max(0, before+idx.w+after)
		bottom := dy - g.depth*sy
		raise := bottom + radicalDegreeRaise*(ruleTop-bottom) + idx.d
		out.place(idx, lead-after-idx.w, raise)
		out.h = raise + idx.h
	}

	out.place(surd, lead, 0)
	out.place(body, lead+attach, 0)
	out.rule(lead+attach, ruleTop-t, body.w, t)
	out.w = lead + attach + body.w
	out.h = max(out.h, ruleTop+radicalExtraAscender*s)
	out.d = max(body.d, surd.d)
	return out, nil
}

func (l *layouter) accent(a *accent, st style) (*box, error) {
	body, err := l.node(a.body, st.cramp())
	if err != nil {
		return nil, err
	}
	s := st.size()
	t := ruleThickness * s

	switch a.kind {
	case accentOverline:
		out := &box{w: body.w, h: body.h + 5*t, d: body.d}
		out.place(body, 0, 0)
		out.rule(0, body.h+3*t, body.w, t)
		return out, nil
	case accentUnderline:
		out := &box{w: body.w, h: body.h, d: body.d + 5*t}
		out.place(body, 0, 0)
		out.rule(0, -(body.d + 4*t), body.w, t)
		return out, nil
	}

	var g *glyph
	for _, r := range a.rs {
		if l.face.Has(r) {
			if g, err = l.glyph(r, a.pos); err != nil {
				return nil, err
			}
			break
		}
	}
	if g == nil {
		return nil, syntaxErrorf(a.pos, "accent is not available in the math font")
	}

	sx, sy := s, s
	if ink := g.maxX - g.minX; a.kind == accentWide && ink > 0 {
		k := max(1, 0.9*body.w/(ink*s))
		sx, sy = s*k, s*min(k, 1.3)
	}
	// Rest the bottom of the accent ink just above the body.
	dy := max(body.h, xHeight*s) + accentGap*s + g.depth*sy
	x := body.w/2 - (g.minX+g.maxX)/2*sx

	out := &box{w: body.w, h: max(body.h, dy+g.height*sy), d: body.d}
	out.place(body, 0, 0)
	out.prims = append(out.prims, prim{g: g, x: x, y: dy, sx: sx, sy: sy})
	return out, nil
}

func (l *layouter) stack(n *stack, st style) (*box, error) {
	base, err := l.node(n.base, st)
	if err != nil {
		return nil, err
	}
	var over, under *box
	if n.over != nil {
		if over, err = l.node(n.over, st.sup()); err != nil {
			return nil, err
		}
	}
	if n.under != nil {
		if under, err = l.node(n.under, st.sub()); err != nil {
			return nil, err
		}
	}
	return limits(base, over, under, st), nil
}
