package typeset

// maxNesting bounds group and command recursion.
const maxNesting = 256

// listEnd tells parseList which token ends the current list.
type listEnd uint8

const (
	ctxTop listEnd = iota
	ctxGroup
	ctxLeft
	ctxOptional
)

type parser struct {
	toks  []token
	i     int
	font  fontVariant
	depth int
}

// parse turns markup into an expression tree.
func parse(src string) (*group, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	items, err := p.parseList(ctxTop, 0)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, syntaxErrorf(0, "empty expression")
	}
	return &group{items: items}, nil
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) skipSpaces() {
	for p.peek().kind == tokSpace {
		p.i++
	}
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > maxNesting {
		return syntaxErrorf(pos, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseList reads atoms until the terminator for ctx. The terminator is
// left unconsumed. open is the offset of the construct that began the list.
func (p *parser) parseList(ctx listEnd, open int) ([]node, error) {
	var items []node
	for {
		t := p.peek()
		switch {
		case t.kind == tokSpace:
			p.i++
			continue
		case t.kind == tokEOF:
			switch ctx {
			case ctxGroup:
				return nil, syntaxErrorf(open, "missing closing brace")
			case ctxLeft:
				return nil, syntaxErrorf(open, `missing \right`)
			case ctxOptional:
				return nil, syntaxErrorf(open, "missing closing bracket")
			}
			return items, nil
		case t.kind == tokClose:
			if ctx == ctxGroup {
				return items, nil
			}
			return nil, syntaxErrorf(t.pos, "unbalanced closing brace")
		case t.kind == tokCommand && t.text == "right":
			if ctx == ctxLeft {
				return items, nil
			}
			return nil, syntaxErrorf(t.pos, `\right without matching \left`)
		case ctx == ctxOptional && t.kind == tokChar && t.r == ']':
			return items, nil
		}

		n, err := p.parseScripted()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
}

// parseScripted reads one atom with any trailing scripts, primes and
// \limits modifiers.
func (p *parser) parseScripted() (node, error) {
	start := p.peek().pos
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	var sup, sub node
	var primes []node
	for {
		p.skipSpaces()
		t := p.peek()
		switch {
		case t.kind == tokCommand && (t.text == "limits" || t.text == "nolimits"):
			op, ok := base.(*operator)
			if !ok || sup != nil || sub != nil {
				return nil, syntaxErrorf(t.pos, `\%s is allowed only on operators`, t.text)
			}
			p.i++
			op.limits = limitsAlways
			if t.text == "nolimits" {
				op.limits = limitsNever
			}
			continue
		case t.kind == tokChar && t.r == '\'':
			if sup != nil {
				return nil, syntaxErrorf(t.pos, "double superscript")
			}
			p.i++
			primes = append(primes, &symbol{pos: t.pos, r: '′', class: classOrd})
			continue
		case t.kind == tokSup:
			if sup != nil {
				return nil, syntaxErrorf(t.pos, "double superscript")
			}
			p.i++
			if sup, err = p.parseArg("^", t.pos); err != nil {
				return nil, err
			}
			continue
		case t.kind == tokSub:
			if sub != nil {
				return nil, syntaxErrorf(t.pos, "double subscript")
			}
			p.i++
			if sub, err = p.parseArg("_", t.pos); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if len(primes) > 0 {
		if sup != nil {
			primes = append(primes, sup)
		}
		sup = &group{pos: primes[0].position(), items: primes}
	}
	if sup == nil && sub == nil {
		return base, nil
	}
	return &scripts{pos: start, base: base, sup: sup, sub: sub}, nil
}

// parseAtom reads a single atom without scripts.
func (p *parser) parseAtom() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokSup, tokSub:
		// Scripts on an empty base, as in {}^2.
		return &group{pos: t.pos}, nil
	case tokChar:
		if t.r == '\'' {
			return &group{pos: t.pos}, nil
		}
		p.i++
		return p.charAtom(t)
	case tokOpen:
		return p.parseGroup()
	case tokCommand:
		p.i++
		return p.command(t)
	}
	return nil, syntaxErrorf(t.pos, "unexpected input")
}

// parseGroup reads {...}; the current token must be the opening brace.
func (p *parser) parseGroup() (*group, error) {
	open := p.next()
	if err := p.enter(open.pos); err != nil {
		return nil, err
	}
	defer p.leave()

	items, err := p.parseList(ctxGroup, open.pos)
	if err != nil {
		return nil, err
	}
	p.next() // closing brace
	return &group{pos: open.pos, items: items}, nil
}

// parseArg reads a command or script argument: a group or a single atom.
func (p *parser) parseArg(owner string, ownerPos int) (node, error) {
	p.skipSpaces()
	t := p.peek()
	switch t.kind {
	case tokOpen:
		return p.parseGroup()
	case tokChar:
		p.i++
		return p.charAtom(t)
	case tokCommand:
		if t.text == "right" {
			break
		}
		p.i++
		if err := p.enter(t.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		return p.command(t)
	}
	return nil, syntaxErrorf(ownerPos, "missing argument for %s", owner)
}

// parseFontArg parses an argument with a font variant in effect.
func (p *parser) parseFontArg(v fontVariant, owner string, pos int) (node, error) {
	saved := p.font
	p.font = v
	defer func() { p.font = saved }()
	return p.parseArg(owner, pos)
}

func (p *parser) charAtom(t token) (node, error) {
	r := t.r
	switch r {
	case '$':
		return nil, syntaxErrorf(t.pos, "math shift $ is not allowed inside markup")
	case '#':
		return nil, syntaxErrorf(t.pos, "macro parameter # is not allowed")
	case '&':
		return nil, syntaxErrorf(t.pos, "alignment tab & is not supported")
	case '~':
		return &space{pos: t.pos, width: 1.0 / 3}, nil
	case '-':
		r = '−'
	case '*':
		r = '∗'
	}

	switch {
	case r < 0x80 && ((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')):
		return &symbol{pos: t.pos, r: mapAlphanumeric(r, p.font), class: classOrd}, nil
	case r >= 'α' && r <= 'ω' && p.font == fontMath:
		return &symbol{pos: t.pos, r: italicGreek(r), class: classOrd}, nil
	}
	if c, ok := charClasses[r]; ok {
		return &symbol{pos: t.pos, r: r, class: c}, nil
	}
	if c, ok := runeClasses[r]; ok {
		if c == classOp {
			return p.largeOperator(t.pos, r)
		}
		return &symbol{pos: t.pos, r: r, class: c}, nil
	}
	return &symbol{pos: t.pos, r: r, class: classOrd}, nil
}

func (p *parser) largeOperator(pos int, r rune) (node, error) {
	for _, def := range largeOps {
		if def.r == r {
			return &operator{pos: pos, r: r, dflt: def.limits, integral: def.integral}, nil
		}
	}
	return &symbol{pos: pos, r: r, class: classOp}, nil
}

func (p *parser) command(t token) (node, error) {
	name := t.text
	if def, ok := symbolCommands[name]; ok {
		return &symbol{pos: t.pos, r: def.r, class: def.class}, nil
	}
	if r, ok := greekLower[name]; ok {
		if p.font == fontMath || p.font == fontBoldItalic {
			r = italicGreek(r)
		}
		return &symbol{pos: t.pos, r: r, class: classOrd}, nil
	}
	if def, ok := largeOps[name]; ok {
		return &operator{pos: t.pos, r: def.r, dflt: def.limits, integral: def.integral}, nil
	}
	if limits, ok := namedFunctions[name]; ok {
		text := name
		if s, ok := functionText[name]; ok {
			text = s
		}
		return &operator{pos: t.pos, name: text, dflt: limits}, nil
	}
	if w, ok := spaceCommands[name]; ok {
		return &space{pos: t.pos, width: w}, nil
	}
	if v, ok := fontCommands[name]; ok {
		return p.parseFontArg(v, `\`+name, t.pos)
	}
	if a, ok := accentCommands[name]; ok {
		body, err := p.parseArg(`\`+name, t.pos)
		if err != nil {
			return nil, err
		}
		return &accent{pos: t.pos, body: body, rs: a.rs, kind: a.kind}, nil
	}
	if h, ok := bigSizes[trimBigSuffix(name)]; ok {
		return p.bigDelimiter(t, h)
	}

	switch name {
	case "frac", "dfrac", "tfrac", "cfrac":
		return p.fraction(t, true)
	case "binom", "dbinom", "tbinom":
		return p.fraction(t, false)
	case "sqrt":
		return p.radical(t)
	case "left":
		return p.leftRight(t)
	case "text", "textrm", "textnormal", "mbox", "textit", "textbf":
		return p.text(t)
	case "operatorname":
		return p.operatorName(t)
	case "overset", "underset", "stackrel":
		return p.stack(t)
	case "bmod", "pmod", "mod":
		return p.modulo(t)
	case "not":
		return p.negation(t)
	case "displaystyle":
		return &styleChange{pos: t.pos, level: 0}, nil
	case "textstyle":
		return &styleChange{pos: t.pos, level: 1}, nil
	case "scriptstyle":
		return &styleChange{pos: t.pos, level: 2}, nil
	case "scriptscriptstyle":
		return &styleChange{pos: t.pos, level: 3}, nil
	case "\\":
		return nil, syntaxErrorf(t.pos, `line break \\ is not supported`)
	case "limits", "nolimits":
		return nil, syntaxErrorf(t.pos, `\%s is allowed only on operators`, name)
	}
	return nil, syntaxErrorf(t.pos, `unknown command \%s`, name)
}

func trimBigSuffix(name string) string {
	for _, suffix := range []string{"l", "r", "m"} {
		if len(name) > 3 && name[len(name)-1:] == suffix {
			if _, ok := bigSizes[name[:len(name)-1]]; ok {
				return name[:len(name)-1]
			}
		}
	}
	return name
}

func (p *parser) fraction(t token, rule bool) (node, error) {
	owner := `\` + t.text
	num, err := p.parseArg(owner, t.pos)
	if err != nil {
		return nil, err
	}
	den, err := p.parseArg(owner, t.pos)
	if err != nil {
		return nil, err
	}
	f := &fraction{pos: t.pos, num: num, den: den, level: -1, rule: rule}
	switch t.text {
	case "dfrac", "dbinom", "cfrac":
		f.level = 0
	case "tfrac", "tbinom":
		f.level = 1
	}
	if !rule {
		f.hasDel, f.left, f.right = true, '(', ')'
	}
	return f, nil
}

// modulo builds \bmod, \pmod and \mod as an upright "mod" with amsmath
// spacing. The result is a group so surrounding atoms see a single Ord.
func (p *parser) modulo(t token) (node, error) {
	op := &operator{pos: t.pos, name: "mod"}
	if t.text == "bmod" {
		return &group{pos: t.pos, items: []node{
			&space{pos: t.pos, width: 5.0 / 18},
			op,
			&space{pos: t.pos, width: 5.0 / 18},
		}}, nil
	}

	arg, err := p.parseArg(`\`+t.text, t.pos)
	if err != nil {
		return nil, err
	}
	items := []node{&space{pos: t.pos, width: 1}}
	if t.text == "pmod" {
		items = append(items, &symbol{pos: t.pos, r: '(', class: classOpen})
	}
	items = append(items, op, &space{pos: t.pos, width: 6.0 / 18}, arg)
	if t.text == "pmod" {
		items = append(items, &symbol{pos: t.pos, r: ')', class: classClose})
	}
	return &group{pos: t.pos, items: items}, nil
}

func (p *parser) radical(t token) (node, error) {
	r := &radical{pos: t.pos}
	p.skipSpaces()
	if open := p.peek(); open.kind == tokChar && open.r == '[' {
		p.i++
		if err := p.enter(open.pos); err != nil {
			return nil, err
		}
		items, err := p.parseList(ctxOptional, open.pos)
		p.leave()
		if err != nil {
			return nil, err
		}
		p.next() // closing bracket
		r.index = &group{pos: open.pos, items: items}
	}
	body, err := p.parseArg(`\sqrt`, t.pos)
	if err != nil {
		return nil, err
	}
	r.body = body
	return r, nil
}

// delimiter reads the fence following \left, \right or \big.
func (p *parser) delimiter(owner token) (rune, error) {
	p.skipSpaces()
	t := p.next()
	switch t.kind {
	case tokChar:
		if r, ok := delimiterChars[t.r]; ok {
			return r, nil
		}
	case tokCommand:
		if r, ok := delimiterCommands[t.text]; ok {
			return r, nil
		}
	case tokEOF:
		return 0, syntaxErrorf(owner.pos, `missing delimiter after \%s`, owner.text)
	}
	return 0, syntaxErrorf(t.pos, `invalid delimiter after \%s`, owner.text)
}

func (p *parser) leftRight(t token) (node, error) {
	left, err := p.delimiter(t)
	if err != nil {
		return nil, err
	}
	if err := p.enter(t.pos); err != nil {
		return nil, err
	}
	items, err := p.parseList(ctxLeft, t.pos)
	p.leave()
	if err != nil {
		return nil, err
	}
	rightTok := p.next() // \right
	right, err := p.delimiter(rightTok)
	if err != nil {
		return nil, err
	}
	return &delimited{pos: t.pos, left: left, right: right, body: &group{pos: t.pos, items: items}}, nil
}

func (p *parser) bigDelimiter(t token, height float64) (node, error) {
	r, err := p.delimiter(t)
	if err != nil {
		return nil, err
	}
	class := classOrd
	switch t.text[len(t.text)-1] {
	case 'l':
		class = classOpen
	case 'r':
		class = classClose
	case 'm':
		class = classRel
	}
	return &bigDelim{pos: t.pos, r: r, height: height, class: class}, nil
}

func (p *parser) stack(t token) (node, error) {
	owner := `\` + t.text
	first, err := p.parseArg(owner, t.pos)
	if err != nil {
		return nil, err
	}
	base, err := p.parseArg(owner, t.pos)
	if err != nil {
		return nil, err
	}
	s := &stack{pos: t.pos, base: base, class: classOf(base)}
	switch t.text {
	case "underset":
		s.under = first
	case "stackrel":
		s.over = first
		s.class = classRel
	default:
		s.over = first
	}
	return s, nil
}

func (p *parser) negation(t token) (node, error) {
	p.skipSpaces()
	n := p.next()
	var key string
	switch n.kind {
	case tokChar:
		key = string(n.r)
	case tokCommand:
		key = n.text
	}
	if r, ok := negations[key]; ok {
		return &symbol{pos: t.pos, r: r, class: classRel}, nil
	}
	return nil, syntaxErrorf(n.pos, `\not cannot negate this symbol`)
}

// text reads the argument of \text in text mode, where spaces are kept and
// every character is upright.
func (p *parser) text(t token) (node, error) {
	p.skipSpaces()
	open := p.peek()
	switch open.kind {
	case tokOpen:
	case tokChar:
		p.i++
		return &symbol{pos: open.pos, r: open.r, class: classOrd}, nil
	default:
		return nil, syntaxErrorf(t.pos, `missing argument for \%s`, t.text)
	}
	p.i++
	if err := p.enter(open.pos); err != nil {
		return nil, err
	}
	defer p.leave()

	g := &group{pos: open.pos}
	for {
		c := p.next()
		switch c.kind {
		case tokEOF:
			return nil, syntaxErrorf(open.pos, "missing closing brace")
		case tokClose:
			return g, nil
		case tokSpace:
			g.items = append(g.items, &space{pos: c.pos, width: 1.0 / 3})
		case tokChar:
			switch c.r {
			case '$', '#', '&':
				return nil, syntaxErrorf(c.pos, "character %q is not allowed in text", c.r)
			}
			g.items = append(g.items, &symbol{pos: c.pos, r: c.r, class: classOrd})
		case tokOpen:
			p.i--
			inner, err := p.text(token{kind: tokCommand, text: t.text, pos: c.pos})
			if err != nil {
				return nil, err
			}
			g.items = append(g.items, inner)
		case tokCommand:
			n, err := p.textCommand(c)
			if err != nil {
				return nil, err
			}
			g.items = append(g.items, n)
		default:
			return nil, syntaxErrorf(c.pos, "scripts are not allowed in text")
		}
	}
}

func (p *parser) textCommand(c token) (node, error) {
	if w, ok := spaceCommands[c.text]; ok {
		return &space{pos: c.pos, width: w}, nil
	}
	switch c.text {
	case "{", "}", "%", "$", "#", "&", "_":
		return &symbol{pos: c.pos, r: []rune(c.text)[0], class: classOrd}, nil
	case "text", "textrm", "textnormal", "mbox", "textit", "textbf":
		return p.text(c)
	}
	return nil, syntaxErrorf(c.pos, `command \%s is not allowed in text`, c.text)
}

func (p *parser) operatorName(t token) (node, error) {
	arg, err := p.text(t)
	if err != nil {
		return nil, err
	}
	name, err := plainText(arg)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, syntaxErrorf(t.pos, `empty \operatorname`)
	}
	return &operator{pos: t.pos, name: name}, nil
}

// plainText flattens a text-mode node back to a string.
func plainText(n node) (string, error) {
	switch v := n.(type) {
	case *symbol:
		return string(v.r), nil
	case *space:
		return " ", nil
	case *group:
		var s string
		for _, item := range v.items {
			part, err := plainText(item)
			if err != nil {
				return "", err
			}
			s += part
		}
		return s, nil
	}
	return "", syntaxErrorf(n.position(), "unsupported content in operator name")
}

// classOf returns the spacing class a node contributes to its list.
func classOf(n node) atomClass {
	switch v := n.(type) {
	case *symbol:
		return v.class
	case *operator:
		return classOp
	case *scripts:
		return classOf(v.base)
	case *fraction, *delimited:
		return classInner
	case *bigDelim:
		return v.class
	case *stack:
		return v.class
	case *space, *styleChange:
		return classNone
	}
	return classOrd
}
