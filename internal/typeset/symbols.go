package typeset

type symbolDef struct {
	r     rune
	class atomClass
}

var symbolCommands = map[string]symbolDef{
	// Uppercase Greek is upright.
	"Gamma": {'Γ', classOrd}, "Delta": {'Δ', classOrd}, "Theta": {'Θ', classOrd},
	"Lambda": {'Λ', classOrd}, "Xi": {'Ξ', classOrd}, "Pi": {'Π', classOrd},
	"Sigma": {'Σ', classOrd}, "Upsilon": {'Υ', classOrd}, "Phi": {'Φ', classOrd},
	"Psi": {'Ψ', classOrd}, "Omega": {'Ω', classOrd},

	// Binary operators.
	"pm": {'±', classBin}, "mp": {'∓', classBin}, "times": {'×', classBin},
	"div": {'÷', classBin}, "cdot": {'⋅', classBin}, "ast": {'∗', classBin},
	"star": {'⋆', classBin}, "circ": {'∘', classBin}, "bullet": {'∙', classBin},
	"cap": {'∩', classBin}, "cup": {'∪', classBin}, "wedge": {'∧', classBin},
	"land": {'∧', classBin}, "vee": {'∨', classBin}, "lor": {'∨', classBin},
	"oplus": {'⊕', classBin}, "ominus": {'⊖', classBin}, "otimes": {'⊗', classBin},
	"odot": {'⊙', classBin}, "oslash": {'⊘', classBin}, "setminus": {'∖', classBin},
	"sqcup": {'⊔', classBin}, "sqcap": {'⊓', classBin}, "uplus": {'⊎', classBin},
	"dagger": {'†', classBin}, "ddagger": {'‡', classBin}, "amalg": {'⨿', classBin},
	"wr": {'≀', classBin}, "diamond": {'⋄', classBin}, "triangleleft": {'◁', classBin},
	"triangleright": {'▷', classBin}, "bigtriangleup": {'△', classBin},
	"bigtriangledown": {'▽', classBin},

	// Relations and arrows.
	"leq": {'≤', classRel}, "le": {'≤', classRel}, "geq": {'≥', classRel},
	"ge": {'≥', classRel}, "neq": {'≠', classRel}, "ne": {'≠', classRel},
	"equiv": {'≡', classRel}, "approx": {'≈', classRel}, "sim": {'∼', classRel},
	"simeq": {'≃', classRel}, "cong": {'≅', classRel}, "propto": {'∝', classRel},
	"in": {'∈', classRel}, "notin": {'∉', classRel}, "ni": {'∋', classRel},
	"subset": {'⊂', classRel}, "supset": {'⊃', classRel}, "subseteq": {'⊆', classRel},
	"supseteq": {'⊇', classRel}, "sqsubseteq": {'⊑', classRel}, "sqsupseteq": {'⊒', classRel},
	"ll": {'≪', classRel}, "gg": {'≫', classRel}, "prec": {'≺', classRel},
	"succ": {'≻', classRel}, "preceq": {'⪯', classRel}, "succeq": {'⪰', classRel},
	"perp": {'⊥', classRel}, "parallel": {'∥', classRel}, "mid": {'∣', classRel},
	"nmid": {'∤', classRel}, "models": {'⊨', classRel}, "vdash": {'⊢', classRel},
	"dashv": {'⊣', classRel}, "asymp": {'≍', classRel}, "doteq": {'≐', classRel},
	"bowtie": {'⋈', classRel}, "coloneqq": {'≔', classRel}, "smile": {'⌣', classRel},
	"frown": {'⌢', classRel}, "leqslant": {'⩽', classRel}, "geqslant": {'⩾', classRel},
	"to": {'→', classRel}, "rightarrow": {'→', classRel}, "leftarrow": {'←', classRel},
	"gets": {'←', classRel}, "leftrightarrow": {'↔', classRel}, "Rightarrow": {'⇒', classRel},
	"Leftarrow": {'⇐', classRel}, "Leftrightarrow": {'⇔', classRel}, "iff": {'⟺', classRel},
	"implies": {'⟹', classRel}, "impliedby": {'⟸', classRel}, "mapsto": {'↦', classRel},
	"longmapsto": {'⟼', classRel}, "longrightarrow": {'⟶', classRel},
	"longleftarrow": {'⟵', classRel}, "Longrightarrow": {'⟹', classRel},
	"Longleftarrow": {'⟸', classRel}, "Longleftrightarrow": {'⟺', classRel},
	"hookrightarrow": {'↪', classRel}, "hookleftarrow": {'↩', classRel},
	"uparrow": {'↑', classRel}, "downarrow": {'↓', classRel}, "updownarrow": {'↕', classRel},
	"Uparrow": {'⇑', classRel}, "Downarrow": {'⇓', classRel}, "nearrow": {'↗', classRel},
	"searrow": {'↘', classRel}, "nwarrow": {'↖', classRel}, "swarrow": {'↙', classRel},
	"rightleftharpoons": {'⇌', classRel},

	// Ordinary symbols.
	"infty": {'∞', classOrd}, "partial": {'∂', classOrd}, "nabla": {'∇', classOrd},
	"forall": {'∀', classOrd}, "exists": {'∃', classOrd}, "nexists": {'∄', classOrd},
	"emptyset": {'∅', classOrd}, "varnothing": {'∅', classOrd}, "neg": {'¬', classOrd},
	"lnot": {'¬', classOrd}, "hbar": {'ℏ', classOrd}, "ell": {'ℓ', classOrd},
	"Re": {'ℜ', classOrd}, "Im": {'ℑ', classOrd}, "aleph": {'ℵ', classOrd},
	"wp": {'℘', classOrd}, "angle": {'∠', classOrd}, "top": {'⊤', classOrd},
	"bot": {'⊥', classOrd}, "prime": {'′', classOrd}, "triangle": {'△', classOrd},
	"clubsuit": {'♣', classOrd}, "diamondsuit": {'♢', classOrd}, "heartsuit": {'♡', classOrd},
	"spadesuit": {'♠', classOrd}, "flat": {'♭', classOrd}, "natural": {'♮', classOrd},
	"sharp": {'♯', classOrd}, "backslash": {'\\', classOrd}, "vdots": {'⋮', classOrd},
	"imath": {'𝚤', classOrd}, "jmath": {'𝚥', classOrd}, "surd": {'√', classOrd},
	"degree": {'°', classOrd}, "vert": {'|', classOrd}, "Vert": {'‖', classOrd},
	"ldots": {'…', classInner}, "dots": {'…', classInner}, "cdots": {'⋯', classInner},
	"ddots": {'⋱', classInner},

	// Fences used outside \left and \right.
	"langle": {'⟨', classOpen}, "rangle": {'⟩', classClose},
	"lfloor": {'⌊', classOpen}, "rfloor": {'⌋', classClose},
	"lceil": {'⌈', classOpen}, "rceil": {'⌉', classClose},
	"lbrace": {'{', classOpen}, "rbrace": {'}', classClose},
	"lbrack": {'[', classOpen}, "rbrack": {']', classClose},
	"lvert": {'|', classOpen}, "rvert": {'|', classClose},
	"lVert": {'‖', classOpen}, "rVert": {'‖', classClose},
	"colon": {':', classPunct},

	// Escaped characters.
	"{": {'{', classOpen}, "}": {'}', classClose}, "|": {'‖', classOrd},
	"%": {'%', classOrd}, "$": {'$', classOrd}, "#": {'#', classOrd},
	"&": {'&', classOrd}, "_": {'_', classOrd},
}

// greekLower maps lowercase Greek commands to upright code points.
// They are set in math italic unless an upright font is active.
var greekLower = map[string]rune{
	"alpha": 'α', "beta": 'β', "gamma": 'γ', "delta": 'δ', "epsilon": 'ϵ',
	"varepsilon": 'ε', "zeta": 'ζ', "eta": 'η', "theta": 'θ', "vartheta": 'ϑ',
	"iota": 'ι', "kappa": 'κ', "varkappa": 'ϰ', "lambda": 'λ', "mu": 'μ',
	"nu": 'ν', "xi": 'ξ', "omicron": 'ο', "pi": 'π', "varpi": 'ϖ', "rho": 'ρ',
	"varrho": 'ϱ', "sigma": 'σ', "varsigma": 'ς', "tau": 'τ', "upsilon": 'υ',
	"phi": 'ϕ', "varphi": 'φ', "chi": 'χ', "psi": 'ψ', "omega": 'ω',
}

type opDef struct {
	r        rune
	limits   bool
	integral bool
}

var largeOps = map[string]opDef{
	"sum": {'∑', true, false}, "prod": {'∏', true, false}, "coprod": {'∐', true, false},
	"bigcup": {'⋃', true, false}, "bigcap": {'⋂', true, false},
	"bigvee": {'⋁', true, false}, "bigwedge": {'⋀', true, false},
	"bigoplus": {'⨁', true, false}, "bigotimes": {'⨂', true, false},
	"bigodot": {'⨀', true, false}, "biguplus": {'⨄', true, false},
	"bigsqcup": {'⨆', true, false},
	"int": {'∫', false, true}, "iint": {'∬', false, true}, "iiint": {'∭', false, true},
	"oint": {'∮', false, true}, "oiint": {'∯', false, true},
}

// namedFunctions maps operator names to whether they take limits in
// display style.
var namedFunctions = map[string]bool{
	"arccos": false, "arcsin": false, "arctan": false, "arg": false, "cos": false,
	"cosh": false, "cot": false, "coth": false, "csc": false, "deg": false,
	"det": true, "dim": false, "exp": false, "gcd": true, "hom": false,
	"inf": true, "ker": false, "lg": false, "lim": true, "liminf": true,
	"limsup": true, "ln": false, "log": false, "max": true, "min": true,
	"Pr": true, "sec": false, "sin": false, "sinh": false, "sup": true,
	"tan": false, "tanh": false,
}

var functionText = map[string]string{
	"liminf": "lim inf",
	"limsup": "lim sup",
}

// spaceCommands gives widths in em.
var spaceCommands = map[string]float64{
	",": 3.0 / 18, "thinspace": 3.0 / 18,
	":": 4.0 / 18, ">": 4.0 / 18, "medspace": 4.0 / 18,
	";": 5.0 / 18, "thickspace": 5.0 / 18,
	"!": -3.0 / 18, "negthinspace": -3.0 / 18,
	"enspace": 0.5, "quad": 1, "qquad": 2,
	" ": 1.0 / 3,
}

// delimiterCommands lists commands accepted after \left, \right and \big.
var delimiterCommands = map[string]rune{
	"{": '{', "}": '}', "lbrace": '{', "rbrace": '}',
	"lbrack": '[', "rbrack": ']', "|": '‖', "vert": '|', "Vert": '‖',
	"lvert": '|', "rvert": '|', "lVert": '‖', "rVert": '‖',
	"langle": '⟨', "rangle": '⟩', "lfloor": '⌊', "rfloor": '⌋',
	"lceil": '⌈', "rceil": '⌉', "backslash": '\\',
	"uparrow": '↑', "downarrow": '↓', "updownarrow": '↕',
	"Uparrow": '⇑', "Downarrow": '⇓',
}

var delimiterChars = map[rune]rune{
	'(': '(', ')': ')', '[': '[', ']': ']', '|': '|', '/': '/',
	'<': '⟨', '>': '⟩', '.': 0,
}

var bigSizes = map[string]float64{
	"big": 1.2, "Big": 1.8, "bigg": 2.4, "Bigg": 3.0,
}

var negations = map[string]rune{
	"=": '≠', "<": '≮', ">": '≯', "in": '∉', "ni": '∌', "equiv": '≢',
	"subset": '⊄', "supset": '⊅', "subseteq": '⊈', "supseteq": '⊉',
	"sim": '≁', "approx": '≉', "cong": '≇', "leq": '≰', "le": '≰',
	"geq": '≱', "ge": '≱', "mid": '∤', "parallel": '∦', "exists": '∄',
}

// accentCommands lists combining marks first and spacing forms as fallback.
var accentCommands = map[string]struct {
	rs   []rune
	kind accentKind
}{
	"hat":       {[]rune{'̂', 'ˆ'}, accentGlyph},
	"widehat":   {[]rune{'̂', 'ˆ'}, accentWide},
	"check":     {[]rune{'̌', 'ˇ'}, accentGlyph},
	"tilde":     {[]rune{'̃', '˜'}, accentGlyph},
	"widetilde": {[]rune{'̃', '˜'}, accentWide},
	"acute":     {[]rune{'́', '´'}, accentGlyph},
	"grave":     {[]rune{'̀', '`'}, accentGlyph},
	"dot":       {[]rune{'̇', '˙'}, accentGlyph},
	"ddot":      {[]rune{'̈', '¨'}, accentGlyph},
	"breve":     {[]rune{'̆', '˘'}, accentGlyph},
	"bar":       {[]rune{'̄', '¯'}, accentGlyph},
	"vec":       {[]rune{'⃗', '→'}, accentGlyph},
	"overline":  {nil, accentOverline},
	"underline": {nil, accentUnderline},
}

// charClasses gives the class of literal characters typed in math mode.
var charClasses = map[rune]atomClass{
	'+': classBin, '−': classBin, '∗': classBin,
	'=': classRel, '<': classRel, '>': classRel, ':': classRel,
	',': classPunct, ';': classPunct,
	'!': classClose, '?': classClose, ')': classClose, ']': classClose,
	'(': classOpen, '[': classOpen,
}

// runeClasses classifies non-ASCII input by reverse lookup of the tables.
var runeClasses = func() map[rune]atomClass {
	m := make(map[rune]atomClass)
	for _, def := range symbolCommands {
		if def.r > 0x7f {
			m[def.r] = def.class
		}
	}
	for _, r := range negations {
		m[r] = classRel
	}
	for _, op := range largeOps {
		m[op.r] = classOp
	}
	return m
}()

// fontVariant selects how letters and digits are mapped.
type fontVariant uint8

const (
	fontMath fontVariant = iota
	fontRoman
	fontBold
	fontBoldItalic
	fontBlackboard
	fontCalligraphic
	fontFraktur
	fontSans
	fontMono
)

var fontCommands = map[string]fontVariant{
	"mathrm": fontRoman, "mathup": fontRoman, "mathit": fontMath,
	"mathbf": fontBold, "boldsymbol": fontBoldItalic, "bm": fontBoldItalic,
	"mathbb": fontBlackboard, "mathcal": fontCalligraphic,
	"mathscr": fontCalligraphic, "mathfrak": fontFraktur,
	"mathsf": fontSans, "mathtt": fontMono,
}

// alphabet describes a Unicode mathematical alphanumeric range.
type alphabet struct {
	upper, lower, digit rune // zero when the variant leaves the range alone
	holes               map[rune]rune
}

var alphabets = map[fontVariant]alphabet{
	fontMath:       {upper: 0x1D434, lower: 0x1D44E, holes: map[rune]rune{'h': 'ℎ'}},
	fontBold:       {upper: 0x1D400, lower: 0x1D41A, digit: 0x1D7CE},
	fontBoldItalic: {upper: 0x1D468, lower: 0x1D482, digit: 0x1D7CE},
	fontBlackboard: {upper: 0x1D538, lower: 0x1D552, digit: 0x1D7D8, holes: map[rune]rune{
		'C': 'ℂ', 'H': 'ℍ', 'N': 'ℕ', 'P': 'ℙ', 'Q': 'ℚ', 'R': 'ℝ', 'Z': 'ℤ',
	}},
	fontCalligraphic: {upper: 0x1D49C, holes: map[rune]rune{
		'B': 'ℬ', 'E': 'ℰ', 'F': 'ℱ', 'H': 'ℋ', 'I': 'ℐ', 'L': 'ℒ', 'M': 'ℳ', 'R': 'ℛ',
	}},
	fontFraktur: {upper: 0x1D504, lower: 0x1D51E, holes: map[rune]rune{
		'C': 'ℭ', 'H': 'ℌ', 'I': 'ℑ', 'R': 'ℜ', 'Z': 'ℨ',
	}},
	fontSans: {upper: 0x1D5A0, lower: 0x1D5BA, digit: 0x1D7E2},
	fontMono: {upper: 0x1D670, lower: 0x1D68A, digit: 0x1D7F6},
}

// mapAlphanumeric applies a font variant to an ASCII letter or digit.
func mapAlphanumeric(r rune, v fontVariant) rune {
	a, ok := alphabets[v]
	if !ok {
		return r
	}
	if h, ok := a.holes[r]; ok {
		return h
	}
	switch {
	case r >= 'A' && r <= 'Z' && a.upper != 0:
		return a.upper + r - 'A'
	case r >= 'a' && r <= 'z' && a.lower != 0:
		return a.lower + r - 'a'
	case r >= 'a' && r <= 'z' && v == fontCalligraphic:
		return mapAlphanumeric(r, fontMath)
	case r >= '0' && r <= '9' && a.digit != 0:
		return a.digit + r - '0'
	}
	return r
}

// italicGreek maps an upright lowercase Greek letter to math italic.
func italicGreek(r rune) rune {
	switch {
	case r >= 'α' && r <= 'ω':
		return 0x1D6FC + r - 'α'
	case r == 'ϵ':
		return 0x1D716
	case r == 'ϑ':
		return 0x1D717
	case r == 'ϰ':
		return 0x1D718
	case r == 'ϕ':
		return 0x1D719
	case r == 'ϱ':
		return 0x1D71A
	case r == 'ϖ':
		return 0x1D71B
	}
	return r
}
