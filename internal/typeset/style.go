package typeset

// Layout constants in em, taken from the Latin Modern Math MATH table.
const (
	axisHeight            = 0.250
	xHeight               = 0.431
	ruleThickness         = 0.040
	scriptScale           = 0.70
	scriptScriptScale     = 0.50
	supShiftUp            = 0.363
	supShiftUpCramped     = 0.289
	supBottomMin          = 0.108
	supBottomMaxWithSub   = 0.344
	supBaselineDropMax    = 0.250
	subShiftDown          = 0.247
	subTopMax             = 0.344
	subBaselineDropMin    = 0.200
	subSupGapMin          = 0.160
	spaceAfterScript      = 0.056
	upperLimitGapMin      = 0.200
	upperLimitRiseMin     = 0.111
	lowerLimitGapMin      = 0.167
	lowerLimitDropMin     = 0.600
	limitExtraSpace       = 0.100
	numShiftUp            = 0.394
	numShiftUpDisplay     = 0.677
	denShiftDown          = 0.345
	denShiftDownDisplay   = 0.686
	fracGapMin            = 0.040
	fracGapMinDisplay     = 0.120
	stackGapMin           = 0.120
	stackGapMinDisplay    = 0.280
	stackTopShiftUp       = 0.444
	stackBottomShiftDown  = 0.345
	nullDelimiterSpace    = 0.120
	radicalGap            = 0.050
	radicalGapDisplay     = 0.148
	radicalExtraAscender  = 0.040
	radicalKernBefore     = 0.278
	radicalKernAfter      = -0.556
	radicalDegreeRaise    = 0.60
	delimiterFactor       = 0.901
	delimiterShortfall    = 0.500
	accentGap             = 0.050
	displayOperatorScale  = 1.40
	displayIntegralScale  = 1.80
	displayMarginVertical = 0.250
)

// Style levels.
const (
	levelDisplay = iota
	levelText
	levelScript
	levelScriptScript
)

// style is a TeX math style: a level and whether it is cramped.
type style struct {
	level   int
	cramped bool
}

func (s style) size() float64 {
	switch s.level {
	case levelScript:
		return scriptScale
	case levelScriptScript:
		return scriptScriptScale
	}
	return 1
}

func (s style) isScript() bool {
	return s.level >= levelScript
}

func (s style) sup() style {
	if s.level <= levelText {
		return style{level: levelScript, cramped: s.cramped}
	}
	return style{level: levelScriptScript, cramped: s.cramped}
}

func (s style) sub() style {
	return style{level: s.sup().level, cramped: true}
}

func (s style) num() style {
	level := s.level + 1
	if level > levelScriptScript {
		level = levelScriptScript
	}
	return style{level: level, cramped: s.cramped}
}

func (s style) den() style {
	return style{level: s.num().level, cramped: true}
}

func (s style) cramp() style {
	return style{level: s.level, cramped: true}
}

// Inter-atom spacing in mu (1/18 em). Negative entries apply only outside
// script styles.
var spacing = [8][8]int{
	//          ord op bin rel open close punct inner
	classOrd:   {0, 3, -4, -5, 0, 0, 0, -3},
	classOp:    {3, 3, 0, -5, 0, 0, 0, -3},
	classBin:   {-4, -4, 0, 0, -4, 0, 0, -4},
	classRel:   {-5, -5, 0, 0, -5, 0, 0, -5},
	classOpen:  {0, 0, 0, 0, 0, 0, 0, 0},
	classClose: {0, 3, -4, -5, 0, 0, 0, -3},
	classPunct: {-3, -3, 0, -3, -3, -3, -3, -3},
	classInner: {-3, 3, -4, -5, -3, 0, -3, -3},
}

// spaceBetween returns the glue in em between two adjacent atoms.
func spaceBetween(left, right atomClass, st style) float64 {
	if left >= classNone || right >= classNone {
		return 0
	}
	mu := spacing[left][right]
	if mu < 0 {
		if st.isScript() {
			return 0
		}
		mu = -mu
	}
	return float64(mu) / 18 * st.size()
}
