package typeset

// atomClass is the TeX atom type that drives inter-atom spacing.
type atomClass uint8

const (
	classOrd atomClass = iota
	classOp
	classBin
	classRel
	classOpen
	classClose
	classPunct
	classInner
	classNone // spaces and style changes
)

type limitsMode uint8

const (
	limitsAuto limitsMode = iota
	limitsAlways
	limitsNever
)

type accentKind uint8

const (
	accentGlyph accentKind = iota
	accentWide
	accentOverline
	accentUnderline
)

// node is an element of the parsed expression tree.
type node interface {
	position() int
}

// symbol is a single glyph atom.
type symbol struct {
	pos   int
	r     rune
	class atomClass
}

// group is a braced group or a whole expression.
type group struct {
	pos   int
	items []node
}

type scripts struct {
	pos  int
	base node
	sup  node
	sub  node
}

// operator is a large symbol such as \sum or a named function such as \lim.
type operator struct {
	pos      int
	r        rune   // large symbol, or 0 for a named function
	name     string // upright text of a named function
	limits   limitsMode
	dflt     bool // takes limits in display style by default
	integral bool
}

type fraction struct {
	pos    int
	num    node
	den    node
	level  int // forced style level, or -1 to follow the surrounding style
	rule   bool
	left   rune
	right  rune
	hasDel bool
}

type radical struct {
	pos   int
	body  node
	index node
}

// delimited is a \left ... \right construct. A zero rune is a null delimiter.
type delimited struct {
	pos   int
	left  rune
	right rune
	body  *group
}

// bigDelim is a fixed-size delimiter from \big and friends.
type bigDelim struct {
	pos    int
	r      rune
	height float64 // em
	class  atomClass
}

type space struct {
	pos   int
	width float64 // em, scaled by the style size
}

type accent struct {
	pos  int
	body node
	rs   []rune // candidate glyphs, first available wins
	kind accentKind
}

// stack puts optional material centered above and below a base.
type stack struct {
	pos   int
	base  node
	over  node
	under node
	class atomClass
}

type styleChange struct {
	pos   int
	level int
}

func (n *symbol) position() int      { return n.pos }
func (n *group) position() int       { return n.pos }
func (n *scripts) position() int     { return n.pos }
func (n *operator) position() int    { return n.pos }
func (n *fraction) position() int    { return n.pos }
func (n *radical) position() int     { return n.pos }
func (n *delimited) position() int   { return n.pos }
func (n *bigDelim) position() int    { return n.pos }
func (n *space) position() int       { return n.pos }
func (n *accent) position() int      { return n.pos }
func (n *stack) position() int       { return n.pos }
func (n *styleChange) position() int { return n.pos }
