// Package typeset lays out TeX math markup into glyph outlines.
//
// The engine covers the subset of LaTeX math used for single equations:
// scripts, fractions, radicals, \left/\right fences, large operators with
// limits, named functions, accents, font alphabets and spacing commands.
// Layout follows the TeX box model with display, text, script and
// scriptscript styles, using constants from the Latin Modern Math font
// that is embedded through github.com/go-fonts/latin-modern.
//
// Malformed markup is reported as a *SyntaxError carrying the byte offset
// of the problem. All errors of that kind match ErrSyntax.
package typeset
