package typeset

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokChar
	tokCommand
	tokOpen
	tokClose
	tokSup
	tokSub
	tokSpace
)

type token struct {
	kind tokenKind
	r    rune   // tokChar
	text string // tokCommand name without the backslash
	pos  int
}

// tokenize splits markup into tokens. Comments run from % to end of line,
// and whitespace after a control word is dropped as TeX does.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size == 1 {
			return nil, syntaxErrorf(i, "invalid UTF-8 encoding")
		}

		switch {
		case r == '\\':
			tok, next, err := lexCommand(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
			continue
		case r == '{':
			toks = append(toks, token{kind: tokOpen, pos: i})
		case r == '}':
			toks = append(toks, token{kind: tokClose, pos: i})
		case r == '^':
			toks = append(toks, token{kind: tokSup, pos: i})
		case r == '_':
			toks = append(toks, token{kind: tokSub, pos: i})
		case r == '%':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			continue
		case unicode.IsSpace(r):
			start := i
			i = skipSpace(src, i)
			toks = append(toks, token{kind: tokSpace, pos: start})
			continue
		case unicode.IsControl(r):
			return nil, syntaxErrorf(i, "control character U+%04X", r)
		default:
			toks = append(toks, token{kind: tokChar, r: r, pos: i})
		}
		i += size
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

func lexCommand(src string, start int) (token, int, error) {
	j := start + 1
	if j >= len(src) {
		return token{}, 0, syntaxErrorf(start, "trailing backslash")
	}
	if isLetter(src[j]) {
		k := j
		for k < len(src) && isLetter(src[k]) {
			k++
		}
		return token{kind: tokCommand, text: src[j:k], pos: start}, skipSpace(src, k), nil
	}
	c, size := utf8.DecodeRuneInString(src[j:])
	if c == utf8.RuneError && size == 1 {
		return token{}, 0, syntaxErrorf(j, "invalid UTF-8 encoding")
	}
	return token{kind: tokCommand, text: string(c), pos: start}, j + size, nil
}

func skipSpace(src string, i int) int {
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
