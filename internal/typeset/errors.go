package typeset

import (
	"errors"
	"fmt"
)

// Sentinel errors for typesetting.
var (
	ErrSyntax       = errors.New("invalid math markup")
	ErrMissingGlyph = errors.New("character not available in math font")
	ErrFontLoad     = errors.New("failed to load math font")
)

// SyntaxError reports malformed markup at a byte offset of the input.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Pos, e.Msg)
}

// Unwrap lets callers match any SyntaxError with errors.Is(err, ErrSyntax).
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErrorf(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
