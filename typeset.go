package tex2png

import (
	"context"
	"errors"
	"fmt"

	"github.com/eea/tex2png/internal/typeset"
)

// Document is a laid-out expression in em units.
type Document = typeset.Document

// TypesetEngine lays out math markup. Implementations must report
// malformed markup with an error matching ErrMarkup.
type TypesetEngine interface {
	Typeset(ctx context.Context, markup string, display bool) (*Document, error)
}

// Compile-time interface implementation check.
var _ TypesetEngine = (*builtinTypesetter)(nil)

// builtinTypesetter adapts internal/typeset to TypesetEngine.
type builtinTypesetter struct {
	ts      *typeset.Typesetter
	padding float64
}

func newBuiltinTypesetter(padding float64) (*builtinTypesetter, error) {
	ts, err := typeset.NewDefault()
	if err != nil {
		return nil, fmt.Errorf("loading math font: %w", err)
	}
	return &builtinTypesetter{ts: ts, padding: padding}, nil
}

func (b *builtinTypesetter) Typeset(ctx context.Context, markup string, display bool) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := b.ts.Typeset(markup, typeset.Options{Display: display, Padding: b.padding})
	if errors.Is(err, typeset.ErrSyntax) {
		return nil, fmt.Errorf("%w: %w", ErrMarkup, err)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// MarkupPosition returns the byte offset of a markup error within the
// trimmed markup, if err carries one.
func MarkupPosition(err error) (int, bool) {
	var se *typeset.SyntaxError
	if errors.As(err, &se) {
		return se.Pos, true
	}
	return 0, false
}
