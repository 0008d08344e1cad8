package tex2png

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	// ErrMarkup reports markup the typesetting engine cannot lay out.
	// Errors from the engine wrap both ErrMarkup and the engine error, so
	// errors.As can recover a *typeset.SyntaxError with the byte offset.
	ErrMarkup = errors.New("invalid math markup")

	// ErrEmptyMarkup is returned for input that is empty after trimming.
	ErrEmptyMarkup = fmt.Errorf("%w: input is empty", ErrMarkup)

	ErrRasterization  = errors.New("rasterization failed")
	ErrImageTooTall   = errors.New("image too tall")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("failed to capture screenshot")

	// Option validation errors.
	ErrUnknownEngine   = errors.New("unknown raster engine")
	ErrInvalidFontSize = errors.New("invalid font size")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidPadding  = errors.New("invalid padding")
)
