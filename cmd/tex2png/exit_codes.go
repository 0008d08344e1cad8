package main

import (
	"context"
	"errors"
	"os"

	"github.com/eea/tex2png"
	"github.com/eea/tex2png/internal/config"
)

// Exit codes for the tex2png CLI.
// 0 and 1 keep their historic meaning for scripts; custom codes stay < 126.
const (
	ExitSuccess  = 0 // PNG written
	ExitRaster   = 1 // Rasterization or unexpected error
	ExitUsage    = 2 // Invalid flags, environment, or config
	ExitIO       = 3 // Reading stdin or writing output failed
	ExitMarkup   = 4 // Markup rejected by the typesetter
	ExitCanceled = 5 // Interrupted by SIGINT or SIGTERM
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, tex2png.ErrMarkup) {
		return ExitMarkup
	}

	// Deadlines stay raster failures; only a signal cancels the context.
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}

	if errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, tex2png.ErrUnknownEngine) ||
		errors.Is(err, tex2png.ErrInvalidFontSize) ||
		errors.Is(err, tex2png.ErrInvalidColor) ||
		errors.Is(err, tex2png.ErrInvalidPadding) {
		return ExitUsage
	}

	return ExitRaster
}
