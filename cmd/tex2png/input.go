package main

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/eea/tex2png"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// readInput reads r to EOF in one blocking call. A positive maxBytes caps
// the input size. Invalid UTF-8 is reported as a markup error.
func readInput(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: input exceeds %d bytes", ErrReadInput, maxBytes)
	}
	if off := invalidUTF8Offset(data); off >= 0 {
		return "", fmt.Errorf("%w: invalid UTF-8 at byte %d", tex2png.ErrMarkup, off)
	}
	return string(data), nil
}

// invalidUTF8Offset returns the offset of the first invalid sequence, or -1.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
