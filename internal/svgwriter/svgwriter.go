// Package svgwriter serializes laid-out math documents to SVG.
//
// Output is deterministic: the same document and options always produce the
// same bytes. Coordinates are written in pixels, one em being FontSize
// pixels, with a fixed number of decimals.
package svgwriter

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"github.com/eea/tex2png/internal/typeset"
)

// Defaults used when Options fields are zero.
const (
	DefaultFontSize = 40.0
	DefaultColor    = "#000000"
)

// precision is the number of decimals kept for coordinates.
const precision = 3

// Options controls how a document is drawn.
type Options struct {
	FontSize   float64 // pixels per em
	Color      string  // glyph and rule fill
	Background string  // empty means transparent
}

func (o Options) withDefaults() Options {
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Color == "" {
		o.Color = DefaultColor
	}
	return o
}

// Marshal writes doc as a standalone SVG 1.1 image. The viewBox starts at
// the origin and matches the width and height attributes.
func Marshal(doc *typeset.Document, opts Options) []byte {
	opts = opts.withDefaults()
	s := opts.FontSize
	w, h := doc.Width*s, doc.Height*s

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="`)
	writeNum(&buf, w)
	buf.WriteString(`" height="`)
	writeNum(&buf, h)
	buf.WriteString(`" viewBox="0 0 `)
	writeNum(&buf, w)
	buf.WriteByte(' ')
	writeNum(&buf, h)
	buf.WriteString("\">\n")

	if opts.Background != "" {
		buf.WriteString(`<rect x="0" y="0" width="`)
		writeNum(&buf, w)
		buf.WriteString(`" height="`)
		writeNum(&buf, h)
		buf.WriteString(`" fill="`)
		writeAttr(&buf, opts.Background)
		buf.WriteString("\"/>\n")
	}

	buf.WriteString(`<g fill="`)
	writeAttr(&buf, opts.Color)
	buf.WriteString("\">\n")
	for _, p := range doc.Paths {
		buf.WriteString(`<path d="`)
		writePath(&buf, p, s)
		buf.WriteString("\"/>\n")
	}
	for _, r := range doc.Rules {
		buf.WriteString(`<rect x="`)
		writeNum(&buf, r.X*s)
		buf.WriteString(`" y="`)
		writeNum(&buf, r.Y*s)
		buf.WriteString(`" width="`)
		writeNum(&buf, r.W*s)
		buf.WriteString(`" height="`)
		writeNum(&buf, r.H*s)
		buf.WriteString("\"/>\n")
	}
	buf.WriteString("</g>\n</svg>\n")
	return buf.Bytes()
}

// writePath emits absolute path commands. Every contour is closed before
// the next MoveTo and at the end.
func writePath(buf *bytes.Buffer, p typeset.Path, scale float64) {
	open := false
	for _, seg := range p {
		var n int
		switch seg.Op {
		case typeset.MoveTo:
			if open {
				buf.WriteString("Z")
			}
			buf.WriteByte('M')
			n, open = 1, true
		case typeset.LineTo:
			buf.WriteByte('L')
			n = 1
		case typeset.QuadTo:
			buf.WriteByte('Q')
			n = 2
		case typeset.CubeTo:
			buf.WriteByte('C')
			n = 3
		}
		for i := 0; i < n; i++ {
			if i > 0 {
				buf.WriteByte(' ')
			}
			writeNum(buf, seg.Args[i].X*scale)
			buf.WriteByte(',')
			writeNum(buf, seg.Args[i].Y*scale)
		}
	}
	if open {
		buf.WriteString("Z")
	}
}

// writeNum formats v with fixed precision, dropping trailing zeros.
func writeNum(buf *bytes.Buffer, v float64) {
	var tmp [32]byte
	b := strconv.AppendFloat(tmp[:0], v, 'f', precision, 64)
	b = trimZeros(b)
	if len(b) == 2 && b[0] == '-' && b[1] == '0' {
		b = b[1:]
	}
	buf.Write(b)
}

func trimZeros(b []byte) []byte {
	if bytes.IndexByte(b, '.') < 0 {
		return b
	}
	b = bytes.TrimRight(b, "0")
	return bytes.TrimSuffix(b, []byte("."))
}

func writeAttr(buf *bytes.Buffer, s string) {
	// Writes to a bytes.Buffer cannot fail.
	_ = xml.EscapeText(buf, []byte(s))
}
