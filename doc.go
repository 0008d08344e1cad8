// Package tex2png renders TeX math markup to PNG images.
//
// # Quick Start
//
// Create a converter, convert markup, and close when done:
//
//	conv, err := tex2png.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, tex2png.Input{
//	    Markup:  `\frac{a}{b}`,
//	    Display: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("equation.png", result.PNG, 0644)
//
// Every image is exactly TargetWidth pixels wide; the height follows the
// aspect ratio of the typeset expression. The result also carries the
// intermediate SVG (result.SVG) for debugging.
//
// # Conversion Pipeline
//
//  1. Typesetting: markup is parsed and laid out with the embedded Latin
//     Modern Math font (internal/typeset)
//  2. Serialization: the layout is written as SVG paths (internal/svgwriter)
//  3. Rasterization: the SVG is drawn at TargetWidth, in-process with
//     oksvg/rasterx by default or through headless Chrome (go-rod)
//
// # Errors
//
// Malformed markup yields an error matching ErrMarkup. Use MarkupPosition
// to recover the byte offset of the problem. Rasterization failures match
// ErrRasterization. Options with invalid values make NewConverter fail.
//
// # Engines
//
// Both stages are replaceable through WithTypesetter and WithRasterizer.
// WithEngine(EngineBrowser) selects the Chrome backend, which needs a local
// browser or downloads Chromium on first use.
package tex2png
