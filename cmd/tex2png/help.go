package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2png [flags] < input.tex > output.png")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Typeset TeX math read from stdin into a 2000 pixel wide PNG on stdout.")
	fmt.Fprintln(w, "Unknown flags and arguments are ignored.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -d, --display             Display mode (large operators, limits above/below)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <s>          Raster engine: vector (default), browser")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion deadline (e.g., 10s, 1m)")
	fmt.Fprintln(w, "      --svg <path>          Also write the intermediate SVG")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -v, --verbose             Show stage timings on stderr")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEX2PNG_CONFIG, TEX2PNG_ENGINE, TEX2PNG_TIMEOUT")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX (browser engine)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 rasterization or internal error, 2 usage or config,")
	fmt.Fprintln(w, "  3 input/output, 4 invalid markup, 5 interrupted")
}
