package main

import (
	"io"
	"slices"

	flag "github.com/spf13/pflag"
)

// cliFlags holds every flag tex2png understands.
type cliFlags struct {
	display bool
	engine  string
	config  string
	timeout string
	svgPath string
	verbose bool
	version bool
	help    bool
}

// displayArg turns on display mode wherever it appears in argv, including
// after "--" or where another flag expects a value.
const displayArg = "--display"

// parseFlags parses args (without the program name). Unknown flags and
// positional arguments are ignored so the tool can sit behind wrappers that
// pass extra options through.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet("tex2png", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	f := &cliFlags{}

	if slices.Contains(args, displayArg) {
		f.display = true
		args = slices.DeleteFunc(slices.Clone(args), func(a string) bool { return a == displayArg })
	}

	fs.BoolVarP(&f.display, "display", "d", false, "typeset in display mode")
	fs.StringVar(&f.engine, "engine", "", "raster engine: vector, browser")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion deadline (e.g., 10s, 1m)")
	fs.StringVar(&f.svgPath, "svg", "", "also write the intermediate SVG to this file")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show stage timings on stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
