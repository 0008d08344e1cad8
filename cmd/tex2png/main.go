// Command tex2png reads TeX math from stdin and writes a 2000 pixel wide PNG
// to stdout.
//
//	echo '\frac{a}{b}' | tex2png > out.png
//	echo '\sum_{k=1}^n k' | tex2png --display > sum.png
package main

import (
	"os"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}
