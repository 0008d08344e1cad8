//go:build windows

package main

import "os"

// SIGTERM and SIGPIPE are not delivered on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
