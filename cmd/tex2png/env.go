package main

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether Stdin is an interactive terminal.
	StdinIsTerminal func() bool
}

// DefaultEnv returns the process environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) // #nosec G115 -- file descriptors fit in int
		},
	}
}
