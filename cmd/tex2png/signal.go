package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context canceled by the first shutdown signal.
// Catching SIGPIPE turns a closed stdout into a write error instead of a
// silent kill. Call stop to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
