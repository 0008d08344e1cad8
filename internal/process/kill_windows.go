//go:build windows

// Package process terminates the browser engine's process tree.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its children with taskkill.
// Non-positive pids are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort; the caller still runs launcher.Kill afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an integer
}
