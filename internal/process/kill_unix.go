//go:build !windows

// Package process terminates the browser engine's process tree.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid so
// renderer and GPU helpers of the browser die with it. Non-positive pids are
// ignored; -0 would target the caller's own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort; the caller still runs launcher.Kill afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
