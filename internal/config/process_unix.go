//go:build !windows

package config

import (
	"os"
	"syscall"
)

// ProcessAlive checks a PID with signal 0.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
