package config

import "os"

// Environment variables read by the shell.
const (
	// EnvNoSidecar skips spawning the backend when present, whatever its value.
	EnvNoSidecar = "TAURI_NO_SIDECAR"

	// EnvDebug forces debug-level logging when present.
	EnvDebug = "PRDESK_DEBUG"

	// EnvHome overrides the global prdesk directory.
	EnvHome = "PRDESK_HOME"
)

// NoSidecar reports whether the backend spawn should be skipped.
// Only presence matters: TAURI_NO_SIDECAR= (empty) still counts.
func NoSidecar() bool {
	_, ok := os.LookupEnv(EnvNoSidecar)
	return ok
}

// Debug reports whether PRDESK_DEBUG is present.
func Debug() bool {
	_, ok := os.LookupEnv(EnvDebug)
	return ok
}
