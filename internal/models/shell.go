package models

import "time"

// ShellInfo records the running shell and the backend it spawned.
// This corresponds to ~/.prdesk/shell.yaml.
type ShellInfo struct {
	Version       int       `yaml:"version"`
	PID           int       `yaml:"pid"`
	RunID         string    `yaml:"run_id"`
	BackendPID    int       `yaml:"backend_pid"` // 0 when no backend was spawned
	BackendPort   int       `yaml:"backend_port"`
	ManualBackend bool      `yaml:"manual_backend"`
	StartedAt     time.Time `yaml:"started_at"`
}

// NewShellInfo creates shell info for the current process.
func NewShellInfo(pid int, runID string, backendPort int, manual bool) *ShellInfo {
	return &ShellInfo{
		Version:       1,
		PID:           pid,
		RunID:         runID,
		BackendPort:   backendPort,
		ManualBackend: manual,
		StartedAt:     time.Now().UTC(),
	}
}
