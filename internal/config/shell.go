package config

import (
	"os"

	"github.com/prreview/prdesk/internal/models"
)

// LoadShellInfo loads the shell state from ~/.prdesk/shell.yaml.
// Returns nil if the file doesn't exist.
func LoadShellInfo() (*models.ShellInfo, error) {
	path, err := GlobalShellFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.ShellInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveShellInfo saves the shell state to ~/.prdesk/shell.yaml.
func SaveShellInfo(info *models.ShellInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalShellFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveShellInfo removes the shell.yaml file.
func RemoveShellInfo() error {
	path, err := GlobalShellFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsShellRunning reports whether the shell recorded in shell.yaml is alive.
// A stale file (dead PID) is removed. This is informational: nothing refuses
// to start because another shell is running.
func IsShellRunning() (bool, *models.ShellInfo, error) {
	info, err := LoadShellInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	if !ProcessAlive(info.PID) {
		_ = RemoveShellInfo()
		return false, info, nil
	}
	return true, info, nil
}
