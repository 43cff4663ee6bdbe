package config

import (
	"fmt"
	"strings"

	"github.com/prreview/prdesk/internal/models"
)

// LoadSettings loads the global settings from ~/.prdesk/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFile(path)
}

// LoadSettingsFile loads settings from an explicit path, filling blanks with defaults.
func LoadSettingsFile(path string) (*models.Settings, error) {
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	if err := normalizeSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings saves the global settings to ~/.prdesk/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

func normalizeSettings(s *models.Settings) error {
	if s.Backend.Name == "" {
		s.Backend.Name = models.DefaultBackendName
	}
	if s.Backend.Port == 0 {
		s.Backend.Port = models.DefaultBackendPort
	}
	if s.Backend.Port < 0 || s.Backend.Port > 65535 {
		return fmt.Errorf("backend.port %d out of range", s.Backend.Port)
	}
	if s.Window.URL == "" {
		s.Window.URL = models.DefaultWindowURL
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	switch s.LogLevel {
	case "":
		s.LogLevel = models.DefaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", s.LogLevel)
	}
	return nil
}
