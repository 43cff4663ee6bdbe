package models

// Default values for the backend and main window.
const (
	DefaultBackendName = "PR-Review-Agent"
	DefaultBackendPort = 47685
	DefaultWindowURL   = "http://127.0.0.1:47685/"
	DefaultLogLevel    = "info"
)

// BackendConfig holds settings for the sidecar backend.
type BackendConfig struct {
	Name       string `yaml:"name"`
	Path       string `yaml:"path"` // empty = resolve next to the executable
	Port       int    `yaml:"port"`
	KillOnExit bool   `yaml:"kill_on_exit"`
}

// WindowConfig holds settings for the main window.
type WindowConfig struct {
	URL         string `yaml:"url"`
	ShowOnStart bool   `yaml:"show_on_start"`
}

// Settings represents global shell settings.
// This corresponds to ~/.prdesk/settings.yaml.
type Settings struct {
	Version  int           `yaml:"version"`
	LogLevel string        `yaml:"log_level"` // "debug" | "info" | "warn" | "error"
	Backend  BackendConfig `yaml:"backend"`
	Window   WindowConfig  `yaml:"window"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:  1,
		LogLevel: DefaultLogLevel,
		Backend: BackendConfig{
			Name: DefaultBackendName,
			Port: DefaultBackendPort,
		},
		Window: WindowConfig{
			URL: DefaultWindowURL,
		},
	}
}
