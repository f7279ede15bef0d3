// Package config loads and provides server configuration.
//
// On first run, a default YAML config is written to ~/.gitstermd.yaml.
// Subsequent runs read and merge that file with built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all server-configurable settings.
type Config struct {
	// ListenAddr is the address the websocket transport binds to.
	ListenAddr string `yaml:"listen_addr"`

	// Shell is the command spawned inside the PTY for each new session.
	Shell string `yaml:"shell"`

	// WorkDir is the working directory for new sessions. Empty means the
	// current working directory at launch time.
	WorkDir string `yaml:"work_dir"`

	// DefaultRows and DefaultCols size a freshly created emulator before
	// the client's first rsz frame arrives.
	DefaultRows int `yaml:"default_rows"`
	DefaultCols int `yaml:"default_cols"`

	// CapabilitiesFile, if set, overrides the embedded capability
	// definition with one loaded from disk (spec.md §6).
	CapabilitiesFile string `yaml:"capabilities_file"`

	// MaxSessions is loaded and clamped to at least 1, but nothing in the
	// server reads it: the number of concurrent PTY sessions is not limited.
	MaxSessions int `yaml:"max_sessions"`

	// IdleTimeoutMinutes is loaded and clamped to at least 0, but nothing
	// in the server reads it: idle or disconnected sessions are not closed
	// on a timer.
	IdleTimeoutMinutes int `yaml:"idle_timeout_minutes"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:         ":7681",
		Shell:              "",
		WorkDir:            "",
		DefaultRows:        24,
		DefaultCols:        80,
		CapabilitiesFile:   "",
		MaxSessions:        64,
		IdleTimeoutMinutes: 30,
	}
}

// configPath returns the path to ~/.gitstermd.yaml.
func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gitstermd.yaml")
}

// Load reads the config file, falling back to defaults for missing fields.
func Load() Config {
	cfg := DefaultConfig()

	p := configPath()
	if p == "" {
		return cfg
	}

	data, err := os.ReadFile(p)
	if err != nil {
		// No config file yet – write defaults for future editing.
		writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	if cfg.DefaultRows < 1 {
		cfg.DefaultRows = 24
	}
	if cfg.DefaultCols < 1 {
		cfg.DefaultCols = 80
	}
	if cfg.MaxSessions < 1 {
		cfg.MaxSessions = 1
	}
	if cfg.IdleTimeoutMinutes < 0 {
		cfg.IdleTimeoutMinutes = 0
	}

	return cfg
}

// writeDefaults persists the default configuration to disk.
func writeDefaults(path string, cfg Config) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}
	header := []byte("# gitstermd configuration\n# Edit this file to customise defaults.\n\n")
	_ = os.WriteFile(path, append(header, data...), 0644)
}
