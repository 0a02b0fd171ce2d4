// Package config loads application configuration from XDG-compliant
// paths (typically ~/.config/studymate/config.yaml). Missing files and
// missing keys fall back to defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DBPath overrides the default database location
	// (~/.config/studymate/studymate.db).
	DBPath string `yaml:"db_path,omitempty"`

	// ExportDir is the directory reports are written to. Defaults to
	// the current working directory.
	ExportDir string `yaml:"export_dir,omitempty"`

	// Timer customizes session durations.
	Timer TimerConfig `yaml:"timer,omitempty"`
}

// TimerConfig defines countdown session durations in minutes.
type TimerConfig struct {
	StudyMinutes int `yaml:"study_minutes,omitempty"` // default: 25
	BreakMinutes int `yaml:"break_minutes,omitempty"` // default: 5
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DBPath:    "",
		ExportDir: "",
		Timer: TimerConfig{
			StudyMinutes: 25,
			BreakMinutes: 5,
		},
	}
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "studymate")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "studymate")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults. If no
// config file exists, returns the default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	cfg.merge(&userCfg)
	return cfg, nil
}

// merge applies set values from other to c. Zero-valued fields keep
// their defaults; durations must be positive to take effect.
func (c *Config) merge(other *Config) {
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if other.ExportDir != "" {
		c.ExportDir = other.ExportDir
	}
	if other.Timer.StudyMinutes > 0 {
		c.Timer.StudyMinutes = other.Timer.StudyMinutes
	}
	if other.Timer.BreakMinutes > 0 {
		c.Timer.BreakMinutes = other.Timer.BreakMinutes
	}
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// GetDBPath returns the resolved database path, expanding a leading ~.
func (c *Config) GetDBPath(fallback string) string {
	if c.DBPath == "" {
		return fallback
	}
	return expandHome(c.DBPath)
}

// GetExportDir returns the resolved export directory.
func (c *Config) GetExportDir() string {
	if c.ExportDir == "" {
		return "."
	}
	return expandHome(c.ExportDir)
}

func expandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return path
}
