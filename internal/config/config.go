// ABOUTME: Client configuration: API endpoint, user identity, cache location.
// ABOUTME: JSON file under the XDG config directory with ~ expansion.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultAPIBase = "http://13.209.67.129:8000"

// Config stores the fitai client configuration.
type Config struct {
	// APIBase is the workout API endpoint.
	APIBase string `json:"api_base,omitempty"`

	// UserID and Username identify the logged-in user. The username is
	// embedded (whitespace-stripped) in upload keys and result paths.
	UserID   int    `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`

	// DataDir is the root directory for the local cache. Supports ~
	// expansion. Defaults to the XDG data directory.
	DataDir string `json:"data_dir,omitempty"`

	// PollIntervalSeconds overrides the feedback polling cadence.
	PollIntervalSeconds int `json:"poll_interval_seconds,omitempty"`

	// DeviceID identifies this installation in logs.
	DeviceID string `json:"device_id,omitempty"`
}

// GetAPIBase returns the configured API endpoint or the default.
func (c *Config) GetAPIBase() string {
	if c.APIBase == "" {
		return defaultAPIBase
	}
	return c.APIBase
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DataDir()
	}
	return ExpandPath(c.DataDir)
}

// PollInterval returns the configured polling cadence, or zero to let the
// poller use its default.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// LoggedIn reports whether a user identity has been configured.
func (c *Config) LoggedIn() bool {
	return c.UserID != 0 && c.Username != ""
}

// EnsureDeviceID assigns a device id on first use and persists it.
func (c *Config) EnsureDeviceID() error {
	if c.DeviceID != "" {
		return nil
	}
	c.DeviceID = uuid.NewString()
	return c.Save()
}

// DataDir returns the default data directory following the XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitai")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitai", "config.json")
}

// Load reads config from disk. A missing file yields an empty config.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
