// ABOUTME: Tests for config loading, saving, and path handling.
// ABOUTME: Redirects XDG directories into temp dirs.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LoggedIn() {
		t.Error("empty config should not be logged in")
	}
	if cfg.GetAPIBase() != "http://13.209.67.129:8000" {
		t.Errorf("default api base = %q", cfg.GetAPIBase())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		APIBase:             "http://localhost:8000",
		UserID:              20,
		Username:            "박승민",
		PollIntervalSeconds: 5,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.UserID != 20 || got.Username != "박승민" {
		t.Errorf("identity = %d/%q", got.UserID, got.Username)
	}
	if !got.LoggedIn() {
		t.Error("expected logged-in config")
	}
	if got.PollInterval() != 5*time.Second {
		t.Errorf("PollInterval = %v", got.PollInterval())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "fitai", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for corrupt config")
	}
}

func TestPollIntervalDefault(t *testing.T) {
	cfg := &Config{}
	if cfg.PollInterval() != 0 {
		t.Errorf("unset interval = %v, want 0", cfg.PollInterval())
	}
}

func TestEnsureDeviceID(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{UserID: 20, Username: "박승민"}
	if err := cfg.EnsureDeviceID(); err != nil {
		t.Fatalf("EnsureDeviceID: %v", err)
	}
	if cfg.DeviceID == "" {
		t.Fatal("device id not assigned")
	}

	first := cfg.DeviceID
	if err := cfg.EnsureDeviceID(); err != nil {
		t.Fatal(err)
	}
	if cfg.DeviceID != first {
		t.Error("device id must be stable across calls")
	}

	// Persisted.
	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.DeviceID != first {
		t.Error("device id was not saved")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetDataDirOverride(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/fitai-test"}
	if got := cfg.GetDataDir(); got != "/tmp/fitai-test" {
		t.Errorf("GetDataDir = %q", got)
	}
}
