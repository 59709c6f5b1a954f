//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music",
			expected: filepath.Join(home, "music"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/local/music",
			expected: "/usr/local/music",
		},
		{
			name:     "relative path unchanged",
			input:    "music/albums",
			expected: "music/albums",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml (highest priority)
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "aria", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := loadPaths(nil)
	if err != nil {
		t.Fatalf("loadPaths: %v", err)
	}

	if cfg.Playback.PositionInterval() != 250*time.Millisecond {
		t.Errorf("PositionInterval = %v, want 250ms", cfg.Playback.PositionInterval())
	}
	if cfg.Playback.RetryAttempts != 5 {
		t.Errorf("RetryAttempts = %d, want 5", cfg.Playback.RetryAttempts)
	}
	if cfg.Playback.RetryDelay() != 100*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 100ms", cfg.Playback.RetryDelay())
	}
	if cfg.Playback.BufferFrames != 4096 {
		t.Errorf("BufferFrames = %d, want 4096", cfg.Playback.BufferFrames)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
library_sources = ["/srv/music"]

[device]
id = "hw:1,0"

[playback]
position_interval_ms = 500
retry_attempts = 2

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadPaths([]string{path})
	if err != nil {
		t.Fatalf("loadPaths: %v", err)
	}

	if len(cfg.LibrarySources) != 1 || cfg.LibrarySources[0] != "/srv/music" {
		t.Errorf("LibrarySources = %v", cfg.LibrarySources)
	}
	if cfg.Device.ID != "hw:1,0" {
		t.Errorf("Device.ID = %q, want hw:1,0", cfg.Device.ID)
	}
	if cfg.Playback.PositionIntervalMs != 500 {
		t.Errorf("PositionIntervalMs = %d, want 500", cfg.Playback.PositionIntervalMs)
	}
	if cfg.Playback.RetryAttempts != 2 {
		t.Errorf("RetryAttempts = %d, want 2", cfg.Playback.RetryAttempts)
	}
	// Unset keys still get defaults.
	if cfg.Playback.BufferFrames != 4096 {
		t.Errorf("BufferFrames = %d, want default 4096", cfg.Playback.BufferFrames)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}
