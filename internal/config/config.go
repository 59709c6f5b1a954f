package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	LibrarySources []string `koanf:"library_sources"` // paths to scan for music files

	Device   DeviceConfig   `koanf:"device"`
	Playback PlaybackConfig `koanf:"playback"`
	UI       UIConfig       `koanf:"ui"`
	Log      LogConfig      `koanf:"log"`
}

// UIConfig tunes the terminal interface.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode" or "none"
}

// DeviceConfig selects the output device.
type DeviceConfig struct {
	ID string `koanf:"id"` // e.g. "hw:0,0"; empty means first available
}

// PlaybackConfig tunes the playback engine.
type PlaybackConfig struct {
	PositionIntervalMs int `koanf:"position_interval_ms"` // position event period while playing
	RetryAttempts      int `koanf:"retry_attempts"`       // bounded retries when the device is busy
	RetryDelayMs       int `koanf:"retry_delay_ms"`       // initial retry delay, doubled per attempt
	BufferFrames       int `koanf:"buffer_frames"`        // frames per device write
}

// LogConfig controls the log output.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name; default "info"
}

// PositionInterval returns the position event period.
func (p PlaybackConfig) PositionInterval() time.Duration {
	return time.Duration(p.PositionIntervalMs) * time.Millisecond
}

// RetryDelay returns the initial device-busy retry delay.
func (p PlaybackConfig) RetryDelay() time.Duration {
	return time.Duration(p.RetryDelayMs) * time.Millisecond
}

func Load() (*Config, error) {
	return loadPaths(getConfigPaths())
}

func loadPaths(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Playback.PositionIntervalMs <= 0 {
		c.Playback.PositionIntervalMs = 250
	}
	if c.Playback.RetryAttempts <= 0 {
		c.Playback.RetryAttempts = 5
	}
	if c.Playback.RetryDelayMs <= 0 {
		c.Playback.RetryDelayMs = 100
	}
	if c.Playback.BufferFrames <= 0 {
		c.Playback.BufferFrames = 4096
	}
	if c.UI.Icons == "" {
		c.UI.Icons = "none"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/aria/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "aria", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
