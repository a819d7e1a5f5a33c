// Package config defines the MiniPlayer preferences format and helpers for
// loading or saving it to disk.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppID is the stable application identifier used for config storage.
	AppID = "miniplayer"
	// AppConfigSubdir is the OS-specific directory that holds the config file.
	AppConfigSubdir = "MiniPlayer"
	// AppConfigName is the JSON file stored on disk.
	AppConfigName = "config.json"

	// DefaultWidth is the preferred window width when no persisted value exists.
	DefaultWidth = 560
	// DefaultHeight is the preferred window height for the player layout.
	DefaultHeight = 180
	// MinWindowWidth keeps the transport row visible at zoom 1.
	MinWindowWidth = 420
	// DefaultVolume sets the initial level for freshly loaded media.
	DefaultVolume = 100
	// DefaultZoom is the zoom factor of new windows.
	DefaultZoom = 1.0

	minZoom = 0.5
	maxZoom = 2.0
)

// Config aggregates every user-facing preference persisted between sessions.
type Config struct {
	Volume         int     `json:"volume"`
	Zoom           float64 `json:"zoom"`
	LastDir        string  `json:"lastDir,omitempty"`
	WindowW        int     `json:"windowW"`
	WindowH        int     `json:"windowH"`
	WindowX        int     `json:"windowX,omitempty"`
	WindowY        int     `json:"windowY,omitempty"`
	WindowPosValid bool    `json:"windowPosValid,omitempty"`
}

// ConfigDir resolves the writable directory that should contain the config file.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppConfigSubdir), nil
}

// ConfigPath is a helper that returns the full path to config.json.
func ConfigPath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, AppConfigName), nil
}

// Load reads the config from disk, applying defaults to missing or out of
// range values. A missing file yields the defaults, which are written back
// on a best-effort basis.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path)
}

func loadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := newDefaultConfig()
		_ = cfg.saveFile(path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := newDefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}
	cfg.applyRuntimeDefaults()
	return cfg, nil
}

// Save persists the configuration, creating directories as needed. The file
// is replaced atomically so a crash never leaves half a config behind.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.saveFile(path)
}

func (c *Config) saveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), AppConfigName+".*")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// AppID returns the stable identifier used by the GUI framework.
func (c *Config) AppID() string { return AppID }

// InitialVolume returns Volume as an engine level in [0,1].
func (c *Config) InitialVolume() float64 { return float64(c.Volume) / 100 }

// RememberDir records the directory of a picked file so the next dialog
// starts there.
func (c *Config) RememberDir(path string) bool {
	dir := filepath.Dir(path)
	if strings.TrimSpace(path) == "" || dir == c.LastDir {
		return false
	}
	c.LastDir = dir
	return true
}

// newDefaultConfig builds an in-memory config populated with safe defaults.
func newDefaultConfig() *Config {
	cfg := &Config{
		Volume:  DefaultVolume,
		Zoom:    DefaultZoom,
		WindowW: DefaultWidth,
		WindowH: DefaultHeight,
	}
	cfg.applyRuntimeDefaults()
	return cfg
}

// applyRuntimeDefaults normalizes config values after a load or when defaults
// are constructed, ensuring the UI always receives sane inputs.
func (c *Config) applyRuntimeDefaults() {
	if c.WindowW == 0 {
		c.WindowW = DefaultWidth
	}
	if c.WindowW < MinWindowWidth {
		c.WindowW = MinWindowWidth
	}
	if c.WindowH <= 0 {
		c.WindowH = DefaultHeight
	}
	if c.Volume < 0 || c.Volume > 100 {
		c.Volume = DefaultVolume
	}
	if c.Zoom == 0 || math.IsNaN(c.Zoom) {
		c.Zoom = DefaultZoom
	}
	c.Zoom = math.Min(maxZoom, math.Max(minZoom, c.Zoom))
	if !c.WindowPosValid && (c.WindowX != 0 || c.WindowY != 0) {
		c.WindowPosValid = true
	}
	if c.LastDir != "" {
		if st, err := os.Stat(c.LastDir); err != nil || !st.IsDir() {
			c.LastDir = ""
		}
	}
}
