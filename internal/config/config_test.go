package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	restore := overrideConfigEnv(tempDir)
	defer restore()

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath error: %v", err)
	}
	_ = os.Remove(path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.Volume != DefaultVolume {
		t.Errorf("Volume = %d, want %d", cfg.Volume, DefaultVolume)
	}
	if cfg.Zoom != DefaultZoom {
		t.Errorf("Zoom = %v, want %v", cfg.Zoom, DefaultZoom)
	}
	if cfg.WindowW != DefaultWidth {
		t.Errorf("WindowW = %d, want %d", cfg.WindowW, DefaultWidth)
	}
	if cfg.WindowH != DefaultHeight {
		t.Errorf("WindowH = %d, want %d", cfg.WindowH, DefaultHeight)
	}
	if cfg.InitialVolume() != 1 {
		t.Errorf("InitialVolume = %v, want 1", cfg.InitialVolume())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s, got error: %v", path, err)
	}
}

func TestLoadNormalizesValues(t *testing.T) {
	tempDir := t.TempDir()
	restore := overrideConfigEnv(tempDir)
	defer restore()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	raw := `{"volume": 140, "zoom": 9, "windowW": 100, "windowX": 40, "lastDir": "/definitely/not/here"}`
	if err := os.WriteFile(filepath.Join(dir, AppConfigName), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Volume != DefaultVolume {
		t.Errorf("Volume = %d, want %d", cfg.Volume, DefaultVolume)
	}
	if cfg.Zoom != 2 {
		t.Errorf("Zoom = %v, want 2", cfg.Zoom)
	}
	if cfg.WindowW != MinWindowWidth {
		t.Errorf("WindowW = %d, want %d", cfg.WindowW, MinWindowWidth)
	}
	if !cfg.WindowPosValid {
		t.Error("WindowPosValid should be inferred from a saved position")
	}
	if cfg.LastDir != "" {
		t.Errorf("LastDir = %q, want it dropped", cfg.LastDir)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	tempDir := t.TempDir()
	restore := overrideConfigEnv(tempDir)
	defer restore()

	dir, _ := ConfigDir()
	_ = os.MkdirAll(dir, 0o755)
	if err := os.WriteFile(filepath.Join(dir, AppConfigName), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRememberDir(t *testing.T) {
	cfg := newDefaultConfig()
	p := filepath.Join("music", "a.mp3")
	if !cfg.RememberDir(p) {
		t.Fatal("first path should change LastDir")
	}
	if cfg.LastDir != "music" {
		t.Fatalf("LastDir = %q", cfg.LastDir)
	}
	if cfg.RememberDir(filepath.Join("music", "b.mp3")) {
		t.Fatal("same directory should not report a change")
	}
	if cfg.RememberDir("") {
		t.Fatal("empty path should be ignored")
	}
}

func overrideConfigEnv(tempDir string) func() {
	originals := map[string]string{
		"APPDATA":         os.Getenv("APPDATA"),
		"LOCALAPPDATA":    os.Getenv("LOCALAPPDATA"),
		"USERPROFILE":     os.Getenv("USERPROFILE"),
		"XDG_CONFIG_HOME": os.Getenv("XDG_CONFIG_HOME"),
		"HOME":            os.Getenv("HOME"),
	}

	if runtime.GOOS == "windows" {
		os.Setenv("APPDATA", tempDir)
		os.Setenv("LOCALAPPDATA", tempDir)
		os.Setenv("USERPROFILE", tempDir)
	} else {
		xdg := filepath.Join(tempDir, "xdg")
		_ = os.MkdirAll(xdg, 0o755)
		os.Setenv("XDG_CONFIG_HOME", xdg)
		os.Setenv("HOME", tempDir)
	}

	return func() {
		for k, v := range originals {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", AppConfigName)

	cfg := newDefaultConfig()
	cfg.Volume = 35
	cfg.LastDir = dir
	if err := cfg.saveFile(path); err != nil {
		t.Fatalf("saveFile: %v", err)
	}
	cfg.Volume = 70
	if err := cfg.saveFile(path); err != nil {
		t.Fatalf("second saveFile: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != AppConfigName {
		t.Fatalf("config dir holds %d entries, want only %s", len(entries), AppConfigName)
	}

	got, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if got.Volume != 70 || got.LastDir != dir {
		t.Fatalf("loaded %+v", got)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), AppConfigName)
	if err := os.WriteFile(path, []byte(`{"zoom": 1.5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if cfg.Volume != DefaultVolume || cfg.WindowH != DefaultHeight || cfg.Zoom != 1.5 {
		t.Fatalf("got %+v", cfg)
	}
}
