package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileConfig_ReturnsDefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFileConfig failed: %v", err)
	}
	if cfg.Backend != DefaultBackend {
		t.Errorf("Backend = %q, want %q", cfg.Backend, DefaultBackend)
	}
	if cfg.Listen != DefaultListen {
		t.Errorf("Listen = %q, want %q", cfg.Listen, DefaultListen)
	}
}

func TestLoadFileConfig_KeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: ws://example:9000/ws\ntheme: light\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig failed: %v", err)
	}
	if cfg.Backend != "ws://example:9000/ws" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.Listen != DefaultListen {
		t.Errorf("Listen = %q, want default", cfg.Listen)
	}
}

func TestLoadFileConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: [unclosed"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg, err := LoadFileConfig(path)
	if err == nil {
		t.Error("expected error for invalid yaml")
	}
	if cfg == nil || cfg.Backend != DefaultBackend {
		t.Error("invalid yaml should still return defaults")
	}
}

func TestSaveAndLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	original := DefaultFileConfig()
	original.Secret = "s3cret"
	original.LogLevel = "debug"

	if err := SaveFileConfig(path, original); err != nil {
		t.Fatalf("SaveFileConfig failed: %v", err)
	}
	loaded, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig failed: %v", err)
	}
	if *loaded != *original {
		t.Errorf("loaded = %+v, want %+v", loaded, original)
	}
}

func TestFileConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		"DOCSEE_BACKEND":   "ws://other/ws",
		"DOCSEE_LOG_LEVEL": "warn",
		"DOCSEE_TOKEN":     "tok",
	}
	cfg := DefaultFileConfig()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Backend != "ws://other/ws" || cfg.LogLevel != "warn" || cfg.Token != "tok" {
		t.Errorf("ApplyEnv result = %+v", cfg)
	}
	if cfg.Listen != DefaultListen {
		t.Errorf("Listen should be untouched, got %q", cfg.Listen)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
