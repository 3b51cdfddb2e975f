package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBackend = "ws://127.0.0.1:7411/ws"
	DefaultListen  = "127.0.0.1:7411"
)

// FileConfig holds the CLI options read from config.yaml.
type FileConfig struct {
	Backend  string `yaml:"backend"`
	Listen   string `yaml:"listen"`
	DataDir  string `yaml:"dataDir"`
	LogLevel string `yaml:"logLevel"`
	Token    string `yaml:"token,omitempty"`  // Sent to the backend when dialing
	Secret   string `yaml:"secret,omitempty"` // Used by serve to verify tokens
	Theme    string `yaml:"theme,omitempty"`  // Skin name, empty follows the app theme
}

// DefaultFileConfig returns the built-in CLI options.
func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		Backend:  DefaultBackend,
		Listen:   DefaultListen,
		DataDir:  defaultDataDir(),
		LogLevel: "info",
	}
}

func defaultDataDir() string {
	dir, err := ConfigDir()
	if err != nil {
		return "."
	}
	return dir
}

// ConfigDir returns $UserConfigDir/docsee.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "docsee"), nil
}

// DefaultConfigPath returns the path to config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFileConfig loads path, returning defaults if the file does not exist.
// Fields missing from the file keep their default value.
func LoadFileConfig(path string) (*FileConfig, error) {
	cfg := DefaultFileConfig()

	// #nosec G304 - path comes from a flag or the user config dir
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultFileConfig(), err
	}
	return cfg, nil
}

// SaveFileConfig writes cfg to path.
func SaveFileConfig(path string, cfg *FileConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overrides cfg with DOCSEE_* environment variables when set.
func (c *FileConfig) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("DOCSEE_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := getenv("DOCSEE_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := getenv("DOCSEE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := getenv("DOCSEE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("DOCSEE_TOKEN"); v != "" {
		c.Token = v
	}
	if v := getenv("DOCSEE_SECRET"); v != "" {
		c.Secret = v
	}
}

// ParseLogLevel maps debug|info|warn|error to a slog level. Unknown values
// are treated as info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
