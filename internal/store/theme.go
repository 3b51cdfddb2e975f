package store

import (
	"log/slog"
	"sync"

	"github.com/kostyay/docsee/internal/config"
)

// Theme modes.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// ThemeStore persists the light/dark choice. ThemeSystem is the absence of a
// stored value.
type ThemeStore struct {
	kv          KV
	prefersDark func() bool

	mu   sync.RWMutex
	mode string
}

// NewThemeStore creates a store in system mode. prefersDark resolves system
// mode; nil means dark.
func NewThemeStore(kv KV, prefersDark func() bool) *ThemeStore {
	if prefersDark == nil {
		prefersDark = func() bool { return true }
	}
	return &ThemeStore{kv: kv, prefersDark: prefersDark, mode: ThemeSystem}
}

// Load reads the stored mode. Missing or unreadable values mean system.
func (s *ThemeStore) Load() string {
	mode := ThemeSystem
	v, ok, err := s.kv.Get(config.ThemeKey)
	switch {
	case err != nil:
		slog.Warn("Failed to read theme", "err", err)
	case ok && (v == ThemeLight || v == ThemeDark):
		mode = v
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return mode
}

// Set stores mode. ThemeSystem removes the stored value; unknown modes are
// ignored.
func (s *ThemeStore) Set(mode string) {
	var err error
	switch mode {
	case ThemeLight, ThemeDark:
		err = s.kv.Set(config.ThemeKey, mode)
	case ThemeSystem:
		err = s.kv.Delete(config.ThemeKey)
	default:
		return
	}
	if err != nil {
		slog.Warn("Failed to persist theme", "mode", mode, "err", err)
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

// Toggle switches between light and dark, resolving system first.
func (s *ThemeStore) Toggle() string {
	next := ThemeDark
	if s.Resolved() == ThemeDark {
		next = ThemeLight
	}
	s.Set(next)
	return next
}

// Reset returns to system mode.
func (s *ThemeStore) Reset() { s.Set(ThemeSystem) }

func (s *ThemeStore) Mode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Resolved returns ThemeLight or ThemeDark.
func (s *ThemeStore) Resolved() string {
	mode := s.Mode()
	if mode != ThemeSystem {
		return mode
	}
	if s.prefersDark() {
		return ThemeDark
	}
	return ThemeLight
}
