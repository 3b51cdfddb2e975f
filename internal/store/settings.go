package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kostyay/docsee/internal/config"
)

// SettingsStore holds the in-app settings, persisted as one JSON blob.
type SettingsStore struct {
	kv     KV
	toasts *ToastStore
	now    func() time.Time

	mu       sync.RWMutex
	settings config.Settings
	saved    config.Settings
	loading  bool
	saving   bool
	err      string
}

// NewSettingsStore starts with defaults. toasts may be nil.
func NewSettingsStore(kv KV, toasts *ToastStore, opts Options) *SettingsStore {
	opts = opts.withDefaults()
	d := config.DefaultSettings(opts.Now())
	return &SettingsStore{kv: kv, toasts: toasts, now: opts.Now, settings: d, saved: d}
}

// Load reads the stored blob and merges it over defaults. Absent or
// unreadable blobs give defaults, and so do out-of-range refresh intervals.
func (s *SettingsStore) Load() config.Settings {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	defaults := config.DefaultSettings(s.now())
	loaded := defaults
	raw, ok, err := s.kv.Get(config.SettingsKey)
	switch {
	case err != nil:
		slog.Warn("Failed to read settings, using defaults", "err", err)
	case ok:
		partial, err := config.ParsePartial([]byte(raw))
		if err != nil {
			slog.Warn("Failed to parse settings, using defaults", "err", err)
			break
		}
		loaded = config.MergeDefaults(defaults, partial).WithValidIntervals(defaults)
	}

	s.mu.Lock()
	s.settings, s.saved = loaded, loaded
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return loaded
}

// Save stamps lastModified with now and writes the settings.
func (s *SettingsStore) Save(now time.Time) bool {
	s.mu.Lock()
	s.saving = true
	next := s.settings
	next.LastModified = now.UnixMilli()
	s.mu.Unlock()

	err := s.write(next)

	s.mu.Lock()
	s.saving = false
	if err != nil {
		s.err = err.Error()
	} else {
		s.settings, s.saved = next, next
		s.err = ""
	}
	s.mu.Unlock()

	if err != nil {
		slog.Warn("Failed to save settings", "err", err)
		s.toast(ToastError, "Failed to save settings", err.Error())
		return false
	}
	s.toast(ToastSuccess, "Settings saved", "Your settings have been saved")
	return true
}

func (s *SettingsStore) write(v config.Settings) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return s.kv.Set(config.SettingsKey, string(data))
}

func (s *SettingsStore) toast(kind, title, msg string) {
	if s.toasts != nil {
		s.toasts.Add(kind, title, msg, ToastOptions{})
	}
}

// Update applies fn to the working copy. Changes are kept until Save.
func (s *SettingsStore) Update(fn func(*config.Settings)) {
	s.mu.Lock()
	fn(&s.settings)
	s.mu.Unlock()
}

// Settings returns the working copy.
func (s *SettingsStore) Settings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// HasUnsavedChanges reports whether the working copy differs from the last
// loaded or saved settings.
func (s *SettingsStore) HasUnsavedChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings != s.saved
}

// ResetToDefaults replaces the working copy with defaults.
func (s *SettingsStore) ResetToDefaults() {
	d := config.DefaultSettings(s.now())
	s.mu.Lock()
	s.settings = d
	s.mu.Unlock()
}

// ResetCategory restores one category to its defaults.
func (s *SettingsStore) ResetCategory(category string) error {
	d := config.DefaultSettings(s.now())
	s.mu.Lock()
	defer s.mu.Unlock()
	switch category {
	case config.CategoryDocker:
		s.settings.Docker = d.Docker
	case config.CategoryApplication:
		s.settings.Application = d.Application
	case config.CategoryResources:
		s.settings.Resources = d.Resources
	case config.CategorySecurity:
		s.settings.Security = d.Security
	default:
		return fmt.Errorf("unknown settings category: %q", category)
	}
	return nil
}

// Export renders the settings as indented JSON. The docker host is blanked
// unless security.exportIncludeCredentials is set.
func (s *SettingsStore) Export() (string, error) {
	v := s.Settings()
	if !v.Security.ExportIncludeCredentials {
		v = v.Redacted()
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export settings: %w", err)
	}
	return string(data), nil
}

// Import merges a settings blob over defaults and replaces the working copy.
// An empty docker host, as written by a redacted Export, keeps the current
// host. On any error the working copy is unchanged.
func (s *SettingsStore) Import(data []byte) error {
	partial, err := config.ParsePartial(data)
	if err == nil {
		redacted := dropRedactedHost(partial)
		var next config.Settings
		next, err = config.MergeDefaultsStrict(config.DefaultSettings(s.now()), partial)
		if err == nil {
			s.mu.Lock()
			if redacted {
				next.Docker.Host = s.settings.Docker.Host
			}
			s.settings = next
			s.err = ""
			s.mu.Unlock()
			s.toast(ToastSuccess, "Settings imported", "Settings were imported successfully")
			return nil
		}
	}
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
	s.toast(ToastError, "Failed to import settings", err.Error())
	return err
}

// dropRedactedHost removes an empty docker.host and reports whether it did.
func dropRedactedHost(partial map[string]any) bool {
	d, ok := partial[config.CategoryDocker].(map[string]any)
	if !ok {
		return false
	}
	if h, ok := d["host"].(string); ok && h == "" {
		delete(d, "host")
		return true
	}
	return false
}

// Validate returns the validation messages of the working copy.
func (s *SettingsStore) Validate() []string {
	return s.Settings().Validate()
}

func (s *SettingsStore) Summary() config.Summary {
	return s.Settings().Summary()
}

func (s *SettingsStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SettingsStore) IsSaving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saving
}

func (s *SettingsStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
