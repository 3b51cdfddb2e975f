package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestMergeDefaults_PartialCategory(t *testing.T) {
	defaults := DefaultSettings(testNow)
	partial := map[string]any{
		"application": map[string]any{"theme": "dark"},
	}

	got := MergeDefaults(defaults, partial)

	want := defaults
	want.Application.Theme = "dark"
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeDefaults() = %+v, want %+v", got, want)
	}
}

func TestMergeDefaults_DoesNotModifyInputs(t *testing.T) {
	defaults := DefaultSettings(testNow)
	app := map[string]any{"theme": "light"}
	partial := map[string]any{"application": app}

	_ = MergeDefaults(defaults, partial)

	if defaults.Application.Theme != "auto" {
		t.Errorf("defaults modified: theme = %q", defaults.Application.Theme)
	}
	if len(app) != 1 || app["theme"] != "light" {
		t.Errorf("partial modified: %v", app)
	}
}

func TestMergeDefaults_IgnoresUnknownAndWrongTypes(t *testing.T) {
	defaults := DefaultSettings(testNow)
	partial := map[string]any{
		"docker": map[string]any{
			"host":              "tcp://10.0.0.1:2375",
			"connectionTimeout": "thirty",
			"retryAttempts":     5,
			"unknownKey":        true,
		},
		"resources":   "not an object",
		"mystery":     map[string]any{"x": 1},
		"version":     "2.0.0",
		"security":    map[string]any{"dataRetentionDays": 12.5},
		"application": nil,
	}

	got := MergeDefaults(defaults, partial)

	if got.Docker.Host != "tcp://10.0.0.1:2375" {
		t.Errorf("Docker.Host = %q", got.Docker.Host)
	}
	if got.Docker.ConnectionTimeout != 30 {
		t.Errorf("ConnectionTimeout = %d, want default 30", got.Docker.ConnectionTimeout)
	}
	if got.Docker.RetryAttempts != 5 {
		t.Errorf("RetryAttempts = %d, want 5", got.Docker.RetryAttempts)
	}
	if !reflect.DeepEqual(got.Resources, defaults.Resources) {
		t.Errorf("Resources = %+v, want defaults", got.Resources)
	}
	if got.Security.DataRetentionDays != 365 {
		t.Errorf("DataRetentionDays = %d, want default 365", got.Security.DataRetentionDays)
	}
	if !reflect.DeepEqual(got.Application, defaults.Application) {
		t.Errorf("Application = %+v, want defaults", got.Application)
	}
	if got.Version != "2.0.0" {
		t.Errorf("Version = %q, want 2.0.0", got.Version)
	}
}

func TestMergeDefaults_LastModified(t *testing.T) {
	defaults := DefaultSettings(testNow)

	got := MergeDefaults(defaults, map[string]any{"lastModified": float64(42)})
	if got.LastModified != 42 {
		t.Errorf("LastModified = %d, want 42", got.LastModified)
	}

	got = MergeDefaults(defaults, map[string]any{"lastModified": 0})
	if got.LastModified != defaults.LastModified {
		t.Errorf("LastModified = %d, want default", got.LastModified)
	}
}

func TestMergeDefaultsStrict(t *testing.T) {
	defaults := DefaultSettings(testNow)
	tests := []struct {
		name    string
		partial map[string]any
		wantErr string
	}{
		{"valid", map[string]any{"application": map[string]any{"theme": "dark"}}, ""},
		{"unknown keys ignored", map[string]any{"docker": map[string]any{"nope": 1}}, ""},
		{"category not object", map[string]any{"docker": []any{1}}, "docker: expected object, got array"},
		{"wrong field type", map[string]any{"application": map[string]any{"compactView": "yes"}}, "application.compactView: expected boolean, got string"},
		{"fraction for int", map[string]any{"resources": map[string]any{"imageCleanupDays": 1.5}}, "resources.imageCleanupDays: expected integer, got number"},
		{"version type", map[string]any{"version": 2}, "version: expected string, got number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeDefaultsStrict(defaults, tt.partial)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
