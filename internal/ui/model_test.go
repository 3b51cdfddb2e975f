package ui

import (
	"context"
	"testing"

	"github.com/kostyay/docsee/internal/config"
	"github.com/kostyay/docsee/internal/store"
)

func TestNewModel_Defaults(t *testing.T) {
	app := store.NewApp(newMockBackend(), config.NewMemoryKV(), store.AppOptions{})
	m := NewModel(context.Background(), app, Options{})

	if m.refreshInterval != DefaultRefreshInterval {
		t.Errorf("refreshInterval = %v, want %v", m.refreshInterval, DefaultRefreshInterval)
	}
	if m.CurrentTab() != TabContainers {
		t.Errorf("tab = %v, want Containers", m.CurrentTab())
	}
	if m.CurrentPane() != PaneNone {
		t.Errorf("pane = %v, want none", m.CurrentPane())
	}
	if m.now == nil || m.applyTheme == nil {
		t.Error("now and applyTheme should default")
	}
}

func TestTab_String(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabContainers, "Containers"},
		{TabImages, "Images"},
		{TabNetworks, "Networks"},
		{TabVolumes, "Volumes"},
		{TabSystem, "System"},
		{Tab(42), "Tab(42)"},
	}
	for _, tt := range tests {
		if got := tt.tab.String(); got != tt.want {
			t.Errorf("Tab(%d).String() = %q, want %q", int(tt.tab), got, tt.want)
		}
	}
}

func TestNextOf(t *testing.T) {
	list := []string{"a", "b", "c"}
	tests := []struct {
		cur, want string
	}{
		{"a", "b"},
		{"c", "a"},
		{"zzz", "a"},
	}
	for _, tt := range tests {
		if got := nextOf(list, tt.cur); got != tt.want {
			t.Errorf("nextOf(%q) = %q, want %q", tt.cur, got, tt.want)
		}
	}
	if got := nextOf(nil, "x"); got != "x" {
		t.Errorf("nextOf(nil) = %q, want x", got)
	}
}

func TestSelectedID_PerTab(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	tests := []struct {
		tab       Tab
		wantID    string
		wantLabel string
	}{
		{TabContainers, "cccc33333333dddd", "cache-1"},
		{TabImages, "sha256:feedfacecafe0000", "nginx:latest"},
		{TabNetworks, "net000000001111", "bridge"},
		{TabVolumes, "pgdata", "pgdata"},
	}
	for _, tt := range tests {
		m.tab = tt.tab
		id, label, ok := m.selectedID()
		if !ok {
			t.Errorf("%v: nothing selected", tt.tab)
			continue
		}
		if id != tt.wantID || label != tt.wantLabel {
			t.Errorf("%v: selectedID = (%q, %q), want (%q, %q)", tt.tab, id, label, tt.wantID, tt.wantLabel)
		}
	}

	m.tab = TabSystem
	if _, _, ok := m.selectedID(); ok {
		t.Error("System tab should have no selection")
	}
}

func TestClampCursor(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	m.setCursor(10)
	m.clampCursor()
	if m.cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor())
	}

	m.app.Containers.SetSearch("no-such-container")
	m.clampCursor()
	if m.cursor() != 0 {
		t.Errorf("cursor on empty list = %d, want 0", m.cursor())
	}
}

func TestCursor_PerTab(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	m, _ = press(m, "down", "down")
	m, _ = press(m, "2")
	if m.cursor() != 0 {
		t.Errorf("images cursor = %d, want 0", m.cursor())
	}
	m, _ = press(m, "1")
	if m.cursor() != 2 {
		t.Errorf("containers cursor = %d, want 2 after returning", m.cursor())
	}
}
