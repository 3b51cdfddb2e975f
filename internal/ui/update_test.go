package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/config"
	"github.com/kostyay/docsee/internal/store"
)

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m = updated.(Model)

	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, want 100x50", m.width, m.height)
	}
	if m.viewport.Height != 50-chromeHeight {
		t.Errorf("viewport height = %d, want %d", m.viewport.Height, 50-chromeHeight)
	}
	if cmd != nil {
		t.Error("cmd should be nil")
	}
}

func TestUpdate_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m := createTestModel(t, newTestBackend())
		m, cmd := press(m, k)
		if !m.quitting {
			t.Errorf("%s: quitting should be true", k)
		}
		if cmd == nil {
			t.Errorf("%s: cmd should be tea.Quit", k)
		}
	}
}

func TestUpdate_TabSwitching(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	m, _ = press(m, "tab")
	if m.tab != TabImages {
		t.Errorf("after tab: %v, want Images", m.tab)
	}
	m, _ = press(m, "shift+tab", "shift+tab")
	if m.tab != TabSystem {
		t.Errorf("after shift+tab twice: %v, want System (wraps)", m.tab)
	}
	m, _ = press(m, "3")
	if m.tab != TabNetworks {
		t.Errorf("after 3: %v, want Networks", m.tab)
	}
}

func TestUpdate_CursorBounds(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	m, _ = press(m, "up")
	if m.cursor() != 0 {
		t.Errorf("cursor = %d, want 0 at top", m.cursor())
	}
	m, _ = press(m, "j", "j", "j", "j")
	if m.cursor() != 2 {
		t.Errorf("cursor = %d, want 2 at bottom", m.cursor())
	}
	m, _ = press(m, "k")
	if m.cursor() != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor())
	}
}

func TestUpdate_FilterAndSortCycle(t *testing.T) {
	m := createTestModel(t, newTestBackend())
	m, _ = press(m, "down")

	m, _ = press(m, "f")
	if got := m.app.Containers.Filter(); got != store.ContainerFilterRunning {
		t.Errorf("filter = %q, want running", got)
	}
	if m.cursor() != 0 {
		t.Errorf("filter change should reset cursor, got %d", m.cursor())
	}
	m, _ = press(m, "f", "f")
	if got := m.app.Containers.Filter(); got != store.ContainerFilterAll {
		t.Errorf("filter = %q, want all after full cycle", got)
	}

	m, _ = press(m, "s")
	if got := m.app.Containers.SortBy(); got != store.ContainerSortStatus {
		t.Errorf("sort = %q, want status", got)
	}
}

func TestUpdate_SearchApplyAndRevert(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	m, _ = press(m, "/", "w", "e", "b", "enter")
	if m.searchMode {
		t.Error("enter should leave search mode")
	}
	if got := m.app.Containers.Search(); got != "web" {
		t.Errorf("search = %q, want web", got)
	}
	if n := m.rowCount(); n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}

	m, _ = press(m, "/", "x", "y")
	if got := m.app.Containers.Search(); got != "webxy" {
		t.Errorf("live search = %q, want webxy", got)
	}
	m, _ = press(m, "backspace")
	if got := m.app.Containers.Search(); got != "webx" {
		t.Errorf("after backspace = %q, want webx", got)
	}
	m, _ = press(m, "esc")
	if got := m.app.Containers.Search(); got != "web" {
		t.Errorf("esc should restore %q, got %q", "web", got)
	}
}

func TestUpdate_SearchSwallowsKeys(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	m, cmd := press(m, "/", "q")
	if m.quitting || cmd != nil {
		t.Error("q in search mode should be typed, not quit")
	}
	if m.searchQuery != "q" {
		t.Errorf("searchQuery = %q, want q", m.searchQuery)
	}
}

func TestUpdate_RemoveConfirmFlow(t *testing.T) {
	b := newTestBackend()
	m := createTestModel(t, b)

	m, cmd := press(m, "d")
	if m.confirm == nil {
		t.Fatal("d should ask for confirmation")
	}
	if cmd != nil {
		t.Error("nothing should run before confirming")
	}
	if m.confirm.label != "cache-1" {
		t.Errorf("confirm label = %q, want cache-1", m.confirm.label)
	}

	m, _ = press(m, "n")
	if m.confirm != nil {
		t.Error("n should cancel")
	}
	if b.count(bridge.OpRemoveContainer) != 0 {
		t.Error("cancel must not call remove")
	}

	m, _ = press(m, "d")
	m, cmd = press(m, "y")
	m = run(t, m, cmd)
	if b.count(bridge.OpRemoveContainer) != 1 {
		t.Errorf("remove calls = %d, want 1", b.count(bridge.OpRemoveContainer))
	}
	toasts := m.app.Toasts.List()
	if len(toasts) != 1 || toasts[0].Kind != store.ToastSuccess {
		t.Fatalf("toasts = %+v, want one success", toasts)
	}
	if toasts[0].Title != "Removed cache-1" {
		t.Errorf("toast title = %q", toasts[0].Title)
	}
}

func TestUpdate_RemoveWithoutConfirmation(t *testing.T) {
	b := newTestBackend()
	m := createTestModel(t, b)
	m.app.Settings.Update(func(s *config.Settings) {
		s.Security.EnableOperationConfirmation = false
	})

	m, _ = press(m, "4")
	m, cmd := press(m, "d")
	if m.confirm != nil {
		t.Error("confirmation is disabled")
	}
	run(t, m, cmd)
	if b.count(bridge.OpRemoveVolume) != 1 {
		t.Errorf("remove volume calls = %d, want 1", b.count(bridge.OpRemoveVolume))
	}
}

func TestUpdate_ContainerActionFailureToast(t *testing.T) {
	b := newTestBackend().fail(bridge.OpStartContainer, "port is already allocated")
	m := createTestModel(t, b)

	m, cmd := press(m, "S")
	m = run(t, m, cmd)

	toasts := m.app.Toasts.List()
	if len(toasts) != 1 {
		t.Fatalf("toasts = %d, want 1", len(toasts))
	}
	if toasts[0].Kind != store.ToastError || toasts[0].Title != "Started cache-1 failed" {
		t.Errorf("toast = %+v", toasts[0])
	}
	if toasts[0].Message != "port is already allocated" {
		t.Errorf("message = %q", toasts[0].Message)
	}
}

func TestUpdate_PauseTogglesByState(t *testing.T) {
	b := newTestBackend()
	m := createTestModel(t, b)

	// cache-1 is paused
	_, cmd := press(m, "p")
	cmd()
	if b.count(bridge.OpUnpauseContainer) != 1 || b.count(bridge.OpPauseContainer) != 0 {
		t.Error("p on a paused container should unpause")
	}

	m, _ = press(m, "down", "down")
	_, cmd = press(m, "p")
	cmd()
	if b.count(bridge.OpPauseContainer) != 1 {
		t.Error("p on a running container should pause")
	}
}

func TestUpdate_SuccessToastFollowsNotificationSetting(t *testing.T) {
	m := createTestModel(t, newTestBackend())
	m.app.Settings.Update(func(s *config.Settings) {
		s.Application.EnableNotifications = false
	})

	updated, _ := m.Update(ActionMsg{Title: "Started web-1", OK: true})
	m = updated.(Model)
	if n := len(m.app.Toasts.List()); n != 0 {
		t.Errorf("toasts = %d, want 0 with notifications off", n)
	}

	updated, _ = m.Update(ActionMsg{Title: "Started web-1", Err: "boom"})
	m = updated.(Model)
	if n := len(m.app.Toasts.List()); n != 1 {
		t.Errorf("errors always toast, got %d", n)
	}
}

func TestUpdate_DismissToasts(t *testing.T) {
	m := createTestModel(t, newTestBackend())
	m.app.Toasts.Info("hello", "")

	m, _ = press(m, "c")
	if n := len(m.app.Toasts.List()); n != 0 {
		t.Errorf("toasts = %d, want 0", n)
	}
}

func TestUpdate_TickExpiresToasts(t *testing.T) {
	m := createTestModel(t, newTestBackend())
	m.app.Toasts.Info("hello", "")

	updated, cmd := m.Update(TickMsg(testNow.Add(time.Hour)))
	m = updated.(Model)
	if n := len(m.app.Toasts.List()); n != 0 {
		t.Errorf("toasts = %d, want 0 after expiry", n)
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestUpdate_RefreshIntervalBounds(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	for range 10 {
		m, _ = press(m, "+")
	}
	if m.refreshInterval != MinRefreshInterval {
		t.Errorf("interval = %v, want %v", m.refreshInterval, MinRefreshInterval)
	}
	for range 30 {
		m, _ = press(m, "-")
	}
	if m.refreshInterval != MaxRefreshInterval {
		t.Errorf("interval = %v, want %v", m.refreshInterval, MaxRefreshInterval)
	}
}

func TestUpdate_ThemeToggle(t *testing.T) {
	m := createTestModel(t, newTestBackend())
	var applied []string
	m.applyTheme = func(mode string) { applied = append(applied, mode) }

	m, _ = press(m, "t")
	m, _ = press(m, "t")

	if len(applied) != 2 || applied[0] != store.ThemeLight || applied[1] != store.ThemeDark {
		t.Errorf("applied = %v, want [light dark]", applied)
	}
	if m.app.Theme.Mode() != store.ThemeDark {
		t.Errorf("mode = %q, want dark", m.app.Theme.Mode())
	}
}

func TestUpdate_DetailsPane(t *testing.T) {
	b := newTestBackend().reply(bridge.OpContainerDetails, map[string]any{
		"id":    "cccc33333333dddd",
		"name":  "/cache-1",
		"state": map[string]any{"status": "paused", "paused": true},
	})
	m := createTestModel(t, b)

	m, cmd := press(m, "enter")
	if m.pane != PaneDetails || m.paneID != "cccc33333333dddd" {
		t.Fatalf("pane = %v id = %q", m.pane, m.paneID)
	}
	m = run(t, m, cmd)
	if d := m.app.Containers.Details(); d == nil || d.ID != "cccc33333333dddd" {
		t.Fatalf("details not loaded: %+v", d)
	}

	m, _ = press(m, "esc")
	if m.pane != PaneNone {
		t.Errorf("esc should close pane, got %v", m.pane)
	}
}

func TestUpdate_LogsPaneKeys(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	m, cmd := press(m, "l")
	if m.pane != PaneLogs {
		t.Fatalf("pane = %v, want logs", m.pane)
	}
	if cmd == nil {
		t.Fatal("l should start following")
	}

	m, _ = press(m, "f")
	if got := m.app.Logs.StreamFilter(); got != store.StreamStdout {
		t.Errorf("stream = %q, want stdout", got)
	}
	auto := m.app.Logs.AutoScroll()
	m, _ = press(m, "a")
	if m.app.Logs.AutoScroll() == auto {
		t.Error("a should toggle auto-scroll")
	}

	m, _ = press(m, "/", "e", "r", "r", "enter")
	if got := m.app.Logs.Search(); got != "err" {
		t.Errorf("log search = %q, want err", got)
	}
	if got := m.app.Containers.Search(); got != "" {
		t.Errorf("container search should be untouched, got %q", got)
	}

	m, _ = press(m, "esc")
	if m.pane != PaneNone {
		t.Errorf("pane = %v, want none", m.pane)
	}
	if m.app.Logs.IsFollowing() {
		t.Error("closing the pane should stop following")
	}
}

func TestUpdate_HelpToggle(t *testing.T) {
	m := createTestModel(t, newTestBackend())

	m, _ = press(m, "?")
	if m.pane != PaneHelp {
		t.Errorf("pane = %v, want help", m.pane)
	}
	m, _ = press(m, "?")
	if m.pane != PaneNone {
		t.Errorf("pane = %v, want none", m.pane)
	}
}

func TestUpdate_ReloadSystem(t *testing.T) {
	b := newTestBackend().
		reply(bridge.OpConnectionStatus, map[string]any{"connected": true, "version": "27.0.1"}).
		reply(bridge.OpSystemInfo, map[string]any{"version": map[string]any{"version": "27.0.1"}, "info": map[string]any{"ncpu": 4}}).
		reply(bridge.OpSystemStats, map[string]any{"containers_total": 3})
	m := createTestModel(t, b)

	m, _ = press(m, "5")
	_, cmd := press(m, "R")
	run(t, m, cmd)

	if b.count(bridge.OpSystemInfo) != 1 || b.count(bridge.OpSystemStats) != 1 {
		t.Errorf("info calls = %d stats calls = %d, want 1 each",
			b.count(bridge.OpSystemInfo), b.count(bridge.OpSystemStats))
	}
}
