package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/config"
	"github.com/kostyay/docsee/internal/model"
	"github.com/kostyay/docsee/internal/poll"
)

func TestThemeStore(t *testing.T) {
	kv := config.NewMemoryKV()
	dark := false
	s := NewThemeStore(kv, func() bool { return dark })

	if got := s.Load(); got != ThemeSystem {
		t.Fatalf("Load = %q, want system", got)
	}
	if s.Resolved() != ThemeLight {
		t.Errorf("Resolved = %q", s.Resolved())
	}

	if got := s.Toggle(); got != ThemeDark {
		t.Errorf("Toggle from light system = %q", got)
	}
	if v, ok, _ := kv.Get(config.ThemeKey); !ok || v != ThemeDark {
		t.Errorf("stored = %q, %v", v, ok)
	}

	s.Set(ThemeSystem)
	if _, ok, _ := kv.Get(config.ThemeKey); ok {
		t.Error("system mode left a stored value")
	}
	dark = true
	if s.Resolved() != ThemeDark {
		t.Errorf("Resolved = %q", s.Resolved())
	}

	s.Set("neon")
	if s.Mode() != ThemeSystem {
		t.Errorf("unknown mode accepted: %q", s.Mode())
	}

	kv.Set(config.ThemeKey, ThemeLight)
	if got := NewThemeStore(kv, nil).Load(); got != ThemeLight {
		t.Errorf("reload = %q", got)
	}
	kv.Set(config.ThemeKey, "garbage")
	if got := NewThemeStore(kv, nil).Load(); got != ThemeSystem {
		t.Errorf("garbage = %q", got)
	}
}

func TestToastStore(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := NewToastStore(Options{Now: clock})

	info := s.Info("first", "")
	errID := s.Error("second", "boom")
	warn := s.Warning("third", "")
	two := 2 * time.Second
	custom := s.Add(ToastSuccess, "fourth", "", ToastOptions{Duration: &two, NotDismissible: true})

	list := s.List()
	if len(list) != 4 || list[0].ID != custom || list[3].ID != info {
		t.Fatalf("order = %+v", list)
	}
	if list[0].Dismissible || !list[1].Dismissible {
		t.Error("dismissible flags wrong")
	}
	if list[1].Duration != WarningToastDuration || list[2].Duration != 0 || list[3].Duration != DefaultToastDuration {
		t.Errorf("durations = %v %v %v", list[1].Duration, list[2].Duration, list[3].Duration)
	}

	if n := s.Expire(now.Add(3 * time.Second)); n != 1 {
		t.Errorf("expired %d at +3s, want 1", n)
	}
	if n := s.Expire(now.Add(6 * time.Second)); n != 1 {
		t.Errorf("expired %d at +6s, want 1", n)
	}
	if n := s.Expire(now.Add(time.Hour)); n != 1 {
		t.Errorf("expired %d at +1h, want 1", n)
	}
	if got := s.List(); len(got) != 1 || got[0].ID != errID {
		t.Errorf("left = %+v, want the sticky error", got)
	}

	if !s.Remove(errID) || s.Remove(errID) {
		t.Error("Remove should succeed once")
	}
	s.Info("x", "")
	s.Clear()
	if len(s.List()) != 0 {
		t.Error("Clear kept toasts")
	}
	_ = warn
}

func TestSettingsStore_LoadMergesDefaults(t *testing.T) {
	kv := config.NewMemoryKV()
	kv.Set(config.SettingsKey, `{"application":{"theme":"dark"}}`)
	s := NewSettingsStore(kv, nil, Options{})

	got := s.Load()
	want := config.DefaultSettings(time.Now())
	want.Application.Theme = "dark"
	want.LastModified = got.LastModified
	if got != want {
		t.Errorf("Load = %+v\nwant %+v", got, want)
	}
	if s.HasUnsavedChanges() {
		t.Error("fresh load has unsaved changes")
	}
}

func TestSettingsStore_LoadCorrupt(t *testing.T) {
	kv := config.NewMemoryKV()
	kv.Set(config.SettingsKey, `not json`)
	s := NewSettingsStore(kv, nil, Options{})
	if got := s.Load(); got.Application.Theme != "auto" || got.Docker.Host == "" {
		t.Errorf("corrupt blob gave %+v", got)
	}
}

type failingKV struct{ KV }

func (failingKV) Set(string, string) error { return errors.New("disk full") }

func TestSettingsStore_Save(t *testing.T) {
	kv := config.NewMemoryKV()
	toasts := NewToastStore(Options{})
	s := NewSettingsStore(kv, toasts, Options{})
	s.Load()

	s.Update(func(v *config.Settings) { v.Application.CompactView = true })
	if !s.HasUnsavedChanges() {
		t.Fatal("update not tracked")
	}
	now := time.UnixMilli(1700000000000)
	if !s.Save(now) {
		t.Fatalf("Save failed: %q", s.Error())
	}
	if s.HasUnsavedChanges() || s.Settings().LastModified != now.UnixMilli() {
		t.Errorf("after save: unsaved=%v lastModified=%d", s.HasUnsavedChanges(), s.Settings().LastModified)
	}
	raw, _, _ := kv.Get(config.SettingsKey)
	var stored config.Settings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || !stored.Application.CompactView {
		t.Errorf("stored = %s, %v", raw, err)
	}
	if got := toasts.List(); len(got) != 1 || got[0].Title != "Settings saved" {
		t.Errorf("toasts = %+v", got)
	}

	bad := NewSettingsStore(failingKV{kv}, toasts, Options{})
	if bad.Save(now) {
		t.Error("Save succeeded on failing storage")
	}
	if got := toasts.List(); got[0].Title != "Failed to save settings" || got[0].Kind != ToastError {
		t.Errorf("toast = %+v", got[0])
	}
}

func TestSettingsStore_ExportRedacts(t *testing.T) {
	s := NewSettingsStore(config.NewMemoryKV(), nil, Options{})
	s.Update(func(v *config.Settings) { v.Docker.Host = "tcp://secret-host:2376" })

	out, err := s.Export()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "secret-host") {
		t.Error("host leaked into export")
	}
	if !strings.Contains(out, "\n  \"docker\"") {
		t.Errorf("export not indented:\n%s", out)
	}

	s.Update(func(v *config.Settings) { v.Security.ExportIncludeCredentials = true })
	out, _ = s.Export()
	if !strings.Contains(out, "secret-host") {
		t.Error("host missing with exportIncludeCredentials")
	}
}

func TestSettingsStore_Import(t *testing.T) {
	toasts := NewToastStore(Options{})
	s := NewSettingsStore(config.NewMemoryKV(), toasts, Options{})
	s.Update(func(v *config.Settings) { v.Application.Language = "de" })
	before := s.Settings()

	for _, bad := range []string{`[1,2]`, `"x"`, `{"application":{"autoRefreshInterval":"fast"}}`, `{"docker":5}`, `{`} {
		if err := s.Import([]byte(bad)); err == nil {
			t.Errorf("Import(%s) accepted", bad)
		}
		if s.Settings() != before {
			t.Errorf("Import(%s) changed settings", bad)
		}
	}
	if toasts.List()[0].Kind != ToastError {
		t.Error("no error toast on rejection")
	}

	if err := s.Import([]byte(`{"application":{"theme":"dark"}}`)); err != nil {
		t.Fatal(err)
	}
	got := s.Settings()
	if got.Application.Theme != "dark" || got.Application.Language != "en" || got.Docker.ConnectionTimeout != 30 {
		t.Errorf("imported = %+v", got.Application)
	}
	if toasts.List()[0].Kind != ToastSuccess {
		t.Error("no success toast")
	}
}

func TestSettingsStore_ExportImportRoundTrip(t *testing.T) {
	s := NewSettingsStore(config.NewMemoryKV(), nil, Options{})
	s.Update(func(v *config.Settings) {
		v.Docker.Host = "tcp://10.0.0.5:2375"
		v.Application.CompactView = true
	})

	out, err := s.Export()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Import([]byte(out)); err != nil {
		t.Fatalf("Import of own export: %v", err)
	}
	got := s.Settings()
	if got.Docker.Host != "tcp://10.0.0.5:2375" {
		t.Errorf("host after round trip = %q, want current host kept", got.Docker.Host)
	}
	if !got.Application.CompactView {
		t.Error("compactView lost in round trip")
	}
	if problems := s.Validate(); len(problems) > 0 {
		t.Errorf("problems after round trip: %v", problems)
	}

	fresh := NewSettingsStore(config.NewMemoryKV(), nil, Options{})
	if err := fresh.Import([]byte(out)); err != nil {
		t.Fatal(err)
	}
	if h := fresh.Settings().Docker.Host; h != config.DefaultDockerHost {
		t.Errorf("fresh store host = %q, want default", h)
	}
}

func TestSettingsStore_LoadClampsIntervals(t *testing.T) {
	kv := config.NewMemoryKV()
	kv.Set(config.SettingsKey, `{"application":{"containerRefreshInterval":0,"imageRefreshInterval":-5,"volumeRefreshInterval":20000}}`)
	s := NewSettingsStore(kv, nil, Options{})

	a := s.Load().Application
	if a.ContainerRefreshInterval != 5000 || a.ImageRefreshInterval != 10000 {
		t.Errorf("invalid intervals kept: container=%d image=%d", a.ContainerRefreshInterval, a.ImageRefreshInterval)
	}
	if a.VolumeRefreshInterval != 20000 {
		t.Errorf("valid interval replaced: %d", a.VolumeRefreshInterval)
	}
}

func TestSettingsStore_ResetCategory(t *testing.T) {
	s := NewSettingsStore(config.NewMemoryKV(), nil, Options{})
	s.Update(func(v *config.Settings) {
		v.Docker.RetryAttempts = 9
		v.Security.EnableTelemetry = false
	})
	if err := s.ResetCategory(config.CategoryDocker); err != nil {
		t.Fatal(err)
	}
	got := s.Settings()
	if got.Docker.RetryAttempts != 3 || got.Security.EnableTelemetry {
		t.Errorf("after reset docker: %+v %+v", got.Docker, got.Security)
	}
	if err := s.ResetCategory("nope"); err == nil {
		t.Error("unknown category accepted")
	}
	s.ResetToDefaults()
	if !s.Settings().Security.EnableTelemetry {
		t.Error("ResetToDefaults kept changes")
	}

	s.Update(func(v *config.Settings) { v.Application.AutoRefreshInterval = 10 })
	if msgs := s.Validate(); len(msgs) == 0 {
		t.Error("invalid interval passed validation")
	}
}

func connectedBackend() *fakeBackend {
	v := "24.0.7"
	return newFakeBackend().
		reply(bridge.OpConnectDocker, true).
		reply(bridge.OpDisconnectDocker, nil).
		reply(bridge.OpConnectionStatus, model.ConnectionStatus{Connected: true, Version: &v}).
		reply(bridge.OpSystemInfo, model.SystemInfo{Version: model.DockerVersion{Version: v}}).
		reply(bridge.OpSystemStats, model.SystemStats{ContainersTotal: 2}).
		reply(bridge.OpTestConnection, true).
		reply(bridge.OpListContainers, twoContainers()).
		reply(bridge.OpListImages, []model.Image{}).
		reply(bridge.OpListNetworks, []model.Network{}).
		reply(bridge.OpListVolumes, []model.Volume{})
}

func TestSystemStore(t *testing.T) {
	fb := connectedBackend()
	s := NewSystemStore(fb, Options{})
	ctx := context.Background()

	s.Initialize(ctx)
	if !s.IsConnected() || s.Info() == nil || s.Info().Version.Version != "24.0.7" {
		t.Fatalf("after Initialize: connected=%v info=%+v", s.IsConnected(), s.Info())
	}
	if !s.TestConnection(ctx) {
		t.Error("TestConnection false")
	}
	if st := s.LoadStats(ctx); st == nil || st.ContainersTotal != 2 {
		t.Errorf("LoadStats = %+v", st)
	}
	if !s.Disconnect(ctx) || s.IsConnected() || s.Info() != nil {
		t.Error("Disconnect did not reset state")
	}

	msg := "Cannot connect to the Docker daemon"
	fb.reply(bridge.OpConnectionStatus, model.ConnectionStatus{Connected: false, Error: &msg})
	s.RefreshStatus(ctx)
	if s.IsConnected() || s.Error() != msg {
		t.Errorf("disconnected status: connected=%v error=%q", s.IsConnected(), s.Error())
	}

	fb.fail(bridge.OpConnectDocker, "permission denied")
	if s.Connect(ctx) || s.Error() != "permission denied" || s.IsConnecting() {
		t.Errorf("Connect failure: error=%q connecting=%v", s.Error(), s.IsConnecting())
	}
}

func TestSystemStore_AutoRefreshOnlyWhileConnected(t *testing.T) {
	clock := &poll.ManualClock{}
	fb := connectedBackend()
	s := NewSystemStore(fb, Options{NewTicker: clock.NewTicker})
	ctx := context.Background()
	s.StartAutoRefresh(ctx, time.Second)
	defer s.StopAutoRefresh()

	clock.Tick()
	time.Sleep(20 * time.Millisecond)
	if fb.count(bridge.OpConnectionStatus) != 0 {
		t.Error("refreshed while disconnected")
	}

	s.Connect(ctx)
	clock.Tick()
	waitFor(t, func() bool { return fb.count(bridge.OpSystemStats) == 1 })
	if fb.count(bridge.OpConnectionStatus) != 1 {
		t.Errorf("status refreshes = %d", fb.count(bridge.OpConnectionStatus))
	}
}

func TestApp_InitAndDispose(t *testing.T) {
	clock := &poll.ManualClock{}
	fb := connectedBackend()
	kv := config.NewMemoryKV()
	kv.Set(config.SettingsKey, `{"application":{"defaultContainerView":"running","containerRefreshInterval":2000},"resources":{"maxContainerLogs":50}}`)
	app := NewApp(fb, kv, AppOptions{Options: Options{NewTicker: clock.NewTicker}})

	app.Init(context.Background(), true)
	if !app.System.IsConnected() {
		t.Fatal("not connected after Init")
	}
	if got := app.Containers.Sorted(); len(got) != 1 || got[0].Name() != "web-1" {
		t.Errorf("running view = %+v", got)
	}
	for _, op := range []string{bridge.OpListContainers, bridge.OpListImages, bridge.OpListNetworks, bridge.OpListVolumes} {
		if fb.count(op) != 1 {
			t.Errorf("%s called %d times", op, fb.count(op))
		}
	}
	if n := len(clock.Active()); n != 5 {
		t.Errorf("active pollers = %d, want 5", n)
	}
	if iv := clock.Tickers()[0].Interval; iv != 2*time.Second {
		t.Errorf("container interval = %v", iv)
	}

	app.Dispose()
	app.Dispose()
	if n := len(clock.Active()); n != 0 {
		t.Errorf("active pollers after Dispose = %d", n)
	}
	if app.Containers.AutoRefreshing() || app.System.AutoRefreshing() {
		t.Error("pollers still running")
	}
}
