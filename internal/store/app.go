package store

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/config"
)

// App owns every store of one session.
type App struct {
	Containers *ContainerStore
	Images     *ImageStore
	Networks   *NetworkStore
	Volumes    *VolumeStore
	System     *SystemStore
	Logs       *LogStore
	Stats      *StatsStore
	Theme      *ThemeStore
	Toasts     *ToastStore
	Settings   *SettingsStore

	mu       sync.Mutex
	cancel   context.CancelFunc
	disposed bool
}

// AppOptions configures NewApp.
type AppOptions struct {
	Options
	// PrefersDark resolves the system theme.
	PrefersDark func() bool
}

// NewApp wires the stores to one backend and one key-value store.
func NewApp(c bridge.Caller, kv KV, o AppOptions) *App {
	opts := o.Options.withDefaults()
	toasts := NewToastStore(opts)
	return &App{
		Containers: NewContainerStore(c, opts),
		Images:     NewImageStore(c, opts),
		Networks:   NewNetworkStore(c, opts),
		Volumes:    NewVolumeStore(c, opts),
		System:     NewSystemStore(c, opts),
		Logs:       NewLogStore(c, opts),
		Stats:      NewStatsStore(c, opts),
		Theme:      NewThemeStore(kv, o.PrefersDark),
		Toasts:     toasts,
		Settings:   NewSettingsStore(kv, toasts, opts),
	}
}

// Init loads theme and settings, connects to the daemon and loads every
// list. With autoRefresh the refresh loops start at the configured intervals.
func (a *App) Init(ctx context.Context, autoRefresh bool) {
	a.mu.Lock()
	ctx, a.cancel = context.WithCancel(ctx)
	a.disposed = false
	a.mu.Unlock()

	a.Theme.Load()
	s := a.Settings.Load()
	a.Logs.SetMaxLines(s.Resources.MaxContainerLogs)
	if s.Application.DefaultContainerView == ContainerFilterRunning {
		a.Containers.SetFilter(ContainerFilterRunning)
	}

	a.System.Initialize(ctx)
	if !a.System.IsConnected() {
		if !a.System.Connect(ctx) {
			slog.Warn("Docker daemon not reachable", "err", a.System.Error())
		}
	}
	a.RefreshAll(ctx)

	if !autoRefresh {
		return
	}
	app := s.Application
	a.Containers.StartAutoRefresh(ctx, config.Interval(app.ContainerRefreshInterval))
	a.Images.StartAutoRefresh(ctx, config.Interval(app.ImageRefreshInterval))
	a.Networks.StartAutoRefresh(ctx, config.Interval(app.NetworkRefreshInterval))
	a.Volumes.StartAutoRefresh(ctx, config.Interval(app.VolumeRefreshInterval))
	a.System.StartAutoRefresh(ctx, config.Interval(app.AutoRefreshInterval))
}

// RefreshAll loads the four resource lists concurrently. Failures land in
// each store's Error.
func (a *App) RefreshAll(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { a.Containers.Reload(ctx); return nil })
	g.Go(func() error { a.Images.Load(ctx); return nil })
	g.Go(func() error { a.Networks.Load(ctx); return nil })
	g.Go(func() error { a.Volumes.Load(ctx); return nil })
	_ = g.Wait()
}

// Dispose stops every poller and follow session. Safe to call repeatedly.
func (a *App) Dispose() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.disposed = true
	cancel := a.cancel
	a.mu.Unlock()

	a.Containers.StopAutoRefresh()
	a.Images.StopAutoRefresh()
	a.Networks.StopAutoRefresh()
	a.Volumes.StopAutoRefresh()
	a.System.StopAutoRefresh()
	a.Logs.StopFollowing()
	a.Stats.StopMonitoring()
	if cancel != nil {
		cancel()
	}
}
