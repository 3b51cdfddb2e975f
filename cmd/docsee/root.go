package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kostyay/docsee/internal/backend"
	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/config"
	"github.com/kostyay/docsee/internal/docker"
	"github.com/kostyay/docsee/internal/output"
	"github.com/kostyay/docsee/internal/store"
	"github.com/kostyay/docsee/internal/ui"
)

var (
	jsonOutput bool
	localMode  bool
	backendURL string
	configPath string
	dataDir    string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripting/agent consumption)")
	pf.BoolVar(&localMode, "local", false, "Run the backend in-process instead of dialing it")
	pf.StringVar(&backendURL, "backend", "", "Backend websocket URL (default from config)")
	pf.StringVar(&configPath, "config", "", "Config file (default $UserConfigDir/docsee/config.yaml)")
	pf.StringVar(&dataDir, "data-dir", "", "Directory holding the settings database and log file")
}

var rootCmd = &cobra.Command{
	Use:   "docsee",
	Short: "Docker manager - browse and control containers, images, networks and volumes",
	Long: `docsee is a TUI for managing Docker resources through the docsee backend.

Start the backend once, then run the TUI:
  docsee serve              # backend on 127.0.0.1:7411
  docsee                    # TUI
  docsee --local            # TUI with the backend in-process
  docsee ps --json          # scripting output`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// JSON mode: explicit flag or non-TTY stdout
		if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
			return withCommands(cmd, func(ctx context.Context, c *bridge.Commands) error {
				items, err := c.ListContainers(ctx, true, false)
				if err != nil {
					return err
				}
				return output.RenderList(cmd.OutOrStdout(), "containers", items, time.Now())
			})
		}
		return runTUI(cmd.Context())
	},
}

// loadConfig reads the config file, then applies environment and flags.
func loadConfig() (*config.FileConfig, string, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}
	cfg, err := config.LoadFileConfig(path)
	if err != nil {
		return nil, "", fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.ApplyEnv(nil)
	if backendURL != "" {
		cfg.Backend = backendURL
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, path, nil
}

func setupLogging(w io.Writer, level string) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: config.ParseLogLevel(level)})
	slog.SetDefault(slog.New(h))
}

// dialBackend returns the caller every front-end command goes through and a
// function releasing it.
var dialBackend = func(ctx context.Context, cfg *config.FileConfig) (bridge.Caller, func(), error) {
	if localMode {
		engine := docker.NewEngine("")
		srv := backend.NewServer()
		backend.Register(srv, engine)
		slog.Debug("backend running in-process")
		return &backend.LocalCaller{Server: srv}, func() { _ = engine.Disconnect() }, nil
	}
	c, err := bridge.Dial(ctx, cfg.Backend, &bridge.DialOptions{Token: cfg.Token})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to backend: %w (is `docsee serve` running?)", err)
	}
	return c, func() { _ = c.Close() }, nil
}

// withCommands runs fn against a connected backend, logging to stderr.
func withCommands(cmd *cobra.Command, fn func(ctx context.Context, c *bridge.Commands) error) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cmd.ErrOrStderr(), cfg.LogLevel)

	ctx := cmd.Context()
	caller, release, err := dialBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	c := bridge.NewCommands(caller)
	if ok, err := c.IsDockerConnected(ctx); err != nil || !ok {
		if _, err := c.ConnectDocker(ctx); err != nil {
			return errors.New(bridge.ErrorMessage(err))
		}
	}
	if err := fn(ctx, c); err != nil {
		return errors.New(bridge.ErrorMessage(err))
	}
	return nil
}

// openLogFile sends logs to docsee.log under dir while the TUI owns stdout.
func openLogFile(dir string, level string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}
	// #nosec G304 - dir comes from config or a flag
	f, err := os.OpenFile(filepath.Join(dir, "docsee.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	setupLogging(f, level)
	return f, nil
}

// themeApplier resolves a skin for the app theme mode. A skin named in the
// config file wins over the mode.
type themeApplier struct {
	skin atomic.Pointer[string]
	mode atomic.Pointer[string]
}

func (t *themeApplier) setSkin(name string) { t.skin.Store(&name) }

func (t *themeApplier) apply(mode string) {
	t.mode.Store(&mode)
	t.reapply()
}

func (t *themeApplier) reapply() {
	name := ""
	if m := t.mode.Load(); m != nil {
		name = *m
	}
	if s := t.skin.Load(); s != nil && *s != "" {
		name = *s
	}
	th, err := config.LoadTheme(name)
	if err != nil {
		slog.Warn("Failed to load skin", "name", name, "err", err)
	}
	config.SetTheme(th)
}

func runTUI(ctx context.Context) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	logFile, err := openLogFile(cfg.DataDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	caller, release, err := dialBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	kv, err := config.OpenKV(cfg.DataDir)
	if err != nil {
		return err
	}
	defer kv.Close()

	app := store.NewApp(caller, kv, store.AppOptions{PrefersDark: lipgloss.HasDarkBackground})
	app.Init(ctx, true)
	defer app.Dispose()

	themes := &themeApplier{}
	themes.setSkin(cfg.Theme)
	themes.apply(app.Theme.Resolved())

	err = config.WatchFile(ctx, path, func() {
		next, err := config.LoadFileConfig(path)
		if err != nil {
			slog.Warn("Failed to reload config", "path", path, "err", err)
			return
		}
		themes.setSkin(next.Theme)
		themes.reapply()
		slog.Info("config reloaded", "path", path)
	})
	if err != nil {
		slog.Debug("config watcher unavailable", "path", path, "err", err)
	}

	m := ui.NewModel(ctx, app, ui.Options{ApplyTheme: themes.apply})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
