package ui

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/config"
	"github.com/kostyay/docsee/internal/model"
	"github.com/kostyay/docsee/internal/store"
)

// mockBackend answers operations with canned results through the same JSON
// round trip as the real transport.
type mockBackend struct {
	mu      sync.Mutex
	results map[string]any
	errs    map[string]string
	calls   map[string]int
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		results: make(map[string]any),
		errs:    make(map[string]string),
		calls:   make(map[string]int),
	}
}

func (b *mockBackend) reply(op string, v any) *mockBackend {
	b.mu.Lock()
	b.results[op] = v
	b.mu.Unlock()
	return b
}

func (b *mockBackend) fail(op, msg string) *mockBackend {
	b.mu.Lock()
	b.errs[op] = msg
	b.mu.Unlock()
	return b
}

func (b *mockBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *mockBackend) Call(_ context.Context, op string, _ any, out any) error {
	b.mu.Lock()
	b.calls[op]++
	res, ok := b.results[op]
	msg, failed := b.errs[op]
	b.mu.Unlock()

	if failed {
		return &bridge.RemoteError{Op: op, Msg: msg}
	}
	if !ok {
		return bridge.DecodeResponse(op, bridge.Response{OK: true}, nil)
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return bridge.DecodeResponse(op, bridge.Response{OK: true, Data: data}, out)
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testContainers() []model.Container {
	return []model.Container{
		{ID: "bbbb22222222cccc", Names: []string{"/web-1"}, Image: "nginx:latest", State: model.StateRunning, Status: "Up 2 hours", Created: testNow.Add(-2 * time.Hour).Unix()},
		{ID: "aaaa11111111bbbb", Names: []string{"/db-1"}, Image: "postgres:16", State: model.StateExited, Status: "Exited (0) 1 hour ago", Created: testNow.Add(-3 * time.Hour).Unix()},
		{ID: "cccc33333333dddd", Names: []string{"/cache-1"}, Image: "redis:7", State: model.StatePaused, Status: "Up 1 hour (Paused)", Created: testNow.Add(-time.Hour).Unix()},
	}
}

func newTestBackend() *mockBackend {
	return newMockBackend().
		reply(bridge.OpListContainers, testContainers()).
		reply(bridge.OpListImages, []model.Image{
			{ID: "sha256:feedfacecafe0000", RepoTags: []string{"nginx:latest"}, Size: 187_000_000, Created: testNow.Add(-48 * time.Hour).Unix()},
		}).
		reply(bridge.OpListNetworks, []model.Network{
			{ID: "net000000001111", Name: "bridge", Driver: "bridge", Scope: "local"},
		}).
		reply(bridge.OpListVolumes, []model.Volume{
			{Name: "pgdata", Driver: "local", Scope: "local"},
		})
}

// createTestModel returns a sized model whose stores hold the test fixtures.
func createTestModel(t *testing.T, b *mockBackend) Model {
	t.Helper()
	ctx := context.Background()
	app := store.NewApp(b, config.NewMemoryKV(), store.AppOptions{
		Options: store.Options{Now: func() time.Time { return testNow }},
	})
	t.Cleanup(app.Dispose)

	app.Containers.Load(ctx, true)
	app.Images.Load(ctx)
	app.Networks.Load(ctx)
	app.Volumes.Load(ctx)

	m := NewModel(ctx, app, Options{Now: func() time.Time { return testNow }})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys in order and returns the model and the last command.
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(key(k))
		m = updated.(Model)
	}
	return m, cmd
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}
