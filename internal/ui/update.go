package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kostyay/docsee/internal/model"
	"github.com/kostyay/docsee/internal/store"
)

// Init schedules the first repaint tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.clampCursor()
	m.updateViewportContent()
	m.syncViewportScroll()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := max(msg.Height-chromeHeight, 1)
		// Frame border and padding
		viewportWidth := max(msg.Width-4, 1)

		if !m.ready {
			m.viewport = viewport.New(viewportWidth, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = viewportWidth
			m.viewport.Height = viewportHeight
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.app.Toasts.Expire(time.Time(msg))
		return m, m.tickCmd()

	case ActionMsg:
		switch {
		case !msg.OK:
			m.app.Toasts.Error(msg.Title+" failed", msg.Err)
		case m.app.Settings.Settings().Application.EnableNotifications:
			m.app.Toasts.Success(msg.Title, "")
		}
		return m, nil

	case LoadedMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Confirmation intercepts all keys
	if m.confirm != nil {
		switch msg.String() {
		case "y", "Y":
			p := m.confirm
			m.confirm = nil
			return m, m.removeCmd(p)
		case "n", "N", "esc":
			m.confirm = nil
		}
		return m, nil
	}

	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	key := msg.String()
	switch {
	case matchKey(key, KeyQuit, KeyQuitAlt):
		m.quitting = true
		m.closePane()
		return m, tea.Quit

	case matchKey(key, KeyEsc, KeyBack):
		m.closePane()
		return m, nil

	case matchKey(key, KeyHelp):
		if m.pane == PaneHelp {
			m.closePane()
		} else {
			m.closePane()
			m.pane = PaneHelp
		}
		return m, nil

	case matchKey(key, KeyTheme):
		m.app.Theme.Toggle()
		m.applyTheme(m.app.Theme.Resolved())
		return m, nil

	case matchKey(key, KeyRefreshUp), key == "=":
		if m.refreshInterval > MinRefreshInterval {
			m.refreshInterval -= RefreshStep
		}
		return m, nil

	case matchKey(key, KeyRefreshDown), key == "_":
		if m.refreshInterval < MaxRefreshInterval {
			m.refreshInterval += RefreshStep
		}
		return m, nil

	case matchKey(key, KeyDismiss) && m.pane == PaneNone:
		m.app.Toasts.Clear()
		return m, nil

	case matchKey(key, KeySearch):
		m.searchMode = true
		m.searchSaved = m.searchValue()
		m.searchQuery = m.searchSaved
		return m, nil
	}

	if m.pane != PaneNone {
		return m.handlePaneKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.applySearch(m.searchQuery)
		m.setCursor(0)
	case "esc":
		m.searchMode = false
		m.searchQuery = m.searchSaved
		m.applySearch(m.searchSaved)
	case "backspace":
		if r := []rune(m.searchQuery); len(r) > 0 {
			m.searchQuery = string(r[:len(r)-1])
			m.applySearch(m.searchQuery)
		}
	default:
		r := msg.Runes
		if len(r) == 1 && r[0] >= 32 {
			m.searchQuery += string(r)
			m.applySearch(m.searchQuery)
		}
	}
	return m, nil
}

// searchValue returns the search term of the logs pane or the current list.
func (m Model) searchValue() string {
	if m.pane == PaneLogs {
		return m.app.Logs.Search()
	}
	if s, _, _ := m.list(m.tab); s != nil {
		return s.Search()
	}
	return ""
}

func (m Model) applySearch(term string) {
	if m.pane == PaneLogs {
		m.app.Logs.SetSearch(term)
		return
	}
	if s, _, _ := m.list(m.tab); s != nil {
		s.SetSearch(term)
	}
}

func (m Model) handlePaneKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if m.pane == PaneLogs {
		switch {
		case matchKey(key, KeyLogStream):
			m.app.Logs.SetStreamFilter(nextOf([]string{store.StreamAll, store.StreamStdout, store.StreamStderr}, m.app.Logs.StreamFilter()))
			return m, nil
		case matchKey(key, KeyLogAutoScroll):
			m.app.Logs.ToggleAutoScroll()
			return m, nil
		case matchKey(key, KeyLogClear):
			m.app.Logs.Clear()
			return m, nil
		}
	}
	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	switch {
	case matchKey(key, KeyUp, KeyUpAlt):
		if c := m.cursor(); c > 0 {
			m.setCursor(c - 1)
		}
		return m, nil

	case matchKey(key, KeyDown, KeyDownAlt):
		if c := m.cursor(); c < m.rowCount()-1 {
			m.setCursor(c + 1)
		}
		return m, nil

	case matchKey(key, KeyNextTab), key == "right":
		m.tab = Tabs[(int(m.tab)+1)%len(Tabs)]
		return m, nil

	case matchKey(key, KeyPrevTab), key == "left":
		m.tab = Tabs[(int(m.tab)+len(Tabs)-1)%len(Tabs)]
		return m, nil

	case len(key) == 1 && key[0] >= '1' && key[0] < '1'+byte(len(Tabs)):
		m.tab = Tabs[key[0]-'1']
		return m, nil

	case matchKey(key, KeyFilter):
		if s, filters, _ := m.list(m.tab); s != nil {
			s.SetFilter(nextOf(filters, s.Filter()))
			m.setCursor(0)
		}
		return m, nil

	case matchKey(key, KeySort):
		if s, _, sorts := m.list(m.tab); s != nil {
			s.SetSort(nextOf(sorts, s.SortBy()))
		}
		return m, nil

	case matchKey(key, KeyReload):
		return m, m.reloadCmd(m.tab)

	case matchKey(key, KeyEnter):
		return m.openDetails()

	case matchKey(key, KeyRemove):
		return m.askRemove()
	}

	if m.tab == TabContainers {
		return m.handleContainerKey(key)
	}
	return m, nil
}

func (m Model) handleContainerKey(key string) (Model, tea.Cmd) {
	c, ok := m.selectedContainer()
	if !ok {
		return m, nil
	}
	name := c.Name()
	if name == "" {
		name = c.ID
	}

	switch {
	case matchKey(key, KeyStart):
		return m, m.containerCmd(store.ContainerStart, c.ID, "Started "+name)
	case matchKey(key, KeyStop):
		return m, m.containerCmd(store.ContainerStop, c.ID, "Stopped "+name)
	case matchKey(key, KeyRestart):
		return m, m.containerCmd(store.ContainerRestart, c.ID, "Restarted "+name)
	case matchKey(key, KeyPause):
		if c.State == model.StatePaused {
			return m, m.containerCmd(store.ContainerUnpause, c.ID, "Unpaused "+name)
		}
		return m, m.containerCmd(store.ContainerPause, c.ID, "Paused "+name)
	case matchKey(key, KeyKill):
		return m, m.containerCmd(store.ContainerKill, c.ID, "Killed "+name)

	case matchKey(key, KeyLogs):
		m.pane, m.paneID = PaneLogs, c.ID
		logs, ctx := m.app.Logs, m.ctx
		return m, func() tea.Msg {
			logs.StartFollowing(ctx, c.ID)
			return LoadedMsg{}
		}

	case matchKey(key, KeyStats):
		m.pane, m.paneID = PaneStats, c.ID
		stats, ctx := m.app.Stats, m.ctx
		return m, func() tea.Msg {
			stats.StartMonitoring(ctx, c.ID, 0)
			return LoadedMsg{}
		}
	}
	return m, nil
}

// openDetails opens the details pane and loads the selected resource.
func (m Model) openDetails() (Model, tea.Cmd) {
	id, _, ok := m.selectedID()
	if !ok {
		return m, nil
	}
	m.pane, m.paneID = PaneDetails, id
	ctx, app, tab := m.ctx, m.app, m.tab
	return m, func() tea.Msg {
		switch tab {
		case TabContainers:
			app.Containers.LoadDetails(ctx, id)
		case TabImages:
			app.Images.LoadDetails(ctx, id)
		case TabNetworks:
			app.Networks.LoadDetails(ctx, id)
		case TabVolumes:
			app.Volumes.LoadDetails(ctx, id)
		}
		return LoadedMsg{}
	}
}

// closePane stops whatever the open pane keeps running.
func (m *Model) closePane() {
	switch m.pane {
	case PaneLogs:
		m.app.Logs.StopFollowing()
	case PaneStats:
		m.app.Stats.StopMonitoring()
	}
	m.pane, m.paneID = PaneNone, ""
	if m.ready {
		m.viewport.GotoTop()
	}
}

// askRemove asks for confirmation unless the settings turned it off.
func (m Model) askRemove() (Model, tea.Cmd) {
	id, label, ok := m.selectedID()
	if !ok {
		return m, nil
	}
	p := &pendingAction{tab: m.tab, id: id, label: label}
	if !m.app.Settings.Settings().Security.EnableOperationConfirmation {
		return m, m.removeCmd(p)
	}
	m.confirm = p
	return m, nil
}

func (m Model) removeCmd(p *pendingAction) tea.Cmd {
	title := fmt.Sprintf("Removed %s", p.label)
	switch p.tab {
	case TabContainers:
		return m.actionCmd(title, m.app.Containers.Error, func(ctx context.Context) bool {
			return m.app.Containers.Perform(ctx, store.ContainerRemove, p.id, store.ContainerActionOptions{})
		})
	case TabImages:
		return m.actionCmd(title, m.app.Images.Error, func(ctx context.Context) bool {
			return m.app.Images.Remove(ctx, p.id, false, false)
		})
	case TabNetworks:
		return m.actionCmd(title, m.app.Networks.Error, func(ctx context.Context) bool {
			return m.app.Networks.Perform(ctx, store.NetworkRemove, p.id, nil)
		})
	case TabVolumes:
		return m.actionCmd(title, m.app.Volumes.Error, func(ctx context.Context) bool {
			return m.app.Volumes.Perform(ctx, store.VolumeRemove, p.id, false)
		})
	}
	return nil
}

func (m Model) containerCmd(action store.ContainerAction, id, title string) tea.Cmd {
	return m.actionCmd(title, m.app.Containers.Error, func(ctx context.Context) bool {
		return m.app.Containers.Perform(ctx, action, id, store.ContainerActionOptions{})
	})
}

// actionCmd runs fn off the UI goroutine and reports through ActionMsg.
func (m Model) actionCmd(title string, errText func() string, fn func(ctx context.Context) bool) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if fn(ctx) {
			return ActionMsg{Title: title, OK: true}
		}
		return ActionMsg{Title: title, Err: errText()}
	}
}

func (m Model) reloadCmd(tab Tab) tea.Cmd {
	ctx, app := m.ctx, m.app
	return func() tea.Msg {
		switch tab {
		case TabContainers:
			app.Containers.Reload(ctx)
		case TabImages:
			app.Images.Load(ctx)
		case TabNetworks:
			app.Networks.Load(ctx)
		case TabVolumes:
			app.Volumes.Load(ctx)
		case TabSystem:
			app.System.RefreshStatus(ctx)
			if app.System.IsConnected() {
				app.System.LoadInfo(ctx)
				app.System.LoadStats(ctx)
			}
		}
		return LoadedMsg{}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
