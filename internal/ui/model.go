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

// Repaint interval bounds. Stores refresh themselves; the interval only
// controls how often the screen reads them.
const (
	MinRefreshInterval     = 500 * time.Millisecond
	MaxRefreshInterval     = 10 * time.Second
	DefaultRefreshInterval = time.Second
	RefreshStep            = 500 * time.Millisecond
)

// Tab is one top-level resource view.
type Tab int

const (
	TabContainers Tab = iota
	TabImages
	TabNetworks
	TabVolumes
	TabSystem
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabContainers, TabImages, TabNetworks, TabVolumes, TabSystem}

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabContainers:
		return "Containers"
	case TabImages:
		return "Images"
	case TabNetworks:
		return "Networks"
	case TabVolumes:
		return "Volumes"
	case TabSystem:
		return "System"
	default:
		return fmt.Sprintf("Tab(%d)", t)
	}
}

// Pane is the detail view that replaces the table of the current tab.
type Pane int

const (
	PaneNone Pane = iota
	PaneDetails
	PaneLogs
	PaneStats
	PaneHelp
)

// pendingAction is a destructive action waiting for y/n.
type pendingAction struct {
	tab   Tab
	id    string
	label string
}

// listStore is the part of a resource store the table views need.
type listStore interface {
	Filter() string
	SortBy() string
	Search() string
	SetFilter(string)
	SetSort(string)
	SetSearch(string)
	IsLoading() bool
	Error() string
}

// Options configures NewModel.
type Options struct {
	RefreshInterval time.Duration
	// ApplyTheme is called with "light" or "dark" when the theme changes.
	ApplyTheme func(mode string)
	Now        func() time.Time
}

// Model is the Bubble Tea model over one store.App.
type Model struct {
	app *store.App
	ctx context.Context

	applyTheme func(string)
	now        func() time.Time

	tab     Tab
	cursors map[Tab]int

	pane   Pane
	paneID string

	searchMode  bool
	searchQuery string
	searchSaved string

	confirm *pendingAction

	quitting        bool
	refreshInterval time.Duration

	width  int
	height int

	viewport viewport.Model
	ready    bool
}

// NewModel creates a model over app. ctx bounds every backend call the UI
// starts.
func NewModel(ctx context.Context, app *store.App, opts Options) Model {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.ApplyTheme == nil {
		opts.ApplyTheme = func(string) {}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		app:             app,
		ctx:             ctx,
		applyTheme:      opts.ApplyTheme,
		now:             opts.Now,
		cursors:         make(map[Tab]int),
		refreshInterval: opts.RefreshInterval,
	}
}

// CurrentTab returns the active tab.
func (m Model) CurrentTab() Tab { return m.tab }

// CurrentPane returns the open pane, PaneNone for the table.
func (m Model) CurrentPane() Pane { return m.pane }

func (m Model) cursor() int { return m.cursors[m.tab] }

func (m *Model) setCursor(c int) { m.cursors[m.tab] = c }

// list returns the store, filters and sort keys of a resource tab.
func (m Model) list(t Tab) (listStore, []string, []string) {
	switch t {
	case TabContainers:
		return m.app.Containers, store.ContainerFilters, store.ContainerSorts
	case TabImages:
		return m.app.Images, store.ImageFilters, store.ImageSorts
	case TabNetworks:
		return m.app.Networks, store.NetworkFilters, store.NetworkSorts
	case TabVolumes:
		return m.app.Volumes, store.VolumeFilters, store.VolumeSorts
	default:
		return nil, nil, nil
	}
}

// rowCount returns the number of rows of the current table.
func (m Model) rowCount() int {
	switch m.tab {
	case TabContainers:
		return len(m.app.Containers.Sorted())
	case TabImages:
		return len(m.app.Images.Sorted())
	case TabNetworks:
		return len(m.app.Networks.Sorted())
	case TabVolumes:
		return len(m.app.Volumes.Sorted())
	default:
		return 0
	}
}

// selectedID returns the id and display label of the row under the cursor.
func (m Model) selectedID() (id, label string, ok bool) {
	c := m.cursor()
	switch m.tab {
	case TabContainers:
		if ctr, ok := m.selectedContainer(); ok {
			return ctr.ID, ctr.Name(), true
		}
	case TabImages:
		if items := m.app.Images.Sorted(); c < len(items) {
			return items[c].ID, imageName(items[c]) + ":" + imageTag(items[c]), true
		}
	case TabNetworks:
		if items := m.app.Networks.Sorted(); c < len(items) {
			return items[c].ID, items[c].Name, true
		}
	case TabVolumes:
		if items := m.app.Volumes.Sorted(); c < len(items) {
			return items[c].Name, items[c].Name, true
		}
	}
	return "", "", false
}

func (m Model) selectedContainer() (model.Container, bool) {
	items := m.app.Containers.Sorted()
	if c := m.cursor(); c < len(items) {
		return items[c], true
	}
	return model.Container{}, false
}

// clampCursor keeps the cursor inside the current table.
func (m *Model) clampCursor() {
	n := m.rowCount()
	switch {
	case n == 0:
		m.setCursor(0)
	case m.cursor() >= n:
		m.setCursor(n - 1)
	}
}

// nextOf returns the element after cur in list, wrapping around.
func nextOf(list []string, cur string) string {
	for i, v := range list {
		if v == cur {
			return list[(i+1)%len(list)]
		}
	}
	if len(list) > 0 {
		return list[0]
	}
	return cur
}

var _ tea.Model = Model{}
