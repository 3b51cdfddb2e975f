package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kostyay/docsee/internal/format"
	"github.com/kostyay/docsee/internal/store"
)

// Layout constants for fixed header/footer with scrollable content.
const (
	headerHeight = 3 // double-line box header (top border + content + bottom border)
	tabBarHeight = 1
	frozenHeight = 1 // table header or pane summary above the viewport
	footerHeight = 2 // status + keybindings
	frameHeight  = 2 // top and bottom border

	chromeHeight = headerHeight + tabBarHeight + frozenHeight + footerHeight + frameHeight
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return LoadingStyle().Render("Initializing...")
	}

	base := m.renderBaseView()
	if m.confirm != nil {
		return m.overlayDangerModal(base, m.renderConfirmContent(), "Confirm", 54)
	}
	return base
}

// renderBaseView renders the main UI without modals.
func (m Model) renderBaseView() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(m.renderFrame(m.frameTitle()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the double-line header with connection state.
func (m Model) renderHeader() string {
	borderStyle := BorderStyle()
	statsStyle := StatsStyle()
	innerWidth := m.width - 2

	topBorder := centeredBorder("╔", "═", "╗", "DOCSEE", innerWidth, borderStyle, HeaderStyle())

	var content string
	sys := m.app.System
	switch {
	case sys.IsConnecting():
		content = WarnStyle().Render("◌ CONNECTING")
	case sys.IsConnected():
		content = LiveIndicatorStyle().Render("◉ CONNECTED")
		if st := sys.Status(); st != nil && st.Version != nil {
			content += statsStyle.Render("  docker " + *st.Version)
		}
	default:
		content = WarnStyle().Render("○ DISCONNECTED")
	}

	running, stopped := m.app.Containers.Counts()
	content += statsStyle.Render(fmt.Sprintf("   %d running · %d stopped", running, stopped))
	content += statsStyle.Render("   images " + format.HumanSize(m.app.Images.TotalSize()))
	content += statsStyle.Render(fmt.Sprintf("   %.1fs", m.refreshInterval.Seconds()))
	if err := sys.Error(); err != "" && !sys.IsConnected() {
		content += WarnStyle().Render("  ⚠ " + truncate(err, 40))
	}

	padding := max(innerWidth-lipgloss.Width(content)-2, 0)
	contentLine := borderStyle.Render("║") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("║")

	bottomBorder := borderStyle.Render("╚" + strings.Repeat("═", innerWidth) + "╝")

	return topBorder + "\n" + contentLine + "\n" + bottomBorder
}

// renderTabBar renders the tab labels with item counts.
func (m Model) renderTabBar() string {
	parts := make([]string, 0, len(Tabs))
	for i, t := range Tabs {
		label := fmt.Sprintf(" %d %s ", i+1, t)
		switch t {
		case TabContainers:
			label = fmt.Sprintf(" %d %s (%d) ", i+1, t, len(m.app.Containers.Items()))
		case TabImages:
			label = fmt.Sprintf(" %d %s (%d) ", i+1, t, len(m.app.Images.Items()))
		case TabNetworks:
			label = fmt.Sprintf(" %d %s (%d) ", i+1, t, len(m.app.Networks.Items()))
		case TabVolumes:
			label = fmt.Sprintf(" %d %s (%d) ", i+1, t, len(m.app.Volumes.Items()))
		}
		parts = append(parts, TabStyle(t == m.tab).Render(label))
	}
	return padRight(" "+strings.Join(parts, " "), m.width)
}

// frameTitle describes what the frame shows.
func (m Model) frameTitle() string {
	switch m.pane {
	case PaneDetails:
		return strings.ToLower(m.tab.String()) + " › " + m.paneLabel()
	case PaneLogs:
		return "logs › " + m.paneLabel()
	case PaneStats:
		return "stats › " + m.paneLabel()
	case PaneHelp:
		return "keyboard shortcuts"
	}

	s, _, _ := m.list(m.tab)
	if s == nil {
		return "docker engine"
	}
	title := fmt.Sprintf("%s: %d · filter %s · sort %s", strings.ToLower(m.tab.String()), m.rowCount(), s.Filter(), s.SortBy())
	if q := s.Search(); q != "" {
		title += fmt.Sprintf(" · %q", q)
	}
	return title
}

// paneLabel returns a readable name for the pane subject.
func (m Model) paneLabel() string {
	if m.tab == TabContainers {
		for _, c := range m.app.Containers.Items() {
			if c.ID == m.paneID {
				return format.ContainerDisplayName(c)
			}
		}
	}
	if m.tab == TabImages || m.tab == TabNetworks {
		return format.ShortID(m.paneID)
	}
	return m.paneID
}

// renderFrozenHeader returns the line shown above the scrolling body.
func (m Model) renderFrozenHeader() string {
	desc := FooterDescStyle()
	switch m.pane {
	case PaneLogs:
		logs := m.app.Logs
		state := "paused"
		if logs.IsFollowing() {
			state = LiveIndicatorStyle().Render("following")
		}
		return state + desc.Render(fmt.Sprintf(" · stream %s · auto-scroll %s · %s",
			logs.StreamFilter(), onOff(logs.AutoScroll()), countLabel(len(logs.Filtered()), "line")))
	case PaneStats:
		st := m.app.Stats
		state := "stopped"
		if st.IsMonitoring() {
			state = LiveIndicatorStyle().Render("monitoring")
		}
		return state + desc.Render(fmt.Sprintf(" · %s", countLabel(len(st.History()), "sample")))
	case PaneDetails, PaneHelp:
		return ""
	}

	cols := columnsFor(m.tab)
	if cols == nil {
		return TableHeaderStyle().Render("  ENGINE")
	}
	s, _, _ := m.list(m.tab)
	return renderTableHeader(cols, calculateColumnWidths(cols, m.contentWidth()), s.SortBy())
}

// contentWidth returns the available width for table content.
// Frame has 2 chars border + 2 chars padding.
func (m Model) contentWidth() int {
	return m.width - 4
}

// renderFrame renders the rounded frame around the frozen header and the
// viewport.
func (m Model) renderFrame(title string) string {
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme().Table.HeaderFgColor))
	titleStyle := HeaderStyle()
	innerWidth := m.width - 2

	var result strings.Builder
	result.WriteString(centeredBorder("╭", "─", "╮", title, innerWidth, borderStyle, titleStyle))
	result.WriteString("\n")

	renderLine := func(line string) {
		result.WriteString(borderStyle.Render("│"))
		result.WriteString(" ")
		result.WriteString(padRight(line, innerWidth-2))
		result.WriteString(" ")
		result.WriteString(borderStyle.Render("│"))
		result.WriteString("\n")
	}

	renderLine(m.renderFrozenHeader())
	for _, line := range strings.Split(m.viewport.View(), "\n") {
		renderLine(line)
	}

	result.WriteString(borderStyle.Render("╰" + strings.Repeat("─", innerWidth) + "╯"))
	return result.String()
}

// renderFooter renders the status row and the keybindings row.
func (m Model) renderFooter() string {
	var b strings.Builder
	b.WriteString(padRight(m.renderStatusLine(), m.width))
	b.WriteString("\n")
	b.WriteString(FooterStyle().Width(m.width).Render(m.renderKeybindingsText()))
	return b.String()
}

// renderStatusLine shows the search prompt, the newest toast, a store error
// or the loading state, in that order.
func (m Model) renderStatusLine() string {
	statusStyle := StatusStyle()
	if m.searchMode {
		return statusStyle.Render(fmt.Sprintf("/%s█", m.searchQuery))
	}

	if toasts := m.app.Toasts.List(); len(toasts) > 0 {
		t := toasts[0]
		icon := map[string]string{
			store.ToastSuccess: "✓",
			store.ToastError:   "✗",
			store.ToastWarning: "!",
			store.ToastInfo:    "i",
		}[t.Kind]
		text := icon + " " + t.Title
		if t.Message != "" {
			text += ": " + t.Message
		}
		if n := len(toasts); n > 1 {
			text += fmt.Sprintf("  (+%d)", n-1)
		}
		return ToastStyle(t.Kind).Render(truncate(text, m.width))
	}

	if s, _, _ := m.list(m.tab); s != nil {
		if err := s.Error(); err != "" {
			return ErrorStyle().Render(truncate("⚠ "+err, m.width))
		}
		if s.IsLoading() {
			return LoadingStyle().Render("Loading " + strings.ToLower(m.tab.String()) + "...")
		}
	}
	return statusStyle.Render(strings.ToUpper(m.tab.String()))
}

// renderKeybindingsText returns keybindings in modern minimal style.
func (m Model) renderKeybindingsText() string {
	keyStyle := FooterKeyStyle()
	descStyle := FooterDescStyle()

	btn := func(key, label string) string {
		return keyStyle.Render(key) + " " + descStyle.Render(label)
	}
	sep := descStyle.Render("  ·  ")

	var parts []string
	switch {
	case m.confirm != nil:
		parts = []string{btn("y", "confirm"), btn("n", "cancel")}
	case m.searchMode:
		parts = []string{btn("↵", "apply"), btn("esc", "cancel")}
	case m.pane == PaneLogs:
		parts = []string{btn("esc", "back"), btn("/", "search"), btn("f", "stream"), btn("a", "auto-scroll"), btn("C", "clear"), btn("q", "quit")}
	case m.pane != PaneNone:
		parts = []string{btn("esc", "back"), btn("↑↓", "scroll"), btn("?", "help"), btn("q", "quit")}
	case m.tab == TabContainers:
		parts = []string{
			btn("↵", "details"), btn("/", "search"), btn("f", "filter"), btn("s", "sort"),
			btn("S", "start"), btn("x", "stop"), btn("r", "restart"), btn("p", "pause"),
			btn("K", "kill"), btn("d", "remove"), btn("l", "logs"), btn("m", "stats"),
			btn("?", "help"), btn("q", "quit"),
		}
	case m.tab == TabSystem:
		parts = []string{btn("tab", "next"), btn("R", "reload"), btn("t", "theme"), btn("?", "help"), btn("q", "quit")}
	default:
		parts = []string{
			btn("↵", "details"), btn("/", "search"), btn("f", "filter"), btn("s", "sort"),
			btn("d", "remove"), btn("R", "reload"), btn("?", "help"), btn("q", "quit"),
		}
	}
	return strings.Join(parts, sep)
}

// renderBody renders what the viewport scrolls: table rows or pane content.
func (m Model) renderBody() string {
	switch m.pane {
	case PaneDetails:
		return m.renderDetails()
	case PaneLogs:
		return m.renderLogs()
	case PaneStats:
		return m.renderStats()
	case PaneHelp:
		return m.renderHelp()
	}

	if m.tab == TabSystem {
		return m.renderSystem()
	}

	s, _, _ := m.list(m.tab)
	rows := m.tableRows(calculateColumnWidths(columnsFor(m.tab), m.contentWidth()))
	if len(rows) == 0 {
		if s.IsLoading() {
			return LoadingStyle().Render("Loading...")
		}
		if s.Search() != "" || s.Filter() != "all" {
			return EmptyStyle().Render("No " + strings.ToLower(m.tab.String()) + " match the current filter")
		}
		return EmptyStyle().Render("No " + strings.ToLower(m.tab.String()) + " found")
	}
	return strings.Join(rows, "\n")
}

// updateViewportContent renders the body into the viewport.
// MUST be called from Update() (not View()) so viewport knows content height for scrolling.
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBody())
}

// syncViewportScroll keeps the cursor visible in tables and follows the tail
// of the logs when auto-scroll is on.
// MUST be called from Update() (not View()) to persist the scroll position.
func (m *Model) syncViewportScroll() {
	if !m.ready {
		return
	}

	switch m.pane {
	case PaneLogs:
		if m.app.Logs.AutoScroll() {
			m.viewport.GotoBottom()
		}
		return
	case PaneNone:
	default:
		return
	}

	line := m.cursor()
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
		return
	}
	if visibleEnd := m.viewport.YOffset + m.viewport.Height; line >= visibleEnd {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// overlayDangerModal renders a danger-styled modal (red borders) on top of background content.
func (m Model) overlayDangerModal(background, content, title string, modalWidth int) string {
	return m.overlayModalWithRenderer(background, content, title, modalWidth, RenderDangerFrameWithTitle)
}

// overlayModalWithRenderer renders a modal using the provided frame renderer.
func (m Model) overlayModalWithRenderer(background, content, title string, modalWidth int, frameRenderer func(string, string, int, int) string) string {
	if m.width < modalWidth+4 {
		modalWidth = m.width - 4
	}

	contentLines := strings.Split(content, "\n")
	modalHeight := len(contentLines) + 2

	modalLines := strings.Split(frameRenderer(content, title, modalWidth, modalHeight), "\n")

	leftPad := max((m.width-modalWidth)/2, 0)
	topPad := max((m.height-modalHeight)/2, 0)

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < m.height {
		bgLines = append(bgLines, "")
	}

	dimStyle := DimmedStyle()
	for i := range bgLines {
		bgLines[i] = dimStyle.Render(stripAnsi(bgLines[i]))
	}

	for i, modalLine := range modalLines {
		if idx := topPad + i; idx < len(bgLines) {
			bgLines[idx] = dimStyle.Render(strings.Repeat(" ", leftPad)) + modalLine
		}
	}

	return strings.Join(bgLines[:m.height], "\n")
}

// renderConfirmContent returns the removal confirmation content.
func (m Model) renderConfirmContent() string {
	if m.confirm == nil {
		return ""
	}
	dangerStyle := ErrorStyle()
	descStyle := FooterDescStyle()

	noun := strings.TrimSuffix(strings.ToLower(m.confirm.tab.String()), "s")
	lines := []string{
		"",
		dangerStyle.Render(fmt.Sprintf("  Remove this %s?", noun)),
		"",
		descStyle.Render("  " + truncate(m.confirm.label, 44)),
		DimmedStyle().Render("  " + format.ShortID(m.confirm.id)),
		"",
		"  " + dangerStyle.Render("y") + descStyle.Render(" Confirm  ") + dangerStyle.Render("n") + descStyle.Render(" Cancel"),
	}
	return strings.Join(lines, "\n")
}

// renderHelp lists every binding by section.
func (m Model) renderHelp() string {
	keyStyle := FooterKeyStyle()
	descStyle := FooterDescStyle()
	groupStyle := HeaderStyle()

	var lines []string
	for _, sec := range helpSections {
		lines = append(lines, groupStyle.Render(sec.title))
		for _, k := range sec.keys {
			lines = append(lines, "  "+keyStyle.Render(fit(k.Key, 10, false))+" "+descStyle.Render(k.Desc))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// stripAnsi removes ANSI escape codes from a string.
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// sortedKeys returns the keys of a string map in order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
