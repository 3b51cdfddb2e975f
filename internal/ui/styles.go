package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kostyay/docsee/internal/config"
	"github.com/kostyay/docsee/internal/model"
	"github.com/kostyay/docsee/internal/store"
)

// Theme-aware style getters

func theme() *config.Styles {
	return &config.CurrentTheme().Styles
}

func fg(c config.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// HeaderStyle returns the style for the main header title.
func HeaderStyle() lipgloss.Style {
	return fg(theme().Header.TitleFg).Bold(true)
}

// FooterStyle returns the style for footer text.
func FooterStyle() lipgloss.Style {
	return fg(theme().Footer.FgColor)
}

// FooterKeyStyle returns the style for keyboard shortcut keys in footer.
func FooterKeyStyle() lipgloss.Style {
	return fg(theme().Footer.KeyFgColor)
}

// FooterDescStyle returns the style for key descriptions in footer.
func FooterDescStyle() lipgloss.Style {
	return fg(theme().Footer.DescFgColor)
}

// StatusStyle returns the style for status bar text.
func StatusStyle() lipgloss.Style {
	return fg(theme().Status.FgColor)
}

// LoadingStyle returns the style for loading indicators.
func LoadingStyle() lipgloss.Style {
	return StatusStyle().Italic(true)
}

// EmptyStyle returns the style for empty state messages.
func EmptyStyle() lipgloss.Style {
	return StatusStyle().Italic(true)
}

// RowStyle returns the style for table rows.
func RowStyle() lipgloss.Style {
	return fg(theme().Table.FgColor)
}

// SelectedRowStyle returns the style for the row under the cursor.
func SelectedRowStyle() lipgloss.Style {
	return fg(theme().Table.CursorFgColor).
		Background(lipgloss.Color(theme().Table.CursorBgColor))
}

// ErrorStyle returns the style for error messages.
func ErrorStyle() lipgloss.Style {
	return fg(theme().Toast.ErrorFgColor).Bold(true)
}

// TableHeaderStyle returns the style for table column headers.
func TableHeaderStyle() lipgloss.Style {
	return fg(theme().Table.HeaderFgColor).Bold(true)
}

// SortIndicatorStyle returns the style for the sorted column marker.
func SortIndicatorStyle() lipgloss.Style {
	return fg(theme().Table.SortIndicator)
}

// StateStyle colors a container state.
func StateStyle(state string) lipgloss.Style {
	switch state {
	case model.StateRunning:
		return fg(theme().Table.RunningFgColor)
	case model.StatePaused, model.StateRestarting:
		return fg(theme().Table.PausedFgColor)
	default:
		return fg(theme().Table.StoppedFgColor)
	}
}

// ToastStyle colors a notification by kind.
func ToastStyle(kind string) lipgloss.Style {
	t := theme().Toast
	switch kind {
	case store.ToastSuccess:
		return fg(t.SuccessFgColor)
	case store.ToastError:
		return fg(t.ErrorFgColor).Bold(true)
	case store.ToastWarning:
		return fg(t.WarningFgColor)
	default:
		return fg(t.InfoFgColor)
	}
}

// TabStyle returns the style of a tab label.
func TabStyle(active bool) lipgloss.Style {
	if active {
		return fg(theme().Table.CursorFgColor).
			Background(lipgloss.Color(theme().Table.CursorBgColor)).
			Bold(true)
	}
	return fg(theme().Header.StatsFg)
}

// LiveIndicatorStyle returns the style for the connected indicator.
func LiveIndicatorStyle() lipgloss.Style {
	return fg(theme().Header.LiveFg).Bold(true)
}

// WarnStyle returns the style for warning/attention text (amber).
func WarnStyle() lipgloss.Style {
	return fg(theme().Header.WarnFg)
}

// StatsStyle returns the style for muted stats text.
func StatsStyle() lipgloss.Style {
	return fg(theme().Header.StatsFg)
}

// BorderStyle returns the style for frame borders.
func BorderStyle() lipgloss.Style {
	return fg(theme().Modal.BorderFgColor)
}

// DimmedStyle returns a style for dimmed background content when modal is visible.
func DimmedStyle() lipgloss.Style {
	return fg(theme().Modal.DimmedFgColor).Faint(true)
}

// RenderDangerFrameWithTitle renders content in a frame with danger/red styling.
// Used for destructive confirmations like removing a container.
func RenderDangerFrameWithTitle(content string, title string, width, height int) string {
	danger := lipgloss.Color(theme().Toast.ErrorFgColor)
	return renderFrameWithColors(content, title, width, height, danger, danger)
}

// splitLines splits a string into lines.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// padRight pads a string to the specified visible width.
func padRight(s string, width int) string {
	visibleWidth := lipgloss.Width(s)
	if visibleWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleWidth)
}

// centeredBorder builds a horizontal border with title centered in it.
func centeredBorder(left, fill, right, title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if title != "" {
		title = " " + title + " "
	}
	if lipgloss.Width(title) > innerWidth {
		title = truncate(title, innerWidth)
	}
	remaining := max(innerWidth-lipgloss.Width(title), 0)
	leftPad := remaining / 2

	return borderStyle.Render(left+strings.Repeat(fill, leftPad)) +
		titleStyle.Render(title) +
		borderStyle.Render(strings.Repeat(fill, remaining-leftPad)+right)
}

// renderFrameWithColors renders a heavy frame with specified border and title colors.
func renderFrameWithColors(content, title string, width, height int, borderColor, titleColor lipgloss.Color) string {
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor).Bold(true)

	innerWidth := width - 2

	styledContent := lipgloss.NewStyle().
		Width(innerWidth).
		Height(height-2).
		Padding(0, 1).
		Render(content)

	var result strings.Builder
	result.WriteString(centeredBorder("┏", "━", "┓", title, innerWidth, borderStyle, titleStyle))
	result.WriteString("\n")
	for _, line := range splitLines(styledContent) {
		result.WriteString(borderStyle.Render("┃"))
		result.WriteString(padRight(line, innerWidth))
		result.WriteString(borderStyle.Render("┃"))
		result.WriteString("\n")
	}
	result.WriteString(borderStyle.Render("┗" + strings.Repeat("━", innerWidth) + "┛"))
	return result.String()
}
