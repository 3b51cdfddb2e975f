package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/kostyay/docsee/internal/format"
	"github.com/kostyay/docsee/internal/model"
	"github.com/kostyay/docsee/internal/store"
)

// columnDef defines a table column with sizing properties.
type columnDef struct {
	label      string
	sortKey    string // store sort key this column shows, "" if none
	minWidth   int    // minimum width
	flex       int    // flex weight for extra space distribution (0 = fixed)
	rightAlign bool   // true for right-aligned columns (numbers)
}

func containerColumns() []columnDef {
	return []columnDef{
		{label: "NAME", sortKey: store.ContainerSortName, minWidth: 16, flex: 2},
		{label: "IMAGE", sortKey: store.ContainerSortImage, minWidth: 14, flex: 2},
		{label: "STATE", sortKey: store.ContainerSortStatus, minWidth: 10},
		{label: "STATUS", minWidth: 14, flex: 1},
		{label: "PORTS", minWidth: 12, flex: 1},
		{label: "CREATED", sortKey: store.ContainerSortCreated, minWidth: 9},
	}
}

func imageColumns() []columnDef {
	return []columnDef{
		{label: "REPOSITORY", sortKey: store.ImageSortName, minWidth: 16, flex: 3},
		{label: "TAG", minWidth: 8, flex: 1},
		{label: "IMAGE ID", minWidth: 12},
		{label: "CREATED", sortKey: store.ImageSortCreated, minWidth: 9},
		{label: "SIZE", sortKey: store.ImageSortSize, minWidth: 8, rightAlign: true},
		{label: "USED BY", sortKey: store.ImageSortContainers, minWidth: 7, rightAlign: true},
	}
}

func networkColumns() []columnDef {
	return []columnDef{
		{label: "NAME", sortKey: store.NetworkSortName, minWidth: 14, flex: 2},
		{label: "NETWORK ID", minWidth: 12},
		{label: "DRIVER", sortKey: store.NetworkSortDriver, minWidth: 8},
		{label: "SCOPE", sortKey: store.NetworkSortScope, minWidth: 6},
		{label: "SUBNET", minWidth: 14, flex: 1},
		{label: "CONTAINERS", sortKey: store.NetworkSortContainers, minWidth: 10, rightAlign: true},
		{label: "CREATED", sortKey: store.NetworkSortCreated, minWidth: 9},
	}
}

func volumeColumns() []columnDef {
	return []columnDef{
		{label: "NAME", sortKey: store.VolumeSortName, minWidth: 16, flex: 3},
		{label: "DRIVER", sortKey: store.VolumeSortDriver, minWidth: 8},
		{label: "SCOPE", minWidth: 6},
		{label: "SIZE", sortKey: store.VolumeSortSize, minWidth: 8, rightAlign: true},
		{label: "REFS", sortKey: store.VolumeSortUsage, minWidth: 4, rightAlign: true},
		{label: "CREATED", sortKey: store.VolumeSortCreated, minWidth: 9},
	}
}

// columnsFor returns the column layout of a resource tab.
func columnsFor(t Tab) []columnDef {
	switch t {
	case TabContainers:
		return containerColumns()
	case TabImages:
		return imageColumns()
	case TabNetworks:
		return networkColumns()
	case TabVolumes:
		return volumeColumns()
	default:
		return nil
	}
}

// renderRow renders a table row with selection styling. glyph fills the
// two-column gutter; state colors it on unselected rows.
func renderRow(glyph, state, content string, isSelected bool) string {
	if glyph == "" {
		glyph = " "
	}
	if isSelected {
		return SelectedRowStyle().Render(glyph + " " + content)
	}
	if state != "" {
		glyph = StateStyle(state).Render(glyph)
	}
	return glyph + RowStyle().Render(" "+content)
}

// renderCells joins cells fitted to widths.
func renderCells(columns []columnDef, widths []int, cells []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fit(cells[i], widths[i], col.rightAlign)
	}
	return strings.Join(parts, " ")
}

// renderTableHeader renders a table header marking the sorted column.
func renderTableHeader(columns []columnDef, widths []int, sortBy string) string {
	var b strings.Builder

	// Align with data rows, which carry renderRow's "  " prefix
	b.WriteString("  ")

	headerStyle := TableHeaderStyle()
	sortStyle := SortIndicatorStyle()

	for i, col := range columns {
		if i > 0 {
			b.WriteString(" ")
		}
		isSorted := col.sortKey != "" && col.sortKey == sortBy
		w := widths[i]
		if isSorted {
			w--
		}
		b.WriteString(headerStyle.Render(fit(col.label, max(w, 0), col.rightAlign)))
		if isSorted {
			b.WriteString(sortStyle.Render("▾"))
		}
	}

	return b.String()
}

// calculateColumnWidths distributes available width among columns.
// Fixed columns (flex=0) get their minWidth, remaining space goes to flex columns.
func calculateColumnWidths(columns []columnDef, availableWidth int) []int {
	widths := make([]int, len(columns))

	// Account for spaces between columns and selection marker
	separators := len(columns) - 1
	selectionMarker := 2
	availableWidth -= separators + selectionMarker

	totalMinWidth := 0
	totalFlex := 0
	for i, col := range columns {
		widths[i] = col.minWidth
		totalMinWidth += col.minWidth
		totalFlex += col.flex
	}

	extraSpace := availableWidth - totalMinWidth
	if extraSpace > 0 && totalFlex > 0 {
		for i, col := range columns {
			if col.flex > 0 {
				widths[i] += (extraSpace * col.flex) / totalFlex
			}
		}
	}

	return widths
}

// busy reports whether an operation token for id is in flight.
func busy(ops []string, id string) bool {
	for _, op := range ops {
		if strings.HasSuffix(op, "-"+id) {
			return true
		}
	}
	return false
}

func marker(ops []string, id string) string {
	if busy(ops, id) {
		return "⟳ "
	}
	return ""
}

func containerCells(c model.Container, ops []string, now time.Time) []string {
	return []string{
		marker(ops, c.ID) + format.ContainerDisplayName(c),
		c.Image,
		c.State,
		c.Status,
		format.Ports(c.Ports),
		format.ShortRelative(time.Unix(c.Created, 0), now),
	}
}

func imageCells(img model.Image, ops []string, now time.Time) []string {
	return []string{
		marker(ops, img.ID) + imageName(img),
		imageTag(img),
		format.ShortID(img.ID),
		format.ShortRelative(time.Unix(img.Created, 0), now),
		format.HumanSize(img.Size),
		strconv.FormatInt(max(img.Containers, 0), 10),
	}
}

func networkCells(n model.Network, ops []string, now time.Time) []string {
	return []string{
		marker(ops, n.ID) + n.Name,
		format.ShortID(n.ID),
		n.Driver,
		n.Scope,
		subnets(n),
		strconv.Itoa(len(n.Containers)),
		sinceRFC3339(n.Created, now),
	}
}

func volumeCells(v model.Volume, ops []string, now time.Time) []string {
	refs := "-"
	if v.UsageData != nil && v.UsageData.RefCount >= 0 {
		refs = strconv.FormatInt(v.UsageData.RefCount, 10)
	}
	return []string{
		marker(ops, v.Name) + v.Name,
		v.Driver,
		orDash(v.Scope),
		volumeSize(v),
		refs,
		sinceRFC3339(v.CreatedAt, now),
	}
}

// tableRows renders the rows of a resource tab, one string per row.
func (m Model) tableRows(widths []int) []string {
	now := m.now()
	cols := columnsFor(m.tab)
	var rows [][]string

	switch m.tab {
	case TabContainers:
		ops := m.app.Containers.Operations()
		for _, c := range m.app.Containers.Sorted() {
			rows = append(rows, containerCells(c, ops, now))
		}
	case TabImages:
		ops := m.app.Images.Operations()
		for _, img := range m.app.Images.Sorted() {
			rows = append(rows, imageCells(img, ops, now))
		}
	case TabNetworks:
		ops := m.app.Networks.Operations()
		for _, n := range m.app.Networks.Sorted() {
			rows = append(rows, networkCells(n, ops, now))
		}
	case TabVolumes:
		ops := m.app.Volumes.Operations()
		for _, v := range m.app.Volumes.Sorted() {
			rows = append(rows, volumeCells(v, ops, now))
		}
	}

	out := make([]string, len(rows))
	for i, cells := range rows {
		glyph, state := "", ""
		if m.tab == TabContainers {
			glyph, state = "●", cells[2]
		}
		out[i] = renderRow(glyph, state, renderCells(cols, widths, cells), i == m.cursor())
	}
	return out
}
