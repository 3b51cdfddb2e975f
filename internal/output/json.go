// Package output renders resource lists for scripts: indented JSON or
// tab-aligned text.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/docker/go-units"

	"github.com/kostyay/docsee/internal/format"
	"github.com/kostyay/docsee/internal/model"
)

// Envelope wraps a list with the time it was taken.
type Envelope struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Count     int       `json:"count"`
	Items     any       `json:"items"`
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderList writes items inside an Envelope. A nil slice renders as [].
func RenderList[T any](w io.Writer, kind string, items []T, now time.Time) error {
	if items == nil {
		items = []T{}
	}
	return RenderJSON(w, Envelope{Timestamp: now, Kind: kind, Count: len(items), Items: items})
}

func table(w io.Writer, header string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// RenderContainers writes a docker ps style table.
func RenderContainers(w io.Writer, items []model.Container, now time.Time) error {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{
			format.ShortID(c.ID),
			format.TruncateString(c.Image, 30),
			units.HumanDuration(now.Sub(time.Unix(c.Created, 0))) + " ago",
			c.Status,
			format.Ports(c.Ports),
			format.ContainerDisplayName(c),
		})
	}
	return table(w, "CONTAINER ID\tIMAGE\tCREATED\tSTATUS\tPORTS\tNAMES", rows)
}

// RenderImages writes a docker images style table.
func RenderImages(w io.Writer, items []model.Image, now time.Time) error {
	rows := make([][]string, 0, len(items))
	for _, img := range items {
		repo, tag := "<none>", "<none>"
		if img.IsTagged() {
			repo, tag = format.ParseImageTag(img.RepoTags[0])
		}
		rows = append(rows, []string{
			repo,
			tag,
			format.ShortID(img.ID),
			units.HumanDuration(now.Sub(time.Unix(img.Created, 0))) + " ago",
			format.HumanSize(img.Size),
		})
	}
	return table(w, "REPOSITORY\tTAG\tIMAGE ID\tCREATED\tSIZE", rows)
}

// RenderNetworks writes a docker network ls style table.
func RenderNetworks(w io.Writer, items []model.Network) error {
	rows := make([][]string, 0, len(items))
	for _, n := range items {
		rows = append(rows, []string{
			format.ShortID(n.ID),
			n.Name,
			n.Driver,
			n.Scope,
			fmt.Sprint(len(n.Containers)),
		})
	}
	return table(w, "NETWORK ID\tNAME\tDRIVER\tSCOPE\tCONTAINERS", rows)
}

// RenderVolumes writes a docker volume ls style table.
func RenderVolumes(w io.Writer, items []model.Volume) error {
	rows := make([][]string, 0, len(items))
	for _, v := range items {
		size := "N/A"
		if v.UsageData != nil && v.UsageData.Size >= 0 {
			size = format.HumanSize(v.UsageData.Size)
		}
		rows = append(rows, []string{v.Driver, v.Name, size})
	}
	return table(w, "DRIVER\tVOLUME NAME\tSIZE", rows)
}

// RenderLogs writes one line per log entry, stderr lines prefixed.
func RenderLogs(w io.Writer, lines []model.LogLine, timestamps bool) error {
	for _, l := range lines {
		var b strings.Builder
		if timestamps && l.Timestamp != nil {
			b.WriteString(*l.Timestamp)
			b.WriteByte(' ')
		}
		if l.Stream == model.StreamStderr {
			b.WriteString("[stderr] ")
		}
		b.WriteString(l.Content)
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
