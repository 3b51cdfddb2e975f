package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/kostyay/docsee/internal/format"
	"github.com/kostyay/docsee/internal/model"
)

// truncate shortens s to width runes, ending in an ellipsis when cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:max(width, 0)])
	}
	return string(r[:width-1]) + "…"
}

// fit truncates or pads s to exactly width runes.
func fit(s string, width int, rightAlign bool) string {
	s = truncate(s, width)
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	if rightAlign {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}

// uintSize renders an unsigned byte count in docker CLI units.
func uintSize(n uint64) string {
	return format.HumanSize(int64(n))
}

func imageName(img model.Image) string {
	if !img.IsTagged() {
		return "<none>"
	}
	name, _ := format.ParseImageTag(img.RepoTags[0])
	return name
}

func imageTag(img model.Image) string {
	if !img.IsTagged() {
		return "<none>"
	}
	_, tag := format.ParseImageTag(img.RepoTags[0])
	return tag
}

func volumeSize(v model.Volume) string {
	if v.UsageData == nil || v.UsageData.Size < 0 {
		return "N/A"
	}
	return format.HumanSize(v.UsageData.Size)
}

func subnets(n model.Network) string {
	var out []string
	for _, c := range n.IPAM.Config {
		if c.Subnet != "" {
			out = append(out, c.Subnet)
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ",")
}

// sinceRFC3339 renders an engine timestamp relative to now.
func sinceRFC3339(s string, now time.Time) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return "-"
	}
	return format.ShortRelative(t, now)
}

func joinArgs(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return strings.Join(args, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// sparkline draws the values as block characters scaled to 0-100.
func sparkline(values []float64, width int) string {
	const blocks = "▁▂▃▄▅▆▇█"
	runes := []rune(blocks)
	if len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(v / 100 * float64(len(runes)-1))
		idx = min(max(idx, 0), len(runes)-1)
		b.WriteRune(runes[idx])
	}
	return b.String()
}

func countLabel(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
