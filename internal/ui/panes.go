package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kostyay/docsee/internal/format"
	"github.com/kostyay/docsee/internal/model"
	"github.com/kostyay/docsee/internal/services"
)

// field renders one "label  value" line of a detail pane.
func field(label, value string) string {
	return FooterKeyStyle().Render(fit(label, 16, false)) + " " + RowStyle().Render(value)
}

func ago(since string) string {
	if since == "-" {
		return since
	}
	return since + " ago"
}

func section(title string) string {
	return "\n" + HeaderStyle().Render(title)
}

// renderDetails renders the details of the resource the pane was opened on.
func (m Model) renderDetails() string {
	var (
		loading bool
		errText string
		lines   []string
	)
	switch m.tab {
	case TabContainers:
		s := m.app.Containers
		loading, errText = s.IsLoadingDetails(), s.Error()
		if d := s.Details(); d != nil && d.ID == m.paneID {
			lines = m.containerDetails(*d)
		}
	case TabImages:
		s := m.app.Images
		loading, errText = s.IsLoadingDetails(), s.Error()
		if d := s.Details(); d != nil && d.ID == m.paneID {
			lines = imageDetails(*d)
		}
	case TabNetworks:
		s := m.app.Networks
		loading, errText = s.IsLoadingDetails(), s.Error()
		if d := s.Details(); d != nil && d.ID == m.paneID {
			lines = networkDetails(*d)
		}
	case TabVolumes:
		s := m.app.Volumes
		loading, errText = s.IsLoadingDetails(), s.Error()
		if d := s.Details(); d != nil && d.Name == m.paneID {
			lines = volumeDetails(*d)
		}
	}

	switch {
	case lines != nil:
		return strings.Join(lines, "\n")
	case loading:
		return LoadingStyle().Render("Loading details...")
	case errText != "":
		return ErrorStyle().Render(errText)
	default:
		return EmptyStyle().Render("No details")
	}
}

func (m Model) containerDetails(d model.ContainerDetails) []string {
	now := m.now()
	lines := []string{
		field("Name", strings.TrimPrefix(d.Name, "/")),
		field("ID", d.ID),
		field("Image", d.Config.Image),
		field("State", d.State.Status),
		field("Created", ago(format.Since(d.Created, now))),
		field("Command", joinArgs(append([]string{d.Path}, d.Args...))),
		field("Restart policy", orDash(d.HostConfig.RestartPolicy.Name)),
		field("Restarts", strconv.FormatInt(d.RestartCount, 10)),
		field("Platform", orDash(d.Platform)),
	}
	if d.State.Running {
		lines = append(lines, field("PID", strconv.FormatInt(d.State.Pid, 10)),
			field("Up", format.Since(d.State.StartedAt, now)))
	} else {
		lines = append(lines, field("Exit code", strconv.FormatInt(d.State.ExitCode, 10)))
	}
	if d.State.Health != "" {
		lines = append(lines, field("Health", d.State.Health))
	}
	if d.State.Error != "" {
		lines = append(lines, field("Error", ErrorStyle().Render(d.State.Error)))
	}

	if ports := d.NetworkSettings.Ports; len(ports) > 0 {
		lines = append(lines, section("PORTS"))
		for _, p := range sortedKeys(ports) {
			var hosts []string
			for _, b := range ports[p] {
				hosts = append(hosts, b.HostIP+":"+b.HostPort)
			}
			label := p
			if name := services.ForSpec(p); name != "" {
				label += " " + name
			}
			lines = append(lines, field(label, orDash(strings.Join(hosts, ", "))))
		}
	}
	if nets := d.NetworkSettings.Networks; len(nets) > 0 {
		lines = append(lines, section("NETWORKS"))
		for _, name := range sortedKeys(nets) {
			ep := nets[name]
			lines = append(lines, field(name, fmt.Sprintf("%s/%d gw %s", orDash(ep.IPAddress), ep.IPPrefixLen, orDash(ep.Gateway))))
		}
	}
	if len(d.Mounts) > 0 {
		lines = append(lines, section("MOUNTS"))
		for _, mt := range d.Mounts {
			mode := "ro"
			if mt.RW {
				mode = "rw"
			}
			lines = append(lines, field(mt.Type, fmt.Sprintf("%s → %s (%s)", mt.Source, mt.Destination, mode)))
		}
	}
	if len(d.Config.Env) > 0 {
		lines = append(lines, section("ENVIRONMENT"))
		for _, e := range d.Config.Env {
			lines = append(lines, "  "+RowStyle().Render(e))
		}
	}
	if len(d.Config.Labels) > 0 {
		lines = append(lines, section("LABELS"))
		for _, k := range sortedKeys(d.Config.Labels) {
			lines = append(lines, field(truncate(k, 16), d.Config.Labels[k]))
		}
	}
	return lines
}

func imageDetails(d model.ImageDetails) []string {
	lines := []string{
		field("ID", d.ID),
		field("Tags", orDash(strings.Join(d.RepoTags, ", "))),
		field("Created", orDash(d.Created)),
		field("Size", format.HumanSize(d.Size)),
		field("Platform", d.Os+"/"+d.Architecture),
		field("Author", orDash(d.Author)),
		field("Docker", orDash(d.DockerVersion)),
		field("Entrypoint", joinArgs(d.Config.Entrypoint)),
		field("Cmd", joinArgs(d.Config.Cmd)),
		field("Workdir", orDash(d.Config.WorkingDir)),
		field("Exposed", orDash(strings.Join(d.Config.ExposedPorts, ", "))),
		field("Layers", strconv.Itoa(len(d.RootFS.Layers))),
	}
	if len(d.Config.Env) > 0 {
		lines = append(lines, section("ENVIRONMENT"))
		for _, e := range d.Config.Env {
			lines = append(lines, "  "+RowStyle().Render(e))
		}
	}
	return lines
}

func networkDetails(n model.Network) []string {
	lines := []string{
		field("Name", n.Name),
		field("ID", n.ID),
		field("Driver", n.Driver),
		field("Scope", n.Scope),
		field("Created", orDash(n.Created)),
		field("Internal", onOff(n.Internal)),
		field("Attachable", onOff(n.Attachable)),
		field("IPv6", onOff(n.EnableIPv6)),
	}
	if len(n.IPAM.Config) > 0 {
		lines = append(lines, section("IPAM ("+orDash(n.IPAM.Driver)+")"))
		for _, c := range n.IPAM.Config {
			lines = append(lines, field(orDash(c.Subnet), "gateway "+orDash(c.Gateway)))
		}
	}
	if len(n.Containers) > 0 {
		lines = append(lines, section("CONTAINERS"))
		for _, id := range sortedKeys(n.Containers) {
			c := n.Containers[id]
			lines = append(lines, field(truncate(c.Name, 16), orDash(c.IPv4Address)))
		}
	}
	return lines
}

func volumeDetails(v model.Volume) []string {
	lines := []string{
		field("Name", v.Name),
		field("Driver", v.Driver),
		field("Scope", orDash(v.Scope)),
		field("Mountpoint", orDash(v.Mountpoint)),
		field("Created", orDash(v.CreatedAt)),
		field("Size", volumeSize(v)),
	}
	if len(v.Labels) > 0 {
		lines = append(lines, section("LABELS"))
		for _, k := range sortedKeys(v.Labels) {
			lines = append(lines, field(truncate(k, 16), v.Labels[k]))
		}
	}
	return lines
}

// renderLogs renders the filtered log lines, stderr highlighted.
func (m Model) renderLogs() string {
	logs := m.app.Logs
	lines := logs.Filtered()
	if len(lines) == 0 {
		switch {
		case logs.IsLoading():
			return LoadingStyle().Render("Loading logs...")
		case logs.Error() != "":
			return ErrorStyle().Render(logs.Error())
		default:
			return EmptyStyle().Render("No log lines")
		}
	}

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		var b strings.Builder
		if l.Timestamp != nil {
			b.WriteString(DimmedStyle().Render(*l.Timestamp))
			b.WriteByte(' ')
		}
		if l.Stream == model.StreamStderr {
			b.WriteString(ErrorStyle().Render(l.Content))
		} else {
			b.WriteString(RowStyle().Render(l.Content))
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}

// renderStats renders the current sample and CPU and memory history.
func (m Model) renderStats() string {
	st := m.app.Stats
	cur := st.Current()
	if cur == nil {
		if err := st.Error(); err != "" {
			return ErrorStyle().Render(err)
		}
		return LoadingStyle().Render("Waiting for stats...")
	}

	res := m.app.Settings.Settings().Resources
	warn := func(v float64, threshold int, text string) string {
		if res.EnableResourceWarnings && v >= float64(threshold) {
			return WarnStyle().Render(text + "  ⚠")
		}
		return text
	}

	history := st.History()
	cpu := make([]float64, len(history))
	mem := make([]float64, len(history))
	for i, h := range history {
		cpu[i], mem[i] = h.CPUPercent, h.MemoryPercent
	}
	width := max(m.contentWidth()-20, 10)

	lines := []string{
		field("CPU", warn(cur.CPUPercent, res.CPUWarningThreshold, format.Percent(cur.CPUPercent))),
		field("", LiveIndicatorStyle().Render(sparkline(cpu, width))),
		field("Memory", warn(cur.MemoryPercent, res.MemoryWarningThreshold,
			fmt.Sprintf("%s / %s (%s)", uintSize(cur.MemoryUsage), uintSize(cur.MemoryLimit), format.Percent(cur.MemoryPercent)))),
		field("", LiveIndicatorStyle().Render(sparkline(mem, width))),
		field("Network", fmt.Sprintf("▼ %s  ▲ %s", uintSize(cur.NetworkRx), uintSize(cur.NetworkTx))),
		field("Block I/O", fmt.Sprintf("read %s  write %s", uintSize(cur.BlockRead), uintSize(cur.BlockWrite))),
		field("PIDs", strconv.FormatUint(cur.Pids, 10)),
		field("Sampled", cur.Timestamp.Local().Format("15:04:05")),
	}
	return strings.Join(lines, "\n")
}

// renderSystem renders the engine info and counts of the System tab.
func (m Model) renderSystem() string {
	sys := m.app.System
	var lines []string

	switch {
	case sys.IsConnected():
		lines = append(lines, field("Connection", LiveIndicatorStyle().Render("connected")))
	case sys.Error() != "":
		lines = append(lines, field("Connection", WarnStyle().Render("disconnected")), field("Error", ErrorStyle().Render(sys.Error())))
	default:
		lines = append(lines, field("Connection", WarnStyle().Render("disconnected")))
	}

	if info := sys.Info(); info != nil {
		v, i := info.Version, info.Info
		lines = append(lines,
			field("Version", orDash(v.Version)),
			field("API", orDash(v.APIVersion)),
			field("Go", orDash(v.GoVersion)),
			field("OS", orDash(i.OperatingSystem)),
			field("Platform", orDash(v.Os)+"/"+orDash(v.Arch)),
			field("Kernel", orDash(i.KernelVersion)),
			field("Storage driver", orDash(i.Driver)),
			field("Logging driver", orDash(i.LoggingDriver)),
			field("Cgroup driver", orDash(i.CgroupDriver)),
			field("CPUs", strconv.FormatInt(i.NCPU, 10)),
			field("Memory", format.HumanSize(i.MemTotal)),
			field("Root dir", orDash(i.DockerRootDir)),
		)
	} else if sys.IsLoading() {
		lines = append(lines, LoadingStyle().Render("Loading engine info..."))
	}

	if s := sys.Stats(); s != nil {
		lines = append(lines, section("RESOURCES"),
			field("Containers", fmt.Sprintf("%d (%d running, %d paused, %d stopped)",
				s.ContainersTotal, s.ContainersRunning, s.ContainersPaused, s.ContainersStopped)),
			field("Images", strconv.FormatInt(s.ImagesTotal, 10)),
			field("Volumes", strconv.FormatInt(s.VolumesTotal, 10)),
			field("Networks", strconv.FormatInt(s.NetworksTotal, 10)),
		)
		if h := s.Host; h != nil {
			lines = append(lines, section("HOST"),
				field("CPU", format.Percent(h.CPUPercent)),
				field("Memory", fmt.Sprintf("%s / %s (%s)", uintSize(h.MemoryUsed), uintSize(h.MemoryTotal), format.Percent(h.MemoryPercent))),
				field("Load", fmt.Sprintf("%.2f %.2f %.2f", h.Load1, h.Load5, h.Load15)),
			)
		}
	}
	return strings.Join(lines, "\n")
}
