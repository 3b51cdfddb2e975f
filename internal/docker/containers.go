package docker

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/go-connections/nat"

	"github.com/kostyay/docsee/internal/model"
)

// Defaults applied when the caller leaves an option out.
const (
	DefaultStopTimeout = 10
	DefaultKillSignal  = "SIGKILL"
)

// ListContainers lists containers; all includes stopped ones.
func (e *Engine) ListContainers(ctx context.Context, all, size bool) ([]model.Container, error) {
	cli, err := e.client()
	if err != nil {
		return nil, err
	}
	list, err := cli.ContainerList(ctx, container.ListOptions{All: all, Size: size})
	if err != nil {
		return nil, fmt.Errorf("container list: %w", err)
	}
	out := make([]model.Container, 0, len(list))
	for _, c := range list {
		out = append(out, containerFromSummary(c, size))
	}
	return out, nil
}

func containerFromSummary(c container.Summary, withSize bool) model.Container {
	mc := model.Container{
		ID:      c.ID,
		Names:   c.Names,
		Image:   c.Image,
		ImageID: c.ImageID,
		Command: c.Command,
		Created: c.Created,
		State:   string(c.State),
		Status:  c.Status,
		Ports:   make([]model.ContainerPort, 0, len(c.Ports)),
		Labels:  c.Labels,
	}
	if mc.Names == nil {
		mc.Names = []string{}
	}
	for _, p := range c.Ports {
		mp := model.ContainerPort{PrivatePort: p.PrivatePort, Type: p.Type}
		if p.IP != "" {
			ip := p.IP
			mp.IP = &ip
		}
		if p.PublicPort != 0 {
			pub := p.PublicPort
			mp.PublicPort = &pub
		}
		mc.Ports = append(mc.Ports, mp)
	}
	if withSize {
		rw, root := c.SizeRw, c.SizeRootFs
		mc.SizeRw, mc.SizeRootFs = &rw, &root
	}
	return mc
}

// ContainerDetails inspects one container. get_container_cmd and
// get_container_details both resolve here.
func (e *Engine) ContainerDetails(ctx context.Context, id string) (model.ContainerDetails, error) {
	cli, err := e.client()
	if err != nil {
		return model.ContainerDetails{}, err
	}
	resp, err := cli.ContainerInspect(ctx, id)
	if err != nil {
		return model.ContainerDetails{}, fmt.Errorf("container inspect: %w", notFound(err, "Container", id))
	}
	return detailsFromInspect(resp), nil
}

func detailsFromInspect(resp container.InspectResponse) model.ContainerDetails {
	var d model.ContainerDetails
	if base := resp.ContainerJSONBase; base != nil {
		d.ID = base.ID
		d.Created = base.Created
		d.Path = base.Path
		d.Args = base.Args
		d.Image = base.Image
		d.Name = base.Name
		d.RestartCount = int64(base.RestartCount)
		d.Driver = base.Driver
		d.Platform = base.Platform
		d.SizeRw = base.SizeRw
		d.SizeRootFs = base.SizeRootFs
		if st := base.State; st != nil {
			d.State = model.ContainerState{
				Status:     string(st.Status),
				Running:    st.Running,
				Paused:     st.Paused,
				Restarting: st.Restarting,
				OOMKilled:  st.OOMKilled,
				Dead:       st.Dead,
				Pid:        int64(st.Pid),
				ExitCode:   int64(st.ExitCode),
				Error:      st.Error,
				StartedAt:  st.StartedAt,
				FinishedAt: st.FinishedAt,
			}
			if st.Health != nil {
				d.State.Health = string(st.Health.Status)
			}
		}
		if hc := base.HostConfig; hc != nil {
			d.HostConfig = model.HostConfig{
				NetworkMode: string(hc.NetworkMode),
				RestartPolicy: model.RestartPolicy{
					Name:              string(hc.RestartPolicy.Name),
					MaximumRetryCount: hc.RestartPolicy.MaximumRetryCount,
				},
				Privileged: hc.Privileged,
				Binds:      hc.Binds,
				AutoRemove: hc.AutoRemove,
			}
		}
	}

	d.Mounts = make([]model.Mount, 0, len(resp.Mounts))
	for _, m := range resp.Mounts {
		d.Mounts = append(d.Mounts, model.Mount{
			Type:        string(m.Type),
			Name:        m.Name,
			Source:      m.Source,
			Destination: m.Destination,
			Mode:        m.Mode,
			RW:          m.RW,
		})
	}

	if cfg := resp.Config; cfg != nil {
		d.Config = model.ContainerConfig{
			Hostname:   cfg.Hostname,
			User:       cfg.User,
			Env:        cfg.Env,
			Cmd:        cfg.Cmd,
			Entrypoint: cfg.Entrypoint,
			Image:      cfg.Image,
			WorkingDir: cfg.WorkingDir,
			Labels:     cfg.Labels,
			Tty:        cfg.Tty,
		}
	}

	if ns := resp.NetworkSettings; ns != nil {
		d.NetworkSettings = networkSettings(ns)
	}
	return d
}

// networkSettings flattens the per-network endpoints. The top-level address
// is taken from the bridge network, else the first network by name.
func networkSettings(ns *container.NetworkSettings) model.NetworkSettings {
	out := model.NetworkSettings{
		Networks: make(map[string]model.EndpointSettings, len(ns.Networks)),
	}
	names := make([]string, 0, len(ns.Networks))
	for name, ep := range ns.Networks {
		if ep == nil {
			continue
		}
		names = append(names, name)
		out.Networks[name] = model.EndpointSettings{
			NetworkID:   ep.NetworkID,
			EndpointID:  ep.EndpointID,
			Gateway:     ep.Gateway,
			IPAddress:   ep.IPAddress,
			IPPrefixLen: ep.IPPrefixLen,
			MacAddress:  ep.MacAddress,
			Aliases:     ep.Aliases,
		}
	}
	sort.Strings(names)

	primary, ok := out.Networks["bridge"]
	if !ok && len(names) > 0 {
		primary = out.Networks[names[0]]
	}
	out.IPAddress = primary.IPAddress
	out.Gateway = primary.Gateway
	out.MacAddress = primary.MacAddress

	if len(ns.Ports) > 0 {
		out.Ports = make(map[string][]model.PortBinding, len(ns.Ports))
		for port, bindings := range ns.Ports {
			mb := make([]model.PortBinding, 0, len(bindings))
			for _, b := range bindings {
				mb = append(mb, model.PortBinding{HostIP: b.HostIP, HostPort: b.HostPort})
			}
			out.Ports[string(port)] = mb
		}
	}
	return out
}

// CreateContainer creates (but does not start) a container and returns its id.
// ExposedPorts accepts docker-run style specs such as "80/tcp" or "8080:80".
func (e *Engine) CreateContainer(ctx context.Context, req model.CreateContainerRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	cli, err := e.client()
	if err != nil {
		return "", err
	}

	exposed, bindings, err := nat.ParsePortSpecs(req.ExposedPorts)
	if err != nil {
		return "", fmt.Errorf("container create: %w", err)
	}

	cfg := &container.Config{
		Image:        req.Image,
		Cmd:          req.Cmd,
		Env:          req.Env,
		Labels:       req.Labels,
		ExposedPorts: exposed,
	}
	if req.WorkingDir != nil {
		cfg.WorkingDir = *req.WorkingDir
	}
	hostCfg := &container.HostConfig{
		AutoRemove:   req.AutoRemove,
		Binds:        req.Binds,
		PortBindings: bindings,
		NetworkMode:  container.NetworkMode(req.NetworkMode),
	}

	var name string
	if req.Name != nil {
		name = *req.Name
	}

	resp, err := cli.ContainerCreate(ctx, cfg, hostCfg, &network.NetworkingConfig{}, nil, name)
	if err != nil {
		return "", fmt.Errorf("container create: %w", err)
	}
	return resp.ID, nil
}

// StartContainer starts a container.
func (e *Engine) StartContainer(ctx context.Context, id string) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	if err := cli.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return fmt.Errorf("container start: %w", notFound(err, "Container", id))
	}
	return nil
}

// StopContainer stops a container, waiting timeout seconds (default 10)
// before the engine kills it.
func (e *Engine) StopContainer(ctx context.Context, id string, timeout *int) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	if err := cli.ContainerStop(ctx, id, stopOptions(timeout)); err != nil {
		return fmt.Errorf("container stop: %w", notFound(err, "Container", id))
	}
	return nil
}

// RestartContainer restarts a container with the same timeout rules as stop.
func (e *Engine) RestartContainer(ctx context.Context, id string, timeout *int) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	if err := cli.ContainerRestart(ctx, id, stopOptions(timeout)); err != nil {
		return fmt.Errorf("container restart: %w", notFound(err, "Container", id))
	}
	return nil
}

func stopOptions(timeout *int) container.StopOptions {
	secs := DefaultStopTimeout
	if timeout != nil {
		secs = *timeout
	}
	return container.StopOptions{Timeout: &secs}
}

// PauseContainer freezes a running container.
func (e *Engine) PauseContainer(ctx context.Context, id string) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	if err := cli.ContainerPause(ctx, id); err != nil {
		return fmt.Errorf("container pause: %w", notFound(err, "Container", id))
	}
	return nil
}

// UnpauseContainer resumes a paused container.
func (e *Engine) UnpauseContainer(ctx context.Context, id string) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	if err := cli.ContainerUnpause(ctx, id); err != nil {
		return fmt.Errorf("container unpause: %w", notFound(err, "Container", id))
	}
	return nil
}

// KillContainer sends signal (default SIGKILL) to a container.
func (e *Engine) KillContainer(ctx context.Context, id string, signal *string) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	sig := DefaultKillSignal
	if signal != nil && *signal != "" {
		sig = *signal
	}
	if err := cli.ContainerKill(ctx, id, sig); err != nil {
		return fmt.Errorf("container kill: %w", notFound(err, "Container", id))
	}
	return nil
}

// RemoveContainer deletes a container.
func (e *Engine) RemoveContainer(ctx context.Context, id string, force, removeVolumes bool) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	opts := container.RemoveOptions{Force: force, RemoveVolumes: removeVolumes}
	if err := cli.ContainerRemove(ctx, id, opts); err != nil {
		return fmt.Errorf("container remove: %w", notFound(err, "Container", id))
	}
	return nil
}

// RenameContainer renames a container.
func (e *Engine) RenameContainer(ctx context.Context, id, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return fmt.Errorf("container rename: new name is required")
	}
	cli, err := e.client()
	if err != nil {
		return err
	}
	if err := cli.ContainerRename(ctx, id, newName); err != nil {
		return fmt.Errorf("container rename: %w", notFound(err, "Container", id))
	}
	return nil
}

// ContainerStats takes one stats sample. The engine fills precpu_stats so the
// sample alone is enough to compute CPU usage.
func (e *Engine) ContainerStats(ctx context.Context, id string) (model.StatsSample, error) {
	cli, err := e.client()
	if err != nil {
		return model.StatsSample{}, err
	}
	resp, err := cli.ContainerStats(ctx, id, false)
	if err != nil {
		return model.StatsSample{}, fmt.Errorf("container stats: %w", notFound(err, "Container", id))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.StatsSample{}, fmt.Errorf("container stats: %w", err)
	}
	var sample model.StatsSample
	if err := model.Decode(data, &sample); err != nil {
		return model.StatsSample{}, fmt.Errorf("container stats: %w", err)
	}
	if sample.ID == "" {
		sample.ID = id
	}
	return sample, nil
}

// ContainerProcesses lists the processes running in a container.
func (e *Engine) ContainerProcesses(ctx context.Context, id string) (model.ContainerProcesses, error) {
	cli, err := e.client()
	if err != nil {
		return model.ContainerProcesses{}, err
	}
	top, err := cli.ContainerTop(ctx, id, []string{"aux"})
	if err != nil {
		return model.ContainerProcesses{}, fmt.Errorf("container top: %w", notFound(err, "Container", id))
	}
	out := model.ContainerProcesses{Titles: top.Titles, Processes: top.Processes}
	if out.Titles == nil {
		out.Titles = []string{}
	}
	if out.Processes == nil {
		out.Processes = [][]string{}
	}
	return out, nil
}
