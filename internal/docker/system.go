package docker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/system"
	"github.com/docker/docker/api/types/volume"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"

	"github.com/kostyay/docsee/internal/model"
)

// HostSampler reads host resource usage. Nil results are omitted.
type HostSampler func(ctx context.Context) (*model.HostStats, error)

// SystemInfo returns engine version and info.
func (e *Engine) SystemInfo(ctx context.Context) (model.SystemInfo, error) {
	cli, err := e.client()
	if err != nil {
		return model.SystemInfo{}, err
	}

	var (
		v    model.SystemInfo
		info system.Info
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ver, err := e.DockerVersion(gctx)
		v.Version = ver
		return err
	})
	g.Go(func() error {
		var err error
		info, err = cli.Info(gctx)
		if err != nil {
			return fmt.Errorf("docker info: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.SystemInfo{}, err
	}
	v.Info = infoFromEngine(info)
	return v, nil
}

func infoFromEngine(info system.Info) model.DockerInfo {
	return model.DockerInfo{
		ID:                info.ID,
		Containers:        int64(info.Containers),
		ContainersRunning: int64(info.ContainersRunning),
		ContainersPaused:  int64(info.ContainersPaused),
		ContainersStopped: int64(info.ContainersStopped),
		Images:            int64(info.Images),
		Driver:            info.Driver,
		LoggingDriver:     info.LoggingDriver,
		CgroupDriver:      info.CgroupDriver,
		KernelVersion:     info.KernelVersion,
		OperatingSystem:   info.OperatingSystem,
		OSType:            info.OSType,
		Architecture:      info.Architecture,
		NCPU:              int64(info.NCPU),
		MemTotal:          info.MemTotal,
		DockerRootDir:     info.DockerRootDir,
		Name:              info.Name,
		ServerVersion:     info.ServerVersion,
		Labels:            nonNil(info.Labels),
		SecurityOptions:   nonNil(info.SecurityOptions),
		LiveRestore:       info.LiveRestoreEnabled,
	}
}

// DockerVersion returns the engine version block.
func (e *Engine) DockerVersion(ctx context.Context) (model.DockerVersion, error) {
	cli, err := e.client()
	if err != nil {
		return model.DockerVersion{}, err
	}
	v, err := cli.ServerVersion(ctx)
	if err != nil {
		return model.DockerVersion{}, fmt.Errorf("docker version: %w", err)
	}
	return model.DockerVersion{
		Version:       v.Version,
		APIVersion:    v.APIVersion,
		GitCommit:     v.GitCommit,
		GoVersion:     v.GoVersion,
		Os:            v.Os,
		Arch:          v.Arch,
		KernelVersion: v.KernelVersion,
		BuildTime:     v.BuildTime,
	}, nil
}

// SystemStats gathers resource counts concurrently, plus host usage when
// the host sampler succeeds.
func (e *Engine) SystemStats(ctx context.Context) (model.SystemStats, error) {
	cli, err := e.client()
	if err != nil {
		return model.SystemStats{}, err
	}

	var (
		st       model.SystemStats
		host     *model.HostStats
		images   []image.Summary
		networks []network.Summary
		volumes  volume.ListResponse
		info     system.Info
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		info, err = cli.Info(gctx)
		return wrap("docker info", err)
	})
	g.Go(func() (err error) {
		images, err = cli.ImageList(gctx, image.ListOptions{})
		return wrap("image list", err)
	})
	g.Go(func() (err error) {
		networks, err = cli.NetworkList(gctx, network.ListOptions{})
		return wrap("network list", err)
	})
	g.Go(func() (err error) {
		volumes, err = cli.VolumeList(gctx, volume.ListOptions{})
		return wrap("volume list", err)
	})
	if e.sampleHost != nil {
		g.Go(func() error {
			h, err := e.sampleHost(gctx)
			if err != nil {
				slog.Debug("host stats unavailable", "err", err)
				return nil
			}
			host = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.SystemStats{}, err
	}

	st.ContainersTotal = int64(info.Containers)
	st.ContainersRunning = int64(info.ContainersRunning)
	st.ContainersStopped = int64(info.ContainersStopped)
	st.ContainersPaused = int64(info.ContainersPaused)
	st.ImagesTotal = int64(len(images))
	st.NetworksTotal = int64(len(networks))
	st.VolumesTotal = int64(len(volumes.Volumes))
	st.Host = host
	return st, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// SampleHost reads CPU, memory and load averages of the machine running
// the backend.
func SampleHost(ctx context.Context) (*model.HostStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	h := &model.HostStats{
		MemoryUsed:    vm.Used,
		MemoryTotal:   vm.Total,
		MemoryPercent: vm.UsedPercent,
	}
	// interval 0 compares against the previous call
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		h.CPUPercent = pct[0]
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		h.Load1, h.Load5, h.Load15 = avg.Load1, avg.Load5, avg.Load15
	}
	return h, nil
}
