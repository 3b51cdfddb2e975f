package backend

import (
	"context"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/docker"
	"github.com/kostyay/docsee/internal/model"
)

// Engine is the Docker side of every operation. *docker.Engine implements it.
type Engine interface {
	Connect(ctx context.Context, host string) (bool, error)
	Disconnect() error
	IsConnected() bool
	ConnectionStatus(ctx context.Context) model.ConnectionStatus
	TestConnection(ctx context.Context) (bool, error)
	SystemInfo(ctx context.Context) (model.SystemInfo, error)
	SystemStats(ctx context.Context) (model.SystemStats, error)
	DockerVersion(ctx context.Context) (model.DockerVersion, error)

	ListContainers(ctx context.Context, all, size bool) ([]model.Container, error)
	ContainerDetails(ctx context.Context, id string) (model.ContainerDetails, error)
	CreateContainer(ctx context.Context, req model.CreateContainerRequest) (string, error)
	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string, timeout *int) error
	RestartContainer(ctx context.Context, id string, timeout *int) error
	PauseContainer(ctx context.Context, id string) error
	UnpauseContainer(ctx context.Context, id string) error
	KillContainer(ctx context.Context, id string, signal *string) error
	RemoveContainer(ctx context.Context, id string, force, removeVolumes bool) error
	RenameContainer(ctx context.Context, id, newName string) error
	ContainerStats(ctx context.Context, id string) (model.StatsSample, error)
	ContainerProcesses(ctx context.Context, id string) (model.ContainerProcesses, error)
	ContainerLogs(ctx context.Context, id string, opts docker.LogOptions) ([]model.LogLine, error)

	ListImages(ctx context.Context, all bool) ([]model.Image, error)
	ImageDetails(ctx context.Context, id string) (model.ImageDetails, error)
	RemoveImage(ctx context.Context, id string, force, noPrune bool) error
	PullImage(ctx context.Context, name string, tag *string) error

	ListNetworks(ctx context.Context) ([]model.Network, error)
	NetworkDetails(ctx context.Context, idOrName string) (model.Network, error)
	CreateNetwork(ctx context.Context, opts model.CreateNetworkOptions) (string, error)
	RemoveNetwork(ctx context.Context, idOrName string) error
	ConnectNetwork(ctx context.Context, networkID string, opts model.ConnectNetworkOptions) error
	DisconnectNetwork(ctx context.Context, networkID string, opts model.DisconnectNetworkOptions) error
	PruneNetworks(ctx context.Context) (model.NetworkPruneResult, error)

	ListVolumes(ctx context.Context) ([]model.Volume, error)
	VolumeDetails(ctx context.Context, name string) (model.Volume, error)
	CreateVolume(ctx context.Context, opts model.CreateVolumeOptions) (model.Volume, error)
	RemoveVolume(ctx context.Context, name string, force bool) error
	PruneVolumes(ctx context.Context) (model.VolumePruneResult, error)
}

var _ Engine = (*docker.Engine)(nil)

// Register binds every named operation to e.
func Register(s *Server, e Engine) {
	registerSystem(s, e)
	registerContainers(s, e)
	registerImages(s, e)
	registerNetworks(s, e)
	registerVolumes(s, e)
}

// byID adapts the common "one id argument, no result" shape.
func byID(key string, fn func(ctx context.Context, id string) error) HandlerFunc {
	return func(ctx context.Context, a Args) (any, error) {
		id, err := a.String(key)
		if err != nil {
			return nil, err
		}
		return nil, fn(ctx, id)
	}
}

func registerSystem(s *Server, e Engine) {
	s.Handle(bridge.OpConnectDocker, func(ctx context.Context, a Args) (any, error) {
		host, err := a.StringPtr("host")
		if err != nil {
			return nil, err
		}
		h := ""
		if host != nil {
			h = *host
		}
		return e.Connect(ctx, h)
	})
	s.Handle(bridge.OpDisconnectDocker, func(ctx context.Context, a Args) (any, error) {
		return nil, e.Disconnect()
	})
	s.Handle(bridge.OpIsDockerConnected, func(ctx context.Context, a Args) (any, error) {
		return e.IsConnected(), nil
	})
	s.Handle(bridge.OpConnectionStatus, func(ctx context.Context, a Args) (any, error) {
		return e.ConnectionStatus(ctx), nil
	})
	s.Handle(bridge.OpSystemInfo, func(ctx context.Context, a Args) (any, error) {
		return e.SystemInfo(ctx)
	})
	s.Handle(bridge.OpSystemStats, func(ctx context.Context, a Args) (any, error) {
		return e.SystemStats(ctx)
	})
	s.Handle(bridge.OpTestConnection, func(ctx context.Context, a Args) (any, error) {
		return e.TestConnection(ctx)
	})
	s.Handle(bridge.OpDockerVersion, func(ctx context.Context, a Args) (any, error) {
		return e.DockerVersion(ctx)
	})
}

func registerContainers(s *Server, e Engine) {
	s.Handle(bridge.OpListContainers, func(ctx context.Context, a Args) (any, error) {
		all, err := a.Bool("all")
		if err != nil {
			return nil, err
		}
		size, err := a.Bool("size")
		if err != nil {
			return nil, err
		}
		return e.ListContainers(ctx, all, size)
	})

	details := func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		return e.ContainerDetails(ctx, id)
	}
	s.Handle(bridge.OpGetContainer, details)
	s.Handle(bridge.OpContainerDetails, details)

	s.Handle(bridge.OpCreateContainer, func(ctx context.Context, a Args) (any, error) {
		var req model.CreateContainerRequest
		if err := a.Object("request", &req); err != nil {
			return nil, err
		}
		return e.CreateContainer(ctx, req)
	})
	s.Handle(bridge.OpStartContainer, byID("id", e.StartContainer))
	s.Handle(bridge.OpPauseContainer, byID("id", e.PauseContainer))
	s.Handle(bridge.OpUnpauseContainer, byID("id", e.UnpauseContainer))

	withTimeout := func(fn func(ctx context.Context, id string, timeout *int) error) HandlerFunc {
		return func(ctx context.Context, a Args) (any, error) {
			id, err := a.String("id")
			if err != nil {
				return nil, err
			}
			timeout, err := a.IntPtr("timeout")
			if err != nil {
				return nil, err
			}
			return nil, fn(ctx, id, timeout)
		}
	}
	s.Handle(bridge.OpStopContainer, withTimeout(e.StopContainer))
	s.Handle(bridge.OpRestartContainer, withTimeout(e.RestartContainer))

	s.Handle(bridge.OpKillContainer, func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		signal, err := a.StringPtr("signal")
		if err != nil {
			return nil, err
		}
		return nil, e.KillContainer(ctx, id, signal)
	})
	s.Handle(bridge.OpRemoveContainer, func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		force, err := a.Bool("force")
		if err != nil {
			return nil, err
		}
		removeVolumes, err := a.Bool("removeVolumes")
		if err != nil {
			return nil, err
		}
		return nil, e.RemoveContainer(ctx, id, force, removeVolumes)
	})
	s.Handle(bridge.OpRenameContainer, func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		newName, err := a.String("newName")
		if err != nil {
			return nil, err
		}
		return nil, e.RenameContainer(ctx, id, newName)
	})
	s.Handle(bridge.OpContainerStats, func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		return e.ContainerStats(ctx, id)
	})
	s.Handle(bridge.OpContainerProcesses, func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		return e.ContainerProcesses(ctx, id)
	})
	s.Handle(bridge.OpContainerLogs, func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		var opts docker.LogOptions
		if opts.Follow, err = a.Bool("follow"); err != nil {
			return nil, err
		}
		if opts.Tail, err = a.StringPtr("tail"); err != nil {
			return nil, err
		}
		if opts.Since, err = a.Int64Ptr("since"); err != nil {
			return nil, err
		}
		if opts.Until, err = a.Int64Ptr("until"); err != nil {
			return nil, err
		}
		return e.ContainerLogs(ctx, id, opts)
	})
}

func registerImages(s *Server, e Engine) {
	s.Handle(bridge.OpListImages, func(ctx context.Context, a Args) (any, error) {
		all, err := a.Bool("all")
		if err != nil {
			return nil, err
		}
		return e.ListImages(ctx, all)
	})
	s.Handle(bridge.OpImageDetails, func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		return e.ImageDetails(ctx, id)
	})
	s.Handle(bridge.OpRemoveImage, func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		force, err := a.Bool("force")
		if err != nil {
			return nil, err
		}
		noPrune, err := a.Bool("noPrune")
		if err != nil {
			return nil, err
		}
		return nil, e.RemoveImage(ctx, id, force, noPrune)
	})
	s.Handle(bridge.OpPullImage, func(ctx context.Context, a Args) (any, error) {
		name, err := a.String("name")
		if err != nil {
			return nil, err
		}
		tag, err := a.StringPtr("tag")
		if err != nil {
			return nil, err
		}
		return nil, e.PullImage(ctx, name, tag)
	})
}

func registerNetworks(s *Server, e Engine) {
	s.Handle(bridge.OpListNetworks, func(ctx context.Context, a Args) (any, error) {
		return e.ListNetworks(ctx)
	})
	s.Handle(bridge.OpNetworkDetails, func(ctx context.Context, a Args) (any, error) {
		id, err := a.String("idOrName")
		if err != nil {
			return nil, err
		}
		return e.NetworkDetails(ctx, id)
	})
	s.Handle(bridge.OpCreateNetwork, func(ctx context.Context, a Args) (any, error) {
		var opts model.CreateNetworkOptions
		if err := a.Object("options", &opts); err != nil {
			return nil, err
		}
		return e.CreateNetwork(ctx, opts)
	})
	s.Handle(bridge.OpRemoveNetwork, byID("idOrName", e.RemoveNetwork))
	s.Handle(bridge.OpConnectNetwork, func(ctx context.Context, a Args) (any, error) {
		networkID, err := a.String("networkId")
		if err != nil {
			return nil, err
		}
		var opts model.ConnectNetworkOptions
		if err := a.Object("options", &opts); err != nil {
			return nil, err
		}
		return nil, e.ConnectNetwork(ctx, networkID, opts)
	})
	s.Handle(bridge.OpDisconnectNetwork, func(ctx context.Context, a Args) (any, error) {
		networkID, err := a.String("networkId")
		if err != nil {
			return nil, err
		}
		var opts model.DisconnectNetworkOptions
		if err := a.Object("options", &opts); err != nil {
			return nil, err
		}
		return nil, e.DisconnectNetwork(ctx, networkID, opts)
	})
	s.Handle(bridge.OpPruneNetworks, func(ctx context.Context, a Args) (any, error) {
		return e.PruneNetworks(ctx)
	})
}

func registerVolumes(s *Server, e Engine) {
	s.Handle(bridge.OpListVolumes, func(ctx context.Context, a Args) (any, error) {
		return e.ListVolumes(ctx)
	})
	s.Handle(bridge.OpVolumeDetails, func(ctx context.Context, a Args) (any, error) {
		name, err := a.String("name")
		if err != nil {
			return nil, err
		}
		return e.VolumeDetails(ctx, name)
	})
	s.Handle(bridge.OpCreateVolume, func(ctx context.Context, a Args) (any, error) {
		var opts model.CreateVolumeOptions
		if err := a.Object("options", &opts); err != nil {
			return nil, err
		}
		return e.CreateVolume(ctx, opts)
	})
	s.Handle(bridge.OpRemoveVolume, func(ctx context.Context, a Args) (any, error) {
		name, err := a.String("name")
		if err != nil {
			return nil, err
		}
		force, err := a.Bool("force")
		if err != nil {
			return nil, err
		}
		return nil, e.RemoveVolume(ctx, name, force)
	})
	s.Handle(bridge.OpPruneVolumes, func(ctx context.Context, a Args) (any, error) {
		return e.PruneVolumes(ctx)
	})
}
