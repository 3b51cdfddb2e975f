package bridge

import (
	"context"

	"github.com/kostyay/docsee/internal/model"
)

// Commands exposes one typed method per backend operation.
type Commands struct {
	c Caller
}

// NewCommands wraps c.
func NewCommands(c Caller) *Commands {
	return &Commands{c: c}
}

type args map[string]any

// call decodes the result of op into a new T.
func call[T any](ctx context.Context, c Caller, op string, a args) (T, error) {
	var out T
	err := c.Call(ctx, op, a.orNil(), &out)
	return out, err
}

func exec(ctx context.Context, c Caller, op string, a args) error {
	return c.Call(ctx, op, a.orNil(), nil)
}

// orNil keeps an empty argument set from reaching the Caller as a typed nil.
func (a args) orNil() any {
	if len(a) == 0 {
		return nil
	}
	return map[string]any(a)
}

// System

func (c *Commands) ConnectDocker(ctx context.Context) (bool, error) {
	return call[bool](ctx, c.c, OpConnectDocker, nil)
}

func (c *Commands) DisconnectDocker(ctx context.Context) error {
	return exec(ctx, c.c, OpDisconnectDocker, nil)
}

func (c *Commands) IsDockerConnected(ctx context.Context) (bool, error) {
	return call[bool](ctx, c.c, OpIsDockerConnected, nil)
}

func (c *Commands) ConnectionStatus(ctx context.Context) (model.ConnectionStatus, error) {
	return call[model.ConnectionStatus](ctx, c.c, OpConnectionStatus, nil)
}

func (c *Commands) SystemInfo(ctx context.Context) (model.SystemInfo, error) {
	return call[model.SystemInfo](ctx, c.c, OpSystemInfo, nil)
}

func (c *Commands) SystemStats(ctx context.Context) (model.SystemStats, error) {
	return call[model.SystemStats](ctx, c.c, OpSystemStats, nil)
}

func (c *Commands) TestConnection(ctx context.Context) (bool, error) {
	return call[bool](ctx, c.c, OpTestConnection, nil)
}

func (c *Commands) DockerVersion(ctx context.Context) (model.DockerVersion, error) {
	return call[model.DockerVersion](ctx, c.c, OpDockerVersion, nil)
}

// Containers

func (c *Commands) ListContainers(ctx context.Context, all, size bool) ([]model.Container, error) {
	return call[[]model.Container](ctx, c.c, OpListContainers, args{"all": all, "size": size})
}

func (c *Commands) GetContainer(ctx context.Context, id string) (model.ContainerDetails, error) {
	return call[model.ContainerDetails](ctx, c.c, OpGetContainer, args{"id": id})
}

func (c *Commands) ContainerDetails(ctx context.Context, id string) (model.ContainerDetails, error) {
	return call[model.ContainerDetails](ctx, c.c, OpContainerDetails, args{"id": id})
}

// CreateContainer returns the new container's ID.
func (c *Commands) CreateContainer(ctx context.Context, req model.CreateContainerRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return call[string](ctx, c.c, OpCreateContainer, args{"request": req})
}

func (c *Commands) StartContainer(ctx context.Context, id string) error {
	return exec(ctx, c.c, OpStartContainer, args{"id": id})
}

// StopContainer stops id. A nil timeout uses the backend default.
func (c *Commands) StopContainer(ctx context.Context, id string, timeout *int) error {
	a := args{"id": id}
	if timeout != nil {
		a["timeout"] = *timeout
	}
	return exec(ctx, c.c, OpStopContainer, a)
}

func (c *Commands) RestartContainer(ctx context.Context, id string, timeout *int) error {
	a := args{"id": id}
	if timeout != nil {
		a["timeout"] = *timeout
	}
	return exec(ctx, c.c, OpRestartContainer, a)
}

func (c *Commands) PauseContainer(ctx context.Context, id string) error {
	return exec(ctx, c.c, OpPauseContainer, args{"id": id})
}

func (c *Commands) UnpauseContainer(ctx context.Context, id string) error {
	return exec(ctx, c.c, OpUnpauseContainer, args{"id": id})
}

// KillContainer sends signal to id. An empty signal uses SIGKILL.
func (c *Commands) KillContainer(ctx context.Context, id, signal string) error {
	a := args{"id": id}
	if signal != "" {
		a["signal"] = signal
	}
	return exec(ctx, c.c, OpKillContainer, a)
}

func (c *Commands) RemoveContainer(ctx context.Context, id string, force, removeVolumes bool) error {
	return exec(ctx, c.c, OpRemoveContainer, args{"id": id, "force": force, "removeVolumes": removeVolumes})
}

func (c *Commands) RenameContainer(ctx context.Context, id, newName string) error {
	return exec(ctx, c.c, OpRenameContainer, args{"id": id, "newName": newName})
}

func (c *Commands) ContainerStats(ctx context.Context, id string) (model.StatsSample, error) {
	return call[model.StatsSample](ctx, c.c, OpContainerStats, args{"id": id})
}

func (c *Commands) ContainerProcesses(ctx context.Context, id string) (model.ContainerProcesses, error) {
	return call[model.ContainerProcesses](ctx, c.c, OpContainerProcesses, args{"id": id})
}

// LogOptions selects a window of container output. Zero values use the
// backend defaults (tail "100", no time bounds).
type LogOptions struct {
	Follow bool
	Tail   string
	Since  *int64 // unix seconds
	Until  *int64
}

func (c *Commands) ContainerLogs(ctx context.Context, id string, opts LogOptions) ([]model.LogLine, error) {
	a := args{"id": id, "follow": opts.Follow}
	if opts.Tail != "" {
		a["tail"] = opts.Tail
	}
	if opts.Since != nil {
		a["since"] = *opts.Since
	}
	if opts.Until != nil {
		a["until"] = *opts.Until
	}
	return call[[]model.LogLine](ctx, c.c, OpContainerLogs, a)
}

// Images

func (c *Commands) ListImages(ctx context.Context, all bool) ([]model.Image, error) {
	return call[[]model.Image](ctx, c.c, OpListImages, args{"all": all})
}

func (c *Commands) ImageDetails(ctx context.Context, id string) (model.ImageDetails, error) {
	return call[model.ImageDetails](ctx, c.c, OpImageDetails, args{"id": id})
}

func (c *Commands) RemoveImage(ctx context.Context, id string, force, noPrune bool) error {
	return exec(ctx, c.c, OpRemoveImage, args{"id": id, "force": force, "noPrune": noPrune})
}

// PullImage pulls name. An empty tag pulls "latest".
func (c *Commands) PullImage(ctx context.Context, name, tag string) error {
	a := args{"name": name}
	if tag != "" {
		a["tag"] = tag
	}
	return exec(ctx, c.c, OpPullImage, a)
}

// Networks

func (c *Commands) ListNetworks(ctx context.Context) ([]model.Network, error) {
	return call[[]model.Network](ctx, c.c, OpListNetworks, nil)
}

func (c *Commands) NetworkDetails(ctx context.Context, idOrName string) (model.Network, error) {
	return call[model.Network](ctx, c.c, OpNetworkDetails, args{"idOrName": idOrName})
}

// CreateNetwork returns the new network's ID.
func (c *Commands) CreateNetwork(ctx context.Context, opts model.CreateNetworkOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return call[string](ctx, c.c, OpCreateNetwork, args{"options": opts})
}

func (c *Commands) RemoveNetwork(ctx context.Context, idOrName string) error {
	return exec(ctx, c.c, OpRemoveNetwork, args{"idOrName": idOrName})
}

func (c *Commands) ConnectNetwork(ctx context.Context, networkID string, opts model.ConnectNetworkOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	return exec(ctx, c.c, OpConnectNetwork, args{"networkId": networkID, "options": opts})
}

func (c *Commands) DisconnectNetwork(ctx context.Context, networkID string, opts model.DisconnectNetworkOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	return exec(ctx, c.c, OpDisconnectNetwork, args{"networkId": networkID, "options": opts})
}

func (c *Commands) PruneNetworks(ctx context.Context) (model.NetworkPruneResult, error) {
	return call[model.NetworkPruneResult](ctx, c.c, OpPruneNetworks, nil)
}

// Volumes

func (c *Commands) ListVolumes(ctx context.Context) ([]model.Volume, error) {
	return call[[]model.Volume](ctx, c.c, OpListVolumes, nil)
}

func (c *Commands) VolumeDetails(ctx context.Context, name string) (model.Volume, error) {
	return call[model.Volume](ctx, c.c, OpVolumeDetails, args{"name": name})
}

func (c *Commands) CreateVolume(ctx context.Context, opts model.CreateVolumeOptions) (model.Volume, error) {
	return call[model.Volume](ctx, c.c, OpCreateVolume, args{"options": opts})
}

func (c *Commands) RemoveVolume(ctx context.Context, name string, force bool) error {
	return exec(ctx, c.c, OpRemoveVolume, args{"name": name, "force": force})
}

func (c *Commands) PruneVolumes(ctx context.Context) (model.VolumePruneResult, error) {
	return call[model.VolumePruneResult](ctx, c.c, OpPruneVolumes, nil)
}
