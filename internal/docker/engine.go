package docker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/system"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/kostyay/docsee/internal/model"
)

// ErrNotConnected is returned by every operation while no client is held.
var ErrNotConnected = errors.New("Not connected to Docker daemon")

// NotFoundError reports a missing engine object.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// dockerAPI is the subset of the Docker client we need (for testing).
type dockerAPI interface {
	Ping(ctx context.Context) (types.Ping, error)
	Info(ctx context.Context) (system.Info, error)
	ServerVersion(ctx context.Context) (types.Version, error)

	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRestart(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerPause(ctx context.Context, containerID string) error
	ContainerUnpause(ctx context.Context, containerID string) error
	ContainerKill(ctx context.Context, containerID, signal string) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ContainerRename(ctx context.Context, containerID, newContainerName string) error
	ContainerStats(ctx context.Context, containerID string, stream bool) (container.StatsResponseReader, error)
	ContainerTop(ctx context.Context, containerID string, arguments []string) (container.TopResponse, error)
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)

	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ImageInspect(ctx context.Context, imageID string, inspectOpts ...client.ImageInspectOption) (image.InspectResponse, error)
	ImageRemove(ctx context.Context, imageID string, options image.RemoveOptions) ([]image.DeleteResponse, error)
	ImagePull(ctx context.Context, refStr string, options image.PullOptions) (io.ReadCloser, error)

	NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error)
	NetworkInspect(ctx context.Context, networkID string, options network.InspectOptions) (network.Inspect, error)
	NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error)
	NetworkRemove(ctx context.Context, networkID string) error
	NetworkConnect(ctx context.Context, networkID, containerID string, config *network.EndpointSettings) error
	NetworkDisconnect(ctx context.Context, networkID, containerID string, force bool) error
	NetworksPrune(ctx context.Context, pruneFilter filters.Args) (network.PruneReport, error)

	VolumeList(ctx context.Context, options volume.ListOptions) (volume.ListResponse, error)
	VolumeInspect(ctx context.Context, volumeID string) (volume.Volume, error)
	VolumeCreate(ctx context.Context, options volume.CreateOptions) (volume.Volume, error)
	VolumeRemove(ctx context.Context, volumeID string, force bool) error
	VolumesPrune(ctx context.Context, pruneFilter filters.Args) (volume.PruneReport, error)

	Close() error
}

// Engine owns at most one Docker client. It is safe for concurrent use.
type Engine struct {
	newClient   func(host string) (dockerAPI, error)
	sampleHost  HostSampler
	defaultHost string

	mu  sync.RWMutex
	cli dockerAPI
}

// NewEngine returns a disconnected Engine. defaultHost is used by Connect when
// no host is given; an empty value falls back to DOCKER_HOST and friends.
func NewEngine(defaultHost string) *Engine {
	return &Engine{
		newClient:   newDockerClient,
		sampleHost:  SampleHost,
		defaultHost: defaultHost,
	}
}

// newDockerClient creates a Docker client for host, or from the environment.
func newDockerClient(host string) (dockerAPI, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	return client.NewClientWithOpts(opts...)
}

// Connect replaces any held client with a new one and pings it. A failed ping
// leaves the engine disconnected.
func (e *Engine) Connect(ctx context.Context, host string) (bool, error) {
	if host == "" {
		host = e.defaultHost
	}
	cli, err := e.newClient(host)
	if err != nil {
		return false, fmt.Errorf("docker client: %w", err)
	}
	if _, err := cli.Ping(ctx); err != nil {
		_ = cli.Close()
		return false, fmt.Errorf("docker ping: %w", err)
	}

	e.mu.Lock()
	old := e.cli
	e.cli = cli
	e.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	slog.Info("docker connected", "host", host)
	return true, nil
}

// Disconnect drops the held client. Safe to call when not connected.
func (e *Engine) Disconnect() error {
	e.mu.Lock()
	cli := e.cli
	e.cli = nil
	e.mu.Unlock()
	if cli == nil {
		return nil
	}
	slog.Info("docker disconnected")
	return cli.Close()
}

// IsConnected reports whether a client is held.
func (e *Engine) IsConnected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cli != nil
}

func (e *Engine) client() (dockerAPI, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.cli == nil {
		return nil, ErrNotConnected
	}
	return e.cli, nil
}

// ConnectionStatus reports whether the engine answers, with its version.
func (e *Engine) ConnectionStatus(ctx context.Context) model.ConnectionStatus {
	cli, err := e.client()
	if err != nil {
		msg := err.Error()
		return model.ConnectionStatus{Connected: false, Error: &msg}
	}
	v, err := cli.ServerVersion(ctx)
	if err != nil {
		msg := err.Error()
		return model.ConnectionStatus{Connected: false, Error: &msg}
	}
	return model.ConnectionStatus{
		Connected:  true,
		Version:    &v.Version,
		APIVersion: &v.APIVersion,
	}
}

// TestConnection pings the engine. Ping failures are reported as false.
func (e *Engine) TestConnection(ctx context.Context) (bool, error) {
	cli, err := e.client()
	if err != nil {
		return false, err
	}
	if _, err := cli.Ping(ctx); err != nil {
		slog.Debug("docker ping failed", "err", err)
		return false, nil
	}
	return true, nil
}

// notFound maps the engine's 404 onto NotFoundError.
func notFound(err error, kind, id string) error {
	if client.IsErrNotFound(err) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return err
}
