package docker

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/system"
	"github.com/docker/docker/api/types/volume"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/kostyay/docsee/internal/model"
)

// mockDockerAPI implements dockerAPI for testing. Methods a test does not
// configure fall through to the nil embedded interface and panic.
type mockDockerAPI struct {
	dockerAPI

	pingErr    error
	version    types.Version
	info       system.Info
	containers []container.Summary
	inspect    container.InspectResponse
	logs       string
	stats      string
	images     []image.Summary
	networks   []network.Summary
	volumes    []*volume.Volume
	err        error

	closed    bool
	stopOpts  container.StopOptions
	signal    string
	createCfg *container.Config
	createHC  *container.HostConfig
	createdAs string
	logOpts   container.LogsOptions
}

func (m *mockDockerAPI) Ping(ctx context.Context) (types.Ping, error) {
	return types.Ping{APIVersion: m.version.APIVersion}, m.pingErr
}

func (m *mockDockerAPI) ServerVersion(ctx context.Context) (types.Version, error) {
	return m.version, m.err
}

func (m *mockDockerAPI) Info(ctx context.Context) (system.Info, error) {
	return m.info, m.err
}

func (m *mockDockerAPI) ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.containers, nil
}

func (m *mockDockerAPI) ContainerInspect(ctx context.Context, id string) (container.InspectResponse, error) {
	return m.inspect, m.err
}

func (m *mockDockerAPI) ContainerCreate(ctx context.Context, cfg *container.Config, hc *container.HostConfig, nc *network.NetworkingConfig, p *ocispec.Platform, name string) (container.CreateResponse, error) {
	m.createCfg, m.createHC, m.createdAs = cfg, hc, name
	return container.CreateResponse{ID: "new123"}, m.err
}

func (m *mockDockerAPI) ContainerStop(ctx context.Context, id string, opts container.StopOptions) error {
	m.stopOpts = opts
	return m.err
}

func (m *mockDockerAPI) ContainerKill(ctx context.Context, id, signal string) error {
	m.signal = signal
	return m.err
}

func (m *mockDockerAPI) ContainerStart(ctx context.Context, id string, opts container.StartOptions) error {
	return m.err
}

func (m *mockDockerAPI) ContainerLogs(ctx context.Context, id string, opts container.LogsOptions) (io.ReadCloser, error) {
	m.logOpts = opts
	return io.NopCloser(strings.NewReader(m.logs)), m.err
}

func (m *mockDockerAPI) ContainerStats(ctx context.Context, id string, stream bool) (container.StatsResponseReader, error) {
	return container.StatsResponseReader{Body: io.NopCloser(strings.NewReader(m.stats))}, m.err
}

func (m *mockDockerAPI) ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error) {
	return m.images, m.err
}

func (m *mockDockerAPI) NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error) {
	return m.networks, m.err
}

func (m *mockDockerAPI) NetworksPrune(ctx context.Context, f filters.Args) (network.PruneReport, error) {
	return network.PruneReport{}, m.err
}

func (m *mockDockerAPI) VolumeList(ctx context.Context, options volume.ListOptions) (volume.ListResponse, error) {
	return volume.ListResponse{Volumes: m.volumes}, m.err
}

func (m *mockDockerAPI) Close() error {
	m.closed = true
	return nil
}

// errNotFound satisfies the errdefs NotFound interface the client checks.
type errNotFound struct{}

func (errNotFound) Error() string { return "No such container" }
func (errNotFound) NotFound()     {}

func newTestEngine(t *testing.T, mock *mockDockerAPI) *Engine {
	t.Helper()
	e := &Engine{
		newClient: func(host string) (dockerAPI, error) {
			return mock, nil
		},
	}
	if ok, err := e.Connect(context.Background(), ""); !ok || err != nil {
		t.Fatalf("Connect = %v, %v", ok, err)
	}
	return e
}

func TestEngine_NotConnected(t *testing.T) {
	e := &Engine{}
	if e.IsConnected() {
		t.Fatal("new engine reports connected")
	}

	_, err := e.ListContainers(context.Background(), true, false)
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
	if err.Error() != "Not connected to Docker daemon" {
		t.Errorf("message = %q", err.Error())
	}

	st := e.ConnectionStatus(context.Background())
	if st.Connected || st.Error == nil {
		t.Errorf("status = %+v, want disconnected with error", st)
	}
	if err := e.Disconnect(); err != nil {
		t.Errorf("Disconnect on idle engine: %v", err)
	}
}

func TestEngine_ConnectPingFailure(t *testing.T) {
	mock := &mockDockerAPI{pingErr: errors.New("connection refused")}
	e := &Engine{newClient: func(string) (dockerAPI, error) { return mock, nil }}

	ok, err := e.Connect(context.Background(), "unix:///nope.sock")
	if ok || err == nil {
		t.Fatalf("Connect = %v, %v; want false with error", ok, err)
	}
	if e.IsConnected() {
		t.Error("engine connected after failed ping")
	}
	if !mock.closed {
		t.Error("client not closed after failed ping")
	}
}

func TestEngine_ConnectUsesDefaultHost(t *testing.T) {
	var got string
	e := &Engine{
		defaultHost: "tcp://10.0.0.1:2375",
		newClient: func(host string) (dockerAPI, error) {
			got = host
			return &mockDockerAPI{}, nil
		},
	}
	_, _ = e.Connect(context.Background(), "")
	if got != "tcp://10.0.0.1:2375" {
		t.Errorf("host = %q, want default host", got)
	}
	_, _ = e.Connect(context.Background(), "unix:///other.sock")
	if got != "unix:///other.sock" {
		t.Errorf("host = %q, want explicit host", got)
	}
}

func TestEngine_ConnectionStatus(t *testing.T) {
	e := newTestEngine(t, &mockDockerAPI{version: types.Version{Version: "28.5.2", APIVersion: "1.51"}})
	st := e.ConnectionStatus(context.Background())
	if !st.Connected || st.Version == nil || *st.Version != "28.5.2" || *st.APIVersion != "1.51" {
		t.Errorf("status = %+v", st)
	}

	if err := e.Disconnect(); err != nil {
		t.Fatal(err)
	}
	if e.IsConnected() {
		t.Error("still connected after Disconnect")
	}
}

func TestListContainers_Mapping(t *testing.T) {
	mock := &mockDockerAPI{
		containers: []container.Summary{
			{
				ID:     "abc123def456789012",
				Names:  []string{"/nginx-proxy"},
				Image:  "nginx:latest",
				State:  "running",
				Status: "Up 2 hours",
				Ports: []container.Port{
					{IP: "0.0.0.0", PublicPort: 8080, PrivatePort: 80, Type: "tcp"},
					{PrivatePort: 443, Type: "tcp"},
				},
				SizeRw: 42,
			},
		},
	}
	e := newTestEngine(t, mock)

	list, err := e.ListContainers(context.Background(), true, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	c := list[0]
	if c.Name() != "nginx-proxy" || c.State != model.StateRunning {
		t.Errorf("container = %+v", c)
	}
	if len(c.Ports) != 2 {
		t.Fatalf("ports = %+v", c.Ports)
	}
	if c.Ports[0].PublicPort == nil || *c.Ports[0].PublicPort != 8080 || c.Ports[0].IP == nil {
		t.Errorf("bound port = %+v", c.Ports[0])
	}
	if c.Ports[1].PublicPort != nil || c.Ports[1].IP != nil {
		t.Errorf("unbound port = %+v", c.Ports[1])
	}
	if c.SizeRw == nil || *c.SizeRw != 42 {
		t.Errorf("SizeRw = %v", c.SizeRw)
	}

	list, _ = e.ListContainers(context.Background(), true, false)
	if list[0].SizeRw != nil {
		t.Error("SizeRw set without size=true")
	}
}

func TestContainerDetails_NotFoundMessage(t *testing.T) {
	e := newTestEngine(t, &mockDockerAPI{err: errNotFound{}})
	_, err := e.ContainerDetails(context.Background(), "zzz")
	if err == nil || !strings.HasSuffix(err.Error(), "Container not found: zzz") {
		t.Fatalf("err = %v", err)
	}
}

func TestContainerDetails_NotFound(t *testing.T) {
	e := newTestEngine(t, &mockDockerAPI{err: errNotFound{}})
	_, err := e.ContainerDetails(context.Background(), "ghost")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if nf.Kind != "Container" || nf.ID != "ghost" {
		t.Errorf("NotFoundError = %+v", nf)
	}
}

func TestContainerDetails_Mapping(t *testing.T) {
	mock := &mockDockerAPI{inspect: container.InspectResponse{
		ContainerJSONBase: &container.ContainerJSONBase{
			ID:    "abc",
			Name:  "/web",
			State: &container.State{Status: "running", Running: true, Pid: 77},
			HostConfig: &container.HostConfig{
				NetworkMode:   "bridge",
				RestartPolicy: container.RestartPolicy{Name: "always"},
			},
		},
		Config: &container.Config{Hostname: "web", Tty: true},
		NetworkSettings: &container.NetworkSettings{
			Networks: map[string]*network.EndpointSettings{
				"zeta":   {IPAddress: "10.9.0.2"},
				"bridge": {IPAddress: "172.17.0.2", Gateway: "172.17.0.1"},
			},
		},
	}}
	e := newTestEngine(t, mock)

	d, err := e.ContainerDetails(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if d.State.Status != "running" || d.State.Pid != 77 || !d.State.Running {
		t.Errorf("state = %+v", d.State)
	}
	if d.HostConfig.RestartPolicy.Name != "always" || d.HostConfig.NetworkMode != "bridge" {
		t.Errorf("host config = %+v", d.HostConfig)
	}
	if d.NetworkSettings.IPAddress != "172.17.0.2" || len(d.NetworkSettings.Networks) != 2 {
		t.Errorf("network settings = %+v", d.NetworkSettings)
	}
	if !d.Config.Tty || d.Config.Hostname != "web" {
		t.Errorf("config = %+v", d.Config)
	}
}

func TestStopContainer_Timeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout *int
		want    int
	}{
		{name: "default", want: DefaultStopTimeout},
		{name: "explicit", timeout: intPtr(3), want: 3},
		{name: "zero", timeout: intPtr(0), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockDockerAPI{}
			e := newTestEngine(t, mock)
			if err := e.StopContainer(context.Background(), "abc", tt.timeout); err != nil {
				t.Fatal(err)
			}
			if mock.stopOpts.Timeout == nil || *mock.stopOpts.Timeout != tt.want {
				t.Errorf("timeout = %v, want %d", mock.stopOpts.Timeout, tt.want)
			}
		})
	}
}

func TestKillContainer_Signal(t *testing.T) {
	mock := &mockDockerAPI{}
	e := newTestEngine(t, mock)

	_ = e.KillContainer(context.Background(), "abc", nil)
	if mock.signal != "SIGKILL" {
		t.Errorf("signal = %q, want SIGKILL", mock.signal)
	}
	sig := "SIGTERM"
	_ = e.KillContainer(context.Background(), "abc", &sig)
	if mock.signal != "SIGTERM" {
		t.Errorf("signal = %q, want SIGTERM", mock.signal)
	}
}

func TestStartContainer_WrapsNotFound(t *testing.T) {
	e := newTestEngine(t, &mockDockerAPI{err: errNotFound{}})
	err := e.StartContainer(context.Background(), "ghost")
	if err == nil || !strings.Contains(err.Error(), "Container not found: ghost") {
		t.Errorf("err = %v", err)
	}
}

func TestCreateContainer(t *testing.T) {
	mock := &mockDockerAPI{}
	e := newTestEngine(t, mock)
	name := "web"

	id, err := e.CreateContainer(context.Background(), model.CreateContainerRequest{
		Name:         &name,
		Image:        "nginx",
		ExposedPorts: []string{"8080:80/tcp", "443"},
		AutoRemove:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if id != "new123" || mock.createdAs != "web" {
		t.Errorf("id = %q, name = %q", id, mock.createdAs)
	}
	if len(mock.createCfg.ExposedPorts) != 2 {
		t.Errorf("exposed = %v", mock.createCfg.ExposedPorts)
	}
	if b := mock.createHC.PortBindings["80/tcp"]; len(b) != 1 || b[0].HostPort != "8080" {
		t.Errorf("bindings = %v", mock.createHC.PortBindings)
	}
	if !mock.createHC.AutoRemove {
		t.Error("AutoRemove not passed")
	}

	if _, err := e.CreateContainer(context.Background(), model.CreateContainerRequest{}); err == nil {
		t.Error("create without image succeeded")
	}
}

func TestContainerStats_Decode(t *testing.T) {
	mock := &mockDockerAPI{stats: `{
		"id": "abc", "name": "/web", "read": "2024-01-01T00:00:00Z",
		"cpu_stats": {"cpu_usage": {"total_usage": 200}, "system_cpu_usage": 2000, "online_cpus": 2},
		"precpu_stats": {"cpu_usage": {"total_usage": 100}, "system_cpu_usage": 1000},
		"memory_stats": {"usage": 50, "limit": 100},
		"pids_stats": {"current": 3},
		"storage_stats": {}
	}`}
	e := newTestEngine(t, mock)

	s, err := e.ContainerStats(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if s.CPUStats.OnlineCPUs != 2 || s.PreCPUStats.CPUUsage.TotalUsage != 100 || s.PidsStats.Current != 3 {
		t.Errorf("sample = %+v", s)
	}

	mock.stats = `{"id": "abc", "memory_stats": {}}`
	if _, err := e.ContainerStats(context.Background(), "abc"); err == nil {
		t.Error("sample without cpu_stats accepted")
	}
}

func TestSystemStats_Counts(t *testing.T) {
	mock := &mockDockerAPI{
		info:     system.Info{Containers: 5, ContainersRunning: 3, ContainersStopped: 1, ContainersPaused: 1},
		images:   []image.Summary{{ID: "a"}, {ID: "b"}},
		networks: []network.Summary{{ID: "n1"}, {ID: "n2"}, {ID: "n3"}},
		volumes:  []*volume.Volume{{Name: "v"}},
	}
	e := newTestEngine(t, mock)
	e.sampleHost = func(ctx context.Context) (*model.HostStats, error) {
		return &model.HostStats{CPUPercent: 12.5}, nil
	}

	st, err := e.SystemStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := model.SystemStats{
		ContainersTotal: 5, ContainersRunning: 3, ContainersStopped: 1, ContainersPaused: 1,
		ImagesTotal: 2, NetworksTotal: 3, VolumesTotal: 1,
	}
	got := st
	got.Host = nil
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
	if st.Host == nil || st.Host.CPUPercent != 12.5 {
		t.Errorf("host = %+v", st.Host)
	}

	e.sampleHost = func(ctx context.Context) (*model.HostStats, error) {
		return nil, errors.New("unsupported")
	}
	st, err = e.SystemStats(context.Background())
	if err != nil || st.Host != nil {
		t.Errorf("host failure: stats = %+v, err = %v", st, err)
	}
}

func TestSystemStats_EngineError(t *testing.T) {
	e := newTestEngine(t, &mockDockerAPI{err: errors.New("daemon busy")})
	_, err := e.SystemStats(context.Background())
	if err == nil || !strings.Contains(err.Error(), "daemon busy") {
		t.Errorf("err = %v", err)
	}
}

func intPtr(v int) *int { return &v }
