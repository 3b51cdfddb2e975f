package model

import (
	"errors"
	"strings"
)

// Container state values reported by the engine.
const (
	StateRunning    = "running"
	StateExited     = "exited"
	StateCreated    = "created"
	StatePaused     = "paused"
	StateRestarting = "restarting"
	StateRemoving   = "removing"
	StateDead       = "dead"
)

// ContainerPort is one port binding of a container.
type ContainerPort struct {
	IP          *string `json:"ip,omitempty"`
	PrivatePort uint16  `json:"private_port"`
	PublicPort  *uint16 `json:"public_port,omitempty"`
	Type        string  `json:"type"`
}

// Container is the summary row returned by list_containers_cmd.
type Container struct {
	ID         string            `json:"id"`
	Names      []string          `json:"names"`
	Image      string            `json:"image"`
	ImageID    string            `json:"image_id"`
	Command    string            `json:"command"`
	Created    int64             `json:"created"`
	State      string            `json:"state"`
	Status     string            `json:"status"`
	Ports      []ContainerPort   `json:"ports"`
	Labels     map[string]string `json:"labels"`
	SizeRw     *int64            `json:"size_rw,omitempty"`
	SizeRootFs *int64            `json:"size_root_fs,omitempty"`
}

// Validate implements Validator.
func (c Container) Validate() error {
	if c.ID == "" {
		return errors.New("container: missing id")
	}
	return nil
}

// Name returns the first name without the leading "/", or "" if unnamed.
func (c Container) Name() string {
	if len(c.Names) == 0 {
		return ""
	}
	return strings.TrimPrefix(c.Names[0], "/")
}

// IsRunning reports whether the container is in the running state.
func (c Container) IsRunning() bool {
	return c.State == StateRunning
}

// ContainerState is the runtime state block of an inspect payload.
type ContainerState struct {
	Status     string `json:"status"`
	Running    bool   `json:"running"`
	Paused     bool   `json:"paused"`
	Restarting bool   `json:"restarting"`
	OOMKilled  bool   `json:"oom_killed"`
	Dead       bool   `json:"dead"`
	Pid        int64  `json:"pid"`
	ExitCode   int64  `json:"exit_code"`
	Error      string `json:"error"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Health     string `json:"health,omitempty"`
}

// Mount describes a filesystem mount inside a container.
type Mount struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
	RW          bool   `json:"rw"`
}

// ContainerConfig is the subset of the container config shown in the UI.
type ContainerConfig struct {
	Hostname   string            `json:"hostname"`
	User       string            `json:"user"`
	Env        []string          `json:"env"`
	Cmd        []string          `json:"cmd"`
	Entrypoint []string          `json:"entrypoint"`
	Image      string            `json:"image"`
	WorkingDir string            `json:"working_dir"`
	Labels     map[string]string `json:"labels"`
	Tty        bool              `json:"tty"`
}

// RestartPolicy mirrors the engine's restart policy.
type RestartPolicy struct {
	Name              string `json:"name"`
	MaximumRetryCount int    `json:"maximum_retry_count"`
}

// HostConfig is the subset of the host config shown in the UI.
type HostConfig struct {
	NetworkMode   string        `json:"network_mode"`
	RestartPolicy RestartPolicy `json:"restart_policy"`
	Privileged    bool          `json:"privileged"`
	Binds         []string      `json:"binds"`
	AutoRemove    bool          `json:"auto_remove"`
}

// EndpointSettings describes a container's attachment to one network.
type EndpointSettings struct {
	NetworkID   string   `json:"network_id"`
	EndpointID  string   `json:"endpoint_id"`
	Gateway     string   `json:"gateway"`
	IPAddress   string   `json:"ip_address"`
	IPPrefixLen int      `json:"ip_prefix_len"`
	MacAddress  string   `json:"mac_address"`
	Aliases     []string `json:"aliases,omitempty"`
}

// NetworkSettings is the network block of an inspect payload.
type NetworkSettings struct {
	IPAddress  string                      `json:"ip_address"`
	Gateway    string                      `json:"gateway"`
	MacAddress string                      `json:"mac_address"`
	Ports      map[string][]PortBinding    `json:"ports,omitempty"`
	Networks   map[string]EndpointSettings `json:"networks"`
}

// PortBinding is a host side binding of a container port.
type PortBinding struct {
	HostIP   string `json:"host_ip"`
	HostPort string `json:"host_port"`
}

// ContainerDetails is the inspect payload for a single container.
type ContainerDetails struct {
	ID              string          `json:"id"`
	Created         string          `json:"created"`
	Path            string          `json:"path"`
	Args            []string        `json:"args"`
	State           ContainerState  `json:"state"`
	Image           string          `json:"image"`
	Name            string          `json:"name"`
	RestartCount    int64           `json:"restart_count"`
	Driver          string          `json:"driver"`
	Platform        string          `json:"platform"`
	Mounts          []Mount         `json:"mounts"`
	Config          ContainerConfig `json:"config"`
	HostConfig      HostConfig      `json:"host_config"`
	NetworkSettings NetworkSettings `json:"network_settings"`
	SizeRw          *int64          `json:"size_rw,omitempty"`
	SizeRootFs      *int64          `json:"size_root_fs,omitempty"`
}

// Validate implements Validator.
func (d ContainerDetails) Validate() error {
	if d.ID == "" {
		return errors.New("container details: missing id")
	}
	return nil
}

// CreateContainerRequest is the argument of create_container_cmd.
type CreateContainerRequest struct {
	Name         *string           `json:"name,omitempty"`
	Image        string            `json:"image"`
	Cmd          []string          `json:"cmd,omitempty"`
	Env          []string          `json:"env,omitempty"`
	WorkingDir   *string           `json:"working_dir,omitempty"`
	ExposedPorts []string          `json:"exposed_ports,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"`
	AutoRemove   bool              `json:"auto_remove,omitempty"`
	Binds        []string          `json:"binds,omitempty"`
	NetworkMode  string            `json:"network_mode,omitempty"`
}

// Validate implements Validator.
func (r CreateContainerRequest) Validate() error {
	if strings.TrimSpace(r.Image) == "" {
		return errors.New("create container: image is required")
	}
	return nil
}

// ContainerProcesses is the result of get_container_processes_cmd.
type ContainerProcesses struct {
	Titles    []string   `json:"titles"`
	Processes [][]string `json:"processes"`
}

// Log streams.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// LogLine is one line of container output.
type LogLine struct {
	Timestamp *string `json:"timestamp,omitempty"`
	Stream    string  `json:"stream"`
	Content   string  `json:"content"`
}

// Validate implements Validator.
func (l LogLine) Validate() error {
	if l.Stream != StreamStdout && l.Stream != StreamStderr {
		return errors.New("log line: stream must be stdout or stderr")
	}
	return nil
}

// Key returns the identity used to de-duplicate polled log windows.
func (l LogLine) Key() LogKey {
	k := LogKey{Content: l.Content}
	if l.Timestamp != nil {
		k.Timestamp = *l.Timestamp
		k.HasTimestamp = true
	}
	return k
}

// LogKey identifies a log line by content and timestamp.
type LogKey struct {
	Content      string
	Timestamp    string
	HasTimestamp bool
}
