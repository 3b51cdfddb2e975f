package model

import "errors"

// DockerVersion is the engine version block.
type DockerVersion struct {
	Version       string `json:"version"`
	APIVersion    string `json:"api_version"`
	GitCommit     string `json:"git_commit"`
	GoVersion     string `json:"go_version"`
	Os            string `json:"os"`
	Arch          string `json:"arch"`
	KernelVersion string `json:"kernel_version"`
	BuildTime     string `json:"build_time"`
}

// DockerInfo is the subset of engine info shown on the system panel.
type DockerInfo struct {
	ID                string   `json:"id"`
	Containers        int64    `json:"containers"`
	ContainersRunning int64    `json:"containers_running"`
	ContainersPaused  int64    `json:"containers_paused"`
	ContainersStopped int64    `json:"containers_stopped"`
	Images            int64    `json:"images"`
	Driver            string   `json:"driver"`
	LoggingDriver     string   `json:"logging_driver"`
	CgroupDriver      string   `json:"cgroup_driver"`
	KernelVersion     string   `json:"kernel_version"`
	OperatingSystem   string   `json:"operating_system"`
	OSType            string   `json:"os_type"`
	Architecture      string   `json:"architecture"`
	NCPU              int64    `json:"ncpu"`
	MemTotal          int64    `json:"mem_total"`
	DockerRootDir     string   `json:"docker_root_dir"`
	Name              string   `json:"name"`
	ServerVersion     string   `json:"server_version"`
	Labels            []string `json:"labels"`
	SecurityOptions   []string `json:"security_options"`
	LiveRestore       bool     `json:"live_restore_enabled"`
}

// SystemInfo is returned by get_system_info.
type SystemInfo struct {
	Version DockerVersion `json:"version"`
	Info    DockerInfo    `json:"info"`
}

// Validate implements Validator.
func (s SystemInfo) Validate() error {
	if s.Version.Version == "" && s.Info.ServerVersion == "" {
		return errors.New("system info: missing version")
	}
	return nil
}

// ConnectionStatus is returned by get_docker_connection_status.
type ConnectionStatus struct {
	Connected  bool    `json:"connected"`
	Error      *string `json:"error,omitempty"`
	Version    *string `json:"version,omitempty"`
	APIVersion *string `json:"api_version,omitempty"`
}

// HostStats holds host resource usage next to the engine counters.
type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryUsed    uint64  `json:"memory_used"`
	MemoryTotal   uint64  `json:"memory_total"`
	MemoryPercent float64 `json:"memory_percent"`
	Load1         float64 `json:"load1"`
	Load5         float64 `json:"load5"`
	Load15        float64 `json:"load15"`
}

// SystemStats is returned by get_system_stats.
type SystemStats struct {
	ContainersTotal   int64      `json:"containers_total"`
	ContainersRunning int64      `json:"containers_running"`
	ContainersStopped int64      `json:"containers_stopped"`
	ContainersPaused  int64      `json:"containers_paused"`
	ImagesTotal       int64      `json:"images_total"`
	VolumesTotal      int64      `json:"volumes_total"`
	NetworksTotal     int64      `json:"networks_total"`
	Host              *HostStats `json:"host,omitempty"`
}
