package model

import (
	"errors"
	"time"
)

// CPUUsage is the cumulative CPU usage block of a stats sample.
type CPUUsage struct {
	TotalUsage        uint64   `json:"total_usage"`
	PercpuUsage       []uint64 `json:"percpu_usage,omitempty"`
	UsageInKernelmode uint64   `json:"usage_in_kernelmode"`
	UsageInUsermode   uint64   `json:"usage_in_usermode"`
}

// CPUStats holds cumulative CPU counters.
type CPUStats struct {
	CPUUsage       CPUUsage `json:"cpu_usage"`
	SystemCPUUsage uint64   `json:"system_cpu_usage"`
	OnlineCPUs     uint32   `json:"online_cpus"`
}

// MemoryStats holds memory counters.
type MemoryStats struct {
	Usage    uint64            `json:"usage"`
	MaxUsage uint64            `json:"max_usage,omitempty"`
	Limit    uint64            `json:"limit"`
	Stats    map[string]uint64 `json:"stats,omitempty"`
}

// NetworkIO holds per-interface network counters.
type NetworkIO struct {
	RxBytes   uint64 `json:"rx_bytes"`
	RxPackets uint64 `json:"rx_packets"`
	TxBytes   uint64 `json:"tx_bytes"`
	TxPackets uint64 `json:"tx_packets"`
}

// BlkioEntry is one row of the block I/O counters.
type BlkioEntry struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Op    string `json:"op"`
	Value uint64 `json:"value"`
}

// BlkioStats holds block I/O counters.
type BlkioStats struct {
	IoServiceBytesRecursive []BlkioEntry `json:"io_service_bytes_recursive"`
}

// PidsStats holds process counters.
type PidsStats struct {
	Current uint64 `json:"current"`
	Limit   uint64 `json:"limit,omitempty"`
}

// StatsSample is one point-in-time stats payload. The engine embeds the
// previous cumulative CPU counters as PreCPUStats so a single sample is enough
// to derive a rate.
type StatsSample struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Read        string               `json:"read"`
	PreRead     string               `json:"preread"`
	CPUStats    *CPUStats            `json:"cpu_stats"`
	PreCPUStats *CPUStats            `json:"precpu_stats"`
	MemoryStats MemoryStats          `json:"memory_stats"`
	Networks    map[string]NetworkIO `json:"networks,omitempty"`
	BlkioStats  BlkioStats           `json:"blkio_stats"`
	PidsStats   PidsStats            `json:"pids_stats"`
}

// Validate implements Validator.
func (s StatsSample) Validate() error {
	if s.CPUStats == nil {
		return errors.New("stats: missing cpu_stats")
	}
	if s.PreCPUStats == nil {
		return errors.New("stats: missing precpu_stats")
	}
	return nil
}

// ProcessedStats is a stats sample reduced to display values.
type ProcessedStats struct {
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryUsage   uint64    `json:"memory_usage"`
	MemoryLimit   uint64    `json:"memory_limit"`
	MemoryPercent float64   `json:"memory_percent"`
	NetworkRx     uint64    `json:"network_rx"`
	NetworkTx     uint64    `json:"network_tx"`
	BlockRead     uint64    `json:"block_read"`
	BlockWrite    uint64    `json:"block_write"`
	Pids          uint64    `json:"pids"`
}
