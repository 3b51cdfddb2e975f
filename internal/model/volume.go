package model

import "errors"

// VolumeUsageData carries size and reference count when the engine computed them.
type VolumeUsageData struct {
	RefCount int64 `json:"ref_count"`
	Size     int64 `json:"size"`
}

// Volume is returned by get_volumes and get_volume_details.
type Volume struct {
	Name       string            `json:"name"`
	Driver     string            `json:"driver"`
	Mountpoint string            `json:"mountpoint"`
	CreatedAt  string            `json:"created_at"`
	Scope      string            `json:"scope"`
	Status     map[string]string `json:"status,omitempty"`
	Labels     map[string]string `json:"labels"`
	Options    map[string]string `json:"options"`
	UsageData  *VolumeUsageData  `json:"usage_data,omitempty"`
}

// Validate implements Validator.
func (v Volume) Validate() error {
	if v.Name == "" {
		return errors.New("volume: missing name")
	}
	return nil
}

// RefCount returns the usage reference count, or 0 when unknown.
func (v Volume) RefCount() int64 {
	if v.UsageData == nil {
		return 0
	}
	return v.UsageData.RefCount
}

// Size returns the usage size in bytes, or 0 when unknown.
func (v Volume) Size() int64 {
	if v.UsageData == nil || v.UsageData.Size < 0 {
		return 0
	}
	return v.UsageData.Size
}

// CreateVolumeOptions is the argument of create_volume_cmd.
type CreateVolumeOptions struct {
	Name       string            `json:"name,omitempty"`
	Driver     string            `json:"driver,omitempty"`
	DriverOpts map[string]string `json:"driver_opts,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
}

// VolumePruneResult is returned by prune_volumes_cmd.
type VolumePruneResult struct {
	VolumesDeleted []string `json:"volumes_deleted"`
	SpaceReclaimed uint64   `json:"space_reclaimed"`
}
