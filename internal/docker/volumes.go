package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/volume"

	"github.com/kostyay/docsee/internal/model"
)

// ListVolumes lists every volume.
func (e *Engine) ListVolumes(ctx context.Context) ([]model.Volume, error) {
	cli, err := e.client()
	if err != nil {
		return nil, err
	}
	resp, err := cli.VolumeList(ctx, volume.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("volume list: %w", err)
	}
	out := make([]model.Volume, 0, len(resp.Volumes))
	for _, v := range resp.Volumes {
		if v == nil {
			continue
		}
		out = append(out, volumeFromEngine(*v))
	}
	return out, nil
}

func volumeFromEngine(v volume.Volume) model.Volume {
	mv := model.Volume{
		Name:       v.Name,
		Driver:     v.Driver,
		Mountpoint: v.Mountpoint,
		CreatedAt:  v.CreatedAt,
		Scope:      v.Scope,
		Labels:     v.Labels,
		Options:    v.Options,
	}
	if len(v.Status) > 0 {
		mv.Status = make(map[string]string, len(v.Status))
		for k, val := range v.Status {
			mv.Status[k] = fmt.Sprint(val)
		}
	}
	if v.UsageData != nil {
		mv.UsageData = &model.VolumeUsageData{RefCount: v.UsageData.RefCount, Size: v.UsageData.Size}
	}
	return mv
}

// VolumeDetails inspects one volume.
func (e *Engine) VolumeDetails(ctx context.Context, name string) (model.Volume, error) {
	cli, err := e.client()
	if err != nil {
		return model.Volume{}, err
	}
	v, err := cli.VolumeInspect(ctx, name)
	if err != nil {
		return model.Volume{}, fmt.Errorf("volume inspect: %w", notFound(err, "Volume", name))
	}
	return volumeFromEngine(v), nil
}

// CreateVolume creates a volume. An empty name lets the engine pick one.
func (e *Engine) CreateVolume(ctx context.Context, opts model.CreateVolumeOptions) (model.Volume, error) {
	cli, err := e.client()
	if err != nil {
		return model.Volume{}, err
	}
	v, err := cli.VolumeCreate(ctx, volume.CreateOptions{
		Name:       opts.Name,
		Driver:     opts.Driver,
		DriverOpts: opts.DriverOpts,
		Labels:     opts.Labels,
	})
	if err != nil {
		return model.Volume{}, fmt.Errorf("volume create: %w", err)
	}
	return volumeFromEngine(v), nil
}

// RemoveVolume deletes a volume.
func (e *Engine) RemoveVolume(ctx context.Context, name string, force bool) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	if err := cli.VolumeRemove(ctx, name, force); err != nil {
		return fmt.Errorf("volume remove: %w", notFound(err, "Volume", name))
	}
	return nil
}

// PruneVolumes deletes every unused volume.
func (e *Engine) PruneVolumes(ctx context.Context) (model.VolumePruneResult, error) {
	cli, err := e.client()
	if err != nil {
		return model.VolumePruneResult{}, err
	}
	rep, err := cli.VolumesPrune(ctx, filters.NewArgs())
	if err != nil {
		return model.VolumePruneResult{}, fmt.Errorf("volume prune: %w", err)
	}
	return model.VolumePruneResult{
		VolumesDeleted: nonNil(rep.VolumesDeleted),
		SpaceReclaimed: rep.SpaceReclaimed,
	}, nil
}
