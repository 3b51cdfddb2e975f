package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/model"
)

// Volume filters.
const (
	VolumeFilterAll      = "all"
	VolumeFilterUsed     = "used"
	VolumeFilterUnused   = "unused"
	VolumeFilterLocal    = "local"
	VolumeFilterExternal = "external"
)

// Volume sort keys.
const (
	VolumeSortName    = "name"
	VolumeSortDriver  = "driver"
	VolumeSortCreated = "created"
	VolumeSortSize    = "size"
	VolumeSortUsage   = "usage"
)

var (
	VolumeFilters = []string{VolumeFilterAll, VolumeFilterUsed, VolumeFilterUnused, VolumeFilterLocal, VolumeFilterExternal}
	VolumeSorts   = []string{VolumeSortName, VolumeSortDriver, VolumeSortCreated, VolumeSortSize, VolumeSortUsage}
)

// VolumeAction is an action kind accepted by VolumeStore.Perform.
type VolumeAction string

const (
	VolumeCreate VolumeAction = "create"
	VolumeRemove VolumeAction = "remove"
	VolumePrune  VolumeAction = "prune"
)

// VolumeStore caches the volume list and the selected volume.
type VolumeStore struct {
	*resource[model.Volume, model.Volume]

	cmds *bridge.Commands
	opts Options
}

func NewVolumeStore(c bridge.Caller, opts Options) *VolumeStore {
	return &VolumeStore{
		resource: newResource[model.Volume, model.Volume]("volumes", VolumeFilterAll, VolumeSortName),
		cmds:     bridge.NewCommands(c),
		opts:     opts.withDefaults(),
	}
}

func (s *VolumeStore) Load(ctx context.Context) bool {
	return s.load(ctx, s.cmds.ListVolumes)
}

func (s *VolumeStore) reload(ctx context.Context) { s.Load(ctx) }

func (s *VolumeStore) LoadDetails(ctx context.Context, name string) *model.Volume {
	return s.loadDetails(ctx, name, s.cmds.VolumeDetails)
}

// Perform runs action and reloads on success. create needs
// model.CreateVolumeOptions; remove reads an optional bool force from
// options. It panics on an unknown action.
func (s *VolumeStore) Perform(ctx context.Context, action VolumeAction, name string, options any) bool {
	var fn func(ctx context.Context) error
	switch action {
	case VolumeCreate:
		name = "new"
		fn = func(ctx context.Context) error {
			o, ok := asValue[model.CreateVolumeOptions](options)
			if !ok {
				return errors.New("Create action requires CreateVolumeOptions")
			}
			_, err := s.cmds.CreateVolume(ctx, o)
			return err
		}
	case VolumeRemove:
		force, _ := options.(bool)
		fn = func(ctx context.Context) error { return s.cmds.RemoveVolume(ctx, name, force) }
	case VolumePrune:
		name = "all"
		fn = func(ctx context.Context) error {
			_, err := s.cmds.PruneVolumes(ctx)
			return err
		}
	default:
		panic(fmt.Sprintf("unknown volume action: %q", action))
	}
	return s.perform(ctx, string(action), name, fn, s.reload)
}

func (s *VolumeStore) SetFilter(f string) { s.setFilter(f) }
func (s *VolumeStore) SetSort(key string) { s.setSort(key) }

// Sorted returns the filtered, searched and sorted view of the list.
func (s *VolumeStore) Sorted() []model.Volume {
	items, filter, search, sortBy := s.snapshot()
	return FilterVolumes(items, filter, search, sortBy)
}

func (s *VolumeStore) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	s.startAutoRefresh(ctx, interval, s.opts.NewTicker, s.reload)
}

// FilterVolumes applies a filter, a search term and a sort key to items.
func FilterVolumes(items []model.Volume, filter, search, sortBy string) []model.Volume {
	var match func(model.Volume) bool
	switch filter {
	case VolumeFilterUsed:
		match = func(v model.Volume) bool { return v.RefCount() > 0 }
	case VolumeFilterUnused:
		match = func(v model.Volume) bool { return v.RefCount() <= 0 }
	case VolumeFilterLocal:
		match = func(v model.Volume) bool { return v.Driver == "local" }
	case VolumeFilterExternal:
		match = func(v model.Volume) bool { return v.Driver != "local" }
	}
	fields := func(v model.Volume) []string { return []string{v.Name, v.Driver, v.Mountpoint} }
	return view(items, match, search, fields, volumeLess(sortBy))
}

func volumeLess(sortBy string) func(a, b model.Volume) bool {
	switch sortBy {
	case VolumeSortName:
		return func(a, b model.Volume) bool { return a.Name < b.Name }
	case VolumeSortDriver:
		return func(a, b model.Volume) bool { return byString(a.Driver, b.Driver, a.Name, b.Name) }
	case VolumeSortCreated:
		return func(a, b model.Volume) bool {
			return byNumberDesc(createdNanos(a.CreatedAt), createdNanos(b.CreatedAt), a.Name, b.Name)
		}
	case VolumeSortSize:
		return func(a, b model.Volume) bool { return byNumberDesc(a.Size(), b.Size(), a.Name, b.Name) }
	case VolumeSortUsage:
		return func(a, b model.Volume) bool { return byNumberDesc(a.RefCount(), b.RefCount(), a.Name, b.Name) }
	}
	return nil
}
