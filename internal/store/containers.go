package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/model"
)

// Container filters.
const (
	ContainerFilterAll     = "all"
	ContainerFilterRunning = "running"
	ContainerFilterStopped = "stopped"
)

// Container sort keys.
const (
	ContainerSortName    = "name"
	ContainerSortStatus  = "status"
	ContainerSortCreated = "created"
	ContainerSortImage   = "image"
)

var (
	ContainerFilters = []string{ContainerFilterAll, ContainerFilterRunning, ContainerFilterStopped}
	ContainerSorts   = []string{ContainerSortName, ContainerSortStatus, ContainerSortCreated, ContainerSortImage}
)

// ContainerAction is an action kind accepted by ContainerStore.Perform.
type ContainerAction string

const (
	ContainerStart   ContainerAction = "start"
	ContainerStop    ContainerAction = "stop"
	ContainerRestart ContainerAction = "restart"
	ContainerRemove  ContainerAction = "remove"
	ContainerKill    ContainerAction = "kill"
	ContainerPause   ContainerAction = "pause"
	ContainerUnpause ContainerAction = "unpause"
	ContainerRename  ContainerAction = "rename"
)

// ContainerActionOptions carries the optional arguments of an action.
type ContainerActionOptions struct {
	Timeout       *int
	Signal        string
	Force         bool
	RemoveVolumes bool
	NewName       string
}

// ContainerStore caches the container list and the selected container.
type ContainerStore struct {
	*resource[model.Container, model.ContainerDetails]

	cmds *bridge.Commands
	opts Options

	mu        sync.RWMutex
	all       bool
	stats     *model.StatsSample
	processes *model.ContainerProcesses
}

// NewContainerStore creates a store listing all containers, sorted by name.
func NewContainerStore(c bridge.Caller, opts Options) *ContainerStore {
	return &ContainerStore{
		resource: newResource[model.Container, model.ContainerDetails]("containers", ContainerFilterAll, ContainerSortName),
		cmds:     bridge.NewCommands(c),
		opts:     opts.withDefaults(),
		all:      true,
	}
}

// Load replaces the list. all includes stopped containers.
func (s *ContainerStore) Load(ctx context.Context, all bool) bool {
	s.mu.Lock()
	s.all = all
	s.mu.Unlock()
	return s.load(ctx, func(ctx context.Context) ([]model.Container, error) {
		return s.cmds.ListContainers(ctx, all, false)
	})
}

// Reload repeats the last Load with the same all flag.
func (s *ContainerStore) Reload(ctx context.Context) {
	s.mu.RLock()
	all := s.all
	s.mu.RUnlock()
	s.Load(ctx, all)
}

// LoadDetails fetches inspect data for id.
func (s *ContainerStore) LoadDetails(ctx context.Context, id string) *model.ContainerDetails {
	return s.loadDetails(ctx, id, s.cmds.ContainerDetails)
}

// LoadStats fetches one stats sample for id.
func (s *ContainerStore) LoadStats(ctx context.Context, id string) *model.StatsSample {
	sample, err := s.cmds.ContainerStats(ctx, id)
	if err != nil {
		s.setError(bridge.ErrorMessage(err))
		return nil
	}
	s.mu.Lock()
	s.stats = &sample
	s.mu.Unlock()
	return &sample
}

// LoadProcesses fetches the process table of id.
func (s *ContainerStore) LoadProcesses(ctx context.Context, id string) *model.ContainerProcesses {
	p, err := s.cmds.ContainerProcesses(ctx, id)
	if err != nil {
		s.setError(bridge.ErrorMessage(err))
		return nil
	}
	s.mu.Lock()
	s.processes = &p
	s.mu.Unlock()
	return &p
}

// Stats returns the last loaded stats sample, or nil.
func (s *ContainerStore) Stats() *model.StatsSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	v := *s.stats
	return &v
}

// Processes returns the last loaded process table, or nil.
func (s *ContainerStore) Processes() *model.ContainerProcesses {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.processes == nil {
		return nil
	}
	v := *s.processes
	return &v
}

// Perform runs action on id and reloads the list on success. It panics on an
// unknown action.
func (s *ContainerStore) Perform(ctx context.Context, action ContainerAction, id string, o ContainerActionOptions) bool {
	var fn func(ctx context.Context) error
	switch action {
	case ContainerStart:
		fn = func(ctx context.Context) error { return s.cmds.StartContainer(ctx, id) }
	case ContainerStop:
		fn = func(ctx context.Context) error { return s.cmds.StopContainer(ctx, id, o.Timeout) }
	case ContainerRestart:
		fn = func(ctx context.Context) error { return s.cmds.RestartContainer(ctx, id, o.Timeout) }
	case ContainerRemove:
		fn = func(ctx context.Context) error { return s.cmds.RemoveContainer(ctx, id, o.Force, o.RemoveVolumes) }
	case ContainerKill:
		fn = func(ctx context.Context) error { return s.cmds.KillContainer(ctx, id, o.Signal) }
	case ContainerPause:
		fn = func(ctx context.Context) error { return s.cmds.PauseContainer(ctx, id) }
	case ContainerUnpause:
		fn = func(ctx context.Context) error { return s.cmds.UnpauseContainer(ctx, id) }
	case ContainerRename:
		fn = func(ctx context.Context) error { return s.cmds.RenameContainer(ctx, id, o.NewName) }
	default:
		panic(fmt.Sprintf("unknown container action: %q", action))
	}
	return s.perform(ctx, string(action), id, fn, s.Reload)
}

// Create creates a container and reloads the list. It returns the new id, or
// "" on failure.
func (s *ContainerStore) Create(ctx context.Context, req model.CreateContainerRequest) string {
	var id string
	s.perform(ctx, "create", "new", func(ctx context.Context) error {
		var err error
		id, err = s.cmds.CreateContainer(ctx, req)
		return err
	}, s.Reload)
	return id
}

// SetFilter selects one of ContainerFilters.
func (s *ContainerStore) SetFilter(f string) { s.setFilter(f) }

// SetSort selects one of ContainerSorts.
func (s *ContainerStore) SetSort(key string) { s.setSort(key) }

// Sorted returns the filtered, searched and sorted view of the list.
func (s *ContainerStore) Sorted() []model.Container {
	items, filter, search, sortBy := s.snapshot()
	return FilterContainers(items, filter, search, sortBy)
}

// Counts returns the number of running and stopped containers.
func (s *ContainerStore) Counts() (running, stopped int) {
	for _, c := range s.Items() {
		switch {
		case c.IsRunning():
			running++
		case isStopped(c):
			stopped++
		}
	}
	return running, stopped
}

// StartAutoRefresh reloads the list every interval.
func (s *ContainerStore) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	s.startAutoRefresh(ctx, interval, s.opts.NewTicker, s.Reload)
}

func isStopped(c model.Container) bool {
	return c.State == model.StateExited || c.State == model.StateCreated
}

// FilterContainers applies a filter, a search term and a sort key to items.
func FilterContainers(items []model.Container, filter, search, sortBy string) []model.Container {
	var match func(model.Container) bool
	switch filter {
	case ContainerFilterRunning:
		match = model.Container.IsRunning
	case ContainerFilterStopped:
		match = isStopped
	}
	return view(items, match, search, containerFields, containerLess(sortBy))
}

func containerFields(c model.Container) []string {
	return append(append([]string{}, c.Names...), c.Image, c.ID)
}

func containerSortName(c model.Container) string {
	if n := c.Name(); n != "" {
		return n
	}
	return c.ID
}

func containerLess(sortBy string) func(a, b model.Container) bool {
	switch sortBy {
	case ContainerSortName:
		return func(a, b model.Container) bool {
			return byString(containerSortName(a), containerSortName(b), a.ID, b.ID)
		}
	case ContainerSortStatus:
		return func(a, b model.Container) bool { return byString(a.State, b.State, a.ID, b.ID) }
	case ContainerSortCreated:
		return func(a, b model.Container) bool { return byNumberDesc(a.Created, b.Created, a.ID, b.ID) }
	case ContainerSortImage:
		return func(a, b model.Container) bool { return byString(a.Image, b.Image, a.ID, b.ID) }
	}
	return nil
}
