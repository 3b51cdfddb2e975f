package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/model"
)

// Network filters. The driver filters match Network.Driver exactly.
const (
	NetworkFilterAll     = "all"
	NetworkFilterUsed    = "used"
	NetworkFilterUnused  = "unused"
	NetworkFilterSystem  = "system"
	NetworkFilterCustom  = "custom"
	NetworkFilterBridge  = "bridge"
	NetworkFilterOverlay = "overlay"
	NetworkFilterHost    = "host"
	NetworkFilterMacvlan = "macvlan"
)

// Network sort keys.
const (
	NetworkSortName       = "name"
	NetworkSortDriver     = "driver"
	NetworkSortCreated    = "created"
	NetworkSortContainers = "containers"
	NetworkSortScope      = "scope"
)

var (
	NetworkFilters = []string{
		NetworkFilterAll, NetworkFilterUsed, NetworkFilterUnused, NetworkFilterSystem, NetworkFilterCustom,
		NetworkFilterBridge, NetworkFilterOverlay, NetworkFilterHost, NetworkFilterMacvlan,
	}
	NetworkSorts = []string{NetworkSortName, NetworkSortDriver, NetworkSortCreated, NetworkSortContainers, NetworkSortScope}
)

// NetworkAction is an action kind accepted by NetworkStore.Perform.
type NetworkAction string

const (
	NetworkCreate     NetworkAction = "create"
	NetworkRemove     NetworkAction = "remove"
	NetworkConnect    NetworkAction = "connect"
	NetworkDisconnect NetworkAction = "disconnect"
	NetworkPrune      NetworkAction = "prune"
)

// NetworkStore caches the network list and the selected network.
type NetworkStore struct {
	*resource[model.Network, model.Network]

	cmds *bridge.Commands
	opts Options
}

func NewNetworkStore(c bridge.Caller, opts Options) *NetworkStore {
	return &NetworkStore{
		resource: newResource[model.Network, model.Network]("networks", NetworkFilterAll, NetworkSortName),
		cmds:     bridge.NewCommands(c),
		opts:     opts.withDefaults(),
	}
}

func (s *NetworkStore) Load(ctx context.Context) bool {
	return s.load(ctx, s.cmds.ListNetworks)
}

func (s *NetworkStore) reload(ctx context.Context) { s.Load(ctx) }

func (s *NetworkStore) LoadDetails(ctx context.Context, idOrName string) *model.Network {
	return s.loadDetails(ctx, idOrName, s.cmds.NetworkDetails)
}

// Perform runs action and reloads on success. options must be
// model.CreateNetworkOptions for create, model.ConnectNetworkOptions for
// connect and model.DisconnectNetworkOptions for disconnect (values or
// pointers); anything else fails the action. create and prune ignore id.
// It panics on an unknown action.
func (s *NetworkStore) Perform(ctx context.Context, action NetworkAction, id string, options any) bool {
	var fn func(ctx context.Context) error
	switch action {
	case NetworkCreate:
		id = "new"
		fn = func(ctx context.Context) error {
			o, ok := asValue[model.CreateNetworkOptions](options)
			if !ok {
				return errors.New("Create action requires CreateNetworkOptions")
			}
			_, err := s.cmds.CreateNetwork(ctx, o)
			return err
		}
	case NetworkRemove:
		fn = func(ctx context.Context) error { return s.cmds.RemoveNetwork(ctx, id) }
	case NetworkConnect:
		fn = func(ctx context.Context) error {
			o, ok := asValue[model.ConnectNetworkOptions](options)
			if !ok {
				return errors.New("Connect action requires ConnectNetworkOptions")
			}
			return s.cmds.ConnectNetwork(ctx, id, o)
		}
	case NetworkDisconnect:
		fn = func(ctx context.Context) error {
			o, ok := asValue[model.DisconnectNetworkOptions](options)
			if !ok {
				return errors.New("Disconnect action requires DisconnectNetworkOptions")
			}
			return s.cmds.DisconnectNetwork(ctx, id, o)
		}
	case NetworkPrune:
		id = "all"
		fn = func(ctx context.Context) error {
			_, err := s.cmds.PruneNetworks(ctx)
			return err
		}
	default:
		panic(fmt.Sprintf("unknown network action: %q", action))
	}
	return s.perform(ctx, string(action), id, fn, s.reload)
}

// asValue accepts a T or a non-nil *T.
func asValue[T any](v any) (T, bool) {
	switch t := v.(type) {
	case T:
		return t, true
	case *T:
		if t != nil {
			return *t, true
		}
	}
	var zero T
	return zero, false
}

func (s *NetworkStore) SetFilter(f string) { s.setFilter(f) }
func (s *NetworkStore) SetSort(key string) { s.setSort(key) }

// Sorted returns the filtered, searched and sorted view of the list.
func (s *NetworkStore) Sorted() []model.Network {
	items, filter, search, sortBy := s.snapshot()
	return FilterNetworks(items, filter, search, sortBy)
}

func (s *NetworkStore) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	s.startAutoRefresh(ctx, interval, s.opts.NewTicker, s.reload)
}

// FilterNetworks applies a filter, a search term and a sort key to items.
func FilterNetworks(items []model.Network, filter, search, sortBy string) []model.Network {
	var match func(model.Network) bool
	switch filter {
	case NetworkFilterUsed:
		match = func(n model.Network) bool { return len(n.Containers) > 0 }
	case NetworkFilterUnused:
		match = func(n model.Network) bool { return len(n.Containers) == 0 }
	case NetworkFilterSystem:
		match = func(n model.Network) bool { return model.IsSystemNetwork(n.Name) }
	case NetworkFilterCustom:
		match = func(n model.Network) bool { return !model.IsSystemNetwork(n.Name) }
	case NetworkFilterBridge, NetworkFilterOverlay, NetworkFilterHost, NetworkFilterMacvlan:
		match = func(n model.Network) bool { return strings.EqualFold(n.Driver, filter) }
	}
	fields := func(n model.Network) []string {
		return append([]string{n.Name, n.ID, n.Driver}, n.Subnets()...)
	}
	return view(items, match, search, fields, networkLess(sortBy))
}

func networkLess(sortBy string) func(a, b model.Network) bool {
	switch sortBy {
	case NetworkSortName:
		return func(a, b model.Network) bool { return byString(a.Name, b.Name, a.ID, b.ID) }
	case NetworkSortDriver:
		return func(a, b model.Network) bool { return byString(a.Driver, b.Driver, a.ID, b.ID) }
	case NetworkSortCreated:
		return func(a, b model.Network) bool {
			return byNumberDesc(createdNanos(a.Created), createdNanos(b.Created), a.ID, b.ID)
		}
	case NetworkSortContainers:
		return func(a, b model.Network) bool {
			return byNumberDesc(int64(len(a.Containers)), int64(len(b.Containers)), a.ID, b.ID)
		}
	case NetworkSortScope:
		return func(a, b model.Network) bool { return byString(a.Scope, b.Scope, a.ID, b.ID) }
	}
	return nil
}

// createdNanos parses an RFC 3339 creation stamp; unparsable stamps sort last.
func createdNanos(s string) int64 {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0
	}
	return t.UnixNano()
}
