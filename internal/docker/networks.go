package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/network"

	"github.com/kostyay/docsee/internal/model"
)

// ListNetworks lists every network.
func (e *Engine) ListNetworks(ctx context.Context) ([]model.Network, error) {
	cli, err := e.client()
	if err != nil {
		return nil, err
	}
	list, err := cli.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("network list: %w", err)
	}
	out := make([]model.Network, 0, len(list))
	for _, n := range list {
		out = append(out, networkFromInspect(n))
	}
	return out, nil
}

// NetworkDetails inspects one network by id or name.
func (e *Engine) NetworkDetails(ctx context.Context, idOrName string) (model.Network, error) {
	cli, err := e.client()
	if err != nil {
		return model.Network{}, err
	}
	n, err := cli.NetworkInspect(ctx, idOrName, network.InspectOptions{})
	if err != nil {
		return model.Network{}, fmt.Errorf("network inspect: %w", notFound(err, "Network", idOrName))
	}
	return networkFromInspect(n), nil
}

func networkFromInspect(n network.Inspect) model.Network {
	mn := model.Network{
		Name:       n.Name,
		ID:         n.ID,
		Scope:      n.Scope,
		Driver:     n.Driver,
		EnableIPv6: n.EnableIPv6,
		IPAM: model.IPAM{
			Driver:  n.IPAM.Driver,
			Options: n.IPAM.Options,
			Config:  make([]model.IPAMConfig, 0, len(n.IPAM.Config)),
		},
		Internal:   n.Internal,
		Attachable: n.Attachable,
		Ingress:    n.Ingress,
		ConfigOnly: n.ConfigOnly,
		Containers: make(map[string]model.NetworkContainer, len(n.Containers)),
		Options:    n.Options,
		Labels:     n.Labels,
	}
	if !n.Created.IsZero() {
		mn.Created = n.Created.Format(time.RFC3339Nano)
	}
	for _, c := range n.IPAM.Config {
		mn.IPAM.Config = append(mn.IPAM.Config, model.IPAMConfig{
			Subnet:       c.Subnet,
			IPRange:      c.IPRange,
			Gateway:      c.Gateway,
			AuxAddresses: c.AuxAddress,
		})
	}
	for id, c := range n.Containers {
		mn.Containers[id] = model.NetworkContainer{
			Name:        c.Name,
			EndpointID:  c.EndpointID,
			MacAddress:  c.MacAddress,
			IPv4Address: c.IPv4Address,
			IPv6Address: c.IPv6Address,
		}
	}
	return mn
}

// CreateNetwork creates a network and returns its id.
func (e *Engine) CreateNetwork(ctx context.Context, opts model.CreateNetworkOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	cli, err := e.client()
	if err != nil {
		return "", err
	}

	co := network.CreateOptions{
		Driver:     opts.Driver,
		Internal:   opts.Internal,
		Attachable: opts.Attachable,
		Ingress:    opts.Ingress,
		Options:    opts.Options,
		Labels:     opts.Labels,
	}
	if opts.EnableIPv6 {
		v6 := true
		co.EnableIPv6 = &v6
	}
	if opts.IPAM != nil {
		ipam := &network.IPAM{Driver: opts.IPAM.Driver, Options: opts.IPAM.Options}
		for _, c := range opts.IPAM.Config {
			ipam.Config = append(ipam.Config, network.IPAMConfig{
				Subnet:     c.Subnet,
				IPRange:    c.IPRange,
				Gateway:    c.Gateway,
				AuxAddress: c.AuxAddresses,
			})
		}
		co.IPAM = ipam
	}

	resp, err := cli.NetworkCreate(ctx, opts.Name, co)
	if err != nil {
		return "", fmt.Errorf("network create: %w", err)
	}
	return resp.ID, nil
}

// RemoveNetwork deletes a network by id or name.
func (e *Engine) RemoveNetwork(ctx context.Context, idOrName string) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	if err := cli.NetworkRemove(ctx, idOrName); err != nil {
		return fmt.Errorf("network remove: %w", notFound(err, "Network", idOrName))
	}
	return nil
}

// ConnectNetwork attaches a container to a network.
func (e *Engine) ConnectNetwork(ctx context.Context, networkID string, opts model.ConnectNetworkOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	cli, err := e.client()
	if err != nil {
		return err
	}

	var ep *network.EndpointSettings
	if c := opts.EndpointConfig; c != nil {
		ep = &network.EndpointSettings{
			Links:      c.Links,
			Aliases:    c.Aliases,
			MacAddress: c.MacAddress,
			DriverOpts: c.DriverOpts,
		}
		if ipam := c.IPAMConfig; ipam != nil {
			ep.IPAMConfig = &network.EndpointIPAMConfig{
				IPv4Address:  ipam.IPv4Address,
				IPv6Address:  ipam.IPv6Address,
				LinkLocalIPs: ipam.LinkLocalIPs,
			}
		}
	}

	if err := cli.NetworkConnect(ctx, networkID, opts.Container, ep); err != nil {
		return fmt.Errorf("network connect: %w", notFound(err, "Network", networkID))
	}
	return nil
}

// DisconnectNetwork detaches a container from a network.
func (e *Engine) DisconnectNetwork(ctx context.Context, networkID string, opts model.DisconnectNetworkOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	cli, err := e.client()
	if err != nil {
		return err
	}
	if err := cli.NetworkDisconnect(ctx, networkID, opts.Container, opts.Force); err != nil {
		return fmt.Errorf("network disconnect: %w", notFound(err, "Network", networkID))
	}
	return nil
}

// PruneNetworks deletes every unused network.
func (e *Engine) PruneNetworks(ctx context.Context) (model.NetworkPruneResult, error) {
	cli, err := e.client()
	if err != nil {
		return model.NetworkPruneResult{}, err
	}
	rep, err := cli.NetworksPrune(ctx, filters.NewArgs())
	if err != nil {
		return model.NetworkPruneResult{}, fmt.Errorf("network prune: %w", err)
	}
	return model.NetworkPruneResult{NetworksDeleted: nonNil(rep.NetworksDeleted)}, nil
}
