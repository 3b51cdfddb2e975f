package model

import (
	"errors"
	"strings"
)

// Built-in networks the engine creates on every host.
var SystemNetworks = []string{"bridge", "host", "none"}

// IsSystemNetwork reports whether name is one of the engine's built-in networks.
func IsSystemNetwork(name string) bool {
	for _, n := range SystemNetworks {
		if n == name {
			return true
		}
	}
	return false
}

// IPAMConfig is one address pool of a network.
type IPAMConfig struct {
	Subnet       string            `json:"subnet,omitempty"`
	IPRange      string            `json:"ip_range,omitempty"`
	Gateway      string            `json:"gateway,omitempty"`
	AuxAddresses map[string]string `json:"aux_addresses,omitempty"`
}

// IPAM is the address management block of a network.
type IPAM struct {
	Driver  string            `json:"driver"`
	Options map[string]string `json:"options,omitempty"`
	Config  []IPAMConfig      `json:"config"`
}

// NetworkContainer is a container endpoint attached to a network.
type NetworkContainer struct {
	Name        string `json:"name"`
	EndpointID  string `json:"endpoint_id"`
	MacAddress  string `json:"mac_address"`
	IPv4Address string `json:"ipv4_address"`
	IPv6Address string `json:"ipv6_address"`
}

// Network is returned by get_networks and get_network_details.
type Network struct {
	Name       string                      `json:"name"`
	ID         string                      `json:"id"`
	Created    string                      `json:"created"`
	Scope      string                      `json:"scope"`
	Driver     string                      `json:"driver"`
	EnableIPv6 bool                        `json:"enable_ipv6"`
	IPAM       IPAM                        `json:"ipam"`
	Internal   bool                        `json:"internal"`
	Attachable bool                        `json:"attachable"`
	Ingress    bool                        `json:"ingress"`
	ConfigOnly bool                        `json:"config_only"`
	Containers map[string]NetworkContainer `json:"containers"`
	Options    map[string]string           `json:"options"`
	Labels     map[string]string           `json:"labels"`
}

// Validate implements Validator.
func (n Network) Validate() error {
	if n.ID == "" {
		return errors.New("network: missing id")
	}
	return nil
}

// Subnets returns the configured subnets of the network.
func (n Network) Subnets() []string {
	var out []string
	for _, c := range n.IPAM.Config {
		if c.Subnet != "" {
			out = append(out, c.Subnet)
		}
	}
	return out
}

// CreateNetworkOptions is the argument of create_network_cmd.
type CreateNetworkOptions struct {
	Name           string            `json:"name"`
	CheckDuplicate bool              `json:"check_duplicate,omitempty"`
	Driver         string            `json:"driver,omitempty"`
	Internal       bool              `json:"internal,omitempty"`
	Attachable     bool              `json:"attachable,omitempty"`
	Ingress        bool              `json:"ingress,omitempty"`
	IPAM           *IPAM             `json:"ipam,omitempty"`
	EnableIPv6     bool              `json:"enable_ipv6,omitempty"`
	Options        map[string]string `json:"options,omitempty"`
	Labels         map[string]string `json:"labels,omitempty"`
}

// Validate implements Validator.
func (o CreateNetworkOptions) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return errors.New("create network: name is required")
	}
	return nil
}

// EndpointIPAMConfig pins addresses for a network attachment.
type EndpointIPAMConfig struct {
	IPv4Address  string   `json:"ipv4_address,omitempty"`
	IPv6Address  string   `json:"ipv6_address,omitempty"`
	LinkLocalIPs []string `json:"link_local_ips,omitempty"`
}

// EndpointConfig is the optional endpoint configuration for connect_network_cmd.
type EndpointConfig struct {
	IPAMConfig *EndpointIPAMConfig `json:"ipam_config,omitempty"`
	Links      []string            `json:"links,omitempty"`
	Aliases    []string            `json:"aliases,omitempty"`
	MacAddress string              `json:"mac_address,omitempty"`
	DriverOpts map[string]string   `json:"driver_opts,omitempty"`
}

// ConnectNetworkOptions is the argument of connect_network_cmd.
type ConnectNetworkOptions struct {
	Container      string          `json:"container"`
	EndpointConfig *EndpointConfig `json:"endpoint_config,omitempty"`
}

// Validate implements Validator.
func (o ConnectNetworkOptions) Validate() error {
	if o.Container == "" {
		return errors.New("connect network: container is required")
	}
	return nil
}

// DisconnectNetworkOptions is the argument of disconnect_network_cmd.
type DisconnectNetworkOptions struct {
	Container string `json:"container"`
	Force     bool   `json:"force,omitempty"`
}

// Validate implements Validator.
func (o DisconnectNetworkOptions) Validate() error {
	if o.Container == "" {
		return errors.New("disconnect network: container is required")
	}
	return nil
}

// NetworkPruneResult is returned by prune_networks_cmd.
type NetworkPruneResult struct {
	NetworksDeleted []string `json:"networks_deleted"`
}
