// Package services names the well-known services behind container ports.
package services

import (
	"strconv"
	"strings"
)

type portKey struct {
	port  uint16
	proto string // "tcp" or "udp"
}

// wellKnown covers the ports images commonly expose.
var wellKnown = map[portKey]string{
	{22, "tcp"}:    "ssh",
	{25, "tcp"}:    "smtp",
	{53, "tcp"}:    "dns",
	{53, "udp"}:    "dns",
	{80, "tcp"}:    "http",
	{123, "udp"}:   "ntp",
	{389, "tcp"}:   "ldap",
	{443, "tcp"}:   "https",
	{443, "udp"}:   "http3",
	{587, "tcp"}:   "submission",
	{1433, "tcp"}:  "mssql",
	{1521, "tcp"}:  "oracle",
	{1883, "tcp"}:  "mqtt",
	{2375, "tcp"}:  "docker",
	{2376, "tcp"}:  "docker-tls",
	{2379, "tcp"}:  "etcd",
	{3000, "tcp"}:  "grafana",
	{3306, "tcp"}:  "mysql",
	{4222, "tcp"}:  "nats",
	{5000, "tcp"}:  "registry",
	{5432, "tcp"}:  "postgresql",
	{5672, "tcp"}:  "amqp",
	{6379, "tcp"}:  "redis",
	{6443, "tcp"}:  "k8s-api",
	{8080, "tcp"}:  "http-alt",
	{8443, "tcp"}:  "https-alt",
	{8086, "tcp"}:  "influxdb",
	{9000, "tcp"}:  "minio",
	{9042, "tcp"}:  "cassandra",
	{9090, "tcp"}:  "prometheus",
	{9092, "tcp"}:  "kafka",
	{9200, "tcp"}:  "elasticsearch",
	{11211, "tcp"}: "memcached",
	{15672, "tcp"}: "rabbitmq-ui",
	{27017, "tcp"}: "mongodb",
}

// Lookup returns the service name for a port/protocol combination, or "".
func Lookup(port uint16, proto string) string {
	return wellKnown[portKey{port, strings.ToLower(proto)}]
}

// ForSpec names the service of a "80/tcp" style port spec. A spec without a
// protocol is tcp. Unparsable or unknown specs give "".
func ForSpec(spec string) string {
	num, proto, ok := strings.Cut(spec, "/")
	if !ok {
		proto = "tcp"
	}
	port, err := strconv.ParseUint(num, 10, 16)
	if err != nil {
		return ""
	}
	return Lookup(uint16(port), proto)
}
