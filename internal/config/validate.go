package config

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	unixHostRe  = regexp.MustCompile(`^unix:///.+$`)
	tcpHostRe   = regexp.MustCompile(`^tcp://.+:\d+$`)
	httpHostRe  = regexp.MustCompile(`^https?://.+$`)
	npipeHostRe = regexp.MustCompile(`^npipe://.+$`)
)

// ValidateDockerHost returns an error message, or "" when host is usable.
func ValidateDockerHost(host string) string {
	if strings.TrimSpace(host) == "" {
		return "Docker host cannot be empty"
	}
	for _, re := range []*regexp.Regexp{unixHostRe, tcpHostRe, httpHostRe, npipeHostRe} {
		if re.MatchString(host) {
			return ""
		}
	}
	return "Invalid Docker host format"
}

// ValidateTimeout checks a connection timeout in seconds.
func ValidateTimeout(seconds int) string {
	if seconds < 1 || seconds > 300 {
		return "Connection timeout must be between 1 and 300 seconds"
	}
	return ""
}

// ValidateRefreshInterval checks a refresh interval in milliseconds.
func ValidateRefreshInterval(ms int) string {
	if ms < 1000 || ms > 300000 {
		return "Refresh interval must be between 1000 and 300000 ms"
	}
	return ""
}

// ValidateThreshold checks a warning threshold in percent.
func ValidateThreshold(pct int) string {
	if pct < 1 || pct > 100 {
		return "Threshold must be between 1 and 100"
	}
	return ""
}

// ValidateRetentionDays checks a retention or cleanup window.
func ValidateRetentionDays(days int) string {
	if days < 1 || days > 3650 {
		return "Retention days must be between 1 and 3650"
	}
	return ""
}

// Validate returns one "field: message" entry per invalid field.
func (s Settings) Validate() []string {
	var problems []string
	check := func(field, msg string) {
		if msg != "" {
			problems = append(problems, fmt.Sprintf("%s: %s", field, msg))
		}
	}

	check("docker.host", ValidateDockerHost(s.Docker.Host))
	check("docker.connectionTimeout", ValidateTimeout(s.Docker.ConnectionTimeout))

	a := s.Application
	check("application.autoRefreshInterval", ValidateRefreshInterval(a.AutoRefreshInterval))
	check("application.containerRefreshInterval", ValidateRefreshInterval(a.ContainerRefreshInterval))
	check("application.imageRefreshInterval", ValidateRefreshInterval(a.ImageRefreshInterval))
	check("application.volumeRefreshInterval", ValidateRefreshInterval(a.VolumeRefreshInterval))
	check("application.networkRefreshInterval", ValidateRefreshInterval(a.NetworkRefreshInterval))

	r := s.Resources
	check("resources.imageCleanupDays", ValidateRetentionDays(r.ImageCleanupDays))
	check("resources.volumeCleanupDays", ValidateRetentionDays(r.VolumeCleanupDays))
	check("resources.cpuWarningThreshold", ValidateThreshold(r.CPUWarningThreshold))
	check("resources.memoryWarningThreshold", ValidateThreshold(r.MemoryWarningThreshold))
	check("resources.diskWarningThreshold", ValidateThreshold(r.DiskWarningThreshold))

	check("security.auditLogRetentionDays", ValidateRetentionDays(s.Security.AuditLogRetentionDays))
	check("security.dataRetentionDays", ValidateRetentionDays(s.Security.DataRetentionDays))

	return problems
}

// WithValidIntervals replaces every refresh interval outside the accepted
// range with the matching interval of d.
func (s Settings) WithValidIntervals(d Settings) Settings {
	fix := func(v *int, def int) {
		if ValidateRefreshInterval(*v) != "" {
			*v = def
		}
	}
	a, da := &s.Application, d.Application
	fix(&a.AutoRefreshInterval, da.AutoRefreshInterval)
	fix(&a.ContainerRefreshInterval, da.ContainerRefreshInterval)
	fix(&a.ImageRefreshInterval, da.ImageRefreshInterval)
	fix(&a.VolumeRefreshInterval, da.VolumeRefreshInterval)
	fix(&a.NetworkRefreshInterval, da.NetworkRefreshInterval)
	return s
}
