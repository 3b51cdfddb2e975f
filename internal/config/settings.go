package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Settings categories as they appear in the persisted blob.
const (
	CategoryDocker      = "docker"
	CategoryApplication = "application"
	CategoryResources   = "resources"
	CategorySecurity    = "security"
)

// DefaultDockerHost is the local daemon socket.
const DefaultDockerHost = "unix:///var/run/docker.sock"

// Categories lists every settings category in display order.
var Categories = []string{CategoryDocker, CategoryApplication, CategoryResources, CategorySecurity}

// SettingsVersion is written to new settings blobs.
const SettingsVersion = "1.0.0"

// DockerSettings holds engine connection parameters.
type DockerSettings struct {
	Host              string `json:"host"`
	ConnectionTimeout int    `json:"connectionTimeout"` // seconds
	AutoReconnect     bool   `json:"autoReconnect"`
	RetryAttempts     int    `json:"retryAttempts"`
	RetryDelay        int    `json:"retryDelay"` // ms
}

// ApplicationSettings holds UI preferences and refresh intervals (ms).
type ApplicationSettings struct {
	Theme                    string `json:"theme"` // light | dark | auto
	AutoRefreshInterval      int    `json:"autoRefreshInterval"`
	ContainerRefreshInterval int    `json:"containerRefreshInterval"`
	ImageRefreshInterval     int    `json:"imageRefreshInterval"`
	VolumeRefreshInterval    int    `json:"volumeRefreshInterval"`
	NetworkRefreshInterval   int    `json:"networkRefreshInterval"`
	DefaultContainerView     string `json:"defaultContainerView"` // all | running
	Language                 string `json:"language"`
	EnableNotifications      bool   `json:"enableNotifications"`
	CompactView              bool   `json:"compactView"`
}

// ResourceSettings holds cleanup policy and warning thresholds.
type ResourceSettings struct {
	AutoRemoveContainers    bool   `json:"autoRemoveContainers"`
	DefaultImagePullPolicy  string `json:"defaultImagePullPolicy"` // always | missing | never
	EnableImageAutoCleanup  bool   `json:"enableImageAutoCleanup"`
	ImageCleanupDays        int    `json:"imageCleanupDays"`
	EnableVolumeAutoCleanup bool   `json:"enableVolumeAutoCleanup"`
	VolumeCleanupDays       int    `json:"volumeCleanupDays"`
	MaxContainerLogs        int    `json:"maxContainerLogs"`
	EnableResourceWarnings  bool   `json:"enableResourceWarnings"`
	CPUWarningThreshold     int    `json:"cpuWarningThreshold"`
	MemoryWarningThreshold  int    `json:"memoryWarningThreshold"`
	DiskWarningThreshold    int    `json:"diskWarningThreshold"`
}

// SecuritySettings holds audit and privacy toggles.
type SecuritySettings struct {
	EnableAuditLogging          bool `json:"enableAuditLogging"`
	AuditLogRetentionDays       int  `json:"auditLogRetentionDays"`
	EnableOperationConfirmation bool `json:"enableOperationConfirmation"`
	AllowDangerousOperations    bool `json:"allowDangerousOperations"`
	EnableTelemetry             bool `json:"enableTelemetry"`
	DataRetentionDays           int  `json:"dataRetentionDays"`
	ExportIncludeCredentials    bool `json:"exportIncludeCredentials"`
}

// Settings is the in-app settings object persisted in the key-value store.
type Settings struct {
	Docker       DockerSettings      `json:"docker"`
	Application  ApplicationSettings `json:"application"`
	Resources    ResourceSettings    `json:"resources"`
	Security     SecuritySettings    `json:"security"`
	Version      string              `json:"version"`
	LastModified int64               `json:"lastModified"` // unix ms
}

// DefaultSettings returns the default settings stamped with now.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		Docker: DockerSettings{
			Host:              DefaultDockerHost,
			ConnectionTimeout: 30,
			AutoReconnect:     true,
			RetryAttempts:     3,
			RetryDelay:        2000,
		},
		Application: ApplicationSettings{
			Theme:                    "auto",
			AutoRefreshInterval:      5000,
			ContainerRefreshInterval: 5000,
			ImageRefreshInterval:     10000,
			VolumeRefreshInterval:    15000,
			NetworkRefreshInterval:   15000,
			DefaultContainerView:     "all",
			Language:                 "en",
			EnableNotifications:      true,
			CompactView:              false,
		},
		Resources: ResourceSettings{
			AutoRemoveContainers:    false,
			DefaultImagePullPolicy:  "missing",
			EnableImageAutoCleanup:  false,
			ImageCleanupDays:        30,
			EnableVolumeAutoCleanup: false,
			VolumeCleanupDays:       30,
			MaxContainerLogs:        1000,
			EnableResourceWarnings:  true,
			CPUWarningThreshold:     80,
			MemoryWarningThreshold:  80,
			DiskWarningThreshold:    80,
		},
		Security: SecuritySettings{
			EnableAuditLogging:          false,
			AuditLogRetentionDays:       90,
			EnableOperationConfirmation: true,
			AllowDangerousOperations:    false,
			EnableTelemetry:             true,
			DataRetentionDays:           365,
			ExportIncludeCredentials:    false,
		},
		Version:      SettingsVersion,
		LastModified: now.UnixMilli(),
	}
}

// Redacted returns a copy with connection credentials cleared.
func (s Settings) Redacted() Settings {
	s.Docker.Host = ""
	return s
}

// Interval converts a millisecond setting to a duration.
func Interval(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Summary is a compact view of the most relevant settings.
type Summary struct {
	DockerHost    string `json:"dockerHost"`
	Theme         string `json:"theme"`
	AutoRefresh   int    `json:"autoRefresh"`
	Notifications bool   `json:"notifications"`
	AuditLogging  bool   `json:"auditLogging"`
	LastModified  string `json:"lastModified"`
}

// Summary returns the settings summary with lastModified rendered in local time.
func (s Settings) Summary() Summary {
	return Summary{
		DockerHost:    s.Docker.Host,
		Theme:         s.Application.Theme,
		AutoRefresh:   s.Application.AutoRefreshInterval,
		Notifications: s.Application.EnableNotifications,
		AuditLogging:  s.Security.EnableAuditLogging,
		LastModified:  time.UnixMilli(s.LastModified).Local().Format("2006-01-02 15:04:05"),
	}
}

// ParsePartial decodes a settings blob into a generic object. Anything other
// than a JSON object is rejected.
func ParsePartial(data []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid settings format: expected object, got %s", jsonKind(v))
	}
	return m, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
