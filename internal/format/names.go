package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kostyay/docsee/internal/model"
)

// ParseImageTag splits an image reference at the last colon. A missing tag
// defaults to "latest".
func ParseImageTag(image string) (name, tag string) {
	idx := strings.LastIndex(image, ":")
	if idx == -1 {
		return image, "latest"
	}
	return image[:idx], image[idx+1:]
}

// ImageDisplayName returns "name:tag" with the default tag filled in.
func ImageDisplayName(image string) string {
	name, tag := ParseImageTag(image)
	return name + ":" + tag
}

// ImageRowName returns the first repo tag of an image, or its short ID.
func ImageRowName(img model.Image) string {
	if len(img.RepoTags) > 0 && img.RepoTags[0] != model.UntaggedRef {
		return img.RepoTags[0]
	}
	return ShortID(img.ID)
}

// ContainerDisplayName returns the first name without the leading "/", or
// the truncated ID when the container has no names.
func ContainerDisplayName(c model.Container) string {
	if len(c.Names) > 0 {
		return strings.TrimPrefix(c.Names[0], "/")
	}
	return TruncateString(c.ID, 12)
}

// ContainerName returns the first name without the leading "/" or "Unnamed".
func ContainerName(names []string) string {
	if len(names) == 0 {
		return "Unnamed"
	}
	return strings.TrimPrefix(names[0], "/")
}

// ContainerStatus renders a state and the engine's status line for display.
func ContainerStatus(state, status string) string {
	switch state {
	case model.StateRunning:
		return "Running " + status
	case model.StateExited:
		return "Exited " + status
	case model.StatePaused:
		return "Paused"
	case model.StateRestarting:
		return "Restarting"
	case model.StateRemoving:
		return "Removing"
	case model.StateCreated:
		return "Created"
	case model.StateDead:
		return "Dead"
	}
	if status != "" {
		return status
	}
	if state != "" {
		return state
	}
	return "Unknown"
}

// Ports formats port bindings as "ip:public:private/type", comma separated.
func Ports(ports []model.ContainerPort) string {
	if len(ports) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(ports))
	for _, p := range ports {
		if p.PublicPort != nil && *p.PublicPort != 0 {
			ip := ""
			if p.IP != nil && *p.IP != "" && *p.IP != "0.0.0.0" {
				ip = *p.IP + ":"
			}
			parts = append(parts, fmt.Sprintf("%s%d:%d/%s", ip, *p.PublicPort, p.PrivatePort, p.Type))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d/%s", p.PrivatePort, p.Type))
	}
	return strings.Join(parts, ", ")
}

var (
	containerNameRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
	imageTagRe      = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_.-]*$`)
)

// IsValidContainerName reports whether name is accepted by the engine.
func IsValidContainerName(name string) bool {
	return containerNameRe.MatchString(name)
}

// IsValidImageTag reports whether tag is a syntactically valid image tag.
func IsValidImageTag(tag string) bool {
	return imageTagRe.MatchString(tag) && !strings.Contains(tag, "..")
}
