package model

import "errors"

// UntaggedRef is the repo tag the engine reports for dangling images.
const UntaggedRef = "<none>:<none>"

// Image is the summary row returned by get_images.
type Image struct {
	ID          string            `json:"id"`
	ParentID    string            `json:"parent_id"`
	RepoTags    []string          `json:"repo_tags"`
	RepoDigests []string          `json:"repo_digests"`
	Created     int64             `json:"created"`
	Size        int64             `json:"size"`
	SharedSize  int64             `json:"shared_size"`
	Labels      map[string]string `json:"labels"`
	Containers  int64             `json:"containers"`
}

// Validate implements Validator.
func (i Image) Validate() error {
	if i.ID == "" {
		return errors.New("image: missing id")
	}
	return nil
}

// IsTagged reports whether the image has at least one real repo tag.
func (i Image) IsTagged() bool {
	if len(i.RepoTags) == 0 {
		return false
	}
	for _, t := range i.RepoTags {
		if t == UntaggedRef {
			return false
		}
	}
	return true
}

// ImageConfig is the subset of an image's config shown in the UI.
type ImageConfig struct {
	User         string            `json:"user"`
	Env          []string          `json:"env"`
	Cmd          []string          `json:"cmd"`
	Entrypoint   []string          `json:"entrypoint"`
	WorkingDir   string            `json:"working_dir"`
	ExposedPorts []string          `json:"exposed_ports"`
	Labels       map[string]string `json:"labels"`
}

// RootFS lists the layers of an image.
type RootFS struct {
	Type   string   `json:"type"`
	Layers []string `json:"layers"`
}

// ImageDetails is the inspect payload for a single image.
type ImageDetails struct {
	ID            string      `json:"id"`
	RepoTags      []string    `json:"repo_tags"`
	RepoDigests   []string    `json:"repo_digests"`
	Parent        string      `json:"parent"`
	Comment       string      `json:"comment"`
	Created       string      `json:"created"`
	DockerVersion string      `json:"docker_version"`
	Author        string      `json:"author"`
	Config        ImageConfig `json:"config"`
	Architecture  string      `json:"architecture"`
	Os            string      `json:"os"`
	Size          int64       `json:"size"`
	RootFS        RootFS      `json:"root_fs"`
}

// Validate implements Validator.
func (d ImageDetails) Validate() error {
	if d.ID == "" {
		return errors.New("image details: missing id")
	}
	return nil
}
