package docker

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/docker/docker/api/types/image"

	"github.com/kostyay/docsee/internal/model"
)

// DefaultPullTag is used when pull is given no tag.
const DefaultPullTag = "latest"

// ListImages lists images; all includes intermediate layers.
func (e *Engine) ListImages(ctx context.Context, all bool) ([]model.Image, error) {
	cli, err := e.client()
	if err != nil {
		return nil, err
	}
	list, err := cli.ImageList(ctx, image.ListOptions{All: all})
	if err != nil {
		return nil, fmt.Errorf("image list: %w", err)
	}
	out := make([]model.Image, 0, len(list))
	for _, img := range list {
		out = append(out, model.Image{
			ID:          img.ID,
			ParentID:    img.ParentID,
			RepoTags:    nonNil(img.RepoTags),
			RepoDigests: nonNil(img.RepoDigests),
			Created:     img.Created,
			Size:        img.Size,
			SharedSize:  img.SharedSize,
			Labels:      img.Labels,
			Containers:  img.Containers,
		})
	}
	return out, nil
}

// ImageDetails inspects one image.
func (e *Engine) ImageDetails(ctx context.Context, id string) (model.ImageDetails, error) {
	cli, err := e.client()
	if err != nil {
		return model.ImageDetails{}, err
	}
	resp, err := cli.ImageInspect(ctx, id)
	if err != nil {
		return model.ImageDetails{}, fmt.Errorf("image inspect: %w", notFound(err, "Image", id))
	}

	d := model.ImageDetails{
		ID:            resp.ID,
		RepoTags:      nonNil(resp.RepoTags),
		RepoDigests:   nonNil(resp.RepoDigests),
		Parent:        resp.Parent,
		Comment:       resp.Comment,
		Created:       resp.Created,
		DockerVersion: resp.DockerVersion,
		Author:        resp.Author,
		Architecture:  resp.Architecture,
		Os:            resp.Os,
		Size:          resp.Size,
		RootFS:        model.RootFS{Type: resp.RootFS.Type, Layers: nonNil(resp.RootFS.Layers)},
	}
	if cfg := resp.Config; cfg != nil {
		d.Config = model.ImageConfig{
			User:       cfg.User,
			Env:        cfg.Env,
			Cmd:        cfg.Cmd,
			Entrypoint: cfg.Entrypoint,
			WorkingDir: cfg.WorkingDir,
			Labels:     cfg.Labels,
		}
		for port := range cfg.ExposedPorts {
			d.Config.ExposedPorts = append(d.Config.ExposedPorts, string(port))
		}
		sort.Strings(d.Config.ExposedPorts)
	}
	return d, nil
}

// RemoveImage deletes an image. noPrune keeps untagged parents.
func (e *Engine) RemoveImage(ctx context.Context, id string, force, noPrune bool) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	_, err = cli.ImageRemove(ctx, id, image.RemoveOptions{Force: force, PruneChildren: !noPrune})
	if err != nil {
		return fmt.Errorf("image remove: %w", notFound(err, "Image", id))
	}
	return nil
}

// PullImage pulls name:tag (tag defaults to latest) and waits for the
// progress stream to finish.
func (e *Engine) PullImage(ctx context.Context, name string, tag *string) error {
	cli, err := e.client()
	if err != nil {
		return err
	}
	t := DefaultPullTag
	if tag != nil && *tag != "" {
		t = *tag
	}
	ref := name + ":" + t

	rc, err := cli.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("image pull %s: %w", ref, err)
	}
	defer rc.Close()
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return fmt.Errorf("image pull %s: %w", ref, err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
