package store

import (
	"context"
	"time"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/model"
)

// Image filters.
const (
	ImageFilterAll      = "all"
	ImageFilterUsed     = "used"
	ImageFilterUnused   = "unused"
	ImageFilterTagged   = "tagged"
	ImageFilterUntagged = "untagged"
)

// Image sort keys.
const (
	ImageSortName       = "name"
	ImageSortSize       = "size"
	ImageSortCreated    = "created"
	ImageSortContainers = "containers"
)

var (
	ImageFilters = []string{ImageFilterAll, ImageFilterUsed, ImageFilterUnused, ImageFilterTagged, ImageFilterUntagged}
	ImageSorts   = []string{ImageSortName, ImageSortSize, ImageSortCreated, ImageSortContainers}
)

// ImageStore caches the image list and the selected image.
type ImageStore struct {
	*resource[model.Image, model.ImageDetails]

	cmds *bridge.Commands
	opts Options
}

func NewImageStore(c bridge.Caller, opts Options) *ImageStore {
	return &ImageStore{
		resource: newResource[model.Image, model.ImageDetails]("images", ImageFilterAll, ImageSortName),
		cmds:     bridge.NewCommands(c),
		opts:     opts.withDefaults(),
	}
}

// Load replaces the list with every image, intermediate layers excluded.
func (s *ImageStore) Load(ctx context.Context) bool {
	return s.load(ctx, func(ctx context.Context) ([]model.Image, error) {
		return s.cmds.ListImages(ctx, false)
	})
}

func (s *ImageStore) reload(ctx context.Context) { s.Load(ctx) }

func (s *ImageStore) LoadDetails(ctx context.Context, id string) *model.ImageDetails {
	return s.loadDetails(ctx, id, s.cmds.ImageDetails)
}

// Remove deletes an image. Token remove-<id>.
func (s *ImageStore) Remove(ctx context.Context, id string, force, noPrune bool) bool {
	return s.perform(ctx, "remove", id, func(ctx context.Context) error {
		return s.cmds.RemoveImage(ctx, id, force, noPrune)
	}, s.reload)
}

// Pull pulls name:tag; an empty tag means latest. Token pull-<name>.
func (s *ImageStore) Pull(ctx context.Context, name, tag string) bool {
	return s.perform(ctx, "pull", name, func(ctx context.Context) error {
		return s.cmds.PullImage(ctx, name, tag)
	}, s.reload)
}

func (s *ImageStore) SetFilter(f string) { s.setFilter(f) }
func (s *ImageStore) SetSort(key string) { s.setSort(key) }

// Sorted returns the filtered, searched and sorted view of the list.
func (s *ImageStore) Sorted() []model.Image {
	items, filter, search, sortBy := s.snapshot()
	return FilterImages(items, filter, search, sortBy)
}

// TotalSize sums the size of every cached image.
func (s *ImageStore) TotalSize() int64 {
	var n int64
	for _, img := range s.Items() {
		n += img.Size
	}
	return n
}

func (s *ImageStore) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	s.startAutoRefresh(ctx, interval, s.opts.NewTicker, s.reload)
}

// FilterImages applies a filter, a search term and a sort key to items.
func FilterImages(items []model.Image, filter, search, sortBy string) []model.Image {
	var match func(model.Image) bool
	switch filter {
	case ImageFilterUsed:
		match = func(i model.Image) bool { return i.Containers > 0 }
	case ImageFilterUnused:
		match = func(i model.Image) bool { return i.Containers <= 0 }
	case ImageFilterTagged:
		match = model.Image.IsTagged
	case ImageFilterUntagged:
		match = func(i model.Image) bool { return !i.IsTagged() }
	}
	fields := func(i model.Image) []string {
		return append(append([]string{}, i.RepoTags...), i.ID)
	}
	return view(items, match, search, fields, imageLess(sortBy))
}

func imageLess(sortBy string) func(a, b model.Image) bool {
	switch sortBy {
	case ImageSortName:
		return func(a, b model.Image) bool {
			return byString(imageSortName(a), imageSortName(b), a.ID, b.ID)
		}
	case ImageSortSize:
		return func(a, b model.Image) bool { return byNumberDesc(a.Size, b.Size, a.ID, b.ID) }
	case ImageSortCreated:
		return func(a, b model.Image) bool { return byNumberDesc(a.Created, b.Created, a.ID, b.ID) }
	case ImageSortContainers:
		return func(a, b model.Image) bool { return byNumberDesc(a.Containers, b.Containers, a.ID, b.ID) }
	}
	return nil
}

func imageSortName(i model.Image) string {
	if len(i.RepoTags) > 0 {
		return i.RepoTags[0]
	}
	return i.ID
}
