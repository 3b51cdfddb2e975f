// Package store holds the front-end's view of Docker resources. Every store
// is safe for concurrent use, loads through a bridge.Caller and reports
// failures through its Error field instead of returning them.
package store

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/poll"
)

// KV is the local key-value storage used for settings and theme.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Options carries the shared dependencies of every store.
type Options struct {
	// NewTicker drives auto-refresh and follow loops. Defaults to poll.NewTicker.
	NewTicker poll.TickerFunc
	// Now is the clock used for stamps and toast expiry. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.NewTicker == nil {
		o.NewTicker = poll.NewTicker
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Tokens used for operations that are not bound to one resource.
const (
	TokenCreate = "create-new"
	TokenPrune  = "prune-all"
)

// OperationToken names an in-flight action on one resource.
func OperationToken(kind, id string) string {
	return kind + "-" + id
}

// resource is the state shared by the four resource stores. Responses to
// list and detail loads are applied only if no newer load of the same kind
// was issued since.
type resource[T any, D any] struct {
	name string

	mu             sync.RWMutex
	items          []T
	selected       string
	details        *D
	loadingList    bool
	loadingDetails bool
	ops            map[string]int
	err            string
	filter         string
	sortBy         string
	search         string
	listSeq        uint64
	detailSeq      uint64
	poller         *poll.Poller
}

func newResource[T any, D any](name, filter, sortBy string) *resource[T, D] {
	return &resource[T, D]{
		name:   name,
		ops:    make(map[string]int),
		filter: filter,
		sortBy: sortBy,
	}
}

// load fetches the list. A response is discarded when a newer load has
// started; only the newest load clears the loading flag.
func (r *resource[T, D]) load(ctx context.Context, fetch func(ctx context.Context) ([]T, error)) bool {
	r.mu.Lock()
	r.listSeq++
	seq := r.listSeq
	r.loadingList = true
	r.mu.Unlock()

	items, err := fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.listSeq {
		slog.Debug("stale list response dropped", "store", r.name, "seq", seq)
		return false
	}
	r.loadingList = false
	if err != nil {
		r.err = bridge.ErrorMessage(err)
		slog.Warn("Failed to load "+r.name, "err", err)
		return false
	}
	if items == nil {
		items = []T{}
	}
	r.items = items
	r.err = ""
	return true
}

// loadDetails fetches one item's details with its own sequence.
func (r *resource[T, D]) loadDetails(ctx context.Context, id string, fetch func(ctx context.Context, id string) (D, error)) *D {
	r.mu.Lock()
	r.detailSeq++
	seq := r.detailSeq
	r.loadingDetails = true
	r.mu.Unlock()

	d, err := fetch(ctx, id)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.detailSeq {
		slog.Debug("stale details response dropped", "store", r.name, "id", id)
		return nil
	}
	r.loadingDetails = false
	if err != nil {
		r.err = bridge.ErrorMessage(err)
		slog.Warn("Failed to load "+r.name+" details", "id", id, "err", err)
		return nil
	}
	r.details = &d
	r.selected = id
	r.err = ""
	out := d
	return &out
}

// perform runs an action under an operation token and reloads on success.
func (r *resource[T, D]) perform(ctx context.Context, kind, id string, action func(ctx context.Context) error, reload func(ctx context.Context)) bool {
	token := OperationToken(kind, id)
	r.mu.Lock()
	r.ops[token]++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.ops[token]--; r.ops[token] <= 0 {
			delete(r.ops, token)
		}
		r.mu.Unlock()
	}()

	if err := action(ctx); err != nil {
		r.mu.Lock()
		r.err = bridge.ErrorMessage(err)
		r.mu.Unlock()
		slog.Warn("Failed to "+kind+" "+r.name, "id", id, "err", err)
		return false
	}
	reload(ctx)
	return true
}

func (r *resource[T, D]) snapshot() (items []T, filter, search, sortBy string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items = make([]T, len(r.items))
	copy(items, r.items)
	return items, r.filter, r.search, r.sortBy
}

// Items returns a copy of the cached list.
func (r *resource[T, D]) Items() []T {
	items, _, _, _ := r.snapshot()
	return items
}

// Details returns a copy of the last loaded details, or nil.
func (r *resource[T, D]) Details() *D {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.details == nil {
		return nil
	}
	d := *r.details
	return &d
}

// Selected returns the id whose details are cached.
func (r *resource[T, D]) Selected() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected
}

// ClearSelection drops the cached details.
func (r *resource[T, D]) ClearSelection() {
	r.mu.Lock()
	r.selected = ""
	r.details = nil
	r.mu.Unlock()
}

func (r *resource[T, D]) IsLoading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadingList
}

func (r *resource[T, D]) IsLoadingDetails() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadingDetails
}

// Error returns the last failure message, or "".
func (r *resource[T, D]) Error() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

func (r *resource[T, D]) ClearError() {
	r.mu.Lock()
	r.err = ""
	r.mu.Unlock()
}

// setError records a failure raised before any remote call.
func (r *resource[T, D]) setError(msg string) {
	r.mu.Lock()
	r.err = msg
	r.mu.Unlock()
}

// Operations returns the in-flight operation tokens, sorted.
func (r *resource[T, D]) Operations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ops))
	for t := range r.ops {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// InProgress reports whether kind is running on id.
func (r *resource[T, D]) InProgress(kind, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ops[OperationToken(kind, id)] > 0
}

func (r *resource[T, D]) Filter() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter
}

func (r *resource[T, D]) SortBy() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortBy
}

func (r *resource[T, D]) Search() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.search
}

func (r *resource[T, D]) setFilter(f string) {
	r.mu.Lock()
	r.filter = f
	r.mu.Unlock()
}

func (r *resource[T, D]) setSort(s string) {
	r.mu.Lock()
	r.sortBy = s
	r.mu.Unlock()
}

// SetSearch sets the free-text search term.
func (r *resource[T, D]) SetSearch(term string) {
	r.mu.Lock()
	r.search = term
	r.mu.Unlock()
}

// startAutoRefresh replaces any running refresh loop with one calling fn
// every interval.
func (r *resource[T, D]) startAutoRefresh(ctx context.Context, interval time.Duration, newTicker poll.TickerFunc, fn func(ctx context.Context)) {
	r.mu.Lock()
	if r.poller == nil {
		r.poller = poll.New(fn, poll.WithTicker(newTicker))
	}
	p := r.poller
	r.mu.Unlock()
	p.Start(ctx, interval)
}

// StopAutoRefresh stops the refresh loop. Safe without a prior start.
func (r *resource[T, D]) StopAutoRefresh() {
	r.mu.RLock()
	p := r.poller
	r.mu.RUnlock()
	if p != nil {
		p.Stop()
	}
}

// AutoRefreshing reports whether a refresh loop is active.
func (r *resource[T, D]) AutoRefreshing() bool {
	r.mu.RLock()
	p := r.poller
	r.mu.RUnlock()
	return p != nil && p.Running()
}

// view applies match, then the search term over fields, then less. The input
// slice is not modified.
func view[T any](items []T, match func(T) bool, search string, fields func(T) []string, less func(a, b T) bool) []T {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match != nil && !match(it) {
			continue
		}
		if term != "" && !matchesAny(fields(it), term) {
			continue
		}
		out = append(out, it)
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func matchesAny(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// byString orders by a then by the tie-break key b.
func byString(a1, a2, b1, b2 string) bool {
	if a1 != a2 {
		return a1 < a2
	}
	return b1 < b2
}

// byNumberDesc orders largest first, then by the tie-break key.
func byNumberDesc(a1, a2 int64, b1, b2 string) bool {
	if a1 != a2 {
		return a1 > a2
	}
	return b1 < b2
}
