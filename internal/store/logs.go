package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/model"
	"github.com/kostyay/docsee/internal/poll"
)

// Log follow defaults.
const (
	DefaultMaxLogLines    = 1000
	DefaultFollowInterval = 2 * time.Second
	initialLogTail        = "100"
	followLogTail         = "50"
)

// Stream filters.
const (
	StreamAll    = "all"
	StreamStdout = model.StreamStdout
	StreamStderr = model.StreamStderr
)

// LogStore accumulates the output of one container. Following is emulated
// by polling a tail window and merging it into the accumulated lines.
type LogStore struct {
	cmds *bridge.Commands
	opts Options

	mu           sync.RWMutex
	containerID  string
	lines        []model.LogLine
	following    bool
	loading      bool
	err          string
	maxLines     int
	interval     time.Duration
	streamFilter string
	search       string
	autoScroll   bool
	session      uint64
	follow       uint64
	poller       *poll.Poller
}

func NewLogStore(c bridge.Caller, opts Options) *LogStore {
	return &LogStore{
		cmds:         bridge.NewCommands(c),
		opts:         opts.withDefaults(),
		maxLines:     DefaultMaxLogLines,
		interval:     DefaultFollowInterval,
		streamFilter: StreamAll,
		autoScroll:   true,
	}
}

// SetMaxLines sets the accumulation cap. Values below 1 are ignored.
func (s *LogStore) SetMaxLines(n int) {
	if n < 1 {
		return
	}
	s.mu.Lock()
	s.maxLines = n
	s.lines = capLines(s.lines, n)
	s.mu.Unlock()
}

// SetFollowInterval sets the poll interval used by later StartFollowing calls.
func (s *LogStore) SetFollowInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
}

// Load replaces the lines with one window of output. An empty tail uses the
// backend default.
func (s *LogStore) Load(ctx context.Context, id, tail string) bool {
	s.mu.Lock()
	s.session++
	session := s.session
	s.containerID = id
	s.loading = true
	s.mu.Unlock()

	lines, err := s.cmds.ContainerLogs(ctx, id, bridge.LogOptions{Tail: tail})

	s.mu.Lock()
	defer s.mu.Unlock()
	if session != s.session {
		return false
	}
	s.loading = false
	if err != nil {
		s.err = bridge.ErrorMessage(err)
		return false
	}
	s.lines = capLines(lines, s.maxLines)
	s.err = ""
	return true
}

// StartFollowing fetches the last 100 lines of id, then merges the last 50
// lines on every follow tick. Any previous follow session is stopped. A
// StopFollowing that lands during the first fetch keeps the fetched lines
// but polling never starts.
func (s *LogStore) StartFollowing(ctx context.Context, id string) {
	s.StopFollowing()
	s.mu.Lock()
	s.follow++
	follow := s.follow
	s.following = true
	if s.containerID != id {
		s.lines = nil
	}
	s.mu.Unlock()

	s.Load(ctx, id, initialLogTail)

	s.mu.Lock()
	defer s.mu.Unlock()
	if follow != s.follow {
		return
	}
	session, interval := s.session, s.interval
	s.poller = poll.New(func(ctx context.Context) { s.poll(ctx, id, session, follow) }, poll.WithTicker(s.opts.NewTicker))
	s.poller.Start(ctx, interval)
}

func (s *LogStore) poll(ctx context.Context, id string, session, follow uint64) {
	lines, err := s.cmds.ContainerLogs(ctx, id, bridge.LogOptions{Tail: followLogTail})

	s.mu.Lock()
	defer s.mu.Unlock()
	if session != s.session || follow != s.follow {
		return
	}
	if err != nil {
		s.err = bridge.ErrorMessage(err)
		return
	}
	s.lines = MergeLogs(s.lines, lines, s.maxLines)
}

// StopFollowing stops polling and keeps the accumulated lines.
func (s *LogStore) StopFollowing() {
	s.mu.Lock()
	p := s.poller
	s.poller = nil
	s.following = false
	s.follow++
	s.mu.Unlock()
	if p != nil {
		p.Stop()
	}
}

// Clear drops every accumulated line.
func (s *LogStore) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// SetStreamFilter selects StreamAll, StreamStdout or StreamStderr.
func (s *LogStore) SetStreamFilter(f string) {
	s.mu.Lock()
	s.streamFilter = f
	s.mu.Unlock()
}

func (s *LogStore) SetSearch(term string) {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()
}

// ToggleAutoScroll flips auto-scroll and returns the new value.
func (s *LogStore) ToggleAutoScroll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoScroll = !s.autoScroll
	return s.autoScroll
}

// Lines returns a copy of the accumulated lines.
func (s *LogStore) Lines() []model.LogLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.LogLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Filtered returns the lines matching the stream filter and search term.
func (s *LogStore) Filtered() []model.LogLine {
	s.mu.RLock()
	stream, search := s.streamFilter, strings.ToLower(strings.TrimSpace(s.search))
	s.mu.RUnlock()

	out := []model.LogLine{}
	for _, l := range s.Lines() {
		if stream != StreamAll && stream != "" && l.Stream != stream {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Content), search) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (s *LogStore) ContainerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containerID
}

func (s *LogStore) IsFollowing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.following
}

func (s *LogStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *LogStore) AutoScroll() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoScroll
}

func (s *LogStore) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

func (s *LogStore) StreamFilter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streamFilter
}

func (s *LogStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// MergeLogs appends the lines of incoming not already present in existing,
// by content and timestamp, and keeps at most max of the newest lines.
func MergeLogs(existing, incoming []model.LogLine, max int) []model.LogLine {
	seen := make(map[model.LogKey]struct{}, len(existing)+len(incoming))
	out := make([]model.LogLine, 0, len(existing)+len(incoming))
	for _, l := range existing {
		seen[l.Key()] = struct{}{}
		out = append(out, l)
	}
	for _, l := range incoming {
		k := l.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return capLines(out, max)
}

func capLines(lines []model.LogLine, max int) []model.LogLine {
	if max > 0 && len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines
}
