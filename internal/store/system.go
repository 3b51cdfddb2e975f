package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/model"
	"github.com/kostyay/docsee/internal/poll"
)

// SystemStore tracks the daemon connection and engine-wide information.
type SystemStore struct {
	cmds *bridge.Commands
	opts Options

	mu         sync.RWMutex
	connected  bool
	connecting bool
	loading    bool
	status     *model.ConnectionStatus
	info       *model.SystemInfo
	stats      *model.SystemStats
	err        string
	poller     *poll.Poller
}

func NewSystemStore(c bridge.Caller, opts Options) *SystemStore {
	return &SystemStore{cmds: bridge.NewCommands(c), opts: opts.withDefaults()}
}

func (s *SystemStore) fail(what string, err error) {
	s.mu.Lock()
	s.err = bridge.ErrorMessage(err)
	s.mu.Unlock()
	slog.Warn("Failed to "+what, "err", err)
}

// Connect connects the backend to the daemon and loads system info on
// success.
func (s *SystemStore) Connect(ctx context.Context) bool {
	s.mu.Lock()
	s.connecting = true
	s.mu.Unlock()

	ok, err := s.cmds.ConnectDocker(ctx)

	s.mu.Lock()
	s.connecting = false
	s.connected = err == nil && ok
	s.mu.Unlock()
	if err != nil {
		s.fail("connect to Docker", err)
		return false
	}
	if ok {
		s.ClearError()
		s.LoadInfo(ctx)
	}
	return ok
}

// Disconnect drops the daemon connection and the cached info.
func (s *SystemStore) Disconnect(ctx context.Context) bool {
	if err := s.cmds.DisconnectDocker(ctx); err != nil {
		s.fail("disconnect from Docker", err)
		return false
	}
	s.mu.Lock()
	s.connected = false
	s.status = &model.ConnectionStatus{}
	s.info = nil
	s.stats = nil
	s.err = ""
	s.mu.Unlock()
	return true
}

// Initialize refreshes the connection status and, when connected, the
// system info.
func (s *SystemStore) Initialize(ctx context.Context) {
	s.RefreshStatus(ctx)
	if s.IsConnected() {
		s.LoadInfo(ctx)
	}
}

// RefreshStatus reloads the connection status.
func (s *SystemStore) RefreshStatus(ctx context.Context) bool {
	st, err := s.cmds.ConnectionStatus(ctx)
	if err != nil {
		s.mu.Lock()
		s.connected = false
		s.mu.Unlock()
		s.fail("get connection status", err)
		return false
	}
	s.mu.Lock()
	s.status = &st
	s.connected = st.Connected
	if st.Connected {
		s.err = ""
	} else if st.Error != nil {
		s.err = *st.Error
	}
	s.mu.Unlock()
	return true
}

func (s *SystemStore) LoadInfo(ctx context.Context) *model.SystemInfo {
	s.setLoading(true)
	defer s.setLoading(false)
	info, err := s.cmds.SystemInfo(ctx)
	if err != nil {
		s.fail("load system info", err)
		return nil
	}
	s.mu.Lock()
	s.info = &info
	s.err = ""
	s.mu.Unlock()
	return &info
}

func (s *SystemStore) LoadStats(ctx context.Context) *model.SystemStats {
	st, err := s.cmds.SystemStats(ctx)
	if err != nil {
		s.fail("load system stats", err)
		return nil
	}
	s.mu.Lock()
	s.stats = &st
	s.mu.Unlock()
	return &st
}

// TestConnection pings the daemon without changing the connection state.
func (s *SystemStore) TestConnection(ctx context.Context) bool {
	ok, err := s.cmds.TestConnection(ctx)
	if err != nil {
		s.fail("test Docker connection", err)
		return false
	}
	return ok
}

func (s *SystemStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *SystemStore) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *SystemStore) IsConnecting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connecting
}

func (s *SystemStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SystemStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *SystemStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// Status returns a copy of the last connection status, or nil.
func (s *SystemStore) Status() *model.ConnectionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return nil
	}
	v := *s.status
	return &v
}

func (s *SystemStore) Info() *model.SystemInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.info == nil {
		return nil
	}
	v := *s.info
	return &v
}

func (s *SystemStore) Stats() *model.SystemStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	v := *s.stats
	return &v
}

// StartAutoRefresh refreshes status and stats every interval while the
// daemon is connected.
func (s *SystemStore) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	s.mu.Lock()
	if s.poller == nil {
		s.poller = poll.New(s.tick, poll.WithTicker(s.opts.NewTicker))
	}
	p := s.poller
	s.mu.Unlock()
	p.Start(ctx, interval)
}

func (s *SystemStore) tick(ctx context.Context) {
	if !s.IsConnected() {
		return
	}
	if s.RefreshStatus(ctx) && s.IsConnected() {
		s.LoadStats(ctx)
	}
}

func (s *SystemStore) StopAutoRefresh() {
	s.mu.RLock()
	p := s.poller
	s.mu.RUnlock()
	if p != nil {
		p.Stop()
	}
}

func (s *SystemStore) AutoRefreshing() bool {
	s.mu.RLock()
	p := s.poller
	s.mu.RUnlock()
	return p != nil && p.Running()
}
