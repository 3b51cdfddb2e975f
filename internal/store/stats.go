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

// Stats monitoring defaults.
const (
	DefaultStatsInterval = 2 * time.Second
	MaxStatsHistory      = 60
)

// StatsStore keeps a rolling history of processed stats for one container.
type StatsStore struct {
	cmds *bridge.Commands
	opts Options

	mu          sync.RWMutex
	containerID string
	current     *model.ProcessedStats
	history     []model.ProcessedStats
	monitoring  bool
	err         string
	session     uint64
	poller      *poll.Poller
}

func NewStatsStore(c bridge.Caller, opts Options) *StatsStore {
	return &StatsStore{cmds: bridge.NewCommands(c), opts: opts.withDefaults()}
}

// ProcessStats reduces a raw sample to display values. Rates come from the
// counters embedded in the same sample.
func ProcessStats(sample model.StatsSample, now time.Time) model.ProcessedStats {
	out := model.ProcessedStats{Timestamp: now}
	if t, err := time.Parse(time.RFC3339Nano, sample.Read); err == nil && !t.IsZero() {
		out.Timestamp = t
	}

	if sample.CPUStats != nil && sample.PreCPUStats != nil {
		cur, pre := sample.CPUStats, sample.PreCPUStats
		cpuDelta := float64(cur.CPUUsage.TotalUsage) - float64(pre.CPUUsage.TotalUsage)
		sysDelta := float64(cur.SystemCPUUsage) - float64(pre.SystemCPUUsage)
		cpus := float64(cur.OnlineCPUs)
		if cpus == 0 {
			cpus = float64(len(cur.CPUUsage.PercpuUsage))
		}
		if cpus == 0 {
			cpus = 1
		}
		if sysDelta > 0 && cpuDelta > 0 {
			out.CPUPercent = clampPercent(cpuDelta / sysDelta * cpus * 100)
		}
	}

	mem := sample.MemoryStats
	out.MemoryUsage = mem.Usage
	out.MemoryLimit = mem.Limit
	if mem.Limit > 0 {
		out.MemoryPercent = clampPercent(float64(mem.Usage) / float64(mem.Limit) * 100)
	}

	for _, n := range sample.Networks {
		out.NetworkRx += n.RxBytes
		out.NetworkTx += n.TxBytes
	}
	for _, e := range sample.BlkioStats.IoServiceBytesRecursive {
		switch strings.ToLower(e.Op) {
		case "read":
			out.BlockRead += e.Value
		case "write":
			out.BlockWrite += e.Value
		}
	}
	out.Pids = sample.PidsStats.Current
	return out
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Fetch loads one sample for id and appends it to the history.
func (s *StatsStore) Fetch(ctx context.Context, id string) *model.ProcessedStats {
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()
	return s.fetch(ctx, id, session)
}

func (s *StatsStore) fetch(ctx context.Context, id string, session uint64) *model.ProcessedStats {
	sample, err := s.cmds.ContainerStats(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if session != s.session {
		return nil
	}
	if err != nil {
		s.err = bridge.ErrorMessage(err)
		return nil
	}
	p := ProcessStats(sample, s.opts.Now())
	s.containerID = id
	s.current = &p
	s.history = append(s.history, p)
	if len(s.history) > MaxStatsHistory {
		s.history = append([]model.ProcessedStats(nil), s.history[len(s.history)-MaxStatsHistory:]...)
	}
	s.err = ""
	out := p
	return &out
}

// StartMonitoring fetches a sample of id now and then every interval. An
// interval of 0 uses DefaultStatsInterval. Switching containers clears the
// history. A StopMonitoring or later StartMonitoring that lands during the
// first fetch wins: this session then never starts polling.
func (s *StatsStore) StartMonitoring(ctx context.Context, id string, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	s.StopMonitoring()

	s.mu.Lock()
	s.session++
	session := s.session
	if s.containerID != id {
		s.containerID = id
		s.current = nil
		s.history = nil
	}
	s.monitoring = true
	s.mu.Unlock()

	s.fetch(ctx, id, session)

	s.mu.Lock()
	defer s.mu.Unlock()
	if session != s.session {
		return
	}
	s.poller = poll.New(func(ctx context.Context) { s.fetch(ctx, id, session) }, poll.WithTicker(s.opts.NewTicker))
	s.poller.Start(ctx, interval)
}

// StopMonitoring stops polling and drops samples still in flight. Safe to
// call when not monitoring.
func (s *StatsStore) StopMonitoring() {
	s.mu.Lock()
	p := s.poller
	s.poller = nil
	s.monitoring = false
	s.session++
	s.mu.Unlock()
	if p != nil {
		p.Stop()
	}
}

// Clear drops the current sample and the history.
func (s *StatsStore) Clear() {
	s.mu.Lock()
	s.current = nil
	s.history = nil
	s.err = ""
	s.mu.Unlock()
}

func (s *StatsStore) Current() *model.ProcessedStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	v := *s.current
	return &v
}

// History returns the processed samples, oldest first.
func (s *StatsStore) History() []model.ProcessedStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ProcessedStats, len(s.history))
	copy(out, s.history)
	return out
}

func (s *StatsStore) ContainerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containerID
}

func (s *StatsStore) IsMonitoring() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.monitoring
}

func (s *StatsStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
