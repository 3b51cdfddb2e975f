package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPoller_CallsOnEachTick(t *testing.T) {
	clock := &ManualClock{}
	var calls atomic.Int32
	p := New(func(ctx context.Context) { calls.Add(1) }, WithTicker(clock.NewTicker))

	p.Start(context.Background(), time.Second)
	defer p.Stop()

	for i := 0; i < 3; i++ {
		clock.Tick()
	}
	waitFor(t, func() bool { return calls.Load() == 3 })

	if got := clock.Tickers()[0].Interval; got != time.Second {
		t.Errorf("Interval = %v, want 1s", got)
	}
}

func TestPoller_StartTwiceKeepsOneTicker(t *testing.T) {
	clock := &ManualClock{}
	var calls atomic.Int32
	p := New(func(ctx context.Context) { calls.Add(1) }, WithTicker(clock.NewTicker))

	p.Start(context.Background(), time.Second)
	p.Start(context.Background(), 2*time.Second)
	defer p.Stop()

	if n := len(clock.Active()); n != 1 {
		t.Fatalf("active tickers = %d, want 1", n)
	}
	if !clock.Tickers()[0].Stopped() {
		t.Error("first ticker should be stopped after restart")
	}

	const ticks = 4
	for i := 0; i < ticks; i++ {
		if fired := clock.Tick(); fired != 1 {
			t.Fatalf("fired = %d, want 1", fired)
		}
	}
	waitFor(t, func() bool { return calls.Load() == ticks })
	time.Sleep(20 * time.Millisecond)
	if got := calls.Load(); got != ticks {
		t.Errorf("calls = %d, want %d", got, ticks)
	}
}

func TestPoller_StopPreventsFurtherCalls(t *testing.T) {
	clock := &ManualClock{}
	var calls atomic.Int32
	p := New(func(ctx context.Context) { calls.Add(1) }, WithTicker(clock.NewTicker))

	p.Start(context.Background(), time.Second)
	clock.Tick()
	waitFor(t, func() bool { return calls.Load() == 1 })

	p.Stop()
	if p.Running() {
		t.Error("Running() should be false after Stop")
	}
	if fired := clock.Tick(); fired != 0 {
		t.Errorf("fired = %d after stop, want 0", fired)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	p := New(func(ctx context.Context) {})
	p.Stop()
	p.Stop()
	if p.Running() {
		t.Error("Running() should be false")
	}
	p.Start(context.Background(), time.Hour)
	if !p.Running() {
		t.Error("Running() should be true after Start")
	}
	p.Stop()
	p.Stop()
}

func TestPoller_CallsMayOverlap(t *testing.T) {
	clock := &ManualClock{}
	release := make(chan struct{})
	var inFlight, maxInFlight atomic.Int32
	p := New(func(ctx context.Context) {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		<-release
		inFlight.Add(-1)
	}, WithTicker(clock.NewTicker))

	p.Start(context.Background(), time.Millisecond)
	clock.Tick()
	clock.Tick()
	waitFor(t, func() bool { return maxInFlight.Load() == 2 })
	close(release)
	p.Stop()
}

func TestPoller_ContextCancelEndsLoop(t *testing.T) {
	clock := &ManualClock{}
	ctx, cancel := context.WithCancel(context.Background())
	p := New(func(ctx context.Context) {}, WithTicker(clock.NewTicker))
	p.Start(ctx, time.Second)
	cancel()
	// The loop exits on its own; Stop must still return promptly.
	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked after context cancel")
	}
}

func TestPoller_ContextCancelClearsState(t *testing.T) {
	clock := &ManualClock{}
	ctx, cancel := context.WithCancel(context.Background())
	p := New(func(ctx context.Context) {}, WithTicker(clock.NewTicker))
	p.Start(ctx, time.Second)
	if !p.Running() {
		t.Fatal("not running after Start")
	}

	cancel()
	waitFor(t, func() bool { return !p.Running() })
	if !clock.Tickers()[0].Stopped() {
		t.Error("ticker not stopped after cancel")
	}

	p.Start(context.Background(), time.Second)
	defer p.Stop()
	if !p.Running() || len(clock.Active()) != 1 {
		t.Error("restart after cancel did not start one ticker")
	}
}
