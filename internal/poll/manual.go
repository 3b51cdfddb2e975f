package poll

import (
	"sync"
	"time"
)

// ManualClock hands out tickers that only fire when Tick is called.
type ManualClock struct {
	mu      sync.Mutex
	tickers []*ManualTicker
}

// NewTicker implements TickerFunc.
func (c *ManualClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &ManualTicker{Interval: d, c: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

// Tickers returns every ticker created so far.
func (c *ManualClock) Tickers() []*ManualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*ManualTicker, len(c.tickers))
	copy(out, c.tickers)
	return out
}

// Active returns the tickers that have not been stopped.
func (c *ManualClock) Active() []*ManualTicker {
	var out []*ManualTicker
	for _, t := range c.Tickers() {
		if !t.Stopped() {
			out = append(out, t)
		}
	}
	return out
}

// Tick fires every active ticker once. It blocks until each poll loop has
// received the tick.
func (c *ManualClock) Tick() int {
	fired := 0
	for _, t := range c.Active() {
		if t.fire() {
			fired++
		}
	}
	return fired
}

// ManualTicker is a Ticker driven by ManualClock.
type ManualTicker struct {
	Interval time.Duration

	mu      sync.Mutex
	c       chan time.Time
	stopped bool
}

// C implements Ticker.
func (t *ManualTicker) C() <-chan time.Time { return t.c }

// Stop implements Ticker.
func (t *ManualTicker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

// Stopped reports whether Stop was called.
func (t *ManualTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *ManualTicker) fire() bool {
	select {
	case t.c <- time.Now():
		return true
	case <-time.After(time.Second):
		return false
	}
}
