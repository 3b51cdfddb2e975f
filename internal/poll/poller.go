// Package poll runs a function on a fixed interval until stopped.
package poll

import (
	"context"
	"sync"
	"time"
)

// Ticker delivers ticks on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker for the given interval.
type TickerFunc func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker returns a Ticker backed by time.Ticker.
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Poller calls fn on every tick while started.
//
// Each tick runs fn in its own goroutine. There is no overlap guard: if fn
// takes longer than the interval, calls overlap.
type Poller struct {
	fn        func(ctx context.Context)
	newTicker TickerFunc

	mu     sync.Mutex
	ticker Ticker
	quit   chan struct{}
	done   chan struct{}
}

// Option configures a Poller.
type Option func(*Poller)

// WithTicker overrides the ticker factory (tests use a manual ticker).
func WithTicker(f TickerFunc) Option {
	return func(p *Poller) { p.newTicker = f }
}

// New creates a stopped Poller.
func New(fn func(ctx context.Context), opts ...Option) *Poller {
	p := &Poller{fn: fn, newTicker: NewTicker}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Start clears any running ticker, then starts a new one. ctx is passed to
// every fn call; stopping the poller does not cancel calls already in flight.
// Cancelling ctx stops the ticker and leaves the poller stopped.
func (p *Poller) Start(ctx context.Context, interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	t := p.newTicker(interval)
	quit := make(chan struct{})
	done := make(chan struct{})
	p.ticker, p.quit, p.done = t, quit, done

	go func() {
		for {
			select {
			case <-quit:
				close(done)
				return
			case <-ctx.Done():
				t.Stop()
				close(done)
				p.mu.Lock()
				if p.done == done {
					p.ticker, p.quit, p.done = nil, nil, nil
				}
				p.mu.Unlock()
				return
			case <-t.C():
				go p.fn(ctx)
			}
		}
	}()
}

// Stop stops the ticker. Safe to call when not running and more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) stopLocked() {
	if p.ticker == nil {
		return
	}
	p.ticker.Stop()
	close(p.quit)
	<-p.done
	p.ticker, p.quit, p.done = nil, nil, nil
}

// Running reports whether a ticker is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticker != nil
}
