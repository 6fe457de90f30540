// Package clock provides a reference-counted ticking clock shared by every
// consumer that renders relative times. The underlying ticker only runs while
// at least one subscriber exists.
package clock

import (
	"sync"
	"time"

	"github.com/gabapcia/blockfeed/internal/pkg/x/chflow"
)

const DefaultInterval = 5 * time.Minute

// Clock hands out tick subscriptions.
type Clock interface {
	// Subscribe registers a subscriber. Ticks are delivered on the returned
	// channel, dropping ticks the subscriber is not ready for. The returned
	// func unsubscribes and is safe to call more than once.
	Subscribe() (<-chan time.Time, func())

	// Now returns the time of the latest tick, or the current time when no
	// tick happened yet.
	Now() time.Time

	// Subscribers reports how many subscriptions are active.
	Subscribers() int
}

type clock struct {
	mu sync.Mutex

	interval time.Duration
	now      func() time.Time

	subscribers map[int]chan time.Time
	nextID      int
	last        time.Time

	stop chan struct{}
	done chan struct{}
}

var _ Clock = (*clock)(nil)

func (c *clock) Subscribe() (<-chan time.Time, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	ch := make(chan time.Time, 1)
	c.subscribers[id] = ch

	if len(c.subscribers) == 1 {
		c.startLocked()
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() { c.unsubscribe(id) })
	}
}

func (c *clock) unsubscribe(id int) {
	c.mu.Lock()
	delete(c.subscribers, id)
	if len(c.subscribers) > 0 {
		c.mu.Unlock()
		return
	}

	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	// The tick loop takes mu, so it must be stopped without holding it.
	if stop != nil {
		close(stop)
		<-done
	}
}

// startLocked launches the tick loop. Must be called with mu held.
func (c *clock) startLocked() {
	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop, c.done = stop, done

	go func() {
		defer close(done)
		c.run(stop)
	}()
}

func (c *clock) run(stop <-chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

func (c *clock) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = c.now()
	for _, ch := range c.subscribers {
		chflow.Offer(ch, c.last)
	}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last.IsZero() {
		return c.now()
	}
	return c.last
}

func (c *clock) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.subscribers)
}

// running reports whether the tick loop is active.
func (c *clock) running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stop != nil
}

type config struct {
	interval time.Duration
	now      func() time.Time
}

type Option func(*config)

// New creates a stopped Clock ticking every DefaultInterval unless
// configured otherwise.
func New(opts ...Option) *clock {
	cfg := config{
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &clock{
		interval:    cfg.interval,
		now:         cfg.now,
		subscribers: make(map[int]chan time.Time),
	}
}

// WithInterval sets the tick period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithNow replaces the time source.
func WithNow(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}
