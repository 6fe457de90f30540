package feed

import (
	"context"
	"sync"
	"time"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/pkg/x/chflow"
)

const queuedChannelBufferSize = 10

func (c *controller) Start(ctx context.Context) (<-chan []activity.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isStarted {
		return nil, ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	queuedCh := make(chan []activity.Transaction, queuedChannelBufferSize)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.pollLoop(ctx, queuedCh)
	}()

	c.closeFunc = func() {
		cancel()
		wg.Wait()
		close(queuedCh)
	}
	c.isStarted = true

	return queuedCh, nil
}

func (c *controller) pollLoop(ctx context.Context, queuedCh chan<- []activity.Transaction) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		if _, ok := chflow.Receive(ctx, ticker.C); !ok {
			return
		}

		unique := c.pollNew(ctx)
		if len(unique) == 0 {
			continue
		}

		if !chflow.Send(ctx, queuedCh, unique) {
			return
		}
	}
}

func (c *controller) Close() {
	c.mu.Lock()
	closeFn := c.closeFunc
	c.closeFunc = nil
	c.isStarted = false
	c.mu.Unlock()

	// The poll loop takes mu, so it must be stopped without holding it.
	if closeFn != nil {
		closeFn()
	}
}
