package app

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// DefaultFrameDelay approximates one display frame.
const DefaultFrameDelay = 16 * time.Millisecond

// WriteFunc performs one write on behalf of a Coalescer.
type WriteFunc func(ctx context.Context, key, value string) error

// Coalescer debounces writes per key. Scheduling a key that already has a
// pending write replaces its value and restarts the delay, so only the last
// value scheduled before the delay elapses is written.
type Coalescer struct {
	delay  time.Duration
	write  WriteFunc
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]*pendingWrite
	seq     uint64
	stopped bool
}

type pendingWrite struct {
	value string
	seq   uint64
	timer *time.Timer
}

func NewCoalescer(delay time.Duration, write WriteFunc, logger *slog.Logger) *Coalescer {
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	return &Coalescer{
		delay:   delay,
		write:   write,
		logger:  logger,
		pending: make(map[string]*pendingWrite),
	}
}

// Schedule queues value for key, cancelling any write still pending for key.
// After Stop, values are written immediately.
func (c *Coalescer) Schedule(key, value string) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		c.run(context.Background(), key, value)
		return
	}
	if p, ok := c.pending[key]; ok && p.timer != nil {
		p.timer.Stop()
	}
	c.seq++
	seq := c.seq
	p := &pendingWrite{value: value, seq: seq}
	p.timer = time.AfterFunc(c.delay, func() { c.fire(key, seq) })
	c.pending[key] = p
	c.mu.Unlock()
}

// Cancel drops any write pending for key.
func (c *Coalescer) Cancel(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pending[key]; ok {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(c.pending, key)
	}
}

// Pending returns the value waiting to be written for key, if any.
func (c *Coalescer) Pending(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[key]
	if !ok {
		return "", false
	}
	return p.value, true
}

// Flush writes every pending value now.
func (c *Coalescer) Flush(ctx context.Context) error {
	c.mu.Lock()
	batch := make(map[string]string, len(c.pending))
	for key, p := range c.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		batch[key] = p.value
	}
	clear(c.pending)
	c.mu.Unlock()

	keys := make([]string, 0, len(batch))
	for key := range batch {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		if err := c.write(ctx, key, batch[key]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Stop flushes pending writes and switches to writing synchronously.
func (c *Coalescer) Stop(ctx context.Context) error {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
	return c.Flush(ctx)
}

func (c *Coalescer) fire(key string, seq uint64) {
	c.mu.Lock()
	p, ok := c.pending[key]
	if !ok || p.seq != seq {
		c.mu.Unlock()
		return
	}
	p.timer = nil
	value := p.value
	c.mu.Unlock()

	c.run(context.Background(), key, value)

	// Keep the entry visible to Pending until the store has the value.
	c.mu.Lock()
	if p, ok := c.pending[key]; ok && p.seq == seq {
		delete(c.pending, key)
	}
	c.mu.Unlock()
}

func (c *Coalescer) run(ctx context.Context, key, value string) {
	if err := c.write(ctx, key, value); err != nil {
		c.logger.WarnContext(ctx, "coalesced write failed", "key", key, "error", err)
	}
}
