package resource

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a reservation does not fit under
// the memory limit.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds the limits of one search.
type Config struct {
	// MemoryLimitBytes caps worker scratch. 0 only tracks usage.
	MemoryLimitBytes int64

	// BatchesPerSecond throttles batch claims across all workers.
	// 0 is unlimited.
	BatchesPerSecond float64
}

// Controller accounts worker memory and paces batch claims.
// A nil *Controller imposes no limits.
type Controller struct {
	limit int64
	mem   *semaphore.Weighted // nil if unlimited
	used  atomic.Int64

	batches *rate.Limiter // nil if unlimited
}

// NewController returns a Controller enforcing cfg.
func NewController(cfg Config) *Controller {
	c := &Controller{limit: max(0, cfg.MemoryLimitBytes)}
	if c.limit > 0 {
		c.mem = semaphore.NewWeighted(c.limit)
	}
	if cfg.BatchesPerSecond > 0 {
		c.batches = rate.NewLimiter(rate.Limit(cfg.BatchesPerSecond), 1)
	}
	return c
}

// Reservation is memory held against a Controller until Release.
type Reservation struct {
	c     *Controller
	bytes int64
	once  sync.Once
}

// Bytes is the reserved size.
func (r *Reservation) Bytes() int64 {
	if r == nil {
		return 0
	}
	return r.bytes
}

// Release returns the memory. Only the first call has an effect.
func (r *Reservation) Release() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		if r.c == nil {
			return
		}
		if r.c.mem != nil {
			r.c.mem.Release(r.bytes)
		}
		r.c.used.Add(-r.bytes)
	})
}

// Reserve takes bytes without blocking. It fails with
// ErrMemoryLimitExceeded when the limit would be crossed.
func (c *Controller) Reserve(bytes int64) (*Reservation, error) {
	if c == nil || bytes <= 0 {
		return &Reservation{}, nil
	}
	if c.mem != nil && !c.mem.TryAcquire(bytes) {
		return nil, ErrMemoryLimitExceeded
	}
	c.used.Add(bytes)
	return &Reservation{c: c, bytes: bytes}, nil
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.used.Load()
}

// MemoryLimit returns the limit in bytes, 0 if unlimited.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.limit
}

// WaitBatch blocks until one more batch may start or ctx is done.
func (c *Controller) WaitBatch(ctx context.Context) error {
	if c == nil || c.batches == nil {
		return nil
	}
	return c.batches.Wait(ctx)
}

// AllowBatch reports whether a batch may start now, taking the token if so.
func (c *Controller) AllowBatch() bool {
	if c == nil || c.batches == nil {
		return true
	}
	return c.batches.AllowN(time.Now(), 1)
}
