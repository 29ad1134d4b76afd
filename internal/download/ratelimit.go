// Copyright (c) 2024 Neomantra Corp

package download

import (
	"context"
	"sync"
	"time"
)

// TokenBucket is Gate 2 of the orchestrator's concurrency discipline: a
// lazily-refilled counter bounding the global request rate. Its counters
// are the only process-wide mutable state outside the HTTP and
// object-store clients, and all mutation is serialized inside Acquire.
type TokenBucket struct {
	mu           sync.Mutex
	capacity     float64
	refillPeriod time.Duration
	available    float64
	lastRefill   time.Time
	now          func() time.Time
}

// NewTokenBucket returns a full bucket of the given capacity, refilled
// continuously over refillPeriod (the spec's default is 86400s).
func NewTokenBucket(capacity int, refillPeriod time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:     float64(capacity),
		refillPeriod: refillPeriod,
		available:    float64(capacity),
		lastRefill:   time.Now(),
		now:          time.Now,
	}
}

// Acquire blocks, without holding the bucket's lock while sleeping, until
// one token is available, then consumes it. It respects ctx cancellation.
func (b *TokenBucket) Acquire(ctx context.Context) error {
	for {
		wait, ok := b.tryAcquire()
		if ok {
			return nil
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// tryAcquire refills lazily and either consumes a token (ok=true) or
// reports how long the caller must wait before trying again.
func (b *TokenBucket) tryAcquire() (wait time.Duration, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	elapsed := now.Sub(b.lastRefill)
	if elapsed >= b.refillPeriod {
		b.available = b.capacity
		b.lastRefill = now
	} else if elapsed > 0 {
		refilled := elapsed.Seconds() / b.refillPeriod.Seconds() * b.capacity
		if refilled > 0 {
			b.available += refilled
			if b.available > b.capacity {
				b.available = b.capacity
			}
			b.lastRefill = now
		}
	}

	if b.available >= 1 {
		b.available--
		return 0, true
	}

	needed := 1 - b.available
	perToken := b.refillPeriod.Seconds() / b.capacity
	return time.Duration(needed * perToken * float64(time.Second)), false
}
