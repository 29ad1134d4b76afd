// Copyright (c) 2024 Neomantra Corp

package download

import (
	"testing"
	"time"
)

func newFakeBucket(capacity int, period time.Duration, cur *time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:     float64(capacity),
		refillPeriod: period,
		available:    float64(capacity),
		lastRefill:   *cur,
		now:          func() time.Time { return *cur },
	}
}

func TestTokenBucket_DrainsThenBlocks(t *testing.T) {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newFakeBucket(10, time.Second, &cur)

	for i := 0; i < 10; i++ {
		if _, ok := b.tryAcquire(); !ok {
			t.Fatalf("token %d should have been available from a full bucket", i)
		}
	}

	if _, ok := b.tryAcquire(); ok {
		t.Fatalf("bucket should be empty after draining capacity")
	}
}

func TestTokenBucket_FullPeriodFullyRefills(t *testing.T) {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newFakeBucket(10, time.Second, &cur)
	for i := 0; i < 10; i++ {
		b.tryAcquire()
	}

	cur = cur.Add(time.Second)
	if _, ok := b.tryAcquire(); !ok {
		t.Fatalf("bucket should be full again after a full refill period")
	}
}

// TestTokenBucket_BoundaryCase reproduces the spec's own property: a
// capacity-10, 1s-period bucket serving 25 sequential acquires completes
// in [1.5s, 3s) — 10 free, then 15 more at one token per 1/10s.
func TestTokenBucket_BoundaryCase(t *testing.T) {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newFakeBucket(10, time.Second, &cur)

	var elapsed time.Duration
	for i := 0; i < 25; i++ {
		wait, ok := b.tryAcquire()
		for !ok {
			cur = cur.Add(wait)
			elapsed += wait
			wait, ok = b.tryAcquire()
		}
	}

	if elapsed < 1500*time.Millisecond || elapsed >= 3*time.Second {
		t.Errorf("25 acquires took %v, want within [1.5s, 3s)", elapsed)
	}
}
